package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ironsheep/paint-study-mcp/internal/analysis"
	"github.com/ironsheep/paint-study-mcp/internal/imaging"
	"github.com/ironsheep/paint-study-mcp/internal/session"
)

// inspectReport is everything inspect prints, and its --json form.
type inspectReport struct {
	Image       *imaging.ImageInfo          `json:"image"`
	Values      imaging.ValueAnalysis       `json:"values"`
	Temperature analysis.TemperatureProfile `json:"temperature"`
	Guidance    analysis.Recommendations    `json:"guidance"`
	Palette     []analysis.PaletteColor     `json:"palette"`
}

func newInspectCmd(opts *rootOptions) *cobra.Command {
	var (
		colors  int
		asJSON  bool
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "inspect <image>",
		Short: "Print a value, temperature and palette analysis of an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config(cmd.Flags())
			if err != nil {
				return err
			}
			report, err := buildInspectReport(args[0], colors, session.Options{
				SampleStride: cfg.SampleStride,
				PreviewMax:   cfg.PreviewMax,
				Logger:       cfg.Logger(cmd.ErrOrStderr()),
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			printInspectReport(out, report, colorEnabled(out, noColor))
			return nil
		},
	}

	cmd.Flags().IntVarP(&colors, "colors", "c", analysis.DefaultPaletteSize, "number of dominant colours to list")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "never print colour swatches")
	return cmd
}

func buildInspectReport(path string, colors int, sopts session.Options) (*inspectReport, error) {
	buf, info, err := imaging.LoadImageInfo(imaging.NewImageCache(), path)
	if err != nil {
		return nil, err
	}
	sess := session.New(sopts)
	if err := sess.Load(buf, path); err != nil {
		return nil, err
	}

	values, err := sess.AnalyzeValues()
	if err != nil {
		return nil, err
	}
	temp, err := sess.Temperature()
	if err != nil {
		return nil, err
	}
	rec, err := sess.Recommendations()
	if err != nil {
		return nil, err
	}
	displayed, err := sess.Displayed()
	if err != nil {
		return nil, err
	}
	palette, err := analysis.DominantColors(displayed, colors, nil)
	if err != nil {
		return nil, err
	}

	return &inspectReport{
		Image:       info,
		Values:      values,
		Temperature: temp,
		Guidance:    rec,
		Palette:     palette,
	}, nil
}

func printInspectReport(w io.Writer, r *inspectReport, enabled bool) {
	fmt.Fprintf(w, "%dx%d %s", r.Image.Width, r.Image.Height, r.Image.Format)
	if r.Image.HasAlpha {
		fmt.Fprint(w, " (alpha)")
	}
	fmt.Fprintf(w, ", %d bytes\n\n", r.Image.FileSizeBytes)

	heading(w, enabled, "Values")
	v := r.Values
	fmt.Fprintf(w, "  darkest %d  lightest %d  median %d  average %d  contrast %d%%\n\n",
		v.Darkest, v.Lightest, v.Median, v.Average, v.Contrast)

	heading(w, enabled, "Temperature")
	t := r.Temperature
	fmt.Fprintf(w, "  warm %.1f%%  cool %.1f%%  neutral %.1f%%  overall %s\n",
		t.WarmPercentage, t.CoolPercentage, t.NeutralPercentage, t.OverallBias)
	l := r.Guidance.Lighting
	fmt.Fprintf(w, "  %s\n  Shadows: %s\n  Highlights: %s\n\n", l.Lighting, l.Shadows, l.Highlights)

	heading(w, enabled, "Palette")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, c := range r.Palette {
		fmt.Fprintf(tw, "  %s%s\t%s\t%.1f%%\t%s\n", swatch(c.RGB, enabled), c.Hex, c.RGB, c.Percentage, c.Temperature)
	}
	_ = tw.Flush()

	if len(r.Guidance.ValueTips) > 0 {
		fmt.Fprintln(w)
		heading(w, enabled, "Value mixing")
		for _, tip := range r.Guidance.ValueTips {
			fmt.Fprintf(w, "  %s: %s\n", tip.Title, tip.Tip)
		}
	}
}
