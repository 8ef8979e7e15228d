package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/paint-study-mcp/internal/analysis"
)

func newColorCmd() *cobra.Command {
	var (
		harmony string
		noColor bool
	)

	cmd := &cobra.Command{
		Use:   "color <hex>",
		Short: "Analyse a colour and show a harmony built on it",
		Long: `Analyse a colour: HSL, chroma, value, temperature and tint, the palette
notation, a paint mixing suggestion, and a colour harmony built on it.

Examples:
  paint-study-mcp color '#c0623a'
  paint-study-mcp color --harmony split-complementary 3a7bc0`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := analysis.AnalyzeHex(args[0])
			if err != nil {
				return err
			}
			t, err := analysis.ParseHarmonyType(harmony)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			enabled := colorEnabled(w, noColor)

			fmt.Fprintf(w, "%s%s  rgb(%s)  hsl(%d, %d%%, %d%%)\n", swatch(info.RGB, enabled), info.Hex,
				info.RGB, info.HSL.H, info.HSL.S, info.HSL.L)
			fmt.Fprintf(w, "chroma %d  value %d  temperature %s  tint %s  [%s]\n\n",
				info.Chroma, info.Value, info.Temperature, info.Tint, info.Notation())

			mix := analysis.MixingFor(info.RGB)
			heading(w, enabled, "Mixing: "+mix.Category)
			for _, s := range mix.Suggestions {
				fmt.Fprintf(w, "  %s\n", s)
			}
			fmt.Fprintln(w)

			h := analysis.GenerateHarmony(info.HSL, t)
			heading(w, enabled, fmt.Sprintf("Harmony: %s (%s)", h.Type, h.Type.Description()))
			for _, c := range h.Colors {
				fmt.Fprintf(w, "  %s%s  hsl(%d, %d%%, %d%%)\n", swatch(c.RGB, enabled), c.Hex, c.HSL.H, c.HSL.S, c.HSL.L)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&harmony, "harmony", string(analysis.Complementary), "harmony rule (complementary, triadic, analogous, split-complementary, tetradic, monochromatic)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "never print colour swatches")
	return cmd
}
