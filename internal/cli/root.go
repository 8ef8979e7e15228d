// Package cli provides the command-line interface for paint-study-mcp.
package cli

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ironsheep/paint-study-mcp/internal/config"
)

// VersionInfo is set by main from its ldflags variables.
type VersionInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

// String returns a human-readable version string.
func (v VersionInfo) String() string {
	return fmt.Sprintf("paint-study-mcp %s\n  Build time: %s\n  Git commit: %s\n  Go: %s %s/%s",
		v.Version, v.BuildTime, v.GitCommit, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	logLevel     string
	httpAddr     string
	sampleStride int
	previewMax   int

	// lookup reads the environment; tests replace it.
	lookup func(string) (string, bool)
}

// config resolves settings from the environment, then overrides them with
// any flag the user set explicitly.
func (o *rootOptions) config(flags *pflag.FlagSet) (config.Config, error) {
	lookup := o.lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	cfg, err := config.FromLookup(lookup)
	if err != nil {
		return cfg, err
	}

	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("http-addr") {
		cfg.HTTPAddr = o.httpAddr
	}
	if flags.Changed("sample-stride") {
		cfg.SampleStride = o.sampleStride
	}
	if flags.Changed("preview-max") {
		cfg.PreviewMax = o.previewMax
	}
	return cfg, cfg.Validate()
}

// NewRootCmd builds the command tree. Running the root command without a
// subcommand starts the MCP server, which is how MCP clients launch it.
func NewRootCmd(info VersionInfo) *cobra.Command {
	opts := &rootOptions{}
	return newRootCmd(info, opts)
}

func newRootCmd(info VersionInfo, opts *rootOptions) *cobra.Command {
	serve := newServeCmd(info, opts)

	rootCmd := &cobra.Command{
		Use:   "paint-study-mcp",
		Short: "MCP server for studying reference photos for painting",
		Long: `paint-study-mcp loads a reference photo and helps a painter study it:
value studies, simplifying filters, colour sampling and harmonies, light
temperature and paint mixing suggestions.

Without a subcommand it serves MCP over stdin/stdout. Configure it in your
MCP client (e.g., Claude Desktop).

Environment variables:
  PAINT_STUDY_LOG_LEVEL      trace, debug, info, warn, error or off
  PAINT_STUDY_HTTP_ADDR      also serve JSON-RPC over HTTP on this address
  PAINT_STUDY_SAMPLE_STRIDE  temperature sampler stride in pixels
  PAINT_STUDY_PREVIEW_MAX    bound the working copy to this many pixels`,
		Version:      info.Version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         serve.RunE,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.logLevel, "log-level", "info", "log level (trace, debug, info, warn, error, off)")
	pf.StringVar(&opts.httpAddr, "http-addr", "", "also serve JSON-RPC over HTTP on this address")
	pf.IntVar(&opts.sampleStride, "sample-stride", 4, "temperature sampler stride in pixels")
	pf.IntVar(&opts.previewMax, "preview-max", 0, "bound the working copy to this many pixels (0 = full resolution)")
	serve.Flags().VisitAll(func(f *pflag.Flag) { rootCmd.Flags().AddFlag(f) })

	rootCmd.SetVersionTemplate(info.String() + "\n")

	rootCmd.AddCommand(serve)
	rootCmd.AddCommand(newStudyCmd(opts))
	rootCmd.AddCommand(newInspectCmd(opts))
	rootCmd.AddCommand(newColorCmd())
	rootCmd.AddCommand(newVersionCmd(info))

	return rootCmd
}

func newVersionCmd(info VersionInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), info.String())
		},
	}
}
