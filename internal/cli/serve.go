package cli

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ironsheep/paint-study-mcp/internal/server"
	"github.com/ironsheep/paint-study-mcp/internal/session"
)

func newServeCmd(info VersionInfo, opts *rootOptions) *cobra.Command {
	var noStdio bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve MCP over stdin/stdout (the default)",
		Long: `Serve MCP over stdin/stdout. Logs go to stderr since stdout carries the
protocol.

With --http-addr the same JSON-RPC methods are also served over HTTP, along
with the displayed and original images as PNG. Use --no-stdio to serve HTTP
only, until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.config(cmd.Flags())
			if err != nil {
				return err
			}
			if noStdio && cfg.HTTPAddr == "" {
				return errors.New("--no-stdio requires --http-addr")
			}

			logger := cfg.Logger(cmd.ErrOrStderr())
			logger.Debug("starting", "version", info.Version, "built", info.BuildTime, "commit", info.GitCommit)

			srv := server.New(server.Options{
				Version: info.Version,
				Logger:  logger,
				Session: session.Options{
					SampleStride: cfg.SampleStride,
					PreviewMax:   cfg.PreviewMax,
				},
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var httpDone chan error
			if cfg.HTTPAddr != "" {
				httpDone = make(chan error, 1)
				go func() { httpDone <- srv.ListenHTTP(ctx, cfg.HTTPAddr) }()
			}

			var stdioDone chan error
			if !noStdio {
				stdioDone = make(chan error, 1)
				go func() { stdioDone <- srv.Serve(cmd.InOrStdin(), cmd.OutOrStdout()) }()
			}

			// A nil channel never fires, so each case only applies when that
			// transport is running.
			select {
			case err = <-stdioDone:
				logger.Debug("stdin closed")
			case err = <-httpDone:
				return err
			case <-ctx.Done():
				logger.Info("shutting down")
			}

			stop()
			if httpDone != nil {
				if herr := <-httpDone; herr != nil && err == nil {
					err = herr
				}
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&noStdio, "no-stdio", false, "serve HTTP only (requires --http-addr)")
	return cmd
}
