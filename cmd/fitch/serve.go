package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fitchkit/fitch/internal/httpapi"
	"github.com/fitchkit/fitch/internal/logging"
	"github.com/fitchkit/fitch/internal/store"
)

func serveCmd(opts *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the proof HTTP API",
		Long: `Serve the proof API over HTTP. Persisted proofs are restored on startup
and every mutation is written back to the store. Prometheus metrics are
exposed on /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.HTTP.Addr = addr
			}
			logger := opts.logger(cfg)

			st, err := store.Open(store.Config{
				Path:       cfg.Store.Path,
				InMemory:   cfg.Store.InMemory,
				SyncWrites: cfg.Store.SyncWrites,
				Logger:     logging.Component(logger, "store"),
			})
			if err != nil {
				return err
			}
			defer st.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := httpapi.NewServer(cfg.HTTP, st, logging.Component(logger, "httpapi"))
			if err := srv.Restore(ctx); err != nil {
				return err
			}
			logger.Info("server starting", "addr", cfg.HTTP.Addr)
			return srv.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}
