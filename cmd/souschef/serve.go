package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/souschef/internal/reaper"
	"github.com/hammamikhairi/souschef/internal/server"
)

func newServeCmd(verbose, quiet *bool) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := wireApp(*verbose, *quiet)
			if err != nil {
				return err
			}
			defer app.cleanup()

			if addr != "" {
				app.cfg.Addr = addr
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if app.cfg.SessionTTL > 0 {
				r := reaper.New(app.store, app.cfg.SessionTTL, app.log.Named("reaper"))
				r.Start(ctx)
				defer r.Stop()
			}

			srv := server.New(app.cfg.Addr, app.engine, app.responder, app.log.Named("http"))
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}
