package main

import (
	"context"
	"errors"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"archlens/internal/gateway/api"
	"archlens/internal/gateway/server"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(c *cli) *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if port != "" {
				c.cfg.Server.Port = port
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := c.build(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			mux := server.NewMux(api.New(a.workspace, c.logger), a.registry, c.logger)
			srv := server.New(c.cfg.Server.Port, mux, c.logger)
			ln, err := net.Listen("tcp", srv.Addr())
			if err != nil {
				return err
			}
			return c.serve(ctx, a, srv, ln)
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "listen address, overrides PORT")
	return cmd
}

// serve runs srv on ln until ctx is cancelled, then drains it.
func (c *cli) serve(ctx context.Context, a *app, srv *server.Server, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Serve(ln) })
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		c.logger.Info("shutting down", zap.Error(context.Cause(gctx)))
		return srv.Shutdown(sctx)
	})
	err := g.Wait()
	c.logUsage(a)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
