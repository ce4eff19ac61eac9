package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/talkincode/productcards/internal/adminapi"
	"github.com/talkincode/productcards/internal/webserver"
	"github.com/talkincode/productcards/internal/webui"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func newServeCmd(open appOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web server and background jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// confirmations come from each request, the default prompter declines
			a, err := open(nil)
			if err != nil {
				return err
			}
			defer a.Release()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a.StartBackgroundJobs()

			srv := webserver.NewWebServer(a)
			webui.Init()
			adminapi.Init()

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return srv.Start(gctx)
			})
			g.Go(func() error {
				<-gctx.Done()
				zap.S().Info("shutdown requested")
				return nil
			})
			if err := g.Wait(); err != nil && err != context.Canceled {
				return err
			}
			return nil
		},
	}
}
