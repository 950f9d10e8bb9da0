package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bernardoamc/bernardoamc.com/internal/serve"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Build the site and serve it locally",
		Long: `serve performs an initial build, then serves the output directory.
When sourceDir is configured, changes to it rebuild the site.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				a.cfg.Serve.Addr = addr
			}
			ctx := cmd.Context()
			s, err := a.newSite(ctx)
			if err != nil {
				return err
			}
			b := a.newBuilder(s)
			if _, err := b.Build(ctx); err != nil {
				return fmt.Errorf("initial build failed: %w", err)
			}

			g, gctx := errgroup.WithContext(ctx)
			if a.cfg.SourceDir != "" {
				w, err := serve.NewWatcher(a.cfg.SourceDir, func(ctx context.Context) error {
					if err := s.Reload(ctx); err != nil {
						return err
					}
					_, err := b.Build(ctx)
					return err
				}, a.cfg.OutputDir)
				if err != nil {
					return err
				}
				g.Go(func() error {
					return w.Run(gctx)
				})
			}
			g.Go(func() error {
				return serve.ListenAndServe(gctx, a.cfg.Serve.Addr, serve.Handler(a.cfg.OutputDir, a.cfg.PathPrefix, a.log))
			})
			return g.Wait()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "address to listen on (overrides serve.addr)")
	return cmd
}
