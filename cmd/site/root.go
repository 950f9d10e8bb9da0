package main

import (
	"context"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bernardoamc/bernardoamc.com/internal/build"
	"github.com/bernardoamc/bernardoamc.com/internal/config"
	"github.com/bernardoamc/bernardoamc.com/internal/logger"
	"github.com/bernardoamc/bernardoamc.com/internal/pagedata"
	"github.com/bernardoamc/bernardoamc.com/internal/site"
	"github.com/bernardoamc/bernardoamc.com/temple"
	"github.com/bernardoamc/bernardoamc.com/web"
)

type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg config.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:           "site",
		Short:         "Build and serve bernardoamc.com",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default is ./config.yaml)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: text or json")

	cmd.AddCommand(newBuildCmd(a), newServeCmd(a))
	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}
	a.cfg = cfg
	a.log = logger.Setup(cmd.ErrOrStderr(), logger.ParseLevel(cfg.Log.Level), cfg.Log.Format)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(temple.LoggingContext(ctx, a.log))
	return nil
}

// source is the embedded copy of web/ unless a source directory is
// configured.
func (a *app) source() fs.FS {
	if a.cfg.SourceDir != "" {
		return os.DirFS(a.cfg.SourceDir)
	}
	return web.FS
}

func (a *app) newSite(ctx context.Context) (*site.Site, error) {
	return site.New(ctx, a.source(), a.cfg.PathPrefix, pagedata.StaticResolver{Metadata: &a.cfg.SiteMetadata})
}

func (a *app) newBuilder(s *site.Site) *build.Builder {
	return &build.Builder{
		Site:      s,
		OutputDir: a.cfg.OutputDir,
		SourceDir: a.cfg.SourceDir,
		SiteURL:   a.cfg.SiteMetadata.SiteURL,
	}
}
