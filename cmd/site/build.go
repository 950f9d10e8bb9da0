package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBuildCmd(a *app) *cobra.Command {
	var outputDir string
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render the site into the output directory",
		Long: `build wipes the output directory, copies the static files into it and
renders every page, minified, along with a sitemap.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if outputDir != "" {
				a.cfg.OutputDir = outputDir
			}
			ctx := cmd.Context()
			s, err := a.newSite(ctx)
			if err != nil {
				return err
			}
			res, err := a.newBuilder(s).Build(ctx)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "built %d pages into %s\n", res.Pages, a.cfg.OutputDir)
			return err
		},
	}
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory (overrides outputDir)")
	return cmd
}
