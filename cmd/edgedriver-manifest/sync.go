package main

import (
	"os"
	"path/filepath"

	"github.com/project-copacetic/edgedriver-manifest/pkg/config"
	"github.com/project-copacetic/edgedriver-manifest/pkg/pipeline"
	"github.com/project-copacetic/edgedriver-manifest/pkg/transport"
	"github.com/project-copacetic/edgedriver-manifest/pkg/workspace"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func syncCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "edgedriver-manifest",
		Short: "Index the published Microsoft Edge WebDriver downloads",
		Long: `edgedriver-manifest downloads the blob listing of the Edge WebDriver
storage account and writes one JSON file per driver version, mapping each
platform to its download URL and storage metadata.

The output directory is deleted and recreated on every run:

  <dir>/manifest.xml           the listing exactly as fetched
  <dir>/versions/<version>.json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(viper.New(), cmd.Flags(), configFile)
			if err != nil {
				return err
			}
			if err := cfg.ConfigureLogging(log.StandardLogger()); err != nil {
				return err
			}

			root, err := resolveRoot(cfg.Dir)
			if err != nil {
				return err
			}

			p := &pipeline.Pipeline{
				Fetcher:   transport.NewHTTPFetcher(cfg.Timeout),
				Workspace: workspace.New(afero.NewOsFs(), root),
				URL:       cfg.URL,
				UserAgent: cfg.UserAgent,
			}

			result, err := p.Run(cmd.Context())
			if err != nil {
				return err
			}

			log.WithFields(log.Fields{
				"versions":  result.Stats.Versions,
				"platforms": result.Stats.Platforms,
				"skipped":   result.Stats.Skipped,
				"dir":       result.VersionsDir,
			}).Info("Manifest sync complete")
			return nil
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "Config file (yaml, json or toml)")
	config.RegisterFlags(cmd.Flags(), version)

	return cmd
}

// resolveRoot makes a relative output directory absolute against the
// current working directory.
func resolveRoot(dir string) (string, error) {
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir), nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", &workspace.IOError{Op: "getwd", Path: ".", Err: err}
	}
	return filepath.Join(cwd, dir), nil
}
