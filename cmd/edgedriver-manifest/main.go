package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/project-copacetic/edgedriver-manifest/pkg/pipeline"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newRootCmd() *cobra.Command {
	rootCmd := syncCmd()
	rootCmd.AddCommand(versionCmd())
	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.WithField("kind", pipeline.Kind(err)).Errorf("fatal error (%s): %v", pipeline.Kind(err), err)
		stop()
		os.Exit(1)
	}
}
