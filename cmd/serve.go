package cmd

import (
	"context"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/paperdrop/paperdrop/pkg/artifact"
	"github.com/paperdrop/paperdrop/pkg/cfg"
	"github.com/paperdrop/paperdrop/pkg/imagegen"
	"github.com/paperdrop/paperdrop/pkg/logging"
	"github.com/paperdrop/paperdrop/pkg/metrics"
	"github.com/paperdrop/paperdrop/pkg/server"
)

// NewServeCommand creates the 'serve' command and wires the full service:
// blob writer, token store, reaper and HTTP boundary.
func NewServeCommand(fs afero.Fs, ctx context.Context, logger *logging.Logger) *cobra.Command {
	return &cobra.Command{
		Use:     "serve",
		Aliases: []string{"s"},
		Example: "$ paperdrop serve",
		Short:   "Start the paperdrop HTTP service",
		RunE: func(_ *cobra.Command, _ []string) error {
			config, err := cfg.Load(fs, logger)
			if err != nil {
				return err
			}

			blobs, err := artifact.NewBlobWriter(fs, config.DataDir)
			if err != nil {
				return err
			}

			// Nothing survives a restart: tokens from the previous process
			// are gone, so their blobs are unreachable garbage.
			removed, err := blobs.Purge()
			if err != nil {
				return err
			}
			if removed > 0 {
				logger.Info("purged leftover artifacts from previous run", "count", removed)
			}

			store := artifact.NewStore(blobs, artifact.SystemClock(), logger, metrics.NewProm("paperdrop"))
			defer store.Close()

			reaper := artifact.NewReaper(store, config.SweepInterval)
			go reaper.Run(ctx)

			images := imagegen.New(config.ImageAPIURL, config.ImageAPIKey, logger)
			if !images.Configured() {
				logger.Warn("image API not configured; POST /v1/images will report 503")
			}

			srv := server.New(config, store, images, logger, metrics.NewGatewayProm("paperdrop"))
			return srv.Run(ctx)
		},
	}
}
