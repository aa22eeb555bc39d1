package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"

	"github.com/paperdrop/paperdrop/cmd"
	"github.com/paperdrop/paperdrop/pkg/logging"
)

func main() {
	fs := afero.NewOsFs()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := logging.GetLogger()
	setupSignalHandler(cancel, logger)

	rootCmd := cmd.NewRootCommand(fs, ctx, logger)
	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// setupSignalHandler cancels the root context on SIGINT/SIGTERM so the
// HTTP server drains and the reaper stops before exit.
func setupSignalHandler(cancel context.CancelFunc, logger *logging.Logger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		logger.Info("received signal, shutting down", "signal", sig)
		cancel()
	}()
}
