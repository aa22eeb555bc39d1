// Package cmd assembles the paperdrop command line interface.
package cmd

import (
	"context"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/paperdrop/paperdrop/pkg/logging"
	"github.com/paperdrop/paperdrop/pkg/version"
)

// NewRootCommand returns the root command with all subcommands attached.
func NewRootCommand(fs afero.Fs, ctx context.Context, logger *logging.Logger) *cobra.Command {
	cobra.EnableCommandSorting = false
	rootCmd := &cobra.Command{
		Use:   "paperdrop",
		Short: "Ephemeral download links for generated documents.",
		Long: `Paperdrop generates documents (reimbursement forms, invoices) and images,
parks each produced file in an ephemeral artifact store, and hands callers a
short-lived, unguessable download link instead of the payload itself. Links
expire on their own; storage is reclaimed whether or not anyone downloaded.`,
		Version: version.String(),
	}

	rootCmd.AddCommand(NewServeCommand(fs, ctx, logger))
	rootCmd.AddCommand(NewConfigCommand(fs, logger))

	return rootCmd
}
