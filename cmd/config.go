package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/paperdrop/paperdrop/pkg/cfg"
	"github.com/paperdrop/paperdrop/pkg/logging"
)

// NewConfigCommand creates the 'config' command, which prints the
// effective configuration with secrets redacted.
func NewConfigCommand(fs afero.Fs, logger *logging.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration (secrets redacted)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			config, err := cfg.Load(fs, logger)
			if err != nil {
				return err
			}
			for _, pair := range config.Redacted() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", pair[0], pair[1])
			}
			return nil
		},
	}
}
