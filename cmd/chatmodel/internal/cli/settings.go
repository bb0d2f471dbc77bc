package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newSettingsCommand(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Print the effective settings after file and environment overrides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, err := global.settingsSource()
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(src.Snapshot())
			if err != nil {
				return fmt.Errorf("failed to encode settings: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
