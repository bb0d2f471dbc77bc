package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cecil-the-coder/chatmodel-kit/pkg/types"
)

func newProvidersCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "providers",
		Aliases: []string{"ls"},
		Short:   "List supported providers",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, p := range types.AllProviderTypes() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), p); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
