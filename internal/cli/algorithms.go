package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) algorithmsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List the available coupling algorithms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), algorithmsTable(c.Config.Engine.DefaultAlgorithm))
			return nil
		},
	}
}
