package cmd

import (
	"fmt"

	"nb-init/core/nametemplate"

	"github.com/spf13/cobra"
)

// expandCmd shows the names a name template denotes.
var expandCmd = &cobra.Command{
	Use:   "expand [template]",
	Short: "Print the names denoted by a name template",
	Long: `Expands numeric ranges in a name template, one name per line.

Examples:
  nb-init expand 'eth[0-3]'
  nb-init expand 'r[1-2]-pdu[1-2]'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := nametemplate.Expand(args[0])
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(expandCmd)
}
