package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"nb-init/core/catalog"

	"github.com/spf13/cobra"
)

// catalogCmd prints the supported entity types in processing order.
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the supported entity types in processing order",
	Long:  `Prints every entity type with its rank, NetBox endpoint, unique key and references. Documents are named after the TAG column.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "RANK\tTAG\tPATH\tUNIQUE KEY\tREFERENCES")
		for _, d := range catalog.Default().Ordered() {
			var refs []string
			for _, ref := range d.References {
				refs = append(refs, ref.Field+"->"+ref.Target)
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", d.Rank, d.Tag, d.Path, d.UniqueKey, strings.Join(refs, ","))
		}
		return w.Flush()
	},
}

func init() {
	RootCmd.AddCommand(catalogCmd)
}
