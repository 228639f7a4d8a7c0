package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/schemadrift/migrate/sqlgen"
)

var dialectsCmd = &cobra.Command{
	Use:   "dialects",
	Short: "List the registered SQL dialects",
	Run: func(cmd *cobra.Command, args []string) {
		names := sqlgen.Names()
		sort.Strings(names)
		for _, n := range names {
			fmt.Println(n)
		}
	},
}
