package cmd

import (
	"fmt"

	"github.com/schemadrift/migrate/internal/version"
	"github.com/spf13/cobra"
)

var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  "Display the version number of migrate",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("migrate v%s %s\n", version.Version(), platform())
	},
}
