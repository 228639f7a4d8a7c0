package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/schemadrift/migrate/internal/logger"
	"github.com/schemadrift/migrate/internal/version"
	"github.com/spf13/cobra"
)

var Debug bool

var RootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Relational schema differ and dialect-aware SQL generator",
	Long: fmt.Sprintf(`migrate compares two relational schema snapshots and emits the SQL
needed to turn one into the other.

Version: %s %s

Commands:
  diff      Diff two schema snapshots and emit migration SQL
  create    Emit the SQL to create a schema snapshot from scratch
  drop      Emit the SQL to drop every object in a schema snapshot
  dialects  List the registered SQL dialects

Use "migrate [command] --help" for more information about a command.`,
		version.Version(), platform()),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger()
	},
}

func init() {
	RootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "enable debug logging")
	RootCmd.AddCommand(diffCmd)
	RootCmd.AddCommand(createCmd)
	RootCmd.AddCommand(dropCmd)
	RootCmd.AddCommand(dialectsCmd)
	RootCmd.AddCommand(VersionCmd)
}

func setupLogger() {
	level := slog.LevelInfo
	if Debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger.SetGlobal(slog.New(handler), Debug)
}

// platform returns the OS/architecture combination.
func platform() string {
	return runtime.GOOS + "/" + runtime.GOARCH
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
