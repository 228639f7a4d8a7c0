package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/schemadrift/migrate/differ"
	"github.com/schemadrift/migrate/internal/loader"
	"github.com/schemadrift/migrate/model"
)

var (
	dropSource  string
	dropDialect string
	dropOut     string
)

var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Emit the SQL to drop every object in a schema snapshot",
	Long:  "Load a .sql snapshot and emit the SQL that tears down every table, index, and sequence it describes, in dependency order.",
	RunE:  runDrop,
}

func init() {
	dropCmd.Flags().StringVar(&dropSource, "source", "", "path to the schema .sql file (required)")
	dropCmd.Flags().StringVar(&dropDialect, "dialect", "postgres", `SQL dialect to render ("all" renders every registered dialect)`)
	dropCmd.Flags().StringVar(&dropOut, "out", "", "write SQL to this file instead of stdout")
	dropCmd.MarkFlagRequired("source")
}

func runDrop(cmd *cobra.Command, args []string) error {
	schemaSQL, err := os.ReadFile(dropSource)
	if err != nil {
		return fmt.Errorf("reading source: %w", err)
	}
	db, err := loader.Parse(string(schemaSQL))
	if err != nil {
		return fmt.Errorf("parsing schema: %w", err)
	}

	ops := differ.DropSchema(db)

	names, err := dialectNames(dropDialect)
	if err != nil {
		return err
	}
	results, err := renderDialects(names, db, &model.Database{}, ops)
	if err != nil {
		return err
	}
	return writeResults(dropOut, names, results)
}
