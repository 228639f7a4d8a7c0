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
	createSource  string
	createDialect string
	createOut     string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Emit the SQL to create a schema snapshot from scratch",
	Long:  "Load a .sql snapshot and emit the SQL that builds every table, index, and sequence it describes against an empty database.",
	RunE:  runCreate,
}

func init() {
	createCmd.Flags().StringVar(&createSource, "source", "", "path to the schema .sql file (required)")
	createCmd.Flags().StringVar(&createDialect, "dialect", "postgres", `SQL dialect to render ("all" renders every registered dialect)`)
	createCmd.Flags().StringVar(&createOut, "out", "", "write SQL to this file instead of stdout")
	createCmd.MarkFlagRequired("source")
}

func runCreate(cmd *cobra.Command, args []string) error {
	schemaSQL, err := os.ReadFile(createSource)
	if err != nil {
		return fmt.Errorf("reading source: %w", err)
	}
	db, err := loader.Parse(string(schemaSQL))
	if err != nil {
		return fmt.Errorf("parsing schema: %w", err)
	}

	ops := differ.CreateSchema(db)

	names, err := dialectNames(createDialect)
	if err != nil {
		return err
	}
	results, err := renderDialects(names, &model.Database{}, db, ops)
	if err != nil {
		return err
	}
	return writeResults(createOut, names, results)
}
