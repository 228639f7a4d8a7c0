package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/schemadrift/migrate/differ"
	"github.com/schemadrift/migrate/internal/loader"
	"github.com/schemadrift/migrate/internal/logger"
	"github.com/schemadrift/migrate/sqlgen"
)

var (
	diffSource   string
	diffTarget   string
	diffDialect  string
	diffOut      string
	diffApplyDSN string
)

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Diff two schema snapshots and emit migration SQL",
	Long:  "Load a source and a target .sql snapshot, pair their tables and columns, and emit the SQL that migrates one to the other.",
	RunE:  runDiff,
}

func init() {
	diffCmd.Flags().StringVar(&diffSource, "source", "", "path to the source schema .sql file (required)")
	diffCmd.Flags().StringVar(&diffTarget, "target", "", "path to the target schema .sql file (required)")
	diffCmd.Flags().StringVar(&diffDialect, "dialect", "postgres", `SQL dialect to render ("all" renders every registered dialect)`)
	diffCmd.Flags().StringVar(&diffOut, "out", "", "write SQL to this file instead of stdout")
	diffCmd.Flags().StringVar(&diffApplyDSN, "apply-dsn", "", "apply the generated SQL to this Postgres DSN instead of just printing it (requires --dialect postgres)")
	diffCmd.MarkFlagRequired("source")
	diffCmd.MarkFlagRequired("target")
}

func runDiff(cmd *cobra.Command, args []string) error {
	sourceSQL, err := os.ReadFile(diffSource)
	if err != nil {
		return fmt.Errorf("reading source: %w", err)
	}
	targetSQL, err := os.ReadFile(diffTarget)
	if err != nil {
		return fmt.Errorf("reading target: %w", err)
	}

	sourceDB, err := loader.Parse(string(sourceSQL))
	if err != nil {
		return fmt.Errorf("parsing source: %w", err)
	}
	targetDB, err := loader.Parse(string(targetSQL))
	if err != nil {
		return fmt.Errorf("parsing target: %w", err)
	}

	sourceEntities := loader.ToEntityModel(sourceDB).Entities
	targetEntities := loader.ToEntityModel(targetDB).Entities

	ops, err := differ.Diff(sourceEntities, targetEntities, sourceDB, targetDB)
	if err != nil {
		return fmt.Errorf("diffing: %w", err)
	}

	names, err := dialectNames(diffDialect)
	if err != nil {
		return err
	}
	results, err := renderDialects(names, sourceDB, targetDB, ops)
	if err != nil {
		return err
	}

	if diffApplyDSN != "" {
		if diffDialect != "postgres" {
			return fmt.Errorf("--apply-dsn requires --dialect postgres, got %q", diffDialect)
		}
		return applyToPostgres(diffApplyDSN, results["postgres"])
	}

	return writeResults(diffOut, names, results)
}

func applyToPostgres(dsn string, stmts []sqlgen.Statement) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("connecting to --apply-dsn: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("pinging --apply-dsn: %w", err)
	}
	for i, stmt := range stmts {
		if stmt.Text == "" {
			continue
		}
		if _, err := execContextWithLogging(ctx, db, stmt, fmt.Sprintf("statement %d", i)); err != nil {
			return fmt.Errorf("applying generated SQL: %w", err)
		}
	}
	fmt.Printf("applied %d statements\n", len(stmts))
	return nil
}

// execContextWithLogging runs stmt against db, logging the SQL text at
// Debug level before execution and the outcome after, when debug mode
// is enabled.
func execContextWithLogging(ctx context.Context, db *sql.DB, stmt sqlgen.Statement, description string) (sql.Result, error) {
	isDebug := logger.IsDebug()
	if isDebug {
		logger.Get().Debug("executing SQL", "description", description, "sql", stmt.Text)
	}

	result, err := db.ExecContext(ctx, stmt.Text, stmt.Parameters...)

	if isDebug {
		if err != nil {
			logger.Get().Debug("SQL execution failed", "description", description, "error", err)
		} else {
			logger.Get().Debug("SQL execution succeeded", "description", description)
		}
	}

	return result, err
}
