package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/schemadrift/migrate/internal/errs"
	"github.com/schemadrift/migrate/model"
	"github.com/schemadrift/migrate/operation"
	"github.com/schemadrift/migrate/sqlgen"
	"golang.org/x/sync/errgroup"
)

// dialectNames resolves the --dialect flag to the list of registered
// dialect names to render: "all" expands to every registered dialect in
// a stable order, anything else must name exactly one.
func dialectNames(flag string) ([]string, error) {
	registered := sqlgen.Names()
	if flag == "all" {
		sort.Strings(registered)
		return registered, nil
	}
	for _, n := range registered {
		if n == flag {
			return []string{flag}, nil
		}
	}
	return nil, errs.New(errs.UnsupportedDialectFeature, "no dialect registered under %q", flag)
}

// renderDialects renders ops once per dialect in names. Each dialect's
// generator owns its own variable-name counter, so the independent
// renders are safe to run concurrently — the same shape of fan-out the
// teacher's driver registry initialization uses elsewhere in the pack.
func renderDialects(names []string, source, target *model.Database, ops []operation.Operation) (map[string][]sqlgen.Statement, error) {
	results := make(map[string][]sqlgen.Statement, len(names))
	var mu sync.Mutex

	g, _ := errgroup.WithContext(context.Background())
	for _, name := range names {
		name := name
		g.Go(func() error {
			gen, err := sqlgen.Create(name, source, target)
			if err != nil {
				return err
			}
			stmts, err := gen.GenerateSql(ops)
			if err != nil {
				return fmt.Errorf("dialect %s: %w", name, err)
			}
			mu.Lock()
			results[name] = stmts
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// writeResults prints each dialect's rendered statements to outPath, or
// stdout when outPath is empty. Output for more than one dialect is
// separated by a "-- dialect: NAME" header so `--dialect all` output can
// be split back apart by a downstream tool.
func writeResults(outPath string, names []string, results map[string][]sqlgen.Statement) error {
	w := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("opening --out: %w", err)
		}
		defer f.Close()
		w = f
	}

	for i, name := range names {
		if len(names) > 1 {
			fmt.Fprintf(w, "-- dialect: %s\n", name)
		}
		for _, stmt := range results[name] {
			fmt.Fprintf(w, "%s;\n", stmt.Text)
		}
		if i < len(names)-1 {
			fmt.Fprintln(w)
		}
	}
	return nil
}
