// Package testutil provides the embedded-Postgres lifecycle helper
// internal/verify's integration tests build on.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresVersion is an alias for the embedded-postgres version type, so
// callers don't need to import embedded-postgres directly.
type PostgresVersion = embeddedpostgres.PostgresVersion

// getPostgresVersion returns the PostgreSQL version to use for testing,
// read from MIGRATE_POSTGRES_VERSION, defaulting to "17".
func getPostgresVersion() PostgresVersion {
	switch os.Getenv("MIGRATE_POSTGRES_VERSION") {
	case "14":
		return PostgresVersion("14.18.0")
	case "15":
		return PostgresVersion("15.13.0")
	case "16":
		return PostgresVersion("16.9.0")
	default:
		return PostgresVersion("17.5.0")
	}
}

func findAvailablePort() (int, error) {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		return 0, err
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port, nil
}

// TestPostgres holds a running embedded PostgreSQL instance for a single test.
type TestPostgres struct {
	Database    *embeddedpostgres.EmbeddedPostgres
	Host        string
	Port        int
	DSN         string
	Conn        *sql.DB
	RuntimePath string
}

// SetupTestPostgres starts a throwaway embedded PostgreSQL instance with
// standard test credentials.
func SetupTestPostgres(ctx context.Context, t testing.TB) *TestPostgres {
	database, username, password := "testdb", "testuser", "testpass"

	testName := "shared"
	if t != nil {
		testName = strings.ReplaceAll(t.Name(), "/", "_")
	}
	timestamp := time.Now().Format("20060102_150405.000000000")
	runtimePath := filepath.Join(os.TempDir(), fmt.Sprintf("migrate-test-%s-%s", testName, timestamp))

	port, err := findAvailablePort()
	if err != nil {
		failOrPanic(t, "failed to find available port: %v", err)
	}

	config := embeddedpostgres.DefaultConfig().
		Version(getPostgresVersion()).
		Database(database).
		Username(username).
		Password(password).
		Port(uint32(port)).
		RuntimePath(runtimePath).
		DataPath(filepath.Join(runtimePath, "data")).
		Logger(io.Discard).
		StartParameters(map[string]string{
			"logging_collector":          "off",
			"log_destination":            "stderr",
			"log_min_messages":           "PANIC",
			"log_statement":              "none",
			"log_min_duration_statement": "-1",
		})

	postgres := embeddedpostgres.NewDatabase(config)
	if err := postgres.Start(); err != nil {
		failOrPanic(t, "failed to start embedded postgres: %v", err)
	}

	host := "localhost"
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable", username, password, host, port, database)

	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		postgres.Stop()
		failOrPanic(t, "failed to connect to embedded postgres: %v", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		postgres.Stop()
		failOrPanic(t, "failed to ping embedded postgres: %v", err)
	}

	return &TestPostgres{
		Database:    postgres,
		Host:        host,
		Port:        port,
		DSN:         dsn,
		Conn:        conn,
		RuntimePath: runtimePath,
	}
}

// Terminate stops the instance and cleans up its runtime directory.
func (tp *TestPostgres) Terminate(ctx context.Context, t testing.TB) {
	tp.Conn.Close()
	if err := tp.Database.Stop(); err != nil && t != nil {
		t.Logf("failed to stop embedded postgres: %v", err)
	}
	if tp.RuntimePath != "" {
		if err := os.RemoveAll(tp.RuntimePath); err != nil && t != nil {
			t.Logf("failed to clean up runtime directory: %v", err)
		}
	}
}

// ApplySQL resets schema to a clean state and executes sqlText against it.
func (tp *TestPostgres) ApplySQL(ctx context.Context, schema, sqlText string) error {
	if _, err := tp.Conn.ExecContext(ctx, fmt.Sprintf("DROP SCHEMA IF EXISTS %q CASCADE", schema)); err != nil {
		return fmt.Errorf("dropping schema %s: %w", schema, err)
	}
	if _, err := tp.Conn.ExecContext(ctx, fmt.Sprintf("CREATE SCHEMA %q", schema)); err != nil {
		return fmt.Errorf("creating schema %s: %w", schema, err)
	}
	if _, err := tp.Conn.ExecContext(ctx, fmt.Sprintf("SET search_path TO %q", schema)); err != nil {
		return fmt.Errorf("setting search_path: %w", err)
	}
	if sqlText == "" {
		return nil
	}
	if _, err := tp.Conn.ExecContext(ctx, sqlText); err != nil {
		return fmt.Errorf("applying SQL: %w", err)
	}
	return nil
}

func failOrPanic(t testing.TB, format string, args ...any) {
	if t != nil {
		t.Fatalf(format, args...)
		return
	}
	panic(fmt.Sprintf(format, args...))
}
