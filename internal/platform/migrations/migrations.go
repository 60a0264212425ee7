// Package migrations embeds the SQL schema for every supported storage driver
// and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS

// Goose dialect names paired with their embedded directories.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

var dirs = map[string]string{
	DialectPostgres: "postgres",
	DialectSQLite:   "sqlite",
}

// goose keeps base FS, dialect and logger in package state.
var (
	mu     sync.Mutex
	logger *slog.Logger
)

// SetLogger routes goose output to l. A nil l restores slog.Default.
func SetLogger(l *slog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// gooseLogger adapts *slog.Logger to goose.Logger.
type gooseLogger struct {
	logger *slog.Logger
}

func (g gooseLogger) Printf(format string, v ...any) {
	g.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "migrations")
}

func (g gooseLogger) Fatalf(format string, v ...any) {
	g.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "migrations")
	os.Exit(1)
}

// useLogger must be called with mu held.
func useLogger() {
	l := logger
	if l == nil {
		l = slog.Default()
	}
	goose.SetLogger(gooseLogger{logger: l})
}

// Up applies all pending migrations for dialect.
func Up(ctx context.Context, db *sql.DB, dialect string) error {
	dir, ok := dirs[dialect]
	if !ok {
		return fmt.Errorf("unsupported migration dialect %q", dialect)
	}

	mu.Lock()
	defer mu.Unlock()

	useLogger()
	goose.SetBaseFS(FS)
	defer goose.SetBaseFS(nil)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("apply %s migrations: %w", dialect, err)
	}
	return nil
}

// Version reports the latest applied migration for dialect.
func Version(ctx context.Context, db *sql.DB, dialect string) (int64, error) {
	if _, ok := dirs[dialect]; !ok {
		return 0, fmt.Errorf("unsupported migration dialect %q", dialect)
	}

	mu.Lock()
	defer mu.Unlock()

	useLogger()
	if err := goose.SetDialect(dialect); err != nil {
		return 0, fmt.Errorf("set goose dialect: %w", err)
	}
	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return 0, fmt.Errorf("read %s migration version: %w", dialect, err)
	}
	return version, nil
}
