package store

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// SQLiteStore persists submissions in a SQLite file, the storage engine of
// single-node deployments. Timestamps are stored as unix milliseconds.
type SQLiteStore struct {
	sqlStore
}

// NewSQLite constructs a SQLite-backed submission store. The schema is
// applied by internal/platform/sqlite.Open.
func NewSQLite(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{sqlStore{db: db, dialect: dialect{
		bind:         sqliteBind,
		encodeTime:   func(t time.Time) any { return t.UTC().UnixMilli() },
		decodeTime:   decodeSQLiteTime,
		statusFilter: sqliteStatusFilter,
	}}}
}

var dollarParam = regexp.MustCompile(`\$(\d+)`)

// sqliteBind rewrites $n to ?n, SQLite's numbered positional form.
func sqliteBind(q string) string {
	return dollarParam.ReplaceAllString(q, "?$1")
}

func decodeSQLiteTime(v any) (time.Time, error) {
	ms, ok := v.(int64)
	if !ok {
		return time.Time{}, fmt.Errorf("unexpected timestamp type %T", v)
	}
	return time.UnixMilli(ms).UTC(), nil
}

func sqliteStatusFilter(statuses []string) (string, []any) {
	marks := make([]string, len(statuses))
	args := make([]any, len(statuses))
	for i, st := range statuses {
		marks[i] = "?"
		args[i] = st
	}
	return "status IN (" + strings.Join(marks, ", ") + ")", args
}
