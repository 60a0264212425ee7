package store

import (
	"database/sql"
	"fmt"
	"time"
)

// PostgresStore persists submissions in PostgreSQL.
type PostgresStore struct {
	sqlStore
}

// NewPostgres constructs a PostgreSQL-backed submission store. The schema is
// applied by internal/platform/postgres.Open.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{sqlStore{db: db, dialect: dialect{
		bind:         func(q string) string { return q },
		encodeTime:   func(t time.Time) any { return t.UTC() },
		decodeTime:   decodePostgresTime,
		statusFilter: postgresStatusFilter,
	}}}
}

func decodePostgresTime(v any) (time.Time, error) {
	t, ok := v.(time.Time)
	if !ok {
		return time.Time{}, fmt.Errorf("unexpected timestamp type %T", v)
	}
	return t.UTC(), nil
}
