package services

import "errors"

// Error taxonomy for database access. Callers match with errors.Is; every
// wrapped message carries the offending path or table name.
var (
	// ErrDatabaseUnavailable means the database path does not reference an
	// openable file. Checked eagerly, before any query runs.
	ErrDatabaseUnavailable = errors.New("database unavailable")

	// ErrTableNotFound means the requested table is absent from the schema.
	ErrTableNotFound = errors.New("table not found")

	// ErrQuery wraps malformed-SQL and engine-level failures.
	ErrQuery = errors.New("query failed")

	// ErrUnsupportedSchema means the file predates the flexible category
	// schema (no PARENTID column on CATEGORY_V1).
	ErrUnsupportedSchema = errors.New("unsupported schema version")
)
