// Package services provides read-only access to an MMEX SQLite database
// file. A DatabaseService is scoped to one operation: open it, run the
// reads, and close it on every exit path.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/taekyunk/mmex2/internal/models"
	"github.com/taekyunk/mmex2/internal/table"

	_ "modernc.org/sqlite"
)

// MMEX table names used by the typed readers.
const (
	TableTransactions = "CHECKINGACCOUNT_V1"
	TableAccounts     = "ACCOUNTLIST_V1"
	TableCategories   = "CATEGORY_V1"
	TablePayees       = "PAYEE_V1"
)

// DatabaseService handles interactions with one MMEX database file. It
// never writes to the file.
type DatabaseService struct {
	db   *sql.DB
	path string
}

// Open stats and opens the database at the given path. A missing or
// unreadable file fails with ErrDatabaseUnavailable before any query runs.
func Open(dbPath string) (*DatabaseService, error) {
	info, err := os.Stat(dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDatabaseUnavailable, dbPath)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrDatabaseUnavailable, dbPath)
	}

	db, err := sql.Open("sqlite", "file:"+dbPath+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDatabaseUnavailable, dbPath, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrDatabaseUnavailable, dbPath, err)
	}
	return &DatabaseService{db: db, path: dbPath}, nil
}

// Close releases the underlying connection.
func (s *DatabaseService) Close() error {
	return s.db.Close()
}

// ListTables returns the names of all tables in the database, sorted.
func (s *DatabaseService) ListTables(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("%w: listing tables in %s: %v", ErrQuery, s.path, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: listing tables in %s: %v", ErrQuery, s.path, err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listing tables in %s: %v", ErrQuery, s.path, err)
	}
	return names, nil
}

// TableExists reports whether a table with the given name exists.
// Matching is case-insensitive, like SQLite's own name resolution.
func (s *DatabaseService) TableExists(ctx context.Context, name string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ? COLLATE NOCASE`,
		name).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("%w: checking table %s: %v", ErrQuery, name, err)
	}
	return count > 0, nil
}

// ReadTable fetches one table verbatim as a column-normalized Table.
// Fails with ErrTableNotFound if the name is absent from the schema.
func (s *DatabaseService) ReadTable(ctx context.Context, name string) (*table.Table, error) {
	exists, err := s.TableExists(ctx, name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s in %s", ErrTableNotFound, name, s.path)
	}
	return s.ReadQuery(ctx, fmt.Sprintf(`SELECT * FROM %q`, name))
}

// ReadQuery runs an arbitrary query and returns the result set with
// normalized column names. BLOB values come back as strings.
func (s *DatabaseService) ReadQuery(ctx context.Context, query string, args ...any) (*table.Table, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrQuery, query, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrQuery, query, err)
	}

	result := &table.Table{Columns: table.NormalizeColumns(columns)}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrQuery, query, err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrQuery, query, err)
	}
	return result, nil
}

// Categories reads the raw CATEGORY_V1 rows. Files from before the
// flexible category schema (MMEX 1.7) lack the PARENTID column and fail
// with ErrUnsupportedSchema. NULL and non-positive parents fold to the
// root sentinel.
func (s *DatabaseService) Categories(ctx context.Context) ([]models.Category, error) {
	ok, err := s.hasColumn(ctx, TableCategories, "PARENTID")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s has no PARENTID column in %s", ErrUnsupportedSchema, TableCategories, s.path)
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT CATEGID, COALESCE(CATEGNAME, ''), COALESCE(PARENTID, %d) FROM %s`,
		models.RootParentID, TableCategories))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrQuery, TableCategories, err)
	}
	defer rows.Close()

	var out []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.ParentID); err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrQuery, TableCategories, err)
		}
		if c.ParentID <= 0 {
			c.ParentID = models.RootParentID
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrQuery, TableCategories, err)
	}
	return out, nil
}

// Accounts reads ACCOUNTLIST_V1 projected to the join pipeline's fields.
func (s *DatabaseService) Accounts(ctx context.Context) ([]models.Account, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT ACCOUNTID, COALESCE(ACCOUNTNAME, ''), COALESCE(ACCOUNTTYPE, ''), COALESCE(INITIALBAL, 0) FROM %s`,
		TableAccounts))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrQuery, TableAccounts, err)
	}
	defer rows.Close()

	var out []models.Account
	for rows.Next() {
		var a models.Account
		var balance float64
		if err := rows.Scan(&a.ID, &a.Name, &a.Type, &balance); err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrQuery, TableAccounts, err)
		}
		a.InitialBalance = decimal.NewFromFloat(balance)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrQuery, TableAccounts, err)
	}
	return out, nil
}

// Payees reads PAYEE_V1.
func (s *DatabaseService) Payees(ctx context.Context) ([]models.Payee, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT PAYEEID, COALESCE(PAYEENAME, '') FROM %s`, TablePayees))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrQuery, TablePayees, err)
	}
	defer rows.Close()

	var out []models.Payee
	for rows.Next() {
		var p models.Payee
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrQuery, TablePayees, err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrQuery, TablePayees, err)
	}
	return out, nil
}

// Transactions reads CHECKINGACCOUNT_V1. MMEX marks unset foreign keys
// with -1; those come back as invalid NullInt64s.
func (s *DatabaseService) Transactions(ctx context.Context) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT TRANSID, ACCOUNTID, TOACCOUNTID, PAYEEID, CATEGID,
		        COALESCE(TRANSCODE, ''), COALESCE(TRANSAMOUNT, 0),
		        COALESCE(STATUS, ''), COALESCE(TRANSACTIONNUMBER, ''),
		        COALESCE(NOTES, ''), COALESCE(TRANSDATE, '')
		 FROM %s ORDER BY TRANSID`, TableTransactions))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrQuery, TableTransactions, err)
	}
	defer rows.Close()

	var out []models.Transaction
	for rows.Next() {
		var t models.Transaction
		var amount float64
		if err := rows.Scan(&t.ID, &t.AccountID, &t.ToAccountID, &t.PayeeID, &t.CategoryID,
			&t.Code, &amount, &t.Status, &t.Number, &t.Notes, &t.Date); err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrQuery, TableTransactions, err)
		}
		t.Amount = decimal.NewFromFloat(amount)
		t.ToAccountID = clearSentinel(t.ToAccountID)
		t.PayeeID = clearSentinel(t.PayeeID)
		t.CategoryID = clearSentinel(t.CategoryID)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrQuery, TableTransactions, err)
	}
	return out, nil
}

// hasColumn checks a table's columns via PRAGMA table_info.
func (s *DatabaseService) hasColumn(ctx context.Context, tableName, column string) (bool, error) {
	exists, err := s.TableExists(ctx, tableName)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, fmt.Errorf("%w: %s in %s", ErrTableNotFound, tableName, s.path)
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`PRAGMA table_info(%q)`, tableName))
	if err != nil {
		return false, fmt.Errorf("%w: inspecting %s: %v", ErrQuery, tableName, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid        int
			name, typ  string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &defaultVal, &pk); err != nil {
			return false, fmt.Errorf("%w: inspecting %s: %v", ErrQuery, tableName, err)
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

func clearSentinel(v sql.NullInt64) sql.NullInt64 {
	if !v.Valid || v.Int64 <= 0 {
		return sql.NullInt64{}
	}
	return v
}
