// Package mmex2 extracts and normalizes personal-finance transaction data
// from a Money Manager Ex (MMEX) SQLite database into flat tabular
// structures for downstream reporting.
//
// Every operation takes the database file path, opens a read-only
// connection scoped to the call, and releases it before returning. The
// primary entry point is ReadNormalizedTable.
package mmex2

import (
	"context"

	"github.com/taekyunk/mmex2/internal/category"
	"github.com/taekyunk/mmex2/internal/models"
	"github.com/taekyunk/mmex2/internal/report"
	"github.com/taekyunk/mmex2/internal/services"
	"github.com/taekyunk/mmex2/internal/table"
)

// Exposed result types.
type (
	Table                 = table.Table
	Category              = models.Category
	ResolvedCategory      = models.ResolvedCategory
	Account               = models.Account
	Payee                 = models.Payee
	Transaction           = models.Transaction
	JoinedTransaction     = models.JoinedTransaction
	NormalizedTransaction = models.NormalizedTransaction
)

// Error taxonomy, matched with errors.Is.
var (
	ErrDatabaseUnavailable   = services.ErrDatabaseUnavailable
	ErrTableNotFound         = services.ErrTableNotFound
	ErrQuery                 = services.ErrQuery
	ErrUnsupportedSchema     = services.ErrUnsupportedSchema
	ErrInvalidCategoryFormat = category.ErrInvalidCategoryFormat
	ErrCycleDetected         = category.ErrCycleDetected
)

// ListTables enumerates all tables in the database.
func ListTables(ctx context.Context, dbPath string) ([]string, error) {
	svc, err := services.Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer svc.Close()

	return svc.ListTables(ctx)
}

// ReadTableByName fetches one table verbatim, with normalized column names.
func ReadTableByName(ctx context.Context, tableName, dbPath string) (*Table, error) {
	svc, err := services.Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer svc.Close()

	return svc.ReadTable(ctx, tableName)
}

// ReadAllTables fetches every table in the database, keyed by table name.
func ReadAllTables(ctx context.Context, dbPath string) (map[string]*Table, error) {
	svc, err := services.Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer svc.Close()

	names, err := svc.ListTables(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*Table, len(names))
	for _, name := range names {
		t, err := svc.ReadTable(ctx, name)
		if err != nil {
			return nil, err
		}
		out[name] = t
	}
	return out, nil
}

// ReadResolvedCategories reads the category forest and resolves it into
// fully-qualified colon-joined names, sorted lexicographically.
func ReadResolvedCategories(ctx context.Context, dbPath string) ([]ResolvedCategory, error) {
	svc, err := services.Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer svc.Close()

	return readResolvedCategories(ctx, svc)
}

// BuildJoinedTable left-joins the transaction table with the account
// (source and destination), payee, and resolved-category tables. The
// result has exactly one record per transaction row.
func BuildJoinedTable(ctx context.Context, dbPath string) ([]JoinedTransaction, error) {
	svc, err := services.Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer svc.Close()

	return buildJoined(ctx, svc)
}

// ReadNormalizedTable is the primary entry point: the joined table with
// the analyst conventions applied (sign on amounts, calendar dates,
// category/subcategory split).
func ReadNormalizedTable(ctx context.Context, dbPath string) ([]NormalizedTransaction, error) {
	svc, err := services.Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer svc.Close()

	joined, err := buildJoined(ctx, svc)
	if err != nil {
		return nil, err
	}
	return report.Normalize(joined)
}

func readResolvedCategories(ctx context.Context, svc *services.DatabaseService) ([]ResolvedCategory, error) {
	raw, err := svc.Categories(ctx)
	if err != nil {
		return nil, err
	}
	return category.Resolve(raw)
}

func buildJoined(ctx context.Context, svc *services.DatabaseService) ([]JoinedTransaction, error) {
	txs, err := svc.Transactions(ctx)
	if err != nil {
		return nil, err
	}
	accounts, err := svc.Accounts(ctx)
	if err != nil {
		return nil, err
	}
	payees, err := svc.Payees(ctx)
	if err != nil {
		return nil, err
	}
	categories, err := readResolvedCategories(ctx, svc)
	if err != nil {
		return nil, err
	}
	return report.BuildJoined(txs, accounts, payees, categories), nil
}
