package services

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taekyunk/mmex2/internal/models"
)

const testSchema = `
CREATE TABLE CHECKINGACCOUNT_V1 (
	TRANSID INTEGER PRIMARY KEY,
	ACCOUNTID INTEGER NOT NULL,
	TOACCOUNTID INTEGER,
	PAYEEID INTEGER,
	TRANSCODE TEXT NOT NULL,
	TRANSAMOUNT NUMERIC NOT NULL,
	STATUS TEXT,
	TRANSACTIONNUMBER TEXT,
	NOTES TEXT,
	CATEGID INTEGER,
	TRANSDATE TEXT
);
CREATE TABLE ACCOUNTLIST_V1 (
	ACCOUNTID INTEGER PRIMARY KEY,
	ACCOUNTNAME TEXT NOT NULL,
	ACCOUNTTYPE TEXT NOT NULL,
	INITIALBAL NUMERIC
);
CREATE TABLE CATEGORY_V1 (
	CATEGID INTEGER PRIMARY KEY,
	CATEGNAME TEXT NOT NULL,
	ACTIVE INTEGER,
	PARENTID INTEGER
);
CREATE TABLE PAYEE_V1 (
	PAYEEID INTEGER PRIMARY KEY,
	PAYEENAME TEXT NOT NULL
);
`

// newTestDB creates a temp MMEX-shaped database and runs the given
// statements against it. Returns the file path.
func newTestDB(t *testing.T, stmts ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.mmb")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(testSchema)
	require.NoError(t, err)
	for _, stmt := range stmts {
		_, err = db.Exec(stmt)
		require.NoError(t, err, "statement: %s", stmt)
	}
	return path
}

func openTestService(t *testing.T, path string) *DatabaseService {
	t.Helper()
	svc, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestOpenMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.mmb")
	_, err := Open(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDatabaseUnavailable))
	assert.Contains(t, err.Error(), path)
}

func TestOpenDirectory(t *testing.T) {
	dir := t.TempDir()
	_, err := Open(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDatabaseUnavailable))
}

func TestListTables(t *testing.T) {
	svc := openTestService(t, newTestDB(t))

	names, err := svc.ListTables(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"ACCOUNTLIST_V1", "CATEGORY_V1", "CHECKINGACCOUNT_V1", "PAYEE_V1",
	}, names)
}

func TestReadTableNormalizesColumns(t *testing.T) {
	path := newTestDB(t,
		`INSERT INTO PAYEE_V1 (PAYEEID, PAYEENAME) VALUES (1, 'Supermarket')`)
	svc := openTestService(t, path)

	tbl, err := svc.ReadTable(context.Background(), "PAYEE_V1")
	require.NoError(t, err)
	assert.Equal(t, []string{"payeeid", "payeename"}, tbl.Columns)
	require.Equal(t, 1, tbl.Len())
	assert.Equal(t, int64(1), tbl.Rows[0][0])
	assert.Equal(t, "Supermarket", tbl.Rows[0][1])
}

func TestReadTableNotFound(t *testing.T) {
	svc := openTestService(t, newTestDB(t))

	_, err := svc.ReadTable(context.Background(), "BUDGET_V1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTableNotFound))
	assert.Contains(t, err.Error(), "BUDGET_V1")
}

func TestReadTableCaseInsensitive(t *testing.T) {
	svc := openTestService(t, newTestDB(t))

	tbl, err := svc.ReadTable(context.Background(), "payee_v1")
	require.NoError(t, err)
	assert.Equal(t, []string{"payeeid", "payeename"}, tbl.Columns)
}

func TestReadQueryBadSQL(t *testing.T) {
	svc := openTestService(t, newTestDB(t))

	_, err := svc.ReadQuery(context.Background(), "SELECT FROM WHERE")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrQuery))
}

func TestReadQueryParameterized(t *testing.T) {
	path := newTestDB(t,
		`INSERT INTO PAYEE_V1 (PAYEEID, PAYEENAME) VALUES (1, 'A'), (2, 'B')`)
	svc := openTestService(t, path)

	tbl, err := svc.ReadQuery(context.Background(),
		`SELECT PAYEENAME FROM PAYEE_V1 WHERE PAYEEID = ?`, 2)
	require.NoError(t, err)
	require.Equal(t, 1, tbl.Len())
	assert.Equal(t, "B", tbl.Rows[0][0])
}

func TestCategoriesFoldsRootSentinels(t *testing.T) {
	path := newTestDB(t,
		`INSERT INTO CATEGORY_V1 (CATEGID, CATEGNAME, PARENTID) VALUES
			(1, 'Food', -1),
			(2, 'Groceries', 1),
			(3, 'Income', NULL),
			(4, 'Transfer', 0)`)
	svc := openTestService(t, path)

	cats, err := svc.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 4)

	byID := map[int64]models.Category{}
	for _, c := range cats {
		byID[c.ID] = c
	}
	assert.True(t, byID[1].IsRoot())
	assert.Equal(t, int64(1), byID[2].ParentID)
	assert.True(t, byID[3].IsRoot(), "NULL parent folds to root")
	assert.True(t, byID[4].IsRoot(), "zero parent folds to root")
}

func TestCategoriesUnsupportedSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.mmb")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE CATEGORY_V1 (CATEGID INTEGER PRIMARY KEY, CATEGNAME TEXT NOT NULL)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	svc := openTestService(t, path)
	_, err = svc.Categories(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedSchema))
}

func TestAccounts(t *testing.T) {
	path := newTestDB(t,
		`INSERT INTO ACCOUNTLIST_V1 (ACCOUNTID, ACCOUNTNAME, ACCOUNTTYPE, INITIALBAL)
			VALUES (1, 'Checking', 'Checking', 1234.56), (2, 'Savings', 'Savings', NULL)`)
	svc := openTestService(t, path)

	accounts, err := svc.Accounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "Checking", accounts[0].Name)
	assert.True(t, decimal.RequireFromString("1234.56").Equal(accounts[0].InitialBalance))
	assert.True(t, accounts[1].InitialBalance.IsZero(), "NULL balance folds to zero")
}

func TestTransactionsClearsSentinelKeys(t *testing.T) {
	path := newTestDB(t,
		`INSERT INTO CHECKINGACCOUNT_V1
			(TRANSID, ACCOUNTID, TOACCOUNTID, PAYEEID, TRANSCODE, TRANSAMOUNT, CATEGID, TRANSDATE)
		 VALUES
			(1, 1, -1, 5, 'Withdrawal', 42.5, 7, '2026-03-10'),
			(2, 1, 2, -1, 'Transfer', 200, NULL, '2026-03-11')`)
	svc := openTestService(t, path)

	txs, err := svc.Transactions(context.Background())
	require.NoError(t, err)
	require.Len(t, txs, 2)

	first := txs[0]
	assert.False(t, first.ToAccountID.Valid, "-1 destination folds to null")
	assert.True(t, first.PayeeID.Valid)
	assert.Equal(t, int64(7), first.CategoryID.Int64)
	assert.True(t, decimal.RequireFromString("42.5").Equal(first.Amount))

	second := txs[1]
	assert.True(t, second.ToAccountID.Valid)
	assert.False(t, second.PayeeID.Valid, "-1 payee folds to null")
	assert.False(t, second.CategoryID.Valid, "NULL category stays null")
}
