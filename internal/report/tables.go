package report

import (
	"github.com/taekyunk/mmex2/internal/models"
	"github.com/taekyunk/mmex2/internal/table"
)

// CategoriesTable renders resolved categories as a generic table.
func CategoriesTable(categories []models.ResolvedCategory) *table.Table {
	t := table.New("categid", "category")
	for _, c := range categories {
		t.Rows = append(t.Rows, []any{c.ID, c.FullName})
	}
	return t
}

// JoinedTable renders joined records as a generic table.
func JoinedTable(joined []models.JoinedTransaction) *table.Table {
	t := table.New(
		"transid", "transdate", "transcode", "transamount",
		"accountid", "accountname", "accounttype", "initialbal",
		"toaccountid", "toaccountname", "payeeid", "payeename",
		"categid", "category", "transactionnumber", "status", "notes",
	)
	for _, j := range joined {
		t.Rows = append(t.Rows, []any{
			j.ID, j.Date, j.Code, j.Transaction.Amount,
			j.AccountID, j.AccountName, j.AccountType, j.InitialBalance,
			nullableID(j.ToAccountID.Valid, j.ToAccountID.Int64), j.ToAccountName,
			nullableID(j.PayeeID.Valid, j.PayeeID.Int64), j.PayeeName,
			nullableID(j.CategoryID.Valid, j.CategoryID.Int64), j.Category,
			j.Number, j.Status, j.Notes,
		})
	}
	return t
}

// NormalizedTable renders normalized records as a generic table.
func NormalizedTable(normalized []models.NormalizedTransaction) *table.Table {
	t := table.New(
		"transid", "transdate", "transcode", "transamount",
		"accountname", "accounttype", "toaccountname", "payeename",
		"category", "categoryname", "subcategoryname",
		"transactionnumber", "status", "notes",
	)
	for _, n := range normalized {
		t.Rows = append(t.Rows, []any{
			n.ID, n.Date, n.Code, n.Amount,
			n.AccountName, n.AccountType, n.ToAccountName, n.PayeeName,
			n.Category, n.CategoryName, n.SubcategoryName,
			n.Number, n.Status, n.Notes,
		})
	}
	return t
}

func nullableID(valid bool, id int64) any {
	if !valid {
		return nil
	}
	return id
}
