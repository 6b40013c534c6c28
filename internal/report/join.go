// Package report builds the flat reporting records: transactions joined
// with their reference tables, then normalized for downstream analysis.
package report

import (
	"github.com/taekyunk/mmex2/internal/models"
)

// BuildJoined left-joins every transaction against the account, payee,
// and resolved-category tables. The result has exactly one record per
// input transaction: lookups that miss leave the enrichment fields at
// their zero values, and duplicate reference IDs overwrite rather than
// fan out.
//
// The account table is consulted twice: once keyed on the source account
// and once on the destination account of a transfer.
func BuildJoined(
	txs []models.Transaction,
	accounts []models.Account,
	payees []models.Payee,
	categories []models.ResolvedCategory,
) []models.JoinedTransaction {
	accountsByID := make(map[int64]models.Account, len(accounts))
	for _, a := range accounts {
		accountsByID[a.ID] = a
	}
	payeesByID := make(map[int64]models.Payee, len(payees))
	for _, p := range payees {
		payeesByID[p.ID] = p
	}
	categoriesByID := make(map[int64]models.ResolvedCategory, len(categories))
	for _, c := range categories {
		categoriesByID[c.ID] = c
	}

	out := make([]models.JoinedTransaction, 0, len(txs))
	for _, tx := range txs {
		j := models.JoinedTransaction{Transaction: tx}

		if a, ok := accountsByID[tx.AccountID]; ok {
			j.AccountName = a.Name
			j.AccountType = a.Type
			j.InitialBalance = a.InitialBalance
		}
		if tx.ToAccountID.Valid {
			if a, ok := accountsByID[tx.ToAccountID.Int64]; ok {
				j.ToAccountName = a.Name
			}
		}
		if tx.PayeeID.Valid {
			if p, ok := payeesByID[tx.PayeeID.Int64]; ok {
				j.PayeeName = p.Name
			}
		}
		if tx.CategoryID.Valid {
			if c, ok := categoriesByID[tx.CategoryID.Int64]; ok {
				j.Category = c.FullName
			}
		}

		out = append(out, j)
	}
	return out
}
