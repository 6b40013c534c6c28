package report

import (
	"fmt"
	"time"

	"github.com/taekyunk/mmex2/internal/category"
	"github.com/taekyunk/mmex2/internal/models"
)

// Timestamp layouts MMEX has written across versions. Output is always
// the bare calendar date.
var transDateLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

const dateLayout = "2006-01-02"

// Normalize applies the analyst conventions to joined records: amounts
// become negative unless the transaction is a deposit, dates lose their
// time-of-day, and the category name splits into its two levels. One
// malformed record fails the whole batch.
func Normalize(joined []models.JoinedTransaction) ([]models.NormalizedTransaction, error) {
	out := make([]models.NormalizedTransaction, 0, len(joined))
	for _, j := range joined {
		date, err := truncateDate(j.Date)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", j.ID, err)
		}

		catName, subName, err := category.Split(j.Category)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", j.ID, err)
		}

		amount := j.Amount
		if j.Code != models.TransCodeDeposit {
			amount = amount.Neg()
		}

		out = append(out, models.NormalizedTransaction{
			ID:              j.ID,
			Date:            date,
			Code:            j.Code,
			Amount:          amount,
			AccountName:     j.AccountName,
			AccountType:     j.AccountType,
			ToAccountName:   j.ToAccountName,
			PayeeName:       j.PayeeName,
			Category:        j.Category,
			CategoryName:    catName,
			SubcategoryName: subName,
			Number:          j.Number,
			Notes:           j.Notes,
			Status:          j.Status,
		})
	}
	return out, nil
}

// truncateDate parses a stored transaction timestamp and discards the
// time-of-day. An empty date passes through empty; MMEX only produces
// those on rows that never held a date.
func truncateDate(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	for _, layout := range transDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(dateLayout), nil
		}
	}
	return "", fmt.Errorf("unparseable transaction date %q", s)
}
