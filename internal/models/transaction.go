package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Transaction codes as stored in CHECKINGACCOUNT_V1.TRANSCODE.
const (
	TransCodeDeposit    = "Deposit"
	TransCodeWithdrawal = "Withdrawal"
	TransCodeTransfer   = "Transfer"
)

// Transaction represents one row of the CHECKINGACCOUNT_V1 table.
// Foreign keys that MMEX leaves unset (no payee on a transfer, no
// destination account on a withdrawal) are nullable.
type Transaction struct {
	ID          int64           `json:"transid"`
	AccountID   int64           `json:"accountid"`
	ToAccountID sql.NullInt64   `json:"toaccountid"`
	PayeeID     sql.NullInt64   `json:"payeeid"`
	CategoryID  sql.NullInt64   `json:"categid"`
	Code        string          `json:"transcode"`
	Amount      decimal.Decimal `json:"transamount"`
	Status      string          `json:"status"`
	Number      string          `json:"transactionnumber"`
	Notes       string          `json:"notes"`
	Date        string          `json:"transdate"`
}

// JoinedTransaction is a Transaction enriched with the reference tables:
// source account name/type/balance, destination account name, payee name,
// and the resolved full category name. Left-outer semantics: a missing
// reference leaves the field at its zero value.
type JoinedTransaction struct {
	Transaction
	AccountName    string          `json:"accountname"`
	AccountType    string          `json:"accounttype"`
	InitialBalance decimal.Decimal `json:"initialbal"`
	ToAccountName  string          `json:"toaccountname"`
	PayeeName      string          `json:"payeename"`
	Category       string          `json:"category"`
}

// NormalizedTransaction is the flat record handed to downstream analysis:
// amount sign-adjusted (money leaving an account is negative), date
// truncated to a calendar day, and the category split into its two levels.
// The full colon-joined name is kept alongside the split fields.
type NormalizedTransaction struct {
	ID              int64           `json:"transid"`
	Date            string          `json:"transdate"`
	Code            string          `json:"transcode"`
	Amount          decimal.Decimal `json:"transamount"`
	AccountName     string          `json:"accountname"`
	AccountType     string          `json:"accounttype"`
	ToAccountName   string          `json:"toaccountname"`
	PayeeName       string          `json:"payeename"`
	Category        string          `json:"category"`
	CategoryName    string          `json:"categoryname"`
	SubcategoryName string          `json:"subcategoryname"`
	Number          string          `json:"transactionnumber"`
	Notes           string          `json:"notes"`
	Status          string          `json:"status"`
}
