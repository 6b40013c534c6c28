package models

import (
	"github.com/shopspring/decimal"
)

// Account represents one row of the ACCOUNTLIST_V1 table, projected to the
// fields the join pipeline needs.
type Account struct {
	ID             int64           `json:"accountid"`
	Name           string          `json:"accountname"`
	Type           string          `json:"accounttype"`
	InitialBalance decimal.Decimal `json:"initialbal"`
}

// Payee represents one row of the PAYEE_V1 table.
type Payee struct {
	ID   int64  `json:"payeeid"`
	Name string `json:"payeename"`
}
