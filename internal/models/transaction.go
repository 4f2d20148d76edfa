package models

import "github.com/shopspring/decimal"

// Transaction represents a single line item extracted from a statement page.
type Transaction struct {
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	SourceFile  string          `json:"sourceFile,omitempty"`
	Page        int             `json:"page,omitempty"`
}

// StatementFormat represents supported statement layouts.
type StatementFormat string

const (
	FormatAmexTH StatementFormat = "amex-th"
)

// VendorTotal aggregates spend for a single merchant.
type VendorTotal struct {
	Vendor string          `json:"vendor"`
	Count  int             `json:"count"`
	Total  decimal.Decimal `json:"total"`
}
