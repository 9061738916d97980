// Package models holds the gorm entities persisted by the shopping cart service.
package models

import "github.com/shopspring/decimal"

func init() {
	// Monetary fields travel as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}
