package models

import "github.com/shopspring/decimal"

// Network is the persistence representation of a fee schedule row.
type Network struct {
	Code    string          `db:"code"`
	Name    string          `db:"name"`
	Fee     decimal.Decimal `db:"fee"`
	Enabled bool            `db:"enabled"`
	AuditFields
}
