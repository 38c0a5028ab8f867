package domain

import "github.com/shopspring/decimal"

// Network describes a settlement network a transfer can be routed over,
// together with the flat fee the system charges for it. The fee schedule is
// seeded by migration and read through the fee service.
type Network struct {
	Code    string          `json:"code"` // Primary key, e.g. "polygon"
	Name    string          `json:"name"`
	Fee     decimal.Decimal `json:"fee"`
	Enabled bool            `json:"enabled"`
	AuditFields
}
