package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is the persistence representation of one immutable ledger line.
// Rows are insert-only; there is no update path.
type LedgerEntry struct {
	EntryID             string          `db:"entry_id"`
	WalletAddress       string          `db:"wallet_address"`
	Kind                string          `db:"kind"`
	Amount              decimal.Decimal `db:"amount"`
	CounterpartyAddress sql.NullString  `db:"counterparty_address"`
	Network             sql.NullString  `db:"network"`
	ExternalReference   string          `db:"external_reference"`
	Status              string          `db:"status"`
	CreatedAt           time.Time       `db:"created_at"`
	CreatedBy           string          `db:"created_by"`
}
