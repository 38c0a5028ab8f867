package models

import (
	"github.com/shopspring/decimal"
)

// Wallet is the persistence representation of a ledger wallet.
type Wallet struct {
	Address             string          `db:"address"`
	UserID              string          `db:"user_id"`
	Balance             decimal.Decimal `db:"balance"`
	EncryptedPrivateKey string          `db:"encrypted_private_key"`
	RecoverySecret      string          `db:"recovery_secret"`
	PINHash             string          `db:"pin_hash"`
	IsActive            bool            `db:"is_active"`
	Version             int64           `db:"version"` // Optimistic concurrency counter
	AuditFields
}
