package domain

import (
	"github.com/shopspring/decimal"
)

// AmountScale is the number of fractional digits the ledger tracks.
// The stablecoin's smallest unit is the cent.
const AmountScale = 2

// FeeCollectorAddress is the reserved system wallet that receives network and
// marketplace fees. It is seeded by migration, owned by no user, and never
// credited to a player.
const FeeCollectorAddress = "sys-fee-collector"

// ValidAmount reports whether d is representable at the ledger's scale.
// Amounts with more fractional digits than AmountScale would silently lose
// precision and are rejected up front.
func ValidAmount(d decimal.Decimal) bool {
	return d.Exponent() >= -AmountScale
}

// Wallet is a balance-holding account tied to exactly one user.
type Wallet struct {
	Address    string          `json:"address"` // Primary key, public-key-derived, immutable
	UserID     string          `json:"userID"`  // One wallet per user
	Balance    decimal.Decimal `json:"balance"` // Never negative
	IsActive   bool            `json:"isActive"`
	Credential WalletCredential `json:"-"` // Never serialized out
	// Version increments on every committed mutation. Writes are conditional
	// on the version observed at read time (optimistic concurrency).
	Version int64 `json:"-"`
	AuditFields
}

// WalletCredential is the opaque secret bundle owned by a wallet. It must
// never be logged or transmitted in clear form; the PIN is stored only as a
// bcrypt hash.
type WalletCredential struct {
	EncryptedPrivateKey string `json:"-"`
	RecoverySecret      string `json:"-"`
	PINHash             string `json:"-"`
}
