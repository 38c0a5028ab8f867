package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind classifies a ledger entry.
type EntryKind string

const (
	EntryDeposit     EntryKind = "DEPOSIT"
	EntryTransferOut EntryKind = "TRANSFER_OUT"
	EntryTransferIn  EntryKind = "TRANSFER_IN"
	EntryFee         EntryKind = "FEE"
	EntrySaleCredit  EntryKind = "SALE_CREDIT"
	EntrySaleDebit   EntryKind = "SALE_DEBIT"
)

// EntryStatus indicates the state of a ledger entry.
type EntryStatus string

const (
	EntryPending   EntryStatus = "PENDING"
	EntryCompleted EntryStatus = "COMPLETED"
	EntryFailed    EntryStatus = "FAILED"
)

// LedgerEntry is one immutable line in a wallet's transaction log. Entries are
// insert-only: they are never edited or removed, and their insertion order is
// chronological.
//
// Every completed internal transfer produces exactly one matching
// TRANSFER_OUT/TRANSFER_IN pair sharing the same ExternalReference. A deposit
// produces exactly one credit entry with no matching debit, because the funds
// originate outside the ledger.
type LedgerEntry struct {
	EntryID             string          `json:"entryID"`
	WalletAddress       string          `json:"walletAddress"`
	Kind                EntryKind       `json:"kind"`
	Amount              decimal.Decimal `json:"amount"` // Signed: credits positive, debits negative
	CounterpartyAddress string          `json:"counterpartyAddress,omitempty"`
	Network             string          `json:"network,omitempty"`
	// ExternalReference is the idempotency/reconciliation key: the payment
	// provider's id for deposits, the generated transaction hash for
	// transfers, the purchase id for marketplace sales.
	ExternalReference string      `json:"externalReference"`
	Status            EntryStatus `json:"status"`
	CreatedAt         time.Time   `json:"createdAt"`
	CreatedBy         string      `json:"createdBy"`
}
