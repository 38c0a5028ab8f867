package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/playforge/wallet_marketplace_app/internal/core/domain"
)

// BalanceChange describes one wallet's new balance together with the version
// the caller observed when computing it. The repository commits the change
// only if the row's version is still ExpectedVersion (compare-and-swap);
// otherwise it reports apperrors.ErrConflict and nothing is written.
type BalanceChange struct {
	Address         string
	NewBalance      decimal.Decimal
	ExpectedVersion int64
}

// WalletReader defines read operations for wallet data.
type WalletReader interface {
	// FindWalletByAddress retrieves a wallet by its address.
	FindWalletByAddress(ctx context.Context, address string) (*domain.Wallet, error)

	// FindWalletByUserID retrieves the single wallet owned by a user.
	FindWalletByUserID(ctx context.Context, userID string) (*domain.Wallet, error)
}

// WalletWriter defines write operations for wallet data.
type WalletWriter interface {
	// SaveWallet persists a new wallet.
	SaveWallet(ctx context.Context, wallet domain.Wallet) error

	// DeactivateWallet marks a wallet as inactive, conditional on its version.
	DeactivateWallet(ctx context.Context, address string, expectedVersion int64, userID string, now time.Time) error
}

// LedgerWriter applies balance changes and their ledger entries atomically.
type LedgerWriter interface {
	// ApplyLedgerChanges commits all balance CAS updates plus the insert-only
	// ledger entries as a single database transaction. Any version mismatch
	// aborts the whole unit with apperrors.ErrConflict; a duplicate
	// (kind, external_reference) insert aborts with apperrors.ErrDuplicate.
	ApplyLedgerChanges(ctx context.Context, changes []BalanceChange, entries []domain.LedgerEntry, userID string, now time.Time) error

	// ApplyLedgerChangesInTx is the same unit inside a caller-owned
	// transaction, for operations that also touch other stores.
	ApplyLedgerChangesInTx(ctx context.Context, tx pgx.Tx, changes []BalanceChange, entries []domain.LedgerEntry, userID string, now time.Time) error
}

// LedgerReader defines read operations over the append-only entry log.
type LedgerReader interface {
	// FindEntryByReference looks up an entry by wallet, kind and idempotency key.
	FindEntryByReference(ctx context.Context, walletAddress string, kind domain.EntryKind, externalReference string) (*domain.LedgerEntry, error)

	// ListEntriesByWallet returns a page of entries in chronological order plus
	// the token for the next page.
	ListEntriesByWallet(ctx context.Context, walletAddress string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)
}

// WalletRepositoryFacade combines all wallet and ledger repository interfaces.
type WalletRepositoryFacade interface {
	WalletReader
	WalletWriter
	LedgerWriter
	LedgerReader
}
