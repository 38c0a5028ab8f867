package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/playforge/wallet_marketplace_app/internal/core/domain"
	"github.com/playforge/wallet_marketplace_app/internal/dto"
)

// LedgerReaderSvc defines the read operations over balances and history.
// Reads never block writers and may return a slightly stale but always
// internally consistent snapshot.
type LedgerReaderSvc interface {
	// GetBalance returns the wallet's current balance.
	GetBalance(ctx context.Context, address string) (decimal.Decimal, error)

	// GetHistory returns the wallet's transaction log in chronological order.
	GetHistory(ctx context.Context, address string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// LedgerWriterSvc defines the balance-changing operations.
type LedgerWriterSvc interface {
	// Deposit credits a wallet from an external payment. Idempotent on the
	// request's ExternalReference: a repeated call returns the original entry
	// without re-crediting.
	Deposit(ctx context.Context, req dto.DepositRequest) (*domain.LedgerEntry, error)

	// Transfer debits the sender by amount plus the network fee and, when the
	// destination resolves to an internal wallet, credits it by amount. The
	// fee goes to the system fee wallet. The whole movement commits as one
	// atomic unit or not at all. Returns the sender-side entry.
	Transfer(ctx context.Context, fromAddress string, req dto.TransferRequest, userID string) (*domain.LedgerEntry, error)
}

// LedgerSvcFacade combines all ledger service interfaces.
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
