package services

import (
	"context"

	"github.com/playforge/wallet_marketplace_app/internal/core/domain"
)

// WalletReaderSvc defines read operations for wallet data.
type WalletReaderSvc interface {
	// GetWalletByAddress retrieves a wallet by its address.
	GetWalletByAddress(ctx context.Context, address string) (*domain.Wallet, error)

	// GetWalletForUser retrieves the wallet owned by the given user.
	GetWalletForUser(ctx context.Context, userID string) (*domain.Wallet, error)
}

// WalletWriterSvc defines lifecycle operations for wallets.
type WalletWriterSvc interface {
	// CreateWallet opens the user's wallet on their first wallet-requiring
	// action. Exactly one wallet per user; a second call returns ErrDuplicate.
	// The returned recovery secret is surfaced to the user once and only once.
	CreateWallet(ctx context.Context, userID string, pin string) (*domain.Wallet, string, error)

	// DeactivateWallet closes the user's wallet. The wallet and its history
	// are retained; only mutations are rejected from then on.
	DeactivateWallet(ctx context.Context, userID string) error
}

// WalletPINVerifierSvc confirms a sensitive operation out of band.
type WalletPINVerifierSvc interface {
	// VerifyPIN checks the given PIN against the wallet's stored hash and
	// returns ErrForbidden on mismatch.
	VerifyPIN(ctx context.Context, userID string, pin string) error
}

// WalletSvcFacade combines all wallet-related service interfaces.
type WalletSvcFacade interface {
	WalletReaderSvc
	WalletWriterSvc
	WalletPINVerifierSvc
}
