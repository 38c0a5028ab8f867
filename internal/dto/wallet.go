package dto

import (
	"time"

	"github.com/playforge/wallet_marketplace_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateWalletRequest defines the data needed to open a wallet for the caller.
type CreateWalletRequest struct {
	PIN string `json:"pin" binding:"required,numeric,min=4,max=8"`
}

// WalletResponse defines the data returned for a wallet. Credential material
// is deliberately absent: it never leaves the server.
type WalletResponse struct {
	Address   string          `json:"address"`
	UserID    string          `json:"userID"`
	Balance   decimal.Decimal `json:"balance"`
	IsActive  bool            `json:"isActive"`
	CreatedAt time.Time       `json:"createdAt"`
}

// CreateWalletResponse is returned exactly once, on wallet creation. The
// recovery secret is shown to the user at this moment and never again.
type CreateWalletResponse struct {
	Wallet         WalletResponse `json:"wallet"`
	RecoverySecret string         `json:"recoverySecret"`
}

// VerifyPINRequest confirms a sensitive operation out of band.
type VerifyPINRequest struct {
	PIN string `json:"pin" binding:"required,numeric,min=4,max=8"`
}

// BalanceResponse defines the data returned for a balance query.
type BalanceResponse struct {
	Address string          `json:"address"`
	Balance decimal.Decimal `json:"balance"`
}

// ToWalletResponse converts a domain.Wallet to WalletResponse DTO.
func ToWalletResponse(w *domain.Wallet) WalletResponse {
	return WalletResponse{
		Address:   w.Address,
		UserID:    w.UserID,
		Balance:   w.Balance,
		IsActive:  w.IsActive,
		CreatedAt: w.CreatedAt,
	}
}
