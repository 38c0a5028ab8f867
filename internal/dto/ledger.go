package dto

import (
	"time"

	"github.com/playforge/wallet_marketplace_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DepositRequest is submitted by the payment-provider collaborator after a
// completed checkout. ExternalReference is the provider's own transaction id
// and doubles as the idempotency key: replays of the same reference credit
// the wallet only once.
type DepositRequest struct {
	WalletAddress     string          `json:"walletAddress" binding:"required"`
	Amount            decimal.Decimal `json:"amount" binding:"required,posdecimal"`
	ExternalReference string          `json:"externalReference" binding:"required"`
}

// TransferRequest moves funds from the caller's wallet to another address,
// internal or external, over the given network.
type TransferRequest struct {
	ToAddress string          `json:"toAddress" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required,posdecimal"`
	Network   string          `json:"network" binding:"required"`
	PIN       string          `json:"pin" binding:"required"`
}

// EntryResponse defines the data returned for one ledger entry.
type EntryResponse struct {
	EntryID             string          `json:"entryID"`
	WalletAddress       string          `json:"walletAddress"`
	Kind                string          `json:"kind"`
	Amount              decimal.Decimal `json:"amount"`
	CounterpartyAddress string          `json:"counterpartyAddress,omitempty"`
	Network             string          `json:"network,omitempty"`
	ExternalReference   string          `json:"externalReference"`
	Status              string          `json:"status"`
	CreatedAt           time.Time       `json:"createdAt"`
}

// ListEntriesParams holds pagination parameters for transaction history.
type ListEntriesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse is a page of ledger entries plus the next-page token.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToEntryResponse converts a domain.LedgerEntry to EntryResponse DTO.
func ToEntryResponse(e *domain.LedgerEntry) EntryResponse {
	return EntryResponse{
		EntryID:             e.EntryID,
		WalletAddress:       e.WalletAddress,
		Kind:                string(e.Kind),
		Amount:              e.Amount,
		CounterpartyAddress: e.CounterpartyAddress,
		Network:             e.Network,
		ExternalReference:   e.ExternalReference,
		Status:              string(e.Status),
		CreatedAt:           e.CreatedAt,
	}
}

// ToEntryResponses converts a slice of domain entries to DTOs.
func ToEntryResponses(entries []domain.LedgerEntry) []EntryResponse {
	res := make([]EntryResponse, len(entries))
	for i := range entries {
		res[i] = ToEntryResponse(&entries[i])
	}
	return res
}
