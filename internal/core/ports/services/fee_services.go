package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/playforge/wallet_marketplace_app/internal/core/domain"
)

// FeeSvcFacade resolves transfer fees from the network schedule. Lookups run
// under a bounded timeout and fail closed: a deadline miss aborts the calling
// operation with ErrExternalTimeout, never a guessed fee.
type FeeSvcFacade interface {
	// NetworkFee returns the flat fee for the given network code, or
	// ErrUnknownNetwork if the code is unrecognized or disabled.
	NetworkFee(ctx context.Context, networkCode string) (decimal.Decimal, error)

	// ListNetworks returns the enabled networks and their fees.
	ListNetworks(ctx context.Context) ([]domain.Network, error)
}
