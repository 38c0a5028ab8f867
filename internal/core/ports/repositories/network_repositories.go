package repositories

import (
	"context"

	"github.com/playforge/wallet_marketplace_app/internal/core/domain"
)

// NetworkRepositoryFacade defines persistence operations for the network fee
// schedule. The schedule is read-mostly; rows are seeded by migration.
type NetworkRepositoryFacade interface {
	// FindNetworkByCode retrieves a network by its code.
	FindNetworkByCode(ctx context.Context, code string) (*domain.Network, error)

	// ListNetworks returns all enabled networks.
	ListNetworks(ctx context.Context) ([]domain.Network, error)
}
