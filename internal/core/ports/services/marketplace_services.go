package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/playforge/wallet_marketplace_app/internal/core/domain"
	"github.com/playforge/wallet_marketplace_app/internal/dto"
)

// MarketplaceReaderSvc defines read-only marketplace operations.
type MarketplaceReaderSvc interface {
	// GetAsset retrieves one asset with its listing state.
	GetAsset(ctx context.Context, tokenID string) (*domain.Asset, error)

	// BrowseListings returns a page of currently listed assets.
	BrowseListings(ctx context.Context, params dto.ListListingsParams) (*dto.ListListingsResponse, error)

	// GetInventory returns every asset a wallet holds.
	GetInventory(ctx context.Context, ownerAddress string) ([]domain.Asset, error)
}

// MarketplaceWriterSvc defines the ownership-changing operations. Each runs
// the per-asset state machine Unlisted -> Listed -> {Unlisted | sold}.
type MarketplaceWriterSvc interface {
	// Mint records a newly minted asset from the minting pipeline. Idempotent
	// on token id: a repeated notification returns the existing asset.
	Mint(ctx context.Context, req dto.MintAssetRequest) (*domain.Asset, error)

	// List puts an owned, unlisted asset up for sale at the given price.
	// Ownership does not move; the listing is a flag on the still-owned asset.
	List(ctx context.Context, tokenID string, sellerAddress string, price decimal.Decimal, userID string) error

	// Unlist withdraws the caller's own active listing.
	Unlist(ctx context.Context, tokenID string, sellerAddress string, userID string) error

	// Buy purchases a listed asset: buyer pays the listed price, the seller is
	// credited (minus the marketplace fee), ownership moves and the listing
	// clears, all as one atomic unit across both stores. Returns the buyer's
	// debit entry.
	Buy(ctx context.Context, tokenID string, buyerAddress string, userID string) (*domain.LedgerEntry, error)
}

// MarketplaceSvcFacade combines all marketplace service interfaces.
type MarketplaceSvcFacade interface {
	MarketplaceReaderSvc
	MarketplaceWriterSvc
}
