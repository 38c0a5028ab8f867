package repositories

import (
	"context"
	"time"

	"github.com/playforge/wallet_marketplace_app/internal/core/domain"
)

// PurchaseUpdate carries everything a committed purchase must change: the
// asset's owner and listing (conditional on the asset version observed at
// read time) and the buyer/seller/fee-collector balance changes with their
// ledger entries. The repository applies all of it in one transaction or none
// of it.
type PurchaseUpdate struct {
	TokenID              string
	ExpectedAssetVersion int64
	NewOwnerAddress      string
	BalanceChanges       []BalanceChange
	Entries              []domain.LedgerEntry
	UserID               string
	Now                  time.Time
}

// AssetReader defines read operations for asset data.
type AssetReader interface {
	// FindAssetByTokenID retrieves an asset by its token id.
	FindAssetByTokenID(ctx context.Context, tokenID string) (*domain.Asset, error)

	// ListListedAssets returns a page of currently listed assets.
	ListListedAssets(ctx context.Context, limit int, nextToken *string) ([]domain.Asset, *string, error)

	// ListAssetsByOwner returns every asset held by a wallet.
	ListAssetsByOwner(ctx context.Context, ownerAddress string) ([]domain.Asset, error)
}

// AssetWriter defines write operations for asset data.
type AssetWriter interface {
	// SaveAsset persists a newly minted asset.
	SaveAsset(ctx context.Context, asset domain.Asset) error

	// UpdateListing sets or clears an asset's listing, conditional on the
	// asset version. A version mismatch returns apperrors.ErrConflict.
	UpdateListing(ctx context.Context, tokenID string, listing *domain.Listing, expectedVersion int64, userID string, now time.Time) error

	// ExecutePurchase commits an entire purchase atomically across the asset
	// and wallet stores. If the asset row was modified since it was read
	// (bought or unlisted concurrently) it returns apperrors.ErrListingChanged;
	// a wallet version mismatch returns apperrors.ErrConflict. Either way
	// nothing is written.
	ExecutePurchase(ctx context.Context, update PurchaseUpdate) error
}

// AssetRepositoryFacade combines all asset-related repository interfaces.
type AssetRepositoryFacade interface {
	AssetReader
	AssetWriter
}
