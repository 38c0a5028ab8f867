package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/playforge/wallet_marketplace_app/internal/apperrors"
	"github.com/playforge/wallet_marketplace_app/internal/core/domain"
	portsrepo "github.com/playforge/wallet_marketplace_app/internal/core/ports/repositories"
	portssvc "github.com/playforge/wallet_marketplace_app/internal/core/ports/services"
	"github.com/playforge/wallet_marketplace_app/internal/dto"
	"github.com/playforge/wallet_marketplace_app/internal/middleware"
)

// MarketplaceService runs the per-asset listing state machine and purchases.
type MarketplaceService struct {
	assetRepo  portsrepo.AssetRepositoryFacade
	walletRepo portsrepo.WalletRepositoryFacade
	feeRate    decimal.Decimal // Fraction of the sale price kept by the marketplace
}

func NewMarketplaceService(assetRepo portsrepo.AssetRepositoryFacade, walletRepo portsrepo.WalletRepositoryFacade, feeRate decimal.Decimal) *MarketplaceService {
	return &MarketplaceService{
		assetRepo:  assetRepo,
		walletRepo: walletRepo,
		feeRate:    feeRate,
	}
}

// Ensure MarketplaceService implements portssvc.MarketplaceSvcFacade
var _ portssvc.MarketplaceSvcFacade = (*MarketplaceService)(nil)

// GetAsset retrieves one asset with its listing state.
func (s *MarketplaceService) GetAsset(ctx context.Context, tokenID string) (*domain.Asset, error) {
	asset, err := s.assetRepo.FindAssetByTokenID(ctx, tokenID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find asset", slog.String("error", err.Error()), slog.String("token_id", tokenID))
		}
		return nil, err
	}
	return asset, nil
}

// BrowseListings returns a page of currently listed assets, newest first.
func (s *MarketplaceService) BrowseListings(ctx context.Context, params dto.ListListingsParams) (*dto.ListListingsResponse, error) {
	assets, nextToken, err := s.assetRepo.ListListedAssets(ctx, params.Limit, params.NextToken)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list listings", slog.String("error", err.Error()))
		return nil, err
	}
	return &dto.ListListingsResponse{
		Listings:  dto.ToAssetResponses(assets),
		NextToken: nextToken,
	}, nil
}

// GetInventory returns every asset a wallet holds.
func (s *MarketplaceService) GetInventory(ctx context.Context, ownerAddress string) ([]domain.Asset, error) {
	if _, err := s.walletRepo.FindWalletByAddress(ctx, ownerAddress); err != nil {
		return nil, err
	}
	assets, err := s.assetRepo.ListAssetsByOwner(ctx, ownerAddress)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list inventory", slog.String("error", err.Error()), slog.String("owner", ownerAddress))
		return nil, err
	}
	return assets, nil
}

// Mint records a newly minted asset owned by the given wallet. The minting
// pipeline may deliver the same notification more than once; a token id that
// already exists returns the stored asset unchanged.
func (s *MarketplaceService) Mint(ctx context.Context, req dto.MintAssetRequest) (*domain.Asset, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.walletRepo.FindWalletByAddress(ctx, req.OwnerAddress); err != nil {
		return nil, err
	}

	now := time.Now()
	asset := domain.Asset{
		TokenID: req.TokenID,
		Metadata: domain.AssetMetadata{
			Name:   req.Name,
			Rarity: domain.AssetRarity(req.Rarity),
			Effect: req.Effect,
		},
		OwnerAddress: req.OwnerAddress,
		Version:      1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     systemActorID,
			LastUpdatedAt: now,
			LastUpdatedBy: systemActorID,
		},
	}

	if err := s.assetRepo.SaveAsset(ctx, asset); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return s.assetRepo.FindAssetByTokenID(ctx, req.TokenID)
		}
		logger.Error("Failed to mint asset", slog.String("error", err.Error()), slog.String("token_id", req.TokenID))
		return nil, err
	}

	logger.Info("Asset minted",
		slog.String("token_id", req.TokenID),
		slog.String("owner", req.OwnerAddress),
		slog.String("rarity", req.Rarity))
	return &asset, nil
}

// List puts an owned, unlisted asset up for sale. Ownership does not move.
func (s *MarketplaceService) List(ctx context.Context, tokenID string, sellerAddress string, price decimal.Decimal, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !price.IsPositive() || !domain.ValidAmount(price) {
		return fmt.Errorf("%w: listing price must be positive with at most %d decimal places", apperrors.ErrValidation, domain.AmountScale)
	}

	seller, err := s.walletRepo.FindWalletByAddress(ctx, sellerAddress)
	if err != nil {
		return err
	}
	if !seller.IsActive {
		return fmt.Errorf("%w: %s", apperrors.ErrWalletInactive, sellerAddress)
	}
	if seller.UserID != userID {
		return fmt.Errorf("%w: wallet %s does not belong to caller", apperrors.ErrForbidden, sellerAddress)
	}

	for attempt := 0; attempt < maxCommitAttempts; attempt++ {
		asset, err := s.assetRepo.FindAssetByTokenID(ctx, tokenID)
		if err != nil {
			return err
		}
		if asset.OwnerAddress != sellerAddress {
			return fmt.Errorf("%w: asset %s is not owned by %s", apperrors.ErrNotOwner, tokenID, sellerAddress)
		}
		if asset.IsListed() {
			return fmt.Errorf("%w: asset %s", apperrors.ErrAlreadyListed, tokenID)
		}

		now := time.Now()
		listing := &domain.Listing{Price: price, ListedAt: now}
		err = s.assetRepo.UpdateListing(ctx, tokenID, listing, asset.Version, userID, now)
		if err == nil {
			logger.Info("Asset listed",
				slog.String("token_id", tokenID),
				slog.String("seller", sellerAddress),
				slog.String("price", price.String()))
			return nil
		}
		if errors.Is(err, apperrors.ErrConflict) {
			continue
		}
		return err
	}

	return fmt.Errorf("%w: listing %s kept losing the version race", apperrors.ErrConflict, tokenID)
}

// Unlist withdraws the caller's own active listing.
func (s *MarketplaceService) Unlist(ctx context.Context, tokenID string, sellerAddress string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	seller, err := s.walletRepo.FindWalletByAddress(ctx, sellerAddress)
	if err != nil {
		return err
	}
	if seller.UserID != userID {
		return fmt.Errorf("%w: wallet %s does not belong to caller", apperrors.ErrForbidden, sellerAddress)
	}

	for attempt := 0; attempt < maxCommitAttempts; attempt++ {
		asset, err := s.assetRepo.FindAssetByTokenID(ctx, tokenID)
		if err != nil {
			return err
		}
		if asset.OwnerAddress != sellerAddress {
			return fmt.Errorf("%w: asset %s is not owned by %s", apperrors.ErrNotOwner, tokenID, sellerAddress)
		}
		if !asset.IsListed() {
			return fmt.Errorf("%w: asset %s", apperrors.ErrNotListed, tokenID)
		}

		err = s.assetRepo.UpdateListing(ctx, tokenID, nil, asset.Version, userID, time.Now())
		if err == nil {
			logger.Info("Asset unlisted", slog.String("token_id", tokenID), slog.String("seller", sellerAddress))
			return nil
		}
		if errors.Is(err, apperrors.ErrConflict) {
			continue
		}
		return err
	}

	return fmt.Errorf("%w: unlisting %s kept losing the version race", apperrors.ErrConflict, tokenID)
}

// Buy purchases a listed asset. The buyer pays the listed price, the seller
// is credited with the price minus the marketplace cut, ownership moves and
// the listing clears, all in one atomic commit. At most one of any set of
// concurrent buyers wins; the rest observe ErrListingChanged.
func (s *MarketplaceService) Buy(ctx context.Context, tokenID string, buyerAddress string, userID string) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	purchaseRef := uuid.NewString()

	for attempt := 0; attempt < maxCommitAttempts; attempt++ {
		asset, err := s.assetRepo.FindAssetByTokenID(ctx, tokenID)
		if err != nil {
			return nil, err
		}
		if !asset.IsListed() {
			// On a retry the listing was live when we started; it changed
			// underneath the purchase rather than never existing.
			if attempt > 0 {
				return nil, fmt.Errorf("%w: asset %s", apperrors.ErrListingChanged, tokenID)
			}
			return nil, fmt.Errorf("%w: asset %s", apperrors.ErrNotListed, tokenID)
		}
		if asset.OwnerAddress == buyerAddress {
			return nil, fmt.Errorf("%w: cannot buy own asset %s", apperrors.ErrSelfTransfer, tokenID)
		}

		buyer, err := s.walletRepo.FindWalletByAddress(ctx, buyerAddress)
		if err != nil {
			return nil, err
		}
		if !buyer.IsActive {
			return nil, fmt.Errorf("%w: buyer %s", apperrors.ErrWalletInactive, buyerAddress)
		}
		if buyer.UserID != userID {
			return nil, fmt.Errorf("%w: wallet %s does not belong to caller", apperrors.ErrForbidden, buyerAddress)
		}

		price := asset.Listing.Price
		if buyer.Balance.LessThan(price) {
			return nil, fmt.Errorf("%w: balance %s is less than price %s", apperrors.ErrInsufficientFunds, buyer.Balance.String(), price.String())
		}

		seller, err := s.walletRepo.FindWalletByAddress(ctx, asset.OwnerAddress)
		if err != nil {
			return nil, fmt.Errorf("seller wallet unavailable: %w", err)
		}

		fee := price.Mul(s.feeRate).Round(domain.AmountScale)
		sellerCredit := price.Sub(fee)

		now := time.Now()
		debitEntry := domain.LedgerEntry{
			EntryID:             uuid.NewString(),
			WalletAddress:       buyer.Address,
			Kind:                domain.EntrySaleDebit,
			Amount:              price.Neg(),
			CounterpartyAddress: seller.Address,
			ExternalReference:   purchaseRef,
			Status:              domain.EntryCompleted,
			CreatedAt:           now,
			CreatedBy:           userID,
		}
		changes := []portsrepo.BalanceChange{
			{
				Address:         buyer.Address,
				NewBalance:      buyer.Balance.Sub(price),
				ExpectedVersion: buyer.Version,
			},
			{
				Address:         seller.Address,
				NewBalance:      seller.Balance.Add(sellerCredit),
				ExpectedVersion: seller.Version,
			},
		}
		entries := []domain.LedgerEntry{
			debitEntry,
			{
				EntryID:             uuid.NewString(),
				WalletAddress:       seller.Address,
				Kind:                domain.EntrySaleCredit,
				Amount:              sellerCredit,
				CounterpartyAddress: buyer.Address,
				ExternalReference:   purchaseRef,
				Status:              domain.EntryCompleted,
				CreatedAt:           now,
				CreatedBy:           userID,
			},
		}

		if fee.IsPositive() {
			collector, err := s.walletRepo.FindWalletByAddress(ctx, domain.FeeCollectorAddress)
			if err != nil {
				return nil, fmt.Errorf("fee collector wallet unavailable: %w", err)
			}
			changes = append(changes, portsrepo.BalanceChange{
				Address:         collector.Address,
				NewBalance:      collector.Balance.Add(fee),
				ExpectedVersion: collector.Version,
			})
			entries = append(entries, domain.LedgerEntry{
				EntryID:             uuid.NewString(),
				WalletAddress:       collector.Address,
				Kind:                domain.EntryFee,
				Amount:              fee,
				CounterpartyAddress: buyer.Address,
				ExternalReference:   purchaseRef,
				Status:              domain.EntryCompleted,
				CreatedAt:           now,
				CreatedBy:           userID,
			})
		}

		err = s.assetRepo.ExecutePurchase(ctx, portsrepo.PurchaseUpdate{
			TokenID:              tokenID,
			ExpectedAssetVersion: asset.Version,
			NewOwnerAddress:      buyer.Address,
			BalanceChanges:       changes,
			Entries:              entries,
			UserID:               userID,
			Now:                  now,
		})
		if err == nil {
			logger.Info("Purchase committed",
				slog.String("token_id", tokenID),
				slog.String("buyer", buyer.Address),
				slog.String("seller", seller.Address),
				slog.String("price", price.String()),
				slog.String("fee", fee.String()),
				slog.String("purchase_ref", purchaseRef))
			return &debitEntry, nil
		}
		if errors.Is(err, apperrors.ErrConflict) {
			continue
		}
		if !errors.Is(err, apperrors.ErrListingChanged) {
			logger.Error("Failed to commit purchase", slog.String("error", err.Error()), slog.String("token_id", tokenID))
		}
		return nil, err
	}

	return nil, fmt.Errorf("%w: purchase of %s kept losing the version race", apperrors.ErrConflict, tokenID)
}
