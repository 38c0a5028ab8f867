package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/playforge/wallet_marketplace_app/internal/apperrors"
	"github.com/playforge/wallet_marketplace_app/internal/core/domain"
	portsrepo "github.com/playforge/wallet_marketplace_app/internal/core/ports/repositories"
	"github.com/playforge/wallet_marketplace_app/internal/models"
	"github.com/playforge/wallet_marketplace_app/internal/utils/pagination"
)

type PgxAssetRepository struct {
	BaseRepository
	walletRepo *PgxWalletRepository
}

// newPgxAssetRepository creates a new repository for asset data. The wallet
// repository is injected so a purchase can run its balance updates inside the
// same transaction as the ownership change.
func newPgxAssetRepository(pool *pgxpool.Pool, walletRepo *PgxWalletRepository) *PgxAssetRepository {
	return &PgxAssetRepository{
		BaseRepository: BaseRepository{Pool: pool},
		walletRepo:     walletRepo,
	}
}

// Ensure PgxAssetRepository implements portsrepo.AssetRepositoryFacade
var _ portsrepo.AssetRepositoryFacade = (*PgxAssetRepository)(nil)

func toDomainAsset(m models.Asset) domain.Asset {
	d := domain.Asset{
		TokenID: m.TokenID,
		Metadata: domain.AssetMetadata{
			Name:   m.Name,
			Rarity: domain.AssetRarity(m.Rarity),
			Effect: m.Effect,
		},
		OwnerAddress: m.OwnerAddress,
		Version:      m.Version,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
	if m.ListedPrice.Valid && m.ListedAt.Valid {
		d.Listing = &domain.Listing{
			Price:    m.ListedPrice.Decimal,
			ListedAt: m.ListedAt.Time,
		}
	}
	return d
}

const assetColumns = `token_id, name, rarity, effect, owner_address, listed_price, listed_at, version, created_at, created_by, last_updated_at, last_updated_by`

func scanAssetRow(scan func(dest ...any) error) (domain.Asset, error) {
	var m models.Asset
	err := scan(
		&m.TokenID,
		&m.Name,
		&m.Rarity,
		&m.Effect,
		&m.OwnerAddress,
		&m.ListedPrice,
		&m.ListedAt,
		&m.Version,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Asset{}, err
	}
	return toDomainAsset(m), nil
}

// SaveAsset persists a newly minted asset.
func (r *PgxAssetRepository) SaveAsset(ctx context.Context, asset domain.Asset) error {
	query := `
		INSERT INTO assets (` + assetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	var listedPrice decimal.NullDecimal
	var listedAt sql.NullTime
	if asset.Listing != nil {
		listedPrice = decimal.NullDecimal{Decimal: asset.Listing.Price, Valid: true}
		listedAt = sql.NullTime{Time: asset.Listing.ListedAt, Valid: true}
	}

	_, err := r.Pool.Exec(ctx, query,
		asset.TokenID,
		asset.Metadata.Name,
		string(asset.Metadata.Rarity),
		asset.Metadata.Effect,
		asset.OwnerAddress,
		listedPrice,
		listedAt,
		asset.Version,
		asset.CreatedAt,
		asset.CreatedBy,
		asset.LastUpdatedAt,
		asset.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("%w: asset with token ID %s already exists", apperrors.ErrDuplicate, asset.TokenID)
		}
		return fmt.Errorf("failed to save asset %s: %w", asset.TokenID, err)
	}
	return nil
}

// FindAssetByTokenID retrieves an asset by its token id.
func (r *PgxAssetRepository) FindAssetByTokenID(ctx context.Context, tokenID string) (*domain.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE token_id = $1;`
	asset, err := scanAssetRow(r.Pool.QueryRow(ctx, query, tokenID).Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find asset by token ID %s: %w", tokenID, err)
	}
	return &asset, nil
}

// ListListedAssets returns a page of currently listed assets, newest listings first.
func (r *PgxAssetRepository) ListListedAssets(ctx context.Context, limit int, nextToken *string) ([]domain.Asset, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT ` + assetColumns + `
		FROM assets
		WHERE listed_price IS NOT NULL
	`
	args := []any{}

	if nextToken != nil && *nextToken != "" {
		cursorAt, cursorID, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (listed_at, token_id) < ($1, $2)`
		args = append(args, cursorAt, cursorID)
	}

	query += fmt.Sprintf(` ORDER BY listed_at DESC, token_id DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query listed assets: %w", err)
	}
	defer rows.Close()

	assets := []domain.Asset{}
	for rows.Next() {
		asset, err := scanAssetRow(rows.Scan)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan listed asset row: %w", err)
		}
		assets = append(assets, asset)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating listed asset rows: %w", err)
	}

	var token *string
	if len(assets) > limit {
		assets = assets[:limit]
		last := assets[len(assets)-1]
		t := pagination.EncodeCursor(last.Listing.ListedAt, last.TokenID)
		token = &t
	}

	return assets, token, nil
}

// ListAssetsByOwner returns every asset held by a wallet.
func (r *PgxAssetRepository) ListAssetsByOwner(ctx context.Context, ownerAddress string) ([]domain.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM assets WHERE owner_address = $1 ORDER BY created_at DESC;`

	rows, err := r.Pool.Query(ctx, query, ownerAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to query assets for owner %s: %w", ownerAddress, err)
	}
	defer rows.Close()

	assets := []domain.Asset{}
	for rows.Next() {
		asset, err := scanAssetRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset row for owner %s: %w", ownerAddress, err)
		}
		assets = append(assets, asset)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset rows for owner %s: %w", ownerAddress, err)
	}

	return assets, nil
}

// UpdateListing sets or clears an asset's listing, conditional on its version.
func (r *PgxAssetRepository) UpdateListing(ctx context.Context, tokenID string, listing *domain.Listing, expectedVersion int64, userID string, now time.Time) error {
	var listedPrice decimal.NullDecimal
	var listedAt sql.NullTime
	if listing != nil {
		listedPrice = decimal.NullDecimal{Decimal: listing.Price, Valid: true}
		listedAt = sql.NullTime{Time: listing.ListedAt, Valid: true}
	}

	query := `
		UPDATE assets
		SET listed_price = $2, listed_at = $3, version = version + 1, last_updated_at = $4, last_updated_by = $5
		WHERE token_id = $1 AND version = $6;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, tokenID, listedPrice, listedAt, now, userID, expectedVersion)
	if err != nil {
		return fmt.Errorf("failed to update listing for asset %s: %w", tokenID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		if _, findErr := r.FindAssetByTokenID(ctx, tokenID); errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("%w: asset %s was modified concurrently", apperrors.ErrConflict, tokenID)
	}

	return nil
}

// ExecutePurchase commits the whole purchase atomically: the asset's owner and
// listing change only if the asset row is untouched since it was read, and the
// buyer/seller/fee balance updates plus sale entries ride in the same
// transaction. Any failure rolls everything back.
func (r *PgxAssetRepository) ExecutePurchase(ctx context.Context, update portsrepo.PurchaseUpdate) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// The listed_price IS NOT NULL guard means a concurrently unlisted asset
	// fails here even if its version somehow matched.
	assetQuery := `
		UPDATE assets
		SET owner_address = $2, listed_price = NULL, listed_at = NULL, version = version + 1, last_updated_at = $3, last_updated_by = $4
		WHERE token_id = $1 AND version = $5 AND listed_price IS NOT NULL;
	`
	cmdTag, err := tx.Exec(ctx, assetQuery, update.TokenID, update.NewOwnerAddress, update.Now, update.UserID, update.ExpectedAssetVersion)
	if err != nil {
		return fmt.Errorf("failed to transfer asset %s: %w", update.TokenID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: asset %s", apperrors.ErrListingChanged, update.TokenID)
	}

	if err := r.walletRepo.ApplyLedgerChangesInTx(ctx, tx, update.BalanceChanges, update.Entries, update.UserID, update.Now); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}
