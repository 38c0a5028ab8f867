package pgsql

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/playforge/wallet_marketplace_app/internal/apperrors"
	"github.com/playforge/wallet_marketplace_app/internal/core/domain"
	portsrepo "github.com/playforge/wallet_marketplace_app/internal/core/ports/repositories"
)

// AssetRepositoryIntegrationSuite exercises ExecutePurchase against a real
// database because the winner-picking lives in the asset UPDATE's WHERE
// clause, which mocks cannot reach. Set TEST_DATABASE_URL to run it; the
// schema from migrations/ must already be applied.
type AssetRepositoryIntegrationSuite struct {
	suite.Suite
	pool       *pgxpool.Pool
	walletRepo *PgxWalletRepository
	assetRepo  *PgxAssetRepository

	sellerID, buyerID         string
	sellerAddr, buyerAddr     string
	tokenID                   string
	listedPrice, buyerBalance decimal.Decimal
}

func (s *AssetRepositoryIntegrationSuite) SetupSuite() {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		s.T().Skip("TEST_DATABASE_URL not set")
	}

	pool, err := pgxpool.New(context.Background(), dbURL)
	s.Require().NoError(err)
	s.pool = pool
	s.walletRepo = newPgxWalletRepository(pool)
	s.assetRepo = newPgxAssetRepository(pool, s.walletRepo)
}

func (s *AssetRepositoryIntegrationSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *AssetRepositoryIntegrationSuite) SetupTest() {
	ctx := context.Background()
	now := time.Now().UTC()

	s.sellerID = uuid.NewString()
	s.buyerID = uuid.NewString()
	s.sellerAddr = "gw" + strings.ReplaceAll(uuid.NewString(), "-", "")
	s.buyerAddr = "gw" + strings.ReplaceAll(uuid.NewString(), "-", "")
	s.tokenID = "tok-" + uuid.NewString()
	s.listedPrice = decimal.RequireFromString("30.00")
	s.buyerBalance = decimal.RequireFromString("100.00")

	for _, u := range []struct{ id, name string }{
		{s.sellerID, "seller-" + s.sellerID[:8]},
		{s.buyerID, "buyer-" + s.buyerID[:8]},
	} {
		_, err := s.pool.Exec(ctx, `
			INSERT INTO users (user_id, username, password_hash, name, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, 'x', $2, $3, $1, $3, $1);`,
			u.id, u.name, now)
		s.Require().NoError(err)
	}

	for _, w := range []struct {
		addr, userID string
		balance      decimal.Decimal
	}{
		{s.sellerAddr, s.sellerID, decimal.Zero},
		{s.buyerAddr, s.buyerID, s.buyerBalance},
	} {
		_, err := s.pool.Exec(ctx, `
			INSERT INTO wallets (address, user_id, balance, encrypted_private_key, recovery_secret, pin_hash, is_active, version, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, 'x', 'x', 'x', TRUE, 1, $4, $2, $4, $2);`,
			w.addr, w.userID, w.balance, now)
		s.Require().NoError(err)
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO assets (token_id, name, rarity, effect, owner_address, listed_price, listed_at, version, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, 'Ember Dragon', 'EPIC', '', $2, $3, $4, 2, $4, $5, $4, $5);`,
		s.tokenID, s.sellerAddr, s.listedPrice, now, s.sellerID)
	s.Require().NoError(err)
}

func (s *AssetRepositoryIntegrationSuite) TearDownTest() {
	if s.pool == nil {
		return
	}
	ctx := context.Background()
	_, _ = s.pool.Exec(ctx, `DELETE FROM ledger_entries WHERE wallet_address IN ($1, $2);`, s.sellerAddr, s.buyerAddr)
	_, _ = s.pool.Exec(ctx, `DELETE FROM assets WHERE token_id = $1;`, s.tokenID)
	_, _ = s.pool.Exec(ctx, `DELETE FROM wallets WHERE address IN ($1, $2);`, s.sellerAddr, s.buyerAddr)
	_, _ = s.pool.Exec(ctx, `DELETE FROM users WHERE user_id IN ($1, $2);`, s.sellerID, s.buyerID)
}

func (s *AssetRepositoryIntegrationSuite) purchaseUpdate(observedVersion int64, purchaseID string) portsrepo.PurchaseUpdate {
	now := time.Now().UTC()
	return portsrepo.PurchaseUpdate{
		TokenID:              s.tokenID,
		ExpectedAssetVersion: observedVersion,
		NewOwnerAddress:      s.buyerAddr,
		BalanceChanges: []portsrepo.BalanceChange{
			{Address: s.buyerAddr, NewBalance: s.buyerBalance.Sub(s.listedPrice), ExpectedVersion: 1},
			{Address: s.sellerAddr, NewBalance: s.listedPrice, ExpectedVersion: 1},
		},
		Entries: []domain.LedgerEntry{
			{
				EntryID:             uuid.NewString(),
				WalletAddress:       s.buyerAddr,
				Kind:                domain.EntrySaleDebit,
				Amount:              s.listedPrice.Neg(),
				CounterpartyAddress: s.sellerAddr,
				ExternalReference:   purchaseID,
				Status:              domain.EntryCompleted,
				CreatedAt:           now,
				CreatedBy:           s.buyerID,
			},
			{
				EntryID:             uuid.NewString(),
				WalletAddress:       s.sellerAddr,
				Kind:                domain.EntrySaleCredit,
				Amount:              s.listedPrice,
				CounterpartyAddress: s.buyerAddr,
				ExternalReference:   purchaseID,
				Status:              domain.EntryCompleted,
				CreatedAt:           now,
				CreatedBy:           s.buyerID,
			},
		},
		UserID: s.buyerID,
		Now:    now,
	}
}

func (s *AssetRepositoryIntegrationSuite) TestExecutePurchase_TransfersOwnershipAndFunds() {
	ctx := context.Background()

	err := s.assetRepo.ExecutePurchase(ctx, s.purchaseUpdate(2, "purchase-"+uuid.NewString()))
	s.Require().NoError(err)

	asset, err := s.assetRepo.FindAssetByTokenID(ctx, s.tokenID)
	s.Require().NoError(err)
	s.Equal(s.buyerAddr, asset.OwnerAddress)
	s.Nil(asset.Listing)
	s.Equal(int64(3), asset.Version)

	buyer, err := s.walletRepo.FindWalletByAddress(ctx, s.buyerAddr)
	s.Require().NoError(err)
	s.True(buyer.Balance.Equal(s.buyerBalance.Sub(s.listedPrice)), "buyer balance %s", buyer.Balance)
}

func (s *AssetRepositoryIntegrationSuite) TestExecutePurchase_StaleVersionLosesWithoutPartialWrites() {
	ctx := context.Background()

	// Both buyers observed version 2. The first commit bumps the asset to 3,
	// so the second must miss the WHERE clause and touch nothing.
	s.Require().NoError(s.assetRepo.ExecutePurchase(ctx, s.purchaseUpdate(2, "purchase-"+uuid.NewString())))

	err := s.assetRepo.ExecutePurchase(ctx, s.purchaseUpdate(2, "purchase-"+uuid.NewString()))
	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrListingChanged)

	asset, err := s.assetRepo.FindAssetByTokenID(ctx, s.tokenID)
	s.Require().NoError(err)
	s.Equal(int64(3), asset.Version)

	var entryCount int
	s.Require().NoError(s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM ledger_entries WHERE wallet_address IN ($1, $2);`,
		s.sellerAddr, s.buyerAddr).Scan(&entryCount))
	s.Equal(2, entryCount, "losing purchase must not write entries")
}

func (s *AssetRepositoryIntegrationSuite) TestExecutePurchase_UnlistedAssetLosesEvenOnMatchingVersion() {
	ctx := context.Background()

	// Clearing the listing without bumping past the observed version would
	// need direct SQL; do exactly that to isolate the IS NOT NULL guard.
	_, err := s.pool.Exec(ctx,
		`UPDATE assets SET listed_price = NULL, listed_at = NULL WHERE token_id = $1;`, s.tokenID)
	s.Require().NoError(err)

	err = s.assetRepo.ExecutePurchase(ctx, s.purchaseUpdate(2, "purchase-"+uuid.NewString()))
	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrListingChanged)

	asset, err := s.assetRepo.FindAssetByTokenID(ctx, s.tokenID)
	s.Require().NoError(err)
	s.Equal(s.sellerAddr, asset.OwnerAddress)
}

func TestAssetRepositoryIntegrationSuite(t *testing.T) {
	suite.Run(t, new(AssetRepositoryIntegrationSuite))
}
