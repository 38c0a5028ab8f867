package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/playforge/wallet_marketplace_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	walletRepo := newPgxWalletRepository(dbPool)
	assetRepo := newPgxAssetRepository(dbPool, walletRepo)
	networkRepo := newPgxNetworkRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	reportingRepo := newPgxReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		WalletRepo:    walletRepo,
		AssetRepo:     assetRepo,
		NetworkRepo:   networkRepo,
		UserRepo:      userRepo,
		ReportingRepo: reportingRepo,
	}
}
