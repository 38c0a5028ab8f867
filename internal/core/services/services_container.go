package services

import (
	portsrepo "github.com/playforge/wallet_marketplace_app/internal/core/ports/repositories"
	portssvc "github.com/playforge/wallet_marketplace_app/internal/core/ports/services"
	"github.com/playforge/wallet_marketplace_app/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Fee service first: the ledger depends on it for transfer fees.
	container.Fee = NewFeeService(repos.NetworkRepo, cfg.FeeLookupTimeout)

	container.Wallet = NewWalletService(repos.WalletRepo)
	container.Ledger = NewLedgerService(repos.WalletRepo, container.Fee)
	container.Marketplace = NewMarketplaceService(repos.AssetRepo, repos.WalletRepo, cfg.MarketplaceFeeRate)
	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg)
	container.Reporting = NewReportingService(repos.ReportingRepo)

	return container
}
