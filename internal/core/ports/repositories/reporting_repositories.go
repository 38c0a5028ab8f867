package repositories

import (
	"context"
	"time"

	"github.com/playforge/wallet_marketplace_app/internal/core/domain"
)

// ReportingRepositoryFacade defines the read-only aggregate queries consumed
// by admin dashboards. Implementations must never mutate state and may return
// slightly stale but internally consistent snapshots.
type ReportingRepositoryFacade interface {
	GetLedgerSummary(ctx context.Context) (*domain.LedgerSummary, error)
	GetMarketplaceActivity(ctx context.Context, from, to time.Time) (*domain.MarketplaceActivity, error)
}
