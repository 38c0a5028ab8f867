package services

import (
	"context"
	"time"

	"github.com/playforge/wallet_marketplace_app/internal/core/domain"
)

// ReportingSvcFacade exposes read-only aggregates for admin dashboards.
// Reporting never mutates state and never fabricates financial or ownership
// facts from partial data.
type ReportingSvcFacade interface {
	GetLedgerSummary(ctx context.Context) (*domain.LedgerSummary, error)
	GetMarketplaceActivity(ctx context.Context, from, to time.Time) (*domain.MarketplaceActivity, error)
}
