package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/playforge/wallet_marketplace_app/internal/apperrors"
	"github.com/playforge/wallet_marketplace_app/internal/core/domain"
	portsrepo "github.com/playforge/wallet_marketplace_app/internal/core/ports/repositories"
	portssvc "github.com/playforge/wallet_marketplace_app/internal/core/ports/services"
	"github.com/playforge/wallet_marketplace_app/internal/middleware"
)

// ReportingService serves read-only aggregates for admin dashboards.
type ReportingService struct {
	reportingRepo portsrepo.ReportingRepositoryFacade
}

func NewReportingService(reportingRepo portsrepo.ReportingRepositoryFacade) *ReportingService {
	return &ReportingService{reportingRepo: reportingRepo}
}

// Ensure ReportingService implements portssvc.ReportingSvcFacade
var _ portssvc.ReportingSvcFacade = (*ReportingService)(nil)

func (s *ReportingService) GetLedgerSummary(ctx context.Context) (*domain.LedgerSummary, error) {
	summary, err := s.reportingRepo.GetLedgerSummary(ctx)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to build ledger summary", slog.String("error", err.Error()))
		return nil, err
	}
	return summary, nil
}

func (s *ReportingService) GetMarketplaceActivity(ctx context.Context, from, to time.Time) (*domain.MarketplaceActivity, error) {
	if !from.Before(to) {
		return nil, fmt.Errorf("%w: 'from' must precede 'to'", apperrors.ErrValidation)
	}
	activity, err := s.reportingRepo.GetMarketplaceActivity(ctx, from, to)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to build marketplace activity", slog.String("error", err.Error()))
		return nil, err
	}
	return activity, nil
}
