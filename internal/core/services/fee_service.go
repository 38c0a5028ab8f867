package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/playforge/wallet_marketplace_app/internal/apperrors"
	"github.com/playforge/wallet_marketplace_app/internal/core/domain"
	portsrepo "github.com/playforge/wallet_marketplace_app/internal/core/ports/repositories"
	portssvc "github.com/playforge/wallet_marketplace_app/internal/core/ports/services"
	"github.com/playforge/wallet_marketplace_app/internal/middleware"
)

// FeeService resolves transfer fees from the network schedule. Every lookup
// runs under its own deadline so a slow schedule store degrades into a clean
// ErrExternalTimeout instead of stalling the transfer that asked.
type FeeService struct {
	networkRepo   portsrepo.NetworkRepositoryFacade
	lookupTimeout time.Duration
}

func NewFeeService(networkRepo portsrepo.NetworkRepositoryFacade, lookupTimeout time.Duration) *FeeService {
	return &FeeService{
		networkRepo:   networkRepo,
		lookupTimeout: lookupTimeout,
	}
}

// Ensure FeeService implements portssvc.FeeSvcFacade
var _ portssvc.FeeSvcFacade = (*FeeService)(nil)

// NetworkFee returns the flat fee for the given network code. A fee is never
// guessed: an unknown or disabled code fails the caller, and so does a
// lookup that misses its deadline.
func (s *FeeService) NetworkFee(ctx context.Context, networkCode string) (decimal.Decimal, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()

	network, err := s.networkRepo.FindNetworkByCode(lookupCtx, networkCode)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			middleware.GetLoggerFromCtx(ctx).Warn("Fee lookup timed out", slog.String("network", networkCode))
			return decimal.Zero, fmt.Errorf("%w: fee lookup for %s", apperrors.ErrExternalTimeout, networkCode)
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, fmt.Errorf("%w: %s", apperrors.ErrUnknownNetwork, networkCode)
		}
		return decimal.Zero, err
	}
	if !network.Enabled {
		return decimal.Zero, fmt.Errorf("%w: %s is disabled", apperrors.ErrUnknownNetwork, networkCode)
	}

	return network.Fee, nil
}

// ListNetworks returns the enabled networks and their fees.
func (s *FeeService) ListNetworks(ctx context.Context) ([]domain.Network, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()

	networks, err := s.networkRepo.ListNetworks(lookupCtx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: network list", apperrors.ErrExternalTimeout)
		}
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list networks", slog.String("error", err.Error()))
		return nil, err
	}
	return networks, nil
}
