package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/playforge/wallet_marketplace_app/internal/core/domain"
	portsrepo "github.com/playforge/wallet_marketplace_app/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	BaseRepository
}

func newPgxReportingRepository(pool *pgxpool.Pool) *PgxReportingRepository {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxReportingRepository implements portsrepo.ReportingRepositoryFacade
var _ portsrepo.ReportingRepositoryFacade = (*PgxReportingRepository)(nil)

// GetLedgerSummary aggregates wallet and entry totals in a single round trip.
func (r *PgxReportingRepository) GetLedgerSummary(ctx context.Context) (*domain.LedgerSummary, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM wallets),
			(SELECT COUNT(*) FROM wallets WHERE is_active = TRUE),
			(SELECT COALESCE(SUM(balance), 0) FROM wallets),
			(SELECT COALESCE(SUM(amount), 0) FROM ledger_entries WHERE kind = $1),
			(SELECT COALESCE(SUM(amount), 0) FROM ledger_entries WHERE kind = $2),
			(SELECT COALESCE(balance, 0) FROM wallets WHERE address = $3),
			(SELECT COUNT(*) FROM ledger_entries);
	`
	var summary domain.LedgerSummary
	err := r.Pool.QueryRow(ctx, query,
		string(domain.EntryDeposit),
		string(domain.EntryTransferIn),
		domain.FeeCollectorAddress,
	).Scan(
		&summary.TotalWallets,
		&summary.ActiveWallets,
		&summary.TotalBalance,
		&summary.DepositVolume,
		&summary.TransferVolume,
		&summary.FeePoolBalance,
		&summary.EntryCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger summary: %w", err)
	}
	return &summary, nil
}

// GetMarketplaceActivity aggregates completed trades in [from, to), bucketed
// by day. Each trade is counted once via its SALE_DEBIT entry.
func (r *PgxReportingRepository) GetMarketplaceActivity(ctx context.Context, from, to time.Time) (*domain.MarketplaceActivity, error) {
	activity := &domain.MarketplaceActivity{
		TradeVolume:   decimal.Zero,
		FeesCollected: decimal.Zero,
		Daily:         []domain.DailyActivity{},
	}

	listedQuery := `SELECT COUNT(*) FROM assets WHERE listed_price IS NOT NULL;`
	if err := r.Pool.QueryRow(ctx, listedQuery).Scan(&activity.ListedAssets); err != nil {
		return nil, fmt.Errorf("failed to count listed assets: %w", err)
	}

	totalsQuery := `
		SELECT COUNT(*), COALESCE(SUM(-amount), 0)
		FROM ledger_entries
		WHERE kind = $1 AND created_at >= $2 AND created_at < $3;
	`
	err := r.Pool.QueryRow(ctx, totalsQuery, string(domain.EntrySaleDebit), from, to).
		Scan(&activity.TradeCount, &activity.TradeVolume)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade totals: %w", err)
	}

	feesQuery := `
		SELECT COALESCE(SUM(amount), 0)
		FROM ledger_entries
		WHERE kind = $1 AND wallet_address = $2 AND created_at >= $3 AND created_at < $4;
	`
	err = r.Pool.QueryRow(ctx, feesQuery, string(domain.EntryFee), domain.FeeCollectorAddress, from, to).
		Scan(&activity.FeesCollected)
	if err != nil {
		return nil, fmt.Errorf("failed to query collected fees: %w", err)
	}

	dailyQuery := `
		SELECT date_trunc('day', created_at) AS day, COUNT(*), COALESCE(SUM(-amount), 0)
		FROM ledger_entries
		WHERE kind = $1 AND created_at >= $2 AND created_at < $3
		GROUP BY day
		ORDER BY day;
	`
	rows, err := r.Pool.Query(ctx, dailyQuery, string(domain.EntrySaleDebit), from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily trade buckets: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bucket domain.DailyActivity
		if err := rows.Scan(&bucket.Day, &bucket.Trades, &bucket.Volume); err != nil {
			return nil, fmt.Errorf("failed to scan daily trade bucket: %w", err)
		}
		activity.Daily = append(activity.Daily, bucket)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily trade buckets: %w", err)
	}

	return activity, nil
}
