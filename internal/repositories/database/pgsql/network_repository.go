package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/playforge/wallet_marketplace_app/internal/apperrors"
	"github.com/playforge/wallet_marketplace_app/internal/core/domain"
	portsrepo "github.com/playforge/wallet_marketplace_app/internal/core/ports/repositories"
	"github.com/playforge/wallet_marketplace_app/internal/models"
)

type PgxNetworkRepository struct {
	BaseRepository
}

func newPgxNetworkRepository(pool *pgxpool.Pool) *PgxNetworkRepository {
	return &PgxNetworkRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxNetworkRepository implements portsrepo.NetworkRepositoryFacade
var _ portsrepo.NetworkRepositoryFacade = (*PgxNetworkRepository)(nil)

func toDomainNetwork(m models.Network) domain.Network {
	return domain.Network{
		Code:    m.Code,
		Name:    m.Name,
		Fee:     m.Fee,
		Enabled: m.Enabled,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const networkColumns = `code, name, fee, enabled, created_at, created_by, last_updated_at, last_updated_by`

func scanNetworkRow(scan func(dest ...any) error) (domain.Network, error) {
	var m models.Network
	err := scan(
		&m.Code,
		&m.Name,
		&m.Fee,
		&m.Enabled,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Network{}, err
	}
	return toDomainNetwork(m), nil
}

// FindNetworkByCode retrieves a network by its code.
func (r *PgxNetworkRepository) FindNetworkByCode(ctx context.Context, code string) (*domain.Network, error) {
	query := `SELECT ` + networkColumns + ` FROM networks WHERE code = $1;`
	network, err := scanNetworkRow(r.Pool.QueryRow(ctx, query, code).Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find network by code %s: %w", code, err)
	}
	return &network, nil
}

// ListNetworks returns all enabled networks.
func (r *PgxNetworkRepository) ListNetworks(ctx context.Context) ([]domain.Network, error) {
	query := `SELECT ` + networkColumns + ` FROM networks WHERE enabled = TRUE ORDER BY code;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query networks: %w", err)
	}
	defer rows.Close()

	networks := []domain.Network{}
	for rows.Next() {
		network, err := scanNetworkRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan network row: %w", err)
		}
		networks = append(networks, network)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating network rows: %w", err)
	}

	return networks, nil
}
