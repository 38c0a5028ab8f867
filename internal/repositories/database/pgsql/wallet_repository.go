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

	"github.com/playforge/wallet_marketplace_app/internal/apperrors"
	"github.com/playforge/wallet_marketplace_app/internal/core/domain"
	portsrepo "github.com/playforge/wallet_marketplace_app/internal/core/ports/repositories"
	"github.com/playforge/wallet_marketplace_app/internal/models"
	"github.com/playforge/wallet_marketplace_app/internal/utils/pagination"
)

const pgUniqueViolation = "23505"

type PgxWalletRepository struct {
	BaseRepository
}

// newPgxWalletRepository creates a new repository for wallet and ledger data.
func newPgxWalletRepository(pool *pgxpool.Pool) *PgxWalletRepository {
	return &PgxWalletRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxWalletRepository implements portsrepo.WalletRepositoryFacade
var _ portsrepo.WalletRepositoryFacade = (*PgxWalletRepository)(nil)

func toModelWallet(d domain.Wallet) models.Wallet {
	return models.Wallet{
		Address:             d.Address,
		UserID:              d.UserID,
		Balance:             d.Balance,
		EncryptedPrivateKey: d.Credential.EncryptedPrivateKey,
		RecoverySecret:      d.Credential.RecoverySecret,
		PINHash:             d.Credential.PINHash,
		IsActive:            d.IsActive,
		Version:             d.Version,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainWallet(m models.Wallet) domain.Wallet {
	return domain.Wallet{
		Address: m.Address,
		UserID:  m.UserID,
		Balance: m.Balance,
		Credential: domain.WalletCredential{
			EncryptedPrivateKey: m.EncryptedPrivateKey,
			RecoverySecret:      m.RecoverySecret,
			PINHash:             m.PINHash,
		},
		IsActive: m.IsActive,
		Version:  m.Version,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const walletColumns = `address, user_id, balance, encrypted_private_key, recovery_secret, pin_hash, is_active, version, created_at, created_by, last_updated_at, last_updated_by`

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	var m models.Wallet
	err := row.Scan(
		&m.Address,
		&m.UserID,
		&m.Balance,
		&m.EncryptedPrivateKey,
		&m.RecoverySecret,
		&m.PINHash,
		&m.IsActive,
		&m.Version,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan wallet row: %w", err)
	}
	d := toDomainWallet(m)
	return &d, nil
}

// SaveWallet inserts a new wallet.
func (r *PgxWalletRepository) SaveWallet(ctx context.Context, wallet domain.Wallet) error {
	m := toModelWallet(wallet)

	query := `
		INSERT INTO wallets (` + walletColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.Address,
		m.UserID,
		m.Balance,
		m.EncryptedPrivateKey,
		m.RecoverySecret,
		m.PINHash,
		m.IsActive,
		m.Version,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			// Address or user_id unique violation: the user already has a wallet.
			return fmt.Errorf("%w: wallet for this user or address already exists", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save wallet %s: %w", m.Address, err)
	}
	return nil
}

// FindWalletByAddress retrieves a wallet by its address.
func (r *PgxWalletRepository) FindWalletByAddress(ctx context.Context, address string) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE address = $1;`
	wallet, err := scanWallet(r.Pool.QueryRow(ctx, query, address))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find wallet by address %s: %w", address, err)
	}
	return wallet, nil
}

// FindWalletByUserID retrieves the single wallet owned by a user.
func (r *PgxWalletRepository) FindWalletByUserID(ctx context.Context, userID string) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1;`
	wallet, err := scanWallet(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find wallet for user %s: %w", userID, err)
	}
	return wallet, nil
}

// DeactivateWallet marks a wallet as inactive, conditional on its version.
func (r *PgxWalletRepository) DeactivateWallet(ctx context.Context, address string, expectedVersion int64, userID string, now time.Time) error {
	query := `
		UPDATE wallets
		SET is_active = FALSE, version = version + 1, last_updated_at = $3, last_updated_by = $4
		WHERE address = $1 AND version = $2 AND is_active = TRUE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, address, expectedVersion, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate wallet %s: %w", address, err)
	}

	if cmdTag.RowsAffected() == 0 {
		// Missing, already inactive, or a version mismatch; find out which.
		current, findErr := r.FindWalletByAddress(ctx, address)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check wallet status after deactivation attempt for %s: %w", address, findErr)
		}
		if !current.IsActive {
			return fmt.Errorf("%w: wallet %s is already inactive", apperrors.ErrValidation, address)
		}
		return apperrors.ErrConflict
	}

	return nil
}

// ApplyLedgerChanges commits balance CAS updates plus entry inserts in one transaction.
func (r *PgxWalletRepository) ApplyLedgerChanges(ctx context.Context, changes []portsrepo.BalanceChange, entries []domain.LedgerEntry, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.ApplyLedgerChangesInTx(ctx, tx, changes, entries, userID, now); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// ApplyLedgerChangesInTx applies the same unit inside a caller-owned transaction.
// Any version mismatch aborts with ErrConflict; a duplicate idempotency key
// aborts with ErrDuplicate. The caller decides whether to commit.
func (r *PgxWalletRepository) ApplyLedgerChangesInTx(ctx context.Context, tx pgx.Tx, changes []portsrepo.BalanceChange, entries []domain.LedgerEntry, userID string, now time.Time) error {
	updateQuery := `
		UPDATE wallets
		SET balance = $2, version = version + 1, last_updated_at = $3, last_updated_by = $4
		WHERE address = $1 AND version = $5 AND is_active = TRUE;
	`
	for _, change := range changes {
		cmdTag, err := tx.Exec(ctx, updateQuery, change.Address, change.NewBalance, now, userID, change.ExpectedVersion)
		if err != nil {
			return fmt.Errorf("failed to update balance for wallet %s: %w", change.Address, err)
		}
		if cmdTag.RowsAffected() == 0 {
			// Version moved (or the wallet vanished/deactivated) since the read.
			return fmt.Errorf("%w: wallet %s was modified concurrently", apperrors.ErrConflict, change.Address)
		}
	}

	insertQuery := `
		INSERT INTO ledger_entries (entry_id, wallet_address, kind, amount, counterparty_address, network, external_reference, status, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	batch := &pgx.Batch{}
	for _, entry := range entries {
		var counterparty, network sql.NullString
		if entry.CounterpartyAddress != "" {
			counterparty = sql.NullString{String: entry.CounterpartyAddress, Valid: true}
		}
		if entry.Network != "" {
			network = sql.NullString{String: entry.Network, Valid: true}
		}
		batch.Queue(insertQuery,
			entry.EntryID,
			entry.WalletAddress,
			string(entry.Kind),
			entry.Amount,
			counterparty,
			network,
			entry.ExternalReference,
			string(entry.Status),
			entry.CreatedAt,
			entry.CreatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
				batchErr = fmt.Errorf("%w: entry with reference %s already recorded", apperrors.ErrDuplicate, entries[i].ExternalReference)
			} else {
				batchErr = fmt.Errorf("failed to insert ledger entry %s: %w", entries[i].EntryID, err)
			}
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close ledger entry batch: %w", err)
	}

	return batchErr
}

const entryColumns = `entry_id, wallet_address, kind, amount, counterparty_address, network, external_reference, status, created_at, created_by`

func scanEntry(row pgx.Row) (*domain.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.EntryID,
		&m.WalletAddress,
		&m.Kind,
		&m.Amount,
		&m.CounterpartyAddress,
		&m.Network,
		&m.ExternalReference,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	d := toDomainEntry(m)
	return &d, nil
}

func toDomainEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:             m.EntryID,
		WalletAddress:       m.WalletAddress,
		Kind:                domain.EntryKind(m.Kind),
		Amount:              m.Amount,
		CounterpartyAddress: m.CounterpartyAddress.String,
		Network:             m.Network.String,
		ExternalReference:   m.ExternalReference,
		Status:              domain.EntryStatus(m.Status),
		CreatedAt:           m.CreatedAt,
		CreatedBy:           m.CreatedBy,
	}
}

// FindEntryByReference looks up an entry by wallet, kind and idempotency key.
func (r *PgxWalletRepository) FindEntryByReference(ctx context.Context, walletAddress string, kind domain.EntryKind, externalReference string) (*domain.LedgerEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE wallet_address = $1 AND kind = $2 AND external_reference = $3;
	`
	entry, err := scanEntry(r.Pool.QueryRow(ctx, query, walletAddress, string(kind), externalReference))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry by reference %s: %w", externalReference, err)
	}
	return entry, nil
}

// ListEntriesByWallet returns one page of a wallet's entries in chronological
// order, newest first, with a keyset cursor for the next page.
func (r *PgxWalletRepository) ListEntriesByWallet(ctx context.Context, walletAddress string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE wallet_address = $1
	`
	args := []any{walletAddress}

	if nextToken != nil && *nextToken != "" {
		cursorAt, cursorID, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (created_at, entry_id) < ($2, $3)`
		args = append(args, cursorAt, cursorID)
	}

	query += fmt.Sprintf(` ORDER BY created_at DESC, entry_id DESC LIMIT $%d;`, len(args)+1)
	// Fetch one extra row to know whether another page exists.
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query entries for wallet %s: %w", walletAddress, err)
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		var m models.LedgerEntry
		err := rows.Scan(
			&m.EntryID,
			&m.WalletAddress,
			&m.Kind,
			&m.Amount,
			&m.CounterpartyAddress,
			&m.Network,
			&m.ExternalReference,
			&m.Status,
			&m.CreatedAt,
			&m.CreatedBy,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		entries = append(entries, toDomainEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating entry rows: %w", err)
	}

	var token *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		t := pagination.EncodeCursor(last.CreatedAt, last.EntryID)
		token = &t
	}

	return entries, token, nil
}
