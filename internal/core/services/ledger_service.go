package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/playforge/wallet_marketplace_app/internal/apperrors"
	"github.com/playforge/wallet_marketplace_app/internal/core/domain"
	portsrepo "github.com/playforge/wallet_marketplace_app/internal/core/ports/repositories"
	portssvc "github.com/playforge/wallet_marketplace_app/internal/core/ports/services"
	"github.com/playforge/wallet_marketplace_app/internal/dto"
	"github.com/playforge/wallet_marketplace_app/internal/middleware"
	"github.com/playforge/wallet_marketplace_app/internal/utils"
)

// maxCommitAttempts bounds the optimistic-concurrency retry loop. A commit
// that loses the version race re-reads and retries; after this many losses
// the operation fails with ErrConflict rather than spinning.
const maxCommitAttempts = 3

// systemActorID is the audit identity for writes triggered by external
// collaborators rather than an authenticated user.
const systemActorID = "system"

// LedgerService implements balance movements over the append-only entry log.
type LedgerService struct {
	walletRepo portsrepo.WalletRepositoryFacade
	feeSvc     portssvc.FeeSvcFacade
}

func NewLedgerService(walletRepo portsrepo.WalletRepositoryFacade, feeSvc portssvc.FeeSvcFacade) *LedgerService {
	return &LedgerService{
		walletRepo: walletRepo,
		feeSvc:     feeSvc,
	}
}

// Ensure LedgerService implements portssvc.LedgerSvcFacade
var _ portssvc.LedgerSvcFacade = (*LedgerService)(nil)

// Deposit credits a wallet from a completed external payment. Idempotent on
// ExternalReference: replaying the same reference returns the original entry
// and the balance moves exactly once.
func (s *LedgerService) Deposit(ctx context.Context, req dto.DepositRequest) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() || !domain.ValidAmount(req.Amount) {
		return nil, fmt.Errorf("%w: deposit amount must be positive with at most %d decimal places", apperrors.ErrValidation, domain.AmountScale)
	}

	existing, err := s.walletRepo.FindEntryByReference(ctx, req.WalletAddress, domain.EntryDeposit, req.ExternalReference)
	if err == nil {
		logger.Info("Deposit replayed, returning original entry",
			slog.String("address", req.WalletAddress),
			slog.String("external_reference", req.ExternalReference))
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	for attempt := 0; attempt < maxCommitAttempts; attempt++ {
		wallet, err := s.walletRepo.FindWalletByAddress(ctx, req.WalletAddress)
		if err != nil {
			return nil, err
		}
		if !wallet.IsActive {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrWalletInactive, wallet.Address)
		}

		now := time.Now()
		entry := domain.LedgerEntry{
			EntryID:           uuid.NewString(),
			WalletAddress:     wallet.Address,
			Kind:              domain.EntryDeposit,
			Amount:            req.Amount,
			ExternalReference: req.ExternalReference,
			Status:            domain.EntryCompleted,
			CreatedAt:         now,
			CreatedBy:         systemActorID,
		}
		change := portsrepo.BalanceChange{
			Address:         wallet.Address,
			NewBalance:      wallet.Balance.Add(req.Amount),
			ExpectedVersion: wallet.Version,
		}

		err = s.walletRepo.ApplyLedgerChanges(ctx, []portsrepo.BalanceChange{change}, []domain.LedgerEntry{entry}, systemActorID, now)
		if err == nil {
			logger.Info("Deposit committed",
				slog.String("address", wallet.Address),
				slog.String("entry_id", entry.EntryID),
				slog.String("amount", req.Amount.String()))
			return &entry, nil
		}
		if errors.Is(err, apperrors.ErrDuplicate) {
			// Lost an idempotency race against a concurrent replay of the
			// same reference; the committed entry is the answer.
			return s.walletRepo.FindEntryByReference(ctx, req.WalletAddress, domain.EntryDeposit, req.ExternalReference)
		}
		if errors.Is(err, apperrors.ErrConflict) {
			continue
		}
		logger.Error("Failed to commit deposit", slog.String("error", err.Error()), slog.String("address", req.WalletAddress))
		return nil, err
	}

	return nil, fmt.Errorf("%w: deposit to %s kept losing the version race", apperrors.ErrConflict, req.WalletAddress)
}

// Transfer debits the sender by amount plus the network fee and credits an
// internal recipient by amount; the fee always lands in the fee-collector
// wallet. All balance changes and entries commit as one unit.
func (s *LedgerService) Transfer(ctx context.Context, fromAddress string, req dto.TransferRequest, userID string) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() || !domain.ValidAmount(req.Amount) {
		return nil, fmt.Errorf("%w: transfer amount must be positive with at most %d decimal places", apperrors.ErrValidation, domain.AmountScale)
	}
	if fromAddress == req.ToAddress {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrSelfTransfer, fromAddress)
	}
	// The collector is credited through fee entries only; addressing it
	// directly would double up its balance change in one commit.
	if req.ToAddress == domain.FeeCollectorAddress {
		return nil, fmt.Errorf("%w: %s is reserved for fee collection", apperrors.ErrValidation, domain.FeeCollectorAddress)
	}

	fee, err := s.feeSvc.NetworkFee(ctx, req.Network)
	if err != nil {
		return nil, err
	}

	// The recipient is internal only if the address maps to a known wallet;
	// otherwise the amount leaves the ledger and only the debit side is
	// recorded.
	recipientInternal := true
	recipient, err := s.walletRepo.FindWalletByAddress(ctx, req.ToAddress)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		recipientInternal = false
	} else if !recipient.IsActive {
		return nil, fmt.Errorf("%w: recipient %s", apperrors.ErrWalletInactive, req.ToAddress)
	}

	txHash, err := utils.GenerateTxHash()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to generate transaction hash", apperrors.ErrInternal)
	}

	for attempt := 0; attempt < maxCommitAttempts; attempt++ {
		sender, err := s.walletRepo.FindWalletByAddress(ctx, fromAddress)
		if err != nil {
			return nil, err
		}
		if !sender.IsActive {
			return nil, fmt.Errorf("%w: sender %s", apperrors.ErrWalletInactive, fromAddress)
		}
		if sender.UserID != userID {
			return nil, fmt.Errorf("%w: wallet %s does not belong to caller", apperrors.ErrForbidden, fromAddress)
		}
		if !utils.CheckSecretHash(req.PIN, sender.Credential.PINHash) {
			return nil, fmt.Errorf("%w: incorrect PIN", apperrors.ErrForbidden)
		}

		totalDebit := req.Amount.Add(fee)
		if sender.Balance.LessThan(totalDebit) {
			return nil, fmt.Errorf("%w: balance %s is less than %s", apperrors.ErrInsufficientFunds, sender.Balance.String(), totalDebit.String())
		}

		now := time.Now()
		outEntry := domain.LedgerEntry{
			EntryID:             uuid.NewString(),
			WalletAddress:       sender.Address,
			Kind:                domain.EntryTransferOut,
			Amount:              req.Amount.Neg(),
			CounterpartyAddress: req.ToAddress,
			Network:             req.Network,
			ExternalReference:   txHash,
			Status:              domain.EntryCompleted,
			CreatedAt:           now,
			CreatedBy:           userID,
		}
		changes := []portsrepo.BalanceChange{{
			Address:         sender.Address,
			NewBalance:      sender.Balance.Sub(totalDebit),
			ExpectedVersion: sender.Version,
		}}
		entries := []domain.LedgerEntry{outEntry}

		if fee.IsPositive() {
			collector, err := s.walletRepo.FindWalletByAddress(ctx, domain.FeeCollectorAddress)
			if err != nil {
				return nil, fmt.Errorf("fee collector wallet unavailable: %w", err)
			}
			changes = append(changes, portsrepo.BalanceChange{
				Address:         collector.Address,
				NewBalance:      collector.Balance.Add(fee),
				ExpectedVersion: collector.Version,
			})
			entries = append(entries,
				domain.LedgerEntry{
					EntryID:             uuid.NewString(),
					WalletAddress:       sender.Address,
					Kind:                domain.EntryFee,
					Amount:              fee.Neg(),
					CounterpartyAddress: domain.FeeCollectorAddress,
					Network:             req.Network,
					ExternalReference:   txHash,
					Status:              domain.EntryCompleted,
					CreatedAt:           now,
					CreatedBy:           userID,
				},
				domain.LedgerEntry{
					EntryID:             uuid.NewString(),
					WalletAddress:       collector.Address,
					Kind:                domain.EntryFee,
					Amount:              fee,
					CounterpartyAddress: sender.Address,
					Network:             req.Network,
					ExternalReference:   txHash,
					Status:              domain.EntryCompleted,
					CreatedAt:           now,
					CreatedBy:           userID,
				},
			)
		}

		if recipientInternal {
			recipient, err = s.walletRepo.FindWalletByAddress(ctx, req.ToAddress)
			if err != nil {
				return nil, err
			}
			if !recipient.IsActive {
				return nil, fmt.Errorf("%w: recipient %s", apperrors.ErrWalletInactive, req.ToAddress)
			}
			changes = append(changes, portsrepo.BalanceChange{
				Address:         recipient.Address,
				NewBalance:      recipient.Balance.Add(req.Amount),
				ExpectedVersion: recipient.Version,
			})
			entries = append(entries, domain.LedgerEntry{
				EntryID:             uuid.NewString(),
				WalletAddress:       recipient.Address,
				Kind:                domain.EntryTransferIn,
				Amount:              req.Amount,
				CounterpartyAddress: sender.Address,
				Network:             req.Network,
				ExternalReference:   txHash,
				Status:              domain.EntryCompleted,
				CreatedAt:           now,
				CreatedBy:           userID,
			})
		}

		err = s.walletRepo.ApplyLedgerChanges(ctx, changes, entries, userID, now)
		if err == nil {
			logger.Info("Transfer committed",
				slog.String("from", sender.Address),
				slog.String("to", req.ToAddress),
				slog.String("amount", req.Amount.String()),
				slog.String("fee", fee.String()),
				slog.String("tx_hash", txHash),
				slog.Bool("internal", recipientInternal))
			return &outEntry, nil
		}
		if errors.Is(err, apperrors.ErrConflict) {
			continue
		}
		logger.Error("Failed to commit transfer", slog.String("error", err.Error()), slog.String("from", fromAddress))
		return nil, err
	}

	return nil, fmt.Errorf("%w: transfer from %s kept losing the version race", apperrors.ErrConflict, fromAddress)
}

// GetBalance returns the wallet's current balance.
func (s *LedgerService) GetBalance(ctx context.Context, address string) (decimal.Decimal, error) {
	wallet, err := s.walletRepo.FindWalletByAddress(ctx, address)
	if err != nil {
		return decimal.Zero, err
	}
	return wallet.Balance, nil
}

// GetHistory returns a page of the wallet's transaction log, newest first.
func (s *LedgerService) GetHistory(ctx context.Context, address string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	if _, err := s.walletRepo.FindWalletByAddress(ctx, address); err != nil {
		return nil, err
	}

	entries, nextToken, err := s.walletRepo.ListEntriesByWallet(ctx, address, params.Limit, params.NextToken)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list ledger entries", slog.String("error", err.Error()), slog.String("address", address))
		return nil, err
	}

	return &dto.ListEntriesResponse{
		Entries:   dto.ToEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}
