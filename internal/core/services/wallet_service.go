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
	"github.com/playforge/wallet_marketplace_app/internal/utils"
)

// WalletService manages wallet lifecycle and PIN verification.
type WalletService struct {
	walletRepo portsrepo.WalletRepositoryFacade
}

func NewWalletService(walletRepo portsrepo.WalletRepositoryFacade) *WalletService {
	return &WalletService{walletRepo: walletRepo}
}

// Ensure WalletService implements portssvc.WalletSvcFacade
var _ portssvc.WalletSvcFacade = (*WalletService)(nil)

// CreateWallet opens the user's single wallet: generates the keypair, derives
// the address, hashes the PIN and persists the wallet with a zero balance.
// The plaintext recovery secret is returned once and never stored.
func (s *WalletService) CreateWallet(ctx context.Context, userID string, pin string) (*domain.Wallet, string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.walletRepo.FindWalletByUserID(ctx, userID); err == nil {
		return nil, "", fmt.Errorf("%w: user already has a wallet", apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check for existing wallet", slog.String("error", err.Error()), slog.String("user_id", userID))
		return nil, "", err
	}

	keys, err := utils.GenerateWalletKeys()
	if err != nil {
		logger.Error("Failed to generate wallet keys", slog.String("error", err.Error()))
		return nil, "", fmt.Errorf("%w: key generation failed", apperrors.ErrInternal)
	}

	encryptedKey, err := utils.EncryptPrivateKey(keys.PrivateKeyHex, keys.RecoverySecret)
	if err != nil {
		logger.Error("Failed to encrypt private key", slog.String("error", err.Error()))
		return nil, "", fmt.Errorf("%w: key encryption failed", apperrors.ErrInternal)
	}

	pinHash, err := utils.HashSecret(pin)
	if err != nil {
		logger.Error("Failed to hash wallet PIN", slog.String("error", err.Error()))
		return nil, "", fmt.Errorf("%w: pin hashing failed", apperrors.ErrInternal)
	}
	recoveryHash, err := utils.HashSecret(keys.RecoverySecret)
	if err != nil {
		logger.Error("Failed to hash recovery secret", slog.String("error", err.Error()))
		return nil, "", fmt.Errorf("%w: recovery secret hashing failed", apperrors.ErrInternal)
	}

	now := time.Now()
	wallet := domain.Wallet{
		Address:  keys.Address,
		UserID:   userID,
		Balance:  decimal.Zero,
		IsActive: true,
		Credential: domain.WalletCredential{
			EncryptedPrivateKey: encryptedKey,
			RecoverySecret:      recoveryHash,
			PINHash:             pinHash,
		},
		Version: 1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.walletRepo.SaveWallet(ctx, wallet); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save wallet", slog.String("error", err.Error()), slog.String("address", wallet.Address))
		}
		return nil, "", err
	}

	logger.Info("Wallet created", slog.String("address", wallet.Address), slog.String("user_id", userID))
	return &wallet, keys.RecoverySecret, nil
}

// GetWalletByAddress retrieves a wallet by its address.
func (s *WalletService) GetWalletByAddress(ctx context.Context, address string) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.FindWalletByAddress(ctx, address)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find wallet by address", slog.String("error", err.Error()), slog.String("address", address))
		}
		return nil, err
	}
	return wallet, nil
}

// GetWalletForUser retrieves the wallet owned by the given user.
func (s *WalletService) GetWalletForUser(ctx context.Context, userID string) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.FindWalletByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			middleware.GetLoggerFromCtx(ctx).Error("Failed to find wallet for user", slog.String("error", err.Error()), slog.String("user_id", userID))
		}
		return nil, err
	}
	return wallet, nil
}

// DeactivateWallet closes the user's wallet. History is retained; only
// further mutations are rejected.
func (s *WalletService) DeactivateWallet(ctx context.Context, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	wallet, err := s.walletRepo.FindWalletByUserID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.walletRepo.DeactivateWallet(ctx, wallet.Address, wallet.Version, userID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) && !errors.Is(err, apperrors.ErrConflict) {
			logger.Error("Failed to deactivate wallet", slog.String("error", err.Error()), slog.String("address", wallet.Address))
		}
		return err
	}

	logger.Info("Wallet deactivated", slog.String("address", wallet.Address), slog.String("user_id", userID))
	return nil
}

// VerifyPIN checks the given PIN against the wallet's stored hash.
func (s *WalletService) VerifyPIN(ctx context.Context, userID string, pin string) error {
	wallet, err := s.walletRepo.FindWalletByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if !utils.CheckSecretHash(pin, wallet.Credential.PINHash) {
		return fmt.Errorf("%w: incorrect PIN", apperrors.ErrForbidden)
	}
	return nil
}
