package services

import (
	"context"
	"time"

	"github.com/playforge/wallet_marketplace_app/internal/core/domain"
	"github.com/playforge/wallet_marketplace_app/internal/dto"
)

// UserSvcFacade manages player accounts for the authentication edge. The core
// services only ever consume the authenticated user id.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// AuthenticateUser validates credentials and returns the user, or
	// ErrForbidden for a bad username/password pair.
	AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error)
}

// TokenSvcFacade issues session tokens for authenticated users.
type TokenSvcFacade interface {
	GenerateAccessToken(user *domain.User) (string, time.Time, error)
}
