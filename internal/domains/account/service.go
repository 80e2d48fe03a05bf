package account

import (
	"context"

	"github.com/google/uuid"
)

// Service là business logic contract cho accounts
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*AccountDTO, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	// Logout đưa access token vào blacklist đến khi token hết hạn
	Logout(ctx context.Context, accessToken string) error

	GetProfile(ctx context.Context, id uuid.UUID) (*AccountDTO, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*AccountDTO, error)
	ChangePassword(ctx context.Context, id uuid.UUID, req ChangePasswordRequest) error
}
