package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"library-backend/internal/domains/account"
	"library-backend/pkg/cache"
	"library-backend/pkg/jwt"
)

// accountService implement account.Service
type accountService struct {
	repo       account.Repository
	jwtManager *jwt.Manager
	blacklist  cache.Cache
}

// NewAccountService tạo service instance
// Inject repository qua constructor (Dependency Injection)
func NewAccountService(repo account.Repository, jwtManager *jwt.Manager, blacklist cache.Cache) account.Service {
	return &accountService{
		repo:       repo,
		jwtManager: jwtManager,
		blacklist:  blacklist,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

// Register tạo account mới, role mặc định là reader
func (s *accountService) Register(ctx context.Context, req account.RegisterRequest) (*account.AccountDTO, error) {
	// 1. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. BUSINESS RULE: passwords phải khớp nhau
	if req.Password != req.ConfirmPassword {
		return nil, account.ErrPasswordMismatch
	}

	// 3. BUSINESS RULE: username/email chưa tồn tại
	exists, err := s.repo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("check username exists: %w", err)
	}
	if exists {
		return nil, account.ErrUsernameAlreadyExists
	}

	exists, err = s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, account.ErrEmailAlreadyExists
	}

	// 4. HASH PASSWORD
	// bcrypt cost = 12: balance giữa security và performance
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 5. CREATE ENTITY
	now := time.Now()
	acct := &account.Account{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		FullName:     req.FullName,
		Phone:        stringPtr(req.Phone),
		Role:         account.RoleReader, // Default role
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// 6. PERSIST
	if err := s.repo.Create(ctx, acct); err != nil {
		return nil, err
	}

	dto := acct.ToDTO()
	return &dto, nil
}

// Login xác thực và trả về JWT tokens + redirect target theo role
func (s *accountService) Login(ctx context.Context, req account.LoginRequest) (*account.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	acct, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		// Không expose "username not found" - attacker không biết
		// username có tồn tại không
		return nil, account.ErrInvalidCredentials
	}

	// bcrypt.CompareHashAndPassword là constant-time comparison
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(req.Password)); err != nil {
		return nil, account.ErrInvalidCredentials
	}

	accessToken, expiresAt, err := s.jwtManager.GenerateAccessToken(
		acct.ID.String(), acct.Email, acct.Role.String())
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(acct.ID.String())
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	// Update last login (fire-and-forget, không quan trọng nếu fail)
	go func() {
		_ = s.repo.UpdateLastLogin(context.Background(), acct.ID)
	}()

	return &account.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
		Redirect:     acct.Role.RedirectTarget(),
		User:         acct.ToDTO(),
	}, nil
}

// Logout revoke access token - blacklist trong Redis đến khi token hết hạn
func (s *accountService) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.jwtManager.ValidateAccessToken(accessToken)
	if err != nil {
		// Token đã invalid → coi như logged out
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}

	key := jwt.TokenBlacklistKey(accessToken)
	if err := s.blacklist.Set(ctx, key, true, ttl); err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}
	return nil
}

// ========================================
// PROFILE
// ========================================

func (s *accountService) GetProfile(ctx context.Context, id uuid.UUID) (*account.AccountDTO, error) {
	acct, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := acct.ToDTO()
	return &dto, nil
}

func (s *accountService) UpdateProfile(ctx context.Context, id uuid.UUID, req account.UpdateProfileRequest) (*account.AccountDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	acct, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Partial update - chỉ đổi field nào có trong request
	if req.FullName != "" {
		acct.FullName = req.FullName
	}
	if req.Email != "" {
		acct.Email = req.Email
	}
	if req.Phone != "" {
		acct.Phone = stringPtr(req.Phone)
	}

	if err := s.repo.Update(ctx, acct); err != nil {
		return nil, err
	}

	dto := acct.ToDTO()
	return &dto, nil
}

func (s *accountService) ChangePassword(ctx context.Context, id uuid.UUID, req account.ChangePasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if req.NewPassword != req.ConfirmPassword {
		return account.ErrPasswordMismatch
	}

	acct, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	// Verify current password trước khi cho đổi
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return account.ErrInvalidCredentials
	}

	if req.NewPassword == req.CurrentPassword {
		return account.ErrSamePassword
	}

	newHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), 12)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.repo.UpdatePassword(ctx, id, string(newHash))
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
