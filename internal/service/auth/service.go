package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hrcore/hr-backend-go/internal/domain/auth"
	"github.com/hrcore/hr-backend-go/internal/domain/employee"
	"github.com/hrcore/hr-backend-go/internal/domain/user"
	"github.com/hrcore/hr-backend-go/internal/pkg/jwt"
)

const resetTokenTTL = time.Hour

// AuthService handles registration, login, token refresh and the password
// reset flow.
type AuthService struct {
	userRepo     user.Repository
	resetRepo    user.PasswordResetRepository
	employeeRepo employee.Repository
	jwtService   jwt.Service
	now          func() time.Time
	logger       *slog.Logger
}

func NewAuthService(
	userRepo user.Repository,
	resetRepo user.PasswordResetRepository,
	employeeRepo employee.Repository,
	jwtService jwt.Service,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		resetRepo:    resetRepo,
		employeeRepo: employeeRepo,
		jwtService:   jwtService,
		now:          time.Now,
		logger:       logger,
	}
}

// Register creates a new account with the EMPLOYEE role.
func (s *AuthService) Register(ctx context.Context, req *auth.RegisterRequest) (*user.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account, err := s.userRepo.Create(ctx, user.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         user.RoleEmployee,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("account registered",
		slog.String("user_id", account.ID),
		slog.String("email", account.Email))
	return &account, nil
}

// Login verifies credentials and issues an access/refresh token pair. The
// access token carries the employee and department ids when a profile
// exists, so attendance policy resolution works without extra lookups.
func (s *AuthService) Login(ctx context.Context, req *auth.LoginRequest) (*auth.TokenResponse, error) {
	account, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, auth.ErrInvalidCredentials
	}

	tokens, err := s.issueTokens(ctx, &account)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", slog.String("user_id", account.ID))
	return tokens, nil
}

// Refresh exchanges a valid refresh token for a new token pair.
func (s *AuthService) Refresh(ctx context.Context, req *auth.RefreshRequest) (*auth.TokenResponse, error) {
	token, err := s.jwtService.JWTAuth().Decode(req.RefreshToken)
	if err != nil {
		return nil, auth.ErrInvalidToken
	}

	claims, err := token.AsMap(ctx)
	if err != nil {
		return nil, auth.ErrInvalidToken
	}
	if tokenType, _ := claims["type"].(string); tokenType != "refresh" {
		return nil, auth.ErrInvalidToken
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return nil, auth.ErrInvalidToken
	}

	account, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, auth.ErrInvalidToken
		}
		return nil, err
	}

	return s.issueTokens(ctx, &account)
}

// ForgotPassword creates a single-use reset token. The token is returned to
// the caller; delivering it by email is out of scope here. A missing email
// yields no error so the endpoint does not leak which accounts exist.
func (s *AuthService) ForgotPassword(ctx context.Context, req *auth.ForgotPasswordRequest) (*user.PasswordResetToken, error) {
	account, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}

	token, err := s.resetRepo.Create(ctx, user.PasswordResetToken{
		UserID:    account.ID,
		Token:     uuid.NewString(),
		ExpiresAt: s.now().Add(resetTokenTTL),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("password reset token issued", slog.String("user_id", account.ID))
	return &token, nil
}

// ResetPassword consumes a reset token and replaces the account password.
func (s *AuthService) ResetPassword(ctx context.Context, req *auth.ResetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	token, err := s.resetRepo.GetByToken(ctx, req.Token)
	if err != nil {
		return err
	}
	if token.UsedAt != nil || s.now().After(token.ExpiresAt) {
		return user.ErrResetTokenExpired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.resetRepo.MarkUsed(ctx, token.ID); err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, token.UserID, string(hash)); err != nil {
		return err
	}

	s.logger.Info("password reset completed", slog.String("user_id", token.UserID))
	return nil
}

func (s *AuthService) issueTokens(ctx context.Context, account *user.User) (*auth.TokenResponse, error) {
	var employeeID, departmentID *string
	if profile, err := s.employeeRepo.GetByUserID(ctx, account.ID); err == nil {
		employeeID = &profile.ID
		departmentID = profile.DepartmentID
	} else if !errors.Is(err, employee.ErrEmployeeNotFound) {
		return nil, err
	}

	accessToken, accessExp, err := s.jwtService.GenerateAccessToken(account.ID, account.Email, employeeID, departmentID, account.Role)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	refreshToken, refreshExp, err := s.jwtService.GenerateRefreshToken(account.ID)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	return &auth.TokenResponse{
		AccessToken:           accessToken,
		AccessTokenExpiresAt:  accessExp,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: refreshExp,
	}, nil
}
