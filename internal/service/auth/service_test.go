package auth

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrcore/hr-backend-go/internal/domain/auth"
	"github.com/hrcore/hr-backend-go/internal/domain/employee"
	"github.com/hrcore/hr-backend-go/internal/domain/user"
	"github.com/hrcore/hr-backend-go/internal/pkg/jwt"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]user.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, newUser user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == newUser.Email {
			return user.User{}, user.ErrEmailExists
		}
	}
	newUser.ID = uuid.NewString()
	r.users[newUser.ID] = newUser
	return newUser, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return account, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, account := range r.users {
		if account.Email == email {
			return account, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, userID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.users[userID]
	if !ok {
		return user.ErrUserNotFound
	}
	account.PasswordHash = passwordHash
	r.users[userID] = account
	return nil
}

type fakeResetRepo struct {
	mu     sync.Mutex
	tokens map[string]user.PasswordResetToken
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{tokens: make(map[string]user.PasswordResetToken)}
}

func (r *fakeResetRepo) Create(_ context.Context, token user.PasswordResetToken) (user.PasswordResetToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token.ID = uuid.NewString()
	r.tokens[token.ID] = token
	return token, nil
}

func (r *fakeResetRepo) GetByToken(_ context.Context, token string) (user.PasswordResetToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.tokens {
		if stored.Token == token {
			return stored, nil
		}
	}
	return user.PasswordResetToken{}, user.ErrResetTokenNotFound
}

func (r *fakeResetRepo) MarkUsed(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.tokens[id]
	if !ok {
		return user.ErrResetTokenNotFound
	}
	now := time.Now()
	token.UsedAt = &now
	r.tokens[id] = token
	return nil
}

type fakeEmployeeRepo struct {
	mu       sync.Mutex
	profiles map[string]employee.Profile
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{profiles: make(map[string]employee.Profile)}
}

func (r *fakeEmployeeRepo) Create(_ context.Context, profile employee.Profile) (employee.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile.ID = uuid.NewString()
	r.profiles[profile.ID] = profile
	return profile, nil
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.profiles[id]
	if !ok {
		return employee.Profile{}, employee.ErrEmployeeNotFound
	}
	return profile, nil
}

func (r *fakeEmployeeRepo) GetByUserID(_ context.Context, userID string) (employee.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, profile := range r.profiles {
		if profile.UserID == userID {
			return profile, nil
		}
	}
	return employee.Profile{}, employee.ErrEmployeeNotFound
}

func (r *fakeEmployeeRepo) Update(_ context.Context, profile employee.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[profile.ID]; !ok {
		return employee.ErrEmployeeNotFound
	}
	r.profiles[profile.ID] = profile
	return nil
}

func (r *fakeEmployeeRepo) Search(_ context.Context, _ employee.DirectoryFilter) ([]employee.Profile, int64, error) {
	return nil, 0, nil
}

type authFixture struct {
	svc          *AuthService
	userRepo     *fakeUserRepo
	resetRepo    *fakeResetRepo
	employeeRepo *fakeEmployeeRepo
	jwtService   jwt.Service
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	userRepo := newFakeUserRepo()
	resetRepo := newFakeResetRepo()
	employeeRepo := newFakeEmployeeRepo()
	jwtService := jwt.NewJWTService("test-secret", "15m", "168h")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &authFixture{
		svc:          NewAuthService(userRepo, resetRepo, employeeRepo, jwtService, logger),
		userRepo:     userRepo,
		resetRepo:    resetRepo,
		employeeRepo: employeeRepo,
		jwtService:   jwtService,
	}
}

func (f *authFixture) register(t *testing.T, email, password string) *user.User {
	t.Helper()
	account, err := f.svc.Register(context.Background(), &auth.RegisterRequest{Email: email, Password: password})
	require.NoError(t, err)
	return account
}

func decodeClaims(t *testing.T, f *authFixture, token string) map[string]interface{} {
	t.Helper()
	decoded, err := f.jwtService.JWTAuth().Decode(token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)
	return claims
}

func TestRegister(t *testing.T) {
	t.Run("creates an employee account with a hashed password", func(t *testing.T) {
		f := newAuthFixture(t)
		account := f.register(t, "aye@example.com", "s3cretpass")

		assert.Equal(t, user.RoleEmployee, account.Role)
		assert.NotEmpty(t, account.ID)
		assert.NotEqual(t, "s3cretpass", account.PasswordHash)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		f := newAuthFixture(t)
		f.register(t, "aye@example.com", "s3cretpass")

		_, err := f.svc.Register(context.Background(), &auth.RegisterRequest{Email: "aye@example.com", Password: "s3cretpass"})
		assert.ErrorIs(t, err, user.ErrEmailExists)
	})

	t.Run("invalid request rejected", func(t *testing.T) {
		f := newAuthFixture(t)
		_, err := f.svc.Register(context.Background(), &auth.RegisterRequest{Email: "not-an-email", Password: "short"})
		assert.Error(t, err)
	})
}

func TestLogin(t *testing.T) {
	t.Run("valid credentials issue a token pair", func(t *testing.T) {
		f := newAuthFixture(t)
		f.register(t, "aye@example.com", "s3cretpass")

		tokens, err := f.svc.Login(context.Background(), &auth.LoginRequest{Email: "aye@example.com", Password: "s3cretpass"})
		require.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)

		claims := decodeClaims(t, f, tokens.AccessToken)
		assert.Equal(t, "access", claims["type"])
		assert.Equal(t, "aye@example.com", claims["email"])
	})

	t.Run("access token carries the employee and department ids when a profile exists", func(t *testing.T) {
		f := newAuthFixture(t)
		account := f.register(t, "aye@example.com", "s3cretpass")
		dept := "dept-eng"
		profile, err := f.employeeRepo.Create(context.Background(), employee.Profile{
			UserID: account.ID, FullName: "Aye Chan", DepartmentID: &dept,
		})
		require.NoError(t, err)

		tokens, err := f.svc.Login(context.Background(), &auth.LoginRequest{Email: "aye@example.com", Password: "s3cretpass"})
		require.NoError(t, err)

		claims := decodeClaims(t, f, tokens.AccessToken)
		assert.Equal(t, profile.ID, claims["employee_id"])
		assert.Equal(t, "dept-eng", claims["department_id"])
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newAuthFixture(t)
		f.register(t, "aye@example.com", "s3cretpass")

		_, err := f.svc.Login(context.Background(), &auth.LoginRequest{Email: "aye@example.com", Password: "wrongpass1"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown email maps to the same error as a wrong password", func(t *testing.T) {
		f := newAuthFixture(t)
		_, err := f.svc.Login(context.Background(), &auth.LoginRequest{Email: "nobody@example.com", Password: "s3cretpass"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestRefresh(t *testing.T) {
	t.Run("refresh token yields a new pair", func(t *testing.T) {
		f := newAuthFixture(t)
		f.register(t, "aye@example.com", "s3cretpass")
		tokens, err := f.svc.Login(context.Background(), &auth.LoginRequest{Email: "aye@example.com", Password: "s3cretpass"})
		require.NoError(t, err)

		refreshed, err := f.svc.Refresh(context.Background(), &auth.RefreshRequest{RefreshToken: tokens.RefreshToken})
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)
	})

	t.Run("access token rejected as a refresh token", func(t *testing.T) {
		f := newAuthFixture(t)
		f.register(t, "aye@example.com", "s3cretpass")
		tokens, err := f.svc.Login(context.Background(), &auth.LoginRequest{Email: "aye@example.com", Password: "s3cretpass"})
		require.NoError(t, err)

		_, err = f.svc.Refresh(context.Background(), &auth.RefreshRequest{RefreshToken: tokens.AccessToken})
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		f := newAuthFixture(t)
		_, err := f.svc.Refresh(context.Background(), &auth.RefreshRequest{RefreshToken: "not.a.token"})
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("token for a deleted account rejected", func(t *testing.T) {
		f := newAuthFixture(t)
		account := f.register(t, "aye@example.com", "s3cretpass")
		tokens, err := f.svc.Login(context.Background(), &auth.LoginRequest{Email: "aye@example.com", Password: "s3cretpass"})
		require.NoError(t, err)

		f.userRepo.mu.Lock()
		delete(f.userRepo.users, account.ID)
		f.userRepo.mu.Unlock()

		_, err = f.svc.Refresh(context.Background(), &auth.RefreshRequest{RefreshToken: tokens.RefreshToken})
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestPasswordReset(t *testing.T) {
	t.Run("issued token resets the password once", func(t *testing.T) {
		f := newAuthFixture(t)
		f.register(t, "aye@example.com", "s3cretpass")

		token, err := f.svc.ForgotPassword(context.Background(), &auth.ForgotPasswordRequest{Email: "aye@example.com"})
		require.NoError(t, err)
		require.NotNil(t, token)

		err = f.svc.ResetPassword(context.Background(), &auth.ResetPasswordRequest{Token: token.Token, NewPassword: "anotherpass"})
		require.NoError(t, err)

		_, err = f.svc.Login(context.Background(), &auth.LoginRequest{Email: "aye@example.com", Password: "anotherpass"})
		assert.NoError(t, err)
		_, err = f.svc.Login(context.Background(), &auth.LoginRequest{Email: "aye@example.com", Password: "s3cretpass"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

		err = f.svc.ResetPassword(context.Background(), &auth.ResetPasswordRequest{Token: token.Token, NewPassword: "thirdpass1"})
		assert.ErrorIs(t, err, user.ErrResetTokenExpired)
	})

	t.Run("unknown email yields no token and no error", func(t *testing.T) {
		f := newAuthFixture(t)
		token, err := f.svc.ForgotPassword(context.Background(), &auth.ForgotPasswordRequest{Email: "nobody@example.com"})
		assert.NoError(t, err)
		assert.Nil(t, token)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		f := newAuthFixture(t)
		f.register(t, "aye@example.com", "s3cretpass")

		issuedAt := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
		f.svc.now = func() time.Time { return issuedAt }
		token, err := f.svc.ForgotPassword(context.Background(), &auth.ForgotPasswordRequest{Email: "aye@example.com"})
		require.NoError(t, err)

		f.svc.now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
		err = f.svc.ResetPassword(context.Background(), &auth.ResetPasswordRequest{Token: token.Token, NewPassword: "anotherpass"})
		assert.ErrorIs(t, err, user.ErrResetTokenExpired)
	})

	t.Run("unknown token", func(t *testing.T) {
		f := newAuthFixture(t)
		err := f.svc.ResetPassword(context.Background(), &auth.ResetPasswordRequest{Token: "no-such-token", NewPassword: "anotherpass"})
		assert.ErrorIs(t, err, user.ErrResetTokenNotFound)
	})
}
