package user

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, newUser User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

type PasswordResetRepository interface {
	Create(ctx context.Context, token PasswordResetToken) (PasswordResetToken, error)
	GetByToken(ctx context.Context, token string) (PasswordResetToken, error)
	MarkUsed(ctx context.Context, id string) error
}
