package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hrcore/hr-backend-go/internal/domain/user"
	"github.com/hrcore/hr-backend-go/internal/pkg/database"
)

type passwordResetRepository struct {
	db *database.DB
}

func NewPasswordResetRepository(db *database.DB) user.PasswordResetRepository {
	return &passwordResetRepository{db: db}
}

// Create implements user.PasswordResetRepository.
func (r *passwordResetRepository) Create(ctx context.Context, token user.PasswordResetToken) (user.PasswordResetToken, error) {
	q := GetQuerier(ctx, r.db)

	token.ID = uuid.NewString()

	query := `
		INSERT INTO password_reset_tokens (id, user_id, token, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		token.ID, token.UserID, token.Token, token.ExpiresAt,
	).Scan(&token.CreatedAt)

	if err != nil {
		return user.PasswordResetToken{}, fmt.Errorf("failed to create password reset token: %w", err)
	}

	return token, nil
}

// GetByToken implements user.PasswordResetRepository.
func (r *passwordResetRepository) GetByToken(ctx context.Context, token string) (user.PasswordResetToken, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, token, expires_at, used_at, created_at
		FROM password_reset_tokens
		WHERE token = $1
	`

	var t user.PasswordResetToken
	err := q.QueryRow(ctx, query, token).Scan(
		&t.ID, &t.UserID, &t.Token, &t.ExpiresAt, &t.UsedAt, &t.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.PasswordResetToken{}, user.ErrResetTokenNotFound
		}
		return user.PasswordResetToken{}, fmt.Errorf("failed to get password reset token: %w", err)
	}

	return t, nil
}

// MarkUsed implements user.PasswordResetRepository.
func (r *passwordResetRepository) MarkUsed(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE password_reset_tokens
		SET used_at = NOW()
		WHERE id = $1 AND used_at IS NULL
	`

	commandTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark reset token used: %w", err)
	}
	if commandTag.RowsAffected() != 1 {
		return user.ErrResetTokenExpired
	}

	return nil
}
