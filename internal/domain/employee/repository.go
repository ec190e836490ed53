package employee

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, profile Profile) (Profile, error)
	GetByID(ctx context.Context, id string) (Profile, error)
	GetByUserID(ctx context.Context, userID string) (Profile, error)
	Update(ctx context.Context, profile Profile) error

	// Search returns matching profiles plus the total match count for
	// pagination.
	Search(ctx context.Context, filter DirectoryFilter) ([]Profile, int64, error)
}
