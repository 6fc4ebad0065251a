package repositories

import (
	"context"

	"userapi/internal/models"
)

// UserRepository defines the interface for user data access.
//
// Implementations report well-known failures as apperrors values:
// a uniqueness violation on email surfaces as apperrors.ErrDuplicateEmail,
// a miss on an id-addressed operation as apperrors.ErrUserNotFound. Any
// other error is an unexpected store failure and passes through unchanged.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	Find(ctx context.Context, q models.UserQuery) ([]models.User, int64, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, id string, update models.UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id string) error
}
