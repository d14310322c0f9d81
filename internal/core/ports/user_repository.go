package ports

import (
	"context"

	"github.com/identix/auth-system/internal/core/domain"
)

// UserRepository defines the persistence contract for user accounts.
//
// Create must be an atomic check-and-insert: two concurrent creates with the
// same email must not both succeed. Implementations return
// domain.ErrEmailTaken on a duplicate and domain.ErrUserNotFound on a missed
// lookup.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}
