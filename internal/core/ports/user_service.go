package ports

import (
	"context"

	"github.com/identix/auth-system/internal/core/domain"
)

// UserService exposes non-authenticating account queries.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
}
