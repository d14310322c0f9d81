// Package memory provides an in-process user store. It backs local
// development and tests where MongoDB is not available; data does not
// survive a restart.
package memory

import (
	"context"
	"strconv"
	"sync"

	"github.com/identix/auth-system/internal/core/domain"
)

// UserRepository implements ports.UserRepository with a mutex-guarded map.
// The lock covers the whole check-then-insert in Create, so two concurrent
// signups with the same email cannot both succeed.
type UserRepository struct {
	mu      sync.RWMutex
	byEmail map[string]*domain.User
	byID    map[string]*domain.User
	nextID  int
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byEmail: make(map[string]*domain.User),
		byID:    make(map[string]*domain.User),
		nextID:  1,
	}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return nil, domain.ErrEmailTaken
	}

	stored := *user
	stored.ID = strconv.Itoa(r.nextID)
	r.nextID++

	r.byEmail[stored.Email] = &stored
	r.byID[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *user
	return &out, nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *user
	return &out, nil
}

func (r *UserRepository) List(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*domain.User, 0, len(r.byID))
	for i := 1; i < r.nextID; i++ {
		if user, ok := r.byID[strconv.Itoa(i)]; ok {
			out := *user
			users = append(users, &out)
		}
	}
	return users, nil
}
