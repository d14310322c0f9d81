package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/identix/auth-system/internal/core/domain"
)

const defaultCacheTTL = time.Minute

// UserCache caches resolved identities for the auth middleware so each
// authenticated request does not cost a user-store lookup. The TTL is kept
// short: it bounds how long a deleted account can still pass the gate.
// Key format: user:<id>
type UserCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewUserCache wraps the given Redis client. A ttl <= 0 falls back to one
// minute.
func NewUserCache(client *redis.Client, ttl time.Duration) *UserCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &UserCache{client: client, ttl: ttl}
}

// Get returns the cached user for id, or (nil, false) on a miss. Transport
// or decode failures count as misses so the caller falls through to the
// user store.
func (c *UserCache) Get(ctx context.Context, id string) (*domain.User, bool) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err != nil {
		return nil, false
	}

	var user cachedUser
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, false
	}
	return user.toDomain(), true
}

// Set stores the user under its id, expiring after the configured TTL.
func (c *UserCache) Set(ctx context.Context, user *domain.User) error {
	raw, err := json.Marshal(fromDomain(user))
	if err != nil {
		return fmt.Errorf("encode cached user: %w", err)
	}
	return c.client.Set(ctx, c.key(user.ID), raw, c.ttl).Err()
}

func (c *UserCache) key(id string) string {
	return "user:" + id
}

// cachedUser is the cache wire form. The password hash is deliberately
// excluded: the gate only needs identity fields, and the hash should never
// leave the primary store.
type cachedUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func fromDomain(u *domain.User) cachedUser {
	return cachedUser{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (u cachedUser) toDomain() *domain.User {
	return &domain.User{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
