package service

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/identix/auth-system/internal/api/metrics"
)

// BcryptHasher hashes passwords with bcrypt. The salt and cost are embedded
// in the produced digest, so Verify needs no extra parameters.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher with the given cost. Costs outside
// bcrypt's supported range fall back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	start := time.Now()
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	metrics.PasswordHashDuration.WithLabelValues("hash").Observe(time.Since(start).Seconds())
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches the stored digest. A malformed
// digest yields false rather than an error.
func (h *BcryptHasher) Verify(plaintext, hash string) bool {
	start := time.Now()
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	metrics.PasswordHashDuration.WithLabelValues("verify").Observe(time.Since(start).Seconds())
	return err == nil
}
