package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/identix/auth-system/internal/core/domain"
)

const defaultTokenTTL = 24 * time.Hour

// JWTService issues and validates HS256-signed session tokens. Sessions are
// stateless: validity is purely a function of signature and expiry, so a
// token cannot be revoked before it expires.
type JWTService struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTService creates a token service signing with secret. If ttl <= 0 a
// default of 24h is applied.
func NewJWTService(secret string, ttl time.Duration) *JWTService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &JWTService{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (s *JWTService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token bound to the subject id. expiresIn is the token
// lifetime in whole seconds, for client consumption.
func (s *JWTService) Issue(subject string) (string, int64, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", 0, err
	}
	return token, int64(s.ttl.Seconds()), nil
}

// Validate parses the token, verifies the signature and expiry, and returns
// the bound subject id. Callers must re-resolve the subject against the user
// store; the token alone proves nothing about the account's current state.
func (s *JWTService) Validate(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", domain.ErrTokenSignatureInvalid
		default:
			return "", domain.ErrTokenMalformed
		}
	}
	if !token.Valid || claims.Subject == "" {
		return "", domain.ErrTokenMalformed
	}
	return claims.Subject, nil
}
