package ports

// TokenService issues and validates signed, time-bound session tokens.
type TokenService interface {
	// Issue returns a serialized token bound to the subject id, plus its
	// time-to-live in seconds.
	Issue(subject string) (token string, expiresIn int64, err error)

	// Validate verifies signature and expiry, returning the bound subject id.
	// Failures are domain.ErrTokenMalformed, domain.ErrTokenExpired or
	// domain.ErrTokenSignatureInvalid.
	Validate(token string) (subject string, err error)
}

// PasswordHasher produces and verifies salted one-way password digests.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches the stored digest. A malformed
	// digest is a mismatch, never an error surfaced to the caller.
	Verify(plaintext, hash string) bool
}
