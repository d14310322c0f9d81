package domain

import "time"

// AuthEventKind labels an entry in the authentication audit trail.
type AuthEventKind string

const (
	AuthEventSignup      AuthEventKind = "signup"
	AuthEventLoginOK     AuthEventKind = "login_ok"
	AuthEventLoginFailed AuthEventKind = "login_failed"
)

// AuthEvent records one authentication attempt for auditing.
type AuthEvent struct {
	Email     string
	Kind      AuthEventKind
	Timestamp time.Time
	RemoteIP  string
}
