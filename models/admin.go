package models

// Admin allowlisted admin account
type Admin struct {
	Email     string `json:"email" db:"email"`
	Name      string `json:"name" db:"name"`
	CreatedAt string `json:"created_at" db:"created_at"`
}

// AdminSession server-side session record written on each successful login
type AdminSession struct {
	UID         string `json:"uid" db:"uid"`
	Email       string `json:"email" db:"email"`
	LastLoginAt string `json:"last_login_at" db:"last_login_at"`
	ExpiresAt   string `json:"expires_at" db:"expires_at"`
}

// Identity verified third-party sign-in result
type Identity struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// LoginRequest login payload carrying the third-party ID token
type LoginRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

// LoginResponse login result
type LoginResponse struct {
	Token     string   `json:"token"`
	ExpiresAt int64    `json:"expires_at"`
	Identity  Identity `json:"identity"`
}

// LoginStatus limiter state as seen by the calling client
type LoginStatus struct {
	Blocked           bool   `json:"blocked"`
	BlockedUntil      string `json:"blocked_until,omitempty"`
	RemainingAttempts int    `json:"remaining_attempts"`
	AttemptLimit      int    `json:"attempt_limit"`
}
