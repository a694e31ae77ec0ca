package domain

import "time"

// Session is the single active login token of an account
type Session struct {
	AccountID string    `json:"account_id"`
	Token     string    `json:"token"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is no longer usable at now
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
