// Package auth issues and verifies session and password-reset tokens and
// guards HTTP routes with them.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of every token issued by the shop
type Claims struct {
	Email string `json:"email,omitempty"`
	// Fingerprint binds a reset token to the password hash it was issued against
	Fingerprint string `json:"fpr,omitempty"`
	jwt.RegisteredClaims
}

// TokenConfig configures a TokenService
type TokenConfig struct {
	SessionSecret string
	SessionTTL    time.Duration
	ResetSecret   string
	ResetTTL      time.Duration
}

// TokenService signs HS256 tokens. Session and reset tokens use separate
// secrets and audiences so one can never be replayed as the other.
type TokenService struct {
	sessionSecret []byte
	resetSecret   []byte
	sessionTTL    time.Duration
	resetTTL      time.Duration
	now           func() time.Time
}

// NewTokenService validates the secrets and applies default lifetimes
func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if len(cfg.SessionSecret) < MinSecretLength {
		return nil, fmt.Errorf("auth: session %s", ErrMsgShortSecret)
	}
	if len(cfg.ResetSecret) < MinSecretLength {
		return nil, fmt.Errorf("auth: reset %s", ErrMsgShortSecret)
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = DefaultSessionTTL
	}
	if cfg.ResetTTL <= 0 {
		cfg.ResetTTL = DefaultResetTTL
	}
	return &TokenService{
		sessionSecret: []byte(cfg.SessionSecret),
		resetSecret:   []byte(cfg.ResetSecret),
		sessionTTL:    cfg.SessionTTL,
		resetTTL:      cfg.ResetTTL,
		now:           time.Now,
	}, nil
}

// IssueSession signs a session token for the account
func (s *TokenService) IssueSession(accountID, email string) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.sessionTTL)
	c := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Subject:   accountID,
			Audience:  jwt.ClaimStrings{AudienceSession},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := s.sign(c, s.sessionSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseSession verifies a session token and returns its claims
func (s *TokenService) ParseSession(token string) (*Claims, error) {
	return s.parse(token, s.sessionSecret, AudienceSession)
}

// IssueReset signs a password reset token
func (s *TokenService) IssueReset(accountID, fingerprint string) (string, error) {
	now := s.now()
	return s.sign(Claims{
		Fingerprint: fingerprint,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    TokenIssuer,
			Subject:   accountID,
			Audience:  jwt.ClaimStrings{AudienceReset},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.resetTTL)),
		},
	}, s.resetSecret)
}

// ParseReset verifies a password reset token
func (s *TokenService) ParseReset(token string) (string, string, error) {
	c, err := s.parse(token, s.resetSecret, AudienceReset)
	if err != nil {
		return "", "", err
	}
	return c.Subject, c.Fingerprint, nil
}

func (s *TokenService) sign(c Claims, secret []byte) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}
	return signed, nil
}

func (s *TokenService) parse(token string, secret []byte, audience string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(
		token,
		&Claims{},
		func(*jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(TokenIssuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("auth: %s: %w", ErrMsgInvalidToken, err)
	}
	c, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("auth: " + ErrMsgInvalidToken)
	}
	if c.Subject == "" {
		return nil, errors.New("auth: " + ErrMsgMissingSubject)
	}
	return c, nil
}
