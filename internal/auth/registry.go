package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/saofrance/shop-api/internal/account"
	"github.com/saofrance/shop-api/internal/domain"
	"github.com/saofrance/shop-api/internal/logger"
	"github.com/saofrance/shop-api/internal/metrics"
	"github.com/saofrance/shop-api/internal/repository"
)

// LoginResult is returned by a successful login
type LoginResult struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Account   *domain.Account `json:"account"`
}

// Registry keeps the single active session of each account
type Registry struct {
	sessions repository.Session
	accounts repository.Account
	tokens   *TokenService
	now      func() time.Time
}

// NewRegistry creates a session registry
func NewRegistry(sessions repository.Session, accounts repository.Account, tokens *TokenService) *Registry {
	return &Registry{
		sessions: sessions,
		accounts: accounts,
		tokens:   tokens,
		now:      time.Now,
	}
}

// Login checks the credentials and returns the account's session token.
// A still-valid stored token is handed back; otherwise a fresh one replaces it.
func (r *Registry) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	log := logger.FromContext(ctx)

	acc, err := r.accounts.GetAccountByUsername(ctx, account.FoldKey(username))
	if err == nil {
		err = account.CheckPassword(acc.PasswordHash, password)
	}
	if err != nil {
		metrics.LoginAttempts.WithLabelValues(metrics.OutcomeFailure).Inc()
		log.Info(LogMsgLoginFailed, "username", username, "error", err)
		return nil, err
	}
	metrics.LoginAttempts.WithLabelValues(metrics.OutcomeSuccess).Inc()

	existing, err := r.sessions.GetSession(ctx, acc.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if existing != nil && !existing.Expired(r.now()) {
		if _, err := r.tokens.ParseSession(existing.Token); err == nil {
			log.Debug(LogMsgSessionReused, "account_id", acc.ID)
			return &LoginResult{Token: existing.Token, ExpiresAt: existing.ExpiresAt, Account: acc}, nil
		}
	}

	token, expiresAt, err := r.tokens.IssueSession(acc.ID, acc.Email)
	if err != nil {
		return nil, err
	}
	session := &domain.Session{
		AccountID: acc.ID,
		Token:     token,
		IssuedAt:  r.now(),
		ExpiresAt: expiresAt,
	}
	if err := r.sessions.UpsertSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	log.Info(LogMsgSessionIssued, "account_id", acc.ID)
	return &LoginResult{Token: token, ExpiresAt: expiresAt, Account: acc}, nil
}

// Validate resolves a bearer token to its account. The token must verify and
// also be the one currently registered for the account.
func (r *Registry) Validate(ctx context.Context, bearer string) (*domain.Account, error) {
	claims, err := r.tokens.ParseSession(bearer)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}

	session, err := r.sessions.GetSession(ctx, claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil || session.Expired(r.now()) {
		return nil, domain.ErrSessionRevoked
	}
	if subtle.ConstantTimeCompare([]byte(session.Token), []byte(bearer)) != 1 {
		return nil, domain.ErrSessionRevoked
	}

	acc, err := r.accounts.GetAccountByID(ctx, claims.Subject)
	if errors.Is(err, domain.ErrAccountNotFound) {
		return nil, domain.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	return acc, nil
}

// Revoke drops the session of the account, if any
func (r *Registry) Revoke(ctx context.Context, accountID string) error {
	if err := r.sessions.DeleteSession(ctx, accountID); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	logger.FromContext(ctx).Info(LogMsgSessionRevoked, "account_id", accountID)
	return nil
}
