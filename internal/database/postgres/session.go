package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saofrance/shop-api/internal/domain"
	"github.com/saofrance/shop-api/internal/repository"
)

// SessionRepository implements repository.Session for PostgreSQL
type SessionRepository struct {
	db *pgxpool.Pool
}

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{db: db}
}

var _ repository.Session = (*SessionRepository)(nil)

// UpsertSession stores the session; the account_id primary key keeps a single row per account
func (r *SessionRepository) UpsertSession(ctx context.Context, session *domain.Session) error {
	accountID, ok := parseID(session.AccountID)
	if !ok {
		return domain.ErrAccountNotFound
	}
	query := `
		INSERT INTO account_sessions (account_id, token, issued_at, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (account_id) DO UPDATE
		SET token = EXCLUDED.token, issued_at = EXCLUDED.issued_at, expires_at = EXCLUDED.expires_at
	`
	if _, err := r.db.Exec(ctx, query, accountID, session.Token, session.IssuedAt, session.ExpiresAt); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertSession, err)
	}
	return nil
}

// GetSession returns nil, nil when the account has no active session
func (r *SessionRepository) GetSession(ctx context.Context, accountID string) (*domain.Session, error) {
	id, ok := parseID(accountID)
	if !ok {
		return nil, nil
	}
	query := `
		SELECT account_id::text, token, issued_at, expires_at
		FROM account_sessions
		WHERE account_id = $1
	`
	var s domain.Session
	err := r.db.QueryRow(ctx, query, id).Scan(&s.AccountID, &s.Token, &s.IssuedAt, &s.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetSession, err)
	}
	return &s, nil
}

// DeleteSession revokes the account's session; deleting a missing session is not an error
func (r *SessionRepository) DeleteSession(ctx context.Context, accountID string) error {
	id, ok := parseID(accountID)
	if !ok {
		return nil
	}
	if _, err := r.db.Exec(ctx, `DELETE FROM account_sessions WHERE account_id = $1`, id); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteSession, err)
	}
	return nil
}
