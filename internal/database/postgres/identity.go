package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saofrance/shop-api/internal/domain"
	"github.com/saofrance/shop-api/internal/repository"
)

// IdentityRepository implements repository.Identity for PostgreSQL
type IdentityRepository struct {
	db *pgxpool.Pool
}

// NewIdentityRepository creates a new IdentityRepository
func NewIdentityRepository(db *pgxpool.Pool) *IdentityRepository {
	return &IdentityRepository{db: db}
}

var _ repository.Identity = (*IdentityRepository)(nil)

// nullableIdentity receives the columns of a LEFT JOIN on linked_identities
type nullableIdentity struct {
	Name        *string
	UUID        *string
	SkinURL     *string
	SkinVariant *string
	LinkedAt    *time.Time
}

func (n nullableIdentity) toDomain(accountID string) *domain.LinkedIdentity {
	if n.Name == nil {
		return nil
	}
	li := &domain.LinkedIdentity{AccountID: accountID, Name: *n.Name}
	if n.UUID != nil {
		li.UUID = *n.UUID
	}
	if n.SkinURL != nil {
		li.SkinURL = *n.SkinURL
	}
	if n.SkinVariant != nil {
		li.SkinVariant = *n.SkinVariant
	}
	if n.LinkedAt != nil {
		li.LinkedAt = *n.LinkedAt
	}
	return li
}

// GetIdentity returns the linked identity of an account, or nil when none is linked
func (r *IdentityRepository) GetIdentity(ctx context.Context, accountID string) (*domain.LinkedIdentity, error) {
	id, ok := parseID(accountID)
	if !ok {
		return nil, nil
	}
	query := `
		SELECT account_id::text, name, uuid, skin_url, skin_variant, linked_at
		FROM linked_identities
		WHERE account_id = $1
	`
	var li domain.LinkedIdentity
	err := r.db.QueryRow(ctx, query, id).Scan(
		&li.AccountID, &li.Name, &li.UUID, &li.SkinURL, &li.SkinVariant, &li.LinkedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetIdentity, err)
	}
	return &li, nil
}

// ReplaceIdentity overwrites the account's linked identity wholesale
func (r *IdentityRepository) ReplaceIdentity(ctx context.Context, identity *domain.LinkedIdentity) error {
	id, ok := parseID(identity.AccountID)
	if !ok {
		return domain.ErrAccountNotFound
	}
	if identity.LinkedAt.IsZero() {
		identity.LinkedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO linked_identities (account_id, name, uuid, skin_url, skin_variant, linked_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (account_id) DO UPDATE
		SET name = EXCLUDED.name, uuid = EXCLUDED.uuid, skin_url = EXCLUDED.skin_url,
		    skin_variant = EXCLUDED.skin_variant, linked_at = EXCLUDED.linked_at
	`
	_, err := r.db.Exec(ctx, query,
		id, identity.Name, identity.UUID, identity.SkinURL, identity.SkinVariant, identity.LinkedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToReplaceIdentity, err)
	}
	return nil
}

// GetExchangeToken returns the cached exchange token, or nil when none is stored
func (r *IdentityRepository) GetExchangeToken(ctx context.Context, accountID string) (*domain.ExchangeToken, error) {
	id, ok := parseID(accountID)
	if !ok {
		return nil, nil
	}
	query := `
		SELECT account_id::text, token, issued_at, expires_at
		FROM exchange_tokens
		WHERE account_id = $1
	`
	var t domain.ExchangeToken
	err := r.db.QueryRow(ctx, query, id).Scan(&t.AccountID, &t.Token, &t.IssuedAt, &t.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetExchangeToken, err)
	}
	return &t, nil
}

// ReplaceExchangeToken drops the previous cache entry and stores the new one
func (r *IdentityRepository) ReplaceExchangeToken(ctx context.Context, token *domain.ExchangeToken) error {
	id, ok := parseID(token.AccountID)
	if !ok {
		return domain.ErrAccountNotFound
	}
	query := `
		INSERT INTO exchange_tokens (account_id, token, issued_at, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (account_id) DO UPDATE
		SET token = EXCLUDED.token, issued_at = EXCLUDED.issued_at, expires_at = EXCLUDED.expires_at
	`
	if _, err := r.db.Exec(ctx, query, id, token.Token, token.IssuedAt, token.ExpiresAt); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToStoreExchange, err)
	}
	return nil
}
