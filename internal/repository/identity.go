package repository

import (
	"context"

	"github.com/saofrance/shop-api/internal/domain"
)

// Identity defines persistence for linked game identities and the cached exchange token.
// Getters return nil, nil when nothing is stored.
type Identity interface {
	GetIdentity(ctx context.Context, accountID string) (*domain.LinkedIdentity, error)
	ReplaceIdentity(ctx context.Context, identity *domain.LinkedIdentity) error
	GetExchangeToken(ctx context.Context, accountID string) (*domain.ExchangeToken, error)
	ReplaceExchangeToken(ctx context.Context, token *domain.ExchangeToken) error
}
