package repository

import (
	"context"

	"github.com/saofrance/shop-api/internal/domain"
)

// AccountKeys are the folded forms of the unique account fields
type AccountKeys struct {
	Username string
	Email    string
}

// Account defines persistence for the account directory
type Account interface {
	// CreateAccount inserts a new account; a username or email clash returns domain.ErrDuplicateAccount
	CreateAccount(ctx context.Context, account *domain.Account, keys AccountKeys) error
	GetAccountByID(ctx context.Context, id string) (*domain.Account, error)
	GetAccountByUsername(ctx context.Context, usernameKey string) (*domain.Account, error)
	GetAccountByEmail(ctx context.Context, emailKey string) (*domain.Account, error)
	UpdateAccount(ctx context.Context, account *domain.Account, keys AccountKeys) error
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	SetRoles(ctx context.Context, id string, roles []domain.Role) error
	ListAccounts(ctx context.Context) ([]domain.AccountWithIdentity, error)
}

// Session defines persistence for the token registry. Each account holds at most one session.
type Session interface {
	// UpsertSession stores the session, replacing any previous one for the account
	UpsertSession(ctx context.Context, session *domain.Session) error
	// GetSession returns nil, nil when the account has no session
	GetSession(ctx context.Context, accountID string) (*domain.Session, error)
	DeleteSession(ctx context.Context, accountID string) error
}
