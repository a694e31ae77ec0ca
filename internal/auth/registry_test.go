package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saofrance/shop-api/internal/account"
	"github.com/saofrance/shop-api/internal/domain"
	"github.com/saofrance/shop-api/internal/repository"
)

// fakeSessions is an in-memory repository.Session
type fakeSessions struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
	upserts  int
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: make(map[string]*domain.Session)}
}

func (f *fakeSessions) UpsertSession(_ context.Context, s *domain.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *s
	f.sessions[s.AccountID] = &cp
	f.upserts++
	return nil
}

func (f *fakeSessions) GetSession(_ context.Context, accountID string) (*domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[accountID]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessions) DeleteSession(_ context.Context, accountID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, accountID)
	return nil
}

// fakeAccounts serves a fixed set of accounts keyed by folded username
type fakeAccounts struct {
	repository.Account
	byID map[string]*domain.Account
}

func (f *fakeAccounts) GetAccountByUsername(_ context.Context, key string) (*domain.Account, error) {
	for _, a := range f.byID {
		if account.FoldKey(a.Username) == key {
			return a, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (f *fakeAccounts) GetAccountByID(_ context.Context, id string) (*domain.Account, error) {
	if a, ok := f.byID[id]; ok {
		return a, nil
	}
	return nil, domain.ErrAccountNotFound
}

func newTestRegistry(t *testing.T) (*Registry, *fakeSessions) {
	t.Helper()
	hash, err := account.HashPassword("password123")
	require.NoError(t, err)
	accounts := &fakeAccounts{byID: map[string]*domain.Account{
		"acc-1": {ID: "acc-1", Username: "Kirito", Email: "k@example.com", PasswordHash: hash, Roles: []domain.Role{domain.RoleUser}},
	}}
	sessions := newFakeSessions()
	return NewRegistry(sessions, accounts, newTestTokenService(t)), sessions
}

func TestLogin_IssuesThenReuses(t *testing.T) {
	reg, sessions := newTestRegistry(t)
	ctx := context.Background()

	first, err := reg.Login(ctx, "kirito", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, first.Token)
	assert.Equal(t, "acc-1", first.Account.ID)

	second, err := reg.Login(ctx, "KIRITO", "password123")
	require.NoError(t, err)
	assert.Equal(t, first.Token, second.Token, "a live session is handed back")
	assert.Equal(t, 1, sessions.upserts)
}

func TestLogin_ReplacesExpiredSession(t *testing.T) {
	reg, sessions := newTestRegistry(t)
	ctx := context.Background()
	require.NoError(t, sessions.UpsertSession(ctx, &domain.Session{
		AccountID: "acc-1",
		Token:     "stale",
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	res, err := reg.Login(ctx, "kirito", "password123")
	require.NoError(t, err)
	assert.NotEqual(t, "stale", res.Token)

	stored, _ := sessions.GetSession(ctx, "acc-1")
	assert.Equal(t, res.Token, stored.Token)
}

func TestLogin_BadCredentials(t *testing.T) {
	reg, sessions := newTestRegistry(t)
	ctx := context.Background()

	_, err := reg.Login(ctx, "kirito", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = reg.Login(ctx, "ghost", "password123")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	assert.Zero(t, sessions.upserts)
}

func TestValidate(t *testing.T) {
	reg, _ := newTestRegistry(t)
	ctx := context.Background()

	res, err := reg.Login(ctx, "kirito", "password123")
	require.NoError(t, err)

	acc, err := reg.Validate(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", acc.ID)

	_, err = reg.Validate(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestValidate_RevokedOrReplacedToken(t *testing.T) {
	reg, sessions := newTestRegistry(t)
	ctx := context.Background()

	res, err := reg.Login(ctx, "kirito", "password123")
	require.NoError(t, err)

	require.NoError(t, reg.Revoke(ctx, "acc-1"))
	_, err = reg.Validate(ctx, res.Token)
	assert.ErrorIs(t, err, domain.ErrSessionRevoked)

	// a token that verifies but is no longer the registered one
	res, err = reg.Login(ctx, "kirito", "password123")
	require.NoError(t, err)
	require.NoError(t, sessions.UpsertSession(ctx, &domain.Session{
		AccountID: "acc-1", Token: "replacement", ExpiresAt: time.Now().Add(time.Hour),
	}))
	_, err = reg.Validate(ctx, res.Token)
	assert.ErrorIs(t, err, domain.ErrSessionRevoked)
}
