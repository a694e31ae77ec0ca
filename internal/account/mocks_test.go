package account

import (
	"context"
	"errors"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/saofrance/shop-api/internal/domain"
	"github.com/saofrance/shop-api/internal/repository"
)

// MockAccountRepository is a testify mock of repository.Account
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) CreateAccount(ctx context.Context, a *domain.Account, keys repository.AccountKeys) error {
	args := m.Called(ctx, a, keys)
	if a.ID == "" {
		a.ID = "acc-" + a.Username
	}
	return args.Error(0)
}

func (m *MockAccountRepository) GetAccountByID(ctx context.Context, id string) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) GetAccountByUsername(ctx context.Context, key string) (*domain.Account, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) GetAccountByEmail(ctx context.Context, key string) (*domain.Account, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, a *domain.Account, keys repository.AccountKeys) error {
	return m.Called(ctx, a, keys).Error(0)
}

func (m *MockAccountRepository) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	return m.Called(ctx, id, hash).Error(0)
}

func (m *MockAccountRepository) SetRoles(ctx context.Context, id string, roles []domain.Role) error {
	return m.Called(ctx, id, roles).Error(0)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context) ([]domain.AccountWithIdentity, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.AccountWithIdentity), args.Error(1)
}

// fakeIdentities is an in-memory repository.Identity
type fakeIdentities struct {
	identities map[string]*domain.LinkedIdentity
	calls      int
}

func (f *fakeIdentities) GetIdentity(_ context.Context, accountID string) (*domain.LinkedIdentity, error) {
	f.calls++
	return f.identities[accountID], nil
}

func (f *fakeIdentities) ReplaceIdentity(_ context.Context, li *domain.LinkedIdentity) error {
	f.identities[li.AccountID] = li
	return nil
}

func (f *fakeIdentities) GetExchangeToken(context.Context, string) (*domain.ExchangeToken, error) {
	return nil, nil
}

func (f *fakeIdentities) ReplaceExchangeToken(context.Context, *domain.ExchangeToken) error {
	return nil
}

// recordingNotifier captures mails instead of sending them
type recordingNotifier struct {
	mu    sync.Mutex
	mails []domain.Mail
}

func (r *recordingNotifier) SendMail(_ context.Context, m domain.Mail) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mails = append(r.mails, m)
}

func (r *recordingNotifier) types() []domain.MailType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.MailType, len(r.mails))
	for i, m := range r.mails {
		out[i] = m.Type
	}
	return out
}

// recordingRevoker remembers revoked accounts
type recordingRevoker struct {
	revoked []string
}

func (r *recordingRevoker) Revoke(_ context.Context, accountID string) error {
	r.revoked = append(r.revoked, accountID)
	return nil
}

var errBadToken = errors.New("bad token")

// fakeResets encodes the account id and fingerprint into the token verbatim
type fakeResets struct{}

func (fakeResets) IssueReset(accountID, fingerprint string) (string, error) {
	return accountID + "|" + fingerprint, nil
}

func (fakeResets) ParseReset(token string) (string, string, error) {
	for i := 0; i < len(token); i++ {
		if token[i] == '|' {
			return token[:i], token[i+1:], nil
		}
	}
	return "", "", errBadToken
}
