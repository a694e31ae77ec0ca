package ledgertest

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/saofrance/shop-api/internal/domain"
	"github.com/saofrance/shop-api/internal/repository"
)

// Repository is an in-memory repository.Ledger for tests.
// A store transaction holds the repository lock until it commits or rolls back,
// so concurrent purchases are serialized the way row locks serialize them in Postgres.
type Repository struct {
	mu           sync.Mutex
	accounts     map[string]*domain.Account
	transactions []*domain.Transaction
	nextID       int

	// FailInsert, when set, is returned by the next InsertTransaction
	FailInsert error
}

var _ repository.Ledger = (*Repository)(nil)

// NewRepository creates an empty in-memory ledger
func NewRepository() *Repository {
	return &Repository{accounts: make(map[string]*domain.Account)}
}

// AddAccount seeds an account
func (m *Repository) AddAccount(a *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[a.ID] = cloneAccount(a)
}

// Account returns a copy of the stored account
func (m *Repository) Account(id string) *domain.Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.accounts[id]; ok {
		return cloneAccount(a)
	}
	return nil
}

// Count returns the number of stored transactions
func (m *Repository) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.transactions)
}

// SeedTransaction stores an entry as-is, assigning an id when missing
func (m *Repository) SeedTransaction(t *domain.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.ID == "" {
		m.nextID++
		t.ID = fmt.Sprintf("tx-%d", m.nextID)
	}
	cp := *t
	m.transactions = append(m.transactions, &cp)
}

func cloneAccount(a *domain.Account) *domain.Account {
	cp := *a
	cp.Roles = slices.Clone(a.Roles)
	return &cp
}

func (m *Repository) GetTransaction(_ context.Context, id string) (*domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.transactions {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *Repository) ListTransactions(_ context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.filter(filter), nil
}

func (m *Repository) ListTransactionsPage(_ context.Context, filter domain.TransactionFilter, page domain.Page) ([]domain.Transaction, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.filter(filter)
	start := min(page.Offset(), len(all))
	end := min(start+page.Size, len(all))
	return all[start:end], len(all), nil
}

// filter returns matching entries, newest first. Caller must hold the lock.
func (m *Repository) filter(f domain.TransactionFilter) []domain.Transaction {
	var out []domain.Transaction
	for i := len(m.transactions) - 1; i >= 0; i-- {
		t := m.transactions[i]
		if f.AccountID != "" && t.AccountID != f.AccountID {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.Currency != "" && t.Currency != f.Currency {
			continue
		}
		if f.Kind != "" && t.Kind != f.Kind {
			continue
		}
		out = append(out, *t)
	}
	return out
}

func (m *Repository) SessionIDExists(_ context.Context, sessionID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.transactions {
		if t.SessionID != "" && t.SessionID == sessionID {
			return true, nil
		}
	}
	return false, nil
}

func (m *Repository) ListClaimable(_ context.Context) ([]domain.ClaimableTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.ClaimableTransaction
	for _, t := range m.transactions {
		if t.Status == domain.StatusConfirmed {
			out = append(out, domain.ClaimableTransaction{Transaction: *t})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *Repository) UpdateStatus(_ context.Context, id string, from, to domain.TransactionStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.transactions {
		if t.ID != id {
			continue
		}
		if t.Status != from {
			return fmt.Errorf("%w: %s is no longer %s", domain.ErrInvalidTransition, id, from)
		}
		t.Status = to
		t.UpdatedAt = time.Now()
		return nil
	}
	return domain.ErrTransactionNotFound
}

func (m *Repository) BeginTx(_ context.Context) (repository.LedgerTx, error) {
	m.mu.Lock()
	staged := make(map[string]*domain.Account, len(m.accounts))
	for id, a := range m.accounts {
		staged[id] = cloneAccount(a)
	}
	return &storeTx{repo: m, accounts: staged}, nil
}

// storeTx stages writes and applies them on Commit
type storeTx struct {
	repo     *Repository
	accounts map[string]*domain.Account
	inserted []*domain.Transaction
	closed   bool
}

func (t *storeTx) Commit(_ context.Context) error {
	if t.closed {
		return repository.ErrTxClosed
	}
	t.closed = true
	t.repo.accounts = t.accounts
	t.repo.transactions = append(t.repo.transactions, t.inserted...)
	t.repo.mu.Unlock()
	return nil
}

func (t *storeTx) Rollback(_ context.Context) error {
	if t.closed {
		return repository.ErrTxClosed
	}
	t.closed = true
	t.repo.mu.Unlock()
	return nil
}

func (t *storeTx) GetAccountForUpdate(_ context.Context, id string) (*domain.Account, error) {
	a, ok := t.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (t *storeTx) DebitPoints(_ context.Context, accountID string, amount int64) (int64, int64, error) {
	if amount < 0 {
		return 0, 0, fmt.Errorf("%w: amount must not be negative", domain.ErrInvalidInput)
	}
	a, ok := t.accounts[accountID]
	if !ok {
		return 0, 0, domain.ErrAccountNotFound
	}
	if a.Points < amount {
		return 0, 0, domain.ErrInsufficientFunds
	}
	before := a.Points
	a.Points -= amount
	return before, a.Points, nil
}

func (t *storeTx) CreditPoints(_ context.Context, accountID string, amount int64) (int64, int64, error) {
	if amount < 0 {
		return 0, 0, fmt.Errorf("%w: amount must not be negative", domain.ErrInvalidInput)
	}
	a, ok := t.accounts[accountID]
	if !ok {
		return 0, 0, domain.ErrAccountNotFound
	}
	before := a.Points
	a.Points += amount
	return before, a.Points, nil
}

func (t *storeTx) AddRole(_ context.Context, accountID string, role domain.Role) error {
	a, ok := t.accounts[accountID]
	if !ok {
		return domain.ErrAccountNotFound
	}
	if !a.HasRole(role) {
		a.Roles = append(a.Roles, role)
	}
	return nil
}

func (t *storeTx) InsertTransaction(_ context.Context, entry *domain.Transaction) error {
	if err := t.repo.FailInsert; err != nil {
		t.repo.FailInsert = nil
		return err
	}
	if entry.SessionID != "" {
		for _, existing := range append(slices.Clone(t.repo.transactions), t.inserted...) {
			if existing.SessionID == entry.SessionID {
				return domain.ErrSessionAlreadyUsed
			}
		}
	}
	t.repo.nextID++
	now := time.Now()
	entry.ID = fmt.Sprintf("tx-%d", t.repo.nextID)
	entry.CreatedAt = now
	entry.UpdatedAt = now
	cp := *entry
	t.inserted = append(t.inserted, &cp)
	return nil
}
