package repository

import (
	"context"

	"github.com/saofrance/shop-api/internal/domain"
)

// Ledger defines persistence for transactions
type Ledger interface {
	GetTransaction(ctx context.Context, id string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error)
	ListTransactionsPage(ctx context.Context, filter domain.TransactionFilter, page domain.Page) ([]domain.Transaction, int, error)
	SessionIDExists(ctx context.Context, sessionID string) (bool, error)
	ListClaimable(ctx context.Context) ([]domain.ClaimableTransaction, error)
	// UpdateStatus moves a transaction only if it is still in status from.
	// A concurrent change returns domain.ErrInvalidTransition.
	UpdateStatus(ctx context.Context, id string, from, to domain.TransactionStatus) error

	BeginTx(ctx context.Context) (LedgerTx, error)
}

// LedgerTx groups the balance and ledger writes of one purchase or adjustment
type LedgerTx interface {
	Tx
	GetAccountForUpdate(ctx context.Context, id string) (*domain.Account, error)
	// DebitPoints removes amount only when the balance covers it; otherwise domain.ErrInsufficientFunds.
	// It returns the balance before and after the debit.
	DebitPoints(ctx context.Context, accountID string, amount int64) (int64, int64, error)
	CreditPoints(ctx context.Context, accountID string, amount int64) (int64, int64, error)
	AddRole(ctx context.Context, accountID string, role domain.Role) error
	// InsertTransaction appends the entry; a reused session id returns domain.ErrSessionAlreadyUsed
	InsertTransaction(ctx context.Context, tx *domain.Transaction) error
}
