package repository

import (
	"context"
	"errors"

	"github.com/saofrance/shop-api/internal/logger"
)

// Tx is the commit/rollback surface shared by store transactions
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// ErrTxClosed is returned by Rollback once the transaction has been committed or rolled back
var ErrTxClosed = errors.New("tx is closed")

// SafeRollback is meant to be deferred right after BeginTx; it is a no-op once Commit succeeded
func SafeRollback(ctx context.Context, tx Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}
