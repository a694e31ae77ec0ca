package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saofrance/shop-api/internal/domain"
	"github.com/saofrance/shop-api/internal/repository"
)

const transactionColumns = `
	t.transaction_id::text, t.account_id::text, t.author_name, t.kind, t.status, t.currency,
	t.cost::text, t.product_name, COALESCE(t.catalog_item_id::text, ''), t.snapshot, t.mode,
	COALESCE(t.session_id, ''), t.processor_product_id, t.balance_before, t.balance_after,
	t.reason, t.created_at, t.updated_at`

// LedgerRepository implements repository.Ledger for PostgreSQL
type LedgerRepository struct {
	db *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(db *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{db: db}
}

var _ repository.Ledger = (*LedgerRepository)(nil)

// GetTransaction returns domain.ErrTransactionNotFound for unknown ids
func (r *LedgerRepository) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	txID, ok := parseID(id)
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	query := `SELECT ` + transactionColumns + ` FROM transactions t WHERE t.transaction_id = $1`
	tx, err := scanTransaction(r.db.QueryRow(ctx, query, txID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetTransaction, err)
	}
	return tx, nil
}

// ListTransactions returns every matching transaction, newest first
func (r *LedgerRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	where, args, ok := filterClause(filter)
	if !ok {
		return []domain.Transaction{}, nil
	}
	query := `SELECT ` + transactionColumns + ` FROM transactions t` + where + ` ORDER BY t.created_at DESC`
	return r.queryTransactions(ctx, query, args...)
}

// ListTransactionsPage returns one page of matching transactions and the total match count
func (r *LedgerRepository) ListTransactionsPage(ctx context.Context, filter domain.TransactionFilter, page domain.Page) ([]domain.Transaction, int, error) {
	page = page.Normalize()
	where, args, ok := filterClause(filter)
	if !ok {
		return []domain.Transaction{}, 0, nil
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM transactions t`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", ErrMsgFailedToCountTransactions, err)
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions t` + where +
		` ORDER BY t.created_at DESC LIMIT $` + strconv.Itoa(len(args)+1) +
		` OFFSET $` + strconv.Itoa(len(args)+2)
	items, err := r.queryTransactions(ctx, query, append(args, page.Size, page.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// SessionIDExists reports whether a payment session already backs a transaction
func (r *LedgerRepository) SessionIDExists(ctx context.Context, sessionID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM transactions WHERE session_id = $1)`, sessionID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToCheckSession, err)
	}
	return exists, nil
}

// ListClaimable returns confirmed purchases of accounts with a linked game identity, oldest first
func (r *LedgerRepository) ListClaimable(ctx context.Context) ([]domain.ClaimableTransaction, error) {
	query := `
		SELECT ` + transactionColumns + `, li.name, li.uuid
		FROM transactions t
		JOIN linked_identities li ON li.account_id = t.account_id
		WHERE t.status = 'confirmed' AND t.kind = 'purchase'
		ORDER BY t.created_at
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListTransactions, err)
	}
	defer rows.Close()

	result := []domain.ClaimableTransaction{}
	for rows.Next() {
		var c domain.ClaimableTransaction
		tx, err := scanTransaction(rows, &c.GameName, &c.GameUUID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListTransactions, err)
		}
		c.Transaction = *tx
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListTransactions, err)
	}
	return result, nil
}

// UpdateStatus is a compare-and-set on the status column
func (r *LedgerRepository) UpdateStatus(ctx context.Context, id string, from, to domain.TransactionStatus) error {
	txID, ok := parseID(id)
	if !ok {
		return domain.ErrTransactionNotFound
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE transactions SET status = $3, updated_at = NOW()
		WHERE transaction_id = $1 AND status = $2`,
		txID, string(from), string(to))
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateStatus, err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM transactions WHERE transaction_id = $1)`, txID).Scan(&exists); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateStatus, err)
	}
	if !exists {
		return domain.ErrTransactionNotFound
	}
	return fmt.Errorf("%w: status changed concurrently", domain.ErrInvalidTransition)
}

// BeginTx starts a store transaction for balance and ledger writes
func (r *LedgerRepository) BeginTx(ctx context.Context) (repository.LedgerTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &ledgerTx{tx: tx}, nil
}

func (r *LedgerRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListTransactions, err)
	}
	defer rows.Close()

	result := []domain.Transaction{}
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListTransactions, err)
		}
		result = append(result, *tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListTransactions, err)
	}
	return result, nil
}

// filterClause builds the WHERE clause of a filtered listing.
// ok is false when the filter can match nothing, such as a malformed account id.
func filterClause(filter domain.TransactionFilter) (where string, args []any, ok bool) {
	var conds []string
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.AccountID != "" {
		id, valid := parseID(filter.AccountID)
		if !valid {
			return "", nil, false
		}
		add("t.account_id = $%d", id)
	}
	if filter.Status != "" {
		add("t.status = $%d", string(filter.Status))
	}
	if filter.Currency != "" {
		add("t.currency = $%d", string(filter.Currency))
	}
	if filter.Kind != "" {
		add("t.kind = $%d", string(filter.Kind))
	}

	if len(conds) == 0 {
		return "", nil, true
	}
	return " WHERE " + strings.Join(conds, " AND "), args, true
}

// scanTransaction reads transactionColumns followed by any extra destinations
func scanTransaction(row pgx.Row, extra ...any) (*domain.Transaction, error) {
	var (
		t                      domain.Transaction
		kind, status, currency string
		cost                   string
		snapshot               []byte
	)
	dest := []any{
		&t.ID, &t.AccountID, &t.AuthorName, &kind, &status, &currency,
		&cost, &t.ProductName, &t.CatalogItemID, &snapshot, &t.Mode,
		&t.SessionID, &t.ProcessorProductID, &t.BalanceBefore, &t.BalanceAfter,
		&t.Reason, &t.CreatedAt, &t.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	t.Kind = domain.TransactionKind(kind)
	t.Status = domain.TransactionStatus(status)
	t.Currency = domain.CurrencyKind(currency)
	var err error
	if t.Cost, err = parseDecimal(cost); err != nil {
		return nil, err
	}
	if len(snapshot) > 0 {
		t.Snapshot = &domain.ItemSnapshot{}
		if err := json.Unmarshal(snapshot, t.Snapshot); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshal, err)
		}
	}
	return &t, nil
}

// ledgerTx implements repository.LedgerTx on top of a pgx transaction
type ledgerTx struct {
	tx pgx.Tx
}

func (t *ledgerTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

func (t *ledgerTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return repository.ErrTxClosed
	}
	return err
}

// GetAccountForUpdate locks the account row until the transaction ends
func (t *ledgerTx) GetAccountForUpdate(ctx context.Context, id string) (*domain.Account, error) {
	accountID, ok := parseID(id)
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	query := `SELECT ` + accountColumns + ` FROM accounts a WHERE a.account_id = $1 FOR UPDATE`
	account, err := scanAccount(t.tx.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetAccount, err)
	}
	return account, nil
}

// DebitPoints is a conditional update: the row only changes when the balance covers amount
func (t *ledgerTx) DebitPoints(ctx context.Context, accountID string, amount int64) (int64, int64, error) {
	if amount < 0 {
		return 0, 0, fmt.Errorf("%w: amount must not be negative", domain.ErrInvalidInput)
	}
	id, ok := parseID(accountID)
	if !ok {
		return 0, 0, domain.ErrAccountNotFound
	}
	var after int64
	err := t.tx.QueryRow(ctx, `
		UPDATE accounts SET points = points - $2, updated_at = NOW()
		WHERE account_id = $1 AND points >= $2
		RETURNING points`,
		id, amount).Scan(&after)
	if err == nil {
		return after + amount, after, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		if isPgError(err, PgErrorCodeCheckViolation) {
			return 0, 0, domain.ErrInsufficientFunds
		}
		return 0, 0, fmt.Errorf("%s: %w", ErrMsgFailedToUpdateBalance, err)
	}

	var exists bool
	if err := t.tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE account_id = $1)`, id).Scan(&exists); err != nil {
		return 0, 0, fmt.Errorf("%s: %w", ErrMsgFailedToUpdateBalance, err)
	}
	if !exists {
		return 0, 0, domain.ErrAccountNotFound
	}
	return 0, 0, domain.ErrInsufficientFunds
}

// CreditPoints adds amount to the balance
func (t *ledgerTx) CreditPoints(ctx context.Context, accountID string, amount int64) (int64, int64, error) {
	if amount < 0 {
		return 0, 0, fmt.Errorf("%w: amount must not be negative", domain.ErrInvalidInput)
	}
	id, ok := parseID(accountID)
	if !ok {
		return 0, 0, domain.ErrAccountNotFound
	}
	var after int64
	err := t.tx.QueryRow(ctx, `
		UPDATE accounts SET points = points + $2, updated_at = NOW()
		WHERE account_id = $1
		RETURNING points`,
		id, amount).Scan(&after)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, domain.ErrAccountNotFound
		}
		if isPgError(err, PgErrorCodeCheckViolation) {
			return 0, 0, domain.ErrInsufficientFunds
		}
		if isPgError(err, PgErrorCodeNumericOutOfRange) {
			return 0, 0, fmt.Errorf("%w: balance out of range", domain.ErrInvalidInput)
		}
		return 0, 0, fmt.Errorf("%s: %w", ErrMsgFailedToUpdateBalance, err)
	}
	return after - amount, after, nil
}

// AddRole appends role unless the account already holds it
func (t *ledgerTx) AddRole(ctx context.Context, accountID string, role domain.Role) error {
	id, ok := parseID(accountID)
	if !ok {
		return domain.ErrAccountNotFound
	}
	_, err := t.tx.Exec(ctx, `
		UPDATE accounts SET roles = array_append(roles, $2::text), updated_at = NOW()
		WHERE account_id = $1 AND NOT ($2::text = ANY (roles))`,
		id, string(role))
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateRoles, err)
	}
	return nil
}

// InsertTransaction appends a ledger entry and fills its id and timestamps
func (t *ledgerTx) InsertTransaction(ctx context.Context, entry *domain.Transaction) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	txID, ok := parseID(entry.ID)
	if !ok {
		return fmt.Errorf("%w: malformed transaction id", domain.ErrInvalidInput)
	}
	accountID, ok := parseID(entry.AccountID)
	if !ok {
		return domain.ErrAccountNotFound
	}

	var snapshot []byte
	if entry.Snapshot != nil {
		var err error
		if snapshot, err = json.Marshal(entry.Snapshot); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToMarshal, err)
		}
	}

	query := `
		INSERT INTO transactions (
			transaction_id, account_id, author_name, kind, status, currency, cost, product_name,
			catalog_item_id, snapshot, mode, session_id, processor_product_id,
			balance_before, balance_after, reason
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7::numeric, $8, $9::uuid, $10, $11, $12, $13, $14, $15, $16)
		RETURNING created_at, updated_at
	`
	err := t.tx.QueryRow(ctx, query,
		txID,
		accountID,
		entry.AuthorName,
		string(entry.Kind),
		string(entry.Status),
		string(entry.Currency),
		entry.Cost.String(),
		entry.ProductName,
		nullString(entry.CatalogItemID),
		snapshot,
		entry.Mode,
		nullString(entry.SessionID),
		entry.ProcessorProductID,
		entry.BalanceBefore,
		entry.BalanceAfter,
		entry.Reason,
	).Scan(&entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSessionAlreadyUsed
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertTransaction, err)
	}
	return nil
}
