package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/saofrance/shop-api/internal/domain"
	"github.com/saofrance/shop-api/internal/logger"
	"github.com/saofrance/shop-api/internal/metrics"
	"github.com/saofrance/shop-api/internal/repository"
)

// AdjustInput describes an administrative balance change.
// A positive Amount grants points, a negative one revokes them.
type AdjustInput struct {
	AccountID  string
	AuthorName string
	Amount     int64
	Reason     string
}

// Service exposes the transaction ledger
type Service interface {
	Get(ctx context.Context, id string) (*domain.Transaction, error)
	ListForAccount(ctx context.Context, accountID string) ([]domain.Transaction, error)
	ListAll(ctx context.Context) ([]domain.Transaction, error)
	ListPage(ctx context.Context, filter domain.TransactionFilter, page domain.Page) (*domain.TransactionPage, error)
	ExistsSessionID(ctx context.Context, sessionID string) (bool, error)
	// Claim marks a confirmed purchase as delivered by a game server
	Claim(ctx context.Context, id string, target domain.ClaimTarget) (*domain.Transaction, error)
	ListClaimable(ctx context.Context) ([]domain.ClaimableTransaction, error)
	Adjust(ctx context.Context, in AdjustInput) (*domain.Transaction, error)
}

type service struct {
	repo repository.Ledger
}

// NewService creates a ledger service
func NewService(repo repository.Ledger) Service {
	return &service{repo: repo}
}

func (s *service) Get(ctx context.Context, id string) (*domain.Transaction, error) {
	return s.repo.GetTransaction(ctx, id)
}

func (s *service) ListForAccount(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	return s.repo.ListTransactions(ctx, domain.TransactionFilter{AccountID: accountID})
}

func (s *service) ListAll(ctx context.Context) ([]domain.Transaction, error) {
	return s.repo.ListTransactions(ctx, domain.TransactionFilter{})
}

func (s *service) ListPage(ctx context.Context, filter domain.TransactionFilter, page domain.Page) (*domain.TransactionPage, error) {
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, filter.Status)
	}
	if filter.Currency != "" && !filter.Currency.IsValid() {
		return nil, fmt.Errorf("%w: unknown currency %q", domain.ErrInvalidInput, filter.Currency)
	}
	page = page.Normalize()

	items, total, err := s.repo.ListTransactionsPage(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Transaction{}
	}
	return &domain.TransactionPage{
		Items:      items,
		Page:       page.Number,
		Size:       page.Size,
		Total:      total,
		TotalPages: (total + page.Size - 1) / page.Size,
	}, nil
}

func (s *service) ExistsSessionID(ctx context.Context, sessionID string) (bool, error) {
	return s.repo.SessionIDExists(ctx, sessionID)
}

func (s *service) Claim(ctx context.Context, id string, target domain.ClaimTarget) (*domain.Transaction, error) {
	to, err := target.Status()
	if err != nil {
		return nil, err
	}
	tx, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateTransition(tx.Status, to); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, id, tx.Status, to); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info(LogMsgTransactionClaimed, "transaction_id", id, "status", to)
	tx.Status = to
	return tx, nil
}

func (s *service) ListClaimable(ctx context.Context) ([]domain.ClaimableTransaction, error) {
	return s.repo.ListClaimable(ctx)
}

// Adjust changes the balance and records an adjusted entry in one store transaction.
// A revoke larger than the balance fails with domain.ErrInsufficientFunds.
func (s *service) Adjust(ctx context.Context, in AdjustInput) (*domain.Transaction, error) {
	if in.Amount == 0 {
		return nil, fmt.Errorf("%w: amount must not be zero", domain.ErrInvalidInput)
	}
	if in.Amount < -MaxAdjustment || in.Amount > MaxAdjustment {
		return nil, fmt.Errorf("%w: amount must be within ±%d", domain.ErrInvalidInput, MaxAdjustment)
	}

	dbTx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, dbTx)

	acc, err := dbTx.GetAccountForUpdate(ctx, in.AccountID)
	if err != nil {
		return nil, err
	}

	var before, after int64
	direction := metrics.DirectionGrant
	if in.Amount > 0 {
		before, after, err = dbTx.CreditPoints(ctx, acc.ID, in.Amount)
	} else {
		direction = metrics.DirectionRevoke
		before, after, err = dbTx.DebitPoints(ctx, acc.ID, -in.Amount)
	}
	if err != nil {
		return nil, err
	}

	entry := &domain.Transaction{
		AccountID:     acc.ID,
		AuthorName:    in.AuthorName,
		Kind:          domain.KindAdjustment,
		Status:        domain.StatusAdjusted,
		Currency:      domain.CurrencyPoints,
		Cost:          decimal.NewFromInt(in.Amount),
		ProductName:   AdjustmentProductName,
		Mode:          domain.ModeAdjustment,
		BalanceBefore: &before,
		BalanceAfter:  &after,
		Reason:        strings.TrimSpace(in.Reason),
	}
	if err := dbTx.InsertTransaction(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to record adjustment: %w", err)
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit adjustment: %w", err)
	}

	metrics.BalanceAdjustments.WithLabelValues(direction).Inc()
	logger.FromContext(ctx).Info(LogMsgBalanceAdjusted,
		"account_id", acc.ID,
		"author", in.AuthorName,
		"amount", in.Amount,
		"balance_after", after)
	return entry, nil
}
