package shop

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/saofrance/shop-api/internal/domain"
	"github.com/saofrance/shop-api/internal/logger"
	"github.com/saofrance/shop-api/internal/metrics"
	"github.com/saofrance/shop-api/internal/repository"
)

// Notifier receives completed purchases. Implementations must not block.
type Notifier interface {
	SendMail(ctx context.Context, mail domain.Mail)
	PurchaseCompleted(ctx context.Context, notice domain.PurchaseNotice)
}

// ProfileInvalidator drops cached profiles after a role grant
type ProfileInvalidator interface {
	InvalidateProfile(id string)
}

// PaymentRecord is a processor payment that has been verified server-side
type PaymentRecord struct {
	AccountID string
	Item      *domain.CatalogItem
	SessionID string
	Amount    decimal.Decimal
}

// Service runs the purchase flows
type Service interface {
	PurchaseWithPoints(ctx context.Context, accountID, itemID string) (*domain.Transaction, error)
	RecordPayment(ctx context.Context, payment PaymentRecord) (*domain.Transaction, error)
}

type service struct {
	catalog    repository.Catalog
	identities repository.Identity
	ledger     repository.Ledger
	notifier   Notifier
	profiles   ProfileInvalidator
}

// NewService creates the purchase service
func NewService(catalog repository.Catalog, identities repository.Identity, ledger repository.Ledger, notifier Notifier, profiles ProfileInvalidator) Service {
	return &service{
		catalog:    catalog,
		identities: identities,
		ledger:     ledger,
		notifier:   notifier,
		profiles:   profiles,
	}
}

// PurchaseWithPoints buys a points-priced item. The debit, the ledger entry and
// the reward are written in one store transaction; the debit is conditional on
// the balance so concurrent purchases cannot overdraw the account.
func (s *service) PurchaseWithPoints(ctx context.Context, accountID, itemID string) (*domain.Transaction, error) {
	log := logger.FromContext(ctx)

	item, err := s.catalog.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.Active {
		return nil, domain.ErrItemInactive
	}
	if item.IsRealMoney() {
		return nil, domain.ErrRealMoneyItem
	}
	price, err := item.PointsPrice()
	if err != nil {
		return nil, err
	}
	identity, err := s.identities.GetIdentity(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load linked identity: %w", err)
	}
	if identity == nil {
		return nil, domain.ErrIdentityNotLinked
	}

	dbTx, err := s.ledger.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, dbTx)

	account, err := dbTx.GetAccountForUpdate(ctx, accountID)
	if err != nil {
		return nil, err
	}
	before, _, err := dbTx.DebitPoints(ctx, accountID, price)
	if err != nil {
		log.Info(LogMsgPurchaseRejected, "account_id", accountID, "item_id", itemID, "price", price, "balance", account.Points)
		return nil, err
	}
	after, err := grantReward(ctx, dbTx, accountID, item.Reward)
	if err != nil {
		return nil, err
	}
	if after < 0 {
		after = before - price
	}

	entry := &domain.Transaction{
		AccountID:     accountID,
		AuthorName:    account.Username,
		Kind:          domain.KindPurchase,
		Status:        domain.StatusConfirmed,
		Currency:      domain.CurrencyPoints,
		Cost:          decimal.NewFromInt(price),
		ProductName:   item.Name,
		CatalogItemID: item.ID,
		Snapshot:      item.Snapshot(),
		Mode:          domain.ModePoints,
		BalanceBefore: &before,
		BalanceAfter:  &after,
	}
	if err := dbTx.InsertTransaction(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to record purchase: %w", err)
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit purchase: %w", err)
	}

	metrics.PointsPurchases.WithLabelValues(string(item.Category)).Inc()
	metrics.PointsSpent.Add(float64(price))
	log.Info(LogMsgPointsPurchase,
		"account_id", accountID,
		"item_id", item.ID,
		"transaction_id", entry.ID,
		"balance_after", after)

	s.completed(ctx, account, identity, entry)
	return entry, nil
}

// RecordPayment stores a verified real-money payment and grants its reward.
// A session id that was already recorded returns domain.ErrSessionAlreadyUsed.
func (s *service) RecordPayment(ctx context.Context, p PaymentRecord) (*domain.Transaction, error) {
	if p.Item == nil || p.SessionID == "" {
		return nil, fmt.Errorf("%w: payment record is incomplete", domain.ErrInvalidInput)
	}

	dbTx, err := s.ledger.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, dbTx)

	account, err := dbTx.GetAccountForUpdate(ctx, p.AccountID)
	if err != nil {
		return nil, err
	}
	if _, err := grantReward(ctx, dbTx, p.AccountID, p.Item.Reward); err != nil {
		return nil, err
	}

	entry := &domain.Transaction{
		AccountID:          p.AccountID,
		AuthorName:         account.Username,
		Kind:               domain.KindPurchase,
		Status:             domain.StatusConfirmed,
		Currency:           domain.CurrencyRealMoney,
		Cost:               p.Amount,
		ProductName:        p.Item.Name,
		CatalogItemID:      p.Item.ID,
		Snapshot:           p.Item.Snapshot(),
		Mode:               domain.ModePayment,
		SessionID:          p.SessionID,
		ProcessorProductID: p.Item.ProcessorProductID,
	}
	if err := dbTx.InsertTransaction(ctx, entry); err != nil {
		return nil, err
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit payment: %w", err)
	}

	metrics.PaymentsConfirmed.WithLabelValues(string(p.Item.Category)).Inc()
	metrics.Revenue.Add(p.Amount.InexactFloat64())
	logger.FromContext(ctx).Info(LogMsgPaymentRecorded,
		"account_id", p.AccountID,
		"item_id", p.Item.ID,
		"transaction_id", entry.ID,
		"session_id", p.SessionID)

	identity, err := s.identities.GetIdentity(ctx, p.AccountID)
	if err != nil {
		logger.FromContext(ctx).Warn("Failed to load identity for notification", "account_id", p.AccountID, "error", err)
	}
	s.completed(ctx, account, identity, entry)
	return entry, nil
}

// grantReward applies the role and points of a reward inside the store transaction.
// It returns the balance after crediting, or -1 when no points were credited.
// Cosmetics are delivered in game from the transaction snapshot.
func grantReward(ctx context.Context, dbTx repository.LedgerTx, accountID string, r domain.Reward) (int64, error) {
	if r.Role != "" {
		if err := dbTx.AddRole(ctx, accountID, r.Role); err != nil {
			return 0, fmt.Errorf("failed to grant role: %w", err)
		}
	}
	if points := r.TotalPoints(); points > 0 {
		_, after, err := dbTx.CreditPoints(ctx, accountID, points)
		if err != nil {
			return 0, fmt.Errorf("failed to credit points: %w", err)
		}
		return after, nil
	}
	return -1, nil
}

func (s *service) completed(ctx context.Context, account *domain.Account, identity *domain.LinkedIdentity, entry *domain.Transaction) {
	if entry.Snapshot != nil && entry.Snapshot.Reward.Role != "" {
		s.profiles.InvalidateProfile(account.ID)
	}

	s.notifier.SendMail(ctx, domain.Mail{
		Type:     domain.MailProductBuy,
		To:       account.Email,
		Username: account.Username,
		Data: map[string]string{
			MailKeyProductName: entry.ProductName,
			MailKeyCost:        entry.Cost.String(),
			MailKeyCurrency:    string(entry.Currency),
			MailKeyTransaction: entry.ID,
		},
	})

	notice := domain.PurchaseNotice{
		AccountID:   account.ID,
		Username:    account.Username,
		Email:       account.Email,
		ProductName: entry.ProductName,
		Currency:    entry.Currency,
		Cost:        entry.Cost.String(),
		Transaction: entry.ID,
	}
	if identity != nil {
		notice.GameName = identity.Name
	}
	s.notifier.PurchaseCompleted(ctx, notice)
}
