package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/saofrance/shop-api/internal/domain"
	"github.com/saofrance/shop-api/internal/logger"
	"github.com/saofrance/shop-api/internal/repository"
	"github.com/saofrance/shop-api/internal/shop"
)

// Recorder stores a verified payment; implemented by shop.Service
type Recorder interface {
	RecordPayment(ctx context.Context, payment shop.PaymentRecord) (*domain.Transaction, error)
}

// Config holds the checkout settings
type Config struct {
	FrontClientURL string
	// Currency is the ISO code every checkout is charged in
	Currency string
	// StatusSecret signs the status token carried by the success URL
	StatusSecret string
}

// Service drives real-money purchases through the processor
type Service interface {
	ListProducts(ctx context.Context) ([]Product, error)
	ListActivePrices(ctx context.Context) ([]Price, error)
	GetPrice(ctx context.Context, id string) (*Price, error)
	CheckoutURL(ctx context.Context, account *domain.Account, itemID string) (string, error)
	ConfirmPayment(ctx context.Context, account *domain.Account, itemID, statusToken, sessionID string) (*domain.Transaction, error)
}

type service struct {
	processor Processor
	catalog   repository.Catalog
	ledger    repository.Ledger
	recorder  Recorder
	frontURL  string
	currency  string
	secret    []byte
}

// NewService creates the payment service
func NewService(processor Processor, catalog repository.Catalog, ledger repository.Ledger, recorder Recorder, cfg Config) Service {
	return &service{
		processor: processor,
		catalog:   catalog,
		ledger:    ledger,
		recorder:  recorder,
		frontURL:  strings.TrimRight(cfg.FrontClientURL, "/"),
		currency:  strings.ToLower(cfg.Currency),
		secret:    []byte(cfg.StatusSecret),
	}
}

func (s *service) ListProducts(ctx context.Context) ([]Product, error) {
	return s.processor.ListProducts(ctx)
}

func (s *service) ListActivePrices(ctx context.Context) ([]Price, error) {
	return s.processor.ListActivePrices(ctx)
}

func (s *service) GetPrice(ctx context.Context, id string) (*Price, error) {
	return s.processor.GetPrice(ctx, id)
}

// CheckoutURL opens a hosted checkout for a real-money item and returns its URL
func (s *service) CheckoutURL(ctx context.Context, account *domain.Account, itemID string) (string, error) {
	item, err := s.payableItem(ctx, itemID)
	if err != nil {
		return "", err
	}
	product, err := s.processor.GetProduct(ctx, item.ProcessorProductID)
	if err != nil {
		return "", err
	}
	if product.DefaultPriceID == "" {
		return "", fmt.Errorf("%w: product %s has no default price", domain.ErrMissingProduct, product.ID)
	}

	// the placeholder is substituted by the processor and must stay unescaped
	successURL := s.frontURL + SuccessPath +
		"?product=" + url.QueryEscape(item.ID) +
		"&status=" + s.statusToken(account.ID, item.ID) +
		"&session_id=" + CheckoutSessionHolder

	session, err := s.processor.CreateCheckoutSession(ctx, CheckoutRequest{
		PriceID:       product.DefaultPriceID,
		SuccessURL:    successURL,
		CancelURL:     s.frontURL + CancelPath,
		CustomerEmail: account.Email,
		Metadata: map[string]string{
			MetadataAccountID: account.ID,
			MetadataItemID:    item.ID,
		},
	})
	if err != nil {
		return "", err
	}
	logger.FromContext(ctx).Info(LogMsgCheckoutCreated, "account_id", account.ID, "item_id", item.ID, "session_id", session.ID)
	return session.URL, nil
}

// ConfirmPayment verifies a checkout reported as successful by the client and
// records it. Each processor session is consumed at most once.
func (s *service) ConfirmPayment(ctx context.Context, account *domain.Account, itemID, statusToken, sessionID string) (*domain.Transaction, error) {
	log := logger.FromContext(ctx)

	if !hmac.Equal([]byte(statusToken), []byte(s.statusToken(account.ID, itemID))) {
		return nil, domain.ErrInvalidStatusToken
	}
	if strings.TrimSpace(sessionID) == "" {
		return nil, fmt.Errorf("%w: session id is required", domain.ErrInvalidInput)
	}

	used, err := s.ledger.SessionIDExists(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if used {
		return nil, domain.ErrSessionAlreadyUsed
	}

	session, err := s.processor.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Paid {
		return nil, domain.ErrPaymentNotCompleted
	}
	if session.Metadata[MetadataAccountID] != account.ID || session.Metadata[MetadataItemID] != itemID {
		log.Warn(LogMsgPaymentRejected, "reason", "metadata", "account_id", account.ID, "session_id", sessionID)
		return nil, domain.ErrPaymentMismatch
	}

	item, err := s.catalog.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.IsRealMoney() {
		return nil, domain.ErrPointsItem
	}
	amount := MinorToDecimal(session.AmountTotal)
	if !amount.Equal(item.Price) {
		log.Warn(LogMsgPaymentRejected,
			"reason", "amount",
			"paid", amount.String(),
			"price", item.Price.String(),
			"session_id", sessionID)
		return nil, domain.ErrPaymentMismatch
	}
	if !strings.EqualFold(session.Currency, s.currency) {
		log.Warn(LogMsgPaymentRejected,
			"reason", "currency",
			"paid_currency", session.Currency,
			"expected_currency", s.currency,
			"session_id", sessionID)
		return nil, domain.ErrPaymentMismatch
	}

	entry, err := s.recorder.RecordPayment(ctx, shop.PaymentRecord{
		AccountID: account.ID,
		Item:      item,
		SessionID: sessionID,
		Amount:    amount,
	})
	if err != nil {
		if errors.Is(err, domain.ErrSessionAlreadyUsed) {
			log.Warn(LogMsgPaymentRejected, "reason", "session reused", "session_id", sessionID)
		}
		return nil, err
	}
	log.Info(LogMsgPaymentConfirmed, "account_id", account.ID, "transaction_id", entry.ID)
	return entry, nil
}

func (s *service) payableItem(ctx context.Context, itemID string) (*domain.CatalogItem, error) {
	item, err := s.catalog.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.Active {
		return nil, domain.ErrItemInactive
	}
	if !item.IsRealMoney() {
		return nil, domain.ErrPointsItem
	}
	if item.ProcessorProductID == "" {
		return nil, domain.ErrMissingProduct
	}
	return item, nil
}

// statusToken binds a success redirect to the account and item it was issued for
func (s *service) statusToken(accountID, itemID string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(accountID))
	mac.Write([]byte{0})
	mac.Write([]byte(itemID))
	return hex.EncodeToString(mac.Sum(nil))
}
