package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/saofrance/shop-api/internal/account"
	"github.com/saofrance/shop-api/internal/auth"
	"github.com/saofrance/shop-api/internal/catalog"
	"github.com/saofrance/shop-api/internal/domain"
	"github.com/saofrance/shop-api/internal/ledger"
	"github.com/saofrance/shop-api/internal/payment"
	"github.com/saofrance/shop-api/internal/shop"
)

// MockSessionManager

type MockSessionManager struct {
	mock.Mock
}

func (m *MockSessionManager) Login(ctx context.Context, username, password string) (*auth.LoginResult, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.LoginResult), args.Error(1)
}

func (m *MockSessionManager) Revoke(ctx context.Context, accountID string) error {
	return m.Called(ctx, accountID).Error(0)
}

// MockAccountService

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Register(ctx context.Context, in account.RegisterInput) (*domain.Account, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) Authenticate(ctx context.Context, username, password string) (*domain.Account, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetPrivateProfile(ctx context.Context, id string) (*domain.PrivateProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PrivateProfile), args.Error(1)
}

func (m *MockAccountService) GetPublicProfile(ctx context.Context, id string) (*domain.PublicProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PublicProfile), args.Error(1)
}

func (m *MockAccountService) Update(ctx context.Context, id string, in account.UpdateInput) (*domain.Account, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) RequestPasswordReset(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockAccountService) ResetPassword(ctx context.Context, token, newPassword string) error {
	return m.Called(ctx, token, newPassword).Error(0)
}

func (m *MockAccountService) ListAccounts(ctx context.Context) ([]domain.AccountWithIdentity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountWithIdentity), args.Error(1)
}

func (m *MockAccountService) GrantRole(ctx context.Context, id string, role domain.Role) (*domain.Account, error) {
	args := m.Called(ctx, id, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) RevokeRole(ctx context.Context, id string, role domain.Role) (*domain.Account, error) {
	args := m.Called(ctx, id, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) InvalidateProfile(id string) {
	m.Called(id)
}

// MockCatalogService

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) Create(ctx context.Context, in catalog.CreateInput) (*domain.CatalogItem, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CatalogItem), args.Error(1)
}

func (m *MockCatalogService) Edit(ctx context.Context, id string, in catalog.EditInput) (*domain.CatalogItem, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CatalogItem), args.Error(1)
}

func (m *MockCatalogService) Remove(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCatalogService) List(ctx context.Context, includeInactive bool) ([]domain.CatalogItem, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CatalogItem), args.Error(1)
}

func (m *MockCatalogService) Get(ctx context.Context, id string) (*domain.CatalogItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CatalogItem), args.Error(1)
}

func (m *MockCatalogService) UpdatePrice(ctx context.Context, id string, price decimal.Decimal) (*domain.CatalogItem, error) {
	args := m.Called(ctx, id, price)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CatalogItem), args.Error(1)
}

func (m *MockCatalogService) ListLinked(ctx context.Context) ([]domain.CatalogItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CatalogItem), args.Error(1)
}

// MockLedgerService

type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Get(ctx context.Context, id string) (*domain.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) ListForAccount(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) ListAll(ctx context.Context) ([]domain.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) ListPage(ctx context.Context, filter domain.TransactionFilter, page domain.Page) (*domain.TransactionPage, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionPage), args.Error(1)
}

func (m *MockLedgerService) ExistsSessionID(ctx context.Context, sessionID string) (bool, error) {
	args := m.Called(ctx, sessionID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerService) Claim(ctx context.Context, id string, target domain.ClaimTarget) (*domain.Transaction, error) {
	args := m.Called(ctx, id, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerService) ListClaimable(ctx context.Context) ([]domain.ClaimableTransaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClaimableTransaction), args.Error(1)
}

func (m *MockLedgerService) Adjust(ctx context.Context, in ledger.AdjustInput) (*domain.Transaction, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

// MockShopService

type MockShopService struct {
	mock.Mock
}

func (m *MockShopService) PurchaseWithPoints(ctx context.Context, accountID, itemID string) (*domain.Transaction, error) {
	args := m.Called(ctx, accountID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockShopService) RecordPayment(ctx context.Context, p shop.PaymentRecord) (*domain.Transaction, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

// MockPaymentService

type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) ListProducts(ctx context.Context) ([]payment.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]payment.Product), args.Error(1)
}

func (m *MockPaymentService) ListActivePrices(ctx context.Context) ([]payment.Price, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]payment.Price), args.Error(1)
}

func (m *MockPaymentService) GetPrice(ctx context.Context, id string) (*payment.Price, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Price), args.Error(1)
}

func (m *MockPaymentService) CheckoutURL(ctx context.Context, acc *domain.Account, itemID string) (string, error) {
	args := m.Called(ctx, acc, itemID)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentService) ConfirmPayment(ctx context.Context, acc *domain.Account, itemID, statusToken, sessionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, acc, itemID, statusToken, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

// MockIdentityService

type MockIdentityService struct {
	mock.Mock
}

func (m *MockIdentityService) Link(ctx context.Context, accountID, brokerToken string) (*domain.LinkResult, error) {
	args := m.Called(ctx, accountID, brokerToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LinkResult), args.Error(1)
}

func (m *MockIdentityService) Get(ctx context.Context, accountID string) (*domain.LinkedIdentity, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LinkedIdentity), args.Error(1)
}

// MockStatsService

type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) AdminStats(ctx context.Context) (*domain.AdminStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdminStats), args.Error(1)
}

// request helpers

func jsonBody(t *testing.T, v interface{}) *bytes.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

// newRequest builds a request carrying chi path params and, when acc is set,
// an authenticated account
func newRequest(method, target string, body *bytes.Reader, acc *domain.Account, params map[string]string) *http.Request {
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, body)
		req.Header.Set("Content-Type", "application/json")
	}

	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if acc != nil {
		ctx = auth.WithAccount(ctx, acc)
	}
	return req.WithContext(ctx)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}
