package payment

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/saofrance/shop-api/internal/catalog"
	"github.com/saofrance/shop-api/internal/domain"
	"github.com/saofrance/shop-api/internal/repository"
	"github.com/saofrance/shop-api/internal/shop"
)

type MockProcessor struct {
	mock.Mock
}

func (m *MockProcessor) ListProducts(ctx context.Context) ([]Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]Product), args.Error(1)
}

func (m *MockProcessor) ListActivePrices(ctx context.Context) ([]Price, error) {
	args := m.Called(ctx)
	return args.Get(0).([]Price), args.Error(1)
}

func (m *MockProcessor) GetPrice(ctx context.Context, id string) (*Price, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Price), args.Error(1)
}

func (m *MockProcessor) GetProduct(ctx context.Context, id string) (*Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockProcessor) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CheckoutSession), args.Error(1)
}

func (m *MockProcessor) GetCheckoutSession(ctx context.Context, id string) (*CheckoutSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CheckoutSession), args.Error(1)
}

// fakeCatalog serves items from a map and records price updates
type fakeCatalog struct {
	repository.Catalog
	catalog.Service
	items     map[string]*domain.CatalogItem
	updateErr error
	updates   map[string]decimal.Decimal
}

func newFakeCatalog(items ...*domain.CatalogItem) *fakeCatalog {
	f := &fakeCatalog{items: map[string]*domain.CatalogItem{}, updates: map[string]decimal.Decimal{}}
	for _, i := range items {
		f.items[i.ID] = i
	}
	return f
}

func (f *fakeCatalog) GetItem(_ context.Context, id string) (*domain.CatalogItem, error) {
	if i, ok := f.items[id]; ok {
		cp := *i
		return &cp, nil
	}
	return nil, domain.ErrCatalogItemNotFound
}

func (f *fakeCatalog) ListLinked(context.Context) ([]domain.CatalogItem, error) {
	var out []domain.CatalogItem
	for _, i := range f.items {
		if i.IsRealMoney() && i.ProcessorProductID != "" {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (f *fakeCatalog) UpdatePrice(_ context.Context, id string, price decimal.Decimal) (*domain.CatalogItem, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.items[id].Price = price
	f.updates[id] = price
	return f.items[id], nil
}

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) RecordPayment(ctx context.Context, p shop.PaymentRecord) (*domain.Transaction, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
