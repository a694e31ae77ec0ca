package repository

import (
	"context"

	"github.com/saofrance/shop-api/internal/domain"
)

// Catalog defines persistence for shop items
type Catalog interface {
	// CreateItem inserts the item and sets its Place to the number of items already in its category
	CreateItem(ctx context.Context, item *domain.CatalogItem) error
	UpdateItem(ctx context.Context, item *domain.CatalogItem) error
	DeleteItem(ctx context.Context, id string) error
	GetItem(ctx context.Context, id string) (*domain.CatalogItem, error)
	ListItems(ctx context.Context, includeInactive bool) ([]domain.CatalogItem, error)
	// ListLinkedRealMoneyItems returns real-money items that carry a processor product id
	ListLinkedRealMoneyItems(ctx context.Context) ([]domain.CatalogItem, error)
}
