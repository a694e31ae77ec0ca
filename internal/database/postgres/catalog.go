package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/saofrance/shop-api/internal/database/generated"
	"github.com/saofrance/shop-api/internal/domain"
	"github.com/saofrance/shop-api/internal/repository"
)

// CatalogRepository implements repository.Catalog for PostgreSQL
type CatalogRepository struct {
	q *generated.Queries
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{q: generated.New(db)}
}

var _ repository.Catalog = (*CatalogRepository)(nil)

// CreateItem inserts the item at the end of its category
func (r *CatalogRepository) CreateItem(ctx context.Context, item *domain.CatalogItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	id, ok := parseID(item.ID)
	if !ok {
		return fmt.Errorf("%w: malformed item id", domain.ErrInvalidInput)
	}
	reward, err := json.Marshal(item.Reward)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshal, err)
	}

	row, err := r.q.CreateCatalogItem(ctx, generated.CreateCatalogItemParams{
		ItemID:             id,
		Name:               item.Name,
		Description:        item.Description,
		DescriptionDetails: item.DescriptionDetails,
		ImageUrl:           item.ImageURL,
		Price:              item.Price,
		Currency:           string(item.Currency),
		Category:           string(item.Category),
		ProcessorProductID: item.ProcessorProductID,
		Reward:             reward,
		Active:             item.Active,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertItem, err)
	}
	item.Place = int(row.Place)
	item.CreatedAt = row.CreatedAt
	item.UpdatedAt = row.UpdatedAt
	return nil
}

// UpdateItem rewrites the whole record
func (r *CatalogRepository) UpdateItem(ctx context.Context, item *domain.CatalogItem) error {
	id, ok := parseID(item.ID)
	if !ok {
		return domain.ErrCatalogItemNotFound
	}
	reward, err := json.Marshal(item.Reward)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshal, err)
	}

	updatedAt, err := r.q.UpdateCatalogItem(ctx, generated.UpdateCatalogItemParams{
		Name:               item.Name,
		Description:        item.Description,
		DescriptionDetails: item.DescriptionDetails,
		ImageUrl:           item.ImageURL,
		Price:              item.Price,
		Currency:           string(item.Currency),
		Category:           string(item.Category),
		Place:              int32(item.Place),
		ProcessorProductID: item.ProcessorProductID,
		Reward:             reward,
		Active:             item.Active,
		ItemID:             id,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrCatalogItemNotFound
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateItem, err)
	}
	item.UpdatedAt = updatedAt
	return nil
}

// DeleteItem removes the item; stored transactions keep their snapshot
func (r *CatalogRepository) DeleteItem(ctx context.Context, id string) error {
	itemID, ok := parseID(id)
	if !ok {
		return domain.ErrCatalogItemNotFound
	}
	n, err := r.q.DeleteCatalogItem(ctx, itemID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteItem, err)
	}
	if n == 0 {
		return domain.ErrCatalogItemNotFound
	}
	return nil
}

// GetItem returns domain.ErrCatalogItemNotFound for unknown ids
func (r *CatalogRepository) GetItem(ctx context.Context, id string) (*domain.CatalogItem, error) {
	itemID, ok := parseID(id)
	if !ok {
		return nil, domain.ErrCatalogItemNotFound
	}
	row, err := r.q.GetCatalogItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCatalogItemNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetItem, err)
	}
	item, err := mapCatalogItem(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetItem, err)
	}
	return item, nil
}

// ListItems returns the storefront ordered by category and place
func (r *CatalogRepository) ListItems(ctx context.Context, includeInactive bool) ([]domain.CatalogItem, error) {
	rows, err := r.q.ListCatalogItems(ctx, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListItems, err)
	}
	return mapCatalogItems(rows)
}

// ListLinkedRealMoneyItems returns the items the price reconciler watches
func (r *CatalogRepository) ListLinkedRealMoneyItems(ctx context.Context) ([]domain.CatalogItem, error) {
	rows, err := r.q.ListLinkedRealMoneyItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListItems, err)
	}
	return mapCatalogItems(rows)
}

func mapCatalogItems(rows []generated.CatalogItem) ([]domain.CatalogItem, error) {
	items := make([]domain.CatalogItem, 0, len(rows))
	for _, row := range rows {
		item, err := mapCatalogItem(row)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListItems, err)
		}
		items = append(items, *item)
	}
	return items, nil
}

func mapCatalogItem(row generated.CatalogItem) (*domain.CatalogItem, error) {
	item := &domain.CatalogItem{
		ID:                 row.ItemID.String(),
		Name:               row.Name,
		Description:        row.Description,
		DescriptionDetails: row.DescriptionDetails,
		ImageURL:           row.ImageUrl,
		Price:              row.Price,
		Currency:           domain.CurrencyKind(row.Currency),
		Category:           domain.Category(row.Category),
		Place:              int(row.Place),
		ProcessorProductID: row.ProcessorProductID,
		Active:             row.Active,
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
	}
	if len(row.Reward) > 0 {
		if err := json.Unmarshal(row.Reward, &item.Reward); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshal, err)
		}
	}
	return item, nil
}
