package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/saofrance/shop-api/internal/domain"
	"github.com/saofrance/shop-api/internal/logger"
	"github.com/saofrance/shop-api/internal/repository"
)

// CreateInput carries the fields of a new catalog item
type CreateInput struct {
	Name               string
	Description        string
	DescriptionDetails string
	ImageURL           string
	Price              decimal.Decimal
	Currency           domain.CurrencyKind
	Category           domain.Category
	ProcessorProductID string
	Reward             domain.Reward
	// Active defaults to true when nil
	Active *bool
}

// EditInput is a partial update; nil fields are left unchanged
type EditInput struct {
	Name               *string
	Description        *string
	DescriptionDetails *string
	ImageURL           *string
	Price              *decimal.Decimal
	Currency           *domain.CurrencyKind
	Category           *domain.Category
	ProcessorProductID *string
	Reward             *domain.Reward
	Active             *bool
}

// Service manages the shop catalog
type Service interface {
	Create(ctx context.Context, in CreateInput) (*domain.CatalogItem, error)
	Edit(ctx context.Context, id string, in EditInput) (*domain.CatalogItem, error)
	Remove(ctx context.Context, id string) error
	List(ctx context.Context, includeInactive bool) ([]domain.CatalogItem, error)
	Get(ctx context.Context, id string) (*domain.CatalogItem, error)
	// UpdatePrice overwrites the stored price, used when the processor price drifts
	UpdatePrice(ctx context.Context, id string, price decimal.Decimal) (*domain.CatalogItem, error)
	// ListLinked returns real-money items bound to a processor product
	ListLinked(ctx context.Context) ([]domain.CatalogItem, error)
}

type service struct {
	repo repository.Catalog
}

// NewService creates a catalog service
func NewService(repo repository.Catalog) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, in CreateInput) (*domain.CatalogItem, error) {
	item := &domain.CatalogItem{
		Name:               strings.TrimSpace(in.Name),
		Description:        in.Description,
		DescriptionDetails: in.DescriptionDetails,
		ImageURL:           strings.TrimSpace(in.ImageURL),
		Price:              in.Price,
		Currency:           in.Currency,
		Category:           in.Category,
		ProcessorProductID: strings.TrimSpace(in.ProcessorProductID),
		Reward:             in.Reward,
		Active:             in.Active == nil || *in.Active,
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create catalog item: %w", err)
	}
	logger.FromContext(ctx).Info(LogMsgItemCreated,
		"item_id", item.ID,
		"name", item.Name,
		"category", item.Category,
		"place", item.Place)
	return item, nil
}

func (s *service) Edit(ctx context.Context, id string, in EditInput) (*domain.CatalogItem, error) {
	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		item.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.DescriptionDetails != nil {
		item.DescriptionDetails = *in.DescriptionDetails
	}
	if in.ImageURL != nil {
		item.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
	if in.Price != nil {
		item.Price = *in.Price
	}
	if in.Currency != nil {
		item.Currency = *in.Currency
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.ProcessorProductID != nil {
		item.ProcessorProductID = strings.TrimSpace(*in.ProcessorProductID)
	}
	if in.Reward != nil {
		item.Reward = *in.Reward
	}
	if in.Active != nil {
		item.Active = *in.Active
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update catalog item: %w", err)
	}
	logger.FromContext(ctx).Info(LogMsgItemUpdated, "item_id", item.ID)
	return item, nil
}

// Remove deletes the item. Past transactions keep their own snapshot.
func (s *service) Remove(ctx context.Context, id string) error {
	if err := s.repo.DeleteItem(ctx, id); err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgItemRemoved, "item_id", id)
	return nil
}

func (s *service) List(ctx context.Context, includeInactive bool) ([]domain.CatalogItem, error) {
	return s.repo.ListItems(ctx, includeInactive)
}

func (s *service) Get(ctx context.Context, id string) (*domain.CatalogItem, error) {
	return s.repo.GetItem(ctx, id)
}

func (s *service) UpdatePrice(ctx context.Context, id string, price decimal.Decimal) (*domain.CatalogItem, error) {
	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	old := item.Price
	item.Price = price
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update catalog item price: %w", err)
	}
	logger.FromContext(ctx).Info(LogMsgItemPriceUpdated,
		"item_id", item.ID,
		"old_price", old.String(),
		"new_price", price.String())
	return item, nil
}

func (s *service) ListLinked(ctx context.Context) ([]domain.CatalogItem, error) {
	return s.repo.ListLinkedRealMoneyItems(ctx)
}
