package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyKind is how a catalog item is paid for
type CurrencyKind string

const (
	CurrencyPoints    CurrencyKind = "points"
	CurrencyRealMoney CurrencyKind = "real_money"
)

// IsValid reports whether c is a known currency kind
func (c CurrencyKind) IsValid() bool {
	return c == CurrencyPoints || c == CurrencyRealMoney
}

// Category groups catalog items on the storefront
type Category string

const (
	CategoryRank     Category = "rank"
	CategoryPoints   Category = "points"
	CategoryCosmetic Category = "cosmetic"
)

// Categories lists the storefront categories in display order
var Categories = []Category{CategoryRank, CategoryPoints, CategoryCosmetic}

// IsValid reports whether c is a known category
func (c Category) IsValid() bool {
	return c == CategoryRank || c == CategoryPoints || c == CategoryCosmetic
}

// Reward is what the buyer receives once a purchase is confirmed
type Reward struct {
	Role        Role   `json:"role,omitempty"`
	Points      int64  `json:"points,omitempty"`
	BonusPoints int64  `json:"bonus_points,omitempty"`
	Cosmetic    string `json:"cosmetic,omitempty"`
}

// TotalPoints is the number of points credited by the reward
func (r Reward) TotalPoints() int64 {
	return r.Points + r.BonusPoints
}

// IsEmpty reports whether the reward grants nothing
func (r Reward) IsEmpty() bool {
	return r.Role == "" && r.TotalPoints() == 0 && r.Cosmetic == ""
}

// CatalogItem is a purchasable shop entry
type CatalogItem struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	DescriptionDetails string          `json:"description_details,omitempty"`
	ImageURL           string          `json:"image_url"`
	Price              decimal.Decimal `json:"price"`
	Currency           CurrencyKind    `json:"currency"`
	Category           Category        `json:"category"`
	Place              int             `json:"place"`
	ProcessorProductID string          `json:"processor_product_id,omitempty"`
	Reward             Reward          `json:"reward"`
	Active             bool            `json:"active"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// IsRealMoney reports whether the item is paid through the payment processor
func (c *CatalogItem) IsRealMoney() bool {
	return c.Currency == CurrencyRealMoney
}

// PointsPrice returns the price as a whole number of points
func (c *CatalogItem) PointsPrice() (int64, error) {
	if c.IsRealMoney() {
		return 0, ErrRealMoneyItem
	}
	if !c.Price.IsInteger() || c.Price.IsNegative() {
		return 0, fmt.Errorf("%w: points price must be a non-negative whole number", ErrInvalidInput)
	}
	return c.Price.IntPart(), nil
}

// Validate checks the invariants of a catalog item before it is stored
func (c *CatalogItem) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !c.Currency.IsValid() {
		return fmt.Errorf("%w: unknown currency %q", ErrInvalidInput, c.Currency)
	}
	if !c.Category.IsValid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, c.Category)
	}
	if c.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if c.Currency == CurrencyPoints {
		if _, err := c.PointsPrice(); err != nil {
			return err
		}
	}
	if c.Reward.Role != "" && !c.Reward.Role.IsValid() {
		return fmt.Errorf("%w: %s", ErrUnknownRole, c.Reward.Role)
	}
	if c.Reward.Points < 0 || c.Reward.BonusPoints < 0 {
		return fmt.Errorf("%w: reward points must not be negative", ErrInvalidInput)
	}
	switch c.Category {
	case CategoryRank:
		if c.Reward.Role == "" {
			return fmt.Errorf("%w: rank items must grant a role", ErrInvalidInput)
		}
	case CategoryPoints:
		if c.Reward.TotalPoints() == 0 {
			return fmt.Errorf("%w: points items must grant points", ErrInvalidInput)
		}
	case CategoryCosmetic:
		if c.Reward.Cosmetic == "" {
			return fmt.Errorf("%w: cosmetic items must name a cosmetic", ErrInvalidInput)
		}
	}
	return nil
}

// Snapshot freezes the item as it was at purchase time
func (c *CatalogItem) Snapshot() *ItemSnapshot {
	return &ItemSnapshot{
		ID:                 c.ID,
		Name:               c.Name,
		Description:        c.Description,
		ImageURL:           c.ImageURL,
		Price:              c.Price,
		Currency:           c.Currency,
		Category:           c.Category,
		ProcessorProductID: c.ProcessorProductID,
		Reward:             c.Reward,
	}
}

// ItemSnapshot is the copy of a catalog item embedded in a transaction
type ItemSnapshot struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	ImageURL           string          `json:"image_url"`
	Price              decimal.Decimal `json:"price"`
	Currency           CurrencyKind    `json:"currency"`
	Category           Category        `json:"category"`
	ProcessorProductID string          `json:"processor_product_id,omitempty"`
	Reward             Reward          `json:"reward"`
}
