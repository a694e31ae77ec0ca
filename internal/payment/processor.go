package payment

import (
	"context"

	"github.com/shopspring/decimal"
)

// Product is a payment processor product
type Product struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	Images         []string `json:"images,omitempty"`
	Active         bool     `json:"active"`
	DefaultPriceID string   `json:"default_price,omitempty"`
}

// Price is a payment processor price in the smallest currency unit
type Price struct {
	ID         string `json:"id"`
	ProductID  string `json:"product"`
	UnitAmount int64  `json:"unit_amount"`
	Currency   string `json:"currency"`
	Active     bool   `json:"active"`
}

// Amount converts the unit amount to a decimal in major units
func (p Price) Amount() decimal.Decimal {
	return MinorToDecimal(p.UnitAmount)
}

// CheckoutRequest describes a hosted checkout session to open
type CheckoutRequest struct {
	PriceID       string
	SuccessURL    string
	CancelURL     string
	CustomerEmail string
	Metadata      map[string]string
}

// CheckoutSession is the processor view of a checkout
type CheckoutSession struct {
	ID          string
	URL         string
	Paid        bool
	AmountTotal int64
	Currency    string
	Metadata    map[string]string
}

// Processor is the external payment processor
type Processor interface {
	ListProducts(ctx context.Context) ([]Product, error)
	ListActivePrices(ctx context.Context) ([]Price, error)
	GetPrice(ctx context.Context, id string) (*Price, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, id string) (*CheckoutSession, error)
}

// MinorToDecimal converts cents to a two-decimal amount
func MinorToDecimal(minor int64) decimal.Decimal {
	return decimal.New(minor, -MinorUnitExponent)
}
