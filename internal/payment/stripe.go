package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/saofrance/shop-api/internal/domain"
)

// StripeProcessor implements Processor against the Stripe API
type StripeProcessor struct {
	api      *client.API
	currency string
}

// NewStripeProcessor creates a processor using the given secret key.
// backends may be nil to use the default Stripe endpoints.
func NewStripeProcessor(secretKey, currency string, backends *stripe.Backends) *StripeProcessor {
	return &StripeProcessor{
		api:      client.New(secretKey, backends),
		currency: currency,
	}
}

func (p *StripeProcessor) ListProducts(ctx context.Context) ([]Product, error) {
	params := &stripe.ProductListParams{Active: stripe.Bool(true)}
	params.Context = ctx
	params.Filters.AddFilter("limit", "", ListLimit)

	var out []Product
	it := p.api.Products.List(params)
	for it.Next() {
		out = append(out, productFromStripe(it.Product()))
	}
	if err := it.Err(); err != nil {
		return nil, upstream("list products", err)
	}
	return out, nil
}

func (p *StripeProcessor) ListActivePrices(ctx context.Context) ([]Price, error) {
	params := &stripe.PriceListParams{Active: stripe.Bool(true)}
	if p.currency != "" {
		params.Currency = stripe.String(p.currency)
	}
	params.Context = ctx
	params.Filters.AddFilter("limit", "", ListLimit)

	var out []Price
	it := p.api.Prices.List(params)
	for it.Next() {
		out = append(out, priceFromStripe(it.Price()))
	}
	if err := it.Err(); err != nil {
		return nil, upstream("list prices", err)
	}
	return out, nil
}

func (p *StripeProcessor) GetPrice(ctx context.Context, id string) (*Price, error) {
	params := &stripe.PriceParams{}
	params.Context = ctx
	sp, err := p.api.Prices.Get(id, params)
	if err != nil {
		return nil, upstream("get price", err)
	}
	price := priceFromStripe(sp)
	return &price, nil
}

func (p *StripeProcessor) GetProduct(ctx context.Context, id string) (*Product, error) {
	params := &stripe.ProductParams{}
	params.Context = ctx
	sp, err := p.api.Products.Get(id, params)
	if err != nil {
		return nil, upstream("get product", err)
	}
	product := productFromStripe(sp)
	return &product, nil
}

func (p *StripeProcessor) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			Price:    stripe.String(req.PriceID),
			Quantity: stripe.Int64(1),
		}},
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	params.Context = ctx

	s, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, upstream("create checkout session", err)
	}
	return sessionFromStripe(s), nil
}

func (p *StripeProcessor) GetCheckoutSession(ctx context.Context, id string) (*CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	s, err := p.api.CheckoutSessions.Get(id, params)
	if err != nil {
		return nil, upstream("get checkout session", err)
	}
	return sessionFromStripe(s), nil
}

func upstream(op string, err error) error {
	return fmt.Errorf("%w: stripe %s: %v", domain.ErrUpstreamFailure, op, err)
}

func productFromStripe(sp *stripe.Product) Product {
	p := Product{
		ID:          sp.ID,
		Name:        sp.Name,
		Description: sp.Description,
		Images:      sp.Images,
		Active:      sp.Active,
	}
	if sp.DefaultPrice != nil {
		p.DefaultPriceID = sp.DefaultPrice.ID
	}
	return p
}

func priceFromStripe(sp *stripe.Price) Price {
	p := Price{
		ID:         sp.ID,
		UnitAmount: sp.UnitAmount,
		Currency:   string(sp.Currency),
		Active:     sp.Active,
	}
	if sp.Product != nil {
		p.ProductID = sp.Product.ID
	}
	return p
}

func sessionFromStripe(s *stripe.CheckoutSession) *CheckoutSession {
	return &CheckoutSession{
		ID:          s.ID,
		URL:         s.URL,
		Paid:        s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		AmountTotal: s.AmountTotal,
		Currency:    string(s.Currency),
		Metadata:    s.Metadata,
	}
}
