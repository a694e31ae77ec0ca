package payment

import (
	"context"
	"fmt"

	"github.com/saofrance/shop-api/internal/catalog"
	"github.com/saofrance/shop-api/internal/logger"
	"github.com/saofrance/shop-api/internal/metrics"
)

// Reconciler aligns stored real-money prices with the processor.
// It implements worker.Job and runs on the scheduler.
type Reconciler struct {
	processor Processor
	catalog   catalog.Service
}

// NewReconciler creates the price reconciliation job
func NewReconciler(processor Processor, catalog catalog.Service) *Reconciler {
	return &Reconciler{processor: processor, catalog: catalog}
}

// Process compares every linked item with the active unit price of its product
// and overwrites the stored price on mismatch. It returns the first failure after
// trying every item.
func (r *Reconciler) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgReconcileStarted)

	prices, err := r.processor.ListActivePrices(ctx)
	if err != nil {
		return fmt.Errorf("price reconciliation: %w", err)
	}
	products, err := r.processor.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("price reconciliation: %w", err)
	}

	defaults := make(map[string]string, len(products))
	for _, p := range products {
		defaults[p.ID] = p.DefaultPriceID
	}
	byProduct := make(map[string]Price, len(prices))
	for _, p := range prices {
		// the product's default price wins over other active prices
		if existing, ok := byProduct[p.ProductID]; ok && existing.ID == defaults[p.ProductID] {
			continue
		}
		byProduct[p.ProductID] = p
	}

	items, err := r.catalog.ListLinked(ctx)
	if err != nil {
		return fmt.Errorf("price reconciliation: %w", err)
	}

	var firstErr error
	updated := 0
	for _, item := range items {
		price, ok := byProduct[item.ProcessorProductID]
		if !ok {
			continue
		}
		amount := price.Amount()
		if amount.Equal(item.Price) {
			continue
		}
		log.Info(LogMsgPriceDrift,
			"item_id", item.ID,
			"stored", item.Price.String(),
			"processor", amount.String())
		if _, err := r.catalog.UpdatePrice(ctx, item.ID, amount); err != nil {
			log.Error(LogMsgReconcileItemFailed, "item_id", item.ID, "error", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		metrics.PriceUpdates.Inc()
		updated++
	}

	log.Info(LogMsgReconcileCompleted, "items", len(items), "updated", updated)
	return firstErr
}
