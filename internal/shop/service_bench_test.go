package shop

import (
	"context"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/saofrance/shop-api/internal/domain"
)

// Compare runs with: go test -run=^$ -bench=. -count=10 ./internal/shop | benchstat -
func BenchmarkPurchaseWithPoints(b *testing.B) {
	f := newFixture(math.MaxInt64/2, true)
	f.catalog.On("GetItem", mock.Anything, "hat").Return(&domain.CatalogItem{
		ID: "hat", Name: "Hat", Price: decimal.NewFromInt(1),
		Currency: domain.CurrencyPoints, Category: domain.CategoryCosmetic,
		Reward: domain.Reward{Cosmetic: "hat"}, Active: true,
	}, nil)
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := f.svc.PurchaseWithPoints(ctx, "acc-1", "hat"); err != nil {
			b.Fatal(err)
		}
	}
}
