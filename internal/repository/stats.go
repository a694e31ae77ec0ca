package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/saofrance/shop-api/internal/domain"
)

// DayCount is the number of rows created on one calendar day (UTC)
type DayCount struct {
	Day   time.Time
	Count int
}

// Stats defines the aggregate queries behind the admin dashboard
type Stats interface {
	CountAccounts(ctx context.Context, since time.Time) (int, error)
	RegistrationsPerDay(ctx context.Context, since time.Time) ([]DayCount, error)
	PurchasesPerDay(ctx context.Context, since time.Time) ([]DayCount, error)
	PurchasesPerCategory(ctx context.Context, since time.Time) (map[domain.Category]int, error)
	Revenue(ctx context.Context, since time.Time) (decimal.Decimal, error)
	PointsSpent(ctx context.Context, since time.Time) (int64, error)
}
