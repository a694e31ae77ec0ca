package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/saofrance/shop-api/internal/database/generated"
	"github.com/saofrance/shop-api/internal/domain"
	"github.com/saofrance/shop-api/internal/repository"
)

// StatsRepository implements repository.Stats for PostgreSQL
type StatsRepository struct {
	q *generated.Queries
}

// NewStatsRepository creates a new StatsRepository
func NewStatsRepository(db *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{q: generated.New(db)}
}

var _ repository.Stats = (*StatsRepository)(nil)

// CountAccounts counts accounts created at or after since; the zero time counts all of them
func (r *StatsRepository) CountAccounts(ctx context.Context, since time.Time) (int, error) {
	n, err := r.q.CountAccountsSince(ctx, since)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToQueryStats, err)
	}
	return int(n), nil
}

// RegistrationsPerDay groups new accounts by UTC day
func (r *StatsRepository) RegistrationsPerDay(ctx context.Context, since time.Time) ([]repository.DayCount, error) {
	rows, err := r.q.RegistrationsPerDay(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryStats, err)
	}
	out := make([]repository.DayCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, repository.DayCount{Day: row.Day.Time, Count: int(row.Count)})
	}
	return out, nil
}

// PurchasesPerDay groups completed purchases by UTC day
func (r *StatsRepository) PurchasesPerDay(ctx context.Context, since time.Time) ([]repository.DayCount, error) {
	rows, err := r.q.PurchasesPerDay(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryStats, err)
	}
	out := make([]repository.DayCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, repository.DayCount{Day: row.Day.Time, Count: int(row.Count)})
	}
	return out, nil
}

// PurchasesPerCategory counts completed purchases by the category frozen in their snapshot
func (r *StatsRepository) PurchasesPerCategory(ctx context.Context, since time.Time) (map[domain.Category]int, error) {
	rows, err := r.q.PurchasesPerCategory(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryStats, err)
	}
	counts := make(map[domain.Category]int, len(rows))
	for _, row := range rows {
		counts[domain.Category(row.Category)] = int(row.Count)
	}
	return counts, nil
}

// Revenue sums real-money purchases
func (r *StatsRepository) Revenue(ctx context.Context, since time.Time) (decimal.Decimal, error) {
	total, err := r.q.RevenueSince(ctx, since)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", ErrMsgFailedToQueryStats, err)
	}
	return parseDecimal(total)
}

// PointsSpent sums points purchases
func (r *StatsRepository) PointsSpent(ctx context.Context, since time.Time) (int64, error) {
	total, err := r.q.PointsSpentSince(ctx, since)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToQueryStats, err)
	}
	return total, nil
}
