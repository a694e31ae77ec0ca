// Package stats computes the admin dashboard aggregates.
package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/saofrance/shop-api/internal/domain"
	"github.com/saofrance/shop-api/internal/logger"
	"github.com/saofrance/shop-api/internal/repository"
)

// Service defines the interface for stats operations
type Service interface {
	AdminStats(ctx context.Context) (*domain.AdminStats, error)
}

// service implements the Service interface
type service struct {
	repo repository.Stats
	now  func() time.Time
}

// NewService creates a new stats service
func NewService(repo repository.Stats) Service {
	return &service{
		repo: repo,
		now:  time.Now,
	}
}

// AdminStats covers today and the StatsWindowDays days before it. Days with no
// activity appear with a zero count so the series is continuous.
func (s *service) AdminStats(ctx context.Context) (*domain.AdminStats, error) {
	today := startOfDay(s.now())
	since := today.AddDate(0, 0, -domain.StatsWindowDays)

	total, err := s.repo.CountAccounts(ctx, time.Time{})
	if err != nil {
		return nil, fmt.Errorf(ErrMsgQueryFailed, "total accounts", err)
	}
	recent, err := s.repo.CountAccounts(ctx, since)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgQueryFailed, "new accounts", err)
	}
	registrations, err := s.repo.RegistrationsPerDay(ctx, since)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgQueryFailed, "registrations", err)
	}
	purchases, err := s.repo.PurchasesPerDay(ctx, since)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgQueryFailed, "purchases", err)
	}
	categories, err := s.repo.PurchasesPerCategory(ctx, since)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgQueryFailed, "categories", err)
	}
	revenue, err := s.repo.Revenue(ctx, since)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgQueryFailed, "revenue", err)
	}
	spent, err := s.repo.PointsSpent(ctx, since)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgQueryFailed, "points spent", err)
	}

	// every category is reported, even without purchases
	counts := make(map[domain.Category]int, len(domain.Categories))
	for _, c := range domain.Categories {
		counts[c] = categories[c]
	}

	stats := &domain.AdminStats{
		TotalAccounts:       total,
		NewAccounts:         recent,
		RegistrationsPerDay: fillDays(since, today, registrations),
		TransactionsPerDay:  fillDays(since, today, purchases),
		CategoryCounts:      counts,
		Revenue:             revenue,
		PointsSpent:         spent,
	}
	logger.FromContext(ctx).Debug(LogMsgStatsComputed, "total_accounts", total, "new_accounts", recent)
	return stats, nil
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// fillDays turns sparse per-day counts into one entry per day from first to last inclusive
func fillDays(first, last time.Time, counts []repository.DayCount) []domain.DailyCount {
	byDay := make(map[time.Time]int, len(counts))
	for _, c := range counts {
		byDay[startOfDay(c.Day)] += c.Count
	}
	var out []domain.DailyCount
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		out = append(out, domain.DailyCount{
			Day:   DayKey(day),
			Count: byDay[day],
		})
	}
	return out
}

// DayKey formats a day as "d/m"
func DayKey(t time.Time) string {
	return fmt.Sprintf(DayKeyFormat, t.Day(), int(t.Month()))
}
