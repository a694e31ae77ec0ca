package domain

import "github.com/shopspring/decimal"

// StatsWindowDays is the look-back window of the admin dashboard
const StatsWindowDays = 60

// DailyCount is one day of a time series, keyed "d/m"
type DailyCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// AdminStats is the admin dashboard payload
type AdminStats struct {
	TotalAccounts       int              `json:"total_accounts"`
	NewAccounts         int              `json:"new_accounts"`
	RegistrationsPerDay []DailyCount     `json:"registrations_per_day"`
	TransactionsPerDay  []DailyCount     `json:"transactions_per_day"`
	CategoryCounts      map[Category]int `json:"category_counts"`
	Revenue             decimal.Decimal  `json:"revenue"`
	PointsSpent         int64            `json:"points_spent"`
}
