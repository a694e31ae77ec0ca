package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Account Metrics
var (
	AccountsRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameAccountsRegistered,
			Help: HelpTextAccountsRegistered,
		},
	)

	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLoginAttempts,
			Help: HelpTextLoginAttempts,
		},
		[]string{LabelOutcome},
	)

	IdentityLinks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameIdentityLinks,
			Help: HelpTextIdentityLinks,
		},
		[]string{LabelResult},
	)
)

// Shop Metrics
var (
	PointsPurchases = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePointsPurchases,
			Help: HelpTextPointsPurchases,
		},
		[]string{LabelCategory},
	)

	PointsSpent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePointsSpent,
			Help: HelpTextPointsSpent,
		},
	)

	PaymentsConfirmed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePaymentsConfirmed,
			Help: HelpTextPaymentsConfirmed,
		},
		[]string{LabelCategory},
	)

	Revenue = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRevenue,
			Help: HelpTextRevenue,
		},
	)

	BalanceAdjustments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBalanceAdjustments,
			Help: HelpTextBalanceAdjustments,
		},
		[]string{LabelDirection},
	)

	PriceUpdates = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePriceUpdates,
			Help: HelpTextPriceUpdates,
		},
	)
)

// Background Metrics
var (
	Notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameNotifications,
			Help: HelpTextNotifications,
		},
		[]string{LabelChannel, LabelOutcome},
	)

	BackgroundJobsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameBackgroundJobsFailed,
			Help: HelpTextBackgroundJobsFailed,
		},
	)
)
