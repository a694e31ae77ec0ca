package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Business metric names
const (
	MetricNameAccountsRegistered   = "shop_accounts_registered_total"
	MetricNameLoginAttempts        = "shop_login_attempts_total"
	MetricNamePointsPurchases      = "shop_points_purchases_total"
	MetricNamePointsSpent          = "shop_points_spent_total"
	MetricNamePaymentsConfirmed    = "shop_payments_confirmed_total"
	MetricNameRevenue              = "shop_revenue_total"
	MetricNameBalanceAdjustments   = "shop_balance_adjustments_total"
	MetricNamePriceUpdates         = "shop_price_updates_total"
	MetricNameIdentityLinks        = "shop_identity_links_total"
	MetricNameNotifications        = "shop_notifications_total"
	MetricNameBackgroundJobsFailed = "shop_background_jobs_failed_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Business metric help text
const (
	HelpTextAccountsRegistered   = "Total number of accounts registered"
	HelpTextLoginAttempts        = "Total number of login attempts by outcome"
	HelpTextPointsPurchases      = "Total number of catalog items bought with points"
	HelpTextPointsSpent          = "Total points debited by purchases"
	HelpTextPaymentsConfirmed    = "Total number of real-money payments recorded"
	HelpTextRevenue              = "Total real-money revenue recorded, in the payment currency"
	HelpTextBalanceAdjustments   = "Total number of administrative balance adjustments by direction"
	HelpTextPriceUpdates         = "Total number of catalog prices overwritten by reconciliation"
	HelpTextIdentityLinks        = "Total number of game identity link attempts by result"
	HelpTextNotifications        = "Total number of notifications by channel and outcome"
	HelpTextBackgroundJobsFailed = "Total number of background jobs that returned an error"
)

// ============================================================================
// Metric Label Names and Values
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelOutcome   = "outcome"
	LabelCategory  = "category"
	LabelDirection = "direction"
	LabelChannel   = "channel"
	LabelResult    = "result"
)

// Label values
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"

	ChannelMail      = "mail"
	ChannelStaffFeed = "staff_feed"
	DirectionGrant   = "grant"
	DirectionRevoke  = "revoke"
	ResultLinked     = "linked"
	ResultNoGame     = "no_game"
	ResultError      = "error"
	UnmatchedRoute   = "unmatched"
)

// HTTPLatencyBuckets are the histogram buckets of request latency in seconds
var HTTPLatencyBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}
