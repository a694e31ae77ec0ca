package stats

// DayKeyFormat renders a day as "d/m" without zero padding
const DayKeyFormat = "%d/%d"

// Log messages
const (
	LogMsgStatsComputed = "Admin statistics computed"
)

// Error messages
const (
	ErrMsgQueryFailed = "failed to compute %s: %w"
)
