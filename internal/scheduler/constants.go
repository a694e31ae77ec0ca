package scheduler

const (
	LogMsgJobScheduled = "Scheduled periodic job"
	LogMsgTickSkipped  = "Periodic job skipped, worker queue unavailable"
)
