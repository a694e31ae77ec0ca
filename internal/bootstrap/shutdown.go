package bootstrap

import (
	"context"
	"log/slog"
)

// GracefulShutdown stops the application in dependency order:
// 1. HTTP server (stop accepting new requests)
// 2. Scheduler (no new reconciliation runs)
// 3. Worker pool (drain queued notifications and jobs)
// 4. Database pool
//
// Errors are logged but do not stop the sequence.
func GracefulShutdown(ctx context.Context, app *App) {
	slog.Info(LogMsgShuttingDownServer)
	if err := app.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	slog.Info(LogMsgStoppingScheduler)
	app.Scheduler.Stop()

	slog.Info(LogMsgDrainingWorkers)
	if err := app.WorkerPool.Stop(ctx); err != nil {
		slog.Error(LogMsgWorkerDrainIncomplete, "error", err)
	}

	app.DBPool.Close()
	slog.Info(LogMsgServerStopped)
}
