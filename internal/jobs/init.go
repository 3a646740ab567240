package jobs

import (
	"context"
	"time"

	"avialog/backend/internal/metrics"
	"avialog/backend/internal/services"
)

// InitializeJobs initializes and starts all background jobs
func InitializeJobs(
	ctx context.Context,
	flights services.FlightStore,
	users services.UserStore,
	metricsReg *metrics.MetricsRegistry,
) *UserTotalsJob {
	totalsJob := NewUserTotalsJob(flights, users, metricsReg)

	// Reconcile denormalized user totals every hour
	go totalsJob.RunScheduled(ctx, 1*time.Hour)

	return totalsJob
}
