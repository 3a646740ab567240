package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"avialog/backend/internal/metrics"
	"avialog/backend/internal/services"

	"golang.org/x/sync/errgroup"
)

// UserTotalsJob recomputes every user's denormalized flight totals from the
// flight store. The write path refreshes totals eagerly; this job converges
// users whose eager refresh was lost to a store outage.
type UserTotalsJob struct {
	flights services.FlightStore
	users   services.UserStore
	metrics *metrics.MetricsRegistry
}

func NewUserTotalsJob(flights services.FlightStore, users services.UserStore, metricsReg *metrics.MetricsRegistry) *UserTotalsJob {
	return &UserTotalsJob{
		flights: flights,
		users:   users,
		metrics: metricsReg,
	}
}

// Run reconciles totals for all users once.
func (j *UserTotalsJob) Run(ctx context.Context) error {
	start := time.Now()
	log.Printf("[UserTotalsJob] Starting totals reconcile at %s", start.Format(time.RFC3339))

	ids, err := j.users.ListUserIDs(ctx)
	if err != nil {
		log.Printf("[UserTotalsJob] Error listing users: %v", err)
		return fmt.Errorf("failed to list users: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, id := range ids {
		id := id
		g.Go(func() error {
			totals, err := j.flights.GetUserTotals(gctx, id)
			if err != nil {
				log.Printf("[UserTotalsJob] Error computing totals for user %s: %v", id, err)
				// Keep reconciling the remaining users.
				return nil
			}
			if err := j.users.UpdateTotals(gctx, id, totals.TotalFlights, totals.TotalAirTime); err != nil {
				log.Printf("[UserTotalsJob] Error storing totals for user %s: %v", id, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	elapsed := time.Since(start)
	if j.metrics != nil {
		j.metrics.ReconcileDuration.Observe(elapsed.Seconds())
	}
	log.Printf("[UserTotalsJob] Completed totals reconcile for %d users in %s",
		len(ids), elapsed.Truncate(time.Millisecond))

	return nil
}

// RunScheduled runs the reconcile on a fixed interval until ctx is done.
func (j *UserTotalsJob) RunScheduled(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("[UserTotalsJob] Stopping scheduled reconcile")
			return
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				log.Printf("[UserTotalsJob] Scheduled run failed: %v", err)
			}
		}
	}
}
