// Package reconcile wires up the cron job that periodically recomputes
// bid_count from the stored bids. Placement itself is transactional; this
// pass corrects drift introduced outside the service (direct row edits,
// restores from backup).
package reconcile

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/farukalways/freelancing-platform-create/internal/repository"

	"github.com/robfig/cron/v3"
)

type Reconciler struct {
	cron   *cron.Cron
	jobs   repository.JobRepository
	spec   string
	logger *log.Logger
}

func New(jobs repository.JobRepository, interval time.Duration, logger *log.Logger) *Reconciler {
	return &Reconciler{
		cron:   cron.New(),
		jobs:   jobs,
		spec:   fmt.Sprintf("@every %s", interval),
		logger: logger,
	}
}

// Start registers the job and starts the scheduler. Runs one pass
// immediately so drift never waits for the first tick.
func (r *Reconciler) Start(ctx context.Context) error {
	_, err := r.cron.AddFunc(r.spec, func() {
		r.runOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	r.cron.Start()
	if r.logger != nil {
		r.logger.Printf("[Reconcile] Cron started | spec=%s", r.spec)
	}

	go r.runOnce(ctx)
	return nil
}

func (r *Reconciler) Stop() {
	r.cron.Stop()
	if r.logger != nil {
		r.logger.Printf("[Reconcile] Cron stopped")
	}
}

func (r *Reconciler) runOnce(ctx context.Context) {
	fixed, err := r.jobs.ReconcileBidCounts(ctx)
	if err != nil {
		if r.logger != nil {
			r.logger.Printf("[Reconcile] bid_count pass error: %v", err)
		}
		return
	}
	if fixed > 0 && r.logger != nil {
		r.logger.Printf("[Reconcile] bid_count corrected | jobs=%d", fixed)
	}
}
