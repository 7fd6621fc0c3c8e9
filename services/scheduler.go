package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// StartReconcileScheduler runs VerifyAll every interval until the returned
// scheduler is shut down. It only reads; it never corrects a balance.
func (s *ReconcileService) StartReconcileScheduler(ctx context.Context, interval time.Duration) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("new scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			mismatches, err := s.VerifyAll(ctx)
			if err != nil {
				zap.L().Error("[Scheduler] reconciliation failed", zap.Error(err))
				return
			}
			if len(mismatches) == 0 {
				zap.L().Debug("[Scheduler] all balances reconcile")
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, fmt.Errorf("schedule reconciliation: %w", err)
	}

	sched.Start()
	zap.L().Info("[Scheduler] reconciliation scheduled", zap.Duration("interval", interval))
	return sched, nil
}
