package reload

import (
	"context"
	"log/slog"
	"time"

	dErrors "facilities/pkg/domain-errors"
)

// Scheduler runs pull passes on a fixed interval and on demand.
type Scheduler struct {
	service  *Service
	interval time.Duration
	trigger  chan struct{}
	logger   *slog.Logger
}

// NewScheduler creates a scheduler for service. Run returns immediately when
// interval is not positive.
func NewScheduler(service *Service, interval time.Duration, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		service:  service,
		interval: interval,
		trigger:  make(chan struct{}, 1),
		logger:   logger,
	}
}

// Trigger requests a pass outside the regular interval. Requests made while
// one is already queued are coalesced.
func (s *Scheduler) Trigger() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// Run drives passes until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	if s.interval <= 0 {
		s.logger.InfoContext(ctx, "reload scheduler disabled")
		return nil
	}
	s.logger.InfoContext(ctx, "reload scheduler started", "interval", s.interval.String())

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "reload scheduler stopping")
			return nil
		case <-s.trigger:
			s.runOnce(ctx)
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	_, err := s.service.run(ctx, triggerScheduled, s.service.collector.CollectFacilities)
	if err == nil {
		return
	}
	if dErrors.HasCode(err, dErrors.CodeConflict) {
		s.logger.InfoContext(ctx, "scheduled reload skipped: a pass is already running")
		return
	}
	// The pass itself has already logged the failure details.
	s.logger.WarnContext(ctx, "scheduled reload failed", "error", err)
}
