package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/DonArtkins/kuja-twende-adventures/internal/config"
)

// Completer closes out bookings whose travel date has passed.
type Completer interface {
	CompleteElapsed(ctx context.Context, now time.Time) (int, error)
}

type Scheduler struct {
	cron      *cron.Cron
	completer Completer
	cfg       config.JobsConfig
	log       zerolog.Logger
	now       func() time.Time
}

func NewScheduler(completer Completer, cfg config.JobsConfig, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithSeconds()),
		completer: completer,
		cfg:       cfg,
		log:       log,
		now:       time.Now,
	}
}

// Start registers the enabled jobs. It is a no-op when nothing is enabled.
func (s *Scheduler) Start() error {
	if !s.cfg.CompletionSweep || s.completer == nil {
		s.log.Info().Msg("booking completion sweep disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.cfg.CompletionSchedule, s.RunCompletionSweep); err != nil {
		return fmt.Errorf("schedule completion sweep %q: %w", s.cfg.CompletionSchedule, err)
	}

	s.cron.Start()
	s.log.Info().Str("schedule", s.cfg.CompletionSchedule).Msg("scheduler started")
	return nil
}

// Stop waits up to five seconds for running jobs to finish.
func (s *Scheduler) Stop() {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-time.After(5 * time.Second):
		s.log.Warn().Msg("scheduler stop timed out")
	}
}

func (s *Scheduler) RunCompletionSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	count, err := s.completer.CompleteElapsed(ctx, s.now())
	if err != nil {
		s.log.Error().Err(err).Msg("completion sweep failed")
		return
	}
	if count > 0 {
		s.log.Info().Int("completed", count).Msg("bookings marked completed")
	}
}
