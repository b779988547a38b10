package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/amterp/dairy/internal/config"
	"github.com/amterp/dairy/internal/service"
)

// Aggregator totals one day of milk.
type Aggregator interface {
	Aggregate(date string, pricePerLiter float64) (service.Aggregation, error)
}

// Guard runs fn exclusively with other store work. A nil Guard runs fn
// directly.
type Guard func(fn func() error) error

// Scheduler runs the daily milk aggregation on a cron schedule.
type Scheduler struct {
	cron     *cron.Cron
	milk     Aggregator
	settings *config.Settings
	guard    Guard
	logger   *zap.Logger
	now      func() time.Time
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(settings *config.Settings, milk Aggregator, guard Guard, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if guard == nil {
		guard = func(fn func() error) error { return fn() }
	}

	// Standard 5-field cron expressions (min, hour, dom, month, dow).
	return &Scheduler{
		cron:     cron.New(),
		milk:     milk,
		settings: settings,
		guard:    guard,
		logger:   logger,
		now:      time.Now,
	}
}

// Enabled reports whether a schedule and a positive price are configured.
func (s *Scheduler) Enabled() bool {
	return s.settings.AggregateCron != "" && s.settings.PricePerLiter > 0
}

// Start schedules the aggregation and starts the cron runner. It does
// nothing when the schedule is disabled.
func (s *Scheduler) Start() error {
	if !s.Enabled() {
		s.logger.Info("daily aggregation disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(s.settings.AggregateCron, s.aggregateToday); err != nil {
		return fmt.Errorf("invalid aggregate_cron %q: %w", s.settings.AggregateCron, err)
	}

	s.logger.Info("starting scheduler", zap.String("schedule", s.settings.AggregateCron))
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running aggregation to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

// RunOnce aggregates today's milk immediately.
func (s *Scheduler) RunOnce() (service.Aggregation, error) {
	date := s.now().Format(s.settings.DateLayout)

	var result service.Aggregation
	err := s.guard(func() (err error) {
		result, err = s.milk.Aggregate(date, s.settings.PricePerLiter)
		return err
	})
	return result, err
}

func (s *Scheduler) aggregateToday() {
	result, err := s.RunOnce()
	if err != nil {
		s.logger.Error("daily aggregation failed", zap.Error(err))
		return
	}
	s.logger.Info("daily aggregation finished",
		zap.String("date", result.Summary.Date),
		zap.Bool("appended", result.Appended),
		zap.Float64("total_liters", result.Summary.TotalLiters))
}
