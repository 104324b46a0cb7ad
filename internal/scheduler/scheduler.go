package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/kiteflow/internal/weather"
)

const runTimeout = 30 * time.Second

// Loader is the part of the pipeline the scheduler drives.
type Loader interface {
	Load(ctx context.Context, req weather.LoadRequest) (weather.LoadResult, error)
}

// Scheduler periodically reloads the current location so the dashboard
// stays fresh without a user trigger.
type Scheduler struct {
	scheduler *gocron.Scheduler
	loader    Loader
	interval  time.Duration
	logger    *slog.Logger
}

// New creates a new Scheduler. Intervals under a minute are raised to 15m.
func New(loader Loader, interval time.Duration, logger *slog.Logger) *Scheduler {
	if interval < time.Minute {
		interval = 15 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		loader:    loader,
		interval:  interval,
		logger:    logger.With("component", "scheduler"),
	}
}

// Start schedules the refresh job and starts the underlying scheduler. The
// first run happens immediately and doubles as the initial load.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(s.interval).StartImmediately().Do(s.refresh)
	if err != nil {
		return err
	}
	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	res, err := s.loader.Load(ctx, weather.LoadRequest{})
	if err != nil {
		s.logger.Error("refresh failed", "error", err)
		return
	}
	s.logger.Info("refresh completed",
		"seq", res.State.Seq,
		"location", res.State.Location.Name,
		"superseded", res.Superseded,
	)
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
