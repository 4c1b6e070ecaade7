package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"homework_status_bot/internal/app" // For StatusService interface

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// PollScheduler runs StatusService.Poll once at start and then every interval.
// Polls never overlap: a tick that fires while the previous poll is still
// running is skipped.
type PollScheduler struct {
	cronEngine *cron.Cron
	statusSvc  app.StatusService
	logger     *logrus.Entry
	interval   time.Duration
	jobTimeout time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup // first poll, which cron does not track
}

func NewPollScheduler(statusSvc app.StatusService, logger *logrus.Entry, interval, jobTimeout time.Duration) *PollScheduler {
	cronLogger := cron.PrintfLogger(logger)
	ctx, cancel := context.WithCancel(context.Background())
	return &PollScheduler{
		cronEngine: cron.New(
			cron.WithLocation(time.Local),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		statusSvc:  statusSvc,
		logger:     logger,
		interval:   interval,
		jobTimeout: jobTimeout,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start registers the poll job and runs the first poll through the same
// job wrapper, so it is subject to SkipIfStillRunning like every later tick.
func (s *PollScheduler) Start() error {
	s.logger.Infof("Starting poll scheduler, interval %s", s.interval)

	// cron rounds sub-second delays up to one second.
	if s.interval < time.Second {
		return fmt.Errorf("poll interval must be at least 1s, got %s", s.interval)
	}
	spec := fmt.Sprintf("@every %s", s.interval)
	id, err := s.cronEngine.AddFunc(spec, s.runPoll)
	if err != nil {
		return fmt.Errorf("could not add poll job %q: %w", spec, err)
	}

	first := s.cronEngine.Entry(id).WrappedJob
	s.cronEngine.Start()
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		first.Run()
	}()

	s.logger.Info("Poll scheduler started.")
	return nil
}

func (s *PollScheduler) runPoll() {
	ctx, cancel := context.WithTimeout(s.ctx, s.jobTimeout)
	defer cancel()

	start := time.Now()
	err := s.statusSvc.Poll(ctx)
	logCtx := s.logger.WithField("duration", time.Since(start).Round(time.Millisecond))
	if err != nil {
		// Already logged and relayed by the service.
		logCtx.Debug("Poll finished with a fault")
		return
	}
	logCtx.Debug("Poll finished")
}

// Stop cancels an in-flight poll and waits for it to return.
func (s *PollScheduler) Stop() {
	s.logger.Info("Stopping poll scheduler...")
	s.cancel()
	ctx := s.cronEngine.Stop() // Stops the scheduler from adding new jobs, waits for running jobs.
	<-ctx.Done()
	s.wg.Wait()
	s.logger.Info("Poll scheduler gracefully stopped.")
}
