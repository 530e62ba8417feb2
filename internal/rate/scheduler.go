package rate

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

const defaultReportInterval = time.Hour

type Reporter interface {
	Report(ctx context.Context, w io.Writer) error
}

// Scheduler prints a fresh report on a fixed interval, starting right away.
// It is started at most once.
type Scheduler struct {
	reporter Reporter
	out      io.Writer
	interval time.Duration
	clock    clockwork.Clock
	// -----
	mu       sync.Mutex
	sched    gocron.Scheduler
	stopOnce sync.Once
	stopErr  error
}

func (s *Scheduler) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler(gocron.WithClock(s.clock))
	if err != nil {
		return err
	}

	job := func(jobCtx context.Context) {
		execID := uuid.NewString()
		if reportErr := s.reporter.Report(WithExecID(jobCtx, execID), s.out); reportErr != nil {
			logrus.WithField("exec_id", execID).Errorf("Report job failed: %v", reportErr)
		}
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(job),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return err
	}

	s.mu.Lock()
	s.sched = scheduler
	s.mu.Unlock()
	scheduler.Start()
	logrus.Infof("Report scheduled every %s", s.interval)

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := s.Shutdown(); sdErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", sdErr)
		}
	}()
	return nil
}

// Shutdown stops the scheduler and waits for a running report.
// Concurrent and repeated calls all return once that first shutdown is done.
func (s *Scheduler) Shutdown() error {
	s.mu.Lock()
	sched := s.sched
	s.mu.Unlock()

	if sched == nil {
		return nil
	}
	s.stopOnce.Do(func() {
		s.stopErr = sched.Shutdown()
		s.mu.Lock()
		s.sched = nil
		s.mu.Unlock()
	})
	return s.stopErr
}

func (s *Scheduler) running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sched != nil
}

func NewScheduler(reporter Reporter, out io.Writer, interval time.Duration, clock clockwork.Clock) *Scheduler {
	if interval <= 0 {
		interval = defaultReportInterval
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Scheduler{reporter: reporter, out: out, interval: interval, clock: clock}
}
