package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/QuilGrafit/astroX/internal/ports/jobs"
	"github.com/QuilGrafit/astroX/internal/ports/service"
)

// паузы между попытками одного запуска
var defaultRetries = []time.Duration{time.Minute, 10 * time.Minute, 30 * time.Minute}

// Scheduler крутит каждую задачу в своей горутине: ждёт NextRun, запускает, при ошибке повторяет
type Scheduler struct {
	jobs    []jobs.Job
	alerter service.IAlerterService // может быть nil
	retries []time.Duration
	now     func() time.Time
	log     *slog.Logger
}

func NewScheduler(log *slog.Logger, alerter service.IAlerterService) *Scheduler {
	return &Scheduler{
		alerter: alerter,
		retries: defaultRetries,
		now:     time.Now,
		log:     log,
	}
}

func (s *Scheduler) Register(job jobs.Job) {
	s.jobs = append(s.jobs, job)
}

// Start блокируется, пока ctx не отменён
func (s *Scheduler) Start(ctx context.Context) error {
	if len(s.jobs) == 0 {
		s.log.Info("scheduler has no jobs")
		return nil
	}

	var wg sync.WaitGroup
	for _, job := range s.jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.loop(ctx, job)
		}()
	}
	wg.Wait()
	return nil
}

func (s *Scheduler) loop(ctx context.Context, job jobs.Job) {
	log := s.log.With("job", job.Name())

	for {
		next := job.NextRun(s.now())
		log.Info("job scheduled", "next_run", next)
		if err := sleepUntil(ctx, next, s.now); err != nil {
			return
		}

		failures, err := s.runWithRetry(ctx, job)
		switch {
		case ctx.Err() != nil:
			return
		case err != nil:
			log.Error("job failed, retries exhausted", "attempts", len(failures), "error", err)
			s.alert(ctx, job.Name(), failures)
		default:
			log.Info("job finished")
		}
	}
}

// attemptError ошибка одной попытки запуска
type attemptError struct {
	attempt int
	err     error
}

// runWithRetry nil-ошибка - задача отработала; иначе ошибки всех сделанных попыток
func (s *Scheduler) runWithRetry(ctx context.Context, job jobs.Job) ([]attemptError, error) {
	var failures []attemptError

	for attempt := 1; ; attempt++ {
		err := job.Run(ctx)
		if err == nil {
			return nil, nil
		}
		failures = append(failures, attemptError{attempt: attempt, err: err})

		if attempt > len(s.retries) {
			return failures, fmt.Errorf("%d attempts failed, last: %w", attempt, err)
		}
		s.log.Warn("job attempt failed", "job", job.Name(), "attempt", attempt, "error", err)

		if err := sleepUntil(ctx, s.now().Add(s.retries[attempt-1]), s.now); err != nil {
			return failures, err
		}
	}
}

func (s *Scheduler) alert(ctx context.Context, name string, failures []attemptError) {
	if s.alerter == nil {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "⚠️ Задача %s не выполнилась, попытки исчерпаны\n", name)
	for _, f := range failures {
		fmt.Fprintf(&b, "\nПопытка %d: %v", f.attempt, f.err)
	}

	if err := s.alerter.SendAlert(ctx, b.String()); err != nil {
		s.log.Warn("failed to send job alert", "job", name, "error", err)
	}
}

func sleepUntil(ctx context.Context, at time.Time, now func() time.Time) error {
	d := at.Sub(now())
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
