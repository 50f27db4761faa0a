package jobs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QuilGrafit/astroX/internal/domain"
	"github.com/QuilGrafit/astroX/internal/ports/service"
)

type fakeJob struct {
	mu       sync.Mutex
	runs     int
	failures int // сколько первых запусков завершаются ошибкой
	planned  int
}

func (j *fakeJob) Name() string { return "fake" }

// NextRun первый запуск сразу, дальше далеко в будущем
func (j *fakeJob) NextRun(now time.Time) time.Time {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.planned++
	if j.planned == 1 {
		return now
	}
	return now.Add(time.Hour)
}

func (j *fakeJob) Run(context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.runs++
	if j.runs <= j.failures {
		return fmt.Errorf("run %d failed", j.runs)
	}
	return nil
}

type chanAlerter struct {
	alerts chan string
}

func (a *chanAlerter) SendAlert(_ context.Context, message string) error {
	a.alerts <- message
	return nil
}

func newTestScheduler(alerter service.IAlerterService) *Scheduler {
	s := NewScheduler(slog.New(slog.NewTextHandler(io.Discard, nil)), alerter)
	s.retries = []time.Duration{time.Millisecond, time.Millisecond}
	return s
}

func TestRunWithRetry_RecoversAfterFailures(t *testing.T) {
	s := newTestScheduler(nil)
	job := &fakeJob{failures: 2}

	attempts, err := s.runWithRetry(context.Background(), job)
	require.NoError(t, err)
	assert.Nil(t, attempts)
	assert.Equal(t, 3, job.runs)
}

func TestRunWithRetry_AllAttemptsFail(t *testing.T) {
	s := newTestScheduler(nil)
	job := &fakeJob{failures: 10}

	attempts, err := s.runWithRetry(context.Background(), job)
	require.Error(t, err)
	require.Len(t, attempts, 3)
	assert.Equal(t, 3, attempts[2].attempt)
	assert.Equal(t, 3, job.runs)
}

func TestRunWithRetry_StopsOnCancel(t *testing.T) {
	s := NewScheduler(slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
	job := &fakeJob{failures: 10}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts, err := s.runWithRetry(ctx, job)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, attempts, 1)
}

func TestScheduler_AlertsAfterRetriesAndStops(t *testing.T) {
	alerter := &chanAlerter{alerts: make(chan string, 1)}
	s := newTestScheduler(alerter)
	s.Register(&fakeJob{failures: 10})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	select {
	case msg := <-alerter.alerts:
		assert.Contains(t, msg, "Задача fake не выполнилась")
		assert.Contains(t, msg, "Попытка 3: run 3 failed")
	case <-time.After(2 * time.Second):
		t.Fatal("alert was not sent")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestScheduler_NoJobs(t *testing.T) {
	s := newTestScheduler(nil)
	assert.NoError(t, s.Start(context.Background()))
}

type fakeBroadcaster struct {
	calls int
	err   error
}

func (b *fakeBroadcaster) RunBroadcast(context.Context) (domain.BroadcastResult, error) {
	b.calls++
	return domain.BroadcastResult{Sent: 1}, b.err
}

func TestDailyBroadcast_NextRun(t *testing.T) {
	moscow := time.FixedZone("MSK", 3*60*60)
	job := NewDailyBroadcast(&fakeBroadcaster{}, 9, moscow, slog.Default())

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "before hour",
			now:  time.Date(2024, 3, 15, 5, 0, 0, 0, time.UTC), // 08:00 MSK
			want: time.Date(2024, 3, 15, 9, 0, 0, 0, moscow),
		},
		{
			name: "exactly at hour",
			now:  time.Date(2024, 3, 15, 6, 0, 0, 0, time.UTC), // 09:00 MSK
			want: time.Date(2024, 3, 16, 9, 0, 0, 0, moscow),
		},
		{
			name: "after hour",
			now:  time.Date(2024, 3, 15, 22, 30, 0, 0, time.UTC), // 01:30 MSK следующего дня
			want: time.Date(2024, 3, 16, 9, 0, 0, 0, moscow),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := job.NextRun(tt.now)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestDailyBroadcast_Run(t *testing.T) {
	b := &fakeBroadcaster{}
	job := NewDailyBroadcast(b, 9, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	assert.Equal(t, "daily-broadcast", job.Name())
	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, 1, b.calls)

	b.err = errors.New("list failed")
	assert.Error(t, job.Run(context.Background()))
}
