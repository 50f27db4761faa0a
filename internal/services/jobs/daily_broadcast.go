package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/QuilGrafit/astroX/internal/domain"
)

const dailyBroadcastName = "daily-broadcast"

// Broadcaster запуск рассылки гороскопов
type Broadcaster interface {
	RunBroadcast(ctx context.Context) (domain.BroadcastResult, error)
}

// DailyBroadcast джоба утренней рассылки, каждый день в hour:00 в опорном часовом поясе
type DailyBroadcast struct {
	broadcaster Broadcaster
	hour        int
	location    *time.Location
	log         *slog.Logger
}

func NewDailyBroadcast(broadcaster Broadcaster, hour int, location *time.Location, log *slog.Logger) *DailyBroadcast {
	if location == nil {
		location = time.UTC
	}
	return &DailyBroadcast{
		broadcaster: broadcaster,
		hour:        hour,
		location:    location,
		log:         log,
	}
}

func (j *DailyBroadcast) Name() string {
	return dailyBroadcastName
}

// NextRun ближайшее hour:00 строго после now
func (j *DailyBroadcast) NextRun(now time.Time) time.Time {
	local := now.In(j.location)

	next := time.Date(local.Year(), local.Month(), local.Day(), j.hour, 0, 0, 0, j.location)
	if !next.After(local) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func (j *DailyBroadcast) Run(ctx context.Context) error {
	result, err := j.broadcaster.RunBroadcast(ctx)
	if err != nil {
		return err
	}

	j.log.Info("scheduled broadcast done", "sent", result.Sent, "failed", result.Failed)
	return nil
}
