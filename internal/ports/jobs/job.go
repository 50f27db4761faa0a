package jobs

import (
	"context"
	"time"
)

// Job задача планировщика; NextRun возвращает момент ближайшего запуска, не раньше now
type Job interface {
	Name() string
	NextRun(now time.Time) time.Time
	Run(ctx context.Context) error
}
