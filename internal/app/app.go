package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/QuilGrafit/astroX/internal/pkg/logger"
)

type App struct {
	Name string
	Cfg  *Config
	Log  *slog.Logger
}

func New(name string, cfg *Config) (*App, error) {
	log, err := logger.New(name, cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}
	slog.SetDefault(log)

	return &App{Name: name, Cfg: cfg, Log: log}, nil
}

// Run поднимает зависимости и блокируется до отмены ctx или падения одного из сервисов
func (a *App) Run(ctx context.Context) error {
	a.Log.Info("starting horoscope bot",
		"webhook", a.Cfg.Telegram.IsWebhookEnabled(),
		"queue_updates", a.Cfg.Telegram.QueueUpdates,
		"timezone", a.Cfg.Horoscope.Timezone,
	)

	deps, err := a.initDependencies(ctx)
	if err != nil {
		return fmt.Errorf("failed to init dependencies: %w", err)
	}

	return a.runServices(ctx, deps)
}
