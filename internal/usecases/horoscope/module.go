package horoscope

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/QuilGrafit/astroX/internal/ports/cache"
	"github.com/QuilGrafit/astroX/internal/ports/repository"
	"github.com/QuilGrafit/astroX/internal/ports/service"
	"github.com/QuilGrafit/astroX/internal/usecases/horoscope/content"
	"github.com/QuilGrafit/astroX/internal/usecases/horoscope/generator"
	"github.com/QuilGrafit/astroX/internal/usecases/horoscope/onboarding"
)

const (
	defaultLockTimeout    = 5 * time.Second
	defaultBroadcastDelay = 50 * time.Millisecond
)

// Config параметры бота, которые задаются при старте
type Config struct {
	BotUsername    string // для реферальной ссылки t.me/<bot>?start=<id>
	DonationWallet string
	Location       *time.Location // опорный часовой пояс для "сегодня"
	LockTimeout    time.Duration
	BroadcastDelay time.Duration
}

// Service бизнес-логика гороскоп-бота
type Service struct {
	Profiles  repository.IProfileStore
	Messenger service.IMessenger
	Locker    cache.ILocker
	Alerter   service.IAlerterService // nil, если алерты не настроены
	Rules     *content.Ruleset
	Generator *generator.Generator
	Flow      onboarding.Flow
	Config    Config
	Log       *slog.Logger

	now   func() time.Time
	intN  func(n int) int // недетерминированные розыгрыши (предсказание, оракул)
	sleep func(ctx context.Context, d time.Duration) error
}

// New создаёт новый сервис для бизнес-логики гороскоп-бота
func New(
	profiles repository.IProfileStore,
	messenger service.IMessenger,
	locker cache.ILocker,
	alerter service.IAlerterService,
	rules *content.Ruleset,
	flow onboarding.Flow,
	cfg Config,
	log *slog.Logger,
) *Service {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.LockTimeout <= 0 {
		cfg.LockTimeout = defaultLockTimeout
	}
	if cfg.BroadcastDelay < 0 {
		cfg.BroadcastDelay = defaultBroadcastDelay
	}

	return &Service{
		Profiles:  profiles,
		Messenger: messenger,
		Locker:    locker,
		Alerter:   alerter,
		Rules:     rules,
		Generator: generator.New(rules, log),
		Flow:      flow,
		Config:    cfg,
		Log:       log,
		now:       time.Now,
		intN:      rand.IntN,
		sleep:     sleepCtx,
	}
}

// today текущая дата в опорном часовом поясе
func (s *Service) today() time.Time {
	return s.now().In(s.Config.Location)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
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

var _ service.IBotService = (*Service)(nil)
