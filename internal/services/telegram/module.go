package telegram

import (
	"log/slog"
	"time"

	TgClient "github.com/QuilGrafit/astroX/internal/adapters/secondary/telegram"
	"github.com/QuilGrafit/astroX/internal/ports/cache"
	"github.com/QuilGrafit/astroX/internal/ports/service"
)

const defaultDedupTTL = 24 * time.Hour

type Service struct {
	Bot            service.IBotService
	TelegramClient *TgClient.Client
	Cache          cache.Cache // дедупликация update_id, может быть nil
	DedupTTL       time.Duration
	Log            *slog.Logger
}

func New(
	bot service.IBotService,
	telegramClient *TgClient.Client,
	cache cache.Cache,
	log *slog.Logger,
) *Service {
	return &Service{
		Bot:            bot,
		TelegramClient: telegramClient,
		Cache:          cache,
		DedupTTL:       defaultDedupTTL,
		Log:            log,
	}
}

// SetBot устанавливает обработчик событий (сервис бота создаётся после мессенджера)
func (s *Service) SetBot(bot service.IBotService) {
	s.Bot = bot
}
