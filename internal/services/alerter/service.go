package alerter

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/QuilGrafit/astroX/internal/ports/service"
)

// maxAlertRunes лимит Bot API на текст сообщения 4096 символов, оставляем запас под префикс
const maxAlertRunes = 4000

type sender interface {
	Send(ctx context.Context, text string) error
}

// Service подписывает алерты именем приложения и гасит повторы одного и того же текста в пределах cooldown
type Service struct {
	sender   sender
	prefix   string
	cooldown time.Duration
	log      *slog.Logger
	now      func() time.Time

	mu   sync.Mutex
	sent map[string]time.Time
}

var _ service.IAlerterService = (*Service)(nil)

func New(sender sender, appName string, cooldown time.Duration, log *slog.Logger) *Service {
	return &Service{
		sender:   sender,
		prefix:   appName,
		cooldown: cooldown,
		log:      log,
		now:      time.Now,
		sent:     make(map[string]time.Time),
	}
}

func (s *Service) SendAlert(ctx context.Context, message string) error {
	if s.suppressed(message) {
		s.log.Debug("duplicate alert suppressed", "cooldown", s.cooldown)
		return nil
	}

	text := truncate(fmt.Sprintf("[%s]\n%s", s.prefix, message), maxAlertRunes)
	if err := s.sender.Send(ctx, text); err != nil {
		s.forget(message)
		s.log.Warn("failed to send alert", "error", err)
		return err
	}
	return nil
}

// suppressed отмечает message отправленным; true, если он уже уходил за последние cooldown
func (s *Service) suppressed(message string) bool {
	if s.cooldown <= 0 {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for msg, at := range s.sent {
		if now.Sub(at) >= s.cooldown {
			delete(s.sent, msg)
		}
	}

	if _, ok := s.sent[message]; ok {
		return true
	}
	s.sent[message] = now
	return false
}

func (s *Service) forget(message string) {
	s.mu.Lock()
	delete(s.sent, message)
	s.mu.Unlock()
}

func truncate(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return string(runes[:limit-1]) + "…"
}
