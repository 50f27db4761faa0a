package horoscope

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/QuilGrafit/astroX/internal/domain"
	"github.com/QuilGrafit/astroX/internal/pkg/logger"
	"github.com/QuilGrafit/astroX/internal/usecases/horoscope/texts"
)

// HandleEvent обрабатывает одно входящее событие пользователя.
// События одного пользователя обрабатываются строго последовательно; ответы отправляются после снятия блокировки.
func (s *Service) HandleEvent(ctx context.Context, event domain.Event) error {
	ctx = logger.WithAttrs(ctx, "user_id", event.SenderID)
	ss := newSession(event)

	if err := s.process(ctx, ss); err != nil {
		s.Log.ErrorContext(ctx, "failed to handle event",
			"error", err,
			"kind", event.Kind,
		)
		ss.replies = nil
		ss.send(texts.TryLater, nil)
		if flushErr := s.flush(ctx, ss); flushErr != nil {
			return errors.Join(err, flushErr)
		}
		return err
	}

	return s.flush(ctx, ss)
}

func (s *Service) process(ctx context.Context, ss *session) error {
	lockCtx, cancel := context.WithTimeout(ctx, s.Config.LockTimeout)
	defer cancel()

	unlock, err := s.Locker.Lock(lockCtx, profileLockKey(ss.event.SenderID))
	if err != nil {
		return fmt.Errorf("failed to lock profile %d: %w", ss.event.SenderID, err)
	}
	defer unlock()

	if err := s.loadProfile(ctx, ss); err != nil {
		return err
	}

	if ss.isNew {
		return s.onFirstContact(ctx, ss)
	}

	state := ss.profile.ConversationState
	switch {
	case state.IsOnboarding():
		return s.onOnboarding(ctx, ss)
	case state == domain.StateAwaitingOracleQuestion:
		return s.onOracleState(ctx, ss)
	}

	return s.route(ctx, ss)
}

// route обработка события вне многошаговых диалогов
func (s *Service) route(ctx context.Context, ss *session) error {
	if ss.event.Kind == domain.EventButtonPress {
		return s.handleAction(ctx, ss, ss.event.ActionID)
	}

	text := strings.TrimSpace(ss.event.Text)
	if IsCommand(text) {
		command, args := ParseCommand(text)
		return s.handleCommand(ctx, ss, command, args)
	}

	// свободный текст вне диалога
	ss.send(texts.MainMenu, mainMenuKeyboard())
	return nil
}

// loadProfile загружает профиль отправителя, создавая его при первом обращении
func (s *Service) loadProfile(ctx context.Context, ss *session) error {
	id := ss.event.SenderID

	profile, err := s.Profiles.Get(ctx, id)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrProfileNotFound):
		degraded := errors.Is(err, domain.ErrStoreDegraded)
		fresh := domain.NewProfile(id, s.now())
		fresh.Username = ss.event.Username

		created, err := s.Profiles.Create(ctx, fresh)
		if err != nil {
			return fmt.Errorf("failed to create profile %d: %w", id, err)
		}
		if created {
			ss.profile = fresh
			// без основного хранилища новичка не отличить от старого пользователя:
			// регистрацию начинаем только по /start, остальное обслуживаем с профилем по умолчанию
			if degraded && !isStartCommand(ss.event) {
				s.Log.WarnContext(ctx, "profile unavailable, serving with default profile")
				return nil
			}
			s.Log.Info("new profile created", "user_id", id)
			ss.isNew = true
			return nil
		}

		profile, err = s.Profiles.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get profile %d after create: %w", id, err)
		}
	default:
		return fmt.Errorf("failed to get profile %d: %w", id, err)
	}

	ss.profile = profile
	s.refreshUsername(ctx, ss)
	return nil
}

func (s *Service) refreshUsername(ctx context.Context, ss *session) {
	username := ss.event.Username
	if username == nil {
		return
	}
	if ss.profile.Username != nil && *ss.profile.Username == *username {
		return
	}

	if err := s.setField(ctx, ss, domain.FieldUsername, *username); err != nil {
		s.Log.Warn("failed to update username",
			"error", err,
			"user_id", ss.profile.ID,
		)
	}
}

// setField пишет поле в хранилище и в профиль сессии
func (s *Service) setField(ctx context.Context, ss *session, field domain.ProfileField, value any) error {
	if err := s.Profiles.SetField(ctx, ss.profile.ID, field, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", field, err)
	}
	return ss.profile.Apply(field, value)
}

// IsCommand текст начинается с "/"
func IsCommand(text string) bool {
	return len(text) > 0 && text[0] == '/'
}

// ParseCommand "/start@bot 42" -> ("start", "42")
func ParseCommand(text string) (string, string) {
	text = strings.TrimPrefix(strings.TrimSpace(text), "/")

	var args string
	if idx := strings.IndexAny(text, " \t\n"); idx != -1 {
		text, args = text[:idx], strings.TrimSpace(text[idx+1:])
	}
	if idx := strings.Index(text, "@"); idx != -1 {
		text = text[:idx]
	}

	return strings.ToLower(text), args
}

func isStartCommand(event domain.Event) bool {
	if event.Kind != domain.EventTextMessage || !IsCommand(strings.TrimSpace(event.Text)) {
		return false
	}
	command, _ := ParseCommand(event.Text)
	return command == commandStart
}

func profileLockKey(id int64) string {
	return "profile:" + strconv.FormatInt(id, 10)
}
