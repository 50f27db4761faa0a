package telegram

import (
	"context"
	"fmt"
	"strconv"

	"github.com/QuilGrafit/astroX/internal/domain"
	"github.com/QuilGrafit/astroX/internal/pkg/logger"
)

// HandleUpdate Основной метод для обработки всех типов обновлений
func (s *Service) HandleUpdate(ctx context.Context, update *domain.Update) error {
	if update == nil {
		return fmt.Errorf("update is nil")
	}

	event, ok := s.toEvent(update)
	if !ok {
		return nil
	}

	ctx = logger.WithAttrs(ctx, "update_id", update.UpdateID)
	if s.isDuplicate(ctx, update.UpdateID) {
		s.Log.DebugContext(ctx, "duplicate update skipped")
		return nil
	}

	if s.Bot == nil {
		return fmt.Errorf("bot service is not initialized")
	}
	return s.Bot.HandleEvent(ctx, event)
}

// toEvent переводит обновление Telegram во входящее событие; false - обновление не для бота
func (s *Service) toEvent(update *domain.Update) (domain.Event, bool) {
	switch {
	case update.Message != nil:
		return s.messageEvent(update.Message, update.UpdateID)
	case update.CallbackQuery != nil:
		return s.callbackEvent(update.CallbackQuery, update.UpdateID)
	}
	return domain.Event{}, false
}

func (s *Service) messageEvent(message *domain.Message, updateID int64) (domain.Event, bool) {
	if message.From == nil || message.From.IsBot {
		s.Log.Debug("ignoring message from bot", "update_id", updateID)
		return domain.Event{}, false
	}

	if message.Chat != nil && !message.Chat.IsPrivate() {
		s.Log.Warn("ignoring message from group/chat",
			"update_id", updateID,
			"chat_type", message.Chat.Type,
			"chat_id", message.Chat.ID,
		)
		return domain.Event{}, false
	}

	if message.Text == nil {
		s.Log.Debug("ignoring non-text message", "update_id", updateID)
		return domain.Event{}, false
	}

	return domain.NewTextEvent(message.From.ID, message.From.Username, *message.Text), true
}

func (s *Service) callbackEvent(query *domain.CallbackQuery, updateID int64) (domain.Event, bool) {
	if query.From == nil || query.From.IsBot {
		s.Log.Debug("ignoring callback from bot", "update_id", updateID)
		return domain.Event{}, false
	}

	var action string
	if query.Data != nil {
		action = *query.Data
	}

	var ref *domain.MessageRef
	if msg := query.Message; msg != nil && msg.Chat != nil {
		if !msg.Chat.IsPrivate() {
			s.Log.Warn("ignoring callback from group/chat",
				"update_id", updateID,
				"chat_id", msg.Chat.ID,
			)
			return domain.Event{}, false
		}
		ref = &domain.MessageRef{ChatID: msg.Chat.ID, MessageID: msg.MessageID}
	}

	return domain.NewButtonEvent(query.From.ID, query.From.Username, action, query.ID, ref), true
}

// isDuplicate true, если update_id уже обрабатывался (повтор доставки вебхука или kafka)
func (s *Service) isDuplicate(ctx context.Context, updateID int64) bool {
	if s.Cache == nil || updateID == 0 {
		return false
	}

	fresh, err := s.Cache.SetNX(ctx, "update:"+strconv.FormatInt(updateID, 10), "1", s.DedupTTL)
	if err != nil {
		s.Log.Warn("failed to check update duplicate",
			"error", err,
			"update_id", updateID,
		)
		return false
	}
	return !fresh
}
