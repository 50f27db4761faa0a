package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/QuilGrafit/astroX/internal/domain"
	kafkaPorts "github.com/QuilGrafit/astroX/internal/ports/kafka"
)

// UpdateProcessor обрабатывает обновление Telegram
type UpdateProcessor interface {
	HandleUpdate(ctx context.Context, update *domain.Update) error
}

// UpdatesHandler читает обновления Telegram, положенные в очередь webhook-ом
type UpdatesHandler struct {
	Processor UpdateProcessor
	Log       *slog.Logger
}

// NewUpdatesHandler создаёт handler для топика входящих обновлений
func NewUpdatesHandler(processor UpdateProcessor, log *slog.Logger) kafkaPorts.MessageHandler {
	return &UpdatesHandler{
		Processor: processor,
		Log:       log,
	}
}

// HandleMessage разбирает обновление и передаёт его в обработку
func (h *UpdatesHandler) HandleMessage(ctx context.Context, key string, value []byte) error {
	var update domain.Update
	if err := json.Unmarshal(value, &update); err != nil {
		// битое сообщение не станет валидным при повторе
		h.Log.Warn("skipping malformed update", "key", key, "error", err)
		return domain.Skip(fmt.Errorf("failed to unmarshal update: %w", err))
	}

	h.Log.Debug("processing queued update", "key", key, "update_id", update.UpdateID)

	if err := h.Processor.HandleUpdate(ctx, &update); err != nil {
		return fmt.Errorf("failed to handle update %d: %w", update.UpdateID, err)
	}
	return nil
}
