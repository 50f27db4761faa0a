package service

import (
	"context"

	"github.com/QuilGrafit/astroX/internal/domain"
)

// IMessenger исходящий канал к пользователю
type IMessenger interface {
	Send(ctx context.Context, chatID int64, msg domain.OutgoingMessage) error
	Edit(ctx context.Context, ref domain.MessageRef, msg domain.OutgoingMessage) error
	AnswerCallback(ctx context.Context, callbackID string, text string, showAlert bool) error
}
