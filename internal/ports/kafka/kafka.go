package kafka

import (
	"context"

	"github.com/QuilGrafit/astroX/internal/domain"
)

// IUpdatePublisher очередь входящих обновлений: webhook публикует, consumer обрабатывает
type IUpdatePublisher interface {
	PublishUpdate(ctx context.Context, update *domain.Update) error
	Close() error
}

// MessageHandler обработчик одной записи топика.
// Offset коммитится при любом исходе, domain.SkipError consumer не логирует повторно.
type MessageHandler interface {
	HandleMessage(ctx context.Context, key string, value []byte) error
}
