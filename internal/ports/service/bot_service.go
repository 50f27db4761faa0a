package service

import (
	"context"

	"github.com/QuilGrafit/astroX/internal/domain"
)

// IBotService бизнес-логика бота: обработка одного входящего события
type IBotService interface {
	HandleEvent(ctx context.Context, event domain.Event) error
}
