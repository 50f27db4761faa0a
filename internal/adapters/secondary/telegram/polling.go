package telegram

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/QuilGrafit/astroX/internal/domain"
)

const (
	defaultPollingTimeout = 30
	pollingRetryDelay     = 5 * time.Second
)

// UpdateHandler функция для обработки обновлений от Telegram
type UpdateHandler func(ctx context.Context, update *domain.Update) error

// Poller реализует long polling для получения обновлений от Telegram
type Poller struct {
	api          *Client // копия клиента с увеличенным таймаутом для long polling
	timeout      int
	handler      UpdateHandler
	lastUpdateID int64
	log          *slog.Logger
}

func NewPoller(client *Client, config *Config, handler UpdateHandler, log *slog.Logger) *Poller {
	pollingTimeout := config.PollingTimeout
	if pollingTimeout <= 0 {
		pollingTimeout = defaultPollingTimeout
	}
	// long polling держит соединение timeout секунд, HTTP-таймаут должен быть больше
	api := *client
	api.http = &http.Client{Timeout: time.Duration(pollingTimeout+10) * time.Second}

	return &Poller{
		api:     &api,
		timeout: pollingTimeout,
		handler: handler,
		log:     log,
	}
}

// GetUpdatesRequest параметры getUpdates
type GetUpdatesRequest struct {
	Offset         int64    `json:"offset"`
	Timeout        int      `json:"timeout"`
	AllowedUpdates []string `json:"allowed_updates,omitempty"`
}

// Start запускает long polling и блокируется до отмены ctx
func (p *Poller) Start(ctx context.Context) error {
	p.log.Info("starting telegram polling", "timeout", p.timeout)

	for {
		if ctx.Err() != nil {
			p.log.Info("polling stopped")
			return nil
		}

		updates, err := p.getUpdates(ctx)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			var apiErr *APIError
			if errors.As(err, &apiErr) && apiErr.Code == 409 {
				// другой экземпляр бота или активный webhook
				p.log.Warn("telegram API conflict - another bot instance or webhook is active",
					"description", apiErr.Description,
				)
			} else {
				p.log.Error("failed to get updates", "error", err)
			}

			select {
			case <-ctx.Done():
			case <-time.After(pollingRetryDelay):
			}
			continue
		}

		for i := range updates {
			update := &updates[i]
			if update.UpdateID >= p.lastUpdateID {
				p.lastUpdateID = update.UpdateID + 1
			}

			if err := p.handler(ctx, update); err != nil {
				p.log.Error("failed to handle update",
					"error", err,
					"update_id", update.UpdateID,
				)
			}
		}
	}
}

// getUpdates получает обновления от Telegram API
func (p *Poller) getUpdates(ctx context.Context) ([]domain.Update, error) {
	req := GetUpdatesRequest{
		Offset:         p.lastUpdateID,
		Timeout:        p.timeout,
		AllowedUpdates: []string{"message", "callback_query"},
	}

	var updates []domain.Update
	if err := p.api.call(ctx, "getUpdates", req, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}
