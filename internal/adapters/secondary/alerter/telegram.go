package alerter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/QuilGrafit/astroX/internal/adapters/secondary/telegram"
)

// Client пишет алерты в служебный чат через Bot API, при необходимости отдельным ботом
type Client struct {
	tg       *telegram.Client
	chatID   int64
	threadID *int64
	log      *slog.Logger
}

// NewClient nil, если чат для алертов не задан
func NewClient(cfg *Config, tgCfg *telegram.Config, log *slog.Logger) *Client {
	if !cfg.Enabled() {
		return nil
	}

	own := *tgCfg
	if cfg.BotToken != "" {
		own.BotToken = cfg.BotToken
	}

	return &Client{
		tg:       telegram.NewClient(&own, log),
		chatID:   cfg.ChatID,
		threadID: cfg.MessageThreadID,
		log:      log.With("component", "alerter"),
	}
}

func (c *Client) Send(ctx context.Context, text string) error {
	if c == nil || c.tg == nil {
		return errors.New("alerter client is not initialized")
	}

	_, err := c.tg.SendMessage(ctx, telegram.SendMessageRequest{
		ChatID:          c.chatID,
		Text:            text,
		MessageThreadID: c.threadID,
	})
	if err != nil {
		return fmt.Errorf("send alert to chat %d: %w", c.chatID, err)
	}

	c.log.Debug("alert sent", "chat_id", c.chatID)
	return nil
}
