package telegram

import (
	"errors"
	"strconv"
	"strings"
)

type Config struct {
	BotToken    string `envconfig:"BOT_TOKEN" required:"true"`
	BotUsername string `envconfig:"BOT_USERNAME"` // без @, иначе берётся из getMe
	APIURL      string `envconfig:"API_URL" default:"https://api.telegram.org"`

	// UseWebhook строка, а не bool: платформы деплоя передают "True", "1" и пустые значения
	UseWebhook    string `envconfig:"USE_WEBHOOK"`
	WebhookURL    string `envconfig:"WEBHOOK_URL"`
	WebhookSecret string `envconfig:"WEBHOOK_SECRET"`

	PollingTimeout int `envconfig:"POLLING_TIMEOUT" default:"30"`
	// QueueUpdates webhook кладёт обновления в Kafka, обработка идёт в consumer
	QueueUpdates bool `envconfig:"QUEUE_UPDATES" default:"false"`
}

// IsWebhookEnabled нераспознанное значение считается выключенным
func (c *Config) IsWebhookEnabled() bool {
	enabled, err := strconv.ParseBool(strings.TrimSpace(c.UseWebhook))
	return err == nil && enabled
}

// Validate в режиме webhook нужны адрес и секрет
func (c *Config) Validate() error {
	if !c.IsWebhookEnabled() {
		return nil
	}

	var errs []error
	if c.WebhookURL == "" {
		errs = append(errs, errors.New("TELEGRAM_WEBHOOK_URL is required in webhook mode"))
	}
	if c.WebhookSecret == "" {
		errs = append(errs, errors.New("TELEGRAM_WEBHOOK_SECRET is required in webhook mode"))
	}
	return errors.Join(errs...)
}
