package alerter

import "time"

type Config struct {
	BotToken        string        `envconfig:"BOT_TOKEN"` // пусто - токен основного бота
	ChatID          int64         `envconfig:"CHAT_ID"`
	MessageThreadID *int64        `envconfig:"MESSAGE_THREAD_ID"`
	Cooldown        time.Duration `envconfig:"COOLDOWN" default:"1m"` // одинаковые алерты чаще не шлём
}

func (c *Config) Enabled() bool {
	return c != nil && c.ChatID != 0
}
