package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_IsWebhookEnabled(t *testing.T) {
	for value, want := range map[string]bool{
		"true":   true,
		"True":   true,
		"1":      true,
		" TRUE ": true,
		"false":  false,
		"":       false,
		"yes":    false,
	} {
		cfg := Config{UseWebhook: value}
		assert.Equal(t, want, cfg.IsWebhookEnabled(), "value %q", value)
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := Config{UseWebhook: "false"}
	assert.NoError(t, cfg.Validate())

	cfg.UseWebhook = "1"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TELEGRAM_WEBHOOK_URL")
	assert.Contains(t, err.Error(), "TELEGRAM_WEBHOOK_SECRET")

	cfg.WebhookURL = "https://bot.example.com"
	cfg.WebhookSecret = "s3cret"
	assert.NoError(t, cfg.Validate())
}
