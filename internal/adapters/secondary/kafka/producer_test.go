package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QuilGrafit/astroX/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newMockProducer(t *testing.T) *mocks.SyncProducer {
	config := mocks.NewTestConfig()
	config.Producer.Return.Successes = true
	return mocks.NewSyncProducer(t, config)
}

func TestPublishUpdate_KeyedBySender(t *testing.T) {
	mock := newMockProducer(t)
	producer := NewProducerWith(mock, "horoscope.updates", testLogger())

	text := "/start"
	update := &domain.Update{
		UpdateID: 77,
		Message: &domain.Message{
			MessageID: 1,
			From:      &domain.TelegramUser{ID: 42},
			Chat:      &domain.Chat{ID: 42, Type: "private"},
			Text:      &text,
		},
	}

	mock.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		key, _ := msg.Key.Encode()
		if string(key) != "42" {
			return errors.New("unexpected key " + string(key))
		}
		if msg.Topic != "horoscope.updates" {
			return errors.New("unexpected topic " + msg.Topic)
		}
		value, _ := msg.Value.Encode()
		var decoded domain.Update
		if err := json.Unmarshal(value, &decoded); err != nil {
			return err
		}
		if decoded.UpdateID != 77 {
			return errors.New("update id lost")
		}
		return nil
	})

	require.NoError(t, producer.PublishUpdate(context.Background(), update))
	require.NoError(t, producer.Close())
}

func TestPublishUpdate_CallbackKey(t *testing.T) {
	update := &domain.Update{
		UpdateID:      5,
		CallbackQuery: &domain.CallbackQuery{ID: "cb", From: &domain.TelegramUser{ID: 9}},
	}
	assert.Equal(t, "9", updateKey(update))

	// без отправителя ключ случайный, но не пустой
	assert.NotEmpty(t, updateKey(&domain.Update{UpdateID: 6}))
}

func TestPublishUpdate_Failure(t *testing.T) {
	mock := newMockProducer(t)
	producer := NewProducerWith(mock, "horoscope.updates", testLogger())

	mock.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	err := producer.PublishUpdate(context.Background(), &domain.Update{UpdateID: 1})
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, producer.Close())
}

func TestConfig_Brokers(t *testing.T) {
	cfg := &Config{Brokers: "kafka-1:9092, kafka-2:9092"}
	assert.True(t, cfg.Enabled())
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.GetBrokers())

	var empty *Config
	assert.False(t, empty.Enabled())
	assert.Empty(t, (&Config{Brokers: " , "}).GetBrokers())
}

func TestConfig_Security(t *testing.T) {
	cfg := &Config{SecurityProtocol: "SASL_SSL", SASLUsername: "u", SASLPassword: "p"}
	sc, err := cfg.NewConsumerConfig()
	require.NoError(t, err)
	assert.True(t, sc.Net.SASL.Enable)
	assert.True(t, sc.Net.TLS.Enable)
	assert.Equal(t, sarama.SASLMechanism(sarama.SASLTypePlaintext), sc.Net.SASL.Mechanism)

	pc, err := (&Config{SecurityProtocol: "SASL_PLAINTEXT", SASLUsername: "u", SASLPassword: "p"}).NewProducerConfig()
	require.NoError(t, err)
	assert.True(t, pc.Net.SASL.Enable)
	assert.False(t, pc.Net.TLS.Enable)
	assert.Equal(t, sarama.WaitForAll, pc.Producer.RequiredAcks)

	plain, err := (&Config{}).NewConsumerConfig()
	require.NoError(t, err)
	assert.False(t, plain.Net.SASL.Enable)
}

func TestConfig_Unsupported(t *testing.T) {
	_, err := (&Config{SecurityProtocol: "SSL"}).NewConsumerConfig()
	assert.Error(t, err)

	_, err = (&Config{SecurityProtocol: "SASL_SSL", SASLMechanism: "SCRAM-SHA-256"}).NewProducerConfig()
	assert.Error(t, err)
}
