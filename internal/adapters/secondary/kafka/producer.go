package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/IBM/sarama"
	"github.com/QuilGrafit/astroX/internal/domain"
	"github.com/QuilGrafit/astroX/internal/ports/kafka"
	"github.com/google/uuid"
)

// Producer публикует входящие обновления Telegram в топик
type Producer struct {
	producer sarama.SyncProducer
	topic    string
	log      *slog.Logger
}

func NewProducer(cfg *Config, log *slog.Logger) (*Producer, error) {
	config, err := cfg.NewProducerConfig()
	if err != nil {
		return nil, fmt.Errorf("kafka producer config: %w", err)
	}

	producer, err := sarama.NewSyncProducer(cfg.GetBrokers(), config)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return NewProducerWith(producer, cfg.Topic, log), nil
}

// NewProducerWith поверх готового SyncProducer (в тестах - sarama/mocks)
func NewProducerWith(producer sarama.SyncProducer, topic string, log *slog.Logger) *Producer {
	return &Producer{producer: producer, topic: topic, log: log.With("topic", topic)}
}

var _ kafka.IUpdatePublisher = (*Producer)(nil)

// PublishUpdate ключ сообщения - id отправителя, см. NewProducerConfig
func (p *Producer) PublishUpdate(ctx context.Context, update *domain.Update) error {
	value, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("marshal update %d: %w", update.UpdateID, err)
	}

	key := updateKey(update)
	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte("update_id"), Value: []byte(strconv.FormatInt(update.UpdateID, 10))},
		},
	})
	if err != nil {
		return fmt.Errorf("publish update %d to %s: %w", update.UpdateID, p.topic, err)
	}

	p.log.DebugContext(ctx, "update queued", "key", key, "partition", partition, "offset", offset)
	return nil
}

func (p *Producer) Close() error {
	return p.producer.Close()
}

// updateKey без отправителя порядок не важен, ключ случайный
func updateKey(update *domain.Update) string {
	if sender := update.Sender(); sender != nil {
		return strconv.FormatInt(sender.ID, 10)
	}
	return uuid.NewString()
}
