package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/IBM/sarama"

	kafkaAdapter "github.com/QuilGrafit/astroX/internal/adapters/secondary/kafka"
	"github.com/QuilGrafit/astroX/internal/domain"
	kafkaPorts "github.com/QuilGrafit/astroX/internal/ports/kafka"
	"github.com/QuilGrafit/astroX/internal/pkg/logger"
)

// Consumer читает топик входящих обновлений в составе consumer group
type Consumer struct {
	group   sarama.ConsumerGroup
	topic   string
	handler kafkaPorts.MessageHandler
	log     *slog.Logger
}

func NewConsumer(cfg *kafkaAdapter.Config, handler kafkaPorts.MessageHandler, log *slog.Logger) (*Consumer, error) {
	config, err := cfg.NewConsumerConfig()
	if err != nil {
		return nil, fmt.Errorf("kafka consumer config: %w", err)
	}

	group, err := sarama.NewConsumerGroup(cfg.GetBrokers(), cfg.ConsumerGroup, config)
	if err != nil {
		return nil, fmt.Errorf("create consumer group %s: %w", cfg.ConsumerGroup, err)
	}
	return newConsumer(group, cfg.Topic, handler, log.With("topic", cfg.Topic, "group", cfg.ConsumerGroup)), nil
}

func newConsumer(group sarama.ConsumerGroup, topic string, handler kafkaPorts.MessageHandler, log *slog.Logger) *Consumer {
	return &Consumer{group: group, topic: topic, handler: handler, log: log}
}

// Start блокируется до отмены ctx или закрытия группы
func (c *Consumer) Start(ctx context.Context) error {
	go func() {
		for err := range c.group.Errors() {
			c.log.Warn("kafka consumer group error", "error", err)
		}
	}()

	c.log.Info("kafka consumer started")
	for ctx.Err() == nil {
		// Consume выходит на каждом ребалансе
		err := c.group.Consume(ctx, []string{c.topic}, &claimHandler{handler: c.handler, log: c.log})
		switch {
		case errors.Is(err, sarama.ErrClosedConsumerGroup):
			return nil
		case err != nil:
			return fmt.Errorf("consume %s: %w", c.topic, err)
		}
	}
	c.log.Info("kafka consumer stopped")
	return nil
}

func (c *Consumer) Close() error {
	return c.group.Close()
}

type claimHandler struct {
	handler kafkaPorts.MessageHandler
	log     *slog.Logger
}

func (h *claimHandler) Setup(session sarama.ConsumerGroupSession) error {
	h.log.Info("partitions assigned", "claims", session.Claims())
	return nil
}

func (h *claimHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *claimHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case <-session.Context().Done():
			return nil
		case msg, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			h.handle(session, msg)
		}
	}
}

// handle offset помечается и после ошибки: повторная обработка обновления продублировала бы ответ пользователю
func (h *claimHandler) handle(session sarama.ConsumerGroupSession, msg *sarama.ConsumerMessage) {
	ctx := logger.WithAttrs(session.Context(), "partition", msg.Partition, "offset", msg.Offset)

	if err := h.handler.HandleMessage(ctx, string(msg.Key), msg.Value); err != nil && !domain.IsSkip(err) {
		h.log.ErrorContext(ctx, "failed to handle kafka message", "error", err, "key", string(msg.Key))
	}
	session.MarkMessage(msg, "")
}
