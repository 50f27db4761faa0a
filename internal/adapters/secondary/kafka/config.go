package kafka

import (
	"fmt"
	"strings"

	"github.com/IBM/sarama"
)

type Config struct {
	Brokers          string `envconfig:"BROKERS"` // broker1:9092,broker2:9092
	Topic            string `envconfig:"TOPIC" default:"horoscope.updates"`
	ConsumerGroup    string `envconfig:"CONSUMER_GROUP" default:"horoscope-bot"`
	ClientID         string `envconfig:"CLIENT_ID" default:"horoscope-bot"`
	SecurityProtocol string `envconfig:"SECURITY_PROTOCOL"` // PLAINTEXT | SASL_PLAINTEXT | SASL_SSL
	SASLMechanism    string `envconfig:"SASL_MECHANISM" default:"PLAIN"`
	SASLUsername     string `envconfig:"SASL_USERNAME"`
	SASLPassword     string `envconfig:"SASL_PASSWORD"`
}

// Enabled false - webhook обрабатывает обновления сам, без очереди
func (c *Config) Enabled() bool {
	return c != nil && c.Brokers != ""
}

func (c *Config) GetBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// NewProducerConfig синхронный producer с подтверждением от всех реплик
func (c *Config) NewProducerConfig() (*sarama.Config, error) {
	config, err := c.base()
	if err != nil {
		return nil, err
	}
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	// ключ - id пользователя, его обновления остаются в одной партиции и читаются по порядку
	config.Producer.Partitioner = sarama.NewHashPartitioner
	return config, config.Validate()
}

func (c *Config) NewConsumerConfig() (*sarama.Config, error) {
	config, err := c.base()
	if err != nil {
		return nil, err
	}
	config.Consumer.Return.Errors = true
	config.Consumer.Offsets.Initial = sarama.OffsetNewest
	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategySticky()}
	return config, config.Validate()
}

func (c *Config) base() (*sarama.Config, error) {
	config := sarama.NewConfig()
	if c.ClientID != "" {
		config.ClientID = c.ClientID
	}

	switch strings.ToUpper(c.SecurityProtocol) {
	case "", "PLAINTEXT":
		return config, nil
	case "SASL_SSL":
		config.Net.TLS.Enable = true
	case "SASL_PLAINTEXT":
	default:
		return nil, fmt.Errorf("unsupported kafka security protocol %q", c.SecurityProtocol)
	}

	// SCRAM требует отдельного генератора клиента, поддерживаем только PLAIN
	if m := strings.ToUpper(c.SASLMechanism); m != "" && m != sarama.SASLTypePlaintext {
		return nil, fmt.Errorf("unsupported kafka sasl mechanism %q", c.SASLMechanism)
	}
	config.Net.SASL.Enable = true
	config.Net.SASL.Mechanism = sarama.SASLTypePlaintext
	config.Net.SASL.User = c.SASLUsername
	config.Net.SASL.Password = c.SASLPassword
	return config, nil
}
