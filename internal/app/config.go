package app

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata" // база часовых поясов в бинарнике: в минимальных образах нет /usr/share/zoneinfo

	server "github.com/QuilGrafit/astroX/internal/adapters/primary/http"
	alerterAdapter "github.com/QuilGrafit/astroX/internal/adapters/secondary/alerter"
	kafkaAdapter "github.com/QuilGrafit/astroX/internal/adapters/secondary/kafka"
	"github.com/QuilGrafit/astroX/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/QuilGrafit/astroX/internal/adapters/secondary/storage/redis"
	s3Adapter "github.com/QuilGrafit/astroX/internal/adapters/secondary/storage/s3"
	"github.com/QuilGrafit/astroX/internal/adapters/secondary/telegram"
	"github.com/QuilGrafit/astroX/internal/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Postgres  *pg.Config             `envconfig:"POSTGRES"`
	Redis     *redisAdapter.Config   `envconfig:"REDIS"`
	S3        *s3Adapter.Config      `envconfig:"S3"`
	Kafka     *kafkaAdapter.Config   `envconfig:"KAFKA"`
	Log       *logger.Config         `envconfig:"LOG"`
	Server    *server.Config         `envconfig:"APISERVER"`
	Telegram  *telegram.Config       `envconfig:"TELEGRAM"`
	Alerter   *alerterAdapter.Config `envconfig:"ALERTER"`
	Horoscope *HoroscopeConfig       `envconfig:"HOROSCOPE"`
	Broadcast *BroadcastConfig       `envconfig:"BROADCAST"`
}

// HoroscopeConfig параметры бизнес-логики бота
type HoroscopeConfig struct {
	Timezone       string        `envconfig:"TIMEZONE" default:"Europe/Moscow"`
	CollectName    bool          `envconfig:"COLLECT_NAME" default:"true"` // шаги имени и пола в регистрации
	DonationWallet string        `envconfig:"DONATION_WALLET"`
	LockTimeout    time.Duration `envconfig:"LOCK_TIMEOUT" default:"5s"`
}

// Location опорный часовой пояс
func (c *HoroscopeConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// BroadcastConfig рассылка по /cron/broadcast и встроенному расписанию
type BroadcastConfig struct {
	Secret          string        `envconfig:"SECRET" required:"true"`
	Delay           time.Duration `envconfig:"DELAY" default:"50ms"`
	ScheduleEnabled bool          `envconfig:"SCHEDULE_ENABLED" default:"false"`
	ScheduleHour    int           `envconfig:"SCHEDULE_HOUR" default:"9"`
}

func NewEnvConfig(envPrefix string) (*Config, error) {
	cfg := &Config{}

	_ = godotenv.Load("deployments/local/.env")

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate проверки, которые envconfig не умеет выразить тегами
func (c *Config) Validate() error {
	var errs []error

	if err := c.Telegram.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Telegram.QueueUpdates && !c.Kafka.Enabled() {
		errs = append(errs, errors.New("TELEGRAM_QUEUE_UPDATES requires KAFKA_BROKERS"))
	}

	if _, err := c.Horoscope.Location(); err != nil {
		errs = append(errs, err)
	}
	if h := c.Broadcast.ScheduleHour; h < 0 || h > 23 {
		errs = append(errs, fmt.Errorf("BROADCAST_SCHEDULE_HOUR must be in [0, 23], got %d", h))
	}

	return errors.Join(errs...)
}
