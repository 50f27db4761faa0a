package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	server "github.com/QuilGrafit/astroX/internal/adapters/primary/http"
	broadcastController "github.com/QuilGrafit/astroX/internal/adapters/primary/http/controllers/broadcast"
	healthcheckController "github.com/QuilGrafit/astroX/internal/adapters/primary/http/controllers/healthcheck"
	telegramController "github.com/QuilGrafit/astroX/internal/adapters/primary/http/controllers/telegram"
	kafkaConsumerAdapter "github.com/QuilGrafit/astroX/internal/adapters/primary/kafka"
	kafkaHandlers "github.com/QuilGrafit/astroX/internal/adapters/primary/kafka/handlers"
	alerterAdapter "github.com/QuilGrafit/astroX/internal/adapters/secondary/alerter"
	kafkaAdapter "github.com/QuilGrafit/astroX/internal/adapters/secondary/kafka"
	"github.com/QuilGrafit/astroX/internal/adapters/secondary/storage/inmemory"
	"github.com/QuilGrafit/astroX/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/QuilGrafit/astroX/internal/adapters/secondary/storage/redis"
	s3Adapter "github.com/QuilGrafit/astroX/internal/adapters/secondary/storage/s3"
	tgAdapter "github.com/QuilGrafit/astroX/internal/adapters/secondary/telegram"
	"github.com/QuilGrafit/astroX/internal/ports/cache"
	"github.com/QuilGrafit/astroX/internal/ports/kafka"
	"github.com/QuilGrafit/astroX/internal/ports/repository"
	"github.com/QuilGrafit/astroX/internal/ports/service"
	"github.com/QuilGrafit/astroX/internal/ports/storage"
	profileRepo "github.com/QuilGrafit/astroX/internal/repository/profile"
	alerterService "github.com/QuilGrafit/astroX/internal/services/alerter"
	jobScheduler "github.com/QuilGrafit/astroX/internal/services/jobs"
	telegramService "github.com/QuilGrafit/astroX/internal/services/telegram"
	"github.com/QuilGrafit/astroX/internal/usecases/horoscope"
	"github.com/QuilGrafit/astroX/internal/usecases/horoscope/content"
	"github.com/QuilGrafit/astroX/internal/usecases/horoscope/onboarding"
	"github.com/QuilGrafit/astroX/internal/usecases/horoscope/texts"
	"github.com/redis/go-redis/v9"
)

type Dependencies struct {
	DB              *pg.DB        // nil, если postgres не настроен
	Redis           *redis.Client // nil, если redis не настроен
	HTTPServer      *http.Server
	TelegramService *telegramService.Service
	TelegramClient  *tgAdapter.Client
	TelegramPoller  *tgAdapter.Poller
	KafkaProducer   *kafkaAdapter.Producer
	KafkaConsumer   *kafkaConsumerAdapter.Consumer
	Cache           cache.Cache
	JobScheduler    *jobScheduler.Scheduler
	Bot             *horoscope.Service
}

// initDependencies инициализирует все зависимости приложения
func (a *App) initDependencies(ctx context.Context) (*Dependencies, error) {
	deps := &Dependencies{}

	db, err := a.initPostgres(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}
	deps.DB = db

	profiles := a.initProfileStore(db)
	externalServices := a.initExternalServices(ctx)
	deps.Redis = externalServices.Redis
	deps.Cache = externalServices.Cache

	rules, err := content.Load(ctx, externalServices.S3, a.Cfg.S3.RulesetKey, a.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to load ruleset: %w", err)
	}

	deps.TelegramClient = tgAdapter.NewClient(a.Cfg.Telegram, a.Log)
	deps.TelegramService = telegramService.New(nil, deps.TelegramClient, externalServices.Cache, a.Log)
	botUsername := a.resolveBotUsername(ctx, deps.TelegramClient)
	a.registerBotCommands(ctx, deps.TelegramService)

	deps.Bot, err = a.initUseCases(profiles, deps.TelegramService, externalServices, rules, botUsername)
	if err != nil {
		return nil, fmt.Errorf("failed to init use cases: %w", err)
	}
	deps.TelegramService.SetBot(deps.Bot)

	deps.KafkaProducer, deps.KafkaConsumer, err = a.initKafka(deps.TelegramService)
	if err != nil {
		return nil, fmt.Errorf("failed to init kafka: %w", err)
	}

	deps.HTTPServer = a.initHTTP(deps)

	deps.TelegramPoller, err = a.initTelegramMode(ctx, deps.TelegramService, deps.TelegramClient)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram mode: %w", err)
	}

	deps.JobScheduler = a.initJobScheduler(externalServices.Alerter, deps.Bot)

	return deps, nil
}

// initPostgres подключение к PostgreSQL и миграции; nil без конфигурации
func (a *App) initPostgres(ctx context.Context) (*pg.DB, error) {
	if !a.Cfg.Postgres.Enabled() {
		a.Log.Warn("postgres is not configured, profiles are kept in memory only")
		return nil, nil
	}

	conn, err := a.Cfg.Postgres.NewConnection(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	db := pg.NewDB(conn)

	a.Log.Info("postgres connected successfully")

	if err := pg.RunMigrations(ctx, db, a.Log); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// initProfileStore postgres с резервной копией в памяти, либо только память
func (a *App) initProfileStore(db *pg.DB) repository.IProfileStore {
	memory := inmemory.NewProfileStore()
	if db == nil {
		return memory
	}

	primary := profileRepo.New(db, a.Log)
	return profileRepo.NewFallbackStore(primary, memory, a.Log)
}

// externalServices содержит внешние сервисы (опциональные)
type externalServices struct {
	Redis   *redis.Client
	Cache   cache.Cache
	Locker  cache.ILocker
	S3      storage.IObjectStorage
	Alerter service.IAlerterService
}

// initExternalServices инициализирует опциональные внешние сервисы (Redis, S3, Alerter)
func (a *App) initExternalServices(ctx context.Context) *externalServices {
	services := &externalServices{}

	// Redis - кэш дедупликации и распределённые блокировки
	if a.Cfg.Redis.Enabled() {
		redisClient, err := a.Cfg.Redis.NewConnection(ctx)
		if err != nil {
			a.Log.Warn("failed to init redis, continuing with in-process locks", "error", err)
		} else {
			services.Redis = redisClient
			services.Cache = redisAdapter.NewClient(redisClient)
			// при недоступном Redis блокировки берутся в памяти процесса
			services.Locker = inmemory.NewFallbackLocker(
				redisAdapter.NewLocker(redisClient, a.Cfg.Redis.LockTTLDuration(), a.Log), a.Log)
			a.Log.Info("redis connected successfully")
		}
	}
	if services.Locker == nil {
		services.Locker = inmemory.NewLocker()
	}

	// S3 - переопределение набора текстов
	if a.Cfg.S3.Enabled() {
		minioClient, err := a.Cfg.S3.Connect(ctx)
		if err != nil {
			a.Log.Warn("failed to init s3, using embedded ruleset", "error", err)
		} else {
			services.S3 = s3Adapter.NewBucket(minioClient, a.Cfg.S3.Bucket, a.Log)
			a.Log.Info("s3 connected successfully", "bucket", a.Cfg.S3.Bucket)
		}
	}

	// Alerter - опциональный
	if a.Cfg.Alerter.Enabled() {
		alerterClient := alerterAdapter.NewClient(a.Cfg.Alerter, a.Cfg.Telegram, a.Log)
		services.Alerter = alerterService.New(alerterClient, a.Name, a.Cfg.Alerter.Cooldown, a.Log)
	}

	return services
}

// resolveBotUsername имя бота из конфигурации или getMe
func (a *App) resolveBotUsername(ctx context.Context, client *tgAdapter.Client) string {
	if a.Cfg.Telegram.BotUsername != "" {
		return strings.TrimPrefix(a.Cfg.Telegram.BotUsername, "@")
	}

	info, err := client.GetMe(ctx)
	if err != nil {
		a.Log.Warn("failed to get bot info, referral links disabled", "error", err)
		return ""
	}

	a.Log.Info("bot identified", "username", info.Username, "bot_id", info.ID)
	return info.Username
}

// registerBotCommands регистрирует команды бота в Telegram
func (a *App) registerBotCommands(ctx context.Context, tgService *telegramService.Service) {
	commands := make([]tgAdapter.BotCommand, 0, len(texts.BotCommands))
	for _, c := range texts.BotCommands {
		commands = append(commands, tgAdapter.BotCommand{Command: c.Command, Description: c.Description})
	}

	if err := tgService.RegisterCommands(ctx, commands); err != nil {
		a.Log.Warn("failed to register bot commands", "error", err)
	}
}

// initUseCases инициализирует UseCases приложения
func (a *App) initUseCases(
	profiles repository.IProfileStore,
	messenger service.IMessenger,
	externalServices *externalServices,
	rules *content.Ruleset,
	botUsername string,
) (*horoscope.Service, error) {
	location, err := a.Cfg.Horoscope.Location()
	if err != nil {
		return nil, err
	}

	return horoscope.New(
		profiles,
		messenger,
		externalServices.Locker,
		externalServices.Alerter, // может быть nil
		rules,
		onboarding.Flow{CollectName: a.Cfg.Horoscope.CollectName},
		horoscope.Config{
			BotUsername:    botUsername,
			DonationWallet: a.Cfg.Horoscope.DonationWallet,
			Location:       location,
			LockTimeout:    a.Cfg.Horoscope.LockTimeout,
			BroadcastDelay: a.Cfg.Broadcast.Delay,
		},
		a.Log,
	), nil
}

// initKafka очередь обновлений: webhook публикует, consumer обрабатывает
func (a *App) initKafka(tgService *telegramService.Service) (*kafkaAdapter.Producer, *kafkaConsumerAdapter.Consumer, error) {
	if !a.Cfg.Telegram.QueueUpdates {
		return nil, nil, nil
	}

	producer, err := kafkaAdapter.NewProducer(a.Cfg.Kafka, a.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	handler := kafkaHandlers.NewUpdatesHandler(tgService, a.Log)
	consumer, err := kafkaConsumerAdapter.NewConsumer(a.Cfg.Kafka, handler, a.Log)
	if err != nil {
		_ = producer.Close()
		return nil, nil, fmt.Errorf("failed to create kafka consumer: %w", err)
	}

	return producer, consumer, nil
}

// initHTTP инициализирует HTTP сервер и контроллеры
func (a *App) initHTTP(deps *Dependencies) *http.Server {
	readiness := make(map[string]healthcheckController.Pinger)
	if deps.DB != nil {
		readiness["postgres"] = deps.DB
	}
	if deps.Cache != nil {
		readiness["redis"] = deps.Cache
	}

	controllers := []server.Controller{
		healthcheckController.New(readiness, a.Log),
		broadcastController.New(deps.Bot, a.Cfg.Broadcast.Secret, a.Log),
	}

	if a.Cfg.Telegram.IsWebhookEnabled() {
		var publisher kafka.IUpdatePublisher
		if deps.KafkaProducer != nil {
			publisher = deps.KafkaProducer
		}
		controllers = append(controllers,
			telegramController.New(deps.TelegramService, publisher, a.Cfg.Telegram.WebhookSecret, a.Log))
	}

	return server.NewHTTPServer(a.Cfg.Server, a.Log, controllers...)
}

// initTelegramMode инициализирует режим работы Telegram (webhook или polling)
func (a *App) initTelegramMode(
	ctx context.Context,
	tgService *telegramService.Service,
	client *tgAdapter.Client,
) (*tgAdapter.Poller, error) {
	a.Log.Info("telegram configuration",
		"use_webhook", a.Cfg.Telegram.IsWebhookEnabled(),
		"webhook_url", a.Cfg.Telegram.WebhookURL,
		"queue_updates", a.Cfg.Telegram.QueueUpdates,
	)

	if a.Cfg.Telegram.IsWebhookEnabled() {
		webhookURL := strings.TrimRight(a.Cfg.Telegram.WebhookURL, "/") + "/webhook/"
		if err := client.SetWebhook(ctx, webhookURL, a.Cfg.Telegram.WebhookSecret); err != nil {
			return nil, fmt.Errorf("failed to set webhook: %w", err)
		}
		a.Log.Info("webhook set successfully", "webhook_url", webhookURL)
		return nil, nil // webhook режим, poller не нужен
	}

	a.Log.Warn("polling mode enabled - this should only be used for local development")
	return tgAdapter.NewPoller(client, a.Cfg.Telegram, tgService.HandleUpdate, a.Log), nil
}

// initJobScheduler инициализирует планировщик джоб
func (a *App) initJobScheduler(alerterSvc service.IAlerterService, bot *horoscope.Service) *jobScheduler.Scheduler {
	scheduler := jobScheduler.NewScheduler(a.Log, alerterSvc)

	if a.Cfg.Broadcast.ScheduleEnabled {
		scheduler.Register(jobScheduler.NewDailyBroadcast(bot, a.Cfg.Broadcast.ScheduleHour, bot.Config.Location, a.Log))
		a.Log.Info("daily broadcast job registered", "hour", a.Cfg.Broadcast.ScheduleHour)
	}

	return scheduler
}
