package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"recruit/internal/assets"
	"recruit/internal/audit"
	auditkafka "recruit/internal/audit/store/kafka"
	"recruit/internal/bot"
	"recruit/internal/content"
	convmetrics "recruit/internal/conversation/metrics"
	convservice "recruit/internal/conversation/service"
	sessionstore "recruit/internal/conversation/store"
	"recruit/internal/conversation/validation"
	"recruit/internal/messaging/telegram"
	modmetrics "recruit/internal/moderation/metrics"
	modservice "recruit/internal/moderation/service"
	"recruit/internal/notification"
	notifymetrics "recruit/internal/notification/metrics"
	"recruit/internal/platform/config"
	"recruit/internal/platform/kafka"
	"recruit/internal/platform/metrics"
	"recruit/internal/platform/migrations"
	"recruit/internal/platform/postgres"
	"recruit/internal/platform/redis"
	"recruit/internal/platform/sqlite"
	submissionstore "recruit/internal/submission/store"
	httptransport "recruit/internal/transport/http"
)

// auditBufferSize bounds audit events waiting for the Kafka producer.
const auditBufferSize = 256

// telegramBot is what the process needs from *tgbotapi.BotAPI.
type telegramBot interface {
	telegram.Bot
	telegram.Updater
}

// newTelegramBot is replaced in tests.
var newTelegramBot = func(token string) (telegramBot, error) {
	return telegram.NewBotAPI(token)
}

// submissionStore is the union of what conversation and moderation need.
type submissionStore interface {
	convservice.SubmissionCreator
	modservice.SubmissionStore
}

// storage is an opened submission store with its optional database handle.
type storage struct {
	store   submissionStore
	db      *sql.DB
	dialect string
}

func openStorage(ctx context.Context, cfg config.Config) (*storage, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		return &storage{store: submissionstore.NewInMemory()}, nil
	case config.StoragePostgres:
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return &storage{store: submissionstore.NewPostgres(db), db: db, dialect: migrations.DialectPostgres}, nil
	case config.StorageSQLite:
		db, err := sqlite.Open(ctx, cfg.DBName)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return &storage{store: submissionstore.NewSQLite(db), db: db, dialect: migrations.DialectSQLite}, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func (s *storage) Ping(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	return s.db.PingContext(ctx)
}

func (s *storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// app holds the wired bot process.
type app struct {
	dispatcher *bot.Dispatcher
	handler    http.Handler
	poller     *telegram.Poller
	closers    []func() error
}

// Close releases resources in reverse acquisition order.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *app) onClose(fn func() error) {
	a.closers = append(a.closers, fn)
}

// wireApp builds every component the bot needs. On error, anything already
// opened is closed.
func wireApp(ctx context.Context, cfg config.Config, logger *slog.Logger) (_ *app, err error) {
	a := &app{}
	defer func() {
		if err != nil {
			_ = a.Close()
		}
	}()

	contents, err := content.Load(cfg.ContentFile)
	if err != nil {
		return nil, err
	}

	st, err := openStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a.onClose(st.Close)

	sessions, redisClient, err := openSessions(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if redisClient != nil {
		a.onClose(redisClient.Close)
	}

	kafkaClient, err := kafka.New(cfg.Kafka)
	if err != nil {
		return nil, err
	}
	var publisher *audit.Publisher
	if kafkaClient != nil {
		a.onClose(func() error {
			kafkaClient.Close()
			return nil
		})
		if err := kafka.EnsureTopic(ctx, kafkaClient, cfg.Kafka.AuditTopic); err != nil {
			return nil, err
		}
		publisher = audit.NewPublisher(auditkafka.New(kafkaClient, cfg.Kafka.AuditTopic),
			audit.WithLogger(logger),
			audit.WithAsyncBuffer(auditBufferSize),
		)
		a.onClose(func() error {
			publisher.Close()
			return nil
		})
	} else {
		logger.WarnContext(ctx, "kafka not configured, audit events are discarded")
	}

	source, err := openAssets(ctx, cfg)
	if err != nil {
		return nil, err
	}

	tg, err := newTelegramBot(cfg.BotToken)
	if err != nil {
		return nil, err
	}
	gateway, err := telegram.NewGateway(tg, source, telegram.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	m := metrics.New()

	notifier, err := notification.New(gateway, cfg.ModerationChat(), contents,
		notification.WithLogger(logger),
		notification.WithMetrics(notifymetrics.New(m.Registry)),
		notification.WithLocation(cfg.Location()),
	)
	if err != nil {
		return nil, err
	}

	convOpts := []convservice.Option{
		convservice.WithLogger(logger),
		convservice.WithMetrics(convmetrics.New(m.Registry)),
	}
	modOpts := []modservice.Option{
		modservice.WithLogger(logger),
		modservice.WithMetrics(modmetrics.New(m.Registry)),
		modservice.WithMaxRetries(cfg.DecisionRetries),
	}
	if publisher != nil {
		convOpts = append(convOpts, convservice.WithAuditPublisher(publisher))
		modOpts = append(modOpts, modservice.WithAuditPublisher(publisher))
	}

	conversation, err := convservice.New(sessions, st.store, gateway, notifier,
		validation.NewRules(contents.Choices()), contents.Texts, convOpts...)
	if err != nil {
		return nil, err
	}
	moderation, err := modservice.New(st.store, modOpts...)
	if err != nil {
		return nil, err
	}

	a.dispatcher, err = bot.New(conversation, moderation, notifier, gateway, contents.Texts, cfg.ModerationChat(),
		bot.WithLogger(logger),
		bot.WithMetrics(m),
	)
	if err != nil {
		return nil, err
	}

	routes := httptransport.RouterConfig{
		Logger:  logger,
		Metrics: m.Handler(),
		Checks:  map[string]httptransport.HealthCheck{"storage": st.Ping},
	}
	if redisClient != nil {
		routes.Checks["redis"] = redisClient.Health
	}
	if kafkaClient != nil {
		routes.Checks["kafka"] = kafkaClient.Ping
	}
	if cfg.AdminToken != "" {
		routes.AdminToken = cfg.AdminToken
		routes.Stats = moderation
	}
	switch cfg.TelegramMode {
	case config.TelegramWebhook:
		routes.Webhook = telegram.NewWebhookHandler(cfg.WebhookSecret, a.dispatcher, logger)
	default:
		a.poller = telegram.NewPoller(tg, a.dispatcher, logger)
	}
	a.handler = httptransport.NewRouter(routes)

	return a, nil
}

func openSessions(ctx context.Context, cfg config.Config) (convservice.SessionStore, *redis.Client, error) {
	client, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	if client == nil {
		return sessionstore.NewInMemory(cfg.SessionTTL), nil, nil
	}
	return sessionstore.NewRedis(client.Client, cfg.SessionTTL), client, nil
}

func openAssets(ctx context.Context, cfg config.Config) (assets.Source, error) {
	if cfg.Assets.S3Bucket != "" {
		return assets.NewS3Source(ctx, cfg.Assets)
	}
	return assets.NewDirSource(cfg.Assets.Dir), nil
}
