package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/caarlos0/env/v11"

	id "recruit/pkg/domain"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

// Telegram update delivery modes accepted by TELEGRAM_MODE.
const (
	TelegramPolling = "polling"
	TelegramWebhook = "webhook"
)

// Config captures process-level configuration. Static chat content (texts,
// categories, links) lives in the content file, not here.
type Config struct {
	BotToken     string `env:"BOT_TOKEN"`
	AdminChatID  int64  `env:"ADMIN_CHAT_ID"`
	TelegramMode string `env:"TELEGRAM_MODE" envDefault:"polling"`
	// WebhookSecret is compared with the X-Telegram-Bot-Api-Secret-Token header.
	WebhookSecret string `env:"WEBHOOK_SECRET"`

	HTTPAddr   string `env:"HTTP_ADDR" envDefault:":8080"`
	AdminToken string `env:"ADMIN_TOKEN"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"sqlite"`
	DatabaseURL   string `env:"DATABASE_URL"`
	// DBName is the SQLite file path.
	DBName string `env:"DB_NAME" envDefault:"forms.db"`

	Redis      RedisConfig
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	Kafka   KafkaConfig
	Tracing TracingConfig

	ContentFile string `env:"CONTENT_FILE"`
	Assets      AssetsConfig

	DecisionRetries int `env:"DECISION_RETRIES" envDefault:"3"`
	// TimeZone is used for timestamps shown to moderators.
	TimeZone string `env:"TIME_ZONE" envDefault:"Europe/Kyiv"`
}

// RedisConfig configures the optional Redis session store. An empty URL keeps
// conversation sessions in process memory.
type RedisConfig struct {
	URL          string        `env:"REDIS_URL"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"1"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s"`
}

// KafkaConfig configures the optional audit stream. No brokers disables
// auditing.
type KafkaConfig struct {
	Brokers    []string `env:"KAFKA_BROKERS" envSeparator:","`
	AuditTopic string   `env:"AUDIT_TOPIC" envDefault:"recruit.audit"`
	ClientID   string   `env:"KAFKA_CLIENT_ID" envDefault:"recruit"`
}

// TracingConfig enables OTLP trace export. An empty endpoint disables it.
type TracingConfig struct {
	Endpoint    string  `env:"OTEL_ENDPOINT"`
	SampleRatio float64 `env:"OTEL_SAMPLE_RATIO" envDefault:"1"`
}

// AssetsConfig selects where attachment files are read from. S3 wins when a
// bucket is configured.
type AssetsConfig struct {
	Dir         string `env:"ASSET_DIR" envDefault:"assets"`
	S3Bucket    string `env:"S3_BUCKET"`
	S3Region    string `env:"S3_REGION" envDefault:"us-east-1"`
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
	S3KeyPrefix string `env:"S3_KEY_PREFIX"`
	S3PathStyle bool   `env:"S3_PATH_STYLE" envDefault:"true"`
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// FromEnv builds a Config from the environment and validates it.
func FromEnv() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field requirements that env tags cannot express.
func (c Config) Validate() error {
	switch c.StorageDriver {
	case StorageMemory, StorageSQLite:
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for storage driver %q", c.StorageDriver)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
	switch c.TelegramMode {
	case TelegramPolling:
	case TelegramWebhook:
		if c.WebhookSecret == "" {
			return fmt.Errorf("WEBHOOK_SECRET is required in webhook mode")
		}
	default:
		return fmt.Errorf("unknown telegram mode %q", c.TelegramMode)
	}
	if c.DecisionRetries < 0 {
		return fmt.Errorf("DECISION_RETRIES must not be negative")
	}
	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		return fmt.Errorf("invalid TIME_ZONE %q: %w", c.TimeZone, err)
	}
	return nil
}

// ValidateBot checks the settings only the long-running bot needs.
func (c Config) ValidateBot() error {
	if strings.TrimSpace(c.BotToken) == "" {
		return fmt.Errorf("BOT_TOKEN is required")
	}
	if c.AdminChatID == 0 {
		return fmt.Errorf("ADMIN_CHAT_ID is required")
	}
	return nil
}

// Location returns the configured display time zone, UTC if it cannot be
// loaded.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ModerationChat returns the configured moderation destination.
func (c Config) ModerationChat() id.ChatID {
	return id.ChatID(c.AdminChatID)
}
