package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	Ngenius NgeniusConfig
	Webhook WebhookConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"NGENIUS_APP_ENV" required:"true"`
	Port         string `envconfig:"NGENIUS_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"NGENIUS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"NGENIUS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

func (a AppConfig) IsSandbox() bool {
	return strings.EqualFold(a.Env, AppEnvSandbox)
}

type DBConfig struct {
	DSN string `envconfig:"NGENIUS_DB_DSN" required:"true"`

	MaxOpenConns    int           `envconfig:"NGENIUS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"NGENIUS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"NGENIUS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"NGENIUS_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	AutoMigrate bool `envconfig:"NGENIUS_DB_AUTO_MIGRATE" default:"false"`
}

type RedisConfig struct {
	URL          string        `envconfig:"NGENIUS_REDIS_URL" required:"true"`
	PoolSize     int           `envconfig:"NGENIUS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"NGENIUS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"NGENIUS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"NGENIUS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"NGENIUS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// NgeniusConfig carries the outbound gateway credentials. The API URL, outlet
// reference, and API key have no workable defaults, so their absence is fatal
// at startup.
type NgeniusConfig struct {
	APIURL      string `envconfig:"NGENIUS_API_URL" required:"true"`
	OutletRef   string `envconfig:"NGENIUS_OUTLET_REF" required:"true"`
	APIKey      string `envconfig:"NGENIUS_API_KEY" required:"true"`
	Currency    string `envconfig:"NGENIUS_CURRENCY" default:"AED"`
	RedirectURL string `envconfig:"NGENIUS_REDIRECT_URL"`
}

type WebhookConfig struct {
	Secret    string        `envconfig:"NGENIUS_WEBHOOK_SECRET" required:"true"`
	ReplayTTL time.Duration `envconfig:"NGENIUS_WEBHOOK_REPLAY_TTL" default:"24h"`
}
