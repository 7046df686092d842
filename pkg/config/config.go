package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App     AppConfig
	KV      KVConfig
	Redis   RedisConfig
	SQLite  SQLiteConfig
	Auth    AuthConfig
	Photos  PhotosConfig
	Notify  NotifyConfig
	Geocode GeocodeConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.KV.validate(); err != nil {
		return nil, err
	}
	if err := cfg.Auth.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CONTACTDESK_APP_ENV" required:"true"`
	Port         string `envconfig:"CONTACTDESK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CONTACTDESK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CONTACTDESK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// KVConfig selects the key-value persistence backend.
type KVConfig struct {
	Backend string `envconfig:"CONTACTDESK_KV_BACKEND" default:"sqlite"`
}

func (k KVConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(k.Backend)) {
	case KVBackendRedis, KVBackendSQLite:
		return nil
	}
	return fmt.Errorf("unknown kv backend %q (expected %s or %s)", k.Backend, KVBackendRedis, KVBackendSQLite)
}

func (k KVConfig) IsRedis() bool {
	return strings.EqualFold(strings.TrimSpace(k.Backend), KVBackendRedis)
}

type RedisConfig struct {
	URL          string        `envconfig:"CONTACTDESK_REDIS_URL"`
	Address      string        `envconfig:"CONTACTDESK_REDIS_ADDR"`
	Password     string        `envconfig:"CONTACTDESK_REDIS_PASSWORD"`
	DB           int           `envconfig:"CONTACTDESK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CONTACTDESK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CONTACTDESK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CONTACTDESK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CONTACTDESK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CONTACTDESK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type SQLiteConfig struct {
	Path string `envconfig:"CONTACTDESK_SQLITE_PATH" default:"contactdesk.db"`
}

// AuthConfig drives the identity store: credential scheme selection plus the
// fixed delays the UI flow expects around login, register, and logout.
type AuthConfig struct {
	Scheme        string        `envconfig:"CONTACTDESK_AUTH_SCHEME" default:"plain"`
	LoginDelay    time.Duration `envconfig:"CONTACTDESK_AUTH_LOGIN_DELAY" default:"2s"`
	RegisterDelay time.Duration `envconfig:"CONTACTDESK_AUTH_REGISTER_DELAY" default:"1500ms"`
	LogoutDelay   time.Duration `envconfig:"CONTACTDESK_AUTH_LOGOUT_DELAY" default:"2s"`

	ArgonMemoryKB    int `envconfig:"CONTACTDESK_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"CONTACTDESK_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"CONTACTDESK_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"CONTACTDESK_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"CONTACTDESK_ARGON_KEY_LEN" default:"32"`
}

func (a AuthConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(a.Scheme)) {
	case AuthSchemePlain, AuthSchemeArgon2id:
		return nil
	}
	return fmt.Errorf("unknown auth scheme %q (expected %s or %s)", a.Scheme, AuthSchemePlain, AuthSchemeArgon2id)
}

type PhotosConfig struct {
	MaxBytes int64 `envconfig:"CONTACTDESK_PHOTO_MAX_BYTES" default:"1048576"`
}

type NotifyConfig struct {
	DefaultDuration time.Duration `envconfig:"CONTACTDESK_NOTIFY_DEFAULT_DURATION" default:"3s"`
}

type GeocodeConfig struct {
	APIKey  string `envconfig:"CONTACTDESK_GEOCODE_API_KEY"`
	BaseURL string `envconfig:"CONTACTDESK_GEOCODE_BASE_URL"`
}
