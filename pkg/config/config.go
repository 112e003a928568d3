package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every environment variable consumed by the app.
	EnvPrefix = "CHOPPI"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	// DefaultBackendURL is the local fallback when no backend origin is configured.
	DefaultBackendURL = "http://localhost:3000"
)

type Config struct {
	App     AppConfig
	Backend BackendConfig
	Session SessionConfig
	Redis   RedisConfig
	Listing ListingConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Backend.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CHOPPI_APP_ENV" default:"dev"`
	Port         string `envconfig:"CHOPPI_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"CHOPPI_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CHOPPI_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// BackendConfig points at the remote REST API every page render and proxy call targets.
type BackendConfig struct {
	URL string `envconfig:"CHOPPI_BACKEND_URL"`
}

func (b *BackendConfig) normalize() error {
	if strings.TrimSpace(b.URL) == "" {
		b.URL = DefaultBackendURL
	}
	b.URL = strings.TrimRight(b.URL, "/")
	parsed, err := url.Parse(b.URL)
	if err != nil {
		return fmt.Errorf("parsing backend url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("backend url %q must be absolute", b.URL)
	}
	return nil
}

// Host returns the host portion of the backend URL for Host-header rewriting.
func (b BackendConfig) Host() string {
	parsed, err := url.Parse(b.URL)
	if err != nil {
		return ""
	}
	return parsed.Host
}

type SessionConfig struct {
	CookieName   string        `envconfig:"CHOPPI_SESSION_COOKIE_NAME" default:"choppiAccessToken"`
	CookieMaxAge time.Duration `envconfig:"CHOPPI_SESSION_COOKIE_MAX_AGE" default:"168h"`
	CookieSecure bool          `envconfig:"CHOPPI_SESSION_COOKIE_SECURE" default:"false"`
	CacheTTL     time.Duration `envconfig:"CHOPPI_SESSION_CACHE_TTL" default:"15m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CHOPPI_REDIS_URL"`
	Address      string        `envconfig:"CHOPPI_REDIS_ADDR"`
	Password     string        `envconfig:"CHOPPI_REDIS_PASSWORD"`
	DB           int           `envconfig:"CHOPPI_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CHOPPI_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CHOPPI_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CHOPPI_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CHOPPI_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CHOPPI_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis session cache was configured at all.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type ListingConfig struct {
	StoresPageSize    int `envconfig:"CHOPPI_STORES_PAGE_SIZE" default:"10"`
	InventoryPageSize int `envconfig:"CHOPPI_INVENTORY_PAGE_SIZE" default:"20"`
}
