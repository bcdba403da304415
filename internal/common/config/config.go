package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreBadger = "badger"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	API struct {
		// Absolute URL overrides the relative BasePath.
		URL      string        `env:"API_URL" envDefault:""`
		BasePath string        `env:"API_BASE_PATH" envDefault:"/api"`
		Timeout  time.Duration `env:"HTTP_TIMEOUT" envDefault:"15s"`

		// Client-side throttling, 0 disables it
		RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"0"`
		RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"1"`
	}

	App struct {
		// Origin the Mini App is served from; its host name drives dev-mode detection.
		Origin  string `env:"APP_ORIGIN" envDefault:"http://localhost:5173"`
		DevMode bool   `env:"DEV_MODE" envDefault:"false"`
	}

	Telegram struct {
		// Signed launch payload (Telegram WebApp initData), forwarded verbatim.
		InitData     string `env:"TELEGRAM_INIT_DATA" envDefault:""`
		DevDefaultID int64  `env:"DEV_TELEGRAM_ID_DEFAULT" envDefault:"310836227"`
	}

	Store struct {
		Driver string `env:"STORE_DRIVER" envDefault:"badger"` // memory, redis, badger
	}

	Redis struct {
		Host     string `env:"REDIS_HOST" envDefault:"localhost"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	Badger struct {
		Dir string `env:"BADGER_DIR" envDefault:".miniapp-state"`
	}
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	// .env is optional; in production the variables are set directly
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreMemory, StoreRedis, StoreBadger:
	default:
		return fmt.Errorf("invalid STORE_DRIVER %q", c.Store.Driver)
	}
	if c.API.RateLimitRPS < 0 {
		return fmt.Errorf("invalid RATE_LIMIT_RPS: %v", c.API.RateLimitRPS)
	}
	if c.Telegram.DevDefaultID <= 0 {
		return fmt.Errorf("invalid DEV_TELEGRAM_ID_DEFAULT: %d", c.Telegram.DevDefaultID)
	}
	if _, err := c.BaseURL(); err != nil {
		return err
	}
	return nil
}

// BaseURL resolves the API base: API_URL when set, otherwise BasePath
// relative to the app origin.
func (c *Config) BaseURL() (string, error) {
	if c.API.URL != "" {
		u, err := url.Parse(c.API.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return "", fmt.Errorf("invalid API_URL %q: must be an absolute URL", c.API.URL)
		}
		return strings.TrimRight(u.String(), "/"), nil
	}
	origin, err := c.OriginURL()
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(c.API.BasePath)
	if err != nil {
		return "", fmt.Errorf("invalid API_BASE_PATH %q: %w", c.API.BasePath, err)
	}
	return strings.TrimRight(origin.ResolveReference(ref).String(), "/"), nil
}

// OriginURL parses APP_ORIGIN.
func (c *Config) OriginURL() (*url.URL, error) {
	u, err := url.Parse(c.App.Origin)
	if err != nil || u.Scheme == "" {
		return nil, fmt.Errorf("invalid APP_ORIGIN %q", c.App.Origin)
	}
	return u, nil
}

// RedisAddr joins host and port.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
