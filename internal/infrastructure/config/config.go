package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the full runtime configuration, read from the environment.
type Config struct {
	// BaseURL of the remote storefront API.
	BaseURL  string `env:"STOREFRONT_BASE_URL, default=http://localhost:8765"`
	Currency string `env:"STOREFRONT_CURRENCY, default=BRL"`
	// PageSize is used for product listings and order history pages.
	PageSize       int           `env:"STOREFRONT_PAGE_SIZE, default=40"`
	RequestTimeout time.Duration `env:"STOREFRONT_TIMEOUT,   default=15s"`
	LogLevel       string        `env:"LOG_LEVEL,            default=info"`
	LogPretty      bool          `env:"LOG_PRETTY,           default=true"`

	Credentials CredentialsConfig
	Redis       RedisConfig
	MockAPI     MockAPIConfig
}

// CredentialsConfig selects where the persisted credential entry lives.
type CredentialsConfig struct {
	// Backend is "file" or "redis".
	Backend string `env:"CREDENTIALS_BACKEND, default=file"`
	// Path of the JSON file used by the file backend. Empty means a
	// per-user default under os.UserConfigDir.
	Path string `env:"CREDENTIALS_PATH"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// MockAPIConfig configures the local stub backend (cmd/mockapi).
type MockAPIConfig struct {
	Port      string `env:"MOCKAPI_PORT,       default=8765"`
	JWTSecret string `env:"MOCKAPI_JWT_SECRET, default=dev-secret"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
