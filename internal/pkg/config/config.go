package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// State drivers understood by the application root.
const (
	StateMemory = "memory"
	StateRedis  = "redis"
	StateMongo  = "mongo"
)

type Config struct {
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	API   APIConfig
	State StateConfig
	Redis RedisConfig
	Mongo MongoConfig
}

type APIConfig struct {
	BaseURL string        `env:"API_BASE_URL, default=http://localhost:8000/api"`
	Timeout time.Duration `env:"API_TIMEOUT,  default=15s"`
}

// StateConfig selects where the session and cart are persisted between runs.
type StateConfig struct {
	Driver    string `env:"STATE_DRIVER,    default=redis"`
	Namespace string `env:"STATE_NAMESPACE, default=storefront"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=storefront"`
}

// Load reads an optional .env file from the working directory and then
// resolves the configuration from the process environment. Variables already
// set in the environment win over the file.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.State.Driver {
	case StateMemory, StateRedis, StateMongo:
	default:
		return fmt.Errorf("config: unknown STATE_DRIVER %q", c.State.Driver)
	}
	if c.API.BaseURL == "" {
		return errors.New("config: API_BASE_URL must not be empty")
	}
	return nil
}
