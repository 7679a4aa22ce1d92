package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Login   LoginConfig
	Results ResultsConfig
}

type SessionConfig struct {
	TTL            time.Duration `env:"SESSION_TTL,                default=24h"`
	ReconcileEvery time.Duration `env:"SESSION_RECONCILE_INTERVAL, default=5m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=votehub"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type LoginConfig struct {
	RatePerMinute float64 `env:"LOGIN_RATE_PER_MINUTE, default=10"`
	Burst         int     `env:"LOGIN_BURST,           default=5"`
}

type ResultsConfig struct {
	RefreshWorkers int `env:"RESULTS_REFRESH_WORKERS, default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
