package config

import (
	"fmt"
	"strconv"
	"time"

	env "github.com/caarlos0/env/v11"
)

const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

type CommonConfig struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

type HTTPConfig struct {
	Port        int      `env:"PORT" envDefault:"5000"`
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`
}

// Addr is the listen address derived from Port.
func (c HTTPConfig) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

type StoreConfig struct {
	Backend  string `env:"STORE_BACKEND" envDefault:"file"`
	DataFile string `env:"DATA_FILE" envDefault:"data.json"`
}

type PostgresConfig struct {
	DSN       string `env:"POSTGRES_DSN"`
	DSNLegacy string `env:"PG_DSN"`
}

type RedisConfig struct {
	Addr string        `env:"REDIS_ADDR"`
	TTL  time.Duration `env:"REDIS_TTL" envDefault:"30s"`
}

type RabbitConfig struct {
	URL string `env:"RABBIT_URL"`
}

type CalculatorConfig struct {
	Command string        `env:"CALCULATOR_CMD" envDefault:"./bin/order-processor"`
	Dir     string        `env:"CALCULATOR_DIR"`
	Timeout time.Duration `env:"CALCULATOR_TIMEOUT" envDefault:"30s"`
}

type StaticConfig struct {
	Dir   string `env:"STATIC_DIR" envDefault:"public"`
	Index string `env:"STATIC_INDEX" envDefault:"index.html"`
}

type Config struct {
	Common     CommonConfig
	HTTP       HTTPConfig
	Store      StoreConfig
	Postgres   PostgresConfig
	Redis      RedisConfig
	Rabbit     RabbitConfig
	Calculator CalculatorConfig
	Static     StaticConfig
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Postgres.DSN == "" {
		cfg.Postgres.DSN = cfg.Postgres.DSNLegacy
	}
	switch cfg.Store.Backend {
	case BackendFile:
	case BackendPostgres:
		if cfg.Postgres.DSN == "" {
			return Config{}, fmt.Errorf("postgres dsn is empty: set POSTGRES_DSN (or legacy PG_DSN)")
		}
	default:
		return Config{}, fmt.Errorf("unknown STORE_BACKEND %q", cfg.Store.Backend)
	}
	return cfg, nil
}
