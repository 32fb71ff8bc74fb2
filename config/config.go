package config

import (
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
	"go.uber.org/zap"
)

// Config is read from the environment
type Config struct {
	Port int `env:"PORT,default=8000,strict"`

	// RedisAddr is where results are archived. Empty keeps them in memory.
	RedisAddr      string        `env:"REDIS_ADDR"`
	RedisResultTTL time.Duration `env:"REDIS_RESULT_TTL,default=24h,strict"`

	StrictOwnership bool `env:"MANCALA_STRICT_OWNERSHIP,default=false,strict"`
	DevLogging      bool `env:"MANCALA_DEV_LOGGING,default=false,strict"`

	// AllowedOrigins is a semicolon separated list
	AllowedOrigins []string `env:"ALLOWED_ORIGINS,default=*"`

	// StartBoard resumes a terminal game from pit counts,
	// e.g. "4,4,4,4,4,4,0,4,4,4,4,4,4,0"
	StartBoard string `env:"MANCALA_START_BOARD"`
}

// Load decodes the configuration from the environment
func Load() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("could not read configuration: %w", err)
	}
	return cfg, nil
}

// Addr is the address the web server listens on
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// NewLogger builds a production logger, or a more readable one for development
func NewLogger(dev bool) (*zap.SugaredLogger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if dev {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("could not build logger: %w", err)
	}
	return logger.Sugar(), nil
}
