package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	GRPC     GRPCConfig     `mapstructure:"grpc"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
	DB       DBConfig       `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Rates    RatesConfig    `mapstructure:"rates"`
}

// GRPCConfig governs the compliance gRPC listener
type GRPCConfig struct {
	Addr string `mapstructure:"addr"`
}

// AdminConfig governs the metrics/health HTTP listener
type AdminConfig struct {
	Addr string `mapstructure:"addr"`
}

// AuthConfig holds the shared API token expected in gRPC metadata
type AuthConfig struct {
	Token string `mapstructure:"token"`
}

// LogConfig controls structured logging
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// DBConfig describes the Postgres rate history store. An empty DSN disables it.
type DBConfig struct {
	DSN string `mapstructure:"dsn"`
}

// RedisConfig describes the rate cache. An empty URL disables it.
type RedisConfig struct {
	URL string        `mapstructure:"url"`
	TTL time.Duration `mapstructure:"ttl"`
}

// PipelineConfig bounds batch processing concurrency
type PipelineConfig struct {
	Workers int `mapstructure:"workers"`
}

// RatesConfig lists reference rates loaded at startup.
// MaxAge bounds how stale a stored rate may be; zero accepts any age.
type RatesConfig struct {
	Seed   []SeedRate    `mapstructure:"seed"`
	MaxAge time.Duration `mapstructure:"max_age"`
}

// SeedRate is one reference rate; Rate is kept as text to stay exact
type SeedRate struct {
	Base  string `mapstructure:"base"`
	Quote string `mapstructure:"quote"`
	Date  string `mapstructure:"date"` // YYYY-MM-DD
	Rate  string `mapstructure:"rate"`
}

const (
	envPrefix = "PAYOUTS"

	defaultGRPCAddr   = ":8080"
	defaultAdminAddr  = ":9090"
	defaultAuthToken  = "dev-token"
	defaultLogLevel   = "info"
	defaultRedisTTL   = 24 * time.Hour
	defaultWorkers    = 8
	defaultRateMaxAge = 7 * 24 * time.Hour
)

// Load reads configuration from .env, an optional config.yml and PAYOUTS_* environment variables.
// Environment variables win over the file, the file wins over defaults.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/payoutcompliance")
	v.AddConfigPath(".")

	if path := strings.TrimSpace(os.Getenv(envPrefix + "_CONFIG")); path != "" {
		v.SetConfigFile(path)
	}

	return load(v)
}

func load(v *viper.Viper) (Config, error) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("grpc.addr", defaultGRPCAddr)
	v.SetDefault("admin.addr", defaultAdminAddr)
	v.SetDefault("auth.token", defaultAuthToken)
	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("db.dsn", "")
	v.SetDefault("redis.url", "")
	v.SetDefault("redis.ttl", defaultRedisTTL)
	v.SetDefault("pipeline.workers", defaultWorkers)
	v.SetDefault("rates.seed", []SeedRate{})
	v.SetDefault("rates.max_age", defaultRateMaxAge)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate rejects configurations the server cannot start with
func (c Config) Validate() error {
	if c.GRPC.Addr == "" {
		return errors.New("grpc.addr is required")
	}

	if c.Admin.Addr == "" {
		return errors.New("admin.addr is required")
	}

	if c.Auth.Token == "" {
		return errors.New("auth.token is required")
	}

	if c.Pipeline.Workers <= 0 {
		return fmt.Errorf("pipeline.workers must be positive, got %d", c.Pipeline.Workers)
	}

	if c.Redis.URL != "" && c.Redis.TTL <= 0 {
		return fmt.Errorf("redis.ttl must be positive, got %s", c.Redis.TTL)
	}

	if c.Rates.MaxAge < 0 {
		return fmt.Errorf("rates.max_age must not be negative, got %s", c.Rates.MaxAge)
	}

	return nil
}
