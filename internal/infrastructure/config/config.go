// Package config loads application configuration from file and environment.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	sharedconfig "quokkalist/internal/shared/config"
)

// Config is the root configuration tree.
type Config struct {
	Server   sharedconfig.ServerConfig   `mapstructure:"server"`
	Database sharedconfig.DatabaseConfig `mapstructure:"database"`
	Logger   sharedconfig.LoggerConfig   `mapstructure:"logger"`
	Auth     sharedconfig.AuthConfig     `mapstructure:"auth"`
	Redis    sharedconfig.RedisConfig    `mapstructure:"redis"`
	Checkout sharedconfig.CheckoutConfig `mapstructure:"checkout"`
	Email    sharedconfig.EmailConfig    `mapstructure:"email"`
	Vote     sharedconfig.VoteConfig     `mapstructure:"vote"`
}

// Load reads configuration from the given file (or the default search
// paths when empty), then applies QUOKKALIST_* environment overrides.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/quokkalist")
	}

	v.SetEnvPrefix("QUOKKALIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 3600)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "text")
	v.SetDefault("logger.output_path", "stdout")

	v.SetDefault("auth.jwt.access_exp_minutes", 60)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)

	v.SetDefault("checkout.currency", "EUR")

	v.SetDefault("email.enabled", false)
	v.SetDefault("email.smtp_port", 587)

	v.SetDefault("vote.daily_limit", 3)
	v.SetDefault("vote.cooldown_minutes", 60)
	v.SetDefault("vote.reset_sweep_hours", 6)
}

func validate(cfg *Config) error {
	if cfg.Database.Database == "" {
		return fmt.Errorf("database.database is required")
	}
	if cfg.Auth.JWT.Secret == "" {
		return fmt.Errorf("auth.jwt.secret is required")
	}
	if cfg.Checkout.WebhookSecret == "" {
		return fmt.Errorf("checkout.webhook_secret is required")
	}
	if cfg.Vote.DailyLimit < 1 {
		return fmt.Errorf("vote.daily_limit must be at least 1")
	}
	return nil
}
