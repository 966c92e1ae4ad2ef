package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Scheduler  SchedulerConfig  `mapstructure:"scheduler"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Review     ReviewConfig     `mapstructure:"review"`
	Projection ProjectionConfig `mapstructure:"projection"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"SERVER_PORT"`
	Host         string        `mapstructure:"SERVER_HOST"`
	Env          string        `mapstructure:"ENV"`
	ReadTimeout  time.Duration `mapstructure:"SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `mapstructure:"SERVER_WRITE_TIMEOUT"`
}

type DatabaseConfig struct {
	URL          string `mapstructure:"DATABASE_URL"`
	MaxOpenConns int    `mapstructure:"DATABASE_MAX_OPEN_CONNS"`
	MaxIdleConns int    `mapstructure:"DATABASE_MAX_IDLE_CONNS"`
}

type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST"`
	Port     string `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

type SchedulerConfig struct {
	// CronSpec uses six fields (with seconds), e.g. "0 0 0 * * *".
	CronSpec      string `mapstructure:"SCHEDULER_CRON"`
	Timezone      string `mapstructure:"SCHEDULER_TIMEZONE"`
	DispatchLimit int    `mapstructure:"SCHEDULER_DISPATCH_LIMIT"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"LOG_LEVEL"`
	Format string `mapstructure:"LOG_FORMAT"`
}

type ReviewConfig struct {
	// ReferenceSchedules materializes a MinAmount schedule when a scheme is
	// approved, in addition to per-deposit schedules.
	ReferenceSchedules bool `mapstructure:"REVIEW_REFERENCE_SCHEDULES"`
}

type ProjectionConfig struct {
	CacheTTL string `mapstructure:"PROJECTION_CACHE_TTL"`
}

// Load reads configuration from environment variables and files
func Load() (*Config, error) {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("SERVER_READ_TIMEOUT", "15s")
	viper.SetDefault("SERVER_WRITE_TIMEOUT", "15s")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("SCHEDULER_CRON", "0 0 0 * * *")
	viper.SetDefault("SCHEDULER_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("SCHEDULER_DISPATCH_LIMIT", 500)
	viper.SetDefault("REVIEW_REFERENCE_SCHEDULES", true)
	viper.SetDefault("PROJECTION_CACHE_TTL", "5m")

	viper.AutomaticEnv()

	// Try to read from .env file (optional)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./deployments")
	_ = viper.ReadInConfig()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Scheduler.DispatchLimit <= 0 {
		return fmt.Errorf("SCHEDULER_DISPATCH_LIMIT must be greater than 0")
	}

	if _, err := time.ParseDuration(c.Projection.CacheTTL); err != nil {
		return fmt.Errorf("PROJECTION_CACHE_TTL must be a valid duration: %w", err)
	}

	if _, err := time.LoadLocation(c.Scheduler.Timezone); err != nil {
		return fmt.Errorf("SCHEDULER_TIMEZONE must be a valid location: %w", err)
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// GetProjectionCacheTTL returns the projection cache TTL as duration
func (c *Config) GetProjectionCacheTTL() time.Duration {
	ttl, _ := time.ParseDuration(c.Projection.CacheTTL)
	return ttl
}
