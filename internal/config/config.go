// Package config loads process configuration from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config is read once at startup and never mutated afterwards.
type Config struct {
	AppPort string

	JWTSecret    string
	JWTExpiresIn time.Duration

	DatabaseDriver string
	DatabaseDSN    string

	// RabbitMQURL is empty when audit events are disabled.
	RabbitMQURL string

	// AdminEmail is empty when admin seeding is disabled.
	AdminName     string
	AdminEmail    string
	AdminPassword string

	LogLevel  string
	LogFormat string
}

// Load reads configuration. Files listed in envFiles are loaded into the
// environment first; missing files are ignored and variables already set
// take precedence.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil {
			logrus.WithField("file", f).Debug("env file not loaded")
		}
	}

	v := viper.New()
	v.SetDefault("APP_PORT", ":3000")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRES_IN", "10m")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "blog.db")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("ADMIN_NAME", "admin")
	v.SetDefault("ADMIN_EMAIL", "")
	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.AutomaticEnv()

	ttl, err := parseExpiry(v.GetString("JWT_EXPIRES_IN"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		AppPort:        v.GetString("APP_PORT"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		JWTExpiresIn:   ttl,
		DatabaseDriver: v.GetString("DATABASE_DRIVER"),
		DatabaseDSN:    v.GetString("DATABASE_DSN"),
		RabbitMQURL:    v.GetString("RABBITMQ_URL"),
		AdminName:      v.GetString("ADMIN_NAME"),
		AdminEmail:     v.GetString("ADMIN_EMAIL"),
		AdminPassword:  v.GetString("ADMIN_PASSWORD"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		LogFormat:      v.GetString("LOG_FORMAT"),
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}
	if cfg.AdminEmail != "" && cfg.AdminPassword == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD must be set when ADMIN_EMAIL is")
	}
	return cfg, nil
}

// parseExpiry accepts a Go duration ("10m") or a bare number of seconds ("3600").
func parseExpiry(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if secs, err := strconv.Atoi(s); err == nil {
		if secs <= 0 {
			return 0, fmt.Errorf("invalid JWT_EXPIRES_IN %q: must be positive", s)
		}
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid JWT_EXPIRES_IN %q", s)
	}
	return d, nil
}

// ConfigureLogging applies LogLevel and LogFormat to the standard logrus logger.
func (c *Config) ConfigureLogging() {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if c.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}
