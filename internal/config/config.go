package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port         string
	LogLevel     slog.Level
	TaxTableFile string
	MaxBodyBytes int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Load reads the configuration from the environment. Unparseable values
// fall back to their defaults.
func Load() Config {
	return Config{
		Port:         getEnv("PORT", "5001"),
		LogLevel:     getEnvLevel("LOG_LEVEL", slog.LevelInfo),
		TaxTableFile: getEnv("TAX_TABLE_FILE", ""),
		MaxBodyBytes: getEnvInt("MAX_BODY_BYTES", 1<<20),
		ReadTimeout:  getEnvDuration("READ_TIMEOUT", 10*time.Second),
		WriteTimeout: getEnvDuration("WRITE_TIMEOUT", 10*time.Second),
	}
}

// Addr is the listen address for the configured port.
func (c Config) Addr() string {
	return ":" + c.Port
}

func (c Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("PORT must be a number between 1 and 65535, got %q", c.Port)
	}
	if c.MaxBodyBytes < 1024 {
		return errors.New("MAX_BODY_BYTES must be at least 1024")
	}
	if c.ReadTimeout <= 0 || c.WriteTimeout <= 0 {
		return errors.New("READ_TIMEOUT and WRITE_TIMEOUT must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvLevel(key string, fallback slog.Level) slog.Level {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return fallback
	}
	return level
}
