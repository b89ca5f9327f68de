package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration

	HTTPAddr        string
	ShutdownTimeout time.Duration

	LogLevel string

	LLM LLMConfig
}

// LLMConfig is the single configuration surface of the model client.
type LLMConfig struct {
	Token    string
	Endpoint string
	Model    string
	Timeout  time.Duration
}

// Load reads configuration from the environment. A .env file in the
// working directory, if any, is applied first without overriding variables
// that are already set.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		DatabaseURL:     getenv("DATABASE_URL", ""),
		MaxOpenConns:    getenvInt("DB_MAX_OPEN", 20),
		MaxIdleConns:    getenvInt("DB_MAX_IDLE", 10),
		ConnMaxLifetime: getenvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		ConnMaxIdleTime: getenvDuration("DB_CONN_MAX_IDLE_TIME", 5*time.Minute),
		HTTPAddr:        getenv("HTTP_ADDR", ":8080"),
		ShutdownTimeout: getenvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		LLM: LLMConfig{
			Token:    getenv("GITHUB_AI_TOKEN", ""),
			Endpoint: getenv("LLM_ENDPOINT", "https://models.github.ai/inference"),
			Model:    getenv("LLM_MODEL", "gpt-4o-mini"),
			Timeout:  getenvDuration("LLM_TIMEOUT", 30*time.Second),
		},
	}
}

// Validate reports the first setting that would make the server unusable.
// A missing LLM token is allowed: AI endpoints then answer 503.
func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.MaxOpenConns <= 0 || c.MaxIdleConns < 0 {
		return fmt.Errorf("invalid pool size: max_open=%d max_idle=%d", c.MaxOpenConns, c.MaxIdleConns)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout)
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT must be positive, got %s", c.LLM.Timeout)
	}
	u, err := url.Parse(c.LLM.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid LLM_ENDPOINT: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid LLM_ENDPOINT %q: want an absolute http(s) URL", c.LLM.Endpoint)
	}
	if c.LLM.Model == "" {
		return errors.New("LLM_MODEL must not be empty")
	}
	return nil
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
