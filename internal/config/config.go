package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	CORS      CORSConfig      `toml:"cors"`
	Session   SessionConfig   `toml:"session"`
	Market    MarketConfig    `toml:"market"`
	Yahoo     YahooConfig     `toml:"yahoo"`
	Scheduler SchedulerConfig `toml:"scheduler"`
	Logging   LoggingConfig   `toml:"logging"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string `toml:"port"`
	Host string `toml:"host"`
	Addr string `toml:"-"` // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
}

// SessionConfig holds the session token settings.
// Key is a base64 encoded fernet key; when empty a random key is generated at
// startup and tokens do not survive a restart.
type SessionConfig struct {
	Key string   `toml:"key"`
	TTL Duration `toml:"ttl"`
}

// MarketConfig holds valuation constants.
type MarketConfig struct {
	USDTWDRate float64 `toml:"usd_twd_rate"`
}

// YahooConfig holds the quote provider settings.
type YahooConfig struct {
	ChartURL  string   `toml:"chart_url"`
	QuoteURL  string   `toml:"quote_url"`
	RateLimit float64  `toml:"rate_limit"` // requests per second
	Timeout   Duration `toml:"timeout"`
}

// SchedulerConfig holds the daily history snapshot job settings.
type SchedulerConfig struct {
	Enabled  bool   `toml:"enabled"`
	Schedule string `toml:"schedule"` // standard 5 field cron expression
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// Duration is a time.Duration written as a Go duration string ("12h", "10s").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "5001",
			Host: "localhost",
		},
		Database: DatabaseConfig{
			Path: "./data/nexus_wealth.db",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Session: SessionConfig{
			TTL: Duration{12 * time.Hour},
		},
		Market: MarketConfig{
			USDTWDRate: 32.5,
		},
		Yahoo: YahooConfig{
			ChartURL:  "https://query1.finance.yahoo.com/v8/finance/chart",
			QuoteURL:  "https://query1.finance.yahoo.com/v7/finance/quote",
			RateLimit: 2,
			Timeout:   Duration{10 * time.Second},
		},
		Scheduler: SchedulerConfig{
			Enabled:  true,
			Schedule: "5 0 * * *",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the defaults, an optional TOML file named by
// CONFIG_FILE, then environment variables and the .env file. Later sources win.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := applyEnv(config); err != nil {
		return nil, err
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

func applyEnv(c *Config) error {
	c.Server.Port = getEnv("SERVER_PORT", c.Server.Port)
	c.Server.Host = getEnv("SERVER_HOST", c.Server.Host)
	c.Database.Path = getEnv("DB_PATH", c.Database.Path)
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		c.CORS.AllowedOrigins = splitList(origins)
	}
	c.Session.Key = getEnv("SESSION_KEY", c.Session.Key)
	c.Yahoo.ChartURL = getEnv("YAHOO_BASE_URL", c.Yahoo.ChartURL)
	c.Yahoo.QuoteURL = getEnv("YAHOO_QUERY_URL", c.Yahoo.QuoteURL)
	c.Scheduler.Schedule = getEnv("SNAPSHOT_SCHEDULE", c.Scheduler.Schedule)
	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)

	var err error
	if c.Session.TTL.Duration, err = getDuration("SESSION_TTL", c.Session.TTL.Duration); err != nil {
		return err
	}
	if c.Yahoo.Timeout.Duration, err = getDuration("YAHOO_TIMEOUT", c.Yahoo.Timeout.Duration); err != nil {
		return err
	}
	if c.Market.USDTWDRate, err = getFloat("USD_TWD_RATE", c.Market.USDTWDRate); err != nil {
		return err
	}
	if c.Yahoo.RateLimit, err = getFloat("YAHOO_RATE_LIMIT", c.Yahoo.RateLimit); err != nil {
		return err
	}
	if v := os.Getenv("SNAPSHOT_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid SNAPSHOT_ENABLED %q: %w", v, err)
		}
		c.Scheduler.Enabled = b
	}
	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return f, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
