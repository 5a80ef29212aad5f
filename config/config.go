package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// envFiles are tried in order; the first one found is loaded.
var envFiles = []string{".env.development", ".env"}

// Config represents the service configuration
type Config struct {
	Port                 string        `mapstructure:"port"`
	GinMode              string        `mapstructure:"gin_mode"`
	DevMode              bool          `mapstructure:"dev_mode"`
	DataDir              string        `mapstructure:"data_dir"`
	LogLevel             string        `mapstructure:"log_level"`
	LogFormat            string        `mapstructure:"log_format"`
	RateLimit            float64       `mapstructure:"rate_limit"`
	RateBurst            int           `mapstructure:"rate_burst"`
	CacheTTL             time.Duration `mapstructure:"cache_ttl"`
	CacheCleanup         time.Duration `mapstructure:"cache_cleanup"`
	AllowedOrigins       []string      `mapstructure:"allowed_origins"`
	MaxBodyBytes         int64         `mapstructure:"max_body_bytes"`
	StatsRetentionMonths int           `mapstructure:"stats_retention_months"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8082")
	v.SetDefault("gin_mode", gin.ReleaseMode)
	v.SetDefault("dev_mode", false)
	v.SetDefault("data_dir", "./data")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("rate_limit", 2.0)
	v.SetDefault("rate_burst", 5)
	v.SetDefault("cache_ttl", 30*time.Minute)
	v.SetDefault("cache_cleanup", 5*time.Minute)
	v.SetDefault("allowed_origins", []string{"*"})
	v.SetDefault("max_body_bytes", int64(2<<20))
	v.SetDefault("stats_retention_months", 12)
}

// LoadEnv loads .env.development from dir, falling back to .env, into the
// process environment. Variables already set are not overridden. It returns
// the file that was loaded, or "" when neither exists.
func LoadEnv(dir string) (string, error) {
	for _, name := range envFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return "", fmt.Errorf("error loading %s: %w", path, err)
		}
		return path, nil
	}
	return "", nil
}

// Load reads configuration from defaults, an optional config file and the
// environment, in increasing order of precedence.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.AllowedOrigins = splitOrigins(cfg.AllowedOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// splitOrigins accepts both list values and comma separated strings.
func splitOrigins(origins []string) []string {
	var out []string
	for _, o := range origins {
		for _, part := range strings.Split(o, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate rejects values the service cannot run with
func (c *Config) Validate() error {
	var errs []error

	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("port must be a number between 1 and 65535, got %q", c.Port))
	}
	switch c.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		errs = append(errs, fmt.Errorf("gin mode must be debug, release or test, got %q", c.GinMode))
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("invalid log level %q", c.LogLevel))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("log format must be text or json, got %q", c.LogFormat))
	}
	if c.DataDir == "" {
		errs = append(errs, errors.New("data dir is required"))
	}
	if c.RateLimit <= 0 {
		errs = append(errs, errors.New("rate limit must be positive"))
	}
	if c.RateBurst < 1 {
		errs = append(errs, errors.New("rate burst must be at least 1"))
	}
	if c.CacheTTL <= 0 || c.CacheCleanup <= 0 {
		errs = append(errs, errors.New("cache ttl and cleanup interval must be positive"))
	}
	if len(c.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("at least one allowed origin is required"))
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("max body bytes must be positive"))
	}
	if c.StatsRetentionMonths < 1 {
		errs = append(errs, errors.New("stats retention must be at least 1 month"))
	}

	return errors.Join(errs...)
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + c.Port
}
