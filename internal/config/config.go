package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultAPIBaseURL is used when API_BASE_URL is unset.
const DefaultAPIBaseURL = "http://localhost:3001/api"

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName            string        `mapstructure:"app_name"`
	Env                string        `mapstructure:"app_env"`
	LogLevel           string        `mapstructure:"log_level"`
	LogFormat          string        `mapstructure:"log_format"`
	APIBaseURL         string        `mapstructure:"api_base_url"`
	HTTPTimeoutSeconds int64         `mapstructure:"http_timeout_seconds"`
	HTTPTimeout        time.Duration `mapstructure:"-"`
	NotifiersFile      string        `mapstructure:"notifiers_file"`

	StorageType          string        `mapstructure:"storage_type"`
	PagesDBPath          string        `mapstructure:"pages_db_path"`
	PagesTTLSeconds      int64         `mapstructure:"pages_ttl_seconds"`
	PagesCleanupSeconds  int64         `mapstructure:"pages_cleanup_interval_seconds"`
	PagesTTL             time.Duration `mapstructure:"-"`
	PagesCleanupInterval time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and the optional configs/.env file.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := finalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "mpc-dashboard")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("api_base_url", DefaultAPIBaseURL)
	v.SetDefault("http_timeout_seconds", 0) // no timeout beyond the transport default
	v.SetDefault("notifiers_file", "")
	v.SetDefault("storage_type", "bbolt")
	v.SetDefault("pages_db_path", "./data/pages.db")
	v.SetDefault("pages_ttl_seconds", int64((30*24*time.Hour)/time.Second))
	v.SetDefault("pages_cleanup_interval_seconds", int64((12*time.Hour)/time.Second))
}

// finalize validates raw values and derives the duration fields.
func finalize(cfg *Config) error {
	base, err := normalizeBaseURL(cfg.APIBaseURL)
	if err != nil {
		return err
	}
	cfg.APIBaseURL = base

	if cfg.HTTPTimeoutSeconds < 0 {
		return fmt.Errorf("invalid http_timeout_seconds (must be zero or positive seconds)")
	}
	cfg.HTTPTimeout = time.Duration(cfg.HTTPTimeoutSeconds) * time.Second

	switch strings.ToLower(strings.TrimSpace(cfg.LogFormat)) {
	case "", "json":
		cfg.LogFormat = "json"
	case "console":
		cfg.LogFormat = "console"
	default:
		return fmt.Errorf("invalid log_format %q (expected json or console)", cfg.LogFormat)
	}

	if cfg.PagesTTLSeconds <= 0 {
		return fmt.Errorf("invalid pages_ttl_seconds (must be positive seconds)")
	}
	if cfg.PagesCleanupSeconds <= 0 {
		return fmt.Errorf("invalid pages_cleanup_interval_seconds (must be positive seconds)")
	}
	cfg.PagesTTL = time.Duration(cfg.PagesTTLSeconds) * time.Second
	cfg.PagesCleanupInterval = time.Duration(cfg.PagesCleanupSeconds) * time.Second
	cfg.NotifiersFile = strings.TrimSpace(cfg.NotifiersFile)

	return nil
}

// WithAPIBaseURL returns a copy of cfg pointing at a different API base URL.
func (cfg Config) WithAPIBaseURL(raw string) (*Config, error) {
	base, err := normalizeBaseURL(raw)
	if err != nil {
		return nil, err
	}
	cfg.APIBaseURL = base
	return &cfg, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("api_base_url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse api_base_url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("invalid api_base_url %q (must be an absolute http(s) URL)", raw)
	}
	return strings.TrimRight(raw, "/"), nil
}
