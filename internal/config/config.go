package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all client configuration
type Config struct {
	API      APIConfig
	Storage  StorageConfig
	Checkout CheckoutConfig
	Log      LogConfig
}

// APIConfig holds settings for the remote storefront API
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// StorageConfig holds durable local storage settings
type StorageConfig struct {
	Backend string // memory, sqlite, redis
	Path    string // sqlite database file
	Redis   RedisConfig
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// CheckoutConfig holds pricing constants for the checkout flow
type CheckoutConfig struct {
	FreeShippingThreshold decimal.Decimal
	ShippingFee           decimal.Decimal
	TaxRate               decimal.Decimal
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// Load loads configuration from TOML file and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with STOREFRONT_ prefix (e.g. STOREFRONT_API_BASE_URL)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.storefront")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Zero is a legitimate value for all three (free shipping on every order,
	// no tax), so defaulting happens at the viper layer where unset and
	// explicit zero are distinguishable.
	v.SetDefault("checkout.free_shipping_threshold", "2000")
	v.SetDefault("checkout.shipping_fee", "150")
	v.SetDefault("checkout.tax_rate", "0.15")

	cfg := &Config{
		API: APIConfig{
			BaseURL: v.GetString("api.base_url"),
			Timeout: v.GetDuration("api.timeout"),
		},
		Storage: StorageConfig{
			Backend: v.GetString("storage.backend"),
			Path:    v.GetString("storage.path"),
			Redis: RedisConfig{
				Host:     v.GetString("storage.redis.host"),
				Port:     v.GetInt("storage.redis.port"),
				Password: v.GetString("storage.redis.password"),
				DB:       v.GetInt("storage.redis.db"),
			},
		},
		Checkout: CheckoutConfig{
			FreeShippingThreshold: decimalOrZero(v.GetString("checkout.free_shipping_threshold")),
			ShippingFee:           decimalOrZero(v.GetString("checkout.shipping_fee")),
			TaxRate:               decimalOrZero(v.GetString("checkout.tax_rate")),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// decimalOrZero parses a decimal string, returning zero for empty or invalid input
func decimalOrZero(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "http://localhost:5001/api"
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = 15 * time.Second
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = "sqlite"
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = "storefront.db"
	}
	if cfg.Storage.Redis.Host == "" {
		cfg.Storage.Redis.Host = "localhost"
	}
	if cfg.Storage.Redis.Port == 0 {
		cfg.Storage.Redis.Port = 6379
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stderr"
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if _, err := url.Parse(c.API.BaseURL); err != nil {
		return fmt.Errorf("api.base_url is not a valid URL: %w", err)
	}
	switch c.Storage.Backend {
	case "memory", "sqlite", "redis":
	default:
		return fmt.Errorf("storage.backend must be one of memory, sqlite, redis, got %q", c.Storage.Backend)
	}
	if c.Checkout.FreeShippingThreshold.IsNegative() {
		return fmt.Errorf("checkout.free_shipping_threshold cannot be negative")
	}
	if c.Checkout.ShippingFee.IsNegative() {
		return fmt.Errorf("checkout.shipping_fee cannot be negative")
	}
	if c.Checkout.TaxRate.IsNegative() || c.Checkout.TaxRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("checkout.tax_rate must be between 0 and 1, got %s", c.Checkout.TaxRate)
	}
	return nil
}

// RedisAddr returns the host:port address for the Redis backend
func (r *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}
