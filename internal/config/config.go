package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ErrMissingConfig marks a fatal configuration error: required credentials
// are absent and the pipeline must not start.
var ErrMissingConfig = errors.New("missing required configuration")

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Shopify  ShopifyConfig  `mapstructure:"shopify"`
	Feed     FeedConfig     `mapstructure:"feed"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Host string `mapstructure:"host"`
}

// ShopifyConfig holds Storefront API configuration
type ShopifyConfig struct {
	StoreDomain           string `mapstructure:"store_domain"`
	StorefrontAccessToken string `mapstructure:"storefront_access_token"`
	APIVersion            string `mapstructure:"api_version"`
	Timeout               int    `mapstructure:"timeout"`
	MaxRequestsPerSecond  int    `mapstructure:"max_requests_per_second"`
}

// FeedConfig holds feed generation settings
type FeedConfig struct {
	SiteBaseURL string `mapstructure:"site_base_url"`
	Currency    string `mapstructure:"currency"`
	CacheTTL    int    `mapstructure:"cache_ttl"` // seconds
	OutputPath  string `mapstructure:"output_path"`
}

// DatabaseConfig holds database configuration. An empty host disables the
// run history repository.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// RedisConfig holds Redis connection details for the feed cache
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

// Load loads configuration from an optional config.yaml with environment
// variable overrides (SHOPIFY_STORE_DOMAIN, SHOPIFY_STOREFRONT_ACCESS_TOKEN, ...).
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		// The CLI is routinely configured through the environment alone.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Shopify.StoreDomain) == "" {
		return fmt.Errorf("%w: shopify.store_domain (SHOPIFY_STORE_DOMAIN)", ErrMissingConfig)
	}
	if strings.TrimSpace(c.Shopify.StorefrontAccessToken) == "" {
		return fmt.Errorf("%w: shopify.storefront_access_token (SHOPIFY_STOREFRONT_ACCESS_TOKEN)", ErrMissingConfig)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.host", "0.0.0.0")

	viper.SetDefault("shopify.store_domain", "")
	viper.SetDefault("shopify.storefront_access_token", "")
	viper.SetDefault("shopify.api_version", "2024-01")
	viper.SetDefault("shopify.timeout", 30)
	viper.SetDefault("shopify.max_requests_per_second", 5)

	viper.SetDefault("feed.site_base_url", "https://www.teddyshondenshop.nl")
	viper.SetDefault("feed.currency", "EUR")
	viper.SetDefault("feed.cache_ttl", 3600)
	viper.SetDefault("feed.output_path", "public/productfeed.xml")

	viper.SetDefault("database.host", "")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.name", "teddys")
	viper.SetDefault("database.user", "teddys_user")
	viper.SetDefault("database.password", "")

	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.database", 0)
}
