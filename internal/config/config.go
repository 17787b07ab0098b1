package config

import (
	"fmt"
	"storefront/pkg/kafka"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// StorefrontConfig is named after the web app, not the handler struct
type StorefrontConfig struct {
	HTTPPort          int    `yaml:"http_port" env:"HTTP_PORT" env-default:"8080"`
	APIBaseURL        string `yaml:"api_base_url" env:"API_BASE_URL" env-default:"http://localhost:5000"`
	APITimeoutSeconds int    `yaml:"api_timeout_seconds" env:"API_TIMEOUT_SECONDS" env-default:"10"`
	ProxyAPI          bool   `yaml:"proxy_api" env:"PROXY_API" env-default:"false"`
	Locale            string `yaml:"locale" env:"LOCALE" env-default:"fr"`

	SponsorCacheCapacity   int `yaml:"sponsor_cache_capacity" env:"SPONSOR_CACHE_CAPACITY" env-default:"64"`
	SponsorCacheTTLSeconds int `yaml:"sponsor_cache_ttl_seconds" env:"SPONSOR_CACHE_TTL_SECONDS" env-default:"300"`

	ContactTopic string `yaml:"contact_topic" env:"CONTACT_TOPIC" env-default:"storefront.contact"`
	FAQPath      string `yaml:"faq_path" env:"FAQ_PATH"`

	DevAPIPort           int    `yaml:"devapi_port" env:"DEVAPI_PORT" env-default:"5000"`
	DevAPIContactGroupID string `yaml:"devapi_contact_group_id" env:"DEVAPI_CONTACT_GROUP_ID" env-default:"storefront-devapi"`
}

// APITimeout is the per-request timeout of the remote API client
func (c StorefrontConfig) APITimeout() time.Duration {
	return time.Duration(c.APITimeoutSeconds) * time.Second
}

// SponsorCacheTTL is how long a cached sponsor stays valid
func (c StorefrontConfig) SponsorCacheTTL() time.Duration {
	return time.Duration(c.SponsorCacheTTLSeconds) * time.Second
}

type Config struct {
	Storefront StorefrontConfig `yaml:"storefront" env-prefix:"STOREFRONT_"`
	Kafka      kafka.Config     `yaml:"kafka" env-prefix:"KAFKA_"`
}

// TryRead reads the yaml file at path (env vars still override it), or env vars only if path is ""
func TryRead(path string) (Config, error) {
	var cfg Config
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		return cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{},
			fmt.Errorf("failed to read env variables: %w", err)
	}
	return cfg, nil
}
