package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Nixie-Tech-LLC/athan/internal/model"
)

// Config holds environment-based settings
type Config struct {
	Environment   string
	LogLevel      string
	ServerAddress string

	DatabaseURL string

	RedisAddress  string
	RedisUsername string
	RedisPassword string
	CacheTTL      time.Duration

	MQTTBrokerURL   string
	MQTTTopicPrefix string
	PushInterval    time.Duration

	AladhanBaseURL string
	AladhanMethod  int

	DefaultLocation model.Location
	Timezone        *time.Location
	StrictOrder     bool
}

func (c *Config) Development() bool {
	return strings.EqualFold(c.Environment, "development")
}

// Locations returns the configured locations the server knows up front.
func (c *Config) Locations() []model.Location {
	if c.DefaultLocation.Name == "" {
		return nil
	}
	return []model.Location{c.DefaultLocation}
}

func defaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SERVER_ADDRESS", ":8080")
	v.SetDefault("CACHE_TTL", "12h")
	v.SetDefault("MQTT_TOPIC_PREFIX", "athan")
	v.SetDefault("PUSH_INTERVAL", "60s")
	v.SetDefault("ALADHAN_BASE_URL", "https://api.aladhan.com/v1")
	v.SetDefault("ALADHAN_METHOD", 2)
	v.SetDefault("TIMEZONE", "Local")
	v.SetDefault("STRICT_ORDER", true)
}

// Load reads configuration from environment variables, after loading envFile
// (usually ".env") when it exists.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return nil, fmt.Errorf("load %s: %w", envFile, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("stat %s: %w", envFile, err)
		}
	}

	v := viper.New()
	defaults(v)
	v.AutomaticEnv()
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cacheTTL, err := time.ParseDuration(v.GetString("CACHE_TTL"))
	if err != nil {
		return nil, fmt.Errorf("CACHE_TTL: %w", err)
	}
	pushInterval, err := time.ParseDuration(v.GetString("PUSH_INTERVAL"))
	if err != nil {
		return nil, fmt.Errorf("PUSH_INTERVAL: %w", err)
	}
	if pushInterval <= 0 {
		return nil, fmt.Errorf("PUSH_INTERVAL must be positive, got %s", pushInterval)
	}

	tz := v.GetString("TIMEZONE")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE %q: %w", tz, err)
	}

	method := v.GetInt("ALADHAN_METHOD")
	if method < 0 {
		return nil, fmt.Errorf("ALADHAN_METHOD must not be negative, got %d", method)
	}

	return &Config{
		Environment:   v.GetString("APP_ENV"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		ServerAddress: v.GetString("SERVER_ADDRESS"),

		DatabaseURL: v.GetString("DATABASE_URL"),

		RedisAddress:  v.GetString("REDIS_ADDRESS"),
		RedisUsername: v.GetString("REDIS_USERNAME"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		CacheTTL:      cacheTTL,

		MQTTBrokerURL:   v.GetString("MQTT_BROKER_URL"),
		MQTTTopicPrefix: v.GetString("MQTT_TOPIC_PREFIX"),
		PushInterval:    pushInterval,

		AladhanBaseURL: v.GetString("ALADHAN_BASE_URL"),
		AladhanMethod:  method,

		DefaultLocation: model.Location{
			Name:      v.GetString("DEFAULT_LOCATION"),
			Latitude:  v.GetFloat64("DEFAULT_LATITUDE"),
			Longitude: v.GetFloat64("DEFAULT_LONGITUDE"),
		},
		Timezone:    loc,
		StrictOrder: v.GetBool("STRICT_ORDER"),
	}, nil
}
