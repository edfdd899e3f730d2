/**
 * @description
 * This package handles the configuration management for the service. It uses
 * the Viper library to read configuration from environment variables, with
 * an optional .env file for local development.
 *
 * @dependencies
 * - github.com/spf13/viper: A popular library for Go application configuration.
 */
package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all the configuration variables for the service.
// These values are loaded from environment variables.
type Config struct {
	ServerPort string `mapstructure:"SERVER_PORT"`

	// DatabaseURL is the Postgres connection string. When empty the service
	// runs on the in-memory record store (local development only).
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// RedisURL enables the subscription-endpoint rate limiter when set.
	RedisURL            string `mapstructure:"REDIS_URL"`
	RateLimitPrefix     string `mapstructure:"RATE_LIMIT_PREFIX"`
	SubscribeRatePerMin int    `mapstructure:"SUBSCRIBE_RATE_LIMIT_PER_MINUTE"`

	// RabbitMQURL enables subscription lifecycle events when set.
	RabbitMQURL   string `mapstructure:"RABBITMQ_URL"`
	EventExchange string `mapstructure:"SUBSCRIPTION_EVENT_EXCHANGE"`

	// SweepSchedule is a cron expression for the expiry sweep. Empty
	// disables the sweep, leaving status checks as the only expiry trigger.
	SweepSchedule string `mapstructure:"SWEEP_SCHEDULE"`
}

// LoadConfig reads configuration from environment variables, with an
// optional .env file in the given path.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("RATE_LIMIT_PREFIX", "sadaa:rate_limit")
	viper.SetDefault("SUBSCRIBE_RATE_LIMIT_PER_MINUTE", 30)
	viper.SetDefault("SUBSCRIPTION_EVENT_EXCHANGE", "subscription.events")

	// Bind environment variables explicitly to ensure they appear in Unmarshal
	_ = viper.BindEnv("SERVER_PORT")
	_ = viper.BindEnv("DATABASE_URL")
	_ = viper.BindEnv("REDIS_URL")
	_ = viper.BindEnv("RATE_LIMIT_PREFIX")
	_ = viper.BindEnv("SUBSCRIBE_RATE_LIMIT_PER_MINUTE")
	_ = viper.BindEnv("RABBITMQ_URL")
	_ = viper.BindEnv("SUBSCRIPTION_EVENT_EXCHANGE")
	_ = viper.BindEnv("SWEEP_SCHEDULE")

	// Attempt to read the config file. It's okay if it doesn't exist.
	if err = viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("level=warn component=config msg=\"failed to read config file; using environment values\" err=%v", err)
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	if config.SubscribeRatePerMin < 0 {
		config.SubscribeRatePerMin = 0
	}
	config.DatabaseURL = strings.TrimSpace(config.DatabaseURL)
	config.RedisURL = strings.TrimSpace(config.RedisURL)
	config.RabbitMQURL = strings.TrimSpace(config.RabbitMQURL)
	config.SweepSchedule = strings.TrimSpace(config.SweepSchedule)

	return
}
