package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port            string
	MongoURI        string
	MongoDB         string
	AllowedOrigin   string
	RabbitMQURL     string
	RateLimitMax    int
	RateLimitWindow time.Duration
	LogLevel        string
}

// Load reads configuration from environment variables, falling back to
// defaults for anything unset.
func Load() *Config {
	viper.SetDefault("APP_PORT", ":3000")
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DB", "userapi")
	viper.SetDefault("ALLOWED_ORIGIN", "http://localhost:4000")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("RATE_LIMIT_MAX", 100)
	viper.SetDefault("RATE_LIMIT_WINDOW", time.Minute)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.AutomaticEnv()

	return &Config{
		Port:            viper.GetString("APP_PORT"),
		MongoURI:        viper.GetString("MONGO_URI"),
		MongoDB:         viper.GetString("MONGO_DB"),
		AllowedOrigin:   viper.GetString("ALLOWED_ORIGIN"),
		RabbitMQURL:     viper.GetString("RABBITMQ_URL"),
		RateLimitMax:    viper.GetInt("RATE_LIMIT_MAX"),
		RateLimitWindow: viper.GetDuration("RATE_LIMIT_WINDOW"),
		LogLevel:        viper.GetString("LOG_LEVEL"),
	}
}
