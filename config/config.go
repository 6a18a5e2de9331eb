package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB     int    `mapstructure:"REDIS_CACHE_DB"`
	RedisTaskQueueDB int    `mapstructure:"REDIS_TASK_QUEUE_DB"`

	// Scheduling policy knobs.
	DefaultSlotMinutes    int  `mapstructure:"DEFAULT_SLOT_MINUTES"`
	RescheduleLeadHours   int  `mapstructure:"RESCHEDULE_LEAD_HOURS"`
	RescheduleWindowDays  int  `mapstructure:"RESCHEDULE_WINDOW_DAYS"`
	AllowFutureAttendance bool `mapstructure:"ALLOW_FUTURE_ATTENDANCE"`

	// Default ground auto-provisioned when no ground exists yet.
	DefaultGroundName  string `mapstructure:"DEFAULT_GROUND_NAME"`
	DefaultGroundSlots int    `mapstructure:"DEFAULT_GROUND_SLOTS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_TASK_QUEUE_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "pitchside")
	viper.SetDefault("DEFAULT_SLOT_MINUTES", 120)
	viper.SetDefault("RESCHEDULE_LEAD_HOURS", 24)
	viper.SetDefault("RESCHEDULE_WINDOW_DAYS", 7)
	viper.SetDefault("ALLOW_FUTURE_ATTENDANCE", false)
	viper.SetDefault("DEFAULT_GROUND_NAME", "Main Ground")
	viper.SetDefault("DEFAULT_GROUND_SLOTS", 4)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
