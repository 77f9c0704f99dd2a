package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/routinely/routinely/internal/model"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	Port    string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Scheduling
	// WeekStart anchors weeks-period goals when a request does not name
	// its own week-start day.
	WeekStart model.DayOfWeek

	// Rate limiting (write endpoints)
	RateLimitPerMinute int

	// Observability (optional)
	SentryDSN string
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		AppName: envString("APP_NAME", "Routinely"),
		AppEnv:  envString("APP_ENV", "development"),
		Port:    envString("PORT", "8090"),

		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/routinely.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		WeekStart: envWeekStart("WEEK_START", model.Monday),

		RateLimitPerMinute: envInt("RATE_LIMIT_PER_MINUTE", 60),

		SentryDSN: envString("SENTRY_DSN", ""),
	}

	return cfg
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envWeekStart(key string, def model.DayOfWeek) model.DayOfWeek {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	day, err := model.ParseDayOfWeek(v)
	if err != nil {
		slog.Warn("config invalid week start, using default", "key", key, "value", v, "default", def.String())
		return def
	}
	return day
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
