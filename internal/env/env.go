// Package env loads the tracker's runtime configuration from the process
// environment, reading a .env file first when one is present.
package env

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type AppEnv string

const (
	EnvDevelopment AppEnv = "development"
	EnvProduction  AppEnv = "production"
)

// Backend names accepted by STORE_BACKEND.
const (
	BackendBolt     = "bolt"
	BackendPostgres = "postgres"
	BackendMySQL    = "mysql"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

type PostgresConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
}

type MySQLConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type StoreConfig struct {
	Backend  string
	BoltPath string
	Postgres PostgresConfig
	MySQL    MySQLConfig
	Redis    RedisConfig
}

type ReminderConfig struct {
	Interval time.Duration
	Window   time.Duration
	Location *time.Location
	Desktop  bool
	Sound    bool
}

type Config struct {
	Port     int
	AppEnv   AppEnv
	LogLevel slog.Level
	Store    StoreConfig
	Reminder ReminderConfig
}

func (c Config) IsProduction() bool {
	return c.AppEnv == EnvProduction
}

// Init reads .env into the environment. A missing file is not an error.
func Init() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found")
		return
	}
	slog.Debug("environment variables loaded from .env")
}

// Load builds a Config from the environment, falling back to defaults for
// anything unset or malformed.
func Load() Config {
	return Config{
		Port:     GetInt("PORT", 8080),
		AppEnv:   AppEnv(GetString("APP_ENV", string(EnvDevelopment))),
		LogLevel: GetLevel("LOG_LEVEL", slog.LevelInfo),
		Store: StoreConfig{
			Backend:  strings.ToLower(GetString("STORE_BACKEND", BackendBolt)),
			BoltPath: GetString("BOLT_PATH", "data/tracker.db"),
			Postgres: PostgresConfig{
				Host:     GetString("BLUEPRINT_DB_HOST", "localhost"),
				Port:     GetString("BLUEPRINT_DB_PORT", "5432"),
				Username: GetString("BLUEPRINT_DB_USERNAME", "postgres"),
				Password: GetString("BLUEPRINT_DB_PASSWORD", ""),
				Database: GetString("BLUEPRINT_DB_DATABASE", "tracker"),
			},
			MySQL: MySQLConfig{
				Host:     GetString("MYSQL_HOST", "127.0.0.1"),
				Port:     GetString("MYSQL_PORT", "3306"),
				User:     GetString("MYSQL_USER", "root"),
				Password: GetString("MYSQL_PASSWORD", ""),
				Database: GetString("MYSQL_DATABASE", "tracker"),
			},
			Redis: RedisConfig{
				Addr:     GetString("REDIS_ADDR", "localhost:6379"),
				Password: GetString("REDIS_PASSWORD", ""),
				DB:       GetInt("REDIS_DB", 0),
			},
		},
		Reminder: ReminderConfig{
			Interval: GetDuration("REMINDER_INTERVAL", time.Minute),
			Window:   GetDuration("REMINDER_WINDOW", time.Minute),
			Location: GetLocation("REMINDER_TZ", time.Local),
			Desktop:  GetBool("NOTIFY_DESKTOP", true),
			Sound:    GetBool("NOTIFY_SOUND", true),
		},
	}
}

func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.Host, c.Username, c.Password, c.Database, c.Port)
}

func GetString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func GetInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		i, err := strconv.Atoi(val)
		if err != nil {
			slog.Warn("env value must be an integer, using fallback", "key", key, "value", val, "fallback", fallback)
			return fallback
		}
		return i
	}
	return fallback
}

func GetBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err != nil {
			slog.Warn("env value must be a boolean, using fallback", "key", key, "value", val, "fallback", fallback)
			return fallback
		}
		return b
	}
	return fallback
}

// GetDuration accepts Go duration strings ("90s", "2m"). Non-positive values
// are rejected.
func GetDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil || d <= 0 {
			slog.Warn("env value must be a positive duration, using fallback", "key", key, "value", val, "fallback", fallback)
			return fallback
		}
		return d
	}
	return fallback
}

func GetLevel(key string, fallback slog.Level) slog.Level {
	if val := os.Getenv(key); val != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(val)); err != nil {
			slog.Warn("unknown log level, using fallback", "key", key, "value", val, "fallback", fallback)
			return fallback
		}
		return lvl
	}
	return fallback
}

// GetLocation resolves an IANA zone name. "Local" and unset mean the
// fallback.
func GetLocation(key string, fallback *time.Location) *time.Location {
	val := os.Getenv(key)
	if val == "" || strings.EqualFold(val, "local") {
		return fallback
	}
	loc, err := time.LoadLocation(val)
	if err != nil {
		slog.Warn("unknown time zone, using fallback", "key", key, "value", val, "error", err)
		return fallback
	}
	return loc
}
