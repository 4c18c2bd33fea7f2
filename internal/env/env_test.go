package env

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORE_BACKEND", "REMINDER_INTERVAL", "REMINDER_WINDOW", "REMINDER_TZ", "NOTIFY_SOUND", "LOG_LEVEL", "APP_ENV"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, BackendBolt, cfg.Store.Backend)
	assert.Equal(t, time.Minute, cfg.Reminder.Interval)
	assert.Equal(t, time.Minute, cfg.Reminder.Window)
	assert.Equal(t, time.Local, cfg.Reminder.Location)
	assert.True(t, cfg.Reminder.Sound)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_BACKEND", "Redis")
	t.Setenv("REMINDER_INTERVAL", "30s")
	t.Setenv("REMINDER_TZ", "UTC")
	t.Setenv("NOTIFY_SOUND", "false")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("APP_ENV", "production")

	cfg := Load()

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, BackendRedis, cfg.Store.Backend)
	assert.Equal(t, 30*time.Second, cfg.Reminder.Interval)
	assert.Equal(t, "UTC", cfg.Reminder.Location.String())
	assert.False(t, cfg.Reminder.Sound)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.True(t, cfg.IsProduction())
}

func TestGetters_FallBackOnMalformedValues(t *testing.T) {
	t.Setenv("X_INT", "eight")
	t.Setenv("X_BOOL", "maybe")
	t.Setenv("X_DUR", "-5s")
	t.Setenv("X_TZ", "Mars/Olympus_Mons")

	assert.Equal(t, 7, GetInt("X_INT", 7))
	assert.True(t, GetBool("X_BOOL", true))
	assert.Equal(t, time.Second, GetDuration("X_DUR", time.Second))
	assert.Equal(t, time.UTC, GetLocation("X_TZ", time.UTC))
}

func TestPostgresConfig_DSN(t *testing.T) {
	c := PostgresConfig{Host: "db", Port: "5433", Username: "u", Password: "p", Database: "d"}
	assert.Equal(t, "host=db user=u password=p dbname=d port=5433 sslmode=disable", c.DSN())
}
