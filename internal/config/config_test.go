package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("PORT", "")
	t.Setenv("CLASSIFIER_TIMEOUT", "")
	t.Setenv("AUTH_ENABLED", "")
	t.Setenv("NOTIFICATIONS_ENABLED", "")
	t.Setenv("NOTIFY_TIMEZONE", "")
	t.Setenv("REDIS_DB", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9091", cfg.Port)
	assert.Equal(t, BackendSQLite, cfg.StoreBackend)
	assert.Equal(t, defaultHFAPIURL, cfg.Classifier.APIURL)
	assert.Zero(t, cfg.Classifier.Timeout)
	assert.False(t, cfg.AuthEnabled)
	assert.False(t, cfg.Notifications.Enabled)
	assert.Equal(t, time.UTC, cfg.Notifications.Timezone)
	assert.Equal(t, "0 20 * * *", cfg.Notifications.DailyReminderSpec)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "Redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CLASSIFIER_TIMEOUT", "15s")
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("NOTIFICATIONS_ENABLED", "1")
	t.Setenv("NOTIFY_TIMEZONE", "Europe/Istanbul")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendRedis, cfg.StoreBackend)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, 15*time.Second, cfg.Classifier.Timeout)
	assert.True(t, cfg.AuthEnabled)
	assert.True(t, cfg.Notifications.Enabled)
	assert.Equal(t, "Europe/Istanbul", cfg.Notifications.Timezone.String())
	assert.True(t, cfg.FirebaseRequired())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"backend":  {"STORE_BACKEND", "mongo"},
		"redis db": {"REDIS_DB", "zero"},
		"timeout":  {"CLASSIFIER_TIMEOUT", "soon"},
		"bool":     {"AUTH_ENABLED", "maybe"},
		"timezone": {"NOTIFY_TIMEZONE", "Mars/Olympus"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestPostgresURL(t *testing.T) {
	p := PostgresConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "j", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/j?sslmode=disable", p.PostgresURL())

	p.URL = "postgres://override"
	assert.Equal(t, "postgres://override", p.PostgresURL())
}
