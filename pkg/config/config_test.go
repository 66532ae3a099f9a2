package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("REDIS_ENABLED", "")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 5*time.Minute, cfg.Redis.DirectoryTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.NATS.MaxAge)
	assert.Equal(t, "0 8 * * *", cfg.Reminder.Cron)
	assert.False(t, cfg.Telegram.Enabled)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("REDIS_DIRECTORY_TTL", "90s")
	t.Setenv("TELEGRAM_ENABLED", "true")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-1001")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("LOG_COMPRESS", "not-a-bool")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, 90*time.Second, cfg.Redis.DirectoryTTL)
	assert.True(t, cfg.Telegram.Enabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowOrigins)
	assert.True(t, cfg.Log.Compress, "unparsable values fall back to the default")
}

func TestLoadConfig_TelegramNeedsCredentials(t *testing.T) {
	t.Setenv("TELEGRAM_ENABLED", "true")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("TELEGRAM_CHAT_ID", "-1001")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.Telegram.Enabled)
}
