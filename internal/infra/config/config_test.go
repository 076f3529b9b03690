package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "token123")
	t.Setenv("DATABASE_URL", "postgres://localhost/birthdays")
	t.Setenv("ADMIN_TELEGRAM_ID", "42")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "token123", cfg.TelegramToken)
	assert.Equal(t, int64(42), cfg.AdminTelegramID)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "@every 1m", cfg.CronSpecDispatch)
	assert.Equal(t, "0 8 * * *", cfg.CronSpecDailySweep)
	assert.Equal(t, 5*time.Second, cfg.DeliveryConfirmDelay)
	assert.Empty(t, cfg.GatewayURL)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GATEWAY_URL", "https://provider.example/send")
	t.Setenv("GATEWAY_TOKEN", "secret")
	t.Setenv("DELIVERY_CONFIRM_DELAY_SECONDS", "0")
	t.Setenv("CRON_SPEC_DISPATCH", "@every 30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://provider.example/send", cfg.GatewayURL)
	assert.Equal(t, "secret", cfg.GatewayToken)
	assert.Equal(t, time.Duration(0), cfg.DeliveryConfirmDelay)
	assert.Equal(t, "@every 30s", cfg.CronSpecDispatch)
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ADMIN_TELEGRAM_ID", "not-a-number")
	_, err := Load()
	assert.Error(t, err)

	setRequiredEnv(t)
	t.Setenv("DELIVERY_CONFIRM_DELAY_SECONDS", "-1")
	_, err = Load()
	assert.Error(t, err)
}
