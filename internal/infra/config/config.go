package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	TelegramToken        string
	DatabaseURL          string
	AdminTelegramID      int64
	LogLevel             string
	Environment          string
	GatewayURL           string // empty: sends are simulated
	GatewayToken         string
	CronSpecDispatch     string // dispatch cycle cadence
	CronSpecDailySweep   string // daily full re-scheduling sweep
	DeliveryConfirmDelay time.Duration
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables; errors are
	// ignored if the file doesn't exist.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is not set")
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	adminIDStr := os.Getenv("ADMIN_TELEGRAM_ID")
	if adminIDStr == "" {
		return nil, fmt.Errorf("ADMIN_TELEGRAM_ID is not set")
	}
	cfg.AdminTelegramID, err = strconv.ParseInt(adminIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ADMIN_TELEGRAM_ID: %w", err)
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	// The gateway is optional: without a URL the dispatcher runs with a
	// simulated provider so scheduling keeps working offline.
	cfg.GatewayURL = os.Getenv("GATEWAY_URL")
	cfg.GatewayToken = os.Getenv("GATEWAY_TOKEN")

	cfg.CronSpecDispatch = os.Getenv("CRON_SPEC_DISPATCH")
	if cfg.CronSpecDispatch == "" {
		cfg.CronSpecDispatch = "@every 1m"
	}
	cfg.CronSpecDailySweep = os.Getenv("CRON_SPEC_DAILY_SWEEP")
	if cfg.CronSpecDailySweep == "" {
		cfg.CronSpecDailySweep = "0 8 * * *" // Default: 08:00 daily
	}

	confirmDelayStr := os.Getenv("DELIVERY_CONFIRM_DELAY_SECONDS")
	if confirmDelayStr == "" {
		cfg.DeliveryConfirmDelay = 5 * time.Second
	} else {
		seconds, err := strconv.Atoi(confirmDelayStr)
		if err != nil || seconds < 0 {
			return nil, fmt.Errorf("invalid DELIVERY_CONFIRM_DELAY_SECONDS: %q", confirmDelayStr)
		}
		cfg.DeliveryConfirmDelay = time.Duration(seconds) * time.Second
	}

	return cfg, nil
}
