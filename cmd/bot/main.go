package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"birthday_greeting_bot/internal/app"
	"birthday_greeting_bot/internal/domain/gateway"
	"birthday_greeting_bot/internal/infra/config"
	idb "birthday_greeting_bot/internal/infra/database"
	igw "birthday_greeting_bot/internal/infra/gateway"
	"birthday_greeting_bot/internal/infra/logger"
	"birthday_greeting_bot/internal/infra/scheduler"
	"birthday_greeting_bot/internal/infra/telegram"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Could not load application configuration: %v", err)
	}

	logger.Init(cfg)
	log := logger.Get().WithField("component", "main")
	log.WithFields(logrus.Fields{
		"log_level":   cfg.LogLevel,
		"environment": cfg.Environment,
	}).Info("Birthday greeting bot starting")

	// Database and repositories
	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("Could not connect to database")
	}
	defer db.Close()
	log.Info("Database connection established")

	contactRepo := idb.NewPostgresContactRepository(db)
	greetingRepo := idb.NewPostgresGreetingRepository(db)

	// Gateway: explicit injection; a missing provider URL selects the
	// simulated client so scheduling keeps running offline.
	var gatewayCli gateway.Client
	if cfg.GatewayURL != "" {
		gatewayCli = igw.NewHTTPClient(cfg.GatewayURL, cfg.GatewayToken)
		log.WithField("gateway_url", cfg.GatewayURL).Info("Using HTTP delivery gateway")
	} else {
		gatewayCli = igw.NewSimulatedClient(logger.Get().WithField("component", "gateway"))
		log.Warn("GATEWAY_URL not set; sends will be simulated")
	}

	// Services
	scheduleSvc := app.NewScheduleService(contactRepo, greetingRepo, logger.Get().WithField("component", "schedule_service"))
	dispatchSvc := app.NewDispatchService(greetingRepo, gatewayCli, scheduleSvc, logger.Get().WithField("component", "dispatch_service"), cfg.DeliveryConfirmDelay)
	contactSvc := app.NewContactService(contactRepo, greetingRepo, scheduleSvc, cfg.AdminTelegramID, logger.Get().WithField("component", "contact_service"))

	// Arm greetings for every contact before the first dispatch tick.
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 5*time.Minute)
	if _, err := scheduleSvc.ScheduleAll(startupCtx); err != nil {
		log.WithError(err).Error("Initial scheduling sweep failed")
	}
	cancelStartup()

	greetingScheduler := scheduler.NewGreetingScheduler(
		dispatchSvc,
		scheduleSvc,
		logger.Get().WithField("component", "scheduler"),
		cfg.CronSpecDispatch,
		cfg.CronSpecDailySweep,
	)
	if err := greetingScheduler.Start(); err != nil {
		log.WithError(err).Fatal("Could not start greeting scheduler")
	}

	// Telegram admin surface
	pref := telebot.Settings{
		Token:  cfg.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) {
			entry := logger.Get().WithField("component", "telebot").WithError(err)
			if c != nil && c.Sender() != nil {
				entry = entry.WithField("sender_id", c.Sender().ID)
			}
			entry.Error("Telegram handler error")
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		log.WithError(err).Fatal("Could not create Telegram bot")
	}

	botCtx, cancelBot := context.WithCancel(context.Background())
	defer cancelBot()
	telegram.RegisterBotCommands(bot, cfg.AdminTelegramID, logger.Get().WithField("component", "telegram"))
	telegram.RegisterAdminHandlers(botCtx, bot, contactSvc, scheduleSvc, greetingRepo, cfg.AdminTelegramID, logger.Get().WithField("component", "telegram"))
	log.Info("Telegram handlers registered")

	go bot.Start()
	log.Info("Application setup complete")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down...")
	greetingScheduler.Stop()
	bot.Stop()
	log.Info("Application shut down gracefully")
}
