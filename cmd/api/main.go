package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"appliance-support-bot/config"
	tgDelivery "appliance-support-bot/internal/dialogue/delivery/telegram"
	dialogueUC "appliance-support-bot/internal/dialogue/usecase"
	"appliance-support-bot/internal/httpserver"
	"appliance-support-bot/internal/mantis"
	nluGemini "appliance-support-bot/internal/nlu/gemini"
	"appliance-support-bot/internal/router"
	sessionSqlite "appliance-support-bot/internal/session/repository/sqlite"
	"appliance-support-bot/internal/storage"
	ticketSqlite "appliance-support-bot/internal/ticket/repository/sqlite"
	ticketUC "appliance-support-bot/internal/ticket/usecase"
	"appliance-support-bot/pkg/gemini"
	"appliance-support-bot/pkg/log"
	"appliance-support-bot/pkg/telegram"
)

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Appliance Support Bot...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Mantis URL: %s", cfg.Mantis.URL)

	// 3. Local storage (sessions + ticket cache share one database)
	db, err := storage.Open(cfg.Session.DBPath)
	if err != nil {
		logger.Error(ctx, "Failed to open local database: ", err)
		return
	}
	defer db.Close()

	sessionRepo, err := sessionSqlite.New(db, time.Duration(cfg.Session.TimeoutSeconds)*time.Second)
	if err != nil {
		logger.Error(ctx, "Failed to initialize session store: ", err)
		return
	}

	cacheRepo, err := ticketSqlite.New(db)
	if err != nil {
		logger.Error(ctx, "Failed to initialize ticket cache: ", err)
		return
	}

	// 4. Dialogue domain
	var telegramHandler tgDelivery.Handler

	if cfg.Telegram.BotToken != "" && cfg.Gemini.APIKey != "" && cfg.Mantis.APIToken != "" {
		logger.Info(ctx, "Initializing bot components...")

		// Telegram Bot client
		telegramBot := telegram.NewBot(cfg.Telegram.BotToken)

		// Gemini LLM client
		geminiClient := gemini.NewClient(cfg.Gemini.APIKey)
		if cfg.Gemini.Model != "" {
			geminiClient.SetModel(cfg.Gemini.Model)
		}

		// MantisHub tracker client
		mantisClient := mantis.NewClient(cfg.Mantis.URL, cfg.Mantis.APIToken)

		// LLM-backed NLU surfaces
		nluSvc := nluGemini.New(geminiClient, logger)

		// Intent router
		intentRouter := router.New(nluSvc, logger)

		// Ticket synchronizer
		ticketSync := ticketUC.New(logger, mantisClient, cacheRepo, nluSvc, cfg.Mantis.CloseStatus)

		// Dialogue UseCase
		dlgUC := dialogueUC.New(logger, sessionRepo, ticketSync, intentRouter, nluSvc, nluSvc)

		// Telegram Delivery handler
		telegramHandler = tgDelivery.New(logger, dlgUC, telegramBot, tgDelivery.Config{
			RateLimitPerMin: cfg.Webhook.RateLimitPerMin,
			DedupeWindow:    time.Duration(cfg.Webhook.DedupeWindowSec) * time.Second,
		})

		if cfg.Telegram.WebhookURL != "" {
			webhookURL := cfg.Telegram.WebhookURL + "/webhook/telegram"
			if whErr := telegramBot.SetWebhook(webhookURL); whErr != nil {
				logger.Warnf(ctx, "Failed to set Telegram webhook: %v", whErr)
			} else {
				logger.Infof(ctx, "✅ Telegram webhook registered at %s", webhookURL)
			}
		}

		logger.Info(ctx, "Bot components initialized successfully")
	} else {
		logger.Warn(ctx, "Bot skipped: TELEGRAM_BOT_TOKEN, GEMINI_API_KEY, or MANTIS_API_TOKEN is missing")
	}

	// 5. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		TelegramHandler: telegramHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 6. Run
	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
