package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/agritech/internal/app"
	"github.com/mamadbah2/agritech/internal/config"
	"github.com/mamadbah2/agritech/internal/dataset"
	"github.com/mamadbah2/agritech/internal/scheduler"
	"github.com/mamadbah2/agritech/internal/server/handlers"
	"github.com/mamadbah2/agritech/internal/server/router"
	"github.com/mamadbah2/agritech/internal/service/admin"
	"github.com/mamadbah2/agritech/internal/service/blog"
	commandsvc "github.com/mamadbah2/agritech/internal/service/commands"
	"github.com/mamadbah2/agritech/internal/service/crops"
	"github.com/mamadbah2/agritech/internal/service/inventory"
	"github.com/mamadbah2/agritech/internal/service/livestock"
	"github.com/mamadbah2/agritech/internal/service/marketplace"
	"github.com/mamadbah2/agritech/internal/service/pages"
	reportingsvc "github.com/mamadbah2/agritech/internal/service/reporting"
	"github.com/mamadbah2/agritech/internal/service/session"
	"github.com/mamadbah2/agritech/internal/service/stock"
	"github.com/mamadbah2/agritech/internal/service/weather"
	whatsappsvc "github.com/mamadbah2/agritech/internal/service/whatsapp"
	"github.com/mamadbah2/agritech/pkg/clients/anthropic"
	"github.com/mamadbah2/agritech/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Server.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)
	gin.SetMode(cfg.Server.GinMode)

	catalog, err := dataset.Load()
	if err != nil {
		baseLogger.Fatal("failed to load dataset", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sinks, err := app.NewReporting(ctx, *cfg, baseLogger)
	if err != nil {
		baseLogger.Fatal("failed to init reporting sinks", zap.Error(err))
	}
	defer func() {
		if err := sinks.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close reporting sinks", zap.Error(err))
		}
	}()
	reportingSvc := reportingsvc.NewService(catalog, sinks.Sinks, baseLogger.Named("svc.reporting"))

	sessions := session.NewManager(baseLogger.Named("sessions"))
	viewHandler := handlers.NewViewHandler(handlers.Services{
		Sessions:    sessions,
		Pages:       pages.NewService(catalog),
		Inventory:   inventory.NewService(catalog, sessions, baseLogger.Named("svc.inventory")),
		Livestock:   livestock.NewService(catalog, sessions, baseLogger.Named("svc.livestock")),
		Crops:       crops.NewService(catalog, sessions, baseLogger.Named("svc.crops")),
		Marketplace: marketplace.NewService(catalog, sessions, baseLogger.Named("svc.marketplace")),
		Admin:       admin.NewService(catalog, sessions, baseLogger.Named("svc.admin")),
		Weather:     weather.NewService(catalog, sessions, baseLogger.Named("svc.weather")),
		Stock:       stock.NewService(catalog, sessions, baseLogger.Named("svc.stock")),
		Blog:        blog.NewService(catalog, sessions, baseLogger.Named("svc.blog")),
		Reports:     reportingSvc,
	}, baseLogger.Named("handlers"))

	var webhookHandler *handlers.WebhookHandler
	if cfg.WhatsApp.BotEnabled() {
		var translator anthropic.Translator
		if cfg.AI.AnthropicKey != "" {
			translator = anthropic.NewClient(anthropic.Config{APIKey: cfg.AI.AnthropicKey, Model: cfg.AI.Model})
			baseLogger.Info("anthropic ai client enabled")
		} else {
			baseLogger.Warn("anthropic api key missing, natural language processing disabled")
		}
		dispatcher := commandsvc.NewService(catalog, reportingSvc, baseLogger.Named("svc.commands"))
		bot := whatsappsvc.NewBotService(sinks.Alerts, cfg.WhatsApp.VerifyToken, dispatcher, translator, commandsvc.Help())
		webhookHandler = handlers.NewWebhookHandler(bot, reportingSvc, baseLogger.Named("handlers.whatsapp"))
	} else {
		baseLogger.Warn("whatsapp verify token missing, command bot disabled")
	}

	engine := router.New(viewHandler, webhookHandler, baseLogger.Named("router"))

	sched, err := scheduler.NewScheduler(*cfg, reportingSvc, sessions, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
