package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/stoickegs/internal/config"
	"github.com/mamadbah2/stoickegs/internal/repository/memory"
	"github.com/mamadbah2/stoickegs/internal/repository/mongodb"
	"github.com/mamadbah2/stoickegs/internal/repository/sheets"
	"github.com/mamadbah2/stoickegs/internal/scheduler"
	"github.com/mamadbah2/stoickegs/internal/server/handlers"
	"github.com/mamadbah2/stoickegs/internal/server/router"
	commandsvc "github.com/mamadbah2/stoickegs/internal/service/commands"
	reportingsvc "github.com/mamadbah2/stoickegs/internal/service/reporting"
	whatsappsvc "github.com/mamadbah2/stoickegs/internal/service/whatsapp"
	whatsappclient "github.com/mamadbah2/stoickegs/pkg/clients/whatsapp"
	"github.com/mamadbah2/stoickegs/pkg/logger"
)

const connectTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level, cfg.Log.Env))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store := memory.New(memory.WithKegIDRetries(50))
	if cfg.Store.SeedDemo {
		if err := memory.Seed(store); err != nil {
			baseLogger.Fatal("failed to seed demo data", zap.Error(err))
		}
		baseLogger.Info("demo data seeded", zap.Int("kegs", store.KegStats().Total))
	}

	reportingSvc := reportingsvc.NewService(store, cfg.Store.OverdueDays, baseLogger.Named("svc.reporting"))
	analyticsOpts := handlers.AnalyticsOptions{OverdueDays: cfg.Store.OverdueDays, OrdersRange: cfg.Sheets.OrdersRange}
	sinks := scheduler.Sinks{OrdersRange: cfg.Sheets.OrdersRange}

	if cfg.Sheets.Enabled() {
		// The client keeps this context for token refreshes, so it must outlive startup.
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		analyticsOpts.Sheet = sheetsRepo
		sinks.Sheet = sheetsRepo
	} else {
		baseLogger.Warn("google sheets not configured, order export disabled")
	}

	if cfg.MongoDB.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		mongoRepo, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		cancel()
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		analyticsOpts.Reports = mongoRepo
		sinks.Archive = mongoRepo
	} else {
		baseLogger.Warn("mongodb not configured, daily reports are not archived")
	}

	h := router.Handlers{
		Kegs:          handlers.NewKegHandler(store, baseLogger.Named("handlers.kegs")),
		Customers:     handlers.NewCustomerHandler(store, baseLogger.Named("handlers.customers")),
		Orders:        handlers.NewOrderHandler(store, baseLogger.Named("handlers.orders")),
		CustomerNotes: handlers.NewCustomerNoteHandler(store, baseLogger.Named("handlers.notes")),
		Cider:         handlers.NewCiderHandler(store, baseLogger.Named("handlers.cider")),
		Fermentation:  handlers.NewFermentationHandler(store, baseLogger.Named("handlers.fermentation")),
		Analytics:     handlers.NewAnalyticsHandler(store, reportingSvc, analyticsOpts, baseLogger.Named("handlers.analytics")),
	}

	if cfg.WhatsApp.Enabled() {
		commandDispatcher := commandsvc.NewService(store, cfg.Store.OverdueDays, baseLogger.Named("svc.commands"))
		whatsClient := whatsappclient.NewClient(cfg.WhatsApp)
		messagingSvc := whatsappsvc.NewMetaWhatsAppService(cfg.WhatsApp, whatsClient, commandDispatcher, baseLogger.Named("svc.whatsapp"))
		h.Webhook = handlers.NewWebhookHandler(messagingSvc, baseLogger.Named("handlers.whatsapp"))
		if cfg.WhatsApp.ManagerID != "" {
			sinks.Notifier = messagingSvc
		}
	} else {
		baseLogger.Warn("whatsapp not configured, chat commands and notifications disabled")
	}

	engine := router.New(h, router.Options{AllowedOrigins: cfg.Server.AllowedOrigins, Fleet: store}, baseLogger.Named("router"))

	sched, err := scheduler.NewScheduler(cfg.Reporting, reportingSvc, sinks, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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
