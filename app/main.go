package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stair-ch/foodstoffi/app/api"
	"github.com/stair-ch/foodstoffi/app/cfg"
	"github.com/stair-ch/foodstoffi/app/database"
	"github.com/stair-ch/foodstoffi/app/menu"
	"github.com/stair-ch/foodstoffi/app/notify"
	"github.com/stair-ch/foodstoffi/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting Foodstoffi server", "version", appCfg.Version)

	// Database connection
	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "migration_version", version, "dirty", dirty)

	// Load notification target configurations
	targetCache := notify.NewConfigCache(appCfg.TargetsDir)
	if err := targetCache.Run(); err != nil {
		slog.Error("Failed to load target configurations", "error", err)
		os.Exit(1)
	}
	slog.Info("Target configurations loaded", "count", targetCache.GetTargetCount(),
		"enabled", len(targetCache.GetEnabledTargets()))

	// Initialize core components
	httpClient := &http.Client{}
	deliveryRepo := database.NewDeliveryRepository(db)
	pipeline := menu.NewPipeline(httpClient, menu.NewExtractor(), menu.NewFilterer())
	notifier := notify.NewNotifier(httpClient)

	// Initialize and start scheduler
	scheduler := tasks.NewScheduler(targetCache, deliveryRepo, pipeline, notifier)
	scheduler.Start()
	defer scheduler.Stop()
	slog.Info("Scheduler started", "notify_at", appCfg.NotifyAt+" UTC")

	// Initialize HTTP server
	apiHandler := api.NewHandler(pipeline, notifier, targetCache, deliveryRepo, scheduler)
	server := api.NewServer(apiHandler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start HTTP server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	// Graceful shutdown
	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	// Scheduler is stopped via defer
	slog.Info("Shutdown complete")
}
