package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/commtrans/ct-backend-go/internal/api"
	"github.com/commtrans/ct-backend-go/internal/api/handlers"
	"github.com/commtrans/ct-backend-go/internal/config"
	"github.com/commtrans/ct-backend-go/internal/core/catalog"
	"github.com/commtrans/ct-backend-go/internal/core/exporter"
	"github.com/commtrans/ct-backend-go/internal/core/importer"
	"github.com/commtrans/ct-backend-go/internal/core/metrics"
	"github.com/commtrans/ct-backend-go/internal/core/stats"
	"github.com/commtrans/ct-backend-go/internal/core/translatable"
	"github.com/commtrans/ct-backend-go/internal/database"
	"github.com/commtrans/ct-backend-go/internal/websocket"
	"github.com/commtrans/ct-backend-go/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	// Initialize database
	db, err := database.Initialize(cfg.Database)
	if err != nil {
		log.Fatal("Failed to initialize database: ", err)
	}
	defer db.Close()

	// Run migrations
	if err := database.Migrate(db, cfg.Database.MigrationsPath); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	// Create repositories
	repos := database.NewRepositories(db, log)

	// Seed the locale catalog
	catalogService := catalog.NewService(repos.Locale, log)
	if err := catalogService.Seed(context.Background(), cfg.Locales.SeedPath); err != nil {
		log.Fatal("Failed to seed locale catalog: ", err)
	}

	// Create WebSocket hub
	wsHub := websocket.NewHub(log)
	go wsHub.Run()

	// Initialize core services
	collector := metrics.NewCollector()
	statsService := stats.NewService(repos.Stats, repos.Locale, log)
	importerService := importer.NewImporter(
		repos.Translation, catalogService, statsService, wsHub,
		collector, log, cfg.Import.BatchSize,
	)
	exporterService := exporter.NewService(repos.Translation, log)
	translatableService := translatable.NewService(repos.Translatable, log)

	// Start the stats refresh schedule
	if err := statsService.StartSchedule(cfg.Stats.RefreshCron); err != nil {
		log.Fatal("Failed to start stats schedule: ", err)
	}
	defer statsService.Stop()

	// Initialize router
	h := handlers.NewHandlers(cfg, catalogService, importerService, exporterService, translatableService, statsService, log)
	router := api.NewRouter(cfg, h, collector, wsHub, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		log.Infof("Starting translation backend on port %d", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server: ", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Info("Server exited")
}
