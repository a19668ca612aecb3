package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joeshaw/gtfsfeed/internal/api"
	"github.com/joeshaw/gtfsfeed/internal/config"
	"github.com/joeshaw/gtfsfeed/internal/db"
	"github.com/joeshaw/gtfsfeed/internal/gtfs"
	"github.com/joeshaw/gtfsfeed/internal/metrics"
	"github.com/joeshaw/gtfsfeed/internal/publisher"
	"github.com/joeshaw/gtfsfeed/internal/store"
	"github.com/joeshaw/gtfsfeed/internal/updater"
)

var (
	configPath      = flag.String("config", "", "Path to YAML config file")
	listenAddr      = flag.String("listen", config.DefaultListen, "HTTP listen address")
	source          = flag.String("source", "", "GTFS dataset: directory, zip file, or URL of a zip file")
	refreshInterval = flag.Duration("refresh", config.DefaultRefreshInterval, "How often to reload the dataset (0 disables)")
	bestEffort      = flag.Bool("best-effort", false, "Skip malformed rows instead of failing the load")
	skipMismatched  = flag.Bool("skip-mismatched-rows", false, "Skip rows whose field count differs from the header")
	dbDriver        = flag.String("db-driver", "", "Export loaded feeds to a database: sqlite3 or pgx")
	dbDSN           = flag.String("db-dsn", "", "Database connection string")
	natsURL         = flag.String("nats-url", "", "Publish feed load events to this NATS server")
)

func loadConfig() *config.Config {
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Flags given explicitly take precedence over file and environment.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "listen":
			cfg.Listen = *listenAddr
		case "source":
			cfg.Source = *source
		case "refresh":
			cfg.RefreshInterval = *refreshInterval
		case "best-effort":
			cfg.Loader.BestEffort = *bestEffort
		case "skip-mismatched-rows":
			cfg.Loader.SkipMismatchedRows = *skipMismatched
		case "db-driver":
			cfg.Database.Driver = *dbDriver
		case "db-dsn":
			cfg.Database.DSN = *dbDSN
		case "nats-url":
			cfg.NATS.URL = *natsURL
		}
	})

	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	return cfg
}

func main() {
	flag.Parse()
	cfg := loadConfig()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create data store
	dataStore := store.NewStore()

	feedUpdater := updater.NewFeedUpdater(cfg.Source, dataStore, gtfs.Options{
		BestEffort:         cfg.Loader.BestEffort,
		SkipMismatchedRows: cfg.Loader.SkipMismatchedRows,
		MaxLineBytes:       cfg.Loader.MaxLineBytes,
	})

	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		collector := metrics.NewCollector()
		feedUpdater.Metrics = collector
		metricsHandler = collector.Handler()
	}

	if cfg.Database.Driver != "" {
		database, err := db.Open(cfg.Database.Driver, cfg.Database.DSN)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer database.Close()

		if err := database.Ping(ctx); err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := database.Migrate(ctx); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		feedUpdater.Exporter = database
	}

	if cfg.NATS.URL != "" {
		var pm publisher.PublisherMetrics
		if c, ok := feedUpdater.Metrics.(*metrics.Collector); ok {
			pm = c
		}
		pub, err := publisher.NewNATSPublisher(cfg.NATS.URL, cfg.NATS.Subject, pm)
		if err != nil {
			log.Fatalf("Failed to connect to NATS: %v", err)
		}
		defer pub.Close()
		feedUpdater.Notifier = pub
	}

	// Initial GTFS static data load
	if _, err := feedUpdater.Update(ctx); err != nil {
		log.Fatalf("Failed to load initial GTFS data: %v", err)
	}

	// Set up API server
	apiServer := api.NewServer(dataStore, metricsHandler)
	server := &http.Server{
		Addr:    cfg.Listen,
		Handler: apiServer.Router(),
	}

	// Handle graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var wg sync.WaitGroup

	// Start GTFS static data updater
	wg.Add(1)
	go func() {
		defer wg.Done()
		feedUpdater.Run(ctx, cfg.RefreshInterval)
	}()

	// Start server
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Printf("Server listening on %s", cfg.Listen)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for termination signal
	<-quit
	log.Println("Shutting down server...")

	// Signal all goroutines to stop
	cancel()

	// Gracefully shut down server
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	// Wait for all goroutines to complete
	wg.Wait()
	log.Println("Server exited properly")
}
