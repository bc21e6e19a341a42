package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"qtholidays-service/internal/domain/entity"
	"qtholidays-service/internal/domain/repository"
	"qtholidays-service/internal/infrastructure/config"
	"qtholidays-service/internal/infrastructure/persistence"
	"qtholidays-service/internal/infrastructure/router"
	"qtholidays-service/internal/interface/export"
	"qtholidays-service/internal/interface/httpapi"
	storeRepo "qtholidays-service/internal/interface/repository"
	"qtholidays-service/internal/usecase"
	"qtholidays-service/pkg/logger"
	"qtholidays-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting QT Holidays Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}
	log = logger.NewLoggerWithLevel(cfg.LogLevel)
	defer log.Sync()

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up the document store
	var store repository.DocumentStore
	var mongoClient *mongo.Client
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		log.Warn("Using in-memory document store, records are lost on restart")
		store = storeRepo.NewMemoryDocumentStore()
	default:
		log.Info("Connecting to MongoDB")
		db, err := persistence.NewMongoDatabase(ctx, cfg)
		if err != nil {
			log.Fatal("Failed to connect to MongoDB", "error", err)
		}
		mongoClient = db.Client()
		mongoStore := storeRepo.NewMongoDocumentStore(db)

		collections := lo.Map(entity.Descriptors(), func(d entity.Descriptor, _ int) string { return d.Collection })
		if err := mongoStore.EnsureIndexes(ctx, collections...); err != nil {
			log.Error("Failed to create indexes", "error", err)
		}
		store = mongoStore
	}

	// Set up staff accounts
	gormDB, err := persistence.NewPostgresDB(cfg.PostgresURI)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}
	if err := storeRepo.AutoMigrateStaff(gormDB); err != nil {
		log.Fatal("Failed to migrate staff table", "error", err)
	}
	staffRepository := storeRepo.NewGormStaffRepository(gormDB)

	// Set up services
	clock := usecase.SystemClock{}
	m := metrics.NewMetrics("qtholidays", prometheus.DefaultRegisterer)

	serviceRouter := router.NewServiceRouter(log)
	usecase.RegisterRecordServices(serviceRouter, store, clock, m, log)

	summaryService := usecase.NewSummaryService(serviceRouter, clock, m, log, export.NewXLSXSink(), export.NewCSVSink())
	authService := usecase.NewAuthService(staffRepository, cfg.JWTSecret, cfg.SessionTTL, clock, log)

	api := httpapi.NewServer(httpapi.Deps{
		Services: serviceRouter,
		Summary:  summaryService,
		Auth:     authService,
		Clock:    clock,
		Metrics:  m,
		Gatherer: prometheus.DefaultGatherer,
		Logger:   log,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port, "store", cfg.StoreDriver, "version", cfg.AppVersion)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel()

	if mongoClient != nil {
		if err := mongoClient.Disconnect(shutdownCtx); err != nil {
			log.Error("MongoDB disconnect error", "error", err)
		}
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("PostgreSQL close error", "error", err)
		}
	}

	log.Info("QT Holidays Service stopped")
}
