// Package main provides the main entry point for the campaign generation service
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/amirphl/campaign-forge/app/handlers"
	"github.com/amirphl/campaign-forge/app/router"
	businessflow "github.com/amirphl/campaign-forge/business_flow"
	"github.com/amirphl/campaign-forge/config"
	"github.com/amirphl/campaign-forge/models"
	"github.com/amirphl/campaign-forge/repository"
	"github.com/gofiber/fiber/v3"
	"github.com/redis/go-redis/v9"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Application represents the main application structure
type Application struct {
	router    router.Router
	config    *config.ProductionConfig
	server    *fiber.App
	stopFuncs []func()
}

func main() {
	log.Println("Starting campaign generation service...")

	// Load production configuration
	cfg, err := config.LoadProductionConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	closeLog, err := initializeLogging(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer closeLog()

	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	app.router.SetupRoutes()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.router.Start(cfg.Server.Address()); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-sigChan
	log.Println("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	// Stop background workers and close connections after in-flight generations finish
	for _, fn := range app.stopFuncs {
		fn()
	}

	log.Println("Server stopped")
}

// initializeLogging routes the standard logger to stdout and/or a size-rotated file
func initializeLogging(cfg config.LoggingConfig) (func(), error) {
	log.SetFlags(log.LstdFlags | log.LUTC | log.Lmicroseconds)

	var writers []io.Writer
	if cfg.LogToStdout() {
		writers = append(writers, os.Stdout)
	}

	var rotator *lumberjack.Logger
	if cfg.LogToFile() {
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		rotator = &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
			LocalTime:  false,
		}
		writers = append(writers, rotator)
	}

	log.SetOutput(io.MultiWriter(writers...))

	return func() {
		if rotator != nil {
			_ = rotator.Close()
		}
	}, nil
}

// initializeDatabase initializes the database connection with connection pooling
func initializeDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{}
	if cfg.SlowQueryLog {
		gormCfg.Logger = gormlogger.New(log.Default(), gormlogger.Config{
			SlowThreshold:             cfg.SlowQueryTime,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		})
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if cfg.AutoMigrate {
		if err := db.AutoMigrate(models.MigrationModels()...); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	log.Printf("Database connection established with %d max open connections, %d max idle connections",
		cfg.MaxOpenConns, cfg.MaxIdleConns)

	return db, nil
}

// initializeCache initializes the Cache client and verifies connectivity
func initializeCache(cfg config.CacheConfig) (*redis.Client, error) {
	if !cfg.Enabled || cfg.Provider != "redis" {
		return nil, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opt.DB = cfg.RedisDB

	rc := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Printf("Redis connection established (db=%d)", cfg.RedisDB)
	return rc, nil
}

// startCacheHealthMonitor periodically pings Redis so lock backend outages show up in the logs.
// The returned cancel function stops the monitor.
func startCacheHealthMonitor(parent context.Context, client *redis.Client, interval time.Duration) func() {
	monitorCtx, cancel := context.WithCancel(parent)
	if interval <= 0 {
		interval = 30 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-monitorCtx.Done():
				return
			case <-ticker.C:
				ctx, c := context.WithTimeout(monitorCtx, 3*time.Second)
				if err := client.Ping(ctx).Err(); err != nil {
					log.Printf("Redis healthcheck failed: %v", err)
				}
				c()
			}
		}
	}()
	return cancel
}

// initializeGenerationLocker picks the distributed lock when redis is available
func initializeGenerationLocker(rc *redis.Client, cfg *config.ProductionConfig) businessflow.GenerationLocker {
	if rc == nil {
		log.Println("Using in-process generation locks")
		return businessflow.NewLocalGenerationLocker()
	}
	log.Println("Using redis generation locks")
	return businessflow.NewRedisGenerationLocker(rc, cfg.Cache.RedisPrefix, cfg.Generation.LockTTL)
}

func initializeApplication(cfg *config.ProductionConfig) (*Application, error) {
	var stopFuncs []func()

	db, err := initializeDatabase(cfg.Database)
	if err != nil {
		return nil, err
	}
	stopFuncs = append(stopFuncs, func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	rc, err := initializeCache(cfg.Cache)
	if err != nil {
		return nil, err
	}
	if rc != nil {
		stopMonitor := startCacheHealthMonitor(context.Background(), rc, 30*time.Second)
		stopFuncs = append(stopFuncs, stopMonitor, func() { _ = rc.Close() })
	}

	registry := businessflow.NewPlatformRegistryFromNames(cfg.Generation.Platforms)
	if len(registry.Platforms()) == 0 {
		return nil, fmt.Errorf("GENERATION_PLATFORMS names no known platform: %v", cfg.Generation.Platforms)
	}
	log.Printf("Enabled ad platforms: %v", registry.Platforms())

	// Initialize repositories
	repos := businessflow.GenerationRepositories{
		DataRows:  repository.NewDataRowRepository(db),
		Campaigns: repository.NewGeneratedCampaignRepository(db),
		AdGroups:  repository.NewAdGroupRepository(db),
		Ads:       repository.NewAdRepository(db),
		Keywords:  repository.NewKeywordRepository(db),
		AuditLogs: repository.NewAuditLogRepository(db),
	}

	generationFlow := businessflow.NewGenerationFlow(
		repos,
		registry,
		initializeGenerationLocker(rc, cfg),
		businessflow.GenerationSettings{
			MaxRows:   cfg.Generation.MaxRows,
			BatchSize: cfg.Generation.BatchSize,
		},
		db,
		log.Default(),
	)

	generationHandler := handlers.NewGenerationHandler(generationFlow)

	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}

	appRouter := router.NewFiberRouter(generationHandler, router.Options{
		Version:           cfg.Deployment.Version,
		BodyLimit:         cfg.Server.BodyLimit,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		AllowedOrigins:    cfg.Server.AllowedOrigins,
		RateLimit:         cfg.Server.RateLimit,
		EnableCompression: cfg.Server.EnableCompression,
		EnableAccessLog:   cfg.Logging.EnableAccessLog,
		MetricsPath:       metricsPath,
	})

	return &Application{
		router:    appRouter,
		config:    cfg,
		server:    appRouter.GetApp(),
		stopFuncs: stopFuncs,
	}, nil
}
