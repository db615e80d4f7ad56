package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"library-backend/internal/config"
	infraCache "library-backend/internal/infrastructure/cache"
	"library-backend/internal/infrastructure/database"
	"library-backend/pkg/cache"

	"library-backend/internal/domains/library/handler"
	"library-backend/internal/domains/library/repository"
	"library-backend/internal/domains/library/service"
)

// Container holds the application's dependency graph, built in order:
// config, infrastructure, store, services, handlers.
type Container struct {
	Config *config.Config
	DB     *database.PostgresDB
	Cache  cache.Cache

	Store repository.Store

	CatalogService   service.CatalogService
	BorrowingService service.BorrowingService
	ReportingService service.ReportingService

	CatalogHandler   *handler.CatalogHandler
	BorrowingHandler *handler.BorrowingHandler
	ReportingHandler *handler.ReportingHandler

	redis *infraCache.RedisClient
}

// NewContainer initializes the whole dependency graph. Any failure aborts
// startup.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("[CONTAINER] Config loaded (environment: %s)", cfg.App.Environment)

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db, err := database.NewPostgresDB(dbConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	c.DB = db

	if err := db.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}
	if cfg.Library.SeedDemoData {
		if err := db.SeedDemoData(ctx); err != nil {
			return nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	// Redis is non-critical: search serving degrades to the store path when
	// the cache is down.
	redis := infraCache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redis.Connect(ctx); err != nil {
		log.Printf("[CONTAINER] Redis connection failed (non-critical): %v", err)
	}
	c.redis = redis
	c.Cache = redis

	c.Store = repository.NewPostgresStore(db.Pool)

	c.CatalogService = service.NewCatalogService(c.Store, c.Cache)
	c.BorrowingService = service.NewBorrowingService(c.Store)
	c.ReportingService = service.NewReportingService(c.Store)

	c.CatalogHandler = handler.NewCatalogHandler(c.CatalogService)
	c.BorrowingHandler = handler.NewBorrowingHandler(c.BorrowingService)
	c.ReportingHandler = handler.NewReportingHandler(c.ReportingService)

	log.Println("[CONTAINER] Dependency graph initialized")
	return c, nil
}

// Cleanup releases infrastructure resources. Called on shutdown.
func (c *Container) Cleanup() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			log.Printf("[CONTAINER] Redis close failed: %v", err)
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Printf("[CONTAINER] Database close failed: %v", err)
		}
	}
}
