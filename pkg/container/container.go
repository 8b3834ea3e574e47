package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"inventory-backend/internal/config"
	infraCache "inventory-backend/internal/infrastructure/cache"
	"inventory-backend/internal/infrastructure/database"
	"inventory-backend/internal/infrastructure/storage"
	"inventory-backend/pkg/cache"

	itemHandler "inventory-backend/internal/domains/item/handler"
	itemRepo "inventory-backend/internal/domains/item/repository"
	itemService "inventory-backend/internal/domains/item/service"
)

// Container holds every dependency of the application and is the root
// of the dependency graph. Both stores are explicit, constructed
// handles: nothing reaches them through a global lookup, so tests can
// substitute fakes for either one independently.
type Container struct {
	// Infrastructure - shared singletons
	Config  *config.Config
	DB      *database.PostgresDB
	Redis   *infraCache.RedisClient
	Cache   cache.Cache
	Storage *storage.MinIOStorage

	// Item domain
	ItemRepo    itemRepo.Repository
	ItemService itemService.ServiceInterface
	ItemHandler *itemHandler.Handler
}

// NewContainer initializes the whole dependency graph in order:
// config -> infrastructure -> repositories -> services -> handlers.
func NewContainer() (*Container, error) {
	log.Println("[CONTAINER] Initializing...")

	c := &Container{}

	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("[CONTAINER] Config loaded (environment: %s)", cfg.App.Environment)

	// 2. PostgreSQL
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	c.DB = database.NewPostgresDB(dbConfig)
	if err := c.DB.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := c.DB.EnsureSchema(ctx); err != nil {
		c.DB.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}

	// 3. Redis
	c.Redis = infraCache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Redis.Connect(ctx); err != nil {
		c.DB.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.Cache = infraCache.NewRedisCache(c.Redis)

	// 4. MinIO
	c.Storage, err = storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		c.Redis.Close()
		c.DB.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	log.Printf("[CONTAINER] MinIO ready (bucket: %s)", cfg.MinIO.Bucket)

	// 5. Item domain: repository -> service -> handler
	c.ItemRepo = itemRepo.NewItemRepository(c.DB.Pool)
	c.ItemService = itemService.NewService(c.ItemRepo, c.Storage)
	c.ItemHandler = itemHandler.NewHandler(c.ItemService, c.Cache)

	log.Println("[CONTAINER] Initialized successfully")
	return c, nil
}

// Cleanup releases infrastructure handles on shutdown.
func (c *Container) Cleanup() {
	log.Println("[CONTAINER] Cleaning up...")

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Printf("[CONTAINER] Failed to close redis: %v", err)
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	log.Println("[CONTAINER] Cleanup complete")
}
