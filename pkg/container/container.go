package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"catalog-backend/internal/config"
	contenthandler "catalog-backend/internal/domains/content/handler"
	contentrepo "catalog-backend/internal/domains/content/repository"
	contentservice "catalog-backend/internal/domains/content/service"
	discoveryhandler "catalog-backend/internal/domains/discovery/handler"
	discoveryrepo "catalog-backend/internal/domains/discovery/repository"
	discoveryservice "catalog-backend/internal/domains/discovery/service"
	ingestionadapter "catalog-backend/internal/domains/ingestion/adapter"
	ingestionhandler "catalog-backend/internal/domains/ingestion/handler"
	ingestionservice "catalog-backend/internal/domains/ingestion/service"
	programhandler "catalog-backend/internal/domains/program/handler"
	programrepo "catalog-backend/internal/domains/program/repository"
	programservice "catalog-backend/internal/domains/program/service"
	infracache "catalog-backend/internal/infrastructure/cache"
	"catalog-backend/internal/infrastructure/database"
	"catalog-backend/internal/shared/events"
	"catalog-backend/pkg/cache"
	"catalog-backend/pkg/jwt"
	"catalog-backend/pkg/logger"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton living for the process lifetime.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager
	Bus        *events.Bus
	Queue      *asynq.Client

	ProgramRepo programrepo.Repository
	ContentRepo contentrepo.Repository

	ProgramService   programservice.Service
	ContentService   contentservice.Service
	DiscoveryService discoveryservice.Service
	IngestionService ingestionservice.Service
	CacheService     *discoveryservice.CacheService

	ProgramHandler   *programhandler.ProgramHandler
	ContentHandler   *contenthandler.ContentHandler
	DiscoveryHandler *discoveryhandler.DiscoveryHandler
	IngestionHandler *ingestionhandler.IngestionHandler
}

// Options tweak what the container wires. The worker skips the queue
// client since it is the consumer, not a producer.
type Options struct {
	WithQueue bool
}

// New builds the full dependency graph in order: config, infrastructure,
// bus, repositories, services, handlers. Any failure aborts startup.
func New(opts Options) (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	c.Config = cfg
	logger.Init(cfg.App.Environment)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	c.DB = db

	redisCache := infracache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		// the cache is best-effort; startup continues degraded
		logger.Warn("[Container] Redis connection failed, cache degraded", err)
	}
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TokenExpiry)*time.Hour)
	c.Bus = events.NewBus()

	if opts.WithQueue {
		c.Queue = asynq.NewClient(asynq.RedisClientOpt{
			Addr:     cfg.Redis.Host,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	c.initDomains()

	// cache invalidation reacts to every write-side event
	c.CacheService.RegisterInvalidation(c.Bus)

	return c, nil
}

func (c *Container) initDomains() {
	pool := c.DB.Pool

	c.ProgramRepo = programrepo.NewPostgresRepository(pool)
	c.ContentRepo = contentrepo.NewPostgresRepository(pool)

	c.ProgramService = programservice.NewService(c.ProgramRepo, c.Bus)
	c.ContentService = contentservice.NewService(c.ContentRepo, c.ProgramRepo, c.Bus)

	fts := discoveryrepo.NewFTSProbe(pool)
	programReader := discoveryrepo.NewProgramReader(pool, fts)
	contentReader := discoveryrepo.NewContentReader(pool, fts)
	c.CacheService = discoveryservice.NewCacheService(c.Cache)
	c.DiscoveryService = discoveryservice.NewService(programReader, contentReader, c.CacheService)

	registry := ingestionadapter.NewRegistry(ingestionadapter.NewMockYouTubeAdapter())
	c.IngestionService = ingestionservice.NewService(registry, c.ContentRepo, c.ProgramRepo, c.Bus, c.Queue, c.Config.Worker.Queue)

	c.ProgramHandler = programhandler.NewProgramHandler(c.ProgramService)
	c.ContentHandler = contenthandler.NewContentHandler(c.ContentService)
	c.DiscoveryHandler = discoveryhandler.NewDiscoveryHandler(c.DiscoveryService)
	c.IngestionHandler = ingestionhandler.NewIngestionHandler(c.IngestionService)
}

// Cleanup releases external connections. Call on shutdown.
func (c *Container) Cleanup() {
	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			logger.Warn("[Container] Failed to close queue client", err)
		}
	}
	if rc, ok := c.Cache.(*infracache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			logger.Warn("[Container] Failed to close Redis", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
