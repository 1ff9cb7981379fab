package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"blog-backend/internal/config"
	"blog-backend/internal/infrastructure/cache"
	"blog-backend/internal/infrastructure/database"
	"blog-backend/internal/infrastructure/email"
	"blog-backend/internal/infrastructure/storage"
	"blog-backend/pkg/jwt"
	"blog-backend/pkg/logger"

	"blog-backend/internal/domains/auth"
	authorHandler "blog-backend/internal/domains/author/handler"
	authorRepo "blog-backend/internal/domains/author/repository"
	authorService "blog-backend/internal/domains/author/service"
	blogpostHandler "blog-backend/internal/domains/blogpost/handler"
	blogpostRepo "blog-backend/internal/domains/blogpost/repository"
	blogpostService "blog-backend/internal/domains/blogpost/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa toàn bộ dependencies của application
// Được build 1 lần khi start, dùng chung cho API (router) và worker
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	// Lifecycle: Singleton

	Config      *config.Config
	DB          *database.PostgresDB
	Redis       *cache.RedisClient
	JWTManager  *jwt.Manager
	Storage     *storage.MinIOStorage
	AsynqClient *asynq.Client
	Notifier    email.Notifier

	// ========================================
	// REPOSITORY LAYER (DATA ACCESS)
	// ========================================

	AuthorRepo   authorRepo.Repository
	BlogPostRepo blogpostRepo.Repository

	// ========================================
	// SERVICE LAYER (BUSINESS LOGIC)
	// ========================================

	AuthorService   authorService.Service
	BlogPostService blogpostService.Service
	AuthService     *auth.Service // nil khi OAUTH_ENABLED=false

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================

	AuthorHandler   *authorHandler.AuthorHandler
	BlogPostHandler *blogpostHandler.BlogPostHandler
	AuthHandler     *auth.Handler // nil khi OAUTH_ENABLED=false
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer tạo và initialize toàn bộ dependency graph
//
// Thứ tự initialization:
// 1. Config
// 2. Infrastructure (DB, Redis, MinIO, Asynq) - phụ thuộc Config
// 3. Repositories - phụ thuộc DB
// 4. Services - phụ thuộc Repositories + Infrastructure
// 5. Handlers - phụ thuộc Services
func NewContainer() (*Container, error) {
	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	logger.Init(cfg.App.Environment, cfg.App.LogLevel)
	logger.Info("Initializing DI container", map[string]interface{}{
		"environment":   cfg.App.Environment,
		"oauth_enabled": cfg.OAuth.Enabled,
	})

	if err := c.initInfrastructure(); err != nil {
		c.Cleanup()
		return nil, err
	}

	// ========================================
	// STEP 3-5: DOMAIN LAYERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("DI container initialized")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

// initInfrastructure - STEP 2
// Postgres và MinIO là bắt buộc. Redis lỗi lúc start chỉ warning:
// enqueue mail là best-effort, chỉ OAuth state mới thật sự cần Redis
func (c *Container) initInfrastructure() error {
	cfg := c.Config

	// ----------------------------------------
	// POSTGRES
	// ----------------------------------------
	db := database.NewPostgresDB(cfg.Database.DBConfig())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	if err := database.EnsureSchema(ctx, db.Pool); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	// ----------------------------------------
	// REDIS (OAuth state store)
	// ----------------------------------------
	c.Redis = cache.NewRedisClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Redis.Connect(ctx); err != nil {
		logger.Warn("Redis connection failed (non-critical)", err, map[string]interface{}{
			"host": cfg.Redis.Host,
		})
	}

	// ----------------------------------------
	// JWT
	// ----------------------------------------
	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryMinutes)*time.Minute)

	// ----------------------------------------
	// MINIO
	// ----------------------------------------
	minioStorage, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
	if err != nil {
		return fmt.Errorf("failed to init minio: %w", err)
	}
	c.Storage = minioStorage

	// ----------------------------------------
	// ASYNQ CLIENT (email queue)
	// ----------------------------------------
	c.AsynqClient = asynq.NewClient(c.RedisClientOpt())
	c.Notifier = email.NewQueueNotifier(c.AsynqClient)

	log.Info().Msg("Infrastructure initialized")
	return nil
}

// RedisClientOpt - asynq client (API) và server (worker) dùng chung Redis config
func (c *Container) RedisClientOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     c.Config.Redis.Host,
		Password: c.Config.Redis.Password,
		DB:       c.Config.Redis.DB,
	}
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.AuthorRepo = authorRepo.NewPostgresRepository(pool)
	c.BlogPostRepo = blogpostRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	// ----------------------------------------
	// AUTHOR SERVICE
	// ----------------------------------------
	c.AuthorService = authorService.NewAuthorService(
		c.AuthorRepo,
		c.JWTManager,
		c.Storage,
		c.Notifier,
	)

	// ----------------------------------------
	// BLOG POST SERVICE
	// ----------------------------------------
	// Cross-domain: cần AuthorService để lấy email người nhận notification
	c.BlogPostService = blogpostService.NewBlogPostService(
		c.BlogPostRepo,
		c.Storage,
		c.AuthorService,
		c.Notifier,
	)

	// ----------------------------------------
	// GOOGLE OAUTH (capability flag)
	// ----------------------------------------
	if c.Config.OAuth.Enabled {
		provider := auth.NewGoogleProvider(c.Config.OAuth, c.Config.App.APIURL)
		c.AuthService = auth.NewService(provider, c.Redis, c.AuthorService, c.JWTManager)
	}
}

func (c *Container) initHandlers() {
	maxUpload := c.Config.Upload.MaxBytes

	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService, maxUpload)
	c.BlogPostHandler = blogpostHandler.NewBlogPostHandler(c.BlogPostService, maxUpload)

	if c.AuthService != nil {
		c.AuthHandler = auth.NewHandler(c.AuthService, c.Config.App.FrontendURL)
	}
}

// ========================================
// HELPER METHODS
// ========================================

// Cleanup dọn dẹp resources khi shutdown. Gọi được với container chưa init xong
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up container resources")

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			logger.Warn("Failed to close asynq client", err, nil)
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.Warn("Failed to close Redis", err, nil)
		}
	}

	if c.DB != nil {
		_ = c.DB.Close()
	}
}
