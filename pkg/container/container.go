package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"tsismis-backend/internal/config"
	infraCache "tsismis-backend/internal/infrastructure/cache"
	"tsismis-backend/internal/infrastructure/database"
	"tsismis-backend/pkg/cache"
	"tsismis-backend/pkg/jwt"

	edgeHandler "tsismis-backend/internal/domains/edge/handler"
	edgeRepo "tsismis-backend/internal/domains/edge/repository"
	edgeService "tsismis-backend/internal/domains/edge/service"
	feedHandler "tsismis-backend/internal/domains/feed/handler"
	feedService "tsismis-backend/internal/domains/feed/service"
	postHandler "tsismis-backend/internal/domains/post/handler"
	postRepo "tsismis-backend/internal/domains/post/repository"
	postService "tsismis-backend/internal/domains/post/service"
	userHandler "tsismis-backend/internal/domains/user/handler"
	userRepo "tsismis-backend/internal/domains/user/repository"
	userService "tsismis-backend/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup; handlers, services and repositories
// are stateless.
type Container struct {
	// Infrastructure layer, shared across all domains.
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager

	// Repository layer (data access).
	UserRepo userRepo.UserRepository
	PostRepo postRepo.PostRepository
	EdgeRepo edgeRepo.EdgeRepository

	// Service layer (business logic).
	UserService userService.ServiceInterface
	PostService postService.ServiceInterface
	EdgeService edgeService.ServiceInterface
	FeedService feedService.ServiceInterface

	// Handler layer (HTTP).
	UserHandler *userHandler.UserHandler
	PostHandler *postHandler.PostHandler
	EdgeHandler *edgeHandler.EdgeHandler
	FeedHandler *feedHandler.FeedHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer builds the whole dependency graph in order:
// config, then infrastructure, then repositories, services, handlers.
// A wrong order panics on a nil dependency, so the order is fixed here.
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI container...")

	c := &Container{}

	// Step 1: Configuration. Depends on nothing.
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (environment: %s)", cfg.App.Environment)

	// Step 2: Database.
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}
	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	log.Println("✅ Database connected")

	// Step 3: Cache. Redis being down is not fatal: the login throttle
	// and the latest-users cache degrade, nothing else depends on it.
	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if err := redisCache.Connect(context.Background()); err != nil {
		log.Printf("⚠️  Redis connection failed (non-critical): %v", err)
	} else {
		log.Println("✅ Redis connected")
	}
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.TokenExpiry)*time.Minute,
	)

	// Steps 4-6: domain layers, bottom-up.
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Println("🎉 DI container initialized")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresUserRepository(pool)
	c.PostRepo = postRepo.NewPostgresPostRepository(pool)
	c.EdgeRepo = edgeRepo.NewPostgresEdgeRepository(pool)
}

func (c *Container) initServices() {
	avatarURL := c.Config.Avatar.BaseURL

	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager, c.Cache, avatarURL)
	c.PostService = postService.NewPostService(c.PostRepo)
	c.EdgeService = edgeService.NewEdgeService(c.EdgeRepo, c.PostRepo)

	// The feed reads across all three domains; it owns no tables.
	c.FeedService = feedService.NewFeedService(c.PostRepo, c.EdgeRepo, c.UserRepo, avatarURL)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.PostHandler = postHandler.NewPostHandler(c.PostService)
	c.EdgeHandler = edgeHandler.NewEdgeHandler(c.EdgeService)
	c.FeedHandler = feedHandler.NewFeedHandler(c.FeedService)
}

// ========================================
// CLEANUP
// ========================================

// Cleanup releases infrastructure resources during graceful shutdown.
func (c *Container) Cleanup() {
	log.Println("🧹 Cleaning up container resources...")

	if c.DB != nil {
		c.DB.Close()
		log.Println("✅ Database connections closed")
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Printf("⚠️  Failed to close Redis: %v", err)
		} else {
			log.Println("✅ Redis connection closed")
		}
	}
}
