package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"availability-service/internal/auth"
	"availability-service/internal/availability"
	"availability-service/internal/cache"
	"availability-service/internal/config"
	"availability-service/internal/handlers"
	"availability-service/internal/kafka"
	"availability-service/internal/metrics"
	"availability-service/internal/repository"
	"availability-service/pkg/logger"
	"availability-service/pkg/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "availability-service/docs" // Import docs for Swagger
)

// @title           Availability Service API
// @version         1.0
// @description     Availability breakdowns, buffers and risk classification for rental inventory and quotes.

// @host      localhost:8081
// @BasePath  /api/v1

// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// Request ID Header
// @description All endpoints support X-Request-ID header for request tracking and correlation. If not provided, a new UUID will be generated and returned in the response header.
func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	appLogger := logger.New(cfg.Environment)
	defer appLogger.Sync()

	appLogger.Info("🚀 Starting Availability Service",
		zap.String("environment", cfg.Environment),
		zap.String("port", cfg.Port),
	)

	// Open database
	appLogger.Info("💾 Database Configuration",
		zap.String("driver", cfg.DBDriver),
		zap.Bool("auto_migrate", cfg.AutoMigrate),
		zap.Bool("seed_demo", cfg.SeedDemo),
	)
	repo, err := openRepository(cfg)
	if err != nil {
		appLogger.Fatal("Failed to open database", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	defer repo.Close()

	if cfg.AutoMigrate {
		appLogger.Info("🔧 Applying migrations...")
		if err := repository.Migrate(repo.DB(), repo.Dialect()); err != nil {
			appLogger.Fatal("Failed to apply migrations", zap.Error(err))
		}
		appLogger.Info("✅ Migrations applied")
	}

	if cfg.SeedDemo {
		seedDemo(repo, appLogger)
	}

	// Initialize cache (optional)
	var readRepo repository.ReadRepository = repo
	var cacheClient cache.Cache
	if cfg.UseCache {
		appLogger.Info("💾 Cache Configuration (Optional)",
			zap.String("redis_host", cfg.RedisHost),
			zap.String("redis_port", cfg.RedisPort),
			zap.Int("cache_ttl", cfg.CacheTTL),
		)
		cacheClient = cache.NewCache(cfg, appLogger)
		readRepo = cache.NewCachedReadRepository(repo, cacheClient, cache.TTL(cfg.CacheTTL), appLogger)
		appLogger.Info("✅ Item lookups are cached")
	} else {
		appLogger.Info("⏭️  Skipping cache initialization (USE_CACHE=false)")
	}

	// Initialize metrics (optional)
	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	service := availability.NewService(readRepo, appLogger, m, cfg.BreakdownConcurrency)

	// Initialize Kafka consumer for cache invalidation (optional)
	if cfg.UseKafka && cfg.UseCache {
		appLogger.Info("📡 Kafka Configuration (cache invalidation)",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic_items", cfg.KafkaTopicItems),
			zap.String("topic_quotes", cfg.KafkaTopicQuotes),
			zap.String("group_id", cfg.KafkaGroupID),
		)
		kafkaConsumer, err := kafka.NewConsumer(cfg, cacheClient, appLogger)
		if err != nil {
			appLogger.Warn("Failed to initialize Kafka consumer, continuing without cache invalidation", zap.Error(err))
		} else {
			ctx, cancel := context.WithCancel(context.Background())
			defer func() {
				cancel()
				kafkaConsumer.Close()
			}()
			go func() {
				if err := kafkaConsumer.Start(ctx); err != nil {
					appLogger.Error("Kafka consumer error", zap.Error(err))
				}
			}()
			appLogger.Info("✅ Kafka consumer started for cache invalidation")
		}
	} else if cfg.UseKafka {
		appLogger.Info("⏭️  Skipping Kafka consumer (cache is disabled)")
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// CORS middleware (must be first to handle preflight requests)
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RecoveryHandler(appLogger))

	// Request ID must run before the access log so it can be logged
	router.Use(middleware.RequestIDMiddleware(appLogger))
	router.Use(logger.GinMiddleware(appLogger))
	if m != nil {
		router.Use(m.GinMiddleware())
	}
	router.Use(middleware.ErrorHandler(appLogger))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if m != nil {
		router.GET("/metrics", gin.WrapH(m.Handler()))
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, appLogger)
	authHandler := auth.NewAuthHandler(jwtManager, nil, appLogger)
	inventoryHandler := handlers.NewInventoryHandler(appLogger, readRepo, service)
	quoteHandler := handlers.NewQuoteHandler(appLogger, service)

	// API routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint (public)
		v1.GET("/health", healthCheck(repo))

		// Auth endpoints (public)
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
		}

		// Protected endpoints (require JWT authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(jwtManager, appLogger))
		{
			protected.GET("/items", inventoryHandler.ListItems)
			protected.GET("/items/:id", inventoryHandler.GetItem)
			protected.GET("/items/:id/availability", inventoryHandler.GetItemAvailability)
			protected.GET("/availability/buffer", inventoryHandler.GetBuffer)

			protected.POST("/quotes/risk", quoteHandler.AssessRisk)
			protected.GET("/quotes/:id", quoteHandler.GetQuote)
			protected.GET("/quotes/:id/risk", quoteHandler.GetQuoteRisk)
			protected.GET("/quotes/:id/export", quoteHandler.ExportQuote)
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		appLogger.Info("🌐 Starting HTTP server",
			zap.String("address", ":"+cfg.Port),
			zap.String("swagger_url", "http://localhost:"+cfg.Port+"/swagger/index.html"),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	appLogger.Info("Server exited")
}

func openRepository(cfg *config.Config) (*repository.SQLRepository, error) {
	if cfg.DBDriver == config.DriverPostgres {
		return repository.NewPostgresRepository(cfg.DSN())
	}
	return repository.NewSQLiteRepository(cfg.DSN())
}

// seedDemo loads the demo catalog into an empty database only
func seedDemo(repo *repository.SQLRepository, log *zap.Logger) {
	ctx := context.Background()
	items, err := repo.ListItems(ctx)
	if err != nil {
		log.Fatal("Failed to inspect catalog before seeding", zap.Error(err))
	}
	if len(items) > 0 {
		log.Info("⏭️  Skipping demo seed, catalog is not empty", zap.Int("items", len(items)))
		return
	}

	quote, err := repository.SeedDemo(ctx, repo)
	if err != nil {
		log.Fatal("Failed to seed demo data", zap.Error(err))
	}
	log.Info("✅ Demo data seeded", zap.String("quote_id", quote.ID.String()))
}

// healthCheck godoc
// @Summary      Health check endpoint
// @Description  Reports service liveness and database reachability.
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string  "Database unreachable"
// @Router       /health [get]
func healthCheck(repo *repository.SQLRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := repo.DB().PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "degraded",
				"service":  "availability-service",
				"database": "unreachable",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"service":  "availability-service",
			"database": "ok",
		})
	}
}
