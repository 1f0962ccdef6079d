package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/contact-parser/app/config"
	"github.com/contact-parser/app/controllers"
	"github.com/contact-parser/app/services"
	"github.com/contact-parser/internal/parser"
	"github.com/contact-parser/routes"
)

func main() {
	// 1. Load configuration (.env, viper, typed config)
	loadConfig()

	// 2. Logger
	logger := initLogger()
	defer logger.Sync()

	logger.Info("Starting Contact Parser Service")

	// 3. Parsing engines
	nameParser := parser.NewNameParser()
	addressParser := parser.NewAddressParser()

	// 4. Cache and review backends, per configured backend
	var (
		cacheService  services.ICacheService
		reviewService *services.ReviewService
		mongoClient   *mongo.Client
	)

	switch config.C.Cache.Backend {
	case "hybrid", "mongo", "redis":
		var redisCache *services.RedisCacheService
		var mongoCache *services.MongoCacheService

		if config.C.Cache.Backend != "mongo" {
			var err error
			redisCache, err = services.NewRedisCacheService(viper.GetString("redis.url"), config.CacheTTL(), logger)
			if err != nil {
				logger.Fatal("Failed to initialize Redis cache", zap.Error(err))
			}
		}

		if config.C.Cache.Backend != "redis" {
			mongoClient = initMongoDB(logger)
			db := mongoClient.Database(viper.GetString("mongo.database"))

			var err error
			mongoCache, err = services.NewMongoCacheService(db, config.C.Cache.L1Size, logger)
			if err != nil {
				logger.Fatal("Failed to initialize MongoDB cache", zap.Error(err))
			}
			if err := mongoCache.WarmUp(context.Background(), config.C.Cache.L1Size/2); err != nil {
				logger.Warn("Cache warmup failed", zap.Error(err))
			}
			reviewService = services.NewReviewService(db, logger)
		}

		switch config.C.Cache.Backend {
		case "hybrid":
			cacheService = services.NewHybridCacheService(redisCache, mongoCache, logger)
		case "redis":
			cacheService = redisCache
		default:
			cacheService = mongoCache
		}
	default:
		cacheService = services.NewCacheService(config.CacheTTL())
	}

	if mongoClient != nil {
		defer func() {
			if err := mongoClient.Disconnect(context.Background()); err != nil {
				logger.Error("Error disconnecting MongoDB", zap.Error(err))
			}
		}()
	}

	// 5. Services and controllers
	parseService := services.NewParseService(nameParser, addressParser, reviewService, logger)
	parseController := controllers.NewParseController(parseService, cacheService, logger)
	adminController := controllers.NewAdminController(parseService, reviewService, cacheService, logger)

	// 6. Router
	if config.C.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	routes.SetupAllRoutes(router, parseController, adminController)

	// 7. Serve with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + config.C.Server.Port,
		Handler: router,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("port", config.C.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}
	if err := cacheService.Close(); err != nil {
		logger.Error("Error closing cache", zap.Error(err))
	}

	logger.Info("Server exited")
}

func loadConfig() {
	// .env is optional and only used in development.
	_ = godotenv.Load()

	viper.SetConfigName("app")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("mongo.uri", "mongodb://localhost:27017")
	viper.SetDefault("mongo.database", "contact_parser")
	viper.SetDefault("redis.url", "redis://localhost:6379")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("No viper config found, using defaults: %v", err)
	}

	if err := config.Load("config/parser.yaml"); err != nil {
		log.Fatalf("Failed to load parser config: %v", err)
	}
}

func initLogger() *zap.Logger {
	if config.C.Server.Env == "production" {
		logger, err := zap.NewProduction()
		if err != nil {
			log.Fatalf("Failed to create logger: %v", err)
		}
		return logger
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	return logger
}

func initMongoDB(logger *zap.Logger) *mongo.Client {
	mongoURI := viper.GetString("mongo.uri")
	if env := os.Getenv("MONGO_URI"); env != "" {
		mongoURI = env
	}

	logger.Info("Connecting to MongoDB", zap.String("uri", mongoURI))

	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx, nil); err != nil {
		logger.Fatal("Failed to ping MongoDB", zap.Error(err))
	}

	logger.Info("Connected to MongoDB")
	return client
}
