package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	"github.com/minio/minio-go/v7"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/lucasgarofolo/API-Mural/docs"
	"github.com/lucasgarofolo/API-Mural/internal/ai"
	"github.com/lucasgarofolo/API-Mural/internal/config"
	"github.com/lucasgarofolo/API-Mural/internal/handlers"
	"github.com/lucasgarofolo/API-Mural/internal/metrics"
	"github.com/lucasgarofolo/API-Mural/internal/models"
	"github.com/lucasgarofolo/API-Mural/internal/repository"
	"github.com/lucasgarofolo/API-Mural/internal/services"
	"github.com/lucasgarofolo/API-Mural/internal/services/caches"
	"github.com/lucasgarofolo/API-Mural/internal/storage"
)

func main() {
	logger := InitLogger()
	defer logger.Sync()

	cfg := InitConfig(logger)
	db := ConnectDatabase(cfg, logger)
	MigrateDatabase(db, logger)
	minioClient := InitMinIOClient(cfg, logger)

	blobs := storage.NewMinioBlobStore(minioClient, cfg)
	photoRepo := repository.NewPhotoRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	photoService := services.NewPhotoService(photoRepo, blobs, logger)
	photoService.Cache = InitListingCache(cfg, logger)
	photoService.Metrics = metrics.NewMetrics()
	if cfg.AIBaseURL != "" {
		photoService.AI = ai.NewHTTPClient(cfg.AIBaseURL, cfg.AIKey)
	}
	messageService := services.NewMessageService(messageRepo, logger)

	app := fiber.New()
	app.Use(cors.New())

	// Register Prometheus metrics endpoint
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("API do Mural de Recados está funcionando!")
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	ph := handlers.NewPhotoHandler(photoService, logger)
	ph.AllowURLIngestion = cfg.AllowURLIngestion
	app.Post("/photo", ph.UploadPhoto)
	app.Get("/photos", ph.ListPhotos)
	if cfg.AIBaseURL != "" {
		app.Post("/photo/:id/reimagine", ph.ReimaginePhoto)
	}

	mh := handlers.NewMessageHandler(messageService, logger)
	app.Post("/recados", mh.CreateMessage)
	app.Get("/recados", mh.ListMessages)

	app.Get("/swagger/*", swagger.HandlerDefault)

	for _, r := range app.GetRoutes() {
		logger.Info("registered route", zap.String("method", r.Method), zap.String("path", r.Path))
	}

	port := cfg.AppPort
	if port == "" {
		port = "3000"
		logger.Info("defaulting port", zap.String("port", port))
	}
	logger.Info("server listening", zap.String("port", port))
	log.Fatal(app.Listen(":" + port))
}

func InitLogger() *zap.Logger {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Logger initialization failed: %v", err)
	}
	return logger
}

func InitConfig(logger *zap.Logger) *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("config error", zap.Error(err))
	}
	return cfg
}

func ConnectDatabase(cfg *config.Config, logger *zap.Logger) *gorm.DB {
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	return db
}

func MigrateDatabase(db *gorm.DB, logger *zap.Logger) {
	err := db.AutoMigrate(&models.Photo{}, &models.Message{})
	if err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}
}

func InitMinIOClient(cfg *config.Config, logger *zap.Logger) *minio.Client {
	minioClient, err := storage.NewMinioClient(cfg)
	if err != nil {
		logger.Fatal("minio client initialization failed", zap.Error(err))
	}
	return minioClient
}

// InitListingCache picks Redis when configured, falling back to the
// in-process cache.
func InitListingCache(cfg *config.Config, logger *zap.Logger) caches.ListingCache {
	if cfg.RedisHost != "" {
		redisClient, err := storage.NewRedisClient(cfg.RedisHost, cfg.RedisPort)
		if err != nil {
			logger.Warn("redis unavailable, using in-memory listing cache", zap.Error(err))
		} else {
			return caches.NewRedisCache(redisClient, cfg.CacheTTL, logger)
		}
	}
	return caches.NewMemoryCache(cfg.CacheTTL)
}
