package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Config holds all configuration values from environment.
type Config struct {
	AppPort    string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioSSL       bool
	// PublicBaseURL overrides the URL prefix used to resolve storage keys.
	// When empty, it is derived from the MinIO endpoint and SSL setting.
	PublicBaseURL string

	RedisHost string
	RedisPort string
	CacheTTL  time.Duration

	// AIBaseURL enables the reimagine endpoint when non-empty.
	AIBaseURL string
	AIKey     string

	// AllowURLIngestion enables the variant mode where POST /photo accepts a
	// client-supplied image_url instead of a binary payload.
	AllowURLIngestion bool
}

// LoadConfig loads configuration from a .env file (if present) and the
// environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	minioSSL := false
	if sslEnv := os.Getenv("MINIO_SSL"); sslEnv != "" {
		val, err := strconv.ParseBool(sslEnv)
		if err != nil {
			return nil, fmt.Errorf("invalid MINIO_SSL value: %v", err)
		}
		minioSSL = val
	}
	allowURL := false
	if urlEnv := os.Getenv("ALLOW_URL_INGESTION"); urlEnv != "" {
		val, err := strconv.ParseBool(urlEnv)
		if err == nil {
			allowURL = val
		}
	}
	cacheTTL := 30 * time.Second
	if ttlEnv := os.Getenv("CACHE_TTL_SECONDS"); ttlEnv != "" {
		val, err := strconv.Atoi(ttlEnv)
		if err == nil && val > 0 {
			cacheTTL = time.Duration(val) * time.Second
		}
	}
	cfg := &Config{
		AppPort:    os.Getenv("PORT"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),

		MinioEndpoint:  os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:    os.Getenv("MINIO_BUCKET"),
		MinioSSL:       minioSSL,
		PublicBaseURL:  os.Getenv("PUBLIC_BASE_URL"),

		RedisHost: os.Getenv("REDIS_HOST"),
		RedisPort: os.Getenv("REDIS_PORT"),
		CacheTTL:  cacheTTL,

		AIBaseURL: os.Getenv("AI_BASE_URL"),
		AIKey:     os.Getenv("AI_API_KEY"),

		AllowURLIngestion: allowURL,
	}
	// Basic validation for required fields
	if cfg.DBHost == "" || cfg.DBUser == "" || cfg.DBName == "" {
		return nil, fmt.Errorf("database configuration is incomplete")
	}
	if cfg.MinioEndpoint == "" || cfg.MinioAccessKey == "" || cfg.MinioSecretKey == "" || cfg.MinioBucket == "" {
		return nil, fmt.Errorf("minio configuration is incomplete")
	}
	return cfg, nil
}

// ConnectDatabase initializes a GORM database connection to PostgreSQL.
func ConnectDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return db, nil
}
