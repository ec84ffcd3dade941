package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Media     MediaConfig
	Cache     CacheConfig
	Redis     RedisConfig
	Webhook   WebhookConfig
	Sync      SyncConfig
	RateLimit RateLimitConfig
	App       AppConfig
}

type ServerConfig struct {
	Port        string
	CORSOrigins []string
}

type MediaConfig struct {
	CloudName         string
	APIKey            string
	APISecret         string
	BaseFolder        string
	APIBaseURL        string
	DeliveryBaseURL   string
	RequestsPerSecond float64
	Timeout           time.Duration
}

const (
	CacheBackendFile = "file"
	CacheBackendS3   = "s3"
)

type CacheConfig struct {
	Backend string
	Path    string

	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3Key       string
	S3AccessKey string
	S3SecretKey string
	S3UseSSL    bool

	SingleProjectThreshold time.Duration
	AllProjectsThreshold   time.Duration
}

// RedisConfig selects the shared store; an empty Addr keeps state in process memory
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

type WebhookConfig struct {
	Secret string
	MaxAge time.Duration
}

type SyncConfig struct {
	Concurrency int
	// Cron is an optional six-field schedule for background regeneration
	Cron string
}

type RateLimitConfig struct {
	RefreshLimit  int
	RefreshWindow time.Duration
}

type AppConfig struct {
	Environment  string
	LogLevel     string
	Version      string
	ProjectsFile string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			CORSOrigins: getEnvAsList("CORS_ORIGINS", []string{"http://localhost:3000"}),
		},
		Media: MediaConfig{
			CloudName:         getEnv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:            getEnv("CLOUDINARY_API_KEY", ""),
			APISecret:         getEnv("CLOUDINARY_API_SECRET", ""),
			BaseFolder:        strings.Trim(getEnv("MEDIA_BASE_FOLDER", "portfolio"), "/"),
			APIBaseURL:        getEnv("CLOUDINARY_API_URL", ""),
			DeliveryBaseURL:   getEnv("CLOUDINARY_DELIVERY_URL", ""),
			RequestsPerSecond: getEnvAsFloat("MEDIA_REQUESTS_PER_SECOND", 5),
			Timeout:           getEnvAsDuration("MEDIA_TIMEOUT", 30*time.Second),
		},
		Cache: CacheConfig{
			Backend:                strings.ToLower(getEnv("CACHE_BACKEND", CacheBackendFile)),
			Path:                   getEnv("CACHE_PATH", "data/projects-cache.json"),
			S3Endpoint:             getEnv("CACHE_S3_ENDPOINT", ""),
			S3Region:               getEnv("CACHE_S3_REGION", ""),
			S3Bucket:               getEnv("CACHE_S3_BUCKET", ""),
			S3Key:                  getEnv("CACHE_S3_KEY", "projects-cache.json"),
			S3AccessKey:            getEnv("CACHE_S3_ACCESS_KEY", ""),
			S3SecretKey:            getEnv("CACHE_S3_SECRET_KEY", ""),
			S3UseSSL:               getEnvAsBool("CACHE_S3_USE_SSL", true),
			SingleProjectThreshold: getEnvAsDuration("CACHE_PROJECT_TTL", 30*time.Minute),
			AllProjectsThreshold:   getEnvAsDuration("CACHE_ALL_PROJECTS_TTL", 60*time.Minute),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Prefix:   getEnv("REDIS_PREFIX", "portfolio:"),
		},
		Webhook: WebhookConfig{
			Secret: getEnv("WEBHOOK_SECRET", ""),
			MaxAge: getEnvAsDuration("WEBHOOK_MAX_AGE", 2*time.Hour),
		},
		Sync: SyncConfig{
			Concurrency: getEnvAsInt("SYNC_CONCURRENCY", 4),
			Cron:        getEnv("SYNC_CRON", ""),
		},
		RateLimit: RateLimitConfig{
			RefreshLimit:  getEnvAsInt("REFRESH_LIMIT", 5),
			RefreshWindow: getEnvAsDuration("REFRESH_WINDOW", time.Minute),
		},
		App: AppConfig{
			Environment:  getEnv("APP_ENV", "development"),
			LogLevel:     getEnv("LOG_LEVEL", "info"),
			Version:      getEnv("APP_VERSION", "1.0.0"),
			ProjectsFile: getEnv("PROJECTS_FILE", "projects.yaml"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Media.CloudName == "" {
		return fmt.Errorf("CLOUDINARY_CLOUD_NAME is required")
	}

	switch c.Cache.Backend {
	case CacheBackendFile:
		if c.Cache.Path == "" {
			return fmt.Errorf("CACHE_PATH is required for the file cache")
		}
	case CacheBackendS3:
		if c.Cache.S3Endpoint == "" || c.Cache.S3Bucket == "" {
			return fmt.Errorf("CACHE_S3_ENDPOINT and CACHE_S3_BUCKET are required for the s3 cache")
		}
	default:
		return fmt.Errorf("unknown CACHE_BACKEND %q (want %s or %s)", c.Cache.Backend, CacheBackendFile, CacheBackendS3)
	}

	if c.Cache.SingleProjectThreshold <= 0 || c.Cache.AllProjectsThreshold <= 0 {
		return fmt.Errorf("cache thresholds must be positive")
	}

	if c.Sync.Concurrency < 1 {
		return fmt.Errorf("SYNC_CONCURRENCY must be at least 1")
	}

	if c.App.Environment == "production" && c.Webhook.Secret == "" {
		return fmt.Errorf("WEBHOOK_SECRET is required in production")
	}

	if c.App.ProjectsFile == "" {
		return fmt.Errorf("PROJECTS_FILE is required")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}

// getEnvAsDuration accepts Go durations ("45m") or a bare number of minutes
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	if minutes, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
