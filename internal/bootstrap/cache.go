package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/atelier-studio/portfolio-backend/config"
	"github.com/atelier-studio/portfolio-backend/internal/media/repository"
	"github.com/atelier-studio/portfolio-backend/internal/media/service"
)

// ProjectCache is the cache contract plus the freshness probe used by /health
type ProjectCache interface {
	service.ProjectCache
	LastModified(ctx context.Context) (time.Time, bool)
}

// OpenCache builds the configured cache backend
func OpenCache(cfg config.CacheConfig) (ProjectCache, error) {
	switch cfg.Backend {
	case config.CacheBackendFile, "":
		return repository.NewFileCache(cfg.Path), nil
	case config.CacheBackendS3:
		cache, err := repository.NewObjectCache(repository.ObjectOptions{
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			Key:       cfg.S3Key,
			UseSSL:    cfg.S3UseSSL,
		})
		if err != nil {
			return nil, err
		}
		return cache, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
