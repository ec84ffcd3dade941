package bootstrap

import (
	"fmt"

	"github.com/atelier-studio/portfolio-backend/config"
	"github.com/atelier-studio/portfolio-backend/internal/media/catalog"
	"github.com/atelier-studio/portfolio-backend/internal/media/cloudinary"
	"github.com/atelier-studio/portfolio-backend/internal/media/service"
	"github.com/atelier-studio/portfolio-backend/internal/media/thumbnail"
)

// MediaDeps is the assembled sync pipeline
type MediaDeps struct {
	Catalog      *catalog.Catalog
	Client       *cloudinary.Client
	Synchronizer *service.Synchronizer
	Orchestrator *service.Orchestrator
}

// BuildMedia loads the project catalog and wires the fetcher, thumbnail
// builder, synchronizer and orchestrator around the given cache.
func BuildMedia(cfg *config.Config, cache service.ProjectCache) (*MediaDeps, error) {
	cat, err := catalog.Load(cfg.App.ProjectsFile)
	if err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}

	client := cloudinary.NewClient(cloudinary.Options{
		CloudName:         cfg.Media.CloudName,
		APIKey:            cfg.Media.APIKey,
		APISecret:         cfg.Media.APISecret,
		BaseURL:           cfg.Media.APIBaseURL,
		RequestsPerSecond: cfg.Media.RequestsPerSecond,
		Timeout:           cfg.Media.Timeout,
		OnCall:            service.RecordRemoteCall,
	})

	thumbs := thumbnail.NewBuilder(cfg.Media.CloudName, cfg.Media.DeliveryBaseURL)
	syncer := service.NewSynchronizer(client, thumbs, cfg.Media.BaseFolder)
	orch := service.NewOrchestrator(cat, syncer, cache, service.Options{
		SingleProjectThreshold: cfg.Cache.SingleProjectThreshold,
		AllProjectsThreshold:   cfg.Cache.AllProjectsThreshold,
		Concurrency:            cfg.Sync.Concurrency,
	})

	return &MediaDeps{
		Catalog:      cat,
		Client:       client,
		Synchronizer: syncer,
		Orchestrator: orch,
	}, nil
}
