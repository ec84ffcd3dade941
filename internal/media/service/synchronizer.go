package service

import (
	"context"
	"path"
	"strings"

	"github.com/atelier-studio/portfolio-backend/internal/media/classify"
	"github.com/atelier-studio/portfolio-backend/internal/media/domain"
	"github.com/atelier-studio/portfolio-backend/internal/media/thumbnail"
	"github.com/google/uuid"
)

// AssetFetcher lists the assets of one media host folder
type AssetFetcher interface {
	FetchResources(ctx context.Context, folder string) ([]domain.RemoteAsset, error)
}

// ThumbnailBuilder renders gallery thumbnail URLs
type ThumbnailBuilder interface {
	Build(publicID string, mediaType domain.MediaType, dims domain.Dimensions) (thumbnail.Result, error)
}

// Synchronizer rebuilds one project record from the media host
type Synchronizer struct {
	fetcher    AssetFetcher
	thumbs     ThumbnailBuilder
	baseFolder string
}

// NewSynchronizer creates a new Synchronizer
func NewSynchronizer(fetcher AssetFetcher, thumbs ThumbnailBuilder, baseFolder string) *Synchronizer {
	return &Synchronizer{
		fetcher:    fetcher,
		thumbs:     thumbs,
		baseFolder: strings.Trim(baseFolder, "/"),
	}
}

// FolderPath is the media host folder holding a project's assets
func (s *Synchronizer) FolderPath(cfg domain.ProjectConfig) string {
	return path.Join(s.baseFolder, cfg.Category, cfg.FolderName())
}

// SyncProject fetches, classifies and assembles a project. It returns a nil
// record when the project has nothing to show: with a nil error for an empty
// folder, or with the fetch error when the media host failed.
func (s *Synchronizer) SyncProject(ctx context.Context, cfg domain.ProjectConfig) (*domain.ProjectRecord, error) {
	logger := NewLogger(ctx)
	folder := s.FolderPath(cfg)

	assets, err := s.fetcher.FetchResources(ctx, folder)
	if err != nil {
		logger.LogError("sync_project", err)
		return nil, err
	}
	if len(assets) == 0 {
		logger.LogWarnf("sync_project", "no assets found slug=%s folder=%s", cfg.Slug, folder)
		return nil, nil
	}

	media := make([]domain.MediaItem, 0, len(assets))
	for _, asset := range assets {
		item, err := s.mediaItem(asset, cfg)
		if err != nil {
			logger.LogWarnf("sync_project", "skipping asset slug=%s public_id=%q: %v", cfg.Slug, asset.PublicID, err)
			continue
		}
		media = append(media, item)
	}
	if len(media) == 0 {
		logger.LogWarnf("sync_project", "no usable assets slug=%s folder=%s", cfg.Slug, folder)
		return nil, nil
	}

	logger.LogInfof("sync_project", "synced slug=%s folder=%s media=%d", cfg.Slug, folder, len(media))
	return &domain.ProjectRecord{
		ProjectConfig: cfg,
		Media:         media,
		HeroAsset:     selectHero(media, cfg.Hero),
	}, nil
}

func (s *Synchronizer) mediaItem(asset domain.RemoteAsset, cfg domain.ProjectConfig) (domain.MediaItem, error) {
	dims := domain.Dimensions{Width: asset.Width, Height: asset.Height}
	mediaType := classify.Classify(asset, cfg.Category, cfg.ProjectType)

	thumb, err := s.thumbs.Build(asset.PublicID, mediaType, dims)
	if err != nil {
		return domain.MediaItem{}, err
	}

	title := asset.Title
	if title == "" {
		title = titleFromPublicID(asset.PublicID, asset.Format)
	}
	tags := asset.Tags
	if tags == nil {
		tags = []string{}
	}

	return domain.MediaItem{
		ID:              MediaID(asset.PublicID),
		PublicID:        asset.PublicID,
		Title:           title,
		Description:     asset.Description,
		URL:             asset.SecureURL,
		MediaType:       mediaType,
		Category:        cfg.Category,
		Tags:            tags,
		Width:           asset.Width,
		Height:          asset.Height,
		AspectRatio:     dims.AspectRatio(),
		Format:          asset.Format,
		ThumbnailURL:    thumb.ThumbnailURL,
		BlurPlaceholder: thumb.BlurPlaceholder,
	}, nil
}

// MediaID derives a stable item id from the asset's public id
func MediaID(publicID string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(publicID)).String()
}

// selectHero picks the first item whose public id contains hint, else the first item
func selectHero(media []domain.MediaItem, hint string) *domain.MediaItem {
	if len(media) == 0 {
		return nil
	}
	if hint != "" {
		for i := range media {
			if strings.Contains(media[i].PublicID, hint) {
				hero := media[i]
				return &hero
			}
		}
	}
	hero := media[0]
	return &hero
}

// titleFromPublicID turns "folder/login-screen_v2" into "login screen v2"
func titleFromPublicID(publicID, format string) string {
	stem := path.Base(publicID)
	if format != "" {
		stem = strings.TrimSuffix(stem, "."+format)
	}
	stem = strings.NewReplacer("-", " ", "_", " ").Replace(stem)
	return strings.Join(strings.Fields(stem), " ")
}
