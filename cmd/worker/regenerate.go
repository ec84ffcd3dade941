package main

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/atelier-studio/portfolio-backend/config"
	"github.com/atelier-studio/portfolio-backend/internal/bootstrap"
	"github.com/atelier-studio/portfolio-backend/internal/media/domain"
)

// runRegenerate rebuilds every project from the media host and writes the
// cache synchronously. It is the manual recovery step for a broken cache.
func runRegenerate() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	cache, err := bootstrap.OpenCache(cfg.Cache)
	if err != nil {
		return err
	}
	media, err := bootstrap.BuildMedia(cfg, cache)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	start := time.Now()
	records, err := media.Orchestrator.Regenerate(ctx)
	if err != nil {
		return err
	}

	slugs := make([]domain.Slug, 0, len(records))
	for slug := range records {
		slugs = append(slugs, slug)
	}
	sort.Slice(slugs, func(i, j int) bool { return slugs[i] < slugs[j] })

	fmt.Printf("Regenerated %d of %d projects in %s\n", len(records), media.Catalog.Len(), time.Since(start).Round(time.Millisecond))
	for _, slug := range slugs {
		fmt.Printf(" - %s: %d media\n", slug, len(records[slug].Media))
	}
	for _, p := range media.Catalog.All() {
		if _, ok := records[p.Slug]; !ok {
			fmt.Printf(" ! %s: no media (empty or unreachable folder)\n", p.Slug)
		}
	}
	return nil
}
