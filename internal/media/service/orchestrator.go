package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/atelier-studio/portfolio-backend/internal/media/catalog"
	"github.com/atelier-studio/portfolio-backend/internal/media/domain"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultSingleProjectThreshold = 30 * time.Minute
	DefaultAllProjectsThreshold   = 60 * time.Minute
	DefaultConcurrency            = 4
)

// ProjectCache is whole-set storage for project records
type ProjectCache interface {
	ReadAll(ctx context.Context) domain.Records
	WriteAll(ctx context.Context, records domain.Records) error
	IsStale(ctx context.Context, threshold time.Duration) bool
}

// ProjectSyncer rebuilds a single project from the media host
type ProjectSyncer interface {
	SyncProject(ctx context.Context, cfg domain.ProjectConfig) (*domain.ProjectRecord, error)
}

// Options tune the refresh policy
type Options struct {
	SingleProjectThreshold time.Duration
	AllProjectsThreshold   time.Duration
	Concurrency            int
}

// Orchestrator decides per request whether to serve the cache or resync.
// It keeps no state between requests beyond the detached tasks it started.
type Orchestrator struct {
	catalog *catalog.Catalog
	syncer  ProjectSyncer
	cache   ProjectCache
	opts    Options
	tasks   sync.WaitGroup
}

// NewOrchestrator creates a new Orchestrator
func NewOrchestrator(cat *catalog.Catalog, syncer ProjectSyncer, cache ProjectCache, opts Options) *Orchestrator {
	if opts.SingleProjectThreshold <= 0 {
		opts.SingleProjectThreshold = DefaultSingleProjectThreshold
	}
	if opts.AllProjectsThreshold <= 0 {
		opts.AllProjectsThreshold = DefaultAllProjectsThreshold
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	return &Orchestrator{
		catalog: cat,
		syncer:  syncer,
		cache:   cache,
		opts:    opts,
	}
}

// Catalog returns the configured projects
func (o *Orchestrator) Catalog() *catalog.Catalog {
	return o.catalog
}

// AllProjects returns every project record, resyncing when forced or when the
// cache is older than the all-projects threshold.
func (o *Orchestrator) AllProjects(ctx context.Context, force bool) (domain.Records, error) {
	logger := NewLogger(ctx)

	if !force && !o.cache.IsStale(ctx, o.opts.AllProjectsThreshold) {
		records := o.cache.ReadAll(ctx)
		if o.configured(records) > 0 {
			return records, nil
		}
		// fresh by mtime but unreadable, deleted since the check, or holding only removed projects
		logger.LogWarnf("all_projects", "cache reported fresh but holds no configured project (records=%d), resyncing", len(records))
	}

	previous := o.cache.ReadAll(ctx)
	records, err := o.syncAll(ctx, previous)
	if err != nil {
		if len(previous) > 0 {
			logger.LogWarnf("all_projects", "resync failed, serving stale cache: %v", err)
			return previous, nil
		}
		return nil, err
	}

	o.persist(ctx, records)
	return records, nil
}

// Project returns one project record, resyncing only that project when forced
// or when the cache is older than the single-project threshold.
func (o *Orchestrator) Project(ctx context.Context, slug domain.Slug, force bool) (*domain.ProjectRecord, error) {
	logger := NewLogger(ctx)

	cfg, ok := o.catalog.Get(slug)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrProjectNotFound, slug)
	}

	if !force && !o.cache.IsStale(ctx, o.opts.SingleProjectThreshold) {
		records := o.cache.ReadAll(ctx)
		if rec, ok := records[slug]; ok {
			return &rec, nil
		}
		if len(records) == 0 {
			logger.LogWarnf("project", "cache reported fresh but read empty, resyncing slug=%s", slug)
		} else {
			logger.LogInfof("project", "slug=%s not cached, resyncing", slug)
		}
	}

	recordSyncRun()
	rec, err := o.syncer.SyncProject(ctx, cfg)
	if rec != nil {
		o.persistProject(ctx, *rec)
		return rec, nil
	}
	if err != nil {
		recordProjectFailure()
	}

	if prev, ok := o.cache.ReadAll(ctx)[slug]; ok {
		logger.LogWarnf("project", "resync of slug=%s produced nothing, serving cached record", slug)
		return &prev, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNoProjectData, err)
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrProjectEmpty, slug)
}

// Regenerate resyncs every project and writes the cache before returning
func (o *Orchestrator) Regenerate(ctx context.Context) (domain.Records, error) {
	records, err := o.syncAll(ctx, o.cache.ReadAll(ctx))
	if err != nil {
		return nil, err
	}

	err = o.cache.WriteAll(ctx, records)
	recordCacheWrite(err)
	if err != nil {
		return nil, fmt.Errorf("write cache: %w", err)
	}
	return records, nil
}

// TriggerResync starts a full resync in the background and returns immediately
func (o *Orchestrator) TriggerResync(ctx context.Context) *Task {
	return o.detach(ctx, "triggered_resync", func(ctx context.Context) error {
		records, err := o.Regenerate(ctx)
		if err != nil {
			return err
		}
		NewLogger(ctx).LogInfof("triggered_resync", "projects=%d", len(records))
		return nil
	})
}

// Wait blocks until every detached write-back and triggered resync has finished
func (o *Orchestrator) Wait() {
	o.tasks.Wait()
}

// syncAll syncs every configured project concurrently. A project that fails
// keeps its previous record; an empty one is dropped. It fails only when no
// project produced fresh data, so an outage never overwrites the cache.
func (o *Orchestrator) syncAll(ctx context.Context, previous domain.Records) (domain.Records, error) {
	logger := NewLogger(ctx)
	recordSyncRun()

	projects := o.catalog.All()
	results := make([]*domain.ProjectRecord, len(projects))
	errs := make([]error, len(projects))

	var g errgroup.Group
	g.SetLimit(o.opts.Concurrency)
	for i, p := range projects {
		g.Go(func() error {
			results[i], errs[i] = o.syncer.SyncProject(ctx, p)
			return nil
		})
	}
	_ = g.Wait()

	records := make(domain.Records, len(projects))
	fresh := 0
	var lastErr error
	for i, p := range projects {
		switch {
		case results[i] != nil:
			records[p.Slug] = *results[i]
			fresh++
		case errs[i] != nil:
			recordProjectFailure()
			lastErr = errs[i]
			if prev, ok := previous[p.Slug]; ok {
				logger.LogWarnf("sync_all", "keeping cached record slug=%s: %v", p.Slug, errs[i])
				records[p.Slug] = prev
			} else {
				logger.LogWarnf("sync_all", "skipping slug=%s: %v", p.Slug, errs[i])
			}
		default:
			logger.LogWarnf("sync_all", "skipping slug=%s: no media", p.Slug)
		}
	}

	if fresh == 0 {
		if lastErr != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrNoProjectData, lastErr)
		}
		return nil, domain.ErrNoProjectData
	}

	logger.LogInfof("sync_all", "projects=%d fresh=%d configured=%d", len(records), fresh, len(projects))
	return records, nil
}

// configured counts the records whose slug is still in the catalog
func (o *Orchestrator) configured(records domain.Records) int {
	n := 0
	for slug := range records {
		if _, ok := o.catalog.Get(slug); ok {
			n++
		}
	}
	return n
}

// persist writes the record set back without holding up the response
func (o *Orchestrator) persist(ctx context.Context, records domain.Records) *Task {
	return o.detach(ctx, "write_back", func(ctx context.Context) error {
		err := o.cache.WriteAll(ctx, records)
		recordCacheWrite(err)
		return err
	})
}

// persistProject replaces one project in the cached set without holding up the response
func (o *Orchestrator) persistProject(ctx context.Context, rec domain.ProjectRecord) *Task {
	return o.detach(ctx, "write_back_project", func(ctx context.Context) error {
		records := o.cache.ReadAll(ctx).Clone()
		records[rec.Slug] = rec
		err := o.cache.WriteAll(ctx, records)
		recordCacheWrite(err)
		return err
	})
}
