package http

import (
	"context"
	"time"

	"github.com/atelier-studio/portfolio-backend/internal/kvstore"
	"github.com/atelier-studio/portfolio-backend/internal/media/catalog"
	"github.com/atelier-studio/portfolio-backend/internal/media/domain"
	"github.com/atelier-studio/portfolio-backend/internal/media/service"
)

// ProjectService is the refresh policy the handlers delegate to
type ProjectService interface {
	AllProjects(ctx context.Context, force bool) (domain.Records, error)
	Project(ctx context.Context, slug domain.Slug, force bool) (*domain.ProjectRecord, error)
	TriggerResync(ctx context.Context) *service.Task
	Catalog() *catalog.Catalog
}

var _ ProjectService = (*service.Orchestrator)(nil)

// Options configure the media handlers
type Options struct {
	// BaseFolder scopes webhook notifications
	BaseFolder string
	// WebhookSecret authenticates notifications; empty disables the check (local development)
	WebhookSecret string
	WebhookMaxAge time.Duration
	// RefreshLimit is the number of forced refreshes per client per RefreshWindow; 0 disables the limit
	RefreshLimit  int
	RefreshWindow time.Duration
}

// Handler handles HTTP requests for projects and media host notifications
type Handler struct {
	projects ProjectService
	store    kvstore.Store
	opts     Options
	now      func() time.Time
}

// New creates a new Handler
func New(projects ProjectService, store kvstore.Store, opts Options) *Handler {
	if opts.WebhookMaxAge <= 0 {
		opts.WebhookMaxAge = 2 * time.Hour
	}
	if opts.RefreshWindow <= 0 {
		opts.RefreshWindow = time.Minute
	}
	return &Handler{
		projects: projects,
		store:    store,
		opts:     opts,
		now:      time.Now,
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Hint    string `json:"hint,omitempty"`
}
