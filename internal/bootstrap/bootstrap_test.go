package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/atelier-studio/portfolio-backend/config"
	"github.com/atelier-studio/portfolio-backend/internal/kvstore"
	"github.com/atelier-studio/portfolio-backend/internal/media/catalog"
	"github.com/atelier-studio/portfolio-backend/internal/media/domain"
	"github.com/atelier-studio/portfolio-backend/internal/media/repository"
	"github.com/atelier-studio/portfolio-backend/internal/media/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticProjects struct {
	cat *catalog.Catalog
}

func (s staticProjects) AllProjects(context.Context, bool) (domain.Records, error) {
	return domain.Records{}, nil
}

func (s staticProjects) Project(context.Context, domain.Slug, bool) (*domain.ProjectRecord, error) {
	return nil, domain.ErrProjectNotFound
}

func (s staticProjects) TriggerResync(context.Context) *service.Task { return nil }

func (s staticProjects) Catalog() *catalog.Catalog { return s.cat }

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cat, err := catalog.New(nil)
	require.NoError(t, err)

	return BuildRouter(RouterDeps{
		ServiceName: "portfolio-api",
		Version:     "test",
		CORSOrigins: []string{"https://studio.example"},
		Projects:    staticProjects{cat: cat},
		Store:       kvstore.NewMemory(),
		Cache:       repository.NewFileCache(filepath.Join(t.TempDir(), "cache.json")),
	})
}

func TestBuildRouter_Routes(t *testing.T) {
	r := newTestRouter(t)

	for path, want := range map[string]int{
		"/health":                 http.StatusOK,
		"/healthz":                http.StatusOK,
		"/api/v1/projects":        http.StatusOK,
		"/api/v1/projects/absent": http.StatusNotFound,
	} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, rr.Code, path)
		assert.NotEmpty(t, rr.Header().Get("X-Request-Id"), path)
	}
}

func TestBuildRouter_CORS(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/projects", nil)
	req.Header.Set("Origin", "https://studio.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, "https://studio.example", rr.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/projects", nil)
	req.Header.Set("Origin", "https://elsewhere.example")
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestCorsConfig_Wildcard(t *testing.T) {
	assert.True(t, corsConfig(nil).AllowAllOrigins)
	assert.True(t, corsConfig([]string{"*"}).AllowAllOrigins)
	assert.False(t, corsConfig([]string{"https://a.example"}).AllowAllOrigins)
}

func TestOpenStore(t *testing.T) {
	t.Run("memory without address", func(t *testing.T) {
		store, closeFn, err := OpenStore(context.Background(), StoreOptions{})
		require.NoError(t, err)
		assert.IsType(t, &kvstore.Memory{}, store)
		assert.NoError(t, closeFn())
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		store, closeFn, err := OpenStore(context.Background(), StoreOptions{Addr: mr.Addr()})
		require.NoError(t, err)
		defer closeFn()

		assert.IsType(t, &kvstore.Redis{}, store)
		assert.NoError(t, store.Ping(context.Background()))
	})

	t.Run("unreachable redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		_, _, err := OpenStore(context.Background(), StoreOptions{Addr: addr})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "redis ping")
	})
}

func TestOpenCache(t *testing.T) {
	cache, err := OpenCache(config.CacheConfig{Backend: config.CacheBackendFile, Path: filepath.Join(t.TempDir(), "c.json")})
	require.NoError(t, err)
	assert.IsType(t, &repository.FileCache{}, cache)

	_, err = OpenCache(config.CacheConfig{Backend: config.CacheBackendS3})
	assert.Error(t, err)

	_, err = OpenCache(config.CacheConfig{Backend: "tape"})
	assert.Error(t, err)
}

func TestBuildMedia(t *testing.T) {
	dir := t.TempDir()
	projects := filepath.Join(dir, "projects.yaml")
	require.NoError(t, writeFile(projects, "projects:\n  - slug: banking-app\n    title: Banking App\n    category: ui-ux\n    projectType: mobile-app\n"))

	cfg := &config.Config{
		Media: config.MediaConfig{CloudName: "studio", BaseFolder: "portfolio"},
		Cache: config.CacheConfig{Backend: config.CacheBackendFile, Path: filepath.Join(dir, "cache.json")},
		Sync:  config.SyncConfig{Concurrency: 2},
		App:   config.AppConfig{ProjectsFile: projects},
	}
	media, err := BuildMedia(cfg, repository.NewFileCache(cfg.Cache.Path))
	require.NoError(t, err)
	assert.Equal(t, 1, media.Catalog.Len())
	assert.NotNil(t, media.Orchestrator)

	cfg.App.ProjectsFile = filepath.Join(dir, "missing.yaml")
	_, err = BuildMedia(cfg, repository.NewFileCache(cfg.Cache.Path))
	assert.Error(t, err)
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
