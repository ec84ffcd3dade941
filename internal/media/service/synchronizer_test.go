package service

import (
	"context"
	"errors"
	"testing"

	"github.com/atelier-studio/portfolio-backend/internal/media/domain"
	"github.com/atelier-studio/portfolio-backend/internal/media/thumbnail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSynchronizer(f *fakeFetcher) *Synchronizer {
	return NewSynchronizer(f, thumbnail.NewBuilder("studio", ""), "/portfolio/")
}

func TestSynchronizer_FolderPath(t *testing.T) {
	s := newTestSynchronizer(newFakeFetcher())

	assert.Equal(t, "portfolio/ui-ux/bank", s.FolderPath(domain.ProjectConfig{Title: "Banking App", Category: "ui-ux", Folder: "bank"}))
	assert.Equal(t, "portfolio/branding/Summer Fest", s.FolderPath(domain.ProjectConfig{Title: "Summer Fest", Category: "branding"}))
}

func TestSynchronizer_SyncProject(t *testing.T) {
	f := newFakeFetcher()
	login := image("portfolio/ui-ux/bank/login-screen_v2", 750, 1334)
	login.Tags = []string{"auth"}
	cover := image("portfolio/ui-ux/bank/cover", 1440, 900)
	cover.Title = "Cover shot"
	cover.Description = "Landing hero"
	clip := domain.RemoteAsset{PublicID: "portfolio/ui-ux/bank/demo", Format: "mp4", Width: 1920, Height: 1080}
	f.set("portfolio/ui-ux/bank", login, cover, clip)

	cfg := domain.ProjectConfig{Slug: "banking-app", Title: "Banking App", Category: "ui-ux", Folder: "bank", Hero: "cover"}
	rec, err := newTestSynchronizer(f).SyncProject(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, cfg, rec.ProjectConfig)
	require.Len(t, rec.Media, 3)

	first := rec.Media[0]
	assert.Equal(t, "login screen v2", first.Title)
	assert.Equal(t, domain.MediaMobileMockup, first.MediaType)
	assert.Equal(t, "ui-ux", first.Category)
	assert.Equal(t, []string{"auth"}, first.Tags)
	assert.InDelta(t, 750.0/1334.0, first.AspectRatio, 1e-9)
	assert.Equal(t, MediaID(login.PublicID), first.ID)
	assert.Contains(t, first.ThumbnailURL, "w_400,h_800,c_fill,g_north")
	assert.Contains(t, first.BlurPlaceholder, "e_blur:1000")
	assert.Equal(t, login.SecureURL, first.URL)

	assert.Equal(t, "Cover shot", rec.Media[1].Title)
	assert.Equal(t, "Landing hero", rec.Media[1].Description)
	assert.Equal(t, domain.MediaDesktopMockup, rec.Media[1].MediaType)
	assert.Equal(t, []string{}, rec.Media[2].Tags)
	assert.Equal(t, domain.MediaVideo, rec.Media[2].MediaType)

	require.NotNil(t, rec.HeroAsset)
	assert.Equal(t, rec.Media[1], *rec.HeroAsset)
}

func TestSynchronizer_HeroFallback(t *testing.T) {
	f := newFakeFetcher()
	f.set("portfolio/branding/posters",
		image("portfolio/branding/posters/a", 800, 1200),
		image("portfolio/branding/posters/b", 800, 1200),
		image("portfolio/branding/posters/c", 800, 1200),
	)
	s := newTestSynchronizer(f)

	t.Run("no hero configured", func(t *testing.T) {
		cfg := domain.ProjectConfig{Slug: "posters", Title: "Posters", Category: "branding", Folder: "posters"}
		rec, err := s.SyncProject(context.Background(), cfg)
		require.NoError(t, err)
		require.Len(t, rec.Media, 3)
		assert.Equal(t, rec.Media[0], *rec.HeroAsset)
	})

	t.Run("hero hint matches nothing", func(t *testing.T) {
		cfg := domain.ProjectConfig{Slug: "posters", Title: "Posters", Category: "branding", Folder: "posters", Hero: "zzz"}
		rec, err := s.SyncProject(context.Background(), cfg)
		require.NoError(t, err)
		assert.Equal(t, rec.Media[0], *rec.HeroAsset)
	})

	t.Run("hero hint picks first match", func(t *testing.T) {
		cfg := domain.ProjectConfig{Slug: "posters", Title: "Posters", Category: "branding", Folder: "posters", Hero: "posters/"}
		rec, err := s.SyncProject(context.Background(), cfg)
		require.NoError(t, err)
		assert.Equal(t, "portfolio/branding/posters/a", rec.HeroAsset.PublicID)
	})
}

func TestSynchronizer_EmptyAndFailed(t *testing.T) {
	f := newFakeFetcher()
	boom := errors.New("boom")
	f.fail("portfolio/branding/broken", boom)
	s := newTestSynchronizer(f)

	rec, err := s.SyncProject(context.Background(), domain.ProjectConfig{Slug: "empty", Title: "Empty", Category: "branding", Folder: "empty"})
	assert.NoError(t, err)
	assert.Nil(t, rec)

	rec, err = s.SyncProject(context.Background(), domain.ProjectConfig{Slug: "broken", Title: "Broken", Category: "branding", Folder: "broken"})
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, rec)
}

func TestSynchronizer_SkipsMalformedAssets(t *testing.T) {
	f := newFakeFetcher()
	f.set("portfolio/branding/mixed",
		image("", 100, 100),
		image("portfolio/branding/mixed/ok", 100, 100),
	)
	f.set("portfolio/branding/bad", image("/", 100, 100))
	s := newTestSynchronizer(f)

	rec, err := s.SyncProject(context.Background(), domain.ProjectConfig{Slug: "mixed", Title: "Mixed", Category: "branding", Folder: "mixed"})
	require.NoError(t, err)
	require.Len(t, rec.Media, 1)
	assert.Equal(t, "portfolio/branding/mixed/ok", rec.HeroAsset.PublicID)

	rec, err = s.SyncProject(context.Background(), domain.ProjectConfig{Slug: "bad", Title: "Bad", Category: "branding", Folder: "bad"})
	assert.NoError(t, err)
	assert.Nil(t, rec)
}

func TestMediaID_Stable(t *testing.T) {
	assert.Equal(t, MediaID("a/b"), MediaID("a/b"))
	assert.NotEqual(t, MediaID("a/b"), MediaID("a/c"))
}

func TestTitleFromPublicID(t *testing.T) {
	assert.Equal(t, "login screen v2", titleFromPublicID("x/y/login-screen_v2", "png"))
	assert.Equal(t, "poster", titleFromPublicID("poster.jpg", "jpg"))
	assert.Equal(t, "v1.2 final", titleFromPublicID("a/v1.2-final", "png"))
}
