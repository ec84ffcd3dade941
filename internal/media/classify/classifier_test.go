package classify

import (
	"testing"

	"github.com/atelier-studio/portfolio-backend/internal/media/domain"
	"github.com/stretchr/testify/assert"
)

func asset(id, format string, w, h int) domain.RemoteAsset {
	return domain.RemoteAsset{PublicID: id, Format: format, Width: w, Height: h}
}

func TestBaseType(t *testing.T) {
	assert.Equal(t, domain.MediaVideo, BaseType("mp4"))
	assert.Equal(t, domain.MediaVideo, BaseType("MOV"))
	assert.Equal(t, domain.MediaPDF, BaseType("pdf"))
	assert.Equal(t, domain.MediaImage, BaseType("png"))
	assert.Equal(t, domain.MediaImage, BaseType(""))
}

func TestIsUIUX(t *testing.T) {
	for _, c := range []string{"ui-ux", "UI/UX", "ui_ux", "UIUX", " ui ux "} {
		assert.True(t, IsUIUX(c), c)
	}
	assert.False(t, IsUIUX("branding"))
	assert.False(t, IsUIUX("ui"))
}

func TestClassify(t *testing.T) {
	testCases := []struct {
		name        string
		asset       domain.RemoteAsset
		category    string
		projectType string
		expected    domain.MediaType
	}{
		{"video wins over category", asset("a/clip", "mp4", 1920, 1080), "ui-ux", "mobile-app", domain.MediaVideo},
		{"pdf", asset("a/deck", "pdf", 0, 0), "branding", "", domain.MediaPDF},
		{"non ui-ux image is graphic", asset("a/poster", "jpg", 1000, 400), "branding", "", domain.MediaGraphic},
		{"explicit mobile app", asset("a/screen", "png", 2000, 1000), "ui-ux", "mobile-app", domain.MediaMobileMockup},
		{"explicit web app", asset("a/screen", "png", 400, 1000), "ui-ux", "web-app", domain.MediaDesktopMockup},
		{"explicit website", asset("a/screen", "png", 400, 1000), "ui-ux", "website", domain.MediaDesktopMockup},
		{"ratio 0.4 is mobile", asset("a/screen", "png", 400, 1000), "ui-ux", "", domain.MediaMobileMockup},
		{"ratio 2.5 is desktop", asset("a/screen", "png", 1000, 400), "ui-ux", "", domain.MediaDesktopMockup},
		{"portrait with mobile hint", asset("a/mobile-home", "png", 900, 1000), "ui-ux", "", domain.MediaMobileMockup},
		{"desktop hint on square", asset("a/desktop-home", "png", 1000, 1000), "ui-ux", "", domain.MediaDesktopMockup},
		{"ratio 1.4 is desktop", asset("a/screen", "png", 1400, 1000), "ui-ux", "", domain.MediaDesktopMockup},
		{"square is ambiguous", asset("a/screen", "png", 1000, 1000), "ui-ux", "", domain.MediaMobileMockup},
		{"unknown dimensions are ambiguous", asset("a/screen", "png", 0, 0), "ui-ux", "", domain.MediaMobileMockup},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Classify(tc.asset, tc.category, tc.projectType))
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	a := asset("portfolio/ui-ux/app/mobile-login", "png", 750, 1334)
	first := Classify(a, "ui-ux", "")
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, Classify(a, "ui-ux", ""))
	}
}
