// Package classify assigns a semantic media type to remote assets.
package classify

import (
	"strings"

	"github.com/atelier-studio/portfolio-backend/internal/media/domain"
)

var videoFormats = map[string]bool{
	"mp4":  true,
	"mov":  true,
	"webm": true,
	"avi":  true,
	"mkv":  true,
	"m4v":  true,
	"ogv":  true,
}

// BaseType maps a file format to video, pdf or a provisional image
func BaseType(format string) domain.MediaType {
	f := strings.ToLower(strings.TrimPrefix(format, "."))
	switch {
	case videoFormats[f]:
		return domain.MediaVideo
	case f == "pdf":
		return domain.MediaPDF
	default:
		return domain.MediaImage
	}
}

// IsUIUX reports whether a project category is the UI/UX category
func IsUIUX(category string) bool {
	c := strings.ToLower(strings.TrimSpace(category))
	c = strings.NewReplacer("/", "", "-", "", "_", "", " ", "").Replace(c)
	return c == "uiux"
}

// Classify returns the media type of an asset. It never fails; ambiguous
// UI/UX images default to a mobile mockup.
func Classify(asset domain.RemoteAsset, category, projectType string) domain.MediaType {
	base := BaseType(asset.Format)
	if base != domain.MediaImage {
		return base
	}
	if !IsUIUX(category) {
		return domain.MediaGraphic
	}

	switch projectType {
	case domain.ProjectTypeMobileApp:
		return domain.MediaMobileMockup
	case domain.ProjectTypeWebApp, domain.ProjectTypeWebsite:
		return domain.MediaDesktopMockup
	}

	return inferMockup(asset)
}

func inferMockup(asset domain.RemoteAsset) domain.MediaType {
	ratio := domain.Dimensions{Width: asset.Width, Height: asset.Height}.AspectRatio()
	name := strings.ToLower(asset.PublicID)

	if ratio > 0 && ratio < 1 &&
		(strings.Contains(name, "mobile") || (ratio >= 0.4 && ratio <= 0.7)) {
		return domain.MediaMobileMockup
	}
	if ratio > 1.5 || strings.Contains(name, "desktop") || (ratio >= 1.3 && ratio <= 2.0) {
		return domain.MediaDesktopMockup
	}
	return domain.MediaMobileMockup
}
