// Package thumbnail builds transformation URLs for the media CDN.
package thumbnail

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/atelier-studio/portfolio-backend/internal/media/domain"
)

const (
	DefaultDeliveryBaseURL = "https://res.cloudinary.com"

	qualityAndFormat = "q_auto,f_auto"
	blurTransform    = "w_100,e_blur:1000,q_1,f_auto"
)

// Result holds the gallery thumbnail and its progressive-loading placeholder
type Result struct {
	ThumbnailURL    string
	BlurPlaceholder string
}

// Builder renders delivery URLs for one cloud
type Builder struct {
	CloudName       string
	DeliveryBaseURL string
}

// NewBuilder creates a Builder; an empty base URL selects the public CDN
func NewBuilder(cloudName, deliveryBaseURL string) *Builder {
	if deliveryBaseURL == "" {
		deliveryBaseURL = DefaultDeliveryBaseURL
	}
	return &Builder{
		CloudName:       cloudName,
		DeliveryBaseURL: strings.TrimRight(deliveryBaseURL, "/"),
	}
}

// Recipe returns the crop transformation for a media type
func Recipe(mediaType domain.MediaType, dims domain.Dimensions) string {
	switch mediaType {
	case domain.MediaMobileMockup:
		return "w_400,h_800,c_fill,g_north"
	case domain.MediaDesktopMockup:
		return "w_800,h_500,c_fill,g_north"
	case domain.MediaVideo:
		return "w_800,h_450,c_fill,g_center"
	case domain.MediaGraphic:
		ratio := dims.AspectRatio()
		switch {
		case ratio > 1.2:
			return "w_800,h_600,c_fill,g_auto"
		case ratio > 0 && ratio < 0.8:
			return "w_600,h_800,c_fill,g_auto"
		default:
			return "w_600,h_600,c_fill,g_auto"
		}
	default:
		return "w_400,h_400,c_fill,g_center"
	}
}

// Build returns the thumbnail and blur placeholder URLs for an asset
func (b *Builder) Build(publicID string, mediaType domain.MediaType, dims domain.Dimensions) (Result, error) {
	path, err := escapePublicID(publicID)
	if err != nil {
		return Result{}, err
	}

	resourceType := "image"
	suffix := ""
	if mediaType == domain.MediaVideo {
		// video thumbnails are still frames
		resourceType = "video"
		suffix = ".jpg"
	}

	transform := Recipe(mediaType, dims) + "/" + qualityAndFormat
	return Result{
		ThumbnailURL:    b.url(resourceType, transform, path+suffix),
		BlurPlaceholder: b.url(resourceType, blurTransform, path+suffix),
	}, nil
}

func (b *Builder) url(resourceType, transform, path string) string {
	return fmt.Sprintf("%s/%s/%s/upload/%s/%s", b.DeliveryBaseURL, b.CloudName, resourceType, transform, path)
}

func escapePublicID(publicID string) (string, error) {
	if strings.TrimSpace(publicID) == "" {
		return "", fmt.Errorf("%w: empty", domain.ErrMalformedAssetID)
	}
	if strings.HasPrefix(publicID, "/") || strings.HasSuffix(publicID, "/") {
		return "", fmt.Errorf("%w: %q", domain.ErrMalformedAssetID, publicID)
	}

	segments := strings.Split(publicID, "/")
	for i, s := range segments {
		if s == "" || s == "." || s == ".." || strings.ContainsAny(s, "\x00\n\r\t") {
			return "", fmt.Errorf("%w: %q", domain.ErrMalformedAssetID, publicID)
		}
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/"), nil
}
