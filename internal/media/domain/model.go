package domain

import (
	"fmt"
	"regexp"
)

// Slug is the stable URL-safe key of a project, used for routing and caching.
type Slug string

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ParseSlug validates a raw path or config value
func ParseSlug(raw string) (Slug, error) {
	if !slugPattern.MatchString(raw) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSlug, raw)
	}
	return Slug(raw), nil
}

// MediaType is the semantic category assigned to an asset
type MediaType string

const (
	MediaVideo         MediaType = "video"
	MediaImage         MediaType = "image"
	MediaPDF           MediaType = "pdf"
	MediaMobileMockup  MediaType = "mobile_mockup"
	MediaDesktopMockup MediaType = "desktop_mockup"
	MediaGraphic       MediaType = "graphic"
)

// Project types an author can pin on a UI/UX project
const (
	ProjectTypeMobileApp = "mobile-app"
	ProjectTypeWebApp    = "web-app"
	ProjectTypeWebsite   = "website"
)

// ProjectConfig is the author-supplied definition of a project
type ProjectConfig struct {
	Slug        Slug   `json:"slug" yaml:"slug"`
	Title       string `json:"title" yaml:"title"`
	Category    string `json:"category" yaml:"category"`
	Folder      string `json:"folder,omitempty" yaml:"folder"`
	ProjectType string `json:"projectType,omitempty" yaml:"projectType"`
	Hero        string `json:"hero,omitempty" yaml:"hero"`
}

// FolderName is the media host folder of the project; the title is used when no folder is set
func (p ProjectConfig) FolderName() string {
	if p.Folder != "" {
		return p.Folder
	}
	return p.Title
}

// RemoteAsset is an asset listing as returned by the media host search
type RemoteAsset struct {
	PublicID    string
	Format      string
	Width       int
	Height      int
	Tags        []string
	Title       string
	Description string
	SecureURL   string
}

// Dimensions of an asset in pixels
type Dimensions struct {
	Width  int
	Height int
}

// AspectRatio returns width/height, or 0 when the height is unknown
func (d Dimensions) AspectRatio() float64 {
	if d.Height <= 0 {
		return 0
	}
	return float64(d.Width) / float64(d.Height)
}

// MediaItem is a classified asset ready to be rendered by the gallery
type MediaItem struct {
	ID              string    `json:"id"`
	PublicID        string    `json:"publicId"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	URL             string    `json:"url"`
	MediaType       MediaType `json:"mediaType"`
	Category        string    `json:"category"`
	Tags            []string  `json:"tags"`
	Width           int       `json:"width"`
	Height          int       `json:"height"`
	AspectRatio     float64   `json:"aspectRatio"`
	Format          string    `json:"format"`
	ThumbnailURL    string    `json:"thumbnailUrl"`
	BlurPlaceholder string    `json:"blurPlaceholder"`
}

// ProjectRecord is a project with its synchronized media
type ProjectRecord struct {
	ProjectConfig
	Media     []MediaItem `json:"media"`
	HeroAsset *MediaItem  `json:"heroAsset"`
}

// Records is the full cached record set keyed by slug
type Records map[Slug]ProjectRecord

// Clone returns a shallow copy of the map so callers can replace entries
func (r Records) Clone() Records {
	out := make(Records, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
