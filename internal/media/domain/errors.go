package domain

import "errors"

var (
	ErrProjectNotFound  = errors.New("project not found")
	ErrProjectEmpty     = errors.New("project has no published media")
	ErrNoProjectData    = errors.New("no project data available")
	ErrUpstreamFetch    = errors.New("media host fetch failed")
	ErrMalformedAssetID = errors.New("malformed asset id")
	ErrInvalidSlug      = errors.New("invalid project slug")
	ErrRateLimited      = errors.New("too many refresh requests")
)
