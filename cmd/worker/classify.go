package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/atelier-studio/portfolio-backend/internal/media/classify"
	"github.com/atelier-studio/portfolio-backend/internal/media/cloudinary"
	"github.com/atelier-studio/portfolio-backend/internal/media/domain"
	"github.com/atelier-studio/portfolio-backend/internal/media/thumbnail"
)

type classified struct {
	PublicID     string           `json:"publicId"`
	Format       string           `json:"format"`
	Width        int              `json:"width"`
	Height       int              `json:"height"`
	MediaType    domain.MediaType `json:"mediaType"`
	ThumbnailURL string           `json:"thumbnailUrl,omitempty"`
	Error        string           `json:"error,omitempty"`
}

// runClassify reads a saved search response and prints how each asset
// would be classified and which thumbnail it would get.
func runClassify(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: classify <search-response.json> [category] [projectType]")
	}
	category, projectType := "", ""
	if len(args) > 1 {
		category = args[1]
	}
	if len(args) > 2 {
		projectType = args[2]
	}

	b, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	assets, err := cloudinary.DecodeSearchResponse(b)
	if err != nil {
		return err
	}

	thumbs := thumbnail.NewBuilder(os.Getenv("CLOUDINARY_CLOUD_NAME"), os.Getenv("CLOUDINARY_DELIVERY_URL"))
	out := make([]classified, 0, len(assets))
	for _, a := range assets {
		mt := classify.Classify(a, category, projectType)
		row := classified{PublicID: a.PublicID, Format: a.Format, Width: a.Width, Height: a.Height, MediaType: mt}
		res, err := thumbs.Build(a.PublicID, mt, domain.Dimensions{Width: a.Width, Height: a.Height})
		if err != nil {
			row.Error = err.Error()
		} else {
			row.ThumbnailURL = res.ThumbnailURL
		}
		out = append(out, row)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
