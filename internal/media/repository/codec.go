package repository

import (
	"encoding/json"
	"fmt"

	"github.com/atelier-studio/portfolio-backend/internal/media/domain"
)

// decodeRecords parses a cache document and checks every entry is a project record
func decodeRecords(data []byte) (domain.Records, error) {
	var records domain.Records
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache: %w", err)
	}
	if records == nil {
		return nil, fmt.Errorf("cache document is not an object")
	}

	for slug, rec := range records {
		if _, err := domain.ParseSlug(string(slug)); err != nil {
			return nil, err
		}
		if rec.Slug != slug {
			return nil, fmt.Errorf("record %q carries slug %q", slug, rec.Slug)
		}
		if rec.Title == "" {
			return nil, fmt.Errorf("record %q has no title", slug)
		}
		for i, m := range rec.Media {
			if m.PublicID == "" {
				return nil, fmt.Errorf("record %q media #%d has no publicId", slug, i)
			}
		}
	}
	return records, nil
}

func encodeRecords(records domain.Records) ([]byte, error) {
	if records == nil {
		records = domain.Records{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cache: %w", err)
	}
	return data, nil
}
