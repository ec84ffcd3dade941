package service

import (
	"sort"
	"strings"

	"github.com/atelier-studio/portfolio-backend/internal/media/catalog"
	"github.com/atelier-studio/portfolio-backend/internal/media/domain"
)

// ProjectSummary is the list view of a project
type ProjectSummary struct {
	Slug        domain.Slug       `json:"slug"`
	Title       string            `json:"title"`
	Category    string            `json:"category"`
	ProjectType string            `json:"projectType,omitempty"`
	HeroAsset   *domain.MediaItem `json:"heroAsset"`
	MediaCount  int               `json:"mediaCount"`
}

// CategoryGroup holds the projects of one category, sorted by title
type CategoryGroup struct {
	Category string           `json:"category"`
	Projects []ProjectSummary `json:"projects"`
}

// GroupByCategory builds the gallery index. Categories follow catalog order;
// records whose slug is no longer configured are left out.
func GroupByCategory(records domain.Records, cat *catalog.Catalog) []CategoryGroup {
	byCategory := make(map[string][]ProjectSummary)
	for slug, rec := range records {
		if _, ok := cat.Get(slug); !ok {
			continue
		}
		byCategory[rec.Category] = append(byCategory[rec.Category], summarize(rec))
	}

	groups := make([]CategoryGroup, 0, len(byCategory))
	for _, category := range cat.Categories() {
		projects := byCategory[category]
		if len(projects) == 0 {
			continue
		}
		sort.Slice(projects, func(i, j int) bool {
			ti, tj := strings.ToLower(projects[i].Title), strings.ToLower(projects[j].Title)
			if ti != tj {
				return ti < tj
			}
			return projects[i].Slug < projects[j].Slug
		})
		groups = append(groups, CategoryGroup{Category: category, Projects: projects})
	}
	return groups
}

func summarize(rec domain.ProjectRecord) ProjectSummary {
	return ProjectSummary{
		Slug:        rec.Slug,
		Title:       rec.Title,
		Category:    rec.Category,
		ProjectType: rec.ProjectType,
		HeroAsset:   rec.HeroAsset,
		MediaCount:  len(rec.Media),
	}
}
