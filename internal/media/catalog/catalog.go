package catalog

import (
	"fmt"
	"os"
	"strings"

	"github.com/atelier-studio/portfolio-backend/internal/media/domain"
	"gopkg.in/yaml.v3"
)

// Catalog is the validated, immutable set of configured projects
type Catalog struct {
	order      []domain.Slug
	projects   map[domain.Slug]domain.ProjectConfig
	categories []string
}

type fileFormat struct {
	Projects []rawProject `yaml:"projects"`
}

type rawProject struct {
	Slug        string `yaml:"slug"`
	Title       string `yaml:"title"`
	Category    string `yaml:"category"`
	Folder      string `yaml:"folder"`
	ProjectType string `yaml:"projectType"`
	Hero        string `yaml:"hero"`
}

// Load reads and validates a projects YAML file
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read projects file: %w", err)
	}
	return Parse(data)
}

// Parse validates projects from YAML bytes
func Parse(data []byte) (*Catalog, error) {
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse projects file: %w", err)
	}

	configs := make([]domain.ProjectConfig, 0, len(f.Projects))
	for i, p := range f.Projects {
		slug, err := domain.ParseSlug(strings.TrimSpace(p.Slug))
		if err != nil {
			return nil, fmt.Errorf("project #%d: %w", i+1, err)
		}
		configs = append(configs, domain.ProjectConfig{
			Slug:        slug,
			Title:       strings.TrimSpace(p.Title),
			Category:    strings.TrimSpace(p.Category),
			Folder:      strings.Trim(strings.TrimSpace(p.Folder), "/"),
			ProjectType: strings.TrimSpace(p.ProjectType),
			Hero:        strings.TrimSpace(p.Hero),
		})
	}
	return New(configs)
}

// New validates configs and builds a catalog preserving their order
func New(configs []domain.ProjectConfig) (*Catalog, error) {
	c := &Catalog{
		projects: make(map[domain.Slug]domain.ProjectConfig, len(configs)),
	}
	seenCategory := make(map[string]bool)

	for _, p := range configs {
		if _, err := domain.ParseSlug(string(p.Slug)); err != nil {
			return nil, err
		}
		if _, dup := c.projects[p.Slug]; dup {
			return nil, fmt.Errorf("duplicate project slug %q", p.Slug)
		}
		if p.Title == "" {
			return nil, fmt.Errorf("project %q: title is required", p.Slug)
		}
		if p.Category == "" {
			return nil, fmt.Errorf("project %q: category is required", p.Slug)
		}
		if !validProjectType(p.ProjectType) {
			return nil, fmt.Errorf("project %q: unknown projectType %q", p.Slug, p.ProjectType)
		}

		c.projects[p.Slug] = p
		c.order = append(c.order, p.Slug)
		if !seenCategory[p.Category] {
			seenCategory[p.Category] = true
			c.categories = append(c.categories, p.Category)
		}
	}
	return c, nil
}

func validProjectType(t string) bool {
	switch t {
	case "", domain.ProjectTypeMobileApp, domain.ProjectTypeWebApp, domain.ProjectTypeWebsite:
		return true
	}
	return false
}

// All returns the projects in file order
func (c *Catalog) All() []domain.ProjectConfig {
	out := make([]domain.ProjectConfig, 0, len(c.order))
	for _, s := range c.order {
		out = append(out, c.projects[s])
	}
	return out
}

// Get looks up a project by slug
func (c *Catalog) Get(slug domain.Slug) (domain.ProjectConfig, bool) {
	p, ok := c.projects[slug]
	return p, ok
}

// Categories returns the distinct categories in order of first appearance
func (c *Catalog) Categories() []string {
	return append([]string(nil), c.categories...)
}

// Len returns the number of configured projects
func (c *Catalog) Len() int {
	return len(c.order)
}
