// Package portfolio holds the static catalog rendered on the public site:
// profile, skill categories and projects.
package portfolio

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var defaultContent []byte

// AllCategories is the pseudo-category that disables project filtering.
const AllCategories = "All"

// keyFeatureCount is how many features a project card lists.
const keyFeatureCount = 2

// Stat is a headline number with its caption.
type Stat struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// ContactLinks are the direct channels listed next to the contact form.
type ContactLinks struct {
	Email    string `yaml:"email" json:"email"`
	LinkedIn string `yaml:"linkedin" json:"linkedin"`
	GitHub   string `yaml:"github" json:"github"`
	Blurb    string `yaml:"blurb" json:"blurb"`
}

// Profile is the biography shown in the hero and about sections.
type Profile struct {
	Name       string       `yaml:"name" json:"name"`
	Headline   string       `yaml:"headline" json:"headline"`
	Summary    string       `yaml:"summary" json:"summary"`
	About      []string     `yaml:"about" json:"about"`
	HeroStats  []Stat       `yaml:"hero_stats" json:"hero_stats"`
	Highlights []Stat       `yaml:"highlights" json:"highlights"`
	Contact    ContactLinks `yaml:"contact" json:"contact"`
}

// SkillCategory groups related skills under one card.
type SkillCategory struct {
	Title  string   `yaml:"title" json:"title"`
	Icon   string   `yaml:"icon" json:"icon"`
	Skills []string `yaml:"skills" json:"skills"`
}

// Project is one entry of the project catalog.
type Project struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Tags        []string `yaml:"tags" json:"tags"`
	Category    string   `yaml:"category" json:"category"`
	Features    []string `yaml:"features" json:"features"`
}

// KeyFeatures returns the features shown on the project card.
func (p Project) KeyFeatures() []string {
	if len(p.Features) <= keyFeatureCount {
		return p.Features
	}
	return p.Features[:keyFeatureCount]
}

// Catalog is the whole static site content.
type Catalog struct {
	Profile  Profile         `yaml:"profile" json:"profile"`
	Skills   []SkillCategory `yaml:"skills" json:"skills"`
	Projects []Project       `yaml:"projects" json:"projects"`
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Parse(defaultContent)
}

// Load returns the catalog at path, or the embedded one when path is empty.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog. Unknown keys are rejected so typos in a
// content file surface at startup.
func Parse(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if strings.TrimSpace(c.Profile.Name) == "" {
		return nil, fmt.Errorf("catalog: profile.name is required")
	}
	seen := make(map[string]bool, len(c.Projects))
	for _, p := range c.Projects {
		if p.ID == "" {
			return nil, fmt.Errorf("catalog: project %q has no id", p.Title)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("catalog: duplicate project id %q", p.ID)
		}
		seen[p.ID] = true
	}
	return &c, nil
}

// Categories returns AllCategories followed by each project category in
// first-seen order.
func (c *Catalog) Categories() []string {
	out := []string{AllCategories}
	seen := map[string]bool{}
	for _, p := range c.Projects {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}
	return out
}

// ProjectsIn returns the projects of category. An empty category or
// AllCategories returns every project.
func (c *Catalog) ProjectsIn(category string) []Project {
	if category == "" || category == AllCategories {
		return c.Projects
	}
	var out []Project
	for _, p := range c.Projects {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}
