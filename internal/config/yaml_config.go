package config

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"testimonials/internal/models"
)

// YAMLConfig represents the structure of the config.yaml file.
// Seed data and branding are easier to manage in YAML than env vars.
type YAMLConfig struct {
	Site BrandingConfig          `yaml:"site"`
	Seed []SeedTestimonialConfig `yaml:"seed"`
}

// BrandingConfig overrides the SITE_* environment values when set.
type BrandingConfig struct {
	Title   string `yaml:"title,omitempty"`
	Tagline string `yaml:"tagline,omitempty"`
	Footer  string `yaml:"footer,omitempty"`
	LogoURL string `yaml:"logo_url,omitempty"`
}

// SeedTestimonialConfig defines a testimonial inserted by the seed step.
type SeedTestimonialConfig struct {
	ID        string        `yaml:"id,omitempty"` // Stable UUID so reseeding is idempotent
	Name      string        `yaml:"name"`
	BrandName string        `yaml:"brand_name,omitempty"`
	Email     string        `yaml:"email,omitempty"`
	Message   string        `yaml:"message"`
	Rating    int           `yaml:"rating"`
	Status    string        `yaml:"status,omitempty"` // Defaults to approved
	Certified bool          `yaml:"certified,omitempty"`
	Age       time.Duration `yaml:"age,omitempty"` // How long ago it was created, e.g. "48h"
}

// LoadYAMLConfig loads the YAML configuration file.
// Path is determined by CONFIG_FILE env var, defaulting to "config.yaml".
// Returns nil without error if the config file doesn't exist.
func LoadYAMLConfig() (*YAMLConfig, error) {
	path := getEnv("CONFIG_FILE", "config.yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return nil, nil
		}
		return nil, err
	}

	return ParseYAMLConfig(data)
}

// ParseYAMLConfig decodes and checks YAML configuration bytes.
func ParseYAMLConfig(data []byte) (*YAMLConfig, error) {
	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	for i, s := range cfg.Seed {
		if s.ID != "" {
			if _, err := uuid.Parse(s.ID); err != nil {
				return nil, fmt.Errorf("seed[%d]: invalid id %q: %w", i, s.ID, err)
			}
		}
		if s.Status != "" {
			if _, ok := models.ParseStatus(s.Status); !ok {
				return nil, fmt.Errorf("seed[%d]: invalid status %q", i, s.Status)
			}
		}
		if s.Rating < 1 || s.Rating > 5 {
			return nil, fmt.Errorf("seed[%d]: rating must be between 1 and 5", i)
		}
	}

	return &cfg, nil
}

// ApplyBranding copies non-empty site overrides onto cfg.
func (c *YAMLConfig) ApplyBranding(cfg *Config) {
	if c == nil {
		return
	}
	if c.Site.Title != "" {
		cfg.SiteTitle = c.Site.Title
	}
	if c.Site.Tagline != "" {
		cfg.SiteTagline = c.Site.Tagline
	}
	if c.Site.Footer != "" {
		cfg.SiteFooter = c.Site.Footer
	}
	if c.Site.LogoURL != "" {
		cfg.SiteLogoURL = c.Site.LogoURL
	}
}

// defaultSeed mirrors the two sample testimonials the site ships with.
var defaultSeed = []SeedTestimonialConfig{
	{
		ID:        "6f1c2a4e-7d3b-4c5a-9e8f-1a2b3c4d5e01",
		Name:      "Jean Dupont",
		Email:     "jean@example.com",
		Message:   "An exceptional service! The team met every one of my expectations with rare professionalism.",
		Rating:    5,
		Certified: true,
		Age:       48 * time.Hour,
	},
	{
		ID:      "6f1c2a4e-7d3b-4c5a-9e8f-1a2b3c4d5e02",
		Name:    "Marie Claire",
		Email:   "marie@test.fr",
		Message: "Very satisfied with my experience. I strongly recommend them for any serious project.",
		Rating:  4,
		Age:     24 * time.Hour,
	},
}

// SeedTestimonials returns the seed records, falling back to the built-in
// samples when the file defines none. Timestamps are relative to now.
func (c *YAMLConfig) SeedTestimonials(now time.Time) []models.Testimonial {
	seeds := defaultSeed
	if c != nil && len(c.Seed) > 0 {
		seeds = c.Seed
	}

	out := make([]models.Testimonial, 0, len(seeds))
	for _, s := range seeds {
		id, err := uuid.Parse(s.ID)
		if err != nil {
			id = uuid.NewSHA1(uuid.NameSpaceOID, []byte(s.Name+"\x00"+s.Message))
		}
		status := models.StatusApproved
		if parsed, ok := models.ParseStatus(s.Status); ok {
			status = parsed
		}
		out = append(out, models.Testimonial{
			ID:          id,
			Name:        s.Name,
			BrandName:   s.BrandName,
			Email:       s.Email,
			Message:     s.Message,
			Rating:      s.Rating,
			CreatedAt:   now.Add(-s.Age).UTC(),
			Status:      status,
			IsCertified: s.Certified,
		})
	}
	return out
}
