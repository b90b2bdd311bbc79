// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/job-matcher/internal/sites"
	"github.com/jonathan/job-matcher/internal/types"
)

// Config holds the raw configuration read from a JSON file plus any CLI
// overrides. Numeric fields are pointers so an explicit zero (for example
// --min-score 0) is distinguishable from an unset field.
type Config struct {
	// Inputs
	Resume   string `json:"resume,omitempty"`   // Path to the resume file (PDF/DOCX)
	Query    string `json:"query,omitempty"`    // Job title to search for
	Location string `json:"location,omitempty"` // Location string

	// Scraping
	Pages *int     `json:"pages,omitempty"` // Result pages per site
	Sites []string `json:"sites,omitempty"` // Site identifiers to scrape

	// Scoring
	MinScore      *float64 `json:"min_score,omitempty"`      // Relevance threshold
	FallbackScore *float64 `json:"fallback_score,omitempty"` // Score assigned when the model path fails

	// Output & behavior
	Output   string `json:"output,omitempty"`    // Report path (defaults to a timestamped name)
	APIKey   string `json:"api_key,omitempty"`   // Gemini API key
	JSONLogs bool   `json:"json_logs,omitempty"` // Emit JSON logs instead of console
	Verbose  bool   `json:"verbose,omitempty"`   // Debug-level logging
}

// LoadConfig loads configuration from a JSON file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Defaults holds the values applied to fields that neither the config file
// nor a flag set.
type Defaults struct {
	Pages         int
	MinScore      float64
	FallbackScore float64
	Sites         []string
}

// Settings is the fully resolved runtime configuration a run operates on.
type Settings struct {
	Resume   string
	Query    string
	Location string

	Pages int
	Sites []string

	MinScore      float64
	FallbackScore float64

	Output   string
	APIKey   string
	JSONLogs bool
	Verbose  bool
}

// Resolve produces the effective settings: set fields win over defaults. A
// field explicitly set to its zero value stays zero.
func (c *Config) Resolve(d Defaults) Settings {
	s := Settings{
		Resume:   c.Resume,
		Query:    c.Query,
		Location: c.Location,

		Pages: d.Pages,
		Sites: d.Sites,

		MinScore:      d.MinScore,
		FallbackScore: d.FallbackScore,

		Output:   c.Output,
		APIKey:   c.APIKey,
		JSONLogs: c.JSONLogs,
		Verbose:  c.Verbose,
	}

	if c.Pages != nil {
		s.Pages = *c.Pages
	}
	if c.MinScore != nil {
		s.MinScore = *c.MinScore
	}
	if c.FallbackScore != nil {
		s.FallbackScore = *c.FallbackScore
	}
	if len(c.Sites) > 0 {
		s.Sites = c.Sites
	}

	return s
}

// Validate checks ranges, site identifiers and that the resume file exists.
// It runs after Resolve so overrides are already applied; a bad value in the
// config file that a flag corrects never aborts the run. Required fields are
// checked by the caller.
func (s *Settings) Validate() error {
	if s.Pages < 0 {
		return fmt.Errorf("config error: 'pages' must be non-negative")
	}
	if s.MinScore < 0 || s.MinScore > 1 {
		return fmt.Errorf("config error: 'min_score' must be in [0,1]")
	}
	if s.FallbackScore < 0 || s.FallbackScore > 1 {
		return fmt.Errorf("config error: 'fallback_score' must be in [0,1]")
	}

	for _, site := range s.Sites {
		if _, ok := sites.Lookup(types.Source(site)); !ok {
			return fmt.Errorf("config error: unknown site %q", site)
		}
	}

	if s.Resume != "" {
		if _, err := os.Stat(s.Resume); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume file not found: %s", s.Resume)
		}
	}

	return nil
}

// Sources converts the configured site identifiers to typed sources.
func (s *Settings) Sources() []types.Source {
	sources := make([]types.Source, 0, len(s.Sites))
	for _, site := range s.Sites {
		sources = append(sources, types.Source(site))
	}
	return sources
}
