// Package config handles configuration loading.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const DefaultPreviewSize = 256

// ErrNoSource is returned when a KML source path is not configured.
var ErrNoSource = errors.New("kml source path is not set")

// Config represents the root configuration file structure.
type Config struct {
	KML         KML     `yaml:"kml"`
	RateLimit   float64 `yaml:"rate_limit,omitempty"`   // requests per second, 0 disables
	RateBurst   int     `yaml:"rate_burst,omitempty"`   // limiter bucket size
	PreviewSize int     `yaml:"preview_size,omitempty"` // default WebP preview edge in pixels
}

// KML holds paths to the two field sources.
type KML struct {
	Fields    string `yaml:"fields"`    // polygon boundaries with fid/size attributes
	Centroids string `yaml:"centroids"` // centroid points keyed by fid
}

// Load reads and parses the YAML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadOptional behaves like Load but returns an empty Config when the file does not exist.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Config{}, nil
	}

	return cfg, err
}

// Validate checks required settings and fills defaults.
func (c *Config) Validate() error {
	if c.KML.Fields == "" {
		return fmt.Errorf("fields: %w", ErrNoSource)
	}
	if c.KML.Centroids == "" {
		return fmt.Errorf("centroids: %w", ErrNoSource)
	}

	if c.RateLimit < 0 {
		c.RateLimit = 0
	}
	if c.RateBurst <= 0 {
		c.RateBurst = max(1, int(c.RateLimit))
	}
	if c.PreviewSize <= 0 {
		c.PreviewSize = DefaultPreviewSize
	}

	return nil
}
