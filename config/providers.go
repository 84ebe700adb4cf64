package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ProviderOverride adjusts one provider of the built-in catalog.
type ProviderOverride struct {
	ID                 string  `yaml:"id"`
	Enabled            *bool   `yaml:"enabled"`
	Endpoint           string  `yaml:"endpoint"`
	RateLimitPerSecond float64 `yaml:"rate_limit_per_second"`
}

// ProviderOverrides is the optional YAML file tuning the provider catalog.
type ProviderOverrides struct {
	Providers []ProviderOverride `yaml:"providers"`
}

// LoadProviderOverrides reads the overrides file. A missing path returns an
// empty override set.
func LoadProviderOverrides(path string) (*ProviderOverrides, error) {
	if path == "" {
		return &ProviderOverrides{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read providers file: %w", err)
	}
	var overrides ProviderOverrides
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse providers file: %w", err)
	}
	return &overrides, nil
}

// Disabled reports whether the override for id turns the provider off.
func (o *ProviderOverrides) Disabled(id string) bool {
	for _, p := range o.Providers {
		if p.ID == id && p.Enabled != nil && !*p.Enabled {
			return true
		}
	}
	return false
}

// EndpointFor returns the overridden endpoint for id, or empty.
func (o *ProviderOverrides) EndpointFor(id string) string {
	for _, p := range o.Providers {
		if p.ID == id {
			return p.Endpoint
		}
	}
	return ""
}

// RateLimits returns the per-provider rate overrides keyed by provider id.
func (o *ProviderOverrides) RateLimits() map[string]float64 {
	limits := make(map[string]float64)
	for _, p := range o.Providers {
		if p.RateLimitPerSecond > 0 {
			limits[p.ID] = p.RateLimitPerSecond
		}
	}
	return limits
}
