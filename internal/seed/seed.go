// Package seed holds the built-in content the store falls back to when a
// collection has never been persisted or its stored copy cannot be read.
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"hiveportal/internal/domain"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Defaults parses the embedded dataset. Each call returns an independent copy.
func Defaults() (*domain.Dataset, error) {
	return Parse(defaultsYAML)
}

// MustDefaults is Defaults for program start-up; it panics on a malformed embed.
func MustDefaults() *domain.Dataset {
	ds, err := Defaults()
	if err != nil {
		panic(err)
	}
	return ds
}

// Parse decodes a YAML dataset. Field names follow the JSON wire names, so the
// document is decoded generically and re-read through the JSON tags.
func Parse(raw []byte) (*domain.Dataset, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse seed yaml: %w", err)
	}
	bridged, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("convert seed to json: %w", err)
	}
	var ds domain.Dataset
	if err := json.Unmarshal(bridged, &ds); err != nil {
		return nil, fmt.Errorf("decode seed dataset: %w", err)
	}
	return &ds, nil
}
