package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile is a saved set of run settings. Zero values leave the current setting alone.
//
//	mesh_type: API 170
//	util_threshold: 85
//	columns:
//	  date: Date
//	  time: Time
type Profile struct {
	DataPath      string   `yaml:"data_path"`
	ExportPath    string   `yaml:"export_path"`
	MeshType      string   `yaml:"mesh_type"`
	UtilThreshold *float64 `yaml:"util_threshold"`
	Columns       struct {
		Date string `yaml:"date"`
		Time string `yaml:"time"`
	} `yaml:"columns"`
}

// LoadProfile reads a YAML run profile.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to decode profile %s: %w", path, err)
	}
	return &p, nil
}

// apply copies the non-empty profile settings onto cfg.
func (p *Profile) apply(cfg *Config) {
	if p.DataPath != "" {
		cfg.DataPath = p.DataPath
	}
	if p.ExportPath != "" {
		cfg.ExportPath = p.ExportPath
	}
	if p.MeshType != "" {
		cfg.MeshType = p.MeshType
	}
	if p.UtilThreshold != nil {
		cfg.UtilThreshold = *p.UtilThreshold
	}
	if p.Columns.Date != "" {
		cfg.DateColumn = p.Columns.Date
	}
	if p.Columns.Time != "" {
		cfg.TimeColumn = p.Columns.Time
	}
}
