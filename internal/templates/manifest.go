// Package templates loads starter-project manifests and applies them to
// fresh workspaces. Manifests are small YAML files describing a name and the
// initial set of project files.
package templates

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Manifest is the root structure of a .template.yaml file
type Manifest struct {
	ID          string         `yaml:"id"`
	Name        string         `yaml:"name"`
	Description string         `yaml:"description,omitempty"`
	Files       []ManifestFile `yaml:"files"`
}

// ManifestFile is one seeded project file
type ManifestFile struct {
	Path    string `yaml:"path"`
	Content string `yaml:"content"`
}

// Parse decodes and validates a manifest
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	if m.ID == "" {
		return nil, fmt.Errorf("template ID is required")
	}
	if m.Name == "" {
		m.Name = m.ID
	}
	for i, f := range m.Files {
		if f.Path == "" {
			return nil, fmt.Errorf("template %s: file %d has no path", m.ID, i)
		}
	}
	return &m, nil
}
