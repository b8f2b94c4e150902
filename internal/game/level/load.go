package level

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/hopper/internal/assets"
	"github.com/Faultbox/hopper/internal/game/world"
)

// Parse decodes and validates a YAML layout.
func Parse(data []byte) (*Level, error) {
	lvl := &Level{}
	if err := yaml.Unmarshal(data, lvl); err != nil {
		return nil, fmt.Errorf("parse level: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, fmt.Errorf("invalid level: %w", err)
	}
	return lvl, nil
}

// Load reads a layout through the asset manager. An empty name selects the
// built-in level.
func Load(m *assets.Manager, name string) (*Level, error) {
	if name == "" {
		return Default(), nil
	}
	data, err := m.Load(name)
	if err != nil {
		return nil, fmt.Errorf("load level %s: %w", name, err)
	}
	return Parse(data)
}

// Save writes the authored layout as level YAML. It backs the overlay's
// "Save layout..." export. Runtime scene state such as instances and entity
// positions is never written.
func (l *Level) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(l)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// WithColliders returns a copy of l whose colliders are taken from boxes.
func (l *Level) WithColliders(boxes []world.AABB) *Level {
	out := *l
	out.Colliders = make([]Box, len(boxes))
	for i, b := range boxes {
		out.Colliders[i] = Box{Center: b.Center, Half: b.Half}
	}
	return &out
}
