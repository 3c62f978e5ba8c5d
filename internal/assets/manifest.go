package assets

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/castle-showcase/internal/config"
)

// Manifest is the on-disk list of assets to register at startup.
type Manifest struct {
	Assets []config.AssetEntry `yaml:"assets"`
}

// LoadManifest reads a YAML manifest and registers every entry.
func LoadManifest(r *Registry, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return RegisterEntries(r, m.Assets)
}

// RegisterEntries registers config entries. It stops at the first entry with
// an unknown kind or a missing name or path.
func RegisterEntries(r *Registry, entries []config.AssetEntry) error {
	for i, e := range entries {
		kind, err := ParseKind(e.Kind)
		if err != nil {
			return fmt.Errorf("entry %d (%s): %w", i, e.Name, err)
		}
		if e.Name == "" || e.Path == "" {
			return fmt.Errorf("entry %d: name and path are required", i)
		}
		r.Register(kind, e.Path, e.Name)
	}
	return nil
}
