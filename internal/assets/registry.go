// Package assets registers, fetches and decodes the showcase's models,
// textures, audio and video, and reports loading progress.
package assets

import (
	"sync"

	"github.com/Faultbox/castle-showcase/internal/logger"
	"go.uber.org/zap"
)

// Descriptor is a registered asset. It is immutable once registered.
type Descriptor struct {
	Kind Kind
	Name string
	Path string
}

// Registry maps logical asset names to descriptors.
type Registry struct {
	mu      sync.RWMutex
	order   []string
	entries map[string]Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]Descriptor),
	}
}

// Register adds a descriptor. Registering a name twice replaces the earlier
// descriptor; the name keeps its original position in the load order.
func (r *Registry) Register(kind Kind, path, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.entries[name]; ok {
		logger.Debug("asset re-registered",
			zap.String("name", name),
			zap.String("old_path", prev.Path),
			zap.String("new_path", path))
	} else {
		r.order = append(r.order, name)
	}
	r.entries[name] = Descriptor{Kind: kind, Name: name, Path: path}
}

// Lookup returns the descriptor registered under name.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.entries[name]
	return d, ok
}

// Descriptors returns all descriptors in registration order.
func (r *Registry) Descriptors() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Descriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.entries[name])
	}
	return out
}

// Select returns the descriptors whose kind is in kinds, in registration
// order. An empty kinds list selects everything.
func (r *Registry) Select(kinds ...Kind) []Descriptor {
	all := r.Descriptors()
	if len(kinds) == 0 {
		return all
	}
	want := make(map[Kind]bool, len(kinds))
	for _, k := range kinds {
		want[k] = true
	}
	out := all[:0]
	for _, d := range all {
		if want[d.Kind] {
			out = append(out, d)
		}
	}
	return out
}

// Len returns the number of registered names.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Count returns the number of registered assets of the given kind.
func (r *Registry) Count(kind Kind) int {
	return len(r.Select(kind))
}
