// Package plugin hosts the optional feature modules and their persisted
// configuration. Plugins are compiled in and registered at startup; the
// registry is the single lookup point for the API layer.
package plugin

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownPlugin is returned for lookups of an unregistered plugin ID.
var ErrUnknownPlugin = errors.New("unknown plugin")

// Meta describes a plugin for listings.
type Meta struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     string `json:"version"`
	Author      string `json:"author,omitempty"`
	Icon        string `json:"icon,omitempty"`
	Order       int    `json:"order"`
}

// FormField describes one configuration input for a plugin settings form.
type FormField struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Kind        string `json:"kind"` // switch, text, textarea
	Placeholder string `json:"placeholder,omitempty"`
	Hint        string `json:"hint,omitempty"`
}

// Form is a plugin settings form: its fields plus the current values keyed
// by field name.
type Form struct {
	Fields []FormField    `json:"fields"`
	Values map[string]any `json:"values"`
}

// Plugin is one compiled-in feature module. Init receives the persisted
// configuration document and may start background work; Stop must release
// whatever Init started.
type Plugin interface {
	Meta() Meta
	Init(config []byte) error
	Enabled() bool
	Form() (Form, error)
	Stop() error
}

// Registry holds the registered plugins.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{plugins: make(map[string]Plugin)}
}

// Register adds a plugin. Duplicate IDs are a programming error.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := p.Meta().ID
	if _, exists := r.plugins[id]; exists {
		return fmt.Errorf("plugin %q already registered", id)
	}
	r.plugins[id] = p
	return nil
}

// Get returns the plugin with the given ID.
func (r *Registry) Get(id string) (Plugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlugin, id)
	}
	return p, nil
}

// List returns all registered plugins ordered by Meta.Order, then ID.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Plugin, 0, len(r.plugins))
	for _, p := range r.plugins {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Meta(), out[j].Meta()
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return a.ID < b.ID
	})
	return out
}

// StopAll stops every registered plugin, returning the first error.
func (r *Registry) StopAll() error {
	var first error
	for _, p := range r.List() {
		if err := p.Stop(); err != nil && first == nil {
			first = fmt.Errorf("stop plugin %s: %w", p.Meta().ID, err)
		}
	}
	return first
}
