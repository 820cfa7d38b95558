package render

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds named renderers so callers can pick a presentation at
// runtime (vanilla HTML, TUI transcript, ...).
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{renderers: make(map[string]Renderer)}
}

// Register adds a renderer under its own name. Duplicate names are an error.
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("render: cannot register nil renderer")
	}
	name := renderer.Name()
	if name == "" {
		return fmt.Errorf("render: renderer has empty name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	r.renderers[name] = renderer
	return nil
}

// MustRegister panics on registration failure; meant for init-time wiring.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Lookup returns the renderer registered under name.
func (r *Registry) Lookup(name string) (Renderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	renderer, ok := r.renderers[name]
	return renderer, ok
}

// Names lists registered renderer names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
