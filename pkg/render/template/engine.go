// Package template wraps pongo2 behind a small rendering seam so renderers
// stay decoupled from the template engine.
package template

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

// Renderer is the seam HTML renderers depend on.
type Renderer interface {
	RenderTemplate(name string, data map[string]any) (string, error)
	RenderString(content string, data map[string]any) (string, error)
}

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	files     fs.FS
	extension string
}

// WithFS loads templates from an fs.FS (usually an embed.FS).
func WithFS(files fs.FS) Option {
	return func(cfg *config) { cfg.files = files }
}

// WithExtension overrides the default ".tmpl" template extension.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// Engine renders pongo2 templates from an fs.FS with a compiled-template
// cache.
type Engine struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
	extension string
}

var _ Renderer = (*Engine)(nil)

// New constructs an Engine. A template source is required.
func New(options ...Option) (*Engine, error) {
	cfg := &config{extension: ".tmpl"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}
	if cfg.files == nil {
		return nil, errors.New("template: an fs.FS template source is required")
	}

	return &Engine{
		set:       pongo2.NewSet("regform", pongo2.NewFSLoader(cfg.files)),
		templates: make(map[string]*pongo2.Template),
		extension: cfg.extension,
	}, nil
}

// RenderTemplate renders a named template; the configured extension is
// appended when missing.
func (e *Engine) RenderTemplate(name string, data map[string]any) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("template: engine is nil")
	}
	path := name
	if !strings.HasSuffix(path, e.extension) {
		path += e.extension
	}

	tmpl, err := e.template(path)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(pongo2.Context(data), &buf); err != nil {
		return "", fmt.Errorf("template: execute %q: %w", path, err)
	}
	return buf.String(), nil
}

// RenderString parses and renders inline template content.
func (e *Engine) RenderString(content string, data map[string]any) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("template: engine is nil")
	}
	tmpl, err := e.set.FromString(content)
	if err != nil {
		return "", fmt.Errorf("template: parse inline template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(pongo2.Context(data), &buf); err != nil {
		return "", fmt.Errorf("template: execute inline template: %w", err)
	}
	return buf.String(), nil
}

func (e *Engine) template(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.templates[path]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("template: load %q: %w", path, err)
	}
	e.templates[path] = tmpl
	return tmpl, nil
}
