// Package templates loads and registers dungeon templates and difficulty
// modifiers. Templates are designer-authored YAML; a pair of built-in
// defaults ships in code so the service works with no data directory.
package templates

import (
	"sort"
	"sync"

	"github.com/KirkDiggler/dungeon-api/internal/entities"
	"github.com/KirkDiggler/dungeon-api/internal/errors"
)

// Registry holds the known templates and modifiers keyed by ID
type Registry struct {
	mu        sync.RWMutex
	templates map[string]*entities.DungeonTemplate
	modifiers map[string]*entities.Modifier
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		templates: make(map[string]*entities.DungeonTemplate),
		modifiers: make(map[string]*entities.Modifier),
	}
}

// NewDefaultRegistry creates a registry preloaded with the built-in
// templates and modifiers
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, tpl := range BuiltinTemplates() {
		r.templates[tpl.ID] = tpl
	}
	for _, mod := range BuiltinModifiers() {
		r.modifiers[mod.ID] = mod
	}
	return r
}

// RegisterTemplate adds a template, rejecting duplicates and templates
// that fail validation
func (r *Registry) RegisterTemplate(tpl *entities.DungeonTemplate) error {
	if tpl == nil || tpl.ID == "" {
		return errors.InvalidArgument("template requires an ID")
	}
	if err := validateTemplate(tpl); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.templates[tpl.ID]; exists {
		return errors.AlreadyExists("template already registered: " + tpl.ID)
	}
	r.templates[tpl.ID] = tpl
	return nil
}

// RegisterModifier adds a modifier
func (r *Registry) RegisterModifier(mod *entities.Modifier) error {
	if mod == nil || mod.ID == "" {
		return errors.InvalidArgument("modifier requires an ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.modifiers[mod.ID]; exists {
		return errors.AlreadyExists("modifier already registered: " + mod.ID)
	}
	r.modifiers[mod.ID] = mod
	return nil
}

// Template returns the template with the given ID
func (r *Registry) Template(id string) (*entities.DungeonTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tpl, ok := r.templates[id]
	if !ok {
		return nil, errors.NotFoundf("template %q not found", id)
	}
	return tpl, nil
}

// Modifier returns the modifier with the given ID. The empty ID and
// "none" both resolve to the identity modifier.
func (r *Registry) Modifier(id string) (*entities.Modifier, error) {
	if id == "" || id == entities.NoModifier.ID {
		m := entities.NoModifier
		return &m, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	mod, ok := r.modifiers[id]
	if !ok {
		return nil, errors.NotFoundf("modifier %q not found", id)
	}
	return mod, nil
}

// TemplateIDs returns the registered template IDs in sorted order
func (r *Registry) TemplateIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.templates))
	for id := range r.templates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
