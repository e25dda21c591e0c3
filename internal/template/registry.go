package template

import (
	"fmt"
	"sort"
	"sync"
)

// Registry provides fast in-memory access to cluster templates
type Registry struct {
	mu        sync.RWMutex
	templates map[string]*Template // keyed by template name
	loader    *Loader
}

// NewRegistry creates a new template registry and loads all templates
func NewRegistry(loader *Loader) (*Registry, error) {
	r := &Registry{
		templates: make(map[string]*Template),
		loader:    loader,
	}

	if err := r.Reload(); err != nil {
		return nil, fmt.Errorf("initial template load: %w", err)
	}

	return r, nil
}

// Reload re-reads all templates from disk
func (r *Registry) Reload() error {
	templates, err := r.loader.LoadAll()
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.templates = make(map[string]*Template, len(templates))
	for _, tmpl := range templates {
		r.templates[tmpl.Name] = tmpl
	}

	return nil
}

// Get retrieves a template by name
func (r *Registry) Get(name string) (*Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tmpl, exists := r.templates[name]
	if !exists {
		return nil, fmt.Errorf("template not found: %s", name)
	}

	if !tmpl.Enabled {
		return nil, fmt.Errorf("template disabled: %s", name)
	}

	return tmpl, nil
}

// List returns all enabled templates sorted by name
func (r *Registry) List() []*Template {
	r.mu.RLock()
	defer r.mu.RUnlock()

	templates := make([]*Template, 0, len(r.templates))
	for _, tmpl := range r.templates {
		if tmpl.Enabled {
			templates = append(templates, tmpl)
		}
	}

	sort.Slice(templates, func(i, j int) bool {
		return templates[i].Name < templates[j].Name
	})

	return templates
}

// Count returns the total number of templates
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.templates)
}

// CountEnabled returns the number of enabled templates
func (r *Registry) CountEnabled() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, tmpl := range r.templates {
		if tmpl.Enabled {
			count++
		}
	}
	return count
}

// SupportedVersions returns the union of version allowlists across all
// enabled templates, sorted
func (r *Registry) SupportedVersions() []string {
	return r.union(func(t *Template) []string { return t.OpenshiftVersions.Allowlist })
}

// SupportedRegions returns the union of region allowlists across all
// enabled templates, sorted
func (r *Registry) SupportedRegions() []string {
	return r.union(func(t *Template) []string { return t.Regions.Allowlist })
}

// SupportedInstanceTypes returns the union of instance type allowlists
// across all enabled templates, sorted
func (r *Registry) SupportedInstanceTypes() []string {
	return r.union(func(t *Template) []string { return t.Compute.InstanceTypes })
}

// LogApplications returns the union of forwardable log applications across
// all enabled templates, sorted
func (r *Registry) LogApplications() []string {
	return r.union(func(t *Template) []string { return t.LogForwarding.Applications })
}

// ReservedTagKeys returns the union of reserved tag keys across all
// enabled templates, sorted
func (r *Registry) ReservedTagKeys() []string {
	return r.union(func(t *Template) []string { return t.Tags.Reserved })
}

// SupportsFeature reports whether any enabled template declares the feature
func (r *Registry) SupportsFeature(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, tmpl := range r.templates {
		if tmpl.Enabled && tmpl.HasFeature(name) {
			return true
		}
	}
	return false
}

// DefaultVersion returns the default version of the first enabled template
func (r *Registry) DefaultVersion() string {
	templates := r.List()
	if len(templates) == 0 {
		return ""
	}
	return templates[0].OpenshiftVersions.Default
}

// RecommendedVersion returns the recommended version of the first enabled
// template
func (r *Registry) RecommendedVersion() string {
	templates := r.List()
	if len(templates) == 0 {
		return ""
	}
	return templates[0].OpenshiftVersions.Recommended
}

func (r *Registry) union(get func(*Template) []string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, tmpl := range r.templates {
		if !tmpl.Enabled {
			continue
		}
		for _, v := range get(tmpl) {
			seen[v] = struct{}{}
		}
	}

	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)

	return values
}
