package template

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Loader loads cluster templates from YAML files
type Loader struct {
	templatesDir string
	validate     *validator.Validate
}

// NewLoader creates a new template loader
func NewLoader(templatesDir string) *Loader {
	return &Loader{
		templatesDir: templatesDir,
		validate:     validator.New(),
	}
}

// Load loads a single template by name
func (l *Loader) Load(name string) (*Template, error) {
	filename := filepath.Join(l.templatesDir, name+".yaml")

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read template file %s: %w", filename, err)
	}

	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("parse template YAML %s: %w", filename, err)
	}

	if err := l.Validate(&tmpl); err != nil {
		return nil, fmt.Errorf("validate template %s: %w", name, err)
	}

	return &tmpl, nil
}

// LoadAll loads all templates from the templates directory
func (l *Loader) LoadAll() ([]*Template, error) {
	entries, err := os.ReadDir(l.templatesDir)
	if err != nil {
		return nil, fmt.Errorf("read templates directory: %w", err)
	}

	templates := []*Template{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if !strings.HasSuffix(entry.Name(), ".yaml") && !strings.HasSuffix(entry.Name(), ".yml") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".yaml")
		name = strings.TrimSuffix(name, ".yml")

		tmpl, err := l.Load(name)
		if err != nil {
			return nil, fmt.Errorf("load template %s: %w", name, err)
		}

		templates = append(templates, tmpl)
	}

	if len(templates) == 0 {
		return nil, fmt.Errorf("no templates found in %s", l.templatesDir)
	}

	return templates, nil
}

// Validate validates a template against the schema
func (l *Loader) Validate(tmpl *Template) error {
	if err := l.validate.Struct(tmpl); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	// Default and recommended versions must be in the allowlist
	if !contains(tmpl.OpenshiftVersions.Allowlist, tmpl.OpenshiftVersions.Default) {
		return fmt.Errorf("default version %s not in allowlist", tmpl.OpenshiftVersions.Default)
	}
	if !contains(tmpl.OpenshiftVersions.Allowlist, tmpl.OpenshiftVersions.Recommended) {
		return fmt.Errorf("recommended version %s not in allowlist", tmpl.OpenshiftVersions.Recommended)
	}

	// Default region must be in the allowlist
	if !contains(tmpl.Regions.Allowlist, tmpl.Regions.Default) {
		return fmt.Errorf("default region %s not in allowlist", tmpl.Regions.Default)
	}

	// Default instance type must be in the allowlist
	if !contains(tmpl.Compute.InstanceTypes, tmpl.Compute.DefaultInstanceType) {
		return fmt.Errorf("default instance type %s not in allowlist", tmpl.Compute.DefaultInstanceType)
	}

	return nil
}

// contains checks if a slice contains a string
func contains(slice []string, str string) bool {
	for _, s := range slice {
		if s == str {
			return true
		}
	}
	return false
}
