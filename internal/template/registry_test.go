package template_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rh-rosa-lab/rosactl/internal/template"
)

func setupRegistry(t *testing.T) *template.Registry {
	loader := template.NewLoader("definitions")
	registry, err := template.NewRegistry(loader)
	require.NoError(t, err)
	return registry
}

func TestRegistry_Get(t *testing.T) {
	registry := setupRegistry(t)

	t.Run("returns existing template", func(t *testing.T) {
		tmpl, err := registry.Get("rosa-network-basic")
		require.NoError(t, err)
		assert.Equal(t, "rosa-network-basic", tmpl.Name)
		assert.True(t, tmpl.Enabled)
	})

	t.Run("errors on unknown template", func(t *testing.T) {
		_, err := registry.Get("does-not-exist")
		assert.Error(t, err)
	})
}

func TestRegistry_List(t *testing.T) {
	registry := setupRegistry(t)

	templates := registry.List()
	require.NotEmpty(t, templates)

	// Sorted by name
	for i := 1; i < len(templates); i++ {
		assert.Less(t, templates[i-1].Name, templates[i].Name)
	}
}

func TestRegistry_Unions(t *testing.T) {
	registry := setupRegistry(t)

	t.Run("supported versions", func(t *testing.T) {
		versions := registry.SupportedVersions()
		assert.Contains(t, versions, "4.20.0")
		assert.Contains(t, versions, "4.18.0")
	})

	t.Run("supported regions", func(t *testing.T) {
		regions := registry.SupportedRegions()
		assert.Contains(t, regions, "us-west-2")
		assert.NotContains(t, regions, "ap-south-1")
	})

	t.Run("log applications", func(t *testing.T) {
		apps := registry.LogApplications()
		assert.ElementsMatch(t, []string{"application", "audit", "infrastructure"}, apps)
	})

	t.Run("reserved tag keys", func(t *testing.T) {
		assert.Contains(t, registry.ReservedTagKeys(), "ManagedBy")
	})
}

func TestRegistry_SupportsFeature(t *testing.T) {
	registry := setupRegistry(t)

	assert.True(t, registry.SupportsFeature(template.FeatureNetworkAutomation))
	assert.True(t, registry.SupportsFeature(template.FeatureRoleAutomation))
	assert.False(t, registry.SupportsFeature("gpu_pools"))
}

func TestRegistry_Defaults(t *testing.T) {
	registry := setupRegistry(t)

	assert.Equal(t, "4.20.0", registry.DefaultVersion())
	assert.Equal(t, "4.20.0", registry.RecommendedVersion())
}

func TestRegistry_Counts(t *testing.T) {
	registry := setupRegistry(t)

	assert.Equal(t, 2, registry.Count())
	assert.Equal(t, 2, registry.CountEnabled())
}
