package template_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rh-rosa-lab/rosactl/internal/template"
)

func TestLoader_Load(t *testing.T) {
	loader := template.NewLoader("definitions")

	t.Run("loads a valid template", func(t *testing.T) {
		tmpl, err := loader.Load("rosa-network-basic")
		require.NoError(t, err)

		assert.Equal(t, "rosa-network-basic", tmpl.Name)
		assert.Contains(t, tmpl.OpenshiftVersions.Allowlist, "4.20.0")
		assert.Equal(t, "4.20.0", tmpl.OpenshiftVersions.Default)
		assert.Equal(t, "m5.xlarge", tmpl.Compute.DefaultInstanceType)
	})

	t.Run("errors on missing file", func(t *testing.T) {
		_, err := loader.Load("nope")
		assert.Error(t, err)
	})
}

func TestLoader_LoadAll(t *testing.T) {
	loader := template.NewLoader("definitions")

	templates, err := loader.LoadAll()
	require.NoError(t, err)
	assert.Len(t, templates, 2)
}

func TestLoader_Validate(t *testing.T) {
	t.Run("rejects default version outside the allowlist", func(t *testing.T) {
		dir := t.TempDir()
		writeTemplate(t, dir, "bad-default.yaml", `
name: bad-default
displayName: Bad Default
description: default version missing from allowlist
enabled: true
features: [network_automation]
openshiftVersions:
  allowlist: ["4.20.0"]
  default: "4.19.0"
  recommended: "4.20.0"
regions:
  allowlist: [us-west-2]
  default: us-west-2
compute:
  instanceTypes: [m5.xlarge]
  defaultInstanceType: m5.xlarge
  minReplicas: 2
  maxReplicas: 6
`)

		loader := template.NewLoader(dir)
		_, err := loader.Load("bad-default")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not in allowlist")
	})

	t.Run("rejects default region outside the allowlist", func(t *testing.T) {
		dir := t.TempDir()
		writeTemplate(t, dir, "bad-region.yaml", `
name: bad-region
displayName: Bad Region
description: default region missing from allowlist
enabled: true
features: [network_automation]
openshiftVersions:
  allowlist: ["4.20.0"]
  default: "4.20.0"
  recommended: "4.20.0"
regions:
  allowlist: [us-west-2]
  default: eu-west-1
compute:
  instanceTypes: [m5.xlarge]
  defaultInstanceType: m5.xlarge
  minReplicas: 2
  maxReplicas: 6
`)

		loader := template.NewLoader(dir)
		_, err := loader.Load("bad-region")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not in allowlist")
	})

	t.Run("errors on empty directory", func(t *testing.T) {
		loader := template.NewLoader(t.TempDir())
		_, err := loader.LoadAll()
		assert.Error(t, err)
	})
}

func writeTemplate(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
