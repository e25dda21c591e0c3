package policy_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rh-rosa-lab/rosactl/internal/policy"
	"github.com/rh-rosa-lab/rosactl/internal/template"
	"github.com/rh-rosa-lab/rosactl/pkg/types"
)

func setupPolicyEngine(t *testing.T) *policy.Engine {
	loader := template.NewLoader("../template/definitions")
	registry, err := template.NewRegistry(loader)
	require.NoError(t, err)

	return policy.NewEngine(registry)
}

func validConfig() *types.ClusterConfig {
	config := types.DefaultClusterConfig()
	config.Name = "my-cluster"
	return config
}

func hasFieldError(result *policy.ValidationResult, field string) bool {
	for _, e := range result.Errors {
		if e.Field == field {
			return true
		}
	}
	return false
}

func TestEngine_ValidateConfig(t *testing.T) {
	engine := setupPolicyEngine(t)

	t.Run("accepts a valid config", func(t *testing.T) {
		result, err := engine.ValidateConfig(validConfig())
		require.NoError(t, err)

		assert.True(t, result.Valid)
		assert.Empty(t, result.Errors)
		assert.Empty(t, result.Warnings)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		config := validConfig()
		config.Name = ""

		result, err := engine.ValidateConfig(config)
		require.NoError(t, err)

		assert.False(t, result.Valid)
		assert.True(t, hasFieldError(result, "name"))
	})

	t.Run("rejects uppercase and underscore names", func(t *testing.T) {
		for _, name := range []string{"INVALID", "my_cluster", "-leading", "trailing-"} {
			config := validConfig()
			config.Name = name

			result, err := engine.ValidateConfig(config)
			require.NoError(t, err)
			assert.False(t, result.Valid, "name %q should be rejected", name)
			assert.True(t, hasFieldError(result, "name"))
		}
	})

	t.Run("warns on long names without rejecting", func(t *testing.T) {
		config := validConfig()
		config.Name = "a-very-long-cluster-name"

		result, err := engine.ValidateConfig(config)
		require.NoError(t, err)

		assert.True(t, result.Valid)
		assert.NotEmpty(t, result.Warnings)
	})

	t.Run("rejects version outside the allowlist", func(t *testing.T) {
		config := validConfig()
		config.Version = "4.15.0"

		result, err := engine.ValidateConfig(config)
		require.NoError(t, err)

		assert.False(t, result.Valid)
		assert.True(t, hasFieldError(result, "version"))
	})

	t.Run("warns on supported non-4.20 versions", func(t *testing.T) {
		config := validConfig()
		config.Version = "4.19.0"

		result, err := engine.ValidateConfig(config)
		require.NoError(t, err)

		assert.True(t, result.Valid)
		assert.NotEmpty(t, result.Warnings)
	})

	t.Run("rejects unsupported region", func(t *testing.T) {
		config := validConfig()
		config.Region = "ap-south-1"

		result, err := engine.ValidateConfig(config)
		require.NoError(t, err)

		assert.False(t, result.Valid)
		assert.True(t, hasFieldError(result, "region"))
	})

	t.Run("rejects min replicas above max", func(t *testing.T) {
		config := validConfig()
		config.MinReplicas = 5
		config.MaxReplicas = 3

		result, err := engine.ValidateConfig(config)
		require.NoError(t, err)

		assert.False(t, result.Valid)
		assert.True(t, hasFieldError(result, "min_replicas"))
	})

	t.Run("rejects zero min replicas", func(t *testing.T) {
		config := validConfig()
		config.MinReplicas = 0

		result, err := engine.ValidateConfig(config)
		require.NoError(t, err)

		assert.False(t, result.Valid)
		assert.True(t, hasFieldError(result, "min_replicas"))
	})

	t.Run("requires CIDR when network automation is on", func(t *testing.T) {
		config := validConfig()
		config.NetworkAutomation = true
		config.CIDRBlock = ""

		result, err := engine.ValidateConfig(config)
		require.NoError(t, err)

		assert.False(t, result.Valid)
		assert.True(t, hasFieldError(result, "cidr_block"))
	})

	t.Run("rejects malformed CIDR", func(t *testing.T) {
		config := validConfig()
		config.CIDRBlock = "10.0.0.0/99"

		result, err := engine.ValidateConfig(config)
		require.NoError(t, err)

		assert.False(t, result.Valid)
		assert.True(t, hasFieldError(result, "cidr_block"))
	})

	t.Run("warns on availability zone outside the region", func(t *testing.T) {
		config := validConfig()
		config.AvailabilityZones = []string{"us-east-1a"}

		result, err := engine.ValidateConfig(config)
		require.NoError(t, err)

		assert.True(t, result.Valid)
		assert.NotEmpty(t, result.Warnings)
	})

	t.Run("log forwarding requires bucket and applications", func(t *testing.T) {
		config := validConfig()
		config.S3LogForwardingEnabled = true

		result, err := engine.ValidateConfig(config)
		require.NoError(t, err)

		assert.False(t, result.Valid)
		assert.True(t, hasFieldError(result, "s3_bucket_name"))
		assert.True(t, hasFieldError(result, "s3_log_applications"))
	})

	t.Run("rejects unknown log applications", func(t *testing.T) {
		config := validConfig()
		config.S3LogForwardingEnabled = true
		config.S3BucketName = "my-logs"
		config.S3LogApplications = []string{"nonsense"}

		result, err := engine.ValidateConfig(config)
		require.NoError(t, err)

		assert.False(t, result.Valid)
		assert.True(t, hasFieldError(result, "s3_log_applications"))
	})

	t.Run("rejects reserved tag keys", func(t *testing.T) {
		config := validConfig()
		config.Tags = map[string]string{"ManagedBy": "me"}

		result, err := engine.ValidateConfig(config)
		require.NoError(t, err)

		assert.False(t, result.Valid)
		assert.True(t, hasFieldError(result, "tags"))
	})

	t.Run("role automation passes when the catalog offers it", func(t *testing.T) {
		config := validConfig()
		config.RoleAutomation = true

		result, err := engine.ValidateConfig(config)
		require.NoError(t, err)

		assert.True(t, result.Valid)
	})

	t.Run("collects multiple errors in one pass", func(t *testing.T) {
		config := validConfig()
		config.Name = ""
		config.Version = "4.15.0"
		config.MinReplicas = 0

		result, err := engine.ValidateConfig(config)
		require.NoError(t, err)

		assert.False(t, result.Valid)
		assert.GreaterOrEqual(t, len(result.Errors), 3)
	})
}

func TestEngine_ValidateAutomation(t *testing.T) {
	// A catalog whose only template offers network automation but not role
	// automation
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "network-only.yaml"), []byte(`
name: network-only
displayName: Network Only
description: network automation without role automation
enabled: true
features: [network_automation]
openshiftVersions:
  allowlist: ["4.20.0"]
  default: "4.20.0"
  recommended: "4.20.0"
regions:
  allowlist: [us-west-2]
  default: us-west-2
compute:
  instanceTypes: [m5.xlarge]
  defaultInstanceType: m5.xlarge
  minReplicas: 2
  maxReplicas: 6
`), 0o644))

	registry, err := template.NewRegistry(template.NewLoader(dir))
	require.NoError(t, err)
	engine := policy.NewEngine(registry)

	t.Run("rejects role automation the catalog cannot provide", func(t *testing.T) {
		config := validConfig()
		config.RoleAutomation = true

		result, err := engine.ValidateConfig(config)
		require.NoError(t, err)

		assert.False(t, result.Valid)
		assert.True(t, hasFieldError(result, "role_automation"))
	})

	t.Run("accepts network automation the catalog provides", func(t *testing.T) {
		result, err := engine.ValidateConfig(validConfig())
		require.NoError(t, err)

		assert.True(t, result.Valid)
	})
}

func TestValidationResult_Outcome(t *testing.T) {
	engine := setupPolicyEngine(t)

	config := validConfig()
	config.Name = ""
	config.Version = "4.19.0"

	result, err := engine.ValidateConfig(config)
	require.NoError(t, err)

	outcome := result.Outcome()
	assert.False(t, outcome.Valid)
	assert.NotEmpty(t, outcome.Errors)
	assert.NotEmpty(t, outcome.Warnings, "warnings carry through even when invalid")
}
