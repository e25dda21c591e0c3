package policy

import (
	"fmt"
	"net"
	"regexp"
	"strings"

	"github.com/rh-rosa-lab/rosactl/internal/template"
	"github.com/rh-rosa-lab/rosactl/pkg/types"
)

// Name length beyond which provisioning tooling has shown problems
const nameWarningLength = 15

// Engine validates cluster configs against the template catalog
type Engine struct {
	registry *template.Registry
}

// NewEngine creates a new validation engine
func NewEngine(registry *template.Registry) *Engine {
	return &Engine{
		registry: registry,
	}
}

// dnsPattern: lowercase alphanumeric and hyphens, must start and end
// alphanumeric
var dnsPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)

// ValidateConfig validates a cluster config and returns ordered errors and
// warnings. A nil error return does not imply the config is valid.
func (e *Engine) ValidateConfig(config *types.ClusterConfig) (*ValidationResult, error) {
	result := &ValidationResult{
		Valid:    true,
		Errors:   []ValidationError{},
		Warnings: []string{},
	}

	e.validateName(config, result)
	e.validateVersion(config, result)
	e.validateRegion(config, result)
	e.validateInstanceType(config, result)
	e.validateReplicas(config, result)
	e.validateAutomation(config, result)
	e.validateNetwork(config, result)
	e.validateLogForwarding(config, result)
	e.validateTags(config, result)

	return result, nil
}

// Outcome converts a result into the wire-level validation outcome
func (r *ValidationResult) Outcome() *types.ValidationOutcome {
	return &types.ValidationOutcome{
		Valid:    r.Valid,
		Errors:   r.ErrorStrings(),
		Warnings: r.Warnings,
	}
}

// validateName checks cluster name is DNS-compatible
func (e *Engine) validateName(config *types.ClusterConfig, result *ValidationResult) {
	if config.Name == "" {
		result.AddError("name", "cluster name is required")
		return
	}

	if !dnsPattern.MatchString(config.Name) {
		result.AddError("name", "cluster name must contain only lowercase alphanumeric characters and hyphens")
		return
	}

	if len(config.Name) > nameWarningLength {
		result.AddWarning(fmt.Sprintf("cluster name longer than %d characters may cause issues", nameWarningLength))
	}
}

// validateVersion checks version is in the supported allowlist
func (e *Engine) validateVersion(config *types.ClusterConfig, result *ValidationResult) {
	if config.Version == "" {
		result.AddError("version", "OpenShift version is required")
		return
	}

	supported := e.registry.SupportedVersions()
	if !containsString(supported, config.Version) {
		result.AddError("version", fmt.Sprintf("version %s not supported, must be one of %v", config.Version, supported))
		return
	}

	if !strings.HasPrefix(config.Version, "4.20") {
		result.AddWarning("only OpenShift 4.20 is fully supported by this automation")
	}
}

// validateRegion checks region is in the supported set
func (e *Engine) validateRegion(config *types.ClusterConfig, result *ValidationResult) {
	if config.Region == "" {
		result.AddError("region", "region is required")
		return
	}

	supported := e.registry.SupportedRegions()
	if !containsString(supported, config.Region) {
		result.AddError("region", fmt.Sprintf("region %s not supported, must be one of %v", config.Region, supported))
	}
}

// validateInstanceType checks instance type is in the supported set
func (e *Engine) validateInstanceType(config *types.ClusterConfig, result *ValidationResult) {
	if config.InstanceType == "" {
		return
	}

	supported := e.registry.SupportedInstanceTypes()
	if !containsString(supported, config.InstanceType) {
		result.AddError("instance_type", fmt.Sprintf("instance type %s not supported, must be one of %v", config.InstanceType, supported))
	}
}

// validateReplicas checks worker pool bounds
func (e *Engine) validateReplicas(config *types.ClusterConfig, result *ValidationResult) {
	if config.MinReplicas < 1 {
		result.AddError("min_replicas", "min replicas must be at least 1")
	}

	if config.MinReplicas > config.MaxReplicas {
		result.AddError("min_replicas", "min replicas cannot be greater than max replicas")
	}
}

// validateAutomation checks requested automation against the catalog
func (e *Engine) validateAutomation(config *types.ClusterConfig, result *ValidationResult) {
	if config.NetworkAutomation && !e.registry.SupportsFeature(template.FeatureNetworkAutomation) {
		result.AddError("network_automation", "no enabled template supports network automation")
	}

	if config.RoleAutomation && !e.registry.SupportsFeature(template.FeatureRoleAutomation) {
		result.AddError("role_automation", "no enabled template supports role automation")
	}
}

// validateNetwork checks CIDR and availability zone settings
func (e *Engine) validateNetwork(config *types.ClusterConfig, result *ValidationResult) {
	if config.NetworkAutomation {
		if config.CIDRBlock == "" {
			result.AddError("cidr_block", "CIDR block is required when network automation is enabled")
		} else if _, _, err := net.ParseCIDR(config.CIDRBlock); err != nil {
			result.AddError("cidr_block", fmt.Sprintf("invalid CIDR block %s", config.CIDRBlock))
		}
	}

	// AZs from another region are almost certainly operator error, but the
	// provisioner rejects them with a clearer message, so warn only
	for _, zone := range config.AvailabilityZones {
		if config.Region != "" && !strings.HasPrefix(zone, config.Region) {
			result.AddWarning(fmt.Sprintf("availability zone %s does not belong to region %s", zone, config.Region))
		}
	}
}

// validateLogForwarding checks S3 log forwarding settings are complete
func (e *Engine) validateLogForwarding(config *types.ClusterConfig, result *ValidationResult) {
	if !config.S3LogForwardingEnabled {
		return
	}

	if config.S3BucketName == "" {
		result.AddError("s3_bucket_name", "S3 bucket name is required when log forwarding is enabled")
	}

	if len(config.S3LogApplications) == 0 {
		result.AddError("s3_log_applications", "at least one log application must be selected when log forwarding is enabled")
		return
	}

	known := e.registry.LogApplications()
	for _, app := range config.S3LogApplications {
		if !containsString(known, app) {
			result.AddError("s3_log_applications", fmt.Sprintf("unknown log application %s, must be one of %v", app, known))
		}
	}
}

// validateTags rejects reserved tag keys
func (e *Engine) validateTags(config *types.ClusterConfig, result *ValidationResult) {
	reserved := e.registry.ReservedTagKeys()
	for key := range config.Tags {
		if containsString(reserved, key) {
			result.AddError("tags", fmt.Sprintf("cannot override reserved tag key: %s", key))
		}
	}
}

func containsString(slice []string, str string) bool {
	for _, s := range slice {
		if s == str {
			return true
		}
	}
	return false
}
