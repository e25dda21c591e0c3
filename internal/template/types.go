package template

// Template represents a cluster template loaded from YAML. Templates are
// the catalog behind GET /api/templates and the single source of the
// version/region/instance allowlists used by validation and the console
// form.
type Template struct {
	Name              string              `yaml:"name" json:"id" validate:"required"`
	DisplayName       string              `yaml:"displayName" json:"name" validate:"required"`
	Description       string              `yaml:"description" json:"description" validate:"required"`
	Enabled           bool                `yaml:"enabled" json:"-"`
	Features          []string            `yaml:"features" json:"features" validate:"required,min=1"`
	OpenshiftVersions VersionConfig       `yaml:"openshiftVersions" json:"openshift_versions" validate:"required"`
	Regions           RegionConfig        `yaml:"regions" json:"regions" validate:"required"`
	Compute           ComputeConfig       `yaml:"compute" json:"compute" validate:"required"`
	Network           NetworkConfig       `yaml:"network" json:"network"`
	LogForwarding     LogForwardingConfig `yaml:"logForwarding" json:"log_forwarding"`
	Tags              TagsConfig          `yaml:"tags" json:"tags"`
}

// Feature names templates may declare
const (
	FeatureNetworkAutomation = "network_automation"
	FeatureRoleAutomation    = "role_automation"
)

// VersionConfig defines OpenShift version constraints
type VersionConfig struct {
	Allowlist   []string `yaml:"allowlist" json:"allowed" validate:"required,min=1"`
	Default     string   `yaml:"default" json:"default" validate:"required"`
	Recommended string   `yaml:"recommended" json:"recommended" validate:"required"`
}

// RegionConfig defines region constraints
type RegionConfig struct {
	Allowlist []string `yaml:"allowlist" json:"allowed" validate:"required,min=1"`
	Default   string   `yaml:"default" json:"default" validate:"required"`
}

// ComputeConfig defines worker pool constraints
type ComputeConfig struct {
	InstanceTypes       []string `yaml:"instanceTypes" json:"instance_types" validate:"required,min=1"`
	DefaultInstanceType string   `yaml:"defaultInstanceType" json:"default_instance_type" validate:"required"`
	MinReplicas         int      `yaml:"minReplicas" json:"min_replicas" validate:"min=1"`
	MaxReplicas         int      `yaml:"maxReplicas" json:"max_replicas" validate:"gtefield=MinReplicas"`
}

// NetworkConfig defines networking defaults
type NetworkConfig struct {
	DefaultCIDR string `yaml:"defaultCidr" json:"default_cidr"`
}

// LogForwardingConfig defines which log applications may be forwarded to S3
type LogForwardingConfig struct {
	Applications []string `yaml:"applications" json:"applications"`
}

// TagsConfig defines tag policy for the template
type TagsConfig struct {
	Reserved      []string          `yaml:"reserved" json:"reserved"`
	Defaults      map[string]string `yaml:"defaults" json:"defaults"`
	AllowUserTags bool              `yaml:"allowUserTags" json:"allow_user_tags"`
}

// HasFeature reports whether the template enables a named feature
func (t *Template) HasFeature(name string) bool {
	for _, f := range t.Features {
		if f == name {
			return true
		}
	}
	return false
}
