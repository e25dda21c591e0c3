package cloud

// CredentialsStatus describes the AWS identity the console is running as
type CredentialsStatus struct {
	Configured bool   `json:"configured"`
	AccountID  string `json:"account_id,omitempty"`
	ARN        string `json:"arn,omitempty"`
	Region     string `json:"region,omitempty"`
	Error      string `json:"error,omitempty"`
}

// BucketStatus describes a log-forwarding bucket probe
type BucketStatus struct {
	Bucket     string `json:"bucket"`
	Exists     bool   `json:"exists"`
	Accessible bool   `json:"accessible"`
	Error      string `json:"error,omitempty"`
}

// EnvironmentOverview aggregates the environment checks shown on the
// console dashboard
type EnvironmentOverview struct {
	Credentials       CredentialsStatus `json:"credentials"`
	Region            string            `json:"region"`
	AvailabilityZones []string          `json:"availability_zones"`
}
