package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/rh-rosa-lab/rosactl/pkg/types"
)

// runWizard builds a cluster config interactively, starting from the
// defaults so every skipped prompt keeps a sensible value
func runWizard(ctx context.Context) (*types.ClusterConfig, error) {
	config := types.DefaultClusterConfig()

	minReplicas := strconv.Itoa(config.MinReplicas)
	maxReplicas := strconv.Itoa(config.MaxReplicas)

	identity := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Cluster Name").
				Description("Lowercase alphanumeric characters or hyphens").
				Placeholder("my-cluster").
				Value(&config.Name).
				Validate(validateWizardName),
			huh.NewSelect[string]().
				Title("OpenShift Version").
				Options(
					huh.NewOption("4.20 (recommended)", "4.20.0"),
					huh.NewOption("4.19", "4.19.0"),
					huh.NewOption("4.18", "4.18.0"),
				).
				Value(&config.Version),
			huh.NewSelect[string]().
				Title("AWS Region").
				Options(
					huh.NewOption("us-west-2 (Oregon)", "us-west-2"),
					huh.NewOption("us-east-1 (N. Virginia)", "us-east-1"),
					huh.NewOption("eu-west-1 (Ireland)", "eu-west-1"),
				).
				Value(&config.Region),
		).Title("Cluster Identity"),
	)
	if err := identity.RunWithContext(ctx); err != nil {
		return nil, err
	}

	compute := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Worker Instance Type").
				Options(
					huh.NewOption("m5.xlarge (4 vCPU, 16 GiB)", "m5.xlarge"),
					huh.NewOption("m5.2xlarge (8 vCPU, 32 GiB)", "m5.2xlarge"),
					huh.NewOption("r5.xlarge (4 vCPU, 32 GiB)", "r5.xlarge"),
				).
				Value(&config.InstanceType),
			huh.NewInput().
				Title("Minimum Replicas").
				Value(&minReplicas).
				Validate(validateWizardCount),
			huh.NewInput().
				Title("Maximum Replicas").
				Value(&maxReplicas).
				Validate(validateWizardCount),
		).Title("Compute"),
	)
	if err := compute.RunWithContext(ctx); err != nil {
		return nil, err
	}

	automation := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Automate network provisioning?").
				Description("Create the VPC and subnets as part of provisioning").
				Value(&config.NetworkAutomation),
			huh.NewConfirm().
				Title("Automate IAM role creation?").
				Value(&config.RoleAutomation),
		).Title("Automation"),
	)
	if err := automation.RunWithContext(ctx); err != nil {
		return nil, err
	}

	if config.NetworkAutomation {
		network := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("VPC CIDR Block").
					Value(&config.CIDRBlock),
			).Title("Network"),
		)
		if err := network.RunWithContext(ctx); err != nil {
			return nil, err
		}
	}

	config.MinReplicas, _ = strconv.Atoi(minReplicas)
	config.MaxReplicas, _ = strconv.Atoi(maxReplicas)

	return config, nil
}

func validateWizardName(name string) error {
	if name == "" {
		return fmt.Errorf("name is required")
	}
	for _, r := range name {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' {
			return fmt.Errorf("only lowercase alphanumeric characters and hyphens")
		}
	}
	if strings.HasPrefix(name, "-") || strings.HasSuffix(name, "-") {
		return fmt.Errorf("must start and end with an alphanumeric character")
	}
	return nil
}

func validateWizardCount(value string) error {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 1 {
		return fmt.Errorf("enter a number of 1 or more")
	}
	return nil
}
