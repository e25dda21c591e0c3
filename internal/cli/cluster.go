package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rh-rosa-lab/rosactl/internal/viewstate"
	"github.com/rh-rosa-lab/rosactl/internal/workflow"
	"github.com/rh-rosa-lab/rosactl/pkg/types"
)

var (
	createFile        string
	createInteractive bool
)

var clusterCmd = &cobra.Command{
	Use:   "cluster",
	Short: "Manage ROSA clusters",
}

var clusterCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Validate and create a cluster",
	Long: `Create submits a cluster configuration to the provisioning API. The
configuration is validated first; creation only proceeds when validation
passes. Validation warnings are printed on every outcome.

The configuration comes from a YAML file (--file) or the interactive
wizard (--interactive).`,
	RunE: runClusterCreate,
}

var clusterGetCmd = &cobra.Command{
	Use:   "get <cluster-id>",
	Short: "Show a cluster and its latest job",
	Args:  cobra.ExactArgs(1),
	RunE:  runClusterGet,
}

var clusterListCmd = &cobra.Command{
	Use:   "list",
	Short: "List clusters",
	RunE:  runClusterList,
}

var clusterDeleteCmd = &cobra.Command{
	Use:   "delete <cluster-id>",
	Short: "Request deletion of a cluster",
	Args:  cobra.ExactArgs(1),
	RunE:  runClusterDelete,
}

func init() {
	clusterCreateCmd.Flags().StringVarP(&createFile, "file", "f", "", "cluster config YAML file")
	clusterCreateCmd.Flags().BoolVarP(&createInteractive, "interactive", "i", false, "build the config interactively")

	clusterCmd.AddCommand(clusterCreateCmd)
	clusterCmd.AddCommand(clusterGetCmd)
	clusterCmd.AddCommand(clusterListCmd)
	clusterCmd.AddCommand(clusterDeleteCmd)
}

// loadConfigFile reads a cluster config YAML on top of the defaults, so
// omitted fields keep their default values
func loadConfigFile(path string) (*types.ClusterConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	config := types.DefaultClusterConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return config, nil
}

// loadConfig resolves the cluster config from the file flag or the wizard
func loadConfig(cmd *cobra.Command) (*types.ClusterConfig, error) {
	if createFile != "" {
		return loadConfigFile(createFile)
	}
	if createInteractive {
		return runWizard(cmd.Context())
	}
	return nil, fmt.Errorf("pass --file or --interactive")
}

var phaseLabels = map[workflow.Phase]string{
	workflow.PhaseValidating: "Validating configuration...",
	workflow.PhaseCreating:   "Creating cluster...",
}

func runClusterCreate(cmd *cobra.Command, args []string) error {
	api, err := apiClient()
	if err != nil {
		return err
	}

	config, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	wf := workflow.New(api, workflow.WithPhaseHook(func(p workflow.Phase) {
		store.Dispatch(viewstate.PhaseChanged{Phase: p})
		if label, ok := phaseLabels[p]; ok {
			fmt.Println(dimStyle.Render(label))
		}
	}))

	result, err := wf.Submit(cmd.Context(), config)
	if err != nil {
		return err
	}
	store.Dispatch(viewstate.SubmissionFinished{Result: result})

	printWarnings(result.Warnings)

	if !result.Succeeded() {
		printErrors(result.Errors)
		switch result.Failure {
		case workflow.FailureValidationRejected:
			return fmt.Errorf("configuration rejected by validation")
		case workflow.FailureTransport:
			return fmt.Errorf("provisioning API unreachable")
		default:
			return fmt.Errorf("cluster creation failed")
		}
	}

	fmt.Println(successStyle.Render("Cluster creation started"))
	fmt.Printf("  cluster: %s\n  job:     %s\n", result.ClusterID, result.JobID)
	fmt.Println(dimStyle.Render("Track progress with: rosactl cluster get " + result.ClusterID))

	return nil
}

func runClusterGet(cmd *cobra.Command, args []string) error {
	api, err := apiClient()
	if err != nil {
		return err
	}

	detail, err := api.GetCluster(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	c := detail.Cluster
	fmt.Println(headerStyle.Render(c.Name))
	fmt.Printf("  id:       %s\n", c.ID)
	fmt.Printf("  status:   %s\n", renderStatus(string(c.Status)))
	fmt.Printf("  version:  %s\n", c.Version)
	fmt.Printf("  region:   %s\n", c.Region)
	fmt.Printf("  created:  %s\n", c.CreatedAt.Format("2006-01-02 15:04:05 MST"))

	if detail.Job != nil {
		j := detail.Job
		fmt.Println(headerStyle.Render("Latest job"))
		fmt.Printf("  id:       %s\n", j.ID)
		fmt.Printf("  type:     %s\n", j.JobType)
		fmt.Printf("  status:   %s (%d%%)\n", j.Status, j.Progress)
		if j.Message != "" {
			fmt.Printf("  message:  %s\n", j.Message)
		}
	}

	return nil
}

func runClusterList(cmd *cobra.Command, args []string) error {
	api, err := apiClient()
	if err != nil {
		return err
	}

	clusters, err := api.ListClusters(cmd.Context())
	if err != nil {
		return err
	}

	if len(clusters) == 0 {
		fmt.Println(dimStyle.Render("No clusters."))
		return nil
	}

	fmt.Printf("%-30s %-12s %-10s %-15s\n", "ID", "NAME", "STATUS", "REGION")
	for _, c := range clusters {
		fmt.Printf("%-30s %-12s %-10s %-15s\n", c.ID, c.Name, renderStatus(string(c.Status)), c.Region)
	}

	return nil
}

func runClusterDelete(cmd *cobra.Command, args []string) error {
	api, err := apiClient()
	if err != nil {
		return err
	}

	if err := api.DeleteCluster(cmd.Context(), args[0]); err != nil {
		return err
	}

	fmt.Println(successStyle.Render("Cluster deletion queued"))
	return nil
}

func renderStatus(status string) string {
	switch strings.ToUpper(status) {
	case "READY", "COMPLETED":
		return successStyle.Render(status)
	case "FAILED":
		return errorStyle.Render(status)
	case "PENDING", "CREATING", "DELETING":
		return warningStyle.Render(status)
	default:
		return status
	}
}
