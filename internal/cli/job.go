package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var jobCmd = &cobra.Command{
	Use:   "job",
	Short: "Inspect provisioning jobs",
}

var jobGetCmd = &cobra.Command{
	Use:   "get <job-id>",
	Short: "Show a provisioning job",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobGet,
}

var jobLogsCmd = &cobra.Command{
	Use:   "logs <job-id>",
	Short: "Show the log lines of a provisioning job",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobLogs,
}

func init() {
	jobCmd.AddCommand(jobGetCmd)
	jobCmd.AddCommand(jobLogsCmd)
}

func runJobGet(cmd *cobra.Command, args []string) error {
	api, err := apiClient()
	if err != nil {
		return err
	}

	job, err := api.GetJob(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render(job.ID))
	fmt.Printf("  cluster:  %s\n", job.ClusterID)
	fmt.Printf("  type:     %s\n", job.JobType)
	fmt.Printf("  status:   %s (%d%%)\n", renderStatus(string(job.Status)), job.Progress)
	if job.Message != "" {
		fmt.Printf("  message:  %s\n", job.Message)
	}
	if job.CompletedAt != nil {
		fmt.Printf("  finished: %s\n", job.CompletedAt.Format("2006-01-02 15:04:05 MST"))
	}

	return nil
}

func runJobLogs(cmd *cobra.Command, args []string) error {
	api, err := apiClient()
	if err != nil {
		return err
	}

	logs, err := api.JobLogs(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if len(logs) == 0 {
		fmt.Println(dimStyle.Render("No log output yet."))
		return nil
	}

	for _, line := range logs {
		fmt.Println(line)
	}

	return nil
}
