package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateFile string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Dry-run validate a cluster config",
	Long: `Validate sends a cluster configuration to the provisioning API's
validation endpoint without creating anything. Errors block creation;
warnings do not.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateFile, "file", "f", "", "cluster config YAML file (required)")
	validateCmd.MarkFlagRequired("file")
}

func runValidate(cmd *cobra.Command, args []string) error {
	api, err := apiClient()
	if err != nil {
		return err
	}

	config, err := loadConfigFile(validateFile)
	if err != nil {
		return err
	}

	outcome, err := api.Validate(cmd.Context(), config)
	if err != nil {
		return fmt.Errorf("validation request failed: %w", err)
	}

	printWarnings(outcome.Warnings)
	printErrors(outcome.Errors)

	if !outcome.Valid {
		return fmt.Errorf("configuration is invalid")
	}

	fmt.Println(successStyle.Render("Configuration is valid"))
	return nil
}
