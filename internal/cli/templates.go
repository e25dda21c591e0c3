package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Show available cluster templates",
	RunE:  runTemplates,
}

func runTemplates(cmd *cobra.Command, args []string) error {
	api, err := apiClient()
	if err != nil {
		return err
	}

	templates, err := api.Templates(cmd.Context())
	if err != nil {
		return err
	}

	for _, tmpl := range templates {
		fmt.Println(headerStyle.Render(tmpl.Name))
		fmt.Printf("  id:       %s\n", tmpl.ID)
		fmt.Printf("  %s\n", tmpl.Description)
		if len(tmpl.Features) > 0 {
			fmt.Println(dimStyle.Render("  features: " + strings.Join(tmpl.Features, ", ")))
		}
	}

	return nil
}
