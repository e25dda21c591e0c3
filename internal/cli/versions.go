package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "Show supported OpenShift versions",
	RunE:  runVersions,
}

func runVersions(cmd *cobra.Command, args []string) error {
	api, err := apiClient()
	if err != nil {
		return err
	}

	catalog, err := api.Versions(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render("Supported OpenShift versions"))
	for _, v := range catalog.SupportedVersions {
		marker := "  "
		switch v {
		case catalog.RecommendedVersion:
			marker = successStyle.Render("* ")
		case catalog.DefaultVersion:
			marker = dimStyle.Render("d ")
		}
		fmt.Printf("%s%s\n", marker, v)
	}
	fmt.Println(dimStyle.Render("* recommended, d default"))

	return nil
}
