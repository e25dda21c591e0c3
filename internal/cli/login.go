package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the active environment",
	Long: `Log in prompts for operator credentials, exchanges them for an access
token, and prints the token. Store it under the environment's token key
in the config file to authenticate subsequent commands.`,
	RunE: runLogin,
}

func runLogin(cmd *cobra.Command, args []string) error {
	api, err := apiClient()
	if err != nil {
		return err
	}

	var username, password string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&username),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&password),
		).Title("Operator Login"),
	)
	if err := form.RunWithContext(cmd.Context()); err != nil {
		return err
	}

	resp, err := api.Login(cmd.Context(), username, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Println(successStyle.Render("Login succeeded"))
	fmt.Printf("access token (expires in %ds):\n%s\n", resp.ExpiresIn, resp.AccessToken)
	fmt.Println(dimStyle.Render("Add it as environments." + activeEnvironment() + ".token in your config file."))

	return nil
}
