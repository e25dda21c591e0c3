// Package cli implements the rosactl console commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rh-rosa-lab/rosactl/internal/client"
	"github.com/rh-rosa-lab/rosactl/internal/viewstate"
)

var (
	cfgFile     string
	environment string

	store = viewstate.NewStore(viewstate.State{})
)

var rootCmd = &cobra.Command{
	Use:   "rosactl",
	Short: "Console for provisioning managed ROSA clusters",
	Long: `rosactl is the operator console for the ROSA provisioning API.

It validates cluster configurations before submission, creates clusters
through the provisioning backend, and tracks the jobs that carry them out.

Environments are named API endpoints configured in ~/.rosactl.yaml:

  environments:
    dev:
      api_url: http://localhost:8080
    prod:
      api_url: https://provisioning.example.com
      token: <access token>
  default_environment: dev`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(clusterCmd)
	rootCmd.AddCommand(jobCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionsCmd)
	rootCmd.AddCommand(templatesCmd)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.rosactl.yaml)")
	rootCmd.PersistentFlags().StringVarP(&environment, "environment", "e", "", "named environment from the config file")

	viper.BindPFlag("environment", rootCmd.PersistentFlags().Lookup("environment"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".rosactl")
	}

	viper.SetEnvPrefix("ROSACTL")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, dimStyle.Render("Using config file: "+viper.ConfigFileUsed()))
	}
}

// activeEnvironment resolves the environment name from the flag, the
// ROSACTL_ENVIRONMENT variable, or the config file default
func activeEnvironment() string {
	if environment != "" {
		return environment
	}
	if env := viper.GetString("environment"); env != "" {
		return env
	}
	return viper.GetString("default_environment")
}

// apiClient builds a client for the active environment
func apiClient() (*client.Client, error) {
	env := activeEnvironment()
	if env == "" {
		return nil, fmt.Errorf("no environment selected: pass --environment or set default_environment in the config file")
	}

	base := viper.GetString("environments." + env + ".api_url")
	if base == "" {
		return nil, fmt.Errorf("environment %q has no api_url configured", env)
	}
	token := viper.GetString("environments." + env + ".token")

	store.Dispatch(viewstate.SelectEnvironment{Name: env})

	return client.New(base, token), nil
}
