package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/adimarco/cria/internal/config"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and validate cria configuration",
		Long: `View the resolved cria configuration (YAML file merged with
CRIA_-prefixed environment variables) and check it for errors.

  - View the resolved configuration:
    cria config show

  - Validate configuration without printing it:
    cria config validate`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(configShowCmd(), configValidateCmd())
	return cmd
}

func configShowCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.LoadSettings(configFile)
			if err != nil {
				return err
			}
			return showSettings(cmd, settings)
		},
	}
	cmd.Flags().StringVarP(&configFile, "file", "f", "", "Configuration file to load (default cria.config.yaml)")
	return cmd
}

func configValidateCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration without printing it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.LoadSettings(configFile); err != nil {
				return err
			}
			color.Green("configuration is valid")
			return nil
		},
	}
	cmd.Flags().StringVarP(&configFile, "file", "f", "", "Configuration file to load (default cria.config.yaml)")
	return cmd
}

func showSettings(cmd *cobra.Command, settings *config.Settings) error {
	color.Blue("\ncria configuration")
	fmt.Printf("\ndefault_budget: %d\n", settings.DefaultBudget)

	color.Green("logger:")
	fmt.Printf("  type: %s\n", settings.Logger.Type)
	fmt.Printf("  level: %s\n", settings.Logger.Level)
	fmt.Printf("  path: %s\n", settings.Logger.Path)

	color.Green("providers:")
	fmt.Printf("  default: %s\n", settings.Providers.Default)
	for name, p := range settings.Providers.Configs {
		fmt.Printf("  %s:\n", name)
		fmt.Printf("    protocol: %s\n", p.Protocol)
		if p.Model != "" {
			fmt.Printf("    model: %s\n", p.Model)
		}
		if verbose && p.APIKeyEnv != "" {
			fmt.Printf("    api_key_env: %s\n", p.APIKeyEnv)
		}
	}

	return nil
}
