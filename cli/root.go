// Package cli implements the cria command-line entry point, grounded on
// the teacher's cli/root.go: a cobra root command with global verbose/
// quiet/no-color flags and a welcome screen shown when invoked bare.
package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
	noColor bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cria",
	Short: "cria - budget-aware LLM prompt composition",
	Long: `cria composes LLM prompts from a tree of typed nodes and renders them
into provider-native message layouts, enforcing a token budget by invoking
reduction strategies until the layout fits.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.NoColor = true
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return showWelcome()
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Has no effect; output is not suppressed")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable color output")

	rootCmd.AddCommand(
		renderCmd(),
		configCmd(),
	)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

func showWelcome() error {
	if !noColor {
		color.New(color.Bold).Printf("\ncria v0.1.0\n")
	} else {
		fmt.Printf("\ncria v0.1.0\n")
	}
	fmt.Println("Compose LLM prompts from a tree of typed nodes under a token budget")

	fmt.Println("\nAvailable Commands:")
	fmt.Println("  render   Render a prompt tree fixture through a configured provider")
	fmt.Println("  config   Show and validate cria configuration")

	fmt.Println("\nGetting Started:")
	fmt.Println("1. Render a fixture against the default provider:")
	fmt.Println("   cria render prompt.yaml")
	fmt.Println("\n2. Render and print the fit-loop session trace:")
	fmt.Println("   cria render prompt.yaml --trace")

	fmt.Println("\nUse --help with any command for more information")
	fmt.Println("Example: cria render --help")

	return nil
}
