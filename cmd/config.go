package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect apppop settings",
	Long: `Inspect the settings that control how projects are bootstrapped.

Examples:
  apppop config show                 # Print effective settings as YAML
  apppop config validate             # Check the settings for errors
  apppop config show --config ci.yml # Settings from a specific file`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigValidate,
}

var configShowFormat string

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)

	configShowCmd.Flags().StringVarP(&configShowFormat, "format", "f", FormatYAML, "Output format (yaml|json)")
	AddFlagValidation(configShowCmd.Flags(), "format", OneOf(FormatYAML, FormatJSON))
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadSettings()
	if err != nil {
		return err
	}
	return writeStructured(cmd.OutOrStdout(), configShowFormat, cfg)
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	if _, _, err := loadSettings(); err != nil {
		return err
	}

	source := viper.ConfigFileUsed()
	if source == "" {
		source = "built-in defaults"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✔ Configuration is valid (%s)\n", source)
	return nil
}
