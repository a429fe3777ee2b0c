// Package cmd provides the command-line interface of apppop with layered
// configuration support.
//
// Configuration System:
//
//	Settings are resolved from several sources with clear precedence:
//	1. Command-line flags (--config, --template-repo, ...) - highest priority
//	2. APPPOP_CONFIG_FILE environment variable - custom config file path
//	3. Individual environment variables (APPPOP_TEMPLATE_REPOSITORY, ...)
//	4. Configuration files (.apppop.yml in the current directory or $HOME)
//	5. Built-in defaults - lowest priority
//
// Environment Variables:
//
//	APPPOP_CONFIG_FILE: Path to custom configuration file
//	APPPOP_TEMPLATE_REPOSITORY: Override the template repository
//	APPPOP_GIT_BACKEND: go-git or cli
//	APPPOP_PREREQUISITES_NODE_VERSION: semver constraint for node, empty disables it
//	And others following the APPPOP_<SECTION>_<OPTION> pattern
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stevengonsalvez/apppop-bootstrap/internal/config"
	"github.com/stevengonsalvez/apppop-bootstrap/internal/errors"
)

var cfgFile string

// rootCmd runs the bootstrap pipeline when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "apppop",
	Short: "Create a new project from the AppPop template",
	Long: `apppop creates a ready-to-run web application from the AppPop template.

It checks that node, npm and git are installed, asks for the project name,
target directory and optional features, then:
  • clones the template and starts a fresh git history
  • replaces the template name with your project name
  • writes .env and .env.example for the selected features
  • installs dependencies (and the Supabase CLI when Supabase is enabled)

Quick Start:
  apppop                  Create a project interactively
  apppop doctor           Check the required tools
  apppop config show      Print the effective settings

Documentation: https://github.com/stevengonsalvez/apppop`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runBootstrap,
}

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	err := rootCmd.ExecuteContext(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("\n"+errors.FormatErrorWithSuggestions(err)))
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is .apppop.yml, can also use APPPOP_CONFIG_FILE env var)")
	flags.StringP("log-level", "l", "warn", "log level (debug, info, warn, error)")
	flags.Bool("plain", false, "use plain line prompts and uncolored output")
	flags.String("template-repo", "", "git URL of the template repository")

	AddFlagValidation(rootCmd.PersistentFlags(), "log-level", validateLogLevel)
}

// initConfig initializes the configuration system.
//
// Configuration file lookup (first match wins):
//  1. --config flag
//  2. APPPOP_CONFIG_FILE environment variable
//  3. .apppop.yml in the current directory, then in $HOME
//
// A missing default file is not an error.
func initConfig() {
	v := viper.GetViper()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("APPPOP_CONFIG_FILE"); envConfigFile != "" {
		v.SetConfigFile(envConfigFile)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigType("yaml")
		v.SetConfigName(".apppop")
	}

	config.SetDefaults(v)
	config.ConfigureEnv(v)
	bindFlags(v)

	if err := v.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", v.ConfigFileUsed())
	}
}

// bindFlags maps the global flags onto their settings keys.
func bindFlags(v *viper.Viper) {
	bindings := map[string]string{
		"log-level":     "log_level",
		"plain":         "plain",
		"template-repo": "template.repository",
	}
	for flag, key := range bindings {
		if f := rootCmd.PersistentFlags().Lookup(flag); f != nil {
			_ = v.BindPFlag(key, f)
		}
	}
}
