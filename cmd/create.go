package cmd

import (
	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:     "create",
	Aliases: []string{"new"},
	Short:   "Create a new project from the AppPop template",
	Long: `Create a new project from the AppPop template.

This is the same interactive flow that runs when apppop is called without a
subcommand.

Examples:
  apppop create
  apppop new --plain                      # line prompts, no colors
  apppop create --template-repo git@github.com:me/fork.git`,
	Args: cobra.NoArgs,
	RunE: runBootstrap,
}

func init() {
	rootCmd.AddCommand(createCmd)
}
