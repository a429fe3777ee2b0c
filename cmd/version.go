package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/stevengonsalvez/apppop-bootstrap/internal/version"
)

var (
	versionFormat string
	versionShort  bool
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Display version information for apppop: semantic version, git commit,
build time, Go version and target platform.

Examples:
  apppop version               # Show version
  apppop version --short       # Version only
  apppop version --format json # Output as JSON`,
	Args: cobra.NoArgs,
	RunE: runVersionCommand,
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().StringVarP(&versionFormat, "format", "f", FormatText, "Output format (text, json)")
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Show short version only")
	AddFlagValidation(versionCmd.Flags(), "format", OneOf(FormatText, FormatJSON))
}

func runVersionCommand(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if versionFormat == FormatJSON {
		return writeStructured(out, FormatJSON, version.GetBuildInfo())
	}
	if versionShort {
		fmt.Fprintln(out, version.GetShortVersion())
		return nil
	}
	printVersion(out, version.GetBuildInfo())
	return nil
}

func printVersion(out io.Writer, info *version.BuildInfo) {
	fmt.Fprintf(out, "apppop %s", info.Version)
	if info.GitCommit != "unknown" && len(info.GitCommit) >= 7 {
		fmt.Fprintf(out, " (%s)", info.GitCommit[:7])
	}
	if info.Dirty {
		fmt.Fprint(out, " (dirty)")
	}
	fmt.Fprintln(out)

	if !info.BuildTime.IsZero() {
		fmt.Fprintf(out, "Built: %s\n", info.BuildTime.Format("2006-01-02 15:04:05 UTC"))
	}
	fmt.Fprintf(out, "Go: %s\n", info.GoVersion)
	fmt.Fprintf(out, "Platform: %s\n", info.Platform)
}
