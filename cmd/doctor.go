package cmd

import (
	"fmt"
	"io"
	"runtime"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/stevengonsalvez/apppop-bootstrap/internal/services"
	"github.com/stevengonsalvez/apppop-bootstrap/internal/version"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the tools needed to create a project",
	Long: `Check that every tool the bootstrap needs is installed.

The doctor command probes each configured prerequisite (node, npm and git by
default) without creating anything, and checks the node version against
prerequisites.node_version.

Examples:
  apppop doctor                  # Table report
  apppop doctor --format json    # Output as JSON for tooling`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

var doctorFormat string

// DoctorReport is the complete diagnostic report.
type DoctorReport struct {
	Timestamp  time.Time             `json:"timestamp" yaml:"timestamp"`
	Version    string                `json:"version" yaml:"version"`
	Platform   string                `json:"platform" yaml:"platform"`
	Repository string                `json:"repository" yaml:"repository"`
	GitBackend string                `json:"git_backend" yaml:"git_backend"`
	Tools      []services.ToolStatus `json:"tools" yaml:"tools"`
	Healthy    bool                  `json:"healthy" yaml:"healthy"`
}

func init() {
	rootCmd.AddCommand(doctorCmd)

	doctorCmd.Flags().StringVarP(&doctorFormat, "format", "f", FormatTable, "Output format (table|json|yaml)")
	AddFlagValidation(doctorCmd.Flags(), "format", OneOf(FormatTable, FormatJSON, FormatYAML))
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadSettings()
	if err != nil {
		return err
	}

	svc := services.NewBootstrapService(services.Dependencies{
		Config: cfg,
		Runner: newRunner(logger),
		Logger: logger,
	})

	ctx, stop := signalContext(cmd)
	defer stop()

	report := &DoctorReport{
		Timestamp:  time.Now(),
		Version:    version.GetVersion(),
		Platform:   fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		Repository: cfg.Template.Repository,
		GitBackend: cfg.Git.Backend,
		Tools:      svc.Diagnose(ctx),
		Healthy:    true,
	}
	for _, t := range report.Tools {
		if !t.OK() {
			report.Healthy = false
		}
	}

	out := cmd.OutOrStdout()
	if doctorFormat == FormatTable {
		printDoctorTable(out, report)
	} else if err := writeStructured(out, doctorFormat, report); err != nil {
		return err
	}

	if !report.Healthy {
		return fmt.Errorf("one or more prerequisites are not satisfied")
	}
	return nil
}

func printDoctorTable(out io.Writer, report *DoctorReport) {
	fmt.Fprintln(out, "🔍 AppPop Environment Doctor")
	fmt.Fprintf(out, "Template: %s (git backend: %s)\n\n", report.Repository, report.GitBackend)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TOOL\tSTATUS\tVERSION\tDETAILS")
	for _, t := range report.Tools {
		status := "✔ ok"
		details := t.Path
		if !t.OK() {
			status = "✖ error"
			details = t.Problem
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.Name, status, t.Version, details)
	}
	w.Flush()

	if report.Healthy {
		fmt.Fprintln(out, "\nAll prerequisites satisfied.")
	}
}
