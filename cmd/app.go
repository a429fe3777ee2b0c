package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/stevengonsalvez/apppop-bootstrap/internal/config"
	"github.com/stevengonsalvez/apppop-bootstrap/internal/gitops"
	"github.com/stevengonsalvez/apppop-bootstrap/internal/logging"
	"github.com/stevengonsalvez/apppop-bootstrap/internal/prompt"
	"github.com/stevengonsalvez/apppop-bootstrap/internal/reporter"
	"github.com/stevengonsalvez/apppop-bootstrap/internal/runner"
	"github.com/stevengonsalvez/apppop-bootstrap/internal/services"
)

// Constructors for the external capabilities. Tests replace them.
var (
	newRunner = func(logger logging.Logger) runner.CommandRunner {
		return runner.NewExecRunner(logger)
	}
	newGitClient = func(cfg *config.Config, r runner.CommandRunner, logger logging.Logger) (gitops.Client, error) {
		return gitops.New(cfg, r, logger)
	}
	newPrompter = func(cmd *cobra.Command, plain bool) prompt.Prompter {
		return prompt.New(plain, cmd.InOrStdin(), cmd.OutOrStdout())
	}
	newFs = afero.NewOsFs
)

// loadSettings reads the effective settings and builds the logger.
func loadSettings() (*config.Config, logging.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	logger := logging.NewLogger(&logging.LoggerConfig{
		Level:     level,
		Format:    "text",
		Output:    os.Stderr,
		Component: "apppop",
	})
	return cfg, logger, nil
}

// newBootstrapService wires the pipeline for cmd.
func newBootstrapService(cmd *cobra.Command, cfg *config.Config, logger logging.Logger) (*services.BootstrapService, error) {
	r := newRunner(logger)
	git, err := newGitClient(cfg, r, logger)
	if err != nil {
		return nil, err
	}

	return services.NewBootstrapService(services.Dependencies{
		Config:   cfg,
		FS:       newFs(),
		Runner:   r,
		Git:      git,
		Prompter: newPrompter(cmd, cfg.Plain),
		Reporter: reporter.NewTerminal(cmd.OutOrStdout(), cfg.Plain),
		Logger:   logger,
	}), nil
}

// signalContext is canceled on SIGINT or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func runBootstrap(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadSettings()
	if err != nil {
		return err
	}

	svc, err := newBootstrapService(cmd, cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	_, err = svc.Run(ctx)
	return err
}
