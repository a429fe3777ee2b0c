package services

import (
	"context"

	"github.com/stevengonsalvez/apppop-bootstrap/internal/errors"
	"github.com/stevengonsalvez/apppop-bootstrap/internal/runner"
	"github.com/stevengonsalvez/apppop-bootstrap/internal/scaffolding"
	"github.com/stevengonsalvez/apppop-bootstrap/internal/types"
)

// InitRepository creates a fresh repository in the work directory and
// commits the template files.
func (s *BootstrapService) InitRepository(ctx context.Context, project types.ProjectConfig, _ *types.SupabaseConfig) error {
	msgs := phaseMessages{
		start:   "Initializing git...",
		success: "Git repository initialized",
		fail:    "Failed to initialize git",
	}
	return s.runPhase(ctx, PhaseGitInit, errors.ErrCodeGitInit, msgs, func() error {
		if err := s.git.Init(ctx, project.WorkDir); err != nil {
			return errors.NewSubprocessError(errors.ErrCodeGitInit, "git init failed", err)
		}
		if err := s.git.CommitAll(ctx, project.WorkDir, s.cfg.Git.CommitMessage); err != nil {
			return errors.NewSubprocessError(errors.ErrCodeGitInit, "initial commit failed", err)
		}
		return nil
	})
}

// CustomizeFiles replaces the template tokens with the project name.
func (s *BootstrapService) CustomizeFiles(ctx context.Context, project types.ProjectConfig, sb *types.SupabaseConfig) error {
	msgs := phaseMessages{
		start:   "Updating project files...",
		success: "Project files updated",
		fail:    "Failed to update project files",
	}
	tokens := scaffolding.Tokens{
		Product: s.cfg.Template.ProductToken,
		Display: s.cfg.Template.DisplayToken,
	}

	return s.runPhase(ctx, PhaseCustomize, errors.ErrCodeCustomize, msgs, func() error {
		req := scaffolding.CustomizeRequest{
			Dir:         project.WorkDir,
			ProjectName: project.ProjectName,
		}
		if types.SupabaseEnabled(project.Options, sb) {
			req.Supabase = sb
		}

		changed, err := scaffolding.NewCustomizer(s.fs, tokens, s.logger).Customize(ctx, req)
		if err != nil {
			return err
		}
		s.logger.Debug(ctx, "Customized files", "files", changed)
		return nil
	})
}

// SetupEnvironment writes .env and .env.example and makes sure .gitignore
// excludes them.
func (s *BootstrapService) SetupEnvironment(ctx context.Context, project types.ProjectConfig, sb *types.SupabaseConfig) error {
	msgs := phaseMessages{
		start:   "Setting up environment variables...",
		success: "Environment files created and .gitignore updated",
		fail:    "Failed to create environment files",
	}

	var warnings []string
	err := s.runPhase(ctx, PhaseEnvironment, errors.ErrCodeEnvironment, msgs, func() error {
		res, err := scaffolding.NewEnvGenerator(s.fs).Generate(scaffolding.EnvRequest{
			Dir:         project.WorkDir,
			ProjectName: project.ProjectName,
			Options:     project.Options,
			Supabase:    sb,
		})
		if err != nil {
			return errors.NewIOError(errors.ErrCodeEnvironment, "could not write environment files", err)
		}
		s.logger.Debug(ctx, "Environment files written",
			"keys", res.Keys,
			"gitignore_updated", res.GitignoreUpdated,
			"gitignore_created", res.GitignoreCreated)
		warnings = res.Warnings
		return nil
	})
	if err != nil {
		return err
	}
	for _, w := range warnings {
		s.logger.Warn(ctx, nil, "Environment value may not load as entered", "detail", w)
		s.reporter.Warn("Warning: " + w)
	}

	s.reporter.Heading("Environment Setup Complete! Important Reminders:")
	for _, line := range scaffolding.SecurityReminders() {
		s.reporter.Println(line)
	}
	if practices := scaffolding.SecurityPractices(project.Options); len(practices) > 0 {
		s.reporter.Heading("Recommended Security Practices:")
		for _, line := range practices {
			s.reporter.Println(line)
		}
	}
	return nil
}

// InstallDependencies runs npm install with its output captured.
func (s *BootstrapService) InstallDependencies(ctx context.Context, project types.ProjectConfig, _ *types.SupabaseConfig) error {
	msgs := phaseMessages{
		start:   "Installing dependencies...",
		success: "Dependencies installed",
		fail:    "Failed to install dependencies",
	}
	return s.runPhase(ctx, PhaseInstall, errors.ErrCodeInstall, msgs, func() error {
		return s.npm(ctx, project, errors.ErrCodeInstall,
			runner.Command{Name: "npm", Args: []string{"install"}})
	})
}

// SetupSupabaseCLI adds the Supabase CLI as a dev dependency and
// initializes its project folder.
func (s *BootstrapService) SetupSupabaseCLI(ctx context.Context, project types.ProjectConfig, _ *types.SupabaseConfig) error {
	msgs := phaseMessages{
		start:   "Setting up Supabase CLI...",
		success: "Supabase CLI setup complete",
		fail:    "Failed to setup Supabase CLI",
	}
	return s.runPhase(ctx, PhaseSupabaseCLI, errors.ErrCodeSupabaseCLI, msgs, func() error {
		return s.npm(ctx, project, errors.ErrCodeSupabaseCLI,
			runner.Command{Name: "npm", Args: []string{"install", "supabase", "--save-dev"}},
			runner.Command{Name: "npx", Args: []string{"supabase", "init"}},
		)
	})
}

func (s *BootstrapService) npm(ctx context.Context, project types.ProjectConfig, code string, cmds ...runner.Command) error {
	for _, cmd := range cmds {
		cmd.Dir = project.WorkDir
		res, err := s.runner.Run(ctx, cmd)
		if err != nil {
			return errors.SubprocessError(code, cmd.String(), res.Combined(), err).
				WithSuggestions(errors.InstallFailureSuggestions(project.ProjectDir)...)
		}
		s.logger.Debug(ctx, "Command finished", "command", cmd.String(), "duration", res.Duration)
	}
	return nil
}
