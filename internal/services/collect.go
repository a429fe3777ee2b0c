package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/stevengonsalvez/apppop-bootstrap/internal/errors"
	"github.com/stevengonsalvez/apppop-bootstrap/internal/types"
)

// Feature toggle questions, asked in this order.
const (
	QuestionSupabase      = "Include Supabase setup? (Authentication, Database)"
	QuestionAnalytics     = "Include Analytics setup? (Google Analytics, Microsoft Clarity)"
	QuestionThemeSystem   = "Include Theme System setup?"
	QuestionErrorTracking = "Include Error Tracking setup? (Sentry)"
)

// CollectProject asks for the project name, target directory and feature
// toggles, then creates the directory.
func (s *BootstrapService) CollectProject(ctx context.Context) (types.ProjectConfig, error) {
	var project types.ProjectConfig

	s.reporter.Heading("1. Project Configuration")

	name, err := s.ask(ctx, "project name", "Enter project name:", s.cfg.Defaults.ProjectName)
	if err != nil {
		return project, errors.PhaseError(PhaseCollect, errors.ErrCodePrompt, "reading project name failed", err)
	}
	dir, err := s.ask(ctx, "project directory", "Enter project directory:", "./"+name)
	if err != nil {
		return project, errors.PhaseError(PhaseCollect, errors.ErrCodePrompt, "reading project directory failed", err)
	}

	opts, err := s.collectOptions(ctx)
	if err != nil {
		return project, errors.PhaseError(PhaseCollect, errors.ErrCodePrompt, "reading setup options failed", err)
	}

	project = types.ProjectConfig{
		ProjectName: name,
		ProjectDir:  dir,
		WorkDir:     s.resolve(dir),
		Options:     opts,
	}

	msgs := phaseMessages{
		start:   "Creating project structure...",
		success: "Project structure created",
		fail:    "Failed to create project structure",
	}
	err = s.runPhase(ctx, PhaseCollect, errors.ErrCodeCreateDir, msgs, func() error {
		if err := s.fs.MkdirAll(project.WorkDir, 0755); err != nil {
			return errors.NewIOError(errors.ErrCodeCreateDir, "could not create "+project.ProjectDir, err).
				WithContext("dir", project.WorkDir)
		}
		return nil
	})
	if err != nil {
		return project, err
	}

	s.logger.Debug(ctx, "Project collected",
		"name", project.ProjectName,
		"dir", project.WorkDir,
		"supabase", opts.IncludeSupabase,
		"analytics", opts.IncludeAnalytics,
		"theme", opts.IncludeThemeSystem,
		"error_tracking", opts.IncludeErrorTracking)
	return project, nil
}

func (s *BootstrapService) collectOptions(ctx context.Context) (types.SetupOptions, error) {
	var opts types.SetupOptions

	s.reporter.Heading("Setup Options")
	s.reporter.Info("Select which features you want to include in your project:")

	toggles := []struct {
		question string
		target   *bool
	}{
		{QuestionSupabase, &opts.IncludeSupabase},
		{QuestionAnalytics, &opts.IncludeAnalytics},
		{QuestionThemeSystem, &opts.IncludeThemeSystem},
		{QuestionErrorTracking, &opts.IncludeErrorTracking},
	}
	for _, t := range toggles {
		v, err := s.prompter.Confirm(ctx, t.question, true)
		if err != nil {
			return opts, err
		}
		*t.target = v
	}
	return opts, nil
}

// ask prompts once and falls back to def for a blank answer.
func (s *BootstrapService) ask(ctx context.Context, field, message, def string) (string, error) {
	v, err := s.prompter.Input(ctx, message, def)
	if err != nil {
		return "", errors.PromptError(field, err)
	}
	v = strings.TrimSpace(v)
	if v == "" {
		v = def
	}
	return v, nil
}

// resolve turns the entered directory into an absolute path against the
// invocation directory.
func (s *BootstrapService) resolve(dir string) string {
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	base := s.baseDir
	if base == "" {
		if wd, err := os.Getwd(); err == nil {
			base = wd
		}
	}
	return filepath.Join(base, dir)
}
