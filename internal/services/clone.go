package services

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/stevengonsalvez/apppop-bootstrap/internal/errors"
	"github.com/stevengonsalvez/apppop-bootstrap/internal/scaffolding"
	"github.com/stevengonsalvez/apppop-bootstrap/internal/types"
)

// CloneTemplate shallow clones the template into the work directory,
// replaces the bundled documents and strips the template's VCS and tooling
// folders.
func (s *BootstrapService) CloneTemplate(ctx context.Context, project types.ProjectConfig, _ *types.SupabaseConfig) error {
	msgs := phaseMessages{
		start:   "Cloning template repository...",
		success: "Template repository cloned and cleaned",
		fail:    "Failed to clone template",
	}
	repo := s.cfg.Template.Repository

	return s.runPhase(ctx, PhaseClone, errors.ErrCodeClone, msgs, func() error {
		gitDir := filepath.Join(project.WorkDir, ".git")
		exists, err := s.exists(gitDir)
		if err != nil {
			return errors.FileOperationError("STAT", gitDir, "could not inspect target directory", err)
		}
		if exists {
			return errors.NewValidationError(errors.ErrCodeRepositoryExists,
				fmt.Sprintf("%s already contains a git repository", project.ProjectDir)).
				WithSuggestions("Choose a new or empty project directory")
		}

		output, err := s.git.Clone(ctx, repo, project.WorkDir)
		if err != nil {
			if rmErr := s.fs.RemoveAll(gitDir); rmErr != nil {
				s.logger.Warn(ctx, rmErr, "Could not remove partial repository", "path", gitDir)
			}
			return errors.SubprocessError(errors.ErrCodeClone, "git clone --depth 1 "+repo, output, err).
				WithSuggestions(errors.CloneFailureSuggestions(repo, project.ProjectDir)...)
		}

		data := scaffolding.NewDocData(project.ProjectName, project.Options, s.now())
		written, err := scaffolding.NewDocRenderer(s.fs).Render(project.WorkDir, data)
		if err != nil {
			return errors.NewIOError(errors.ErrCodeClone, "could not write project documents", err)
		}
		s.logger.Debug(ctx, "Rendered project documents", "files", written)

		for _, rel := range s.cfg.Template.StripPaths {
			path := filepath.Join(project.WorkDir, filepath.FromSlash(rel))
			if err := s.fs.RemoveAll(path); err != nil {
				return errors.FileOperationError("REMOVE", path, "could not strip template path", err)
			}
		}
		return nil
	})
}
