package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/stevengonsalvez/apppop-bootstrap/internal/errors"
	"github.com/stevengonsalvez/apppop-bootstrap/internal/logging"
	"github.com/stevengonsalvez/apppop-bootstrap/internal/validation"
)

// Validate checks the settings for correctness and returns every problem
// found, not just the first one.
func Validate(cfg *Config) error {
	var vec errors.ValidationErrorCollection

	if err := validation.ValidateRepositoryURL(cfg.Template.Repository); err != nil {
		vec.AddField("template.repository", cfg.Template.Repository, err.Error(),
			"Use an https, ssh or git@host:org/repo URL")
	}

	validateToken(&vec, "template.product_token", cfg.Template.ProductToken)
	validateToken(&vec, "template.display_token", cfg.Template.DisplayToken)

	for _, p := range cfg.Template.StripPaths {
		if err := validateRelativePath(p); err != nil {
			vec.AddField("template.strip_paths", p, err.Error())
		}
	}

	switch cfg.Git.Backend {
	case GitBackendGoGit, GitBackendCLI:
	default:
		vec.AddField("git.backend", cfg.Git.Backend, "unknown git backend",
			fmt.Sprintf("Use %q or %q", GitBackendGoGit, GitBackendCLI))
	}

	if strings.TrimSpace(cfg.Git.CommitMessage) == "" {
		vec.AddField("git.commit_message", cfg.Git.CommitMessage, "must not be empty")
	} else if err := validation.ValidateArgument(cfg.Git.CommitMessage); err != nil {
		vec.AddField("git.commit_message", cfg.Git.CommitMessage, err.Error(),
			"Use plain text without quotes, parentheses or shell characters")
	}

	for _, tool := range cfg.Prerequisites.Tools {
		if tool == "" || strings.ContainsAny(tool, `/\ ;&|$`) {
			vec.AddField("prerequisites.tools", tool, "must be a plain executable name")
		}
	}

	if cfg.Prerequisites.NodeVersion != "" {
		if _, err := semver.NewConstraint(cfg.Prerequisites.NodeVersion); err != nil {
			vec.AddField("prerequisites.node_version", cfg.Prerequisites.NodeVersion,
				fmt.Sprintf("invalid version constraint: %v", err),
				`Use a constraint such as ">= 18.0.0", or an empty string to skip the check`)
		}
	}

	if _, err := logging.ParseLevel(cfg.LogLevel); err != nil {
		vec.AddField("log_level", cfg.LogLevel, err.Error())
	}

	return vec.ErrorOrNil()
}

func validateToken(vec *errors.ValidationErrorCollection, field, token string) {
	if token == "" {
		vec.AddField(field, token, "must not be empty")
		return
	}
	if strings.ContainsAny(token, " \t\n\"'") {
		vec.AddField(field, token, "must not contain whitespace or quotes")
	}
}

// validateRelativePath rejects paths that would escape the project directory.
func validateRelativePath(path string) error {
	if path == "" {
		return fmt.Errorf("empty path")
	}

	cleanPath := filepath.Clean(path)

	if filepath.IsAbs(cleanPath) {
		return fmt.Errorf("path must be relative: %s", path)
	}

	if cleanPath == "." || cleanPath == ".." || strings.HasPrefix(cleanPath, ".."+string(filepath.Separator)) {
		return fmt.Errorf("path escapes the project directory: %s", path)
	}

	return nil
}
