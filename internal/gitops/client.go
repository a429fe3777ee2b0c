// Package gitops clones the template repository and records the initial
// commit of a bootstrapped project. Two backends are provided: an in-process
// go-git backend and one that shells out to the git executable.
package gitops

import (
	"context"
	"fmt"

	gitconfig "github.com/go-git/go-git/v5/config"

	"github.com/stevengonsalvez/apppop-bootstrap/internal/config"
	"github.com/stevengonsalvez/apppop-bootstrap/internal/logging"
	"github.com/stevengonsalvez/apppop-bootstrap/internal/runner"
)

// DefaultDepth is the clone depth used for templates.
const DefaultDepth = 1

// Client is the git capability used by the pipeline.
type Client interface {
	// Clone fetches url into dir and returns the captured transport output.
	Clone(ctx context.Context, url, dir string) (string, error)
	// Init creates a fresh repository in dir.
	Init(ctx context.Context, dir string) error
	// CommitAll stages every file in dir and commits it.
	CommitAll(ctx context.Context, dir, message string) error
}

// Author identifies who records the initial commit.
type Author struct {
	Name  string
	Email string
}

// Options configures a client.
type Options struct {
	Depth    int
	Fallback Author
	Logger   logging.Logger
}

// New returns the client for the configured backend.
func New(cfg *config.Config, r runner.CommandRunner, logger logging.Logger) (Client, error) {
	opts := Options{
		Depth: DefaultDepth,
		Fallback: Author{
			Name:  cfg.Git.AuthorName,
			Email: cfg.Git.AuthorEmail,
		},
		Logger: logger,
	}

	switch cfg.Git.Backend {
	case config.GitBackendGoGit, "":
		return NewGoGitClient(opts), nil
	case config.GitBackendCLI:
		return NewCLIClient(r, opts), nil
	default:
		return nil, fmt.Errorf("unknown git backend %q", cfg.Git.Backend)
	}
}

// ResolveAuthor returns the user identity from the global git configuration,
// falling back to the given author for any missing field.
func ResolveAuthor(fallback Author) Author {
	author := fallback

	cfg, err := gitconfig.LoadConfig(gitconfig.GlobalScope)
	if err != nil || cfg == nil {
		return author
	}
	if cfg.User.Name != "" {
		author.Name = cfg.User.Name
	}
	if cfg.User.Email != "" {
		author.Email = cfg.User.Email
	}
	return author
}
