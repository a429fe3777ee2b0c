package gitops

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/stevengonsalvez/apppop-bootstrap/internal/logging"
)

// GoGitClient implements Client with go-git, needing no git executable.
type GoGitClient struct {
	depth    int
	fallback Author
	logger   logging.Logger
}

func NewGoGitClient(opts Options) *GoGitClient {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &GoGitClient{
		depth:    opts.Depth,
		fallback: opts.Fallback,
		logger:   logger.WithComponent("gitops"),
	}
}

func (c *GoGitClient) Clone(ctx context.Context, url, dir string) (string, error) {
	var progress bytes.Buffer

	c.logger.Debug(ctx, "Cloning template", "url", url, "dir", dir, "depth", c.depth)

	_, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:      url,
		Depth:    c.depth,
		Progress: &progress,
		Tags:     git.NoTags,
	})
	output := strings.TrimSpace(progress.String())
	if err != nil {
		return output, fmt.Errorf("clone %s: %w", url, err)
	}
	return output, nil
}

func (c *GoGitClient) Init(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := git.PlainInit(dir, false); err != nil {
		return fmt.Errorf("init %s: %w", dir, err)
	}
	return nil
}

func (c *GoGitClient) CommitAll(ctx context.Context, dir, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	repo, err := git.PlainOpen(dir)
	if err != nil {
		return fmt.Errorf("open %s: %w", dir, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("worktree: %w", err)
	}

	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return fmt.Errorf("stage files: %w", err)
	}

	author := ResolveAuthor(c.fallback)
	hash, err := wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  author.Name,
			Email: author.Email,
			When:  time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	c.logger.Debug(ctx, "Created initial commit", "hash", hash.String(), "author", author.Name)
	return nil
}
