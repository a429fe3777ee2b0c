package gitops

import (
	"context"
	"fmt"
	"strconv"

	"github.com/stevengonsalvez/apppop-bootstrap/internal/logging"
	"github.com/stevengonsalvez/apppop-bootstrap/internal/runner"
)

// CLIClient implements Client by running the git executable.
type CLIClient struct {
	runner   runner.CommandRunner
	depth    int
	fallback Author
	logger   logging.Logger
}

func NewCLIClient(r runner.CommandRunner, opts Options) *CLIClient {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &CLIClient{
		runner:   r,
		depth:    opts.Depth,
		fallback: opts.Fallback,
		logger:   logger.WithComponent("gitops"),
	}
}

// Clone clones into dir, which must exist and be empty.
func (c *CLIClient) Clone(ctx context.Context, url, dir string) (string, error) {
	args := []string{"clone"}
	if c.depth > 0 {
		args = append(args, "--depth", strconv.Itoa(c.depth))
	}
	args = append(args, url, ".")

	res, err := c.runner.Run(ctx, runner.Command{Name: "git", Args: args, Dir: dir})
	if err != nil {
		return res.Combined(), err
	}
	return res.Combined(), nil
}

func (c *CLIClient) Init(ctx context.Context, dir string) error {
	res, err := c.runner.Run(ctx, runner.Command{Name: "git", Args: []string{"init"}, Dir: dir})
	if err != nil {
		return fmt.Errorf("%w\n%s", err, res.Combined())
	}
	return nil
}

func (c *CLIClient) CommitAll(ctx context.Context, dir, message string) error {
	res, err := c.runner.Run(ctx, runner.Command{Name: "git", Args: []string{"add", "-A"}, Dir: dir})
	if err != nil {
		return fmt.Errorf("%w\n%s", err, res.Combined())
	}

	author := ResolveAuthor(c.fallback)
	env := []string{
		"GIT_AUTHOR_NAME=" + author.Name,
		"GIT_AUTHOR_EMAIL=" + author.Email,
		"GIT_COMMITTER_NAME=" + author.Name,
		"GIT_COMMITTER_EMAIL=" + author.Email,
	}

	res, err = c.runner.Run(ctx, runner.Command{
		Name: "git",
		Args: []string{"commit", "-m", message},
		Dir:  dir,
		Env:  env,
	})
	if err != nil {
		return fmt.Errorf("%w\n%s", err, res.Combined())
	}

	c.logger.Debug(ctx, "Created initial commit", "dir", dir, "author", author.Name)
	return nil
}
