// Package runner executes the external tools the bootstrap pipeline drives
// (node, npm, npx, git). Commands run synchronously with their output
// captured, never streamed, so failures can surface the full output.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/stevengonsalvez/apppop-bootstrap/internal/logging"
	"github.com/stevengonsalvez/apppop-bootstrap/internal/validation"
)

// DefaultAllowedCommands lists the executables the pipeline may invoke.
var DefaultAllowedCommands = map[string]bool{
	"node": true,
	"npm":  true,
	"npx":  true,
	"git":  true,
}

// Command describes a single external process invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
	Env  []string
}

// String renders the command line for messages.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Result holds the captured output of a finished command.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Combined returns stdout followed by stderr, trimmed.
func (r Result) Combined() string {
	var parts []string
	if s := strings.TrimSpace(r.Stdout); s != "" {
		parts = append(parts, s)
	}
	if s := strings.TrimSpace(r.Stderr); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, "\n")
}

// CommandRunner is the capability every phase uses to reach external tools.
type CommandRunner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
	LookPath(name string) (string, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	allowed map[string]bool
	logger  logging.Logger
}

// NewExecRunner creates a runner restricted to DefaultAllowedCommands.
func NewExecRunner(logger logging.Logger) *ExecRunner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &ExecRunner{
		allowed: DefaultAllowedCommands,
		logger:  logger.WithComponent("runner"),
	}
}

// Run executes cmd and waits for it. A non-zero exit status is returned as
// an error alongside the captured Result.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	if err := r.validate(cmd); err != nil {
		return Result{ExitCode: -1}, fmt.Errorf("command validation failed: %w", err)
	}

	var stdout, stderr bytes.Buffer
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Stdout = &stdout
	c.Stderr = &stderr
	if len(cmd.Env) > 0 {
		c.Env = append(c.Environ(), cmd.Env...)
	}

	r.logger.Debug(ctx, "Running command", "command", cmd.String(), "dir", cmd.Dir)

	start := time.Now()
	err := c.Run()
	result := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}
	if c.ProcessState != nil {
		result.ExitCode = c.ProcessState.ExitCode()
	}

	if err != nil {
		if ctx.Err() != nil {
			return result, fmt.Errorf("%s interrupted: %w", cmd.Name, ctx.Err())
		}
		return result, fmt.Errorf("%s failed: %w", cmd.String(), err)
	}

	r.logger.Debug(ctx, "Command finished", "command", cmd.String(), "duration", result.Duration)
	return result, nil
}

// LookPath resolves name on PATH.
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

func (r *ExecRunner) validate(cmd Command) error {
	if err := validation.ValidateCommand(cmd.Name, r.allowed); err != nil {
		return err
	}
	for _, arg := range cmd.Args {
		if err := validation.ValidateArgument(arg); err != nil {
			return fmt.Errorf("invalid argument '%s': %w", arg, err)
		}
	}
	return nil
}
