package testutils

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"

	"github.com/stevengonsalvez/apppop-bootstrap/internal/runner"
)

// FakeRunner records commands instead of executing them.
type FakeRunner struct {
	mu sync.Mutex

	// Missing tools fail LookPath.
	Missing map[string]bool
	// Results and Errors are keyed by the full command line.
	Results map[string]runner.Result
	Errors  map[string]error

	Commands []runner.Command
	Looked   []string
}

func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		Missing: map[string]bool{},
		Results: map[string]runner.Result{},
		Errors:  map[string]error{},
	}
}

func (f *FakeRunner) Run(ctx context.Context, cmd runner.Command) (runner.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return runner.Result{ExitCode: -1}, err
	}

	f.Commands = append(f.Commands, cmd)
	key := cmd.String()
	res := f.Results[key]
	if err := f.Errors[key]; err != nil {
		if res.ExitCode == 0 {
			res.ExitCode = 1
		}
		return res, err
	}
	return res, nil
}

func (f *FakeRunner) LookPath(name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Looked = append(f.Looked, name)
	if f.Missing[name] {
		return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
	}
	return "/usr/bin/" + name, nil
}

// CommandLines returns every executed command line in order.
func (f *FakeRunner) CommandLines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	lines := make([]string, 0, len(f.Commands))
	for _, c := range f.Commands {
		lines = append(lines, c.String())
	}
	return lines
}

// FakeGit implements the git client capability. Clone writes Files into the
// target directory on FS.
type FakeGit struct {
	mu sync.Mutex

	FS          afero.Fs
	Files       map[string]string
	CloneOutput string
	CloneErr    error
	InitErr     error
	CommitErr   error

	Calls []string
}

func NewFakeGit(fs afero.Fs, files map[string]string) *FakeGit {
	return &FakeGit{FS: fs, Files: files}
}

func (g *FakeGit) Clone(ctx context.Context, url, dir string) (string, error) {
	g.record("clone " + url + " " + dir)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if g.CloneErr != nil {
		// A failed clone typically leaves a partial repository behind.
		_ = g.FS.MkdirAll(filepath.Join(dir, ".git"), 0755)
		return g.CloneOutput, g.CloneErr
	}

	for rel, content := range g.Files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := g.FS.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return "", err
		}
		if err := afero.WriteFile(g.FS, path, []byte(content), 0644); err != nil {
			return "", err
		}
	}
	if err := g.FS.MkdirAll(filepath.Join(dir, ".git"), 0755); err != nil {
		return "", err
	}
	return g.CloneOutput, nil
}

func (g *FakeGit) Init(ctx context.Context, dir string) error {
	g.record("init " + dir)
	if g.InitErr != nil {
		return g.InitErr
	}
	return g.FS.MkdirAll(filepath.Join(dir, ".git"), 0755)
}

func (g *FakeGit) CommitAll(ctx context.Context, dir, message string) error {
	g.record("commit " + message)
	return g.CommitErr
}

func (g *FakeGit) record(call string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Calls = append(g.Calls, call)
}

// CallNames returns the verb of every recorded call.
func (g *FakeGit) CallNames() []string {
	g.mu.Lock()
	defer g.mu.Unlock()

	names := make([]string, 0, len(g.Calls))
	for _, c := range g.Calls {
		var verb string
		fmt.Sscan(c, &verb)
		names = append(names, verb)
	}
	return names
}

// ScriptedPrompter answers prompts from fixed queues. An empty string takes
// the default. Exhausted queues return io.EOF.
type ScriptedPrompter struct {
	mu sync.Mutex

	Inputs   []string
	Confirms []string

	Asked []string
}

func (p *ScriptedPrompter) Input(ctx context.Context, message, defaultValue string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.Asked = append(p.Asked, message)
	if len(p.Inputs) == 0 {
		return "", io.EOF
	}
	answer := p.Inputs[0]
	p.Inputs = p.Inputs[1:]
	if answer == "" {
		return defaultValue, nil
	}
	return answer, nil
}

func (p *ScriptedPrompter) Confirm(ctx context.Context, message string, defaultValue bool) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.Asked = append(p.Asked, message)
	if len(p.Confirms) == 0 {
		return false, io.EOF
	}
	answer := p.Confirms[0]
	p.Confirms = p.Confirms[1:]
	switch answer {
	case "":
		return defaultValue, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// FailingFs wraps an afero.Fs and fails MkdirAll below a prefix.
type FailingFs struct {
	afero.Fs
	MkdirPrefix string
	Err         error
}

func (f *FailingFs) MkdirAll(path string, perm os.FileMode) error {
	if f.MkdirPrefix != "" && len(path) >= len(f.MkdirPrefix) && path[:len(f.MkdirPrefix)] == f.MkdirPrefix {
		return f.Err
	}
	return f.Fs.MkdirAll(path, perm)
}
