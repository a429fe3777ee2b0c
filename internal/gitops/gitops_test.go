package gitops

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stevengonsalvez/apppop-bootstrap/internal/config"
	"github.com/stevengonsalvez/apppop-bootstrap/internal/runner"
	"github.com/stevengonsalvez/apppop-bootstrap/internal/testutils"
)

var testAuthor = Author{Name: "Test", Email: "test@example.com"}

func TestNewSelectsBackend(t *testing.T) {
	cfg := config.Default()

	c, err := New(cfg, testutils.NewFakeRunner(), nil)
	require.NoError(t, err)
	assert.IsType(t, &GoGitClient{}, c)

	cfg.Git.Backend = config.GitBackendCLI
	c, err = New(cfg, testutils.NewFakeRunner(), nil)
	require.NoError(t, err)
	assert.IsType(t, &CLIClient{}, c)

	cfg.Git.Backend = "svn"
	_, err = New(cfg, testutils.NewFakeRunner(), nil)
	assert.Error(t, err)
}

func TestGoGitCloneInitCommit(t *testing.T) {
	src := testutils.CreateTemplateRepo(t)
	dst := filepath.Join(t.TempDir(), "project")
	require.NoError(t, os.MkdirAll(dst, 0755))

	// Full clone over the local file transport.
	c := NewGoGitClient(Options{Fallback: testAuthor})
	ctx := context.Background()

	_, err := c.Clone(ctx, src, dst)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dst, "package.json"))
	assert.DirExists(t, filepath.Join(dst, ".git"))

	require.NoError(t, os.RemoveAll(filepath.Join(dst, ".git")))

	require.NoError(t, c.Init(ctx, dst))
	require.NoError(t, c.CommitAll(ctx, dst, "Initial commit from AppPop template"))

	repo, err := git.PlainOpen(dst)
	require.NoError(t, err)
	head, err := repo.Head()
	require.NoError(t, err)
	commit, err := repo.CommitObject(head.Hash())
	require.NoError(t, err)

	assert.Equal(t, "Initial commit from AppPop template", commit.Message)
	assert.NotEmpty(t, commit.Author.Name)

	files, err := commit.Files()
	require.NoError(t, err)
	var count int
	require.NoError(t, files.ForEach(func(*object.File) error {
		count++
		return nil
	}))
	assert.Equal(t, len(testutils.TemplateFiles), count)
}

func TestGoGitCloneMissingRepository(t *testing.T) {
	c := NewGoGitClient(Options{Depth: DefaultDepth})

	_, err := c.Clone(context.Background(), filepath.Join(t.TempDir(), "missing"), t.TempDir())
	assert.Error(t, err)
}

func TestGoGitInitTwiceFails(t *testing.T) {
	dir := t.TempDir()
	c := NewGoGitClient(Options{})

	require.NoError(t, c.Init(context.Background(), dir))
	assert.Error(t, c.Init(context.Background(), dir))
}

func TestGoGitCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewGoGitClient(Options{})
	assert.ErrorIs(t, c.Init(ctx, t.TempDir()), context.Canceled)
	assert.ErrorIs(t, c.CommitAll(ctx, t.TempDir(), "msg"), context.Canceled)
}

func TestCLIClientCommands(t *testing.T) {
	fr := testutils.NewFakeRunner()
	c := NewCLIClient(fr, Options{Depth: DefaultDepth, Fallback: testAuthor})
	ctx := context.Background()

	_, err := c.Clone(ctx, "https://github.com/stevengonsalvez/apppop.git", "/work/demo")
	require.NoError(t, err)
	require.NoError(t, c.Init(ctx, "/work/demo"))
	require.NoError(t, c.CommitAll(ctx, "/work/demo", "Initial commit from AppPop template"))

	assert.Equal(t, []string{
		"git clone --depth 1 https://github.com/stevengonsalvez/apppop.git .",
		"git init",
		"git add -A",
		"git commit -m Initial commit from AppPop template",
	}, fr.CommandLines())

	for _, cmd := range fr.Commands {
		assert.Equal(t, "/work/demo", cmd.Dir)
	}
	assert.Contains(t, fr.Commands[3].Env, "GIT_AUTHOR_NAME="+ResolveAuthor(testAuthor).Name)
}

func TestCLIClientCloneFailureReturnsOutput(t *testing.T) {
	fr := testutils.NewFakeRunner()
	fr.Errors["git clone https://example.com/missing.git ."] = errors.New("exit status 128")
	fr.Results["git clone https://example.com/missing.git ."] = runner.Result{
		Stderr: "fatal: repository 'https://example.com/missing.git/' not found\n",
	}

	c := NewCLIClient(fr, Options{})
	out, err := c.Clone(context.Background(), "https://example.com/missing.git", "/work/demo")
	require.Error(t, err)
	assert.Contains(t, out, "not found")
}

func TestResolveAuthorFallback(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	assert.Equal(t, testAuthor, ResolveAuthor(testAuthor))
}

func TestResolveAuthorFromGlobalConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	require.NoError(t, os.WriteFile(filepath.Join(home, ".gitconfig"),
		[]byte("[user]\n\tname = Jane Doe\n\temail = jane@example.com\n"), 0644))

	assert.Equal(t, Author{Name: "Jane Doe", Email: "jane@example.com"}, ResolveAuthor(testAuthor))
}
