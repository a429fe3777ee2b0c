package testutils

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stevengonsalvez/apppop-bootstrap/internal/runner"
)

func TestCreateTemplateRepo(t *testing.T) {
	dir := CreateTemplateRepo(t)

	repo, err := git.PlainOpen(dir)
	require.NoError(t, err)
	head, err := repo.Head()
	require.NoError(t, err)
	assert.False(t, head.Hash().IsZero())

	for rel := range TemplateFiles {
		assert.FileExists(t, filepath.Join(dir, filepath.FromSlash(rel)))
	}
}

func TestCreateTestConfig(t *testing.T) {
	cfg := CreateTestConfig("/tmp/template")
	assert.Equal(t, "/tmp/template", cfg.Template.Repository)
	assert.Empty(t, cfg.Prerequisites.NodeVersion)
}

func TestFakeRunner(t *testing.T) {
	f := NewFakeRunner()
	f.Missing["git"] = true
	f.Errors["npm install"] = errors.New("boom")
	f.Results["npm install"] = runner.Result{Stderr: "ERR! network"}

	_, err := f.LookPath("git")
	assert.Error(t, err)
	_, err = f.LookPath("node")
	assert.NoError(t, err)

	res, err := f.Run(context.Background(), runner.Command{Name: "npm", Args: []string{"install"}})
	assert.Error(t, err)
	assert.Equal(t, 1, res.ExitCode)
	assert.Equal(t, "ERR! network", res.Stderr)
	assert.Equal(t, []string{"npm install"}, f.CommandLines())
}

func TestFakeGitClone(t *testing.T) {
	fs := afero.NewMemMapFs()
	g := NewFakeGit(fs, map[string]string{"a/b.txt": "x"})

	_, err := g.Clone(context.Background(), "url", "/p")
	require.NoError(t, err)

	b, err := afero.ReadFile(fs, "/p/a/b.txt")
	require.NoError(t, err)
	assert.Equal(t, "x", string(b))
	assert.Equal(t, []string{"clone"}, g.CallNames())
}

func TestScriptedPrompter(t *testing.T) {
	p := &ScriptedPrompter{Inputs: []string{"", "acme"}, Confirms: []string{"", "n"}}
	ctx := context.Background()

	v, _ := p.Input(ctx, "a", "def")
	assert.Equal(t, "def", v)
	v, _ = p.Input(ctx, "b", "def")
	assert.Equal(t, "acme", v)
	_, err := p.Input(ctx, "c", "def")
	assert.ErrorIs(t, err, io.EOF)

	ok, _ := p.Confirm(ctx, "d", true)
	assert.True(t, ok)
	ok, _ = p.Confirm(ctx, "e", true)
	assert.False(t, ok)

	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, p.Asked)
}

func TestFailingFs(t *testing.T) {
	fs := &FailingFs{Fs: afero.NewMemMapFs(), MkdirPrefix: "/blocked", Err: os.ErrPermission}

	assert.ErrorIs(t, fs.MkdirAll("/blocked/x", 0755), os.ErrPermission)
	assert.NoError(t, fs.MkdirAll("/open/x", 0755))
}

func TestAssertFilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0600))
	require.NoError(t, os.Chmod(path, 0600))
	AssertFilePermissions(t, path, 0600)
}
