package runner

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandString(t *testing.T) {
	assert.Equal(t, "npm", Command{Name: "npm"}.String())
	assert.Equal(t, "npm install supabase --save-dev",
		Command{Name: "npm", Args: []string{"install", "supabase", "--save-dev"}}.String())
}

func TestResultCombined(t *testing.T) {
	r := Result{Stdout: "added 12 packages\n", Stderr: "\nnpm WARN deprecated\n"}
	assert.Equal(t, "added 12 packages\nnpm WARN deprecated", r.Combined())
	assert.Empty(t, Result{}.Combined())
}

func TestExecRunnerRejectsUnlistedCommand(t *testing.T) {
	r := NewExecRunner(nil)

	_, err := r.Run(context.Background(), Command{Name: "curl", Args: []string{"example.com"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not allowed")
}

func TestExecRunnerRejectsDangerousArgument(t *testing.T) {
	r := NewExecRunner(nil)

	_, err := r.Run(context.Background(), Command{Name: "npm", Args: []string{"install;", "rm"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid argument")
}

func TestExecRunnerRunsGit(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	r := NewExecRunner(nil)
	res, err := r.Run(context.Background(), Command{Name: "git", Args: []string{"--version"}, Dir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Contains(t, res.Stdout, "git version")
}

func TestExecRunnerCanceledContext(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewExecRunner(nil)
	_, err := r.Run(ctx, Command{Name: "git", Args: []string{"--version"}})
	require.Error(t, err)
}

func TestLookPathMissing(t *testing.T) {
	r := NewExecRunner(nil)
	_, err := r.LookPath("apppop-definitely-not-installed")
	assert.Error(t, err)
}
