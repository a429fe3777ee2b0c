package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/stevengonsalvez/apppop-bootstrap/internal/config"
	"github.com/stevengonsalvez/apppop-bootstrap/internal/gitops"
	"github.com/stevengonsalvez/apppop-bootstrap/internal/logging"
	"github.com/stevengonsalvez/apppop-bootstrap/internal/runner"
	"github.com/stevengonsalvez/apppop-bootstrap/internal/testutils"
)

// execute runs the root command with fresh settings and flag values.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	viper.Reset()
	cfgFile = ""
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// stubCapabilities replaces the runner and git client for the test.
func stubCapabilities(t *testing.T, fr *testutils.FakeRunner, fg *testutils.FakeGit) {
	t.Helper()

	origRunner, origGit := newRunner, newGitClient
	newRunner = func(logging.Logger) runner.CommandRunner { return fr }
	newGitClient = func(*config.Config, runner.CommandRunner, logging.Logger) (gitops.Client, error) {
		return fg, nil
	}
	t.Cleanup(func() {
		newRunner, newGitClient = origRunner, origGit
	})
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"create", "doctor", "config", "version"} {
		assert.True(t, names[want], "missing command %s", want)
	}
	assert.Contains(t, createCmd.Aliases, "new")

	for _, flag := range []string{"config", "log-level", "plain", "template-repo"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(flag), "missing flag %s", flag)
	}
}

func TestCreateEndToEnd(t *testing.T) {
	projectDir := filepath.Join(t.TempDir(), "demo")

	fr := testutils.NewFakeRunner()
	fr.Results["node --version"] = runner.Result{Stdout: "v20.11.1\n"}
	fg := testutils.NewFakeGit(afero.NewOsFs(), testutils.TemplateFiles)
	stubCapabilities(t, fr, fg)

	stdin := "demo\n" + projectDir + "\nn\nn\nn\nn\n"
	out, err := execute(t, stdin, "create", "--plain")
	require.NoError(t, err, out)

	assert.Contains(t, out, "Welcome to AppPop Project Creator!")
	assert.Contains(t, out, "✔ Dependencies installed")
	assert.Contains(t, out, "✅ Project setup complete!")
	assert.Contains(t, out, "1. cd "+projectDir)

	pkg, err := os.ReadFile(filepath.Join(projectDir, "package.json"))
	require.NoError(t, err)
	assert.Contains(t, string(pkg), `"name": "demo"`)

	env, err := os.ReadFile(filepath.Join(projectDir, ".env"))
	require.NoError(t, err)
	assert.Contains(t, string(env), "VITE_APP_NAME=demo")
	assert.NotContains(t, string(env), "SUPABASE")

	testutils.AssertFilePermissions(t, filepath.Join(projectDir, ".env"), 0600)
	assert.NoDirExists(t, filepath.Join(projectDir, ".claudesync"))
	assert.Equal(t, []string{"node --version", "npm install"}, fr.CommandLines())
}

func TestRootRunsPipeline(t *testing.T) {
	fr := testutils.NewFakeRunner()
	fr.Missing["node"] = true
	fg := testutils.NewFakeGit(afero.NewMemMapFs(), nil)
	stubCapabilities(t, fr, fg)

	out, err := execute(t, "", "--plain")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "node is not installed")
	assert.Contains(t, out, "Checking prerequisites...")
	assert.Empty(t, fg.Calls, "nothing is cloned")
}

func TestDoctorJSON(t *testing.T) {
	fr := testutils.NewFakeRunner()
	fr.Results["node --version"] = runner.Result{Stdout: "v20.11.1"}
	fr.Missing["git"] = true
	stubCapabilities(t, fr, nil)

	out, err := execute(t, "", "doctor", "--format", "json")
	require.Error(t, err)

	var report DoctorReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.False(t, report.Healthy)
	require.Len(t, report.Tools, 3)
	assert.Equal(t, "v20.11.1", report.Tools[0].Version)
	assert.True(t, report.Tools[1].OK())
	assert.Equal(t, "not installed", report.Tools[2].Problem)
}

func TestDoctorTableHealthy(t *testing.T) {
	fr := testutils.NewFakeRunner()
	fr.Results["node --version"] = runner.Result{Stdout: "v22.1.0"}
	stubCapabilities(t, fr, nil)

	out, err := execute(t, "", "doctor")
	require.NoError(t, err)
	assert.Contains(t, out, "TOOL")
	assert.Contains(t, out, "/usr/bin/npm")
	assert.Contains(t, out, "All prerequisites satisfied.")
}

func TestDoctorRejectsUnknownFormat(t *testing.T) {
	stubCapabilities(t, testutils.NewFakeRunner(), nil)

	_, err := execute(t, "", "doctor", "--format", "xml")
	assert.Error(t, err)
}

func TestConfigShow(t *testing.T) {
	t.Setenv("APPPOP_GIT_BACKEND", "cli")

	out, err := execute(t, "", "config", "show", "--template-repo", "git@github.com:me/fork.git")
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, "git@github.com:me/fork.git", cfg.Template.Repository)
	assert.Equal(t, config.GitBackendCLI, cfg.Git.Backend)
	assert.Equal(t, []string{"node", "npm", "git"}, cfg.Prerequisites.Tools)
}

func TestConfigShowFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apppop.yml")
	require.NoError(t, os.WriteFile(path, []byte("template:\n  repository: https://example.com/t.git\ndefaults:\n  project_name: starter\n"), 0644))

	out, err := execute(t, "", "config", "show", "--format", "json", "--config", path)
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, "https://example.com/t.git", cfg.Template.Repository)
	assert.Equal(t, "starter", cfg.Defaults.ProjectName)
}

func TestConfigValidate(t *testing.T) {
	out, err := execute(t, "", "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid (built-in defaults)")

	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("git:\n  backend: svn\n"), 0644))

	_, err = execute(t, "", "config", "validate", "--config", path)
	assert.Error(t, err)
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := execute(t, "", "version", "--log-level", "loud")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "apppop "))
	assert.Contains(t, out, "Go: ")

	out, err = execute(t, "", "version", "--format", "json")
	require.NoError(t, err)
	var info map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Contains(t, info, "version")
	assert.Contains(t, info, "platform")
}
