package testutils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"

	"github.com/stevengonsalvez/apppop-bootstrap/internal/config"
)

// TemplateFiles is a minimal copy of the upstream template layout.
var TemplateFiles = map[string]string{
	"package.json": `{
  "name": "apppop",
  "private": true,
  "scripts": {"dev": "vite"}
}
`,
	"README.md":      "# AppPop\n\nTemplate readme.\n",
	"index.html":     "<!doctype html>\n<title>AppPop</title>\n",
	"vite.config.ts": "export default { base: '/apppop/' };\n",
	"capacitor.config.ts": `const config = {
  appId: 'com.apppop.app',
  appName: 'AppPop',
  webDir: 'dist',
};
export default config;
`,
	"supabase/config.toml": "project_id = \"apppoptemplate\"\n\n[db]\nname = \"apppop\"\n",
	".gitignore":           "node_modules\ndist\n",
	".claudesync/state":    "sync\n",
	"docs/setup.md":        "Template setup notes.\n",
	"src/App.tsx":          "export const App = () => null;\n",
}

// WriteTemplateFiles writes TemplateFiles below dir.
func WriteTemplateFiles(t *testing.T, dir string) {
	t.Helper()

	for rel, content := range TemplateFiles {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// CreateTemplateRepo creates a local git repository holding TemplateFiles
// and returns its path, usable as a clone URL.
func CreateTemplateRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	WriteTemplateFiles(t, dir)

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, wt.AddWithOptions(&git.AddOptions{All: true}))

	_, err = wt.Commit("template", &git.CommitOptions{
		Author: &object.Signature{Name: "Template", Email: "template@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	return dir
}

// CreateTestConfig returns default settings pointing at repository.
func CreateTestConfig(repository string) *config.Config {
	cfg := config.Default()
	if repository != "" {
		cfg.Template.Repository = repository
	}
	cfg.Prerequisites.NodeVersion = ""
	return cfg
}

// AssertFilePermissions checks that files have the expected permissions.
func AssertFilePermissions(t *testing.T, path string, expectedMode os.FileMode) {
	info, err := os.Stat(path)
	require.NoError(t, err)

	actualMode := info.Mode()
	require.Equal(t, expectedMode, actualMode&os.FileMode(0777),
		"File %s has incorrect permissions: got %o, want %o",
		path, actualMode&os.FileMode(0777), expectedMode)
}

// AssertDirectoryPermissions checks that directories have the expected permissions.
func AssertDirectoryPermissions(t *testing.T, path string, expectedMode os.FileMode) {
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.True(t, info.IsDir(), "Path %s is not a directory", path)

	actualMode := info.Mode()
	require.Equal(t, expectedMode, actualMode&os.FileMode(0777),
		"Directory %s has incorrect permissions: got %o, want %o",
		path, actualMode&os.FileMode(0777), expectedMode)
}
