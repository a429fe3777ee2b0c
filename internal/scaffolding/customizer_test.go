package scaffolding

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stevengonsalvez/apppop-bootstrap/internal/types"
)

const projectDir = "/work/test-project"

func writeFiles(t *testing.T, fs afero.Fs, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(projectDir, filepath.FromSlash(rel))
		require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	}
}

func readFile(t *testing.T, fs afero.Fs, rel string) string {
	t.Helper()
	b, err := afero.ReadFile(fs, filepath.Join(projectDir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(b)
}

const capacitorConfig = `import { CapacitorConfig } from '@capacitor/cli';

const config: CapacitorConfig = {
  appId: "com.apppop.app",
  appName: 'AppPop',
  webDir: 'dist',
};

export default config;
`

const supabaseTOML = `project_id = "templateprojectid"

[api]
enabled = true
port = 54321

[db]
name = "apppop"
`

func TestCustomizeAppliesRules(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"package.json":         `{"name": "apppop", "productName": "AppPop"}`,
		"index.html":           `<title>AppPop</title>`,
		"capacitor.config.ts":  capacitorConfig,
		"supabase/config.toml": supabaseTOML,
		"src/App.tsx":          "apppop",
	})

	c := NewCustomizer(fs, DefaultTokens(), nil)
	sb := &types.SupabaseConfig{ProjectID: "abcdefghijklmnopqrstuv"}

	updated, err := c.Customize(context.Background(), CustomizeRequest{
		Dir:         projectDir,
		ProjectName: "Test-Project",
		Supabase:    sb,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"package.json", "index.html", "capacitor.config.ts", "supabase/config.toml"}, updated)

	assert.Equal(t, "{\n  \"name\": \"test-project\",\n  \"productName\": \"Test-project\",\n  \"version\": \"0.0.1\"\n}\n",
		readFile(t, fs, "package.json"))
	assert.Equal(t, `<title>Test-project</title>`, readFile(t, fs, "index.html"))

	capacitor := readFile(t, fs, "capacitor.config.ts")
	assert.Contains(t, capacitor, "appId: 'com.test-project.app'")
	assert.Contains(t, capacitor, "appName: 'Test-project'")

	toml := readFile(t, fs, "supabase/config.toml")
	assert.Contains(t, toml, `project_id = "abcdefghijklmnopqrstuv"`)
	assert.Contains(t, toml, `name = "test-project"`)

	// Outside the allow-list.
	assert.Equal(t, "apppop", readFile(t, fs, "src/App.tsx"))
}

func TestCustomizeWithoutSupabaseLeavesConfigToml(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"supabase/config.toml": supabaseTOML,
		"README.md":            "# AppPop",
	})

	c := NewCustomizer(fs, DefaultTokens(), nil)
	updated, err := c.Customize(context.Background(), CustomizeRequest{Dir: projectDir, ProjectName: "demo"})
	require.NoError(t, err)

	assert.Equal(t, []string{"README.md"}, updated)
	assert.Equal(t, supabaseTOML, readFile(t, fs, "supabase/config.toml"))
	assert.Equal(t, "# Demo", readFile(t, fs, "README.md"))
}

func TestCustomizeSkipsMissingFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(projectDir, 0755))

	c := NewCustomizer(fs, DefaultTokens(), nil)
	updated, err := c.Customize(context.Background(), CustomizeRequest{Dir: projectDir, ProjectName: "demo"})
	require.NoError(t, err)
	assert.Empty(t, updated)
}

func TestCustomizeRejectsBrokenToml(t *testing.T) {
	c := NewCustomizer(afero.NewMemMapFs(), DefaultTokens(), nil)

	_, err := c.Apply("supabase/config.toml", supabaseTOML, "demo",
		&types.SupabaseConfig{ProjectID: `bad"id`})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid TOML")
}

func TestCustomizeReadOnlyFilesystem(t *testing.T) {
	base := afero.NewMemMapFs()
	writeFiles(t, base, map[string]string{"package.json": `{"name": "apppop"}`})

	c := NewCustomizer(afero.NewReadOnlyFs(base), DefaultTokens(), nil)
	_, err := c.Customize(context.Background(), CustomizeRequest{Dir: projectDir, ProjectName: "demo"})
	assert.Error(t, err)
}

func TestCustomizableFiles(t *testing.T) {
	assert.NotContains(t, CustomizableFiles(false), "supabase/config.toml")
	assert.Contains(t, CustomizableFiles(true), "supabase/config.toml")
	assert.Len(t, CustomizableFiles(false), 7)
}

func TestCustomizePackageJSON(t *testing.T) {
	c := NewCustomizer(afero.NewMemMapFs(), DefaultTokens(), nil)

	in := `{
	"name": "apppop-starter",
	"private": true,
	"version": "3.2.1",
	"scripts": {"dev": "vite", "build": "tsc && vite build"},
	"description": "AppPop starter"
}`
	out, err := c.Apply("package.json", in, "Shop-Front", nil)
	require.NoError(t, err)

	want := `{
  "name": "shop-front",
  "private": true,
  "version": "0.0.1",
  "scripts": {
    "dev": "vite",
    "build": "tsc && vite build"
  },
  "description": "Shop-front starter"
}
`
	assert.Equal(t, want, out)

	again, err := c.Apply("package.json", out, "Shop-Front", nil)
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestCustomizePackageJSONInvalid(t *testing.T) {
	c := NewCustomizer(afero.NewMemMapFs(), DefaultTokens(), nil)

	for _, in := range []string{"apppop", `["apppop"]`, `{"name": "apppop"} {}`, `{"name": `} {
		_, err := c.Apply("package.json", in, "demo", nil)
		assert.Error(t, err, in)
	}
}

func TestCustomizeTwiceIsNoop(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"package.json":         `{"name": "apppop", "title": "AppPop"}`,
		"README.md":            "# AppPop\n\nRun apppop locally.\n",
		"index.html":           `<title>AppPop</title>`,
		"capacitor.config.ts":  capacitorConfig,
		"supabase/config.toml": supabaseTOML,
	})

	c := NewCustomizer(fs, DefaultTokens(), nil)
	sb := &types.SupabaseConfig{ProjectID: "abcdefghijklmnopqrstuv"}
	req := CustomizeRequest{Dir: projectDir, ProjectName: "my-apppop-app", Supabase: sb}

	_, err := c.Customize(context.Background(), req)
	require.NoError(t, err)
	first := map[string]string{}
	for _, rel := range CustomizableFiles(true) {
		if ok, _ := afero.Exists(fs, filepath.Join(projectDir, rel)); ok {
			first[rel] = readFile(t, fs, rel)
		}
	}
	assert.Contains(t, first["package.json"], `"name": "my-apppop-app"`)
	assert.Contains(t, first["package.json"], `"title": "My-apppop-app"`)

	_, err = c.Customize(context.Background(), req)
	require.NoError(t, err)
	for rel, content := range first {
		assert.Equal(t, content, readFile(t, fs, rel), rel)
	}
}
