package scaffolding

import (
	"testing"
	"testing/fstest"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stevengonsalvez/apppop-bootstrap/internal/types"
)

func TestBundledTemplates(t *testing.T) {
	r := NewDocRenderer(afero.NewMemMapFs())

	names, err := r.Templates()
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md.tmpl", "docs/setup.md.tmpl"}, names)
}

func TestRenderDocs(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{"README.md": "# AppPop template readme"})

	r := NewDocRenderer(fs)
	data := NewDocData("Test-Project", types.AllOptions(), time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))

	written, err := r.Render(projectDir, data)
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md", "docs/setup.md"}, written)

	readme := readFile(t, fs, "README.md")
	assert.Contains(t, readme, "# Test-project\n")
	assert.Contains(t, readme, "created from the AppPop template on 2026-01-02")
	assert.Contains(t, readme, "### Supabase")
	assert.NotContains(t, readme, "template readme")

	setup := readFile(t, fs, "docs/setup.md")
	assert.Contains(t, setup, "`test-project`")
	assert.Contains(t, setup, "Color schemes: default, indigo, emerald, sunset, ocean.")
	assert.Contains(t, setup, `defaultFontScheme: "modern"`)
}

func TestRenderDocsOmitsDisabledSections(t *testing.T) {
	fs := afero.NewMemMapFs()
	r := NewDocRenderer(fs)

	_, err := r.Render(projectDir, NewDocData("demo", types.SetupOptions{}, time.Now()))
	require.NoError(t, err)

	assert.NotContains(t, readFile(t, fs, "README.md"), "Supabase")
	setup := readFile(t, fs, "docs/setup.md")
	assert.NotContains(t, setup, "Supabase")
	assert.NotContains(t, setup, "Theme system")
}

func TestRenderDocsFromCustomSource(t *testing.T) {
	src := afero.FromIOFS{FS: fstest.MapFS{
		"NOTES.md.tmpl": {Data: []byte(`{{ .Slug | upper }}`)},
		"ignored.txt":   {Data: []byte("x")},
	}}

	dst := afero.NewMemMapFs()
	written, err := NewDocRendererFrom(src, dst).Render(projectDir, NewDocData("Demo", types.SetupOptions{}, time.Now()))
	require.NoError(t, err)

	assert.Equal(t, []string{"NOTES.md"}, written)
	assert.Equal(t, "DEMO", readFile(t, dst, "NOTES.md"))
}

func TestRenderDocsBadTemplate(t *testing.T) {
	src := afero.FromIOFS{FS: fstest.MapFS{
		"README.md.tmpl": {Data: []byte(`{{ .Missing `)},
	}}

	_, err := NewDocRendererFrom(src, afero.NewMemMapFs()).Render(projectDir, DocData{})
	assert.Error(t, err)
}
