package scaffolding

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/spf13/afero"

	"github.com/stevengonsalvez/apppop-bootstrap/internal/types"
)

//go:embed templates
var bundledTemplates embed.FS

const templateSuffix = ".tmpl"

// DocData is the data passed to the bundled document templates.
type DocData struct {
	ProjectName        string
	DisplayName        string
	Slug               string
	Date               string
	Options            types.SetupOptions
	ColorSchemes       []string
	FontSchemes        []string
	DefaultColorScheme string
	DefaultFontScheme  string
}

// NewDocData builds template data for a project.
func NewDocData(name string, opts types.SetupOptions, now time.Time) DocData {
	colors := make([]string, 0, len(ColorSchemes))
	for _, s := range ColorSchemes {
		colors = append(colors, s.Name)
	}
	fonts := make([]string, 0, len(FontSchemes))
	for _, s := range FontSchemes {
		fonts = append(fonts, s.Name)
	}

	return DocData{
		ProjectName:        name,
		DisplayName:        DisplayName(name),
		Slug:               LowerName(name),
		Date:               now.Format("2006-01-02"),
		Options:            opts,
		ColorSchemes:       colors,
		FontSchemes:        fonts,
		DefaultColorScheme: colors[0],
		DefaultFontScheme:  fonts[0],
	}
}

// DocRenderer renders the bundled documents into a project. Each
// "<path>.tmpl" under the template root becomes "<path>" in the project and
// replaces any file the template repository shipped there.
type DocRenderer struct {
	src afero.Fs
	dst afero.Fs
}

// NewDocRenderer renders the documents bundled in the binary into dst.
func NewDocRenderer(dst afero.Fs) *DocRenderer {
	sub, err := fs.Sub(bundledTemplates, "templates")
	if err != nil {
		panic(err)
	}
	return NewDocRendererFrom(afero.FromIOFS{FS: sub}, dst)
}

// NewDocRendererFrom renders templates read from src.
func NewDocRendererFrom(src, dst afero.Fs) *DocRenderer {
	return &DocRenderer{src: src, dst: dst}
}

// Templates lists the template paths, sorted.
func (r *DocRenderer) Templates() ([]string, error) {
	var names []string
	err := afero.Walk(r.src, ".", func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(p, templateSuffix) {
			names = append(names, filepath.ToSlash(p))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// Render writes every document into dir and returns the relative paths.
func (r *DocRenderer) Render(dir string, data DocData) ([]string, error) {
	names, err := r.Templates()
	if err != nil {
		return nil, fmt.Errorf("list bundled documents: %w", err)
	}

	written := make([]string, 0, len(names))
	for _, name := range names {
		out, err := r.renderOne(name, data)
		if err != nil {
			return written, err
		}

		rel := strings.TrimSuffix(name, templateSuffix)
		target := filepath.Join(dir, filepath.FromSlash(rel))
		if err := r.dst.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return written, fmt.Errorf("create %s: %w", path.Dir(rel), err)
		}
		if err := afero.WriteFile(r.dst, target, out, 0644); err != nil {
			return written, fmt.Errorf("write %s: %w", rel, err)
		}
		written = append(written, rel)
	}
	return written, nil
}

func (r *DocRenderer) renderOne(name string, data DocData) ([]byte, error) {
	raw, err := afero.ReadFile(r.src, name)
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", name, err)
	}

	tmpl, err := template.New(path.Base(name)).Funcs(sprig.TxtFuncMap()).Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
