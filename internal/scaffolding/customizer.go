package scaffolding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"github.com/stevengonsalvez/apppop-bootstrap/internal/logging"
	"github.com/stevengonsalvez/apppop-bootstrap/internal/types"
)

const (
	packageJSONFile     = "package.json"
	capacitorConfigFile = "capacitor.config.ts"
	supabaseConfigFile  = "supabase/config.toml"
)

// InitialVersion is the version a new project starts at.
const InitialVersion = "0.0.1"

var baseCustomizableFiles = []string{
	packageJSONFile,
	"README.md",
	"index.html",
	"vite.config.ts",
	".env",
	".env.example",
	capacitorConfigFile,
}

var projectIDLine = regexp.MustCompile(`project_id = ".*"`)

// CustomizableFiles lists the project relative files that receive the
// project name. The Supabase config is only touched when Supabase is set up.
func CustomizableFiles(withSupabase bool) []string {
	files := append([]string(nil), baseCustomizableFiles...)
	if withSupabase {
		files = append(files, supabaseConfigFile)
	}
	return files
}

// CustomizeRequest describes one customization run.
type CustomizeRequest struct {
	Dir         string
	ProjectName string
	Supabase    *types.SupabaseConfig
}

// Customizer applies the per-file substitution rules.
type Customizer struct {
	fs     afero.Fs
	tokens Tokens
	logger logging.Logger

	capacitorAppID   *regexp.Regexp
	capacitorAppName *regexp.Regexp
	tomlName         *regexp.Regexp
}

func NewCustomizer(fs afero.Fs, tokens Tokens, logger logging.Logger) *Customizer {
	if logger == nil {
		logger = logging.NewNop()
	}
	product := regexp.QuoteMeta(tokens.Product)
	display := regexp.QuoteMeta(tokens.Display)

	return &Customizer{
		fs:               fs,
		tokens:           tokens,
		logger:           logger.WithComponent("customizer"),
		capacitorAppID:   regexp.MustCompile(`appId: ['"]com\.` + product + `\.app['"]`),
		capacitorAppName: regexp.MustCompile(`appName: ['"]` + display + `['"]`),
		tomlName:         regexp.MustCompile(`name = "` + product + `"`),
	}
}

// Customize rewrites every allow-listed file present under req.Dir and
// returns the relative paths it wrote. Missing files are skipped.
func (c *Customizer) Customize(ctx context.Context, req CustomizeRequest) ([]string, error) {
	var updated []string

	for _, rel := range CustomizableFiles(req.Supabase != nil) {
		if err := ctx.Err(); err != nil {
			return updated, err
		}

		path := filepath.Join(req.Dir, filepath.FromSlash(rel))
		info, err := c.fs.Stat(path)
		if os.IsNotExist(err) {
			c.logger.Debug(ctx, "Skipping missing file", "file", rel)
			continue
		}
		if err != nil {
			return updated, fmt.Errorf("stat %s: %w", rel, err)
		}

		content, err := afero.ReadFile(c.fs, path)
		if err != nil {
			return updated, fmt.Errorf("read %s: %w", rel, err)
		}

		out, err := c.Apply(rel, string(content), req.ProjectName, req.Supabase)
		if err != nil {
			return updated, err
		}

		if err := afero.WriteFile(c.fs, path, []byte(out), info.Mode().Perm()); err != nil {
			return updated, fmt.Errorf("write %s: %w", rel, err)
		}
		updated = append(updated, rel)
	}

	return updated, nil
}

// Apply returns content with the rule for rel applied.
func (c *Customizer) Apply(rel, content, name string, sb *types.SupabaseConfig) (string, error) {
	switch {
	case rel == packageJSONFile:
		return c.applyPackageJSON(c.tokens.Substitute(content, name), name)
	case rel == capacitorConfigFile:
		return c.applyCapacitor(content, name), nil
	case rel == supabaseConfigFile && sb != nil:
		return c.applySupabaseConfig(content, name, sb.ProjectID)
	default:
		return c.tokens.Substitute(content, name), nil
	}
}

func (c *Customizer) applyCapacitor(content, name string) string {
	content = c.capacitorAppID.ReplaceAllLiteralString(content, "appId: 'com."+LowerName(name)+".app'")
	return c.capacitorAppName.ReplaceAllLiteralString(content, "appName: '"+DisplayName(name)+"'")
}

// applyPackageJSON sets the package name and resets the version. Top level
// keys keep their order; the file is re-indented with two spaces.
func (c *Customizer) applyPackageJSON(content, name string) (string, error) {
	fields, err := decodeObject([]byte(content))
	if err != nil {
		return "", fmt.Errorf("%s is not a JSON object: %w", packageJSONFile, err)
	}

	nameValue, _ := json.Marshal(LowerName(name))
	versionValue, _ := json.Marshal(InitialVersion)
	fields = fields.set("name", nameValue).set("version", versionValue)

	var b bytes.Buffer
	b.WriteString("{\n")
	for i, f := range fields {
		key, _ := json.Marshal(f.key)
		var value bytes.Buffer
		if err := json.Indent(&value, f.value, "  ", "  "); err != nil {
			return "", fmt.Errorf("%s: %w", packageJSONFile, err)
		}
		fmt.Fprintf(&b, "  %s: %s", key, value.Bytes())
		if i < len(fields)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString("}\n")
	return b.String(), nil
}

type jsonField struct {
	key   string
	value json.RawMessage
}

type jsonObject []jsonField

// set replaces the value of key, appending the key when it is absent.
func (o jsonObject) set(key string, value json.RawMessage) jsonObject {
	for i := range o {
		if o[i].key == key {
			o[i].value = value
			return o
		}
	}
	return append(o, jsonField{key: key, value: value})
}

// decodeObject reads the top level members of a JSON object in order.
func decodeObject(data []byte) (jsonObject, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected an object")
	}

	var obj jsonObject
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		obj = obj.set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("trailing data after object")
	}
	return obj, nil
}

func (c *Customizer) applySupabaseConfig(content, name, projectID string) (string, error) {
	out := projectIDLine.ReplaceAllLiteralString(content, `project_id = "`+projectID+`"`)
	out = c.tomlName.ReplaceAllLiteralString(out, `name = "`+LowerName(name)+`"`)

	var doc map[string]any
	if toml.Unmarshal([]byte(content), &doc) == nil {
		if err := toml.Unmarshal([]byte(out), &doc); err != nil {
			return "", fmt.Errorf("%s is no longer valid TOML after customization: %w", supabaseConfigFile, err)
		}
	}
	return out, nil
}
