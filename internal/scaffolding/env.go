package scaffolding

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"

	"github.com/stevengonsalvez/apppop-bootstrap/internal/types"
)

// GitignoreBlock is appended to .gitignore so environment files stay local.
const GitignoreBlock = "# Environment Variables\n.env\n.env.local\n.env.*.local\n"

// BuildEnv renders the .env file. Supabase values are only written when
// Supabase is enabled and configured.
func BuildEnv(name string, opts types.SetupOptions, sb *types.SupabaseConfig) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Environment Variables for %s\n", name)
	b.WriteString("# ⚠️  WARNING: NEVER commit this file to version control\n")
	b.WriteString("# ⚠️  WARNING: Keep this file secure and private\n")
	b.WriteString("\n# App Configuration\n")
	fmt.Fprintf(&b, "VITE_APP_NAME=%s\n", EnvValue(name))

	if types.SupabaseEnabled(opts, sb) {
		b.WriteString("\n# Supabase Configuration\n")
		fmt.Fprintf(&b, "VITE_APP_SUPABASE_URL=%s\n", EnvValue(sb.URL))
		fmt.Fprintf(&b, "VITE_APP_SUPABASE_ANON_KEY=%s\n", EnvValue(sb.AnonKey))
	}

	if opts.IncludeAnalytics {
		b.WriteString("\n# Analytics & Monitoring\n")
		b.WriteString("VITE_CLARITY_TRACKING_CODE=  # Microsoft Clarity\n")
		b.WriteString("VITE_GTM_CONTAINER_ID=       # Google Tag Manager\n")
		b.WriteString("VITE_GA4_MEASUREMENT_ID=     # Google Analytics 4\n")
	}

	if opts.IncludeErrorTracking {
		b.WriteString("\n# Error Tracking\n")
		b.WriteString("VITE_SENTRY_DSN=            # Sentry Error Tracking\n")
	}

	return b.String()
}

// BuildEnvExample renders .env.example with placeholder values.
func BuildEnvExample(name string, opts types.SetupOptions, sb *types.SupabaseConfig) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Example Environment Variables for %s\n", name)
	b.WriteString("# Copy this file to .env and fill in your values\n")
	b.WriteString("\n# App Configuration\n")
	fmt.Fprintf(&b, "VITE_APP_NAME=%s\n", EnvValue(name))

	if types.SupabaseEnabled(opts, sb) {
		b.WriteString("\n# Supabase Configuration\n")
		b.WriteString("VITE_APP_SUPABASE_URL=https://your-project.supabase.co\n")
		b.WriteString("VITE_APP_SUPABASE_ANON_KEY=your-anon-key\n")
	}

	if opts.IncludeAnalytics {
		b.WriteString("\n# Analytics & Monitoring\n")
		b.WriteString("VITE_CLARITY_TRACKING_CODE=xxxxxxxx\n")
		b.WriteString("VITE_GTM_CONTAINER_ID=GTM-XXXXXX\n")
		b.WriteString("VITE_GA4_MEASUREMENT_ID=G-XXXXXXXXXX\n")
	}

	if opts.IncludeErrorTracking {
		b.WriteString("\n# Error Tracking\n")
		b.WriteString("VITE_SENTRY_DSN=https://xxx@xxx.ingest.sentry.io/xxx\n")
	}

	return b.String()
}

// envSpecialChars force a value into double quotes.
const envSpecialChars = " \t#\"'\\$`!\n\r"

var envEscaper = strings.NewReplacer(
	`\`, `\\`,
	"\n", `\n`,
	"\r", `\r`,
	`"`, `\"`,
	"!", `\!`,
	"$", `\$`,
	"`", "\\`",
)

// EnvValue renders v for a dotenv file. Plain values are written as is;
// anything a dotenv reader would treat specially is double quoted with the
// same escapes godotenv.Marshal uses.
func EnvValue(v string) string {
	if v == "" || !strings.ContainsAny(v, envSpecialChars) {
		return v
	}
	return `"` + envEscaper.Replace(v) + `"`
}

// EnvRequest describes one environment generation run.
type EnvRequest struct {
	Dir         string
	ProjectName string
	Options     types.SetupOptions
	Supabase    *types.SupabaseConfig
}

// EnvResult reports what was written. Warnings name values a dotenv reader
// will not return exactly as entered.
type EnvResult struct {
	Keys             []string
	Warnings         []string
	GitignoreUpdated bool
	GitignoreCreated bool
}

// EnvGenerator writes .env, .env.example and the .gitignore block.
type EnvGenerator struct {
	fs afero.Fs
}

func NewEnvGenerator(fs afero.Fs) *EnvGenerator {
	return &EnvGenerator{fs: fs}
}

// Generate writes both env files and makes sure .gitignore covers .env.
func (g *EnvGenerator) Generate(req EnvRequest) (EnvResult, error) {
	var res EnvResult

	env := BuildEnv(req.ProjectName, req.Options, req.Supabase)
	res.Keys, res.Warnings = checkEnv(env, req)
	if err := afero.WriteFile(g.fs, filepath.Join(req.Dir, ".env"), []byte(env), 0600); err != nil {
		return res, fmt.Errorf("write .env: %w", err)
	}

	example := BuildEnvExample(req.ProjectName, req.Options, req.Supabase)
	if err := afero.WriteFile(g.fs, filepath.Join(req.Dir, ".env.example"), []byte(example), 0644); err != nil {
		return res, fmt.Errorf("write .env.example: %w", err)
	}

	var err error
	res.GitignoreUpdated, res.GitignoreCreated, err = EnsureGitignore(g.fs, req.Dir)
	if err != nil {
		return res, err
	}
	return res, nil
}

// checkEnv reads env back with godotenv and reports the assigned keys and
// every entered value that does not survive the round trip.
func checkEnv(env string, req EnvRequest) (keys, warnings []string) {
	parsed, err := godotenv.Unmarshal(env)
	if err != nil {
		return envKeys(env), []string{fmt.Sprintf(".env may not load as written: %v", err)}
	}
	for _, key := range envKeys(env) {
		if _, ok := parsed[key]; ok {
			keys = append(keys, key)
		}
	}

	want := map[string]string{"VITE_APP_NAME": req.ProjectName}
	if types.SupabaseEnabled(req.Options, req.Supabase) {
		want["VITE_APP_SUPABASE_URL"] = req.Supabase.URL
		want["VITE_APP_SUPABASE_ANON_KEY"] = req.Supabase.AnonKey
	}
	for _, key := range keys {
		if expected, ok := want[key]; ok && parsed[key] != expected {
			warnings = append(warnings, fmt.Sprintf("%s will be read back as %q, not %q", key, parsed[key], expected))
		}
	}
	return keys, warnings
}

// EnsureGitignore appends GitignoreBlock unless .gitignore already mentions
// .env. A missing file is created with the block alone.
func EnsureGitignore(fs afero.Fs, dir string) (updated, created bool, err error) {
	path := filepath.Join(dir, ".gitignore")

	content, err := afero.ReadFile(fs, path)
	if os.IsNotExist(err) {
		if err := afero.WriteFile(fs, path, []byte(GitignoreBlock), 0644); err != nil {
			return false, false, fmt.Errorf("create .gitignore: %w", err)
		}
		return true, true, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("read .gitignore: %w", err)
	}

	if strings.Contains(string(content), ".env") {
		return false, false, nil
	}

	out := string(content) + "\n" + GitignoreBlock
	if err := afero.WriteFile(fs, path, []byte(out), 0644); err != nil {
		return false, false, fmt.Errorf("update .gitignore: %w", err)
	}
	return true, false, nil
}

// envKeys lists the assigned keys in file order.
func envKeys(content string) []string {
	var keys []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if i := strings.Index(line, "="); i > 0 {
			keys = append(keys, line[:i])
		}
	}
	return keys
}

// SecurityReminders are printed once the environment files exist.
func SecurityReminders() []string {
	return []string{
		"1. Your .env file contains sensitive information - keep it secure",
		"2. Share the .env.example file with your team, NOT the .env file",
		"3. Different environments (dev/staging/prod) should use different keys",
		"4. Consider using a secrets manager for production deployments",
	}
}

// SecurityPractices lists the key handling practices for projects that
// talk to Supabase.
func SecurityPractices(opts types.SetupOptions) []string {
	if !opts.IncludeSupabase {
		return nil
	}
	return []string{
		"• Regularly rotate your API keys",
		"• Set up Row Level Security (RLS) in Supabase",
		"• Use environment-specific API keys",
		"• Monitor API key usage for unusual patterns",
	}
}
