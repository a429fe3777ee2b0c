// Package types provides the project description shared by the bootstrap
// phases. It sits below every other package to avoid circular dependencies.
package types

// SetupOptions records which optional features the generated project
// includes.
type SetupOptions struct {
	IncludeSupabase      bool `json:"include_supabase" yaml:"include_supabase"`
	IncludeAnalytics     bool `json:"include_analytics" yaml:"include_analytics"`
	IncludeThemeSystem   bool `json:"include_theme_system" yaml:"include_theme_system"`
	IncludeErrorTracking bool `json:"include_error_tracking" yaml:"include_error_tracking"`
}

// AllOptions enables every feature.
func AllOptions() SetupOptions {
	return SetupOptions{
		IncludeSupabase:      true,
		IncludeAnalytics:     true,
		IncludeThemeSystem:   true,
		IncludeErrorTracking: true,
	}
}

// ProjectConfig is produced once by the collector and never mutated.
type ProjectConfig struct {
	// ProjectName is the name as entered, before any case mapping.
	ProjectName string
	// ProjectDir is the directory as entered, shown back to the user.
	ProjectDir string
	// WorkDir is ProjectDir resolved to an absolute path. Every phase after
	// the collector operates inside it.
	WorkDir string

	Options SetupOptions
}

// SupabaseConfig holds the connection values for the Supabase project. Each
// field has been validated or explicitly accepted by the user.
type SupabaseConfig struct {
	URL       string
	AnonKey   string
	ProjectID string
}

// SupabaseEnabled reports whether Supabase dependent phases may run.
func SupabaseEnabled(opts SetupOptions, sb *SupabaseConfig) bool {
	return opts.IncludeSupabase && sb != nil
}
