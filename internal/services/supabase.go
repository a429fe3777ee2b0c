package services

import (
	"context"
	"fmt"

	"github.com/stevengonsalvez/apppop-bootstrap/internal/errors"
	"github.com/stevengonsalvez/apppop-bootstrap/internal/logging"
	"github.com/stevengonsalvez/apppop-bootstrap/internal/types"
	"github.com/stevengonsalvez/apppop-bootstrap/internal/validation"
)

// Placeholder defaults offered by the Supabase prompts.
const (
	DefaultSupabaseURL       = "https://your-project-url.supabase.co"
	DefaultSupabaseAnonKey   = "your-anon-key"
	DefaultSupabaseProjectID = "your-project-id"
)

type supabaseField struct {
	name     string
	heading  string
	guidance []string
	message  string
	def      string
	validate func(string) error
}

var supabaseFields = []supabaseField{
	{
		name:    validation.FieldSupabaseURL,
		heading: "1. Project URL:",
		guidance: []string{
			"   • Open your project in Supabase dashboard",
			"   • Go to Project Settings (⚙️ icon in top navigation)",
			`   • Look under "Project Configuration" -> "Project URL"`,
		},
		message:  "Enter Supabase Project URL:",
		def:      DefaultSupabaseURL,
		validate: validation.ValidateSupabaseURL,
	},
	{
		name:    validation.FieldSupabaseKey,
		heading: "2. Anon/Public Key:",
		guidance: []string{
			"   • Stay in Project Settings",
			`   • Go to "API" section in the sidebar`,
			`   • Look under "Project API keys"`,
			`   • Copy the "anon public" key (NOT the service_role key!)`,
		},
		message:  "Enter Supabase Anon Key:",
		def:      DefaultSupabaseAnonKey,
		validate: validation.ValidateSupabaseKey,
	},
	{
		name:    validation.FieldProjectID,
		heading: "3. Project ID:",
		guidance: []string{
			`   • Go to "General" settings in the sidebar`,
			`   • Find "Reference ID" under Project Settings`,
			"   • This is used for CLI configuration and API access",
		},
		message:  "Enter Supabase Project ID:",
		def:      DefaultSupabaseProjectID,
		validate: validation.ValidateProjectID,
	},
}

// ConfigureSupabase collects the Supabase URL, anon key and project ID. A
// value failing its format check is kept only when the user confirms it.
func (s *BootstrapService) ConfigureSupabase(ctx context.Context) (*types.SupabaseConfig, error) {
	s.reporter.Heading("2. Supabase Configuration")
	s.reporter.Warn("Please create a new Supabase project at https://app.supabase.com if you haven't already.")

	values := make([]string, len(supabaseFields))
	for i, f := range supabaseFields {
		s.reporter.Heading(f.heading)
		for _, line := range f.guidance {
			s.reporter.Println(line)
		}

		v, err := s.askValidated(ctx, f)
		if err != nil {
			return nil, errors.PhaseError(PhaseSupabase, errors.ErrCodePrompt, "reading Supabase "+f.name+" failed", err)
		}
		values[i] = v
	}

	return &types.SupabaseConfig{
		URL:       values[0],
		AnonKey:   values[1],
		ProjectID: values[2],
	}, nil
}

// askValidated re-prompts until the value is valid or explicitly accepted.
func (s *BootstrapService) askValidated(ctx context.Context, f supabaseField) (string, error) {
	for {
		v, err := s.ask(ctx, f.name, f.message, f.def)
		if err != nil {
			return "", err
		}

		verr := f.validate(v)
		if verr == nil {
			return v, nil
		}

		s.printValidationWarning(v, verr)

		accept, err := s.prompter.Confirm(ctx, fmt.Sprintf("Continue with this %s anyway?", f.name), false)
		if err != nil {
			return "", errors.PromptError(f.name, err)
		}
		if accept {
			s.logger.Warn(ctx, verr, "Accepted value failing format check",
				"field", f.name,
				"value", logging.SanitizeForLog(v))
			return v, nil
		}
	}
}

func (s *BootstrapService) printValidationWarning(value string, err error) {
	var fve *errors.FieldValidationError
	if !errors.As(err, &fve) {
		s.reporter.Warn("Warning: " + err.Error())
		return
	}
	s.reporter.Warn("Warning: " + fve.ErrorMessage)
	s.reporter.Info("Expected format: " + fve.Expected)
	s.reporter.Info("Received: " + value)
}
