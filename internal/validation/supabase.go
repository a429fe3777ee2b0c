// Package validation holds the format-only checks applied to user input.
// Nothing here contacts a remote service.
package validation

import (
	"regexp"

	"github.com/stevengonsalvez/apppop-bootstrap/internal/errors"
)

var (
	supabaseURLPattern = regexp.MustCompile(`^https://[a-z0-9-]+\.supabase\.co$`)
	supabaseKeyPattern = regexp.MustCompile(`^eyJ[A-Za-z0-9\-_=]+\.[A-Za-z0-9\-_=]+\.?[A-Za-z0-9\-_.+/=]*$`)
	projectIDPattern   = regexp.MustCompile(`^[a-zA-Z0-9]{20,}$`)
)

// Field names, also used in prompt and warning texts.
const (
	FieldSupabaseURL = "URL"
	FieldSupabaseKey = "key"
	FieldProjectID   = "project ID"
)

// Expected formats shown next to a rejected value.
const (
	ExpectedSupabaseURL = "https://your-project.supabase.co"
	ExpectedSupabaseKey = "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."
	ExpectedProjectID   = "A string of at least 20 letters and numbers"
)

// ValidateSupabaseURL accepts only https URLs on a single lowercase
// subdomain of supabase.co.
func ValidateSupabaseURL(url string) error {
	if supabaseURLPattern.MatchString(url) {
		return nil
	}
	return errors.NewFieldValidationError(FieldSupabaseURL, url,
		"The Supabase URL format appears incorrect", ExpectedSupabaseURL)
}

// ValidateSupabaseKey accepts JWT shaped anon keys.
func ValidateSupabaseKey(key string) error {
	if supabaseKeyPattern.MatchString(key) {
		return nil
	}
	return errors.NewFieldValidationError(FieldSupabaseKey, key,
		"The anon key format appears incorrect", ExpectedSupabaseKey,
		`Copy the "anon public" key, not the service_role key`)
}

// ValidateProjectID accepts at least 20 ASCII letters and digits.
func ValidateProjectID(id string) error {
	if projectIDPattern.MatchString(id) {
		return nil
	}
	return errors.NewFieldValidationError(FieldProjectID, id,
		"The project ID format appears incorrect", ExpectedProjectID)
}
