package scaffolding

import (
	"fmt"

	"github.com/stevengonsalvez/apppop-bootstrap/internal/reporter"
	"github.com/stevengonsalvez/apppop-bootstrap/internal/types"
)

// Scheme is a named theme choice offered by the template.
type Scheme struct {
	Name        string
	Description string
}

var ColorSchemes = []Scheme{
	{"default", "Classic blue Material Design"},
	{"indigo", "Deep purple and pink accents"},
	{"emerald", "Nature-inspired green"},
	{"sunset", "Warm orange and yellow"},
	{"ocean", "Calming blue tones"},
}

var FontSchemes = []Scheme{
	{"modern", "Inter font"},
	{"classic", "Roboto/Roboto Slab"},
	{"minimal", "System fonts"},
}

// PrintFinalInstructions prints the next steps for a finished project.
// Step numbers are fixed; skipped optional steps leave gaps.
func PrintFinalInstructions(r reporter.Reporter, projectDir string, opts types.SetupOptions) {
	r.Heading("✅ Project setup complete!")
	r.Println("\nNext steps:")
	r.Println(fmt.Sprintf("1. cd %s", projectDir))
	r.Println("2. Review and update package.json with your project details")

	if opts.IncludeSupabase {
		r.Println("3. Configure Authentication:")
		r.Println("   • Check Auth.md in your project root for detailed setup instructions")
		r.Println("   • Set up email verification")
		r.Println("   • Configure SMTP for auth emails")
		r.Println("   • Implement security best practices")
	}

	if opts.IncludeThemeSystem {
		r.Println("4. Configure Theme System:")
		r.Println("   • Review theme-system.md for complete theming guide")
		r.Println("   • Choose from available color schemes:")
		for _, s := range ColorSchemes {
			r.Println(fmt.Sprintf("     - %s (%s)", s.Name, s.Description))
		}
		r.Println("   • Select font scheme:")
		for _, s := range FontSchemes {
			r.Println(fmt.Sprintf("     - %s (%s)", s.Name, s.Description))
		}
	}

	r.Println("5. Run 'npm run dev' to start the development server")

	if opts.IncludeAnalytics || opts.IncludeErrorTracking {
		r.Println("6. Set up additional services:")
		if opts.IncludeAnalytics {
			r.Println("   - Microsoft Clarity for analytics")
			r.Println("   - Google Tag Manager for analytics")
		}
		if opts.IncludeErrorTracking {
			r.Println("   - Sentry for error monitoring")
		}
	}

	if opts.IncludeSupabase {
		r.Info("\nImportant Security Reminder:")
		r.Println("• Review Auth.md for security best practices")
		r.Println("• Set up Row Level Security (RLS) policies")
		r.Println("• Configure proper email verification")
		r.Println("• Never commit sensitive keys or .env files")
	}

	if opts.IncludeThemeSystem {
		r.Info("\nTheming Quick Reference:")
		r.Println("• Theme system supports both light and dark modes")
		r.Println("• Each color scheme includes:")
		r.Println("  - Primary, Secondary, and Tertiary colors")
		r.Println("  - Background and surface variants")
		r.Println("  - Text colors and state colors")
		r.Println("• Font system includes:")
		r.Println("  - Multiple weights (light to bold)")
		r.Println("  - Configurable letter spacing")
		r.Println("  - Primary and secondary font families")
	}

	r.Heading("Happy coding! 🎉")
}
