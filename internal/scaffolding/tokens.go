// Package scaffolding rewrites a freshly cloned template into the user's
// project: bundled docs, placeholder token substitution, and environment
// files. All file access goes through an afero.Fs.
package scaffolding

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Tokens are the placeholder strings the template uses for its own name.
type Tokens struct {
	// Product is the lowercase token, e.g. "apppop".
	Product string
	// Display is the capitalized token, e.g. "AppPop".
	Display string
}

// DefaultTokens returns the tokens used by the upstream template.
func DefaultTokens() Tokens {
	return Tokens{Product: "apppop", Display: "AppPop"}
}

var (
	lowerCaser = cases.Lower(language.Und)
	upperCaser = cases.Upper(language.Und)
)

// LowerName returns name in lower case.
func LowerName(name string) string {
	return lowerCaser.String(name)
}

// DisplayName upper-cases the first letter of name and lower-cases the
// rest: "my-App" becomes "My-app".
func DisplayName(name string) string {
	if name == "" {
		return ""
	}
	_, size := utf8.DecodeRuneInString(name)
	return upperCaser.String(name[:size]) + lowerCaser.String(name[size:])
}

// Substitute replaces both tokens in content in a single left-to-right
// scan. When the project name itself contains a token, text that already
// reads as the name is copied unchanged, so a second run is a no-op.
func (t Tokens) Substitute(content, name string) string {
	lower, display := LowerName(name), DisplayName(name)

	rules := []struct{ from, to string }{
		{t.Product, lower},
		{t.Display, display},
	}
	if t.containsToken(lower) {
		rules = append(rules, struct{ from, to string }{lower, lower})
	}
	if t.containsToken(display) {
		rules = append(rules, struct{ from, to string }{display, display})
	}

	var b strings.Builder
	b.Grow(len(content))
	for i := 0; i < len(content); {
		from, to := "", ""
		for _, r := range rules {
			if r.from != "" && len(r.from) > len(from) && strings.HasPrefix(content[i:], r.from) {
				from, to = r.from, r.to
			}
		}
		if from == "" {
			b.WriteByte(content[i])
			i++
			continue
		}
		b.WriteString(to)
		i += len(from)
	}
	return b.String()
}

func (t Tokens) containsToken(s string) bool {
	return (t.Product != "" && strings.Contains(s, t.Product)) ||
		(t.Display != "" && strings.Contains(s, t.Display))
}
