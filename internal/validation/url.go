package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var scpLikeRepository = regexp.MustCompile(`^[A-Za-z0-9_.-]+@[A-Za-z0-9.-]+:[A-Za-z0-9_./~-]+$`)

// ValidateRepositoryURL validates the template repository location.
// Values end up as git arguments, so shell metacharacters are rejected.
func ValidateRepositoryURL(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return fmt.Errorf("repository URL must not be empty")
	}

	dangerous := []string{";", "&", "|", "`", "$", "(", ")", "<", ">", "\"", "'", "\\", "\n", "\r", " "}
	for _, char := range dangerous {
		if strings.Contains(rawURL, char) {
			return fmt.Errorf("repository URL contains dangerous character: %q", char)
		}
	}

	// git@github.com:org/repo.git
	if scpLikeRepository.MatchString(rawURL) {
		return nil
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid repository URL: %w", err)
	}

	switch parsed.Scheme {
	case "https", "ssh", "git":
	case "file":
		if parsed.Path == "" {
			return fmt.Errorf("file repository URL must have a path")
		}
		return nil
	default:
		return fmt.Errorf("invalid repository URL scheme: %q (allowed: https, ssh, git, file)", parsed.Scheme)
	}

	if parsed.Host == "" {
		return fmt.Errorf("repository URL must have a valid hostname")
	}

	return nil
}
