package errors

import "fmt"

// CloneFailureSuggestions lists remediation hints for a failed template clone.
func CloneFailureSuggestions(repository, dir string) []string {
	return []string{
		"Check if the repository exists: " + repository,
		"Check your internet connection",
		fmt.Sprintf("Check if the target directory already exists: %s", dir),
	}
}

// MissingToolSuggestions lists remediation hints for a missing prerequisite.
func MissingToolSuggestions(tool string) []string {
	switch tool {
	case "node", "npm":
		return []string{
			"Install Node.js (which ships npm) from https://nodejs.org",
			"Make sure the installation directory is on your PATH",
		}
	case "git":
		return []string{
			"Install git from https://git-scm.com/downloads",
			"Make sure the installation directory is on your PATH",
		}
	default:
		return []string{fmt.Sprintf("Install %s and make sure it is on your PATH", tool)}
	}
}

// InstallFailureSuggestions lists remediation hints for a failed npm run.
func InstallFailureSuggestions(dir string) []string {
	return []string{
		"Check your connection to the npm registry",
		fmt.Sprintf("Run 'npm install' manually in %s to see the full output", dir),
	}
}
