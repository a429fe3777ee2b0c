package validation

import (
	"fmt"
	"strings"
)

var shellMetacharacters = []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\\", "\"", "'", "\n", "\r"}

// ValidateArgument rejects command line arguments containing shell
// metacharacters. Arguments are never passed through a shell, but they end
// up in logs and error output that users may copy and paste.
func ValidateArgument(arg string) error {
	for _, char := range shellMetacharacters {
		if strings.Contains(arg, char) {
			return fmt.Errorf("contains dangerous character: %q", char)
		}
	}

	return nil
}

// ValidateCommand validates a command name against an allowlist.
func ValidateCommand(command string, allowedCommands map[string]bool) error {
	if command == "" {
		return fmt.Errorf("command cannot be empty")
	}

	if !allowedCommands[command] {
		return fmt.Errorf("command '%s' is not allowed", command)
	}

	if strings.ContainsAny(command, `/\ `) {
		return fmt.Errorf("command '%s' must be a bare executable name", command)
	}

	if err := ValidateArgument(command); err != nil {
		return fmt.Errorf("invalid command '%s': %w", command, err)
	}

	return nil
}
