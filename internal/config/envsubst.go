package config

import (
	"os"
	"regexp"
	"strings"
)

// envVarPattern matches ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// substituteEnvVars replaces ${VAR} references with environment variable
// values. ${VAR:-default} falls back to the default when VAR is unset or
// empty; ${VAR:?message} records the message as a missing-variable error.
// Plain ${VAR} references that resolve to nothing are left in place and
// reported as missing.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	result := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		expr := match[2 : len(match)-1] // strip ${ and }

		if name, def, ok := strings.Cut(expr, ":-"); ok {
			if value := os.Getenv(name); value != "" {
				return value
			}
			return def
		}

		if name, message, ok := strings.Cut(expr, ":?"); ok {
			if value := os.Getenv(name); value != "" {
				return value
			}
			missing = append(missing, name+": "+strings.TrimSpace(message))
			return match
		}

		if value := os.Getenv(expr); value != "" {
			return value
		}
		missing = append(missing, expr)
		return match
	})
	return result, missing
}
