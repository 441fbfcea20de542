// internal/config/error.go
package config

import (
	"fmt"
	"strings"
)

// ConfigError collects every problem found while loading one config file so
// the user sees the full list in a single pass.
type ConfigError struct {
	Path    string   // config file path
	Missing []string // unresolved environment variables
	Errors  []string // validation errors
}

func (e *ConfigError) Error() string {
	if !e.HasErrors() {
		return ""
	}

	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing environment variables: %s", strings.Join(e.Missing, ", ")))
	}
	if len(e.Errors) > 0 {
		parts = append(parts, "validation failed:")
		for _, err := range e.Errors {
			parts = append(parts, "  - "+err)
		}
	}
	return strings.Join(parts, "\n")
}

// HasErrors reports whether any problem was recorded.
func (e *ConfigError) HasErrors() bool {
	return len(e.Missing) > 0 || len(e.Errors) > 0
}
