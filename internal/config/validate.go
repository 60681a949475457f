// Package config handles vsixinstaller configuration file parsing and location resolution.
//
// Validated rules:
//   - default_version: digits with an optional .digits part
//   - registry_namespace: relative HKLM key without leading or trailing separators
//   - installations: version keys follow the default_version rule, paths are non-empty
package config

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// versionPattern matches identifiers such as "14", "14.0" and "16.0".
var versionPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

// ValidationError represents a config validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the config for well-formed values.
func Validate(c *Config) error {
	var errors []string

	if c.DefaultVersion != "" && !versionPattern.MatchString(c.DefaultVersion) {
		errors = append(errors, ValidationError{
			Field:   "default_version",
			Message: fmt.Sprintf("invalid version '%s' (expected e.g. 14.0)", c.DefaultVersion),
		}.Error())
	}

	if err := validateNamespace(c.RegistryNamespace); err != nil {
		errors = append(errors, err.Error())
	}

	// Sorted so the message is stable across runs.
	versions := make([]string, 0, len(c.Installations))
	for v := range c.Installations {
		versions = append(versions, v)
	}
	sort.Strings(versions)
	for _, v := range versions {
		if err := validateInstallation(v, c.Installations[v]); err != nil {
			errors = append(errors, err.Error())
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

func validateNamespace(ns string) error {
	if ns == "" {
		return nil
	}
	if strings.HasPrefix(ns, `\`) || strings.HasSuffix(ns, `\`) {
		return ValidationError{
			Field:   "registry_namespace",
			Message: fmt.Sprintf("'%s' must not start or end with a backslash", ns),
		}
	}
	return nil
}

func validateInstallation(version, path string) error {
	if !versionPattern.MatchString(version) {
		return ValidationError{
			Field:   "installations",
			Message: fmt.Sprintf("invalid version key '%s' (expected e.g. 15.0)", version),
		}
	}
	if strings.TrimSpace(path) == "" {
		return ValidationError{
			Field:   fmt.Sprintf("installations.%s", version),
			Message: "executable path is required",
		}
	}
	return nil
}
