// Package config handles vsixinstaller configuration file parsing and location resolution.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format represents the file format of a config file.
type Format int

const (
	FormatUnknown Format = iota
	FormatYAML
	FormatTOML
	FormatJSON
)

// detectFormat determines the file format based on extension or content.
func detectFormat(path string, content []byte) Format {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	case ".json":
		return FormatJSON
	}

	// Content sniffing for extensionless files
	return sniffFormat(content)
}

// sniffFormat attempts to detect format from content.
func sniffFormat(content []byte) Format {
	trimmed := strings.TrimSpace(string(content))

	// Config files are objects, so JSON starts with {. A leading [ is a TOML table.
	if strings.HasPrefix(trimmed, "{") {
		return FormatJSON
	}

	// TOML typically has [sections] or key = value with = sign
	// YAML uses key: value with : sign
	// Check for TOML indicators first
	if strings.Contains(trimmed, " = ") || strings.HasPrefix(trimmed, "[") {
		// Verify it's valid TOML by checking for = on non-comment lines
		lines := strings.Split(trimmed, "\n")
		for _, line := range lines {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			if strings.Contains(line, " = ") || strings.HasPrefix(line, "[") {
				return FormatTOML
			}
			// If we see : without =, it's likely YAML
			if strings.Contains(line, ":") && !strings.Contains(line, "=") {
				return FormatYAML
			}
		}
	}

	// Default to YAML if we see colons
	if strings.Contains(trimmed, ":") {
		return FormatYAML
	}

	return FormatUnknown
}

// rawConfig is an intermediate representation for parsing.
// It handles the flexible installation format (string or struct).
type rawConfig struct {
	DefaultVersion    string                 `yaml:"default_version" toml:"default_version" json:"default_version"`
	RegistryNamespace string                 `yaml:"registry_namespace" toml:"registry_namespace" json:"registry_namespace"`
	LockDir           string                 `yaml:"lock_dir" toml:"lock_dir" json:"lock_dir"`
	ExtensionsRoot    string                 `yaml:"extensions_root" toml:"extensions_root" json:"extensions_root"`
	LogFile           string                 `yaml:"log_file" toml:"log_file" json:"log_file"`
	Installations     map[string]interface{} `yaml:"installations" toml:"installations" json:"installations"`
}

// parseInstallations converts the flexible installation format to a
// version -> executable path map. Entries can be specified as:
//   - Simple string: "15.0": 'C:\VS\Common7\IDE\devenv.exe'
//   - Struct with a path field: "15.0": {path: '...'}
func parseInstallations(raw map[string]interface{}) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	installs := make(map[string]string, len(raw))
	for version, item := range raw {
		switch v := item.(type) {
		case string:
			installs[version] = v

		case map[string]interface{}:
			path, ok := v["path"].(string)
			if !ok {
				return nil, fmt.Errorf("installations.%s: missing or invalid 'path' field", version)
			}
			installs[version] = path

		default:
			return nil, fmt.Errorf("installations.%s: invalid format (expected string or object)", version)
		}
	}

	return installs, nil
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns in content.
func expandEnvVars(content []byte) []byte {
	return envVarPattern.ReplaceAllFunc(content, func(match []byte) []byte {
		parts := envVarPattern.FindSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		value := os.Getenv(string(parts[1]))
		if value == "" && len(parts) >= 3 && len(parts[2]) > 0 {
			value = string(parts[2])
		}

		return []byte(value)
	})
}

// parse parses the content according to the specified format.
func parse(content []byte, format Format) (*Config, error) {
	content = expandEnvVars(content)

	var raw rawConfig

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(content, &raw); err != nil {
			return nil, fmt.Errorf("YAML parse error: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(content, &raw); err != nil {
			return nil, fmt.Errorf("TOML parse error: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(content, &raw); err != nil {
			return nil, fmt.Errorf("JSON parse error: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown file format")
	}

	installs, err := parseInstallations(raw.Installations)
	if err != nil {
		return nil, err
	}

	return &Config{
		DefaultVersion:    strings.TrimSpace(raw.DefaultVersion),
		RegistryNamespace: strings.TrimSpace(raw.RegistryNamespace),
		LockDir:           raw.LockDir,
		ExtensionsRoot:    raw.ExtensionsRoot,
		LogFile:           raw.LogFile,
		Installations:     installs,
	}, nil
}
