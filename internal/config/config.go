// Package config handles vsixinstaller configuration file parsing and location resolution.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adamancini/vsixinstaller/internal/types"
)

// EnvConfigPath names the environment variable that points at a config file.
const EnvConfigPath = "VSIXINSTALLER_CONFIG"

// ErrNotFound is returned by FindConfig when no config file exists in any
// standard location. Configuration is optional, so callers usually fall back
// to Default.
var ErrNotFound = errors.New("no vsixinstaller config found in standard locations")

// Config holds settings that override the built-in defaults.
type Config struct {
	// DefaultVersion is used by the --vsix form when --version is omitted.
	DefaultVersion string `yaml:"default_version,omitempty" toml:"default_version,omitempty" json:"default_version,omitempty"`
	// RegistryNamespace is the HKLM key enumerated for installed versions.
	RegistryNamespace string `yaml:"registry_namespace,omitempty" toml:"registry_namespace,omitempty" json:"registry_namespace,omitempty"`
	// LockDir holds the per-scope lock files.
	LockDir string `yaml:"lock_dir,omitempty" toml:"lock_dir,omitempty" json:"lock_dir,omitempty"`
	// ExtensionsRoot overrides %LOCALAPPDATA%\Microsoft\VisualStudio.
	ExtensionsRoot string `yaml:"extensions_root,omitempty" toml:"extensions_root,omitempty" json:"extensions_root,omitempty"`
	// LogFile overrides the rotated log location.
	LogFile string `yaml:"log_file,omitempty" toml:"log_file,omitempty" json:"log_file,omitempty"`
	// Installations maps version identifiers to devenv.exe paths. When set,
	// the registry is not consulted.
	Installations map[string]string `yaml:"installations,omitempty" toml:"installations,omitempty" json:"installations,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		DefaultVersion:    types.DefaultVSVersion,
		RegistryNamespace: types.RegistryNamespace,
	}
}

// DefaultPath returns the location init writes to: the first standard
// search location.
func DefaultPath() (string, error) {
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine home directory: %w", err)
		}
		xdgConfig = filepath.Join(home, ".config")
	}
	return filepath.Join(xdgConfig, "vsixinstaller", "config.yaml"), nil
}

// FindConfig searches for a config file in the standard locations.
// Returns ErrNotFound if none exists.
func FindConfig(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("specified config not found: %s", explicitPath)
		}
		return explicitPath, nil
	}

	if envPath := os.Getenv(EnvConfigPath); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}

	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}

	searchPaths := []string{
		filepath.Join(xdgConfig, "vsixinstaller"),
		filepath.Join(home, ".vsixinstaller"),
	}
	fileNames := []string{
		"config.yaml",
		"config.yml",
		"config.toml",
		"config.json",
	}

	for _, dir := range searchPaths {
		for _, name := range fileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
	}

	return "", ErrNotFound
}

// Load reads and parses a config file, filling unset fields from Default.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	format := detectFormat(path, content)
	if format == FormatUnknown {
		return nil, fmt.Errorf("unable to detect file format for %s", path)
	}

	cfg, err := parse(content, format)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Resolve finds and loads the config, returning Default when none exists.
func Resolve(explicitPath string) (*Config, string, error) {
	path, err := FindConfig(explicitPath)
	if errors.Is(err, ErrNotFound) {
		return Default(), "", nil
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.DefaultVersion == "" {
		c.DefaultVersion = def.DefaultVersion
	}
	if c.RegistryNamespace == "" {
		c.RegistryNamespace = def.RegistryNamespace
	}
}
