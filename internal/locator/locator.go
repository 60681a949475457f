// Package locator discovers installed Visual Studio versions and resolves
// their executable paths from the host configuration store.
package locator

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/adamancini/vsixinstaller/internal/registry"
	"github.com/adamancini/vsixinstaller/internal/types"
)

// ErrNoInstallations is matched by a NotFoundError raised when auto-detection
// finds nothing.
var ErrNoInstallations = errors.New("cannot find any installed copies of Visual Studio")

// NotFoundError reports a version that does not resolve to an installation.
type NotFoundError struct {
	// Requested is the version that failed to resolve; empty for auto-detection.
	Requested string
	// Detected lists the parseable versions found in the store.
	Detected []string
}

func (e *NotFoundError) Error() string {
	if e.Requested == "" {
		return ErrNoInstallations.Error()
	}
	if len(e.Detected) == 0 {
		return fmt.Sprintf("cannot find Visual Studio %s (no installed versions detected)", e.Requested)
	}
	return fmt.Sprintf("cannot find Visual Studio %s (detected versions: %s)",
		e.Requested, strings.Join(e.Detected, ", "))
}

// Is lets errors.Is match ErrNoInstallations for auto-detection failures.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNoInstallations && e.Requested == ""
}

// Installation is a resolved version and its devenv.exe path.
type Installation struct {
	Version string `json:"version" yaml:"version"`
	ExePath string `json:"exe_path,omitempty" yaml:"exe_path,omitempty"`
}

// Locator reads versioned installation keys from a registry.Store.
type Locator struct {
	store     registry.Store
	namespace string
	log       *slog.Logger
}

// New creates a Locator over store. An empty namespace selects the default
// SOFTWARE\Microsoft\VisualStudio key.
func New(store registry.Store, namespace string, log *slog.Logger) *Locator {
	if namespace == "" {
		namespace = types.RegistryNamespace
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Locator{store: store, namespace: namespace, log: log}
}

// Versions returns all child keys of the namespace that parse as decimal
// numbers, in ascending numeric order. Unparseable names are skipped.
func (l *Locator) Versions() ([]Version, error) {
	names, err := l.store.ListChildren(l.namespace)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate %s: %w", l.namespace, err)
	}

	versions := make([]Version, 0, len(names))
	for _, name := range names {
		v, ok := ParseVersion(name)
		if !ok {
			l.log.Debug("skipping non-version key", "key", name)
			continue
		}
		versions = append(versions, v)
	}

	sort.SliceStable(versions, func(i, j int) bool {
		return versions[i].Compare(versions[j]) < 0
	})
	return versions, nil
}

// Latest returns the numerically largest installed version.
func (l *Locator) Latest() (Version, error) {
	versions, err := l.Versions()
	if err != nil || len(versions) == 0 {
		// An unreadable namespace means nothing is installed.
		if err != nil {
			l.log.Debug("version enumeration failed", "error", err)
		}
		return Version{}, &NotFoundError{}
	}
	return versions[len(versions)-1], nil
}

// ExecutablePath returns the devenv.exe path registered for version.
func (l *Locator) ExecutablePath(version string) (string, bool) {
	path := registry.JoinPath(l.namespace, version, types.SetupSubKey)
	exe, ok := l.store.GetString(path, types.EnvironmentPathValue)
	if !ok || exe == "" {
		return "", false
	}
	return exe, true
}

// Resolve maps a version to an installation. An empty version selects the
// latest installed one. A purely numeric version such as "15" that does not
// resolve is retried once as "15.0".
func (l *Locator) Resolve(version string) (*Installation, error) {
	if version == "" {
		latest, err := l.Latest()
		if err != nil {
			return nil, err
		}
		version = latest.Name
		l.log.Debug("auto-detected version", "version", version)
	}

	if exe, ok := l.ExecutablePath(version); ok {
		return &Installation{Version: version, ExePath: exe}, nil
	}

	if isDigits(version) {
		retry := version + ".0"
		if exe, ok := l.ExecutablePath(retry); ok {
			l.log.Debug("resolved version with .0 suffix", "requested", version, "version", retry)
			return &Installation{Version: retry, ExePath: exe}, nil
		}
	}

	return nil, &NotFoundError{Requested: version, Detected: l.detectedNames()}
}

// Installations lists every parseable version with its executable path, if any.
func (l *Locator) Installations() ([]Installation, error) {
	versions, err := l.Versions()
	if err != nil {
		return nil, err
	}

	installs := make([]Installation, 0, len(versions))
	for _, v := range versions {
		exe, _ := l.ExecutablePath(v.Name)
		installs = append(installs, Installation{Version: v.Name, ExePath: exe})
	}
	return installs, nil
}

func (l *Locator) detectedNames() []string {
	versions, err := l.Versions()
	if err != nil {
		return nil
	}
	names := make([]string, len(versions))
	for i, v := range versions {
		names[i] = v.Name
	}
	return names
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
