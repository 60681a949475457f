// Package extension models the host IDE's extension manager: parsing VSIX
// packages and installing or uninstalling them inside a settings scope.
package extension

import (
	"errors"

	"github.com/adamancini/vsixinstaller/internal/types"
)

// ErrScopeClosed is returned by Scope methods called after Close.
var ErrScopeClosed = errors.New("extension scope is closed")

// Package describes an installable VSIX.
type Package struct {
	ID          string               `json:"id" yaml:"id"`
	Name        string               `json:"name" yaml:"name"`
	Version     string               `json:"version" yaml:"version"`
	Publisher   string               `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	Description string               `json:"description,omitempty" yaml:"description,omitempty"`
	Schema      types.ManifestSchema `json:"schema" yaml:"schema"`
	Path        string               `json:"path" yaml:"path"`
}

// Installed is a handle to an extension already present in a scope.
type Installed struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
	Dir     string `json:"dir,omitempty" yaml:"dir,omitempty"`
}

// Target addresses one extension store: an IDE executable plus an isolation
// root suffix. Version is the registry identifier the executable was resolved
// from; backends use it to locate the per-user store.
type Target struct {
	ExePath    string
	RootSuffix string
	Version    string
}

// Service is the host extension-management capability.
type Service interface {
	// ParsePackage reads the package at path.
	ParsePackage(path string) (*Package, error)
	// OpenScope acquires the settings scope for target. The caller must
	// Close the returned Scope.
	OpenScope(target Target) (Scope, error)
}

// Scope is an open settings scope. It is released by Close.
type Scope interface {
	// FindInstalled looks up an installed extension by identifier.
	FindInstalled(id string) (*Installed, bool, error)
	// Uninstall removes an installed extension.
	Uninstall(ext *Installed) error
	// Install installs pkg, machine-wide when perMachine is set.
	Install(pkg *Package, perMachine bool) error
	// Close releases the scope. It is safe to call more than once.
	Close() error
}
