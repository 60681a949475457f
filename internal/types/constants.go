// Package types provides type-safe constants shared across vsixinstaller.
//
// Registry locations, file names and enumerations used by more than one
// package live here so the locator, the extension backend and the CLI agree
// on the same spelling.
package types

import (
	"fmt"
)

// Registry layout used by Visual Studio 2010 through 2019 under HKLM.
const (
	// RegistryNamespace is the key whose children are installed version identifiers.
	RegistryNamespace = `SOFTWARE\Microsoft\VisualStudio`
	// SetupSubKey is appended to <namespace>\<version> to reach the setup values.
	SetupSubKey = `Setup\VS`
	// EnvironmentPathValue holds the full path to devenv.exe.
	EnvironmentPathValue = "EnvironmentPath"
)

// DefaultVSVersion is the baseline version used by the flag form when
// --version is not supplied.
const DefaultVSVersion = "14.0"

// File names understood by the extension backend.
const (
	// VSIXInstallerExe is the host's extension installer, shipped beside devenv.exe.
	VSIXInstallerExe = "VSIXInstaller.exe"
	// ManifestFileName is the manifest entry inside every VSIX package.
	ManifestFileName = "extension.vsixmanifest"
	// VSIXExtension is the expected package file extension.
	VSIXExtension = ".vsix"
)

// InstallScope represents who an extension is registered for.
type InstallScope string

const (
	// InstallScopeUser registers the extension for the invoking user only.
	InstallScopeUser InstallScope = "user"
	// InstallScopeMachine registers the extension for all users of the machine.
	InstallScopeMachine InstallScope = "machine"
)

// Validate checks if the InstallScope is a valid value.
func (s InstallScope) Validate() error {
	switch s {
	case InstallScopeUser, InstallScopeMachine:
		return nil
	case "":
		return fmt.Errorf("install scope is required")
	default:
		return fmt.Errorf("invalid install scope '%s' (must be user or machine)", s)
	}
}

// String returns the string representation of the InstallScope.
func (s InstallScope) String() string {
	return string(s)
}

// PerMachine reports whether the scope is machine-wide.
func (s InstallScope) PerMachine() bool {
	return s == InstallScopeMachine
}

// ManifestSchema identifies which extension.vsixmanifest dialect a package uses.
type ManifestSchema string

const (
	// ManifestSchemaV1 is the VS2010 <Vsix> manifest.
	ManifestSchemaV1 ManifestSchema = "1.0.0"
	// ManifestSchemaV2 is the VS2012+ <PackageManifest> manifest.
	ManifestSchemaV2 ManifestSchema = "2.0.0"
)

// String returns the string representation of the ManifestSchema.
func (m ManifestSchema) String() string {
	return string(m)
}
