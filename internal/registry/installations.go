package registry

import (
	"github.com/adamancini/vsixinstaller/internal/types"
)

// FromInstallations builds a MemoryStore laid out the way Visual Studio
// registers itself, from a version -> devenv.exe path map.
func FromInstallations(namespace string, installs map[string]string) *MemoryStore {
	m := NewMemoryStore()
	m.CreateKey(namespace)
	for version, exe := range installs {
		m.Set(JoinPath(namespace, version, types.SetupSubKey), types.EnvironmentPathValue, exe)
	}
	return m
}
