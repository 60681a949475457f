//go:build windows

package registry

import (
	"fmt"

	winreg "golang.org/x/sys/windows/registry"
)

// RegistryStore reads HKEY_LOCAL_MACHINE through the 32-bit view, where
// Visual Studio registers its versioned setup keys.
type RegistryStore struct {
	root   winreg.Key
	access uint32
}

// NewRegistryStore creates a Store over HKLM.
func NewRegistryStore() *RegistryStore {
	return &RegistryStore{
		root:   winreg.LOCAL_MACHINE,
		access: winreg.WOW64_32KEY,
	}
}

// ListChildren implements Store.
func (r *RegistryStore) ListChildren(path string) ([]string, error) {
	k, err := winreg.OpenKey(r.root, path, winreg.ENUMERATE_SUB_KEYS|r.access)
	if err != nil {
		return nil, fmt.Errorf("failed to open HKLM\\%s: %w", path, err)
	}
	defer k.Close()

	names, err := k.ReadSubKeyNames(0)
	if err != nil {
		return nil, fmt.Errorf("failed to read subkeys of HKLM\\%s: %w", path, err)
	}
	return names, nil
}

// GetString implements Store.
func (r *RegistryStore) GetString(path, name string) (string, bool) {
	k, err := winreg.OpenKey(r.root, path, winreg.QUERY_VALUE|r.access)
	if err != nil {
		return "", false
	}
	defer k.Close()

	v, _, err := k.GetStringValue(name)
	if err != nil {
		return "", false
	}
	return v, true
}
