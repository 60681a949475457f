//go:build !windows

package registry

// RegistryStore is unavailable off Windows; every lookup fails.
type RegistryStore struct{}

// NewRegistryStore creates a Store that reports ErrUnsupported.
func NewRegistryStore() *RegistryStore {
	return &RegistryStore{}
}

// ListChildren implements Store.
func (r *RegistryStore) ListChildren(path string) ([]string, error) {
	return nil, ErrUnsupported
}

// GetString implements Store.
func (r *RegistryStore) GetString(path, name string) (string, bool) {
	return "", false
}
