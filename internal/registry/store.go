// Package registry provides read-only access to the host configuration store
// that Visual Studio installations register themselves in.
package registry

import (
	"errors"
	"sort"
	"strings"
)

// ErrUnsupported is returned when the host has no Windows registry.
var ErrUnsupported = errors.New("windows registry is not available on this platform")

// Store enumerates keys and reads string values from a hierarchical store.
// Paths use backslash separators and are relative to the store's root.
type Store interface {
	// ListChildren returns the names of the direct subkeys of path.
	ListChildren(path string) ([]string, error)
	// GetString returns the named string value under path. Any lookup
	// failure is reported as absent.
	GetString(path, name string) (string, bool)
}

// JoinPath joins registry path segments with backslashes, ignoring empty segments.
func JoinPath(parts ...string) string {
	clean := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(p, `\`)
		if p != "" {
			clean = append(clean, p)
		}
	}
	return strings.Join(clean, `\`)
}

// MemoryStore is an in-memory Store. Key paths are case-insensitive, like
// the Windows registry.
type MemoryStore struct {
	keys map[string]*memoryKey
}

type memoryKey struct {
	name   string
	values map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{keys: make(map[string]*memoryKey)}
}

// Set stores a string value, creating the key and its parents as needed.
func (m *MemoryStore) Set(path, name, value string) {
	k := m.ensure(path)
	k.values[strings.ToLower(name)] = value
}

// CreateKey creates an empty key and its parents.
func (m *MemoryStore) CreateKey(path string) {
	m.ensure(path)
}

func (m *MemoryStore) ensure(path string) *memoryKey {
	path = JoinPath(path)
	parts := strings.Split(path, `\`)
	var k *memoryKey
	for i := range parts {
		sub := strings.Join(parts[:i+1], `\`)
		id := strings.ToLower(sub)
		existing, ok := m.keys[id]
		if !ok {
			existing = &memoryKey{name: sub, values: make(map[string]string)}
			m.keys[id] = existing
		}
		k = existing
	}
	return k
}

// ListChildren implements Store.
func (m *MemoryStore) ListChildren(path string) ([]string, error) {
	id := strings.ToLower(JoinPath(path))
	if _, ok := m.keys[id]; !ok {
		return nil, errors.New("key not found: " + path)
	}

	prefix := id + `\`
	var children []string
	for kid, k := range m.keys {
		if !strings.HasPrefix(kid, prefix) {
			continue
		}
		rest := kid[len(prefix):]
		if strings.Contains(rest, `\`) {
			continue
		}
		children = append(children, k.name[len(prefix):])
	}
	sort.Strings(children)
	return children, nil
}

// GetString implements Store.
func (m *MemoryStore) GetString(path, name string) (string, bool) {
	k, ok := m.keys[strings.ToLower(JoinPath(path))]
	if !ok {
		return "", false
	}
	v, ok := k.values[strings.ToLower(name)]
	return v, ok
}
