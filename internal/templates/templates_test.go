package templates

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/adamancini/vsixinstaller/internal/config"
)

func TestList(t *testing.T) {
	names := List()

	want := []string{"portable", "registry"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("List() = %v, want %v", names, want)
	}
}

func TestGet(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"registry", false},
		{"portable", false},
		{"nonexistent", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := Get(tt.name)

			if tt.wantErr {
				if err == nil {
					t.Errorf("Get(%s) expected error, got nil", tt.name)
				}
				return
			}

			if err != nil {
				t.Fatalf("Get(%s) unexpected error: %v", tt.name, err)
			}
			if tmpl.Name != tt.name {
				t.Errorf("Get(%s) name = %s, want %s", tt.name, tmpl.Name, tt.name)
			}
			if len(tmpl.Content) == 0 {
				t.Errorf("Get(%s) returned empty content", tt.name)
			}
		})
	}
}

func TestGetDescription(t *testing.T) {
	tests := []struct {
		name     string
		wantDesc string
	}{
		{"registry", "Read installed versions from the registry"},
		{"portable", "Declare installations explicitly"},
		{"unknown", "Custom template"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if desc := GetDescription(tt.name); desc != tt.wantDesc {
				t.Errorf("GetDescription(%s) = %q, want %q", tt.name, desc, tt.wantDesc)
			}
		})
	}
}

func TestDefaultTemplateExists(t *testing.T) {
	if _, err := Get(DefaultTemplate); err != nil {
		t.Errorf("default template %q missing: %v", DefaultTemplate, err)
	}
}

// Every template must load as a valid config.
func TestTemplateContentValidity(t *testing.T) {
	t.Setenv("LOCALAPPDATA", "")

	for _, name := range List() {
		t.Run(name, func(t *testing.T) {
			tmpl, err := Get(name)
			if err != nil {
				t.Fatalf("Get(%s) error: %v", name, err)
			}

			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, tmpl.Content, 0644); err != nil {
				t.Fatalf("failed to write template: %v", err)
			}

			cfg, err := config.Load(path)
			if err != nil {
				t.Fatalf("template %s does not load: %v", name, err)
			}
			if cfg.DefaultVersion == "" {
				t.Errorf("template %s has no default_version", name)
			}
		})
	}
}

func TestPortableTemplateDeclaresInstallations(t *testing.T) {
	t.Setenv("LOCALAPPDATA", "")

	tmpl, err := Get("portable")
	if err != nil {
		t.Fatalf("Get(portable) error: %v", err)
	}
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, tmpl.Content, 0644); err != nil {
		t.Fatalf("failed to write template: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if _, ok := cfg.Installations[cfg.DefaultVersion]; !ok {
		t.Errorf("default_version %s is not declared in installations", cfg.DefaultVersion)
	}
	if cfg.ExtensionsRoot != `C:\Users\Default\AppData\Local\Microsoft\VisualStudio` {
		t.Errorf("ExtensionsRoot = %q", cfg.ExtensionsRoot)
	}
}
