package config

import (
	"os"
	"testing"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		content  string
		expected Format
	}{
		{"yaml extension", "config.yaml", "", FormatYAML},
		{"yml extension", "config.yml", "", FormatYAML},
		{"toml extension", "config.toml", "", FormatTOML},
		{"json extension", "config.json", "", FormatJSON},
		{"json content", "config", `{"default_version": "15.0"}`, FormatJSON},
		{"yaml content", "config", `default_version: "15.0"`, FormatYAML},
		{"toml content", "config", `default_version = "15.0"`, FormatTOML},
		{"toml table content", "config", "[installations]\n\"15.0\" = 'C:/VS/devenv.exe'", FormatTOML},
		{"unknown content", "config", `just words`, FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectFormat(tt.path, []byte(tt.content))
			if got != tt.expected {
				t.Errorf("detectFormat() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_VAR", "test_value")
	t.Setenv("EMPTY_VAR", "")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple var", "${TEST_VAR}", "test_value"},
		{"var with default", "${MISSING_VAR:-default_value}", "default_value"},
		{"existing var ignores default", "${TEST_VAR:-default_value}", "test_value"},
		{"empty var uses default", "${EMPTY_VAR:-default_value}", "default_value"},
		{"no var", "plain text", "plain text"},
		{"mixed content", "prefix ${TEST_VAR} suffix", "prefix test_value suffix"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(expandEnvVars([]byte(tt.input)))
			if got != tt.expected {
				t.Errorf("expandEnvVars() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestParseYAML(t *testing.T) {
	content := []byte(`
default_version: "15.0"
registry_namespace: SOFTWARE\Microsoft\VisualStudio
lock_dir: /tmp/locks
installations:
  "15.0": C:/VS2017/Common7/IDE/devenv.exe
  "16.0":
    path: C:/VS2019/Common7/IDE/devenv.exe
`)

	cfg, err := parse(content, FormatYAML)
	if err != nil {
		t.Fatalf("parse() error = %v", err)
	}

	if cfg.DefaultVersion != "15.0" {
		t.Errorf("DefaultVersion = %q, want 15.0", cfg.DefaultVersion)
	}
	if cfg.RegistryNamespace != `SOFTWARE\Microsoft\VisualStudio` {
		t.Errorf("RegistryNamespace = %q", cfg.RegistryNamespace)
	}
	if cfg.LockDir != "/tmp/locks" {
		t.Errorf("LockDir = %q, want /tmp/locks", cfg.LockDir)
	}

	if len(cfg.Installations) != 2 {
		t.Fatalf("Installations count = %d, want 2", len(cfg.Installations))
	}
	if got := cfg.Installations["15.0"]; got != "C:/VS2017/Common7/IDE/devenv.exe" {
		t.Errorf("Installations[15.0] = %q", got)
	}
	if got := cfg.Installations["16.0"]; got != "C:/VS2019/Common7/IDE/devenv.exe" {
		t.Errorf("Installations[16.0] = %q", got)
	}
}

func TestParseTOML(t *testing.T) {
	content := []byte(`
default_version = "16.0"

[installations]
"15.0" = 'C:\VS2017\Common7\IDE\devenv.exe'

[installations."16.0"]
path = 'C:\VS2019\Common7\IDE\devenv.exe'
`)

	cfg, err := parse(content, FormatTOML)
	if err != nil {
		t.Fatalf("parse() error = %v", err)
	}

	if cfg.DefaultVersion != "16.0" {
		t.Errorf("DefaultVersion = %q, want 16.0", cfg.DefaultVersion)
	}
	if got := cfg.Installations["15.0"]; got != `C:\VS2017\Common7\IDE\devenv.exe` {
		t.Errorf("Installations[15.0] = %q", got)
	}
	if got := cfg.Installations["16.0"]; got != `C:\VS2019\Common7\IDE\devenv.exe` {
		t.Errorf("Installations[16.0] = %q", got)
	}
}

func TestParseJSON(t *testing.T) {
	content := []byte(`{
  "default_version": "14.0",
  "log_file": "/tmp/vsixinstaller.log",
  "installations": {
    "14.0": "C:/VS2015/Common7/IDE/devenv.exe"
  }
}`)

	cfg, err := parse(content, FormatJSON)
	if err != nil {
		t.Fatalf("parse() error = %v", err)
	}

	if cfg.LogFile != "/tmp/vsixinstaller.log" {
		t.Errorf("LogFile = %q", cfg.LogFile)
	}
	if len(cfg.Installations) != 1 {
		t.Errorf("Installations count = %d, want 1", len(cfg.Installations))
	}
}

func TestParseInvalidInstallation(t *testing.T) {
	content := []byte(`{"installations": {"15.0": 42}}`)

	if _, err := parse(content, FormatJSON); err == nil {
		t.Error("parse() should reject a numeric installation entry")
	}

	content = []byte(`{"installations": {"15.0": {"dir": "C:/VS"}}}`)
	if _, err := parse(content, FormatJSON); err == nil {
		t.Error("parse() should reject an installation object without path")
	}
}

func TestParseEnvVarExpansion(t *testing.T) {
	t.Setenv("VS_HOME", "D:/Tools/VS")

	content := []byte(`
installations:
  "17.0": ${VS_HOME}/Common7/IDE/devenv.exe
  "16.0": ${MISSING_VS:-C:/VS}/Common7/IDE/devenv.exe
`)

	cfg, err := parse(content, FormatYAML)
	if err != nil {
		t.Fatalf("parse() error = %v", err)
	}

	if got := cfg.Installations["17.0"]; got != "D:/Tools/VS/Common7/IDE/devenv.exe" {
		t.Errorf("Installations[17.0] = %q", got)
	}
	if got := cfg.Installations["16.0"]; got != "C:/VS/Common7/IDE/devenv.exe" {
		t.Errorf("Installations[16.0] = %q", got)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := t.TempDir() + "/config.yaml"
	if err := os.WriteFile(path, []byte("lock_dir: /tmp/locks\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DefaultVersion != "14.0" {
		t.Errorf("DefaultVersion = %q, want 14.0", cfg.DefaultVersion)
	}
	if cfg.RegistryNamespace != `SOFTWARE\Microsoft\VisualStudio` {
		t.Errorf("RegistryNamespace = %q", cfg.RegistryNamespace)
	}
}

func TestResolveWithoutConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", home+"/.config")
	t.Setenv(EnvConfigPath, "")

	cfg, path, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if path != "" {
		t.Errorf("path = %q, want empty", path)
	}
	if cfg.DefaultVersion != "14.0" {
		t.Errorf("DefaultVersion = %q, want 14.0", cfg.DefaultVersion)
	}
}

func TestResolveExplicitMissing(t *testing.T) {
	if _, _, err := Resolve("/nonexistent/vsixinstaller.yaml"); err == nil {
		t.Error("Resolve() should fail for a missing explicit path")
	}
}
