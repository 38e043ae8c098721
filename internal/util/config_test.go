package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfiguration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lute.toml")
	content := `
log_level = "debug"
log_file = "/tmp/lute.log"
lib_path = "/opt/lute/lib:/usr/share/lute"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfiguration(path)
	if err != nil {
		t.Fatal(err)
	}
	if config.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", config.LogLevel)
	}
	if config.LogFile != "/tmp/lute.log" {
		t.Errorf("LogFile = %q, want /tmp/lute.log", config.LogFile)
	}
	if config.LibPath != "/opt/lute/lib:/usr/share/lute" {
		t.Errorf("LibPath = %q", config.LibPath)
	}
}

func TestLoadConfigurationMissingFile(t *testing.T) {
	config, err := LoadConfiguration(filepath.Join(t.TempDir(), "lute.toml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if config.LogLevel != "error" {
		t.Errorf("default LogLevel = %q, want error", config.LogLevel)
	}
}

func TestLoadConfigurationInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lute.toml")
	if err := os.WriteFile(path, []byte("log_level = [broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfiguration(path); err == nil {
		t.Error("invalid toml should error")
	}
}
