package config

import (
	"os"
	"path/filepath"
	"testing"
)

// chdir changes the working directory for the duration of the test,
// matching the behavior of t.Chdir (added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultServer != "nanomeet-eu.nanocosmos.de" {
		t.Errorf("default_server = %q", cfg.DefaultServer)
	}
	if cfg.APIURL != "https://bintu.nanocosmos.de" {
		t.Errorf("api_url = %q", cfg.APIURL)
	}
	if cfg.IngestURL != "rtmp://bintu-vtrans.nanocosmos.de" {
		t.Errorf("ingest_url = %q", cfg.IngestURL)
	}
	if cfg.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Port)
	}
	if cfg.APIKey != "" {
		t.Errorf("api_key = %q, want unset by default", cfg.APIKey)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	if err := os.MkdirAll(filepath.Join(dir, "config"), 0o755); err != nil {
		t.Fatal(err)
	}
	yaml := []byte("api_url: https://bintu.test.example.com\napi_key: key-1\nport: 9999\n")
	if err := os.WriteFile(filepath.Join(dir, "config", "config.dev.yaml"), yaml, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIURL != "https://bintu.test.example.com" {
		t.Errorf("api_url = %q, want file override", cfg.APIURL)
	}
	if cfg.APIKey != "key-1" {
		t.Errorf("api_key = %q", cfg.APIKey)
	}
	if cfg.Port != 9999 {
		t.Errorf("port = %d, want 9999", cfg.Port)
	}
	// Untouched keys keep their defaults.
	if cfg.DefaultServer != "nanomeet-eu.nanocosmos.de" {
		t.Errorf("default_server = %q", cfg.DefaultServer)
	}
}
