package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.App.Name != "LedgerLite" {
		t.Errorf("app name = %q, want LedgerLite", cfg.App.Name)
	}
	if cfg.Storage.Path != "data/transactions.json" {
		t.Errorf("storage path = %q, want data/transactions.json", cfg.Storage.Path)
	}
	if cfg.Server.Port != 8181 {
		t.Errorf("server port = %d, want 8181", cfg.Server.Port)
	}
	if !cfg.App.IsDevelopment() {
		t.Errorf("default environment should be development, got %q", cfg.App.Environment)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("STORAGE_PATH", "/tmp/ledger.json")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Storage.Path != "/tmp/ledger.json" {
		t.Errorf("storage path = %q, want /tmp/ledger.json", cfg.Storage.Path)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("server port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Logger.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Logger.Level)
	}
}

func TestGetAddress(t *testing.T) {
	cfg := ServerConfig{Host: "127.0.0.1", Port: 8181}
	if got := cfg.GetAddress(); got != "127.0.0.1:8181" {
		t.Errorf("GetAddress() = %q, want 127.0.0.1:8181", got)
	}
}
