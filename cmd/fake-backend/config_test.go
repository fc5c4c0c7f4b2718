package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadAppConfigDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fake.yaml")
	if err := os.WriteFile(path, []byte("jobs:\n  stepsToComplete: 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadAppConfig(path)
	if err != nil {
		t.Fatalf("loadAppConfig() error = %v", err)
	}
	if cfg.Server.Addr != defaultHTTPAddr {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	if cfg.Jobs.StepsToComplete != 4 {
		t.Errorf("StepsToComplete = %d", cfg.Jobs.StepsToComplete)
	}
	if cfg.Jobs.StatusTTL != defaultStatusTTL {
		t.Errorf("StatusTTL = %v", cfg.Jobs.StatusTTL)
	}
	if cfg.Redis.Addr != "" {
		t.Errorf("redis addr should stay empty for the embedded redis, got %q", cfg.Redis.Addr)
	}
	if cfg.Redis.DialTimeout != 5*time.Second {
		t.Errorf("DialTimeout = %v", cfg.Redis.DialTimeout)
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	if _, err := loadAppConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
