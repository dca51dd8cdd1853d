package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestServerConfigNormalizedDefaults(t *testing.T) {
	cfg := serverConfig{}.normalized()
	if cfg.ListenAddr != defaultListenAddr {
		t.Fatalf("listen addr = %q", cfg.ListenAddr)
	}
	if cfg.TickRate != defaultTickRate {
		t.Fatalf("tick rate = %d", cfg.TickRate)
	}
	if len(cfg.LogSinks) != 1 || cfg.LogSinks[0] != "console" {
		t.Fatalf("log sinks = %v", cfg.LogSinks)
	}
}

func TestServerConfigNormalizedKeepsExplicitValues(t *testing.T) {
	cfg := serverConfig{
		ListenAddr: "  :9999  ",
		TickRate:   30,
		LogSinks:   []string{"json"},
	}.normalized()
	if cfg.ListenAddr != ":9999" {
		t.Fatalf("listen addr = %q", cfg.ListenAddr)
	}
	if cfg.TickRate != 30 {
		t.Fatalf("tick rate = %d", cfg.TickRate)
	}
	if len(cfg.LogSinks) != 1 || cfg.LogSinks[0] != "json" {
		t.Fatalf("log sinks = %v", cfg.LogSinks)
	}
}

func TestLoadServerConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	payload := `{"listenAddr":":7070","tickRate":5,"stationPath":"station.json"}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := loadServerConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ListenAddr != ":7070" || cfg.TickRate != 5 || cfg.StationPath != "station.json" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if len(cfg.LogSinks) == 0 {
		t.Fatalf("defaults not applied on load")
	}
}

func TestLoadServerConfigMissingFile(t *testing.T) {
	if _, err := loadServerConfig(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatalf("expected error for missing config")
	}
}
