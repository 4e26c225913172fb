package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pattamap_config.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServerAddress != ":8080" {
		t.Errorf("expected default address, got %s", cfg.ServerAddress)
	}
	if !cfg.AtomicExchange {
		t.Errorf("atomic exchange should default to enabled")
	}
	if !cfg.Zones.Known("soi6") || !cfg.Zones.Known("walkingstreet") || !cfg.Zones.Known("lkmetro") {
		t.Errorf("built-in zones missing from table")
	}
}

func TestLoadConfigExtraZone(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{"zone_list":[{"name":"Beach Road"},{"name":"treetown","rows":3,"cols":10}]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Unlisted dimensions default to a 1x24 strip.
	if !cfg.Zones.Contains("beach road", 1, 24) || cfg.Zones.Contains("beach road", 2, 1) {
		t.Errorf("extra zone should default to 1x24")
	}
	if !cfg.Zones.Contains("treetown", 3, 10) || cfg.Zones.Contains("treetown", 4, 1) {
		t.Errorf("explicit dimensions not honored")
	}
}

func TestLoadConfigRejectsReservedAndDuplicate(t *testing.T) {
	if _, err := LoadConfig(writeConfig(t, `{"zone_list":[{"name":"soi6"}]}`)); err == nil {
		t.Fatalf("expected error for reserved zone name")
	}
	if _, err := LoadConfig(writeConfig(t, `{"zone_list":[{"name":"x"},{"name":"x"}]}`)); err == nil {
		t.Fatalf("expected error for duplicate zone name")
	}
	if _, err := LoadConfig(writeConfig(t, `{"zone_list":[{"name":""}]}`)); err == nil {
		t.Fatalf("expected error for empty zone name")
	}
}

func TestLoadConfigAtomicExchangeToggle(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{"atomic_exchange":false,"server":{"address":":9090"}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AtomicExchange {
		t.Errorf("atomic exchange should be disabled")
	}
	if cfg.ServerAddress != ":9090" {
		t.Errorf("server address override not honored")
	}
}
