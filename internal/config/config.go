package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/selimhehe1/pattamap/internal/grid"
)

type zoneEntry struct {
	Name string `json:"name"`
	Rows int    `json:"rows"`
	Cols int    `json:"cols"`
}

type rawConfig struct {
	Server *struct {
		Address string `json:"address"`
	} `json:"server"`
	// Optional extra rectangular zones beyond the built-in map areas.
	// Entries without rows/cols default to a single 24-cell strip.
	ZoneList []zoneEntry `json:"zone_list"`
	// AtomicExchange toggles the store's multi-row swap procedure. When
	// disabled every swap goes through the sequential fallback protocol.
	AtomicExchange *bool `json:"atomic_exchange"`
}

// LoadedConfig contains the zone table and the server address to bind to.
type LoadedConfig struct {
	Zones          grid.ZoneTable
	ServerAddress  string
	AtomicExchange bool
}

// Default returns the configuration used when no config file is present:
// built-in zones only, atomic exchange enabled.
func Default() *LoadedConfig {
	return &LoadedConfig{
		Zones:          grid.DefaultZones(),
		ServerAddress:  ":8080",
		AtomicExchange: true,
	}
}

// LoadConfig reads the configuration file at path. Extra zones from
// `zone_list` are added to the built-in zone table; built-in zone names are
// reserved and may not be redefined.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg := Default()
	if rc.Server != nil && rc.Server.Address != "" {
		cfg.ServerAddress = rc.Server.Address
	}
	if rc.AtomicExchange != nil {
		cfg.AtomicExchange = *rc.AtomicExchange
	}

	for _, z := range rc.ZoneList {
		name := strings.ToLower(strings.TrimSpace(z.Name))
		if name == "" {
			return nil, fmt.Errorf("config file %s: zone entry missing 'name'", path)
		}
		if _, exists := grid.DefaultZones()[name]; exists {
			return nil, fmt.Errorf("config file %s: zone name '%s' is reserved", path, name)
		}
		if _, exists := cfg.Zones[name]; exists {
			return nil, fmt.Errorf("config file %s: duplicate zone name '%s'", path, name)
		}
		if z.Rows < 0 || z.Cols < 0 {
			return nil, fmt.Errorf("config file %s: zone '%s' has negative dimensions", path, name)
		}
		rows, cols := z.Rows, z.Cols
		if rows == 0 {
			rows = grid.DefaultZoneRows
		}
		if cols == 0 {
			cols = grid.DefaultZoneCols
		}
		cfg.Zones[name] = grid.ZoneShape{Name: name, Rows: rows, Cols: cols}
	}

	return cfg, nil
}
