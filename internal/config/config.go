// Package config loads the server's YAML tuning file into the structs
// each subsystem needs: dungeon generation, the chunk cache, the HTTP
// server, and the tablet store.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/przecze/rooms-of-roaming/internal/dungeon"
)

// Config is the top-level tuning document.
type Config struct {
	Dungeon DungeonTuning `yaml:"dungeon"`
	Cache   CacheTuning   `yaml:"cache"`
	HTTP    HTTPTuning    `yaml:"http"`
	Tablets TabletTuning  `yaml:"tablets"`
}

// DungeonTuning mirrors dungeon.Config, field for field, as YAML so
// operators can retune generation without a rebuild.
type DungeonTuning struct {
	WorldSeed         uint64  `yaml:"world_seed"`
	ChunkSize         int     `yaml:"chunk_size"`
	RoomsMin          int     `yaml:"rooms_min"`
	RoomsMax          int     `yaml:"rooms_max"`
	RoomWidthMin      int     `yaml:"room_width_min"`
	RoomWidthMax      int     `yaml:"room_width_max"`
	RoomHeightMin     int     `yaml:"room_height_min"`
	RoomHeightMax     int     `yaml:"room_height_max"`
	OpeningsMin       int     `yaml:"openings_min"`
	OpeningsMax       int     `yaml:"openings_max"`
	PlacementAttempts int     `yaml:"placement_attempts"`
	TabletProb        float64 `yaml:"tablet_prob"`
	TabletsMax        int     `yaml:"tablets_max"`
}

// CacheTuning configures the chunk cache (§5).
type CacheTuning struct {
	Capacity int `yaml:"capacity"`
}

// HTTPTuning configures the HTTP server (§6).
type HTTPTuning struct {
	ListenAddr      string `yaml:"listen_addr"`
	MaxCoordinate   int64  `yaml:"max_coordinate"`
	EnableDebugWS   bool   `yaml:"enable_debug_ws"`
}

// TabletTuning configures the tablet store (§6.2).
type TabletTuning struct {
	DatabasePath string `yaml:"database_path"`
}

// Default returns the tuning baked into the binary, used when no file is
// supplied and as the base that the fields a loaded file omits fall back
// to. A field the file sets explicitly, even to zero, replaces the default.
func Default() Config {
	dc := dungeon.DefaultConfig()
	return Config{
		Dungeon: DungeonTuning{
			WorldSeed:         dc.WorldSeed,
			ChunkSize:         dc.ChunkSize,
			RoomsMin:          dc.RoomsMin,
			RoomsMax:          dc.RoomsMax,
			RoomWidthMin:      dc.RoomWidthMin,
			RoomWidthMax:      dc.RoomWidthMax,
			RoomHeightMin:     dc.RoomHeightMin,
			RoomHeightMax:     dc.RoomHeightMax,
			OpeningsMin:       dc.OpeningsMin,
			OpeningsMax:       dc.OpeningsMax,
			PlacementAttempts: dc.PlacementAttempts,
			TabletProb:        dc.TabletProb,
			TabletsMax:        dc.TabletsMax,
		},
		Cache: CacheTuning{Capacity: 512},
		HTTP: HTTPTuning{
			ListenAddr:    ":8080",
			MaxCoordinate: 1_000_000,
			EnableDebugWS: true,
		},
		Tablets: TabletTuning{DatabasePath: "tablets.db"},
	}
}

// Load reads and parses a YAML tuning file at path, layering it over
// Default() so an operator only needs to specify the fields they want to
// change.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// DungeonConfig converts the tuning document's dungeon section into a
// dungeon.Config, ready for Validate.
func (c Config) DungeonConfig() dungeon.Config {
	d := c.Dungeon
	return dungeon.Config{
		WorldSeed:         d.WorldSeed,
		ChunkSize:         d.ChunkSize,
		RoomsMin:          d.RoomsMin,
		RoomsMax:          d.RoomsMax,
		RoomWidthMin:      d.RoomWidthMin,
		RoomWidthMax:      d.RoomWidthMax,
		RoomHeightMin:     d.RoomHeightMin,
		RoomHeightMax:     d.RoomHeightMax,
		OpeningsMin:       d.OpeningsMin,
		OpeningsMax:       d.OpeningsMax,
		PlacementAttempts: d.PlacementAttempts,
		TabletProb:        d.TabletProb,
		TabletsMax:        d.TabletsMax,
	}
}
