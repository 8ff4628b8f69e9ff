package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all generator and viewer configuration
type Config struct {
	Generator GeneratorConfig `yaml:"generator"`
	Baking    BakingConfig    `yaml:"baking"`
	Viewer    ViewerConfig    `yaml:"viewer"`
}

// GeneratorConfig controls room layout generation
type GeneratorConfig struct {
	Seed          int64   `yaml:"seed"`
	HashCellSize  int     `yaml:"hash_cell_size"`  // Spatial index cell edge in world cells
	BaseRoomSize  int     `yaml:"base_room_size"`  // Starting width and height of a candidate room
	Growth        int     `yaml:"growth"`          // Exclusive upper bound of one growth trial
	BigRoomGrowth int     `yaml:"big_room_growth"` // Growth bound used for big rooms
	BigRoomChance float64 `yaml:"big_room_chance"`
	// Expand gives up after this many placement attempts per uncovered border cell
	ExpandAttemptFactor int     `yaml:"expand_attempt_factor"`
	LightStrength       float32 `yaml:"light_strength"`
	WallHeight          float32 `yaml:"wall_height"`
}

// BakingConfig controls lightmap baking and eviction
type BakingConfig struct {
	LightmapSize int     `yaml:"lightmap_size"` // Texels per lightmap edge
	EvictAfter   float64 `yaml:"evict_after"`   // Seconds untouched before baked lightmaps are released
	LightDepth   int     `yaml:"light_depth"`   // Neighbor hops whose lights contribute to a bake
}

// ViewerConfig controls the interactive viewer
type ViewerConfig struct {
	Mode           string  `yaml:"mode"`       // "map" or "walk"
	Depth          int     `yaml:"depth"`      // Neighbor hops generated around the viewpoint
	Debug          bool    `yaml:"debug"`      // Panic on invariant violations instead of logging them
	RoomCap        int     `yaml:"room_cap"`   // Auto-expand stops at this many rooms
	MaxLog         int     `yaml:"max_log"`    // Messages kept in the message log
	HumVolume      float64 `yaml:"hum_volume"` // 0 disables the ambient hum
	Ambience       string  `yaml:"ambience"`   // Optional .mp3 or .ogg track looped under the hum
	AmbienceVolume float64 `yaml:"ambience_volume"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML configuration and fills in defaults
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the generator cannot work with
func (c *Config) Validate() error {
	if c.Generator.BigRoomChance < 0 || c.Generator.BigRoomChance > 1 {
		return fmt.Errorf("generator.big_room_chance must be within [0, 1], got %v", c.Generator.BigRoomChance)
	}
	if c.Viewer.Mode != "map" && c.Viewer.Mode != "walk" {
		return fmt.Errorf("viewer.mode must be \"map\" or \"walk\", got %q", c.Viewer.Mode)
	}
	if c.Viewer.HumVolume < 0 || c.Viewer.HumVolume > 1 {
		return fmt.Errorf("viewer.hum_volume must be within [0, 1], got %v", c.Viewer.HumVolume)
	}
	if c.Viewer.AmbienceVolume > 1 {
		return fmt.Errorf("viewer.ambience_volume must be within [0, 1], got %v", c.Viewer.AmbienceVolume)
	}
	return nil
}

func (c *Config) applyDefaults() {
	g := &c.Generator
	if g.Seed == 0 {
		g.Seed = 2
	}
	if g.HashCellSize <= 0 {
		g.HashCellSize = 32
	}
	if g.BaseRoomSize <= 0 {
		g.BaseRoomSize = 10
	}
	if g.Growth <= 0 {
		g.Growth = 10
	}
	if g.BigRoomGrowth <= 0 {
		g.BigRoomGrowth = 30
	}
	if g.BigRoomChance == 0 {
		g.BigRoomChance = 0.01
	}
	if g.ExpandAttemptFactor <= 0 {
		g.ExpandAttemptFactor = 4
	}
	if g.LightStrength == 0 {
		g.LightStrength = 1.5
	}
	if g.WallHeight == 0 {
		g.WallHeight = 2.5
	}

	b := &c.Baking
	if b.LightmapSize <= 0 {
		b.LightmapSize = 64
	}
	if b.EvictAfter <= 0 {
		b.EvictAfter = 10
	}
	if b.LightDepth <= 0 {
		b.LightDepth = 2
	}

	v := &c.Viewer
	if v.Mode == "" {
		v.Mode = "walk"
	}
	if v.Depth <= 0 {
		v.Depth = 2
	}
	if v.RoomCap <= 0 {
		v.RoomCap = 1000000
	}
	if v.MaxLog <= 0 {
		v.MaxLog = 200
	}
	if v.AmbienceVolume <= 0 {
		v.AmbienceVolume = 0.5
	}
}
