package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/osse101/KubeRPG_Go/internal/dungeon"
	"github.com/osse101/KubeRPG_Go/internal/loot"
	"github.com/osse101/KubeRPG_Go/internal/stats"
	"github.com/osse101/KubeRPG_Go/internal/validation"
)

//go:embed schemas/game_config.schema.json
var gameConfigSchema []byte

// GameConfigSchemaName identifies the embedded tuning schema
const GameConfigSchemaName = "game_config.schema.json"

// GameConfig holds the stat, loot and wave tunables
type GameConfig struct {
	Stats stats.Config         `json:"stats"`
	Loot  loot.Config          `json:"loot"`
	Waves dungeon.WaveSettings `json:"waves"`
}

// DefaultGameConfig returns the built-in tables
func DefaultGameConfig() GameConfig {
	d := dungeon.DefaultConfig()
	return GameConfig{Stats: d.Stats, Loot: d.Loot, Waves: d.Waves}
}

// DungeonConfig converts the tunables into an engine configuration
func (g GameConfig) DungeonConfig() dungeon.Config {
	return dungeon.Config{Waves: g.Waves, Stats: g.Stats, Loot: g.Loot}
}

// LoadGameConfig returns the defaults when path is empty. Otherwise the file is
// checked against the embedded schema and merged over the defaults, so a
// tuning file only needs the values it changes.
func LoadGameConfig(path string) (GameConfig, error) {
	cfg := DefaultGameConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("%s %s: %w", ErrMsgReadGameConfig, path, err)
	}
	return ParseGameConfig(data)
}

// ParseGameConfig validates and merges raw tuning JSON over the defaults
func ParseGameConfig(data []byte) (GameConfig, error) {
	cfg := DefaultGameConfig()

	if err := validation.NewSchemaValidator().Validate(data, GameConfigSchemaName, gameConfigSchema); err != nil {
		return cfg, fmt.Errorf("%s: %w", ErrMsgInvalidGameConfig, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", ErrMsgParseGameConfig, err)
	}
	if err := cfg.DungeonConfig().Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", ErrMsgInvalidGameConfig, err)
	}
	return cfg, nil
}
