package dungeon

import (
	"fmt"

	"github.com/osse101/KubeRPG_Go/internal/domain"
	"github.com/osse101/KubeRPG_Go/internal/loot"
	"github.com/osse101/KubeRPG_Go/internal/stats"
)

// WaveSettings holds the tunable wave and enemy parameters
type WaveSettings struct {
	Cols                  int `json:"cols"`
	Rows                  int `json:"rows"`
	MaxRounds             int `json:"max_rounds"`
	EnemyCountBase        int `json:"enemy_count_base"`
	EnemyCountSpread      int `json:"enemy_count_spread"`
	EnemyCountWaveDivisor int `json:"enemy_count_wave_divisor"`
	EnemyHPBase           int `json:"enemy_hp_base"`
	EnemyHPPerLevel       int `json:"enemy_hp_per_level"`
	EnemyDamageBase       int `json:"enemy_damage_base"`
	EnemyDamagePerLevel   int `json:"enemy_damage_per_level"`
	EnemyDefenseDivisor   int `json:"enemy_defense_divisor"`
	EnemyLevelSpread      int `json:"enemy_level_spread"`
}

// Config is everything an engine needs to run a dungeon
type Config struct {
	Waves WaveSettings `json:"waves"`
	Stats stats.Config `json:"stats"`
	Loot  loot.Config  `json:"loot"`
}

// DefaultWaveSettings returns the standard wave tables
func DefaultWaveSettings() WaveSettings {
	return WaveSettings{
		Cols:                  domain.DefaultGridCols,
		Rows:                  domain.DefaultGridRows,
		MaxRounds:             DefaultMaxRounds,
		EnemyCountBase:        EnemyCountBase,
		EnemyCountSpread:      EnemyCountSpread,
		EnemyCountWaveDivisor: EnemyCountWaveDivisor,
		EnemyHPBase:           EnemyHPBase,
		EnemyHPPerLevel:       EnemyHPPerLevel,
		EnemyDamageBase:       EnemyDamageBase,
		EnemyDamagePerLevel:   EnemyDamagePerLevel,
		EnemyDefenseDivisor:   EnemyDefenseDivisor,
		EnemyLevelSpread:      EnemyLevelSpread,
	}
}

// DefaultConfig returns the standard dungeon configuration
func DefaultConfig() Config {
	return Config{
		Waves: DefaultWaveSettings(),
		Stats: stats.DefaultConfig(),
		Loot:  loot.DefaultConfig(),
	}
}

// Validate checks the settings can drive an encounter
func (c Config) Validate() error {
	w := c.Waves
	if w.Cols < 1 || w.Rows < 1 || w.Cols*w.Rows < 2 {
		return fmt.Errorf("%w: grid %dx%d", domain.ErrInvalidGrid, w.Cols, w.Rows)
	}
	if w.MaxRounds <= 0 {
		return fmt.Errorf("%w: max_rounds must be positive", domain.ErrInvalidInput)
	}
	if w.EnemyCountBase < 1 {
		return fmt.Errorf("%w: enemy_count_base must be at least 1", domain.ErrInvalidInput)
	}
	if w.EnemyCountSpread < 0 {
		return fmt.Errorf("%w: enemy_count_spread must not be negative", domain.ErrInvalidInput)
	}
	if w.EnemyCountWaveDivisor <= 0 {
		return fmt.Errorf("%w: enemy_count_wave_divisor must be positive", domain.ErrInvalidInput)
	}
	if w.EnemyDefenseDivisor <= 0 {
		return fmt.Errorf("%w: enemy_defense_divisor must be positive", domain.ErrInvalidInput)
	}
	if w.EnemyLevelSpread <= 0 {
		return fmt.Errorf("%w: enemy_level_spread must be positive", domain.ErrInvalidInput)
	}
	if c.Loot.DoubleDropThreshold < c.Loot.SingleDropThreshold {
		return fmt.Errorf("%w: double_drop_threshold below single_drop_threshold", domain.ErrInvalidInput)
	}
	prev := 0.0
	for _, t := range c.Loot.RarityThresholds {
		if t.Below < prev || t.Below > 1 {
			return fmt.Errorf("%w: rarity thresholds must ascend within [0,1]", domain.ErrInvalidInput)
		}
		prev = t.Below
	}
	return nil
}
