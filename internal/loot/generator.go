package loot

import (
	"context"

	"github.com/osse101/KubeRPG_Go/internal/domain"
	"github.com/osse101/KubeRPG_Go/internal/logger"
	"github.com/osse101/KubeRPG_Go/internal/stats"
	"github.com/osse101/KubeRPG_Go/internal/utils"
)

// RarityThreshold maps a cumulative roll bound to a rarity
type RarityThreshold struct {
	Below  float64       `json:"below"`
	Rarity domain.Rarity `json:"rarity"`
}

// Config holds the drop tables
type Config struct {
	SingleDropThreshold float64           `json:"single_drop_threshold"`
	DoubleDropThreshold float64           `json:"double_drop_threshold"`
	RarityThresholds    []RarityThreshold `json:"rarity_thresholds"`
	PowerFactorMin      float64           `json:"power_factor_min"`
	PowerFactorSpread   float64           `json:"power_factor_spread"`
}

// DefaultConfig returns the standard drop tables
func DefaultConfig() Config {
	return Config{
		SingleDropThreshold: SingleDropThreshold,
		DoubleDropThreshold: DoubleDropThreshold,
		RarityThresholds:    DefaultRarityThresholds(),
		PowerFactorMin:      PowerFactorMin,
		PowerFactorSpread:   PowerFactorSpread,
	}
}

// DefaultRarityThresholds returns the ordered thresholds, most common first.
// Rolls at or above the last bound are Legendary.
func DefaultRarityThresholds() []RarityThreshold {
	return []RarityThreshold{
		{RarityCommonThreshold, domain.RarityCommon},
		{RarityRareThreshold, domain.RarityRare},
		{RarityEpicThreshold, domain.RarityEpic},
	}
}

// RarityScaler supplies the power multiplier of a rarity. *stats.Deriver
// implements it, so drops and equipped items share one table.
type RarityScaler interface {
	Multiplier(r domain.Rarity) float64
}

// Generator rolls item drops for defeated enemies.
// It is not safe for concurrent use unless its random source is.
type Generator struct {
	cfg   Config
	scale RarityScaler
	rng   utils.Random
}

// NewGenerator creates a generator drawing from rng. A nil scale uses the
// default rarity table.
func NewGenerator(cfg Config, scale RarityScaler, rng utils.Random) *Generator {
	if len(cfg.RarityThresholds) == 0 {
		cfg.RarityThresholds = DefaultRarityThresholds()
	}
	if scale == nil {
		scale = stats.NewDeriver(stats.DefaultConfig())
	}
	return &Generator{cfg: cfg, scale: scale, rng: rng}
}

// Roll generates the drops for the given enemies, in roster order. Each
// drop consumes three draws in a fixed order: rarity, type, power.
func (g *Generator) Roll(enemies []*domain.CombatUnit) []domain.Item {
	var drops []domain.Item
	for _, enemy := range enemies {
		if enemy == nil {
			continue
		}
		count := g.DropCount()
		for i := 0; i < count; i++ {
			drops = append(drops, g.Drop(enemy.Level))
		}
	}
	return drops
}

// RollWithLog is Roll plus a debug line on the request logger
func (g *Generator) RollWithLog(ctx context.Context, enemies []*domain.CombatUnit) []domain.Item {
	drops := g.Roll(enemies)
	logger.FromContext(ctx).Debug(LogMsgRolledLoot, LogFieldEnemies, len(enemies), LogFieldDrops, len(drops))
	return drops
}

// DropCount draws how many items a single enemy drops: 0, 1 or 2
func (g *Generator) DropCount() int {
	r := g.rng.Float64()
	switch {
	case r < g.cfg.SingleDropThreshold:
		return 1
	case r < g.cfg.DoubleDropThreshold:
		return 2
	default:
		return 0
	}
}

// Drop creates one item for an enemy of the given level
func (g *Generator) Drop(level int) domain.Item {
	if level <= 0 {
		level = 1
	}
	rarity := g.rollRarity(g.rng.Float64())
	itemType := domain.ItemTypes[g.rng.Intn(len(domain.ItemTypes))]
	u := g.rng.Float64()

	base := utils.CeilStat(float64(level) * (g.cfg.PowerFactorMin + g.cfg.PowerFactorSpread*u))
	power := utils.RoundStat(float64(base) * g.scale.Multiplier(rarity))
	if power < MinPower {
		power = MinPower
	}
	return domain.NewItem(itemType, rarity, power)
}

func (g *Generator) rollRarity(roll float64) domain.Rarity {
	for _, t := range g.cfg.RarityThresholds {
		if roll < t.Below {
			return t.Rarity
		}
	}
	return domain.RarityLegendary
}
