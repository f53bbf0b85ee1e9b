package stats

import "github.com/osse101/KubeRPG_Go/internal/domain"

// ============================================================================
// Base Player Stats
// ============================================================================

// BaseHP is the hit points of a level 1 player with no gear
const BaseHP = 30

// BaseDamage is the damage of a level 1 player with no gear
const BaseDamage = 4

// BaseDefense is the defense of a level 1 player with no gear
const BaseDefense = 0

// ============================================================================
// Level Scaling
// ============================================================================

// Per-level multiplicative growth, applied as 1 + (level-1)*coefficient
const (
	HPPerLevel      = 0.08
	DamagePerLevel  = 0.06
	DefensePerLevel = 0.04
)

// ============================================================================
// Rarity Multipliers
// ============================================================================

const (
	MultCommon    = 1.0
	MultRare      = 1.4
	MultEpic      = 2.0
	MultLegendary = 3.0
)

// DefaultRarityMultipliers maps each rarity to the scalar applied to item power
func DefaultRarityMultipliers() map[domain.Rarity]float64 {
	return map[domain.Rarity]float64{
		domain.RarityCommon:    MultCommon,
		domain.RarityRare:      MultRare,
		domain.RarityEpic:      MultEpic,
		domain.RarityLegendary: MultLegendary,
	}
}
