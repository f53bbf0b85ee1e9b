package loot

// ============================================================================
// Drop Count
// ============================================================================

// SingleDropThreshold is the roll below which an enemy drops exactly one item (70%).
const SingleDropThreshold = 0.70

// DoubleDropThreshold is the roll below which an enemy drops two items.
// Rolls in [SingleDropThreshold, DoubleDropThreshold) give two drops (9%),
// anything above drops nothing (21%).
const DoubleDropThreshold = 0.79

// ============================================================================
// Rarity Thresholds
// ============================================================================

// Cumulative upper bounds for each rarity. A roll below the bound selects the tier.
const (
	RarityCommonThreshold = 0.60
	RarityRareThreshold   = 0.85
	RarityEpicThreshold   = 0.97
)

// ============================================================================
// Power Roll
// ============================================================================

// Base power is ceil(level * (PowerFactorMin + u*PowerFactorSpread)), u in [0,1)
const (
	PowerFactorMin    = 2.0
	PowerFactorSpread = 3.0
)

// MinPower is the floor applied after the rarity multiplier
const MinPower = 1

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgRolledLoot = "Rolled loot"
)

// Log field keys for structured logging
const (
	LogFieldEnemies = "enemies"
	LogFieldDrops   = "drops"
)
