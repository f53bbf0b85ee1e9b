package combat

// ============================================================================
// Combat Rules
// ============================================================================

// MinDamage is the least an attack can deal, however high the defense
const MinDamage = 1

// AttackRange is the Manhattan distance at which a unit can strike
const AttackRange = 1

// DefaultMaxRounds bounds Run for encounters that cannot resolve
const DefaultMaxRounds = 500

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgEncounterResolved = "Encounter resolved"
	LogMsgRoundLimitReached = "Encounter hit round limit"
)

// Log field keys for structured logging
const (
	LogFieldRound = "round"
	LogFieldState = "state"
	LogFieldUnits = "units"
)
