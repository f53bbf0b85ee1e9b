package dungeon

// ============================================================================
// Enemy Scaling
// ============================================================================

// Enemy stats at level L: hp = EnemyHPBase + EnemyHPPerLevel*L,
// damage = EnemyDamageBase + EnemyDamagePerLevel*L, defense = L / EnemyDefenseDivisor
const (
	EnemyHPBase         = 10
	EnemyHPPerLevel     = 5
	EnemyDamageBase     = 2
	EnemyDamagePerLevel = 2
	EnemyDefenseDivisor = 2
)

// EnemyLevelSpread is the number of levels an enemy can roll above the wave number
const EnemyLevelSpread = 2

// Enemies per wave n: EnemyCountBase + uniform [0, EnemyCountSpread + n/EnemyCountWaveDivisor]
const (
	EnemyCountBase        = 1
	EnemyCountSpread      = 1
	EnemyCountWaveDivisor = 2
)

// EnemyNameFormat renders an enemy display name from its level
const EnemyNameFormat = "Skeleton L%d"

// ============================================================================
// Pacing
// ============================================================================

// DefaultMaxRounds bounds a single wave; reaching it fails the wave
const DefaultMaxRounds = 500

// ============================================================================
// Unit IDs
// ============================================================================

const (
	PlayerUnitPrefix = "player-"
	EnemyUnitFormat  = "w%d-e%d"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgDungeonStarted       = "Dungeon started"
	LogMsgWaveSpawned          = "Wave spawned"
	LogMsgAccountSkipped       = "Party member could not be loaded, skipping"
	LogMsgWaveWon              = "Wave won"
	LogMsgWaveLost             = "Wave lost"
	LogMsgRewardTransferFailed = "Failed to transfer wave rewards"
	LogMsgStageUpdateFailed    = "Failed to record dungeon stage"
	LogMsgDungeonLeft          = "Party left the dungeon"
	LogMsgAutoAdvanceFailed    = "Auto advance failed"
	LogMsgNotifyFailed         = "Failed to send dungeon notification"
)

// Log field keys for structured logging
const (
	LogFieldEventType = "event_type"
	LogFieldWave      = "wave"
	LogFieldEnemies   = "enemies"
	LogFieldPlayers   = "players"
	LogFieldPseudonym = "pseudonym"
	LogFieldReceiver  = "receiver"
	LogFieldRewards   = "rewards"
	LogFieldRound     = "round"
	LogFieldStatus    = "status"
	LogFieldError     = "error"
)
