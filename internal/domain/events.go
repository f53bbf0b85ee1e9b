package domain

// Event type constants used across the application for event bus subscriptions,
// stream fan-out and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "combat.attack")
const (
	// EventTypeAccountRegistered is published when a new account is created
	EventTypeAccountRegistered = "account.registered"

	// EventTypeItemEquipped is published when an item is equipped or unequipped
	EventTypeItemEquipped = "item.equipped"

	// EventTypeItemForged is published when the forge upgrades an item
	EventTypeItemForged = "item.forged"

	// EventTypeWaveStarted is published when a dungeon wave spawns
	EventTypeWaveStarted = "dungeon.wave_started"

	// EventTypeCombatRound is published at the start of every combat round
	EventTypeCombatRound = "combat.round"

	// EventTypeCombatMove is published when a unit steps toward its target
	EventTypeCombatMove = "combat.move"

	// EventTypeCombatAttack is published for every resolved attack
	EventTypeCombatAttack = "combat.attack"

	// EventTypeCombatSnapshot carries the grid after each round
	EventTypeCombatSnapshot = "combat.snapshot"

	// EventTypeWaveCompleted is published when a wave is won and rewards are settled
	EventTypeWaveCompleted = "dungeon.wave_completed"

	// EventTypeDungeonDefeat is published when the party is wiped out
	EventTypeDungeonDefeat = "dungeon.defeat"

	// EventTypeDungeonEnded is published when a run reaches a terminal state
	EventTypeDungeonEnded = "dungeon.ended"
)

// WaveStartedPayload describes a freshly spawned wave
type WaveStartedPayload struct {
	DungeonID string       `json:"dungeon_id"`
	Wave      int          `json:"wave"`
	Enemies   []UnitView   `json:"enemies"`
	Skipped   []string     `json:"skipped,omitempty"`
	Snapshot  GridSnapshot `json:"snapshot"`
}

// CombatEventPayload wraps a combat event with its run and wave
type CombatEventPayload struct {
	DungeonID string      `json:"dungeon_id"`
	Wave      int         `json:"wave"`
	Event     CombatEvent `json:"event"`
}

// SnapshotPayload wraps a grid snapshot with its run and wave
type SnapshotPayload struct {
	DungeonID string       `json:"dungeon_id"`
	Wave      int          `json:"wave"`
	Snapshot  GridSnapshot `json:"snapshot"`
}

// TerminalPayload is published when a wave ends. Rewards are set for victories.
type TerminalPayload struct {
	DungeonID string      `json:"dungeon_id"`
	Wave      int         `json:"wave"`
	Kind      CombatState `json:"kind"`
	Receiver  string      `json:"receiver,omitempty"`
	Rewards   []Item      `json:"rewards,omitempty"`
}

// DungeonEndedPayload is published once per run
type DungeonEndedPayload struct {
	DungeonID  string        `json:"dungeon_id"`
	Party      []string      `json:"party"`
	Status     DungeonStatus `json:"status"`
	WavesWon   int           `json:"waves_won"`
	TotalLoot  int           `json:"total_loot"`
	FinalRound int           `json:"final_round"`
}

// ItemForgedPayload describes a forge upgrade
type ItemForgedPayload struct {
	Pseudonym string `json:"pseudonym"`
	Item      Item   `json:"item"`
	OldPower  int    `json:"old_power"`
}
