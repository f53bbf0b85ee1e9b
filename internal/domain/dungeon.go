package domain

// DungeonStatus is the lifecycle of a dungeon run
type DungeonStatus string

const (
	// DungeonFighting means a wave encounter is in progress
	DungeonFighting DungeonStatus = "fighting"
	// DungeonAwaitingDecision means a wave was won and the party must choose to continue or leave
	DungeonAwaitingDecision DungeonStatus = "awaiting_decision"
	// DungeonCompleted means the party left after a victory
	DungeonCompleted DungeonStatus = "completed"
	// DungeonFailed means the party was wiped out
	DungeonFailed DungeonStatus = "failed"
)

// Terminal reports whether the run has ended
func (s DungeonStatus) Terminal() bool {
	return s == DungeonCompleted || s == DungeonFailed
}

// WaveCompleted is returned when a wave ends in victory and the run is
// suspended waiting for a continue decision.
type WaveCompleted struct {
	Wave      int    `json:"wave"`
	Receiver  string `json:"receiver"`
	Rewards   []Item `json:"rewards"`
	Delivered bool   `json:"delivered"`
}

// DungeonSummary reports the state of a run to callers
type DungeonSummary struct {
	ID        string         `json:"id"`
	Party     []string       `json:"party"`
	Wave      int            `json:"wave"`
	Status    DungeonStatus  `json:"status"`
	Combat    CombatState    `json:"combat"`
	Snapshot  *GridSnapshot  `json:"snapshot,omitempty"`
	LastWave  *WaveCompleted `json:"last_wave,omitempty"`
	Skipped   []string       `json:"skipped,omitempty"`
	TotalLoot int            `json:"total_loot"`
}
