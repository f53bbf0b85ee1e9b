package domain

// Faction is the side a combat unit fights for
type Faction string

const (
	FactionPlayer Faction = "player"
	FactionEnemy  Faction = "enemy"
)

// Opponent returns the faction this one attacks
func (f Faction) Opponent() Faction {
	if f == FactionPlayer {
		return FactionEnemy
	}
	return FactionPlayer
}

// Position is a tile coordinate on the encounter grid
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Distance returns the Manhattan distance between two tiles
func (p Position) Distance(o Position) int {
	return abs(p.X-o.X) + abs(p.Y-o.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// CombatUnit is an encounter-scoped fighter. Units at or below zero hp are
// down but stay in the roster so turn order and targeting remain stable.
type CombatUnit struct {
	ID      string   `json:"id"`
	Faction Faction  `json:"faction"`
	Pos     Position `json:"pos"`
	HP      int      `json:"hp"`
	MaxHP   int      `json:"max_hp"`
	Damage  int      `json:"damage"`
	Defense int      `json:"defense"`

	// Players only
	Account string `json:"account,omitempty"`

	// Enemies only
	Name  string `json:"name,omitempty"`
	Level int    `json:"level,omitempty"`
}

// Down reports whether the unit is out of the fight
func (u *CombatUnit) Down() bool {
	return u.HP <= 0
}

// Label is the name shown to players: the pseudonym for players, the
// display name for enemies.
func (u *CombatUnit) Label() string {
	if u.Faction == FactionPlayer && u.Account != "" {
		return u.Account
	}
	if u.Name != "" {
		return u.Name
	}
	return u.ID
}

// DisplayHP floors hp at zero for reporting
func (u *CombatUnit) DisplayHP() int {
	if u.HP < 0 {
		return 0
	}
	return u.HP
}

// CombatState is the lifecycle state of an encounter
type CombatState string

const (
	CombatRunning CombatState = "running"
	CombatVictory CombatState = "victory"
	CombatDefeat  CombatState = "defeat"
)

// Terminal reports whether no further rounds can be played
func (s CombatState) Terminal() bool {
	return s == CombatVictory || s == CombatDefeat
}

// CombatEventKind discriminates combat events
type CombatEventKind string

const (
	CombatEventRound   CombatEventKind = "round"
	CombatEventMove    CombatEventKind = "move"
	CombatEventAttack  CombatEventKind = "attack"
	CombatEventVictory CombatEventKind = "victory"
	CombatEventDefeat  CombatEventKind = "defeat"
)

// CombatEvent is one observable step of an encounter. Fields not relevant to
// the kind are left zero. The hp and damage figures are always encoded so a
// killing blow still reports target_hp_after 0.
type CombatEvent struct {
	Kind          CombatEventKind `json:"kind"`
	Round         int             `json:"round"`
	ActorID       string          `json:"actor_id,omitempty"`
	ActorLabel    string          `json:"actor_label,omitempty"`
	TargetID      string          `json:"target_id,omitempty"`
	TargetLabel   string          `json:"target_label,omitempty"`
	Damage        int             `json:"damage"`
	TargetHPAfter int             `json:"target_hp_after"`
	TargetMaxHP   int             `json:"target_max_hp"`
	From          *Position       `json:"from,omitempty"`
	To            *Position       `json:"to,omitempty"`
}

// UnitView is the render-ready view of a combat unit
type UnitView struct {
	ID      string  `json:"id"`
	Faction Faction `json:"faction"`
	X       int     `json:"x"`
	Y       int     `json:"y"`
	HP      int     `json:"hp"`
	MaxHP   int     `json:"max_hp"`
	Label   string  `json:"label"`
}

// GridSnapshot captures the grid for rendering
type GridSnapshot struct {
	Cols  int        `json:"cols"`
	Rows  int        `json:"rows"`
	Round int        `json:"round"`
	Units []UnitView `json:"units"`
}
