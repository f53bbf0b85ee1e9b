package combat

import (
	"fmt"

	"github.com/osse101/KubeRPG_Go/internal/domain"
)

// Encounter is one grid battle between players and enemies. It owns its
// units for the duration of the fight and is not safe for concurrent use.
type Encounter struct {
	Cols  int
	Rows  int
	Units []*domain.CombatUnit
	Round int
	State domain.CombatState
}

// NewEncounter validates the grid and places units as given. Units keep their
// roster order, which decides turn order and target tie-breaks.
func NewEncounter(cols, rows int, units []*domain.CombatUnit) (*Encounter, error) {
	if cols < 1 || rows < 1 || cols*rows < 2 {
		return nil, fmt.Errorf("%w: %dx%d", domain.ErrInvalidGrid, cols, rows)
	}
	e := &Encounter{
		Cols:  cols,
		Rows:  rows,
		Units: units,
		State: domain.CombatRunning,
	}
	for _, u := range units {
		u.Pos = e.clamp(u.Pos)
	}
	return e, nil
}

// Advance plays exactly one round and returns its events in order.
// A terminal encounter is left untouched and yields no events.
func (e *Encounter) Advance() ([]domain.CombatEvent, domain.CombatState) {
	if e.State.Terminal() {
		return nil, e.State
	}

	e.Round++
	events := []domain.CombatEvent{{Kind: domain.CombatEventRound, Round: e.Round}}

	events = e.phase(domain.FactionPlayer, events)
	if !e.anyStanding(domain.FactionEnemy) {
		e.State = domain.CombatVictory
		return append(events, domain.CombatEvent{Kind: domain.CombatEventVictory, Round: e.Round}), e.State
	}

	events = e.phase(domain.FactionEnemy, events)
	if !e.anyStanding(domain.FactionPlayer) {
		e.State = domain.CombatDefeat
		return append(events, domain.CombatEvent{Kind: domain.CombatEventDefeat, Round: e.Round}), e.State
	}

	return events, e.State
}

// Run advances until the encounter ends or maxRounds rounds have been played
func (e *Encounter) Run(maxRounds int) ([]domain.CombatEvent, error) {
	if maxRounds <= 0 {
		maxRounds = DefaultMaxRounds
	}
	var all []domain.CombatEvent
	for i := 0; i < maxRounds && !e.State.Terminal(); i++ {
		events, _ := e.Advance()
		all = append(all, events...)
	}
	if !e.State.Terminal() {
		return all, fmt.Errorf("%w: %d rounds", domain.ErrRoundLimit, maxRounds)
	}
	return all, nil
}

// phase gives each unit of the faction a turn in roster order. The phase
// stops early once no opponent is left standing.
func (e *Encounter) phase(f domain.Faction, events []domain.CombatEvent) []domain.CombatEvent {
	for _, u := range e.Units {
		if u.Faction != f || u.Down() {
			continue
		}
		target := e.closestTarget(u)
		if target == nil {
			break
		}
		events = e.turn(u, target, events)
	}
	return events
}

func (e *Encounter) turn(u, target *domain.CombatUnit, events []domain.CombatEvent) []domain.CombatEvent {
	if u.Pos.Distance(target.Pos) > AttackRange {
		from := u.Pos
		u.Pos = e.stepToward(u.Pos, target.Pos)
		if u.Pos != from {
			to := u.Pos
			events = append(events, domain.CombatEvent{
				Kind:       domain.CombatEventMove,
				Round:      e.Round,
				ActorID:    u.ID,
				ActorLabel: u.Label(),
				From:       &from,
				To:         &to,
			})
		}
	}

	if u.Pos.Distance(target.Pos) <= AttackRange {
		dmg := AttackDamage(u.Damage, target.Defense)
		target.HP -= dmg
		events = append(events, domain.CombatEvent{
			Kind:          domain.CombatEventAttack,
			Round:         e.Round,
			ActorID:       u.ID,
			ActorLabel:    u.Label(),
			TargetID:      target.ID,
			TargetLabel:   target.Label(),
			Damage:        dmg,
			TargetHPAfter: target.DisplayHP(),
			TargetMaxHP:   target.MaxHP,
		})
	}
	return events
}

func (e *Encounter) anyStanding(f domain.Faction) bool {
	for _, u := range e.Units {
		if u.Faction == f && !u.Down() {
			return true
		}
	}
	return false
}

// Standing returns the living units of a faction in roster order
func (e *Encounter) Standing(f domain.Faction) []*domain.CombatUnit {
	var out []*domain.CombatUnit
	for _, u := range e.Units {
		if u.Faction == f && !u.Down() {
			out = append(out, u)
		}
	}
	return out
}

// Faction returns every unit of a faction, down or not, in roster order
func (e *Encounter) Faction(f domain.Faction) []*domain.CombatUnit {
	var out []*domain.CombatUnit
	for _, u := range e.Units {
		if u.Faction == f {
			out = append(out, u)
		}
	}
	return out
}

// Snapshot returns a render-ready copy of the grid
func (e *Encounter) Snapshot() domain.GridSnapshot {
	views := make([]domain.UnitView, 0, len(e.Units))
	for _, u := range e.Units {
		views = append(views, domain.UnitView{
			ID:      u.ID,
			Faction: u.Faction,
			X:       u.Pos.X,
			Y:       u.Pos.Y,
			HP:      u.DisplayHP(),
			MaxHP:   u.MaxHP,
			Label:   u.Label(),
		})
	}
	return domain.GridSnapshot{Cols: e.Cols, Rows: e.Rows, Round: e.Round, Units: views}
}

// PlaceEdge puts units on column at distinct rows, wrapping when there are
// more units than rows.
func PlaceEdge(units []*domain.CombatUnit, column, rows int) {
	if rows < 1 {
		rows = 1
	}
	for i, u := range units {
		u.Pos = domain.Position{X: column, Y: i % rows}
	}
}
