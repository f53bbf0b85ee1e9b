package combat

import "github.com/osse101/KubeRPG_Go/internal/domain"

// closestTarget returns the living opponent nearest to u by Manhattan
// distance. Ties go to the unit earliest in the roster. Nil when no opponent
// is standing.
func (e *Encounter) closestTarget(u *domain.CombatUnit) *domain.CombatUnit {
	want := u.Faction.Opponent()
	var best *domain.CombatUnit
	bestDist := 0
	for _, other := range e.Units {
		if other.Faction != want || other.Down() {
			continue
		}
		d := u.Pos.Distance(other.Pos)
		if best == nil || d < bestDist {
			best = other
			bestDist = d
		}
	}
	return best
}

// stepToward moves one tile toward target along a single axis, x first.
// The result is clamped inside the grid.
func (e *Encounter) stepToward(from, target domain.Position) domain.Position {
	next := from
	switch {
	case target.X != from.X:
		next.X += sign(target.X - from.X)
	case target.Y != from.Y:
		next.Y += sign(target.Y - from.Y)
	}
	return e.clamp(next)
}

func (e *Encounter) clamp(p domain.Position) domain.Position {
	p.X = clampInt(p.X, 0, e.Cols-1)
	p.Y = clampInt(p.Y, 0, e.Rows-1)
	return p
}

// AttackDamage is the damage dealt by an attacker with dmg against def
func AttackDamage(dmg, def int) int {
	if d := dmg - def; d > MinDamage {
		return d
	}
	return MinDamage
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
