package knockback

import (
	"math"

	"github.com/oomph-ac/knockback/game"
)

// Strength is the horizontal and vertical magnitude of a strike in blocks per tick, before friction is
// applied.
type Strength struct {
	Horizontal, Vertical float64
}

// SprintHit returns true if the strike counts as a sprint hit: the attacker was sprinting, or stopped
// sprinting no longer than the profile's sprint buffer before the current tick.
func SprintHit(p Profile, req Request) bool {
	if req.Sprinting {
		return true
	}
	if p.SprintBuffer() <= 0 {
		return false
	}
	t, ok := req.Attacker.(SprintTracker)
	if !ok {
		return false
	}
	last := t.LastSprintTick()
	return last >= 0 && req.Tick >= last && req.Tick-last <= p.SprintBuffer()
}

// ResolveStrength returns the magnitudes of a strike. The steps are applied in order: base strength, sprint
// bonus, bonus level, strike type and blocking reduction, range reduction, airborne multipliers and
// finally the victim's resistance.
func ResolveStrength(p Profile, req Request, state VictimState, dir Direction, sprintHit bool) Strength {
	s := Strength{Horizontal: p.Horizontal(), Vertical: p.Vertical()}

	if sprintHit {
		s.Horizontal += p.SprintHorizontal()
		s.Vertical += p.SprintVertical()
	}
	if req.BonusLevel > 0 && !req.Strike.Ranged() {
		s.Horizontal += float64(req.BonusLevel) * game.BonusHorizontalPerLevel
		s.Vertical += game.BonusVertical
	}
	if req.Strike.Glancing() {
		s.Horizontal *= game.GlancingReduction
		s.Vertical *= game.GlancingReduction
	}
	if b, ok := req.Victim.(Blocker); ok && b.Blocking() {
		s.Horizontal *= game.BlockingReduction
		s.Vertical *= game.BlockingReduction
	}
	if dir.HasOrigin {
		s.Horizontal, s.Vertical = p.RangeReduction(sprintHit).Reduce(s.Horizontal, s.Vertical, dir.Distance)
	}
	if state.Airborne() {
		s.Horizontal *= p.AirHorizontal()
		s.Vertical *= p.AirVertical()
	}

	resistance := req.Victim.KnockbackResistance()
	if math.IsNaN(resistance) {
		resistance = 0
	}
	resistance = game.ClampFloat64(resistance, 0, 1)
	s.Horizontal *= 1 - resistance
	s.Vertical *= 1 - resistance
	return s
}
