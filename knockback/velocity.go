package knockback

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/knockback/game"
)

// Integrator combines a direction, a strength and the victim's current velocity into the final velocity.
type Integrator struct {
	// Scale converts blocks per tick into the velocity unit of the host: game.TicksPerSecond for hosts
	// storing blocks per second, 1 for hosts storing blocks per tick. A Scale of 0 or less is treated as
	// game.TicksPerSecond.
	Scale float64
}

// scale returns the conversion factor of the Integrator.
func (i Integrator) scale() float64 {
	if i.Scale <= 0 {
		return game.TicksPerSecond
	}
	return i.Scale
}

// Integrate returns the velocity the victim should have after the strike. With ApplySet the result
// replaces the velocity of the victim; with ApplyAdd the impulse is added onto the previous velocity and
// friction does not apply.
func (i Integrator) Integrate(p Profile, dir Direction, s Strength, previous mgl64.Vec3, state VictimState, sprintHit bool) mgl64.Vec3 {
	scale := i.scale()
	old := previous
	if state == VictimOnGround && old[1] < 0 {
		// Grounded entities keep a small downward velocity from gravity; it must not eat into the lift.
		old[1] = 0
	}

	var keptH, keptV float64
	if p.ApplyMode() == ApplySet {
		fh, fv := p.Friction(sprintHit)
		keptH, keptV = p.FrictionModel().retained(fh), p.FrictionModel().retained(fv)
	}

	h := s.Horizontal * dir.Scale * scale
	out := mgl64.Vec3{
		old[0]*keptH + dir.Vec[0]*h,
		0,
		old[2]*keptH + dir.Vec[2]*h,
	}
	if state == VictimFalling {
		out[1] = math.Max(s.Vertical*scale, p.FallingFloor())
	} else {
		out[1] = math.Min(old[1]*keptV+s.Vertical*scale, p.VerticalCap()*scale)
	}

	if p.ApplyMode() == ApplyAdd {
		return previous.Add(out)
	}
	return out
}
