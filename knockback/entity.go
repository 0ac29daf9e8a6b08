package knockback

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// Entity is anything with a position in the world, such as an attacker or a projectile.
type Entity interface {
	Position() mgl64.Vec3
}

// Directional is an Entity with a look direction.
type Directional interface {
	Entity
	Rotation() cube.Rotation
}

// Victim is an entity that can receive knockback.
type Victim interface {
	Entity
	// Velocity returns the current velocity of the victim.
	Velocity() mgl64.Vec3
	// SetVelocity replaces the velocity of the victim.
	SetVelocity(v mgl64.Vec3)
	// OnGround returns true if the victim is standing on the ground.
	OnGround() bool
	// KnockbackResistance returns the fraction of knockback the victim resists, within [0, 1].
	KnockbackResistance() float64
}

// Sprinter is an attacker that can sprint.
type Sprinter interface {
	Sprinting() bool
	StopSprinting()
}

// SprintTracker is an attacker that remembers the last tick it was sprinting on. It is used to grant sprint
// hits shortly after the attacker stopped sprinting.
type SprintTracker interface {
	LastSprintTick() int64
}

// Living is an entity that may be dead.
type Living interface {
	Dead() bool
}

// Blocker is a victim that may be blocking the strike.
type Blocker interface {
	Blocking() bool
}

// Notifier is notified after the velocity of a victim was changed, for example to send the new velocity to
// remote viewers.
type Notifier interface {
	NotifyVelocity(victim Victim, velocity mgl64.Vec3)
}

// Tracer receives a trace of every strike resolved.
type Tracer interface {
	TraceKnockback(req Request, res Result)
}

// NopNotifier is a Notifier that does nothing.
type NopNotifier struct{}

func (NopNotifier) NotifyVelocity(Victim, mgl64.Vec3) {}

// NopTracer is a Tracer that does nothing.
type NopTracer struct{}

func (NopTracer) TraceKnockback(Request, Result) {}

// live returns true if the entity is not dead.
func live(e any) bool {
	if l, ok := e.(Living); ok {
		return !l.Dead()
	}
	return true
}
