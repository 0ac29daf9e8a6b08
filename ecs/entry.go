package ecs

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/knockback/knockback"
	"github.com/yohamta/donburi"
)

// Entry exposes a donburi entry to the knockback package. It reads and writes the Transform, Motion and
// Combatant components; the methods of a component the entry does not have return zero values and
// writes to it are dropped.
type Entry struct {
	e *donburi.Entry
}

// Wrap returns the Entry of a donburi entry.
func Wrap(e *donburi.Entry) Entry {
	return Entry{e: e}
}

// Donburi returns the wrapped donburi entry.
func (e Entry) Donburi() *donburi.Entry {
	return e.e
}

func (e Entry) Position() mgl64.Vec3 {
	if !e.e.HasComponent(Transform) {
		return mgl64.Vec3{}
	}
	return Transform.Get(e.e).Position
}

func (e Entry) Rotation() cube.Rotation {
	if !e.e.HasComponent(Transform) {
		return cube.Rotation{}
	}
	return Transform.Get(e.e).Rotation
}

func (e Entry) Velocity() mgl64.Vec3 {
	if !e.e.HasComponent(Motion) {
		return mgl64.Vec3{}
	}
	return Motion.Get(e.e).Velocity
}

func (e Entry) SetVelocity(v mgl64.Vec3) {
	if e.e.HasComponent(Motion) {
		Motion.Get(e.e).Velocity = v
	}
}

// OnGround returns true if the entry is on the ground. Entries without a Motion component are always on
// the ground.
func (e Entry) OnGround() bool {
	if !e.e.HasComponent(Motion) {
		return true
	}
	return Motion.Get(e.e).OnGround
}

func (e Entry) KnockbackResistance() float64 {
	if c, ok := e.combatant(); ok {
		return c.Resistance
	}
	return 0
}

func (e Entry) Sprinting() bool {
	c, ok := e.combatant()
	return ok && c.Sprinting
}

func (e Entry) StopSprinting() {
	if c, ok := e.combatant(); ok {
		c.Sprinting = false
	}
}

func (e Entry) LastSprintTick() int64 {
	if c, ok := e.combatant(); ok {
		return c.LastSprintTick
	}
	return -1
}

// Dead returns true if the entry was removed from its world or its Combatant component is marked dead.
func (e Entry) Dead() bool {
	if !e.e.Valid() {
		return true
	}
	c, ok := e.combatant()
	return ok && c.Dead
}

func (e Entry) Blocking() bool {
	c, ok := e.combatant()
	return ok && c.Blocking
}

func (e Entry) OverrideLayer() (knockback.OverrideLayer, bool) {
	if c, ok := e.combatant(); ok && c.HasLayer {
		return c.Layer, true
	}
	return knockback.OverrideLayer{}, false
}

func (e Entry) combatant() (*CombatantData, bool) {
	if !e.e.HasComponent(Combatant) {
		return nil, false
	}
	return Combatant.Get(e.e), true
}
