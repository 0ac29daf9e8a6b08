package entity

import (
	"sync"

	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/knockback/knockback"
)

// Entity is an in-memory entity that may strike and be struck. It implements knockback.Victim,
// knockback.Directional, knockback.Sprinter, knockback.SprintTracker, knockback.Living, knockback.Blocker
// and knockback.HasOverrideLayer. Entity is safe for concurrent use.
type Entity struct {
	// mu protects all the following fields.
	mu sync.Mutex
	// runtimeID is the runtime ID of the entity on the network.
	runtimeID uint64
	// position is the current position of the entity in the world.
	position mgl64.Vec3
	// lastPosition is the previous position of the entity in the world.
	lastPosition mgl64.Vec3
	// velocity is the current velocity of the entity.
	velocity mgl64.Vec3
	// rotation represents the yaw and pitch of the entity.
	rotation cube.Rotation
	// onGround determines wether the entity is on or off the ground.
	onGround bool
	// sprinting is true if the entity is currently sprinting.
	sprinting bool
	// lastSprintTick is the last tick the entity was sprinting on, or -1 if it never sprinted.
	lastSprintTick int64
	// blocking is true if the entity is blocking incoming strikes.
	blocking bool
	// resistance is the fraction of knockback the entity resists.
	resistance float64
	// dead is true if the entity has died.
	dead bool
	// layer is the override layer carried by the entity.
	layer    knockback.OverrideLayer
	hasLayer bool
}

// NewEntity creates a new entity with the provided parameters. The entity starts on the ground.
func NewEntity(runtimeID uint64, position mgl64.Vec3, rotation cube.Rotation) *Entity {
	return &Entity{
		runtimeID:      runtimeID,
		position:       position,
		lastPosition:   position,
		rotation:       rotation,
		onGround:       true,
		lastSprintTick: -1,
	}
}

// RuntimeID returns the runtime ID of the entity.
func (e *Entity) RuntimeID() uint64 {
	return e.runtimeID
}

// Position returns the position of the entity.
func (e *Entity) Position() mgl64.Vec3 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.position
}

// LastPosition returns the last position of the entity.
func (e *Entity) LastPosition() mgl64.Vec3 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastPosition
}

// Move moves the entity to the provided position.
func (e *Entity) Move(pos mgl64.Vec3) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastPosition = e.position
	e.position = pos
}

// Velocity returns the velocity of the entity.
func (e *Entity) Velocity() mgl64.Vec3 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.velocity
}

// SetVelocity updates the velocity of the entity.
func (e *Entity) SetVelocity(v mgl64.Vec3) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.velocity = v
}

// Rotation returns the rotation of the entity.
func (e *Entity) Rotation() cube.Rotation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rotation
}

// Rotate rotates the entity to the provided rotation.
func (e *Entity) Rotate(rotation cube.Rotation) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rotation = rotation
}

func (e *Entity) OnGround() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.onGround
}

// SetOnGround updates the on-ground state of the entity.
func (e *Entity) SetOnGround(onGround bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onGround = onGround
}

// Sprinting returns true if the entity is sprinting.
func (e *Entity) Sprinting() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sprinting
}

// StartSprinting makes the entity start sprinting on the tick passed.
func (e *Entity) StartSprinting(tick int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sprinting = true
	e.lastSprintTick = tick
}

// StopSprinting makes the entity stop sprinting. The last sprint tick is kept.
func (e *Entity) StopSprinting() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sprinting = false
}

// LastSprintTick returns the last tick the entity was sprinting on, or -1 if it never sprinted.
func (e *Entity) LastSprintTick() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastSprintTick
}

// Tick updates the per-tick state of the entity for the tick passed.
func (e *Entity) Tick(tick int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sprinting {
		e.lastSprintTick = tick
	}
}

// Blocking returns true if the entity is blocking.
func (e *Entity) Blocking() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.blocking
}

// SetBlocking updates the blocking state of the entity.
func (e *Entity) SetBlocking(blocking bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.blocking = blocking
}

// KnockbackResistance returns the fraction of knockback the entity resists.
func (e *Entity) KnockbackResistance() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.resistance
}

// SetKnockbackResistance updates the fraction of knockback the entity resists.
func (e *Entity) SetKnockbackResistance(resistance float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resistance = resistance
}

// Dead returns true if the entity has died.
func (e *Entity) Dead() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dead
}

// Kill marks the entity as dead.
func (e *Entity) Kill() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dead = true
	e.sprinting = false
}

// OverrideLayer returns the override layer carried by the entity.
func (e *Entity) OverrideLayer() (knockback.OverrideLayer, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.layer, e.hasLayer
}

// SetOverrideLayer sets the override layer carried by the entity.
func (e *Entity) SetOverrideLayer(l knockback.OverrideLayer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.layer, e.hasLayer = l, true
}

// ClearOverrideLayer removes the override layer carried by the entity.
func (e *Entity) ClearOverrideLayer() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.layer, e.hasLayer = knockback.OverrideLayer{}, false
}

// Point is a position without any other state, such as the launch position of a projectile.
type Point mgl64.Vec3

// Position returns the point as a vector.
func (p Point) Position() mgl64.Vec3 {
	return mgl64.Vec3(p)
}
