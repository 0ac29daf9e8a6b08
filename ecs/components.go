package ecs

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/knockback/knockback"
	"github.com/yohamta/donburi"
)

type TransformData struct {
	Position mgl64.Vec3
	Rotation cube.Rotation
}

var Transform = donburi.NewComponentType[TransformData]()

type MotionData struct {
	Velocity mgl64.Vec3
	OnGround bool
}

var Motion = donburi.NewComponentType[MotionData]()

// CombatantData is the combat state of an entity that may strike or be struck.
type CombatantData struct {
	Sprinting bool
	// LastSprintTick is the last tick the entity was sprinting on, or -1 if it never sprinted.
	LastSprintTick int64
	Blocking       bool
	Resistance     float64
	Dead           bool

	// Layer is the override layer carried by the entity, if HasLayer is true.
	Layer    knockback.OverrideLayer
	HasLayer bool
}

var Combatant = donburi.NewComponentType[CombatantData]()

// HitData is a strike queued on its victim, applied by the KnockbackSystem on its next update.
type HitData struct {
	// Attacker is the entry of the attacker. It may be nil for environmental knockback.
	Attacker *donburi.Entry
	// Source is the entry of the projectile for ranged strikes. It may be nil.
	Source           *donburi.Entry
	ProjectileOrigin *mgl64.Vec3

	Strike     knockback.StrikeType
	Sprinting  bool
	BonusLevel int
	Weapon     any
}

var Hit = donburi.NewComponentType[HitData]()
