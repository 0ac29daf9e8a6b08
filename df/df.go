// Package df builds knockback requests for dragonfly players.
package df

import (
	"github.com/df-mc/dragonfly/server/block/cube"
	"github.com/df-mc/dragonfly/server/item"
	"github.com/df-mc/dragonfly/server/item/enchantment"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/knockback/knockback"
)

// LayerKey is the key of an item stack value naming the override layer of the item. Items without it are
// bound to layers by their identifier, such as "minecraft:diamond_sword".
const LayerKey = "knockback_layer"

// Player is the part of a *player.Player used for knockback.
type Player interface {
	Name() string
	Position() mgl64.Vec3
	Rotation() cube.Rotation
	Velocity() mgl64.Vec3
	SetVelocity(v mgl64.Vec3)
	OnGround() bool
	Sprinting() bool
	StopSprinting()
	Dead() bool
	HeldItems() (mainHand, offHand item.Stack)
}

// Combatant exposes a Player to the knockback package.
type Combatant struct {
	Player
	// Resistance is the fraction of knockback resisted, for example from armour.
	Resistance float64
	// Shielding returns true if the player is blocking with a shield. It may be nil.
	Shielding func() bool
}

// Wrap returns the Combatant of the player passed, without resistance or shield.
func Wrap(p Player) Combatant {
	return Combatant{Player: p}
}

func (c Combatant) KnockbackResistance() float64 {
	return c.Resistance
}

func (c Combatant) Blocking() bool {
	return c.Shielding != nil && c.Shielding()
}

// Weapon is an item stack used to strike. It implements settings.Named.
type Weapon struct {
	Stack item.Stack
}

// Name returns the value of the stack under LayerKey, or the identifier of the item.
func (w Weapon) Name() string {
	if v, ok := w.Stack.Value(LayerKey); ok {
		if name, ok := v.(string); ok {
			return name
		}
	}
	if w.Stack.Empty() {
		return ""
	}
	name, _ := w.Stack.Item().EncodeItem()
	return name
}

// BonusLevel returns the level of the knockback enchantment on the stack, or 0.
func BonusLevel(stack item.Stack) int {
	if e, ok := stack.Enchantment(enchantment.Knockback); ok {
		return e.Level()
	}
	return 0
}

// Melee returns the request of a melee strike of the attacker on the victim, using the item held in the
// attacker's main hand. The world may be nil.
func Melee(attacker, victim Combatant, world any, tick int64) knockback.Request {
	held, _ := attacker.HeldItems()
	req := knockback.Request{
		Victim:     victim,
		Attacker:   attacker,
		Source:     attacker,
		World:      world,
		Strike:     knockback.StrikeMelee,
		Sprinting:  attacker.Sprinting(),
		BonusLevel: BonusLevel(held),
		Tick:       tick,
	}
	if !held.Empty() {
		req.Weapon = Weapon{Stack: held}
	}
	return req
}

// Projectile returns the request of a projectile launched by the shooter from the origin passed, hitting
// the victim. The projectile is the entity that hit, and the bow is the stack it was launched with. The
// shooter may be nil.
func Projectile(shooter *Combatant, projectile knockback.Entity, origin mgl64.Vec3, bow item.Stack, victim Combatant, world any, tick int64) knockback.Request {
	req := knockback.Request{
		Victim:           victim,
		Source:           projectile,
		ProjectileOrigin: &origin,
		World:            world,
		Strike:           knockback.StrikeProjectile,
		Tick:             tick,
	}
	if shooter != nil {
		req.Attacker = *shooter
	}
	if !bow.Empty() {
		req.Weapon = Weapon{Stack: bow}
	}
	return req
}
