// Package ecs applies knockback to the entities of a donburi world.
package ecs

import (
	"github.com/oomph-ac/knockback/knockback"
	"github.com/yohamta/donburi"
)

// QueueHit queues a strike on the victim passed. A victim holds at most one queued strike: a later strike
// in the same tick replaces an earlier one.
func QueueHit(victim *donburi.Entry, hit HitData) {
	if victim.HasComponent(Hit) {
		Hit.SetValue(victim, hit)
		return
	}
	donburi.Add(victim, Hit, &hit)
}

// KnockbackSystem applies the strikes queued on the entities of a world.
type KnockbackSystem struct {
	sys *knockback.System
	// World is passed as the world of every strike, so that layers bound to it apply. It may be nil.
	World any
}

// NewKnockbackSystem returns a KnockbackSystem applying strikes using the knockback.System passed.
func NewKnockbackSystem(sys *knockback.System, world any) *KnockbackSystem {
	return &KnockbackSystem{sys: sys, World: world}
}

// Update records the sprint state of every combatant for the tick passed and then applies and removes
// every queued strike. The results are returned in no particular order.
func (s *KnockbackSystem) Update(w donburi.World, tick int64) []knockback.Result {
	Combatant.Each(w, func(e *donburi.Entry) {
		if c := Combatant.Get(e); c.Sprinting {
			c.LastSprintTick = tick
		}
	})

	var victims []*donburi.Entry
	for e := range Hit.Iter(w) {
		victims = append(victims, e)
	}

	results := make([]knockback.Result, 0, len(victims))
	for _, e := range victims {
		hit := *Hit.Get(e)
		donburi.Remove[HitData](e, Hit)

		req := knockback.Request{
			Victim:           Wrap(e),
			ProjectileOrigin: hit.ProjectileOrigin,
			Weapon:           hit.Weapon,
			World:            s.World,
			Strike:           hit.Strike,
			Sprinting:        hit.Sprinting,
			BonusLevel:       hit.BonusLevel,
			Tick:             tick,
		}
		if hit.Attacker != nil && hit.Attacker.Valid() {
			req.Attacker = Wrap(hit.Attacker)
		}
		if hit.Source != nil && hit.Source.Valid() {
			req.Source = Wrap(hit.Source)
		}
		results = append(results, s.sys.Apply(req))
	}
	return results
}
