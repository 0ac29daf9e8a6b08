package knockback

import (
	"math"
	"math/rand"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/knockback/game"
)

// Direction is the horizontal direction a victim is pushed in.
type Direction struct {
	// Vec is a horizontal unit vector. It is never the zero vector.
	Vec mgl64.Vec3
	// Scale multiplies the horizontal strength. It is 1 unless vectors were blended with BlendAddVectors.
	Scale float64
	Mode  DirectionMode

	// Origin is the point the victim is pushed away from. With DirectionVictimFacing it is the attacker's
	// position, which range reduction measures from. HasOrigin is false if no such point exists, for
	// example for environmental knockback.
	Origin    mgl64.Vec3
	HasOrigin bool
	// Distance is the distance between Origin and the victim.
	Distance float64
	// Degenerate is true if the fallback policy was used.
	Degenerate bool
}

// DegenerateContext holds the information available to a DegenerateFallback.
type DegenerateContext struct {
	Victim    Victim
	Attacker  Entity
	Origin    mgl64.Vec3
	HasOrigin bool
	Distance  float64
}

// DegenerateFallback returns the direction used when the origin and the victim are too close to derive
// one. The vector returned is flattened and normalised; a zero vector makes the resolver fall back to a
// random direction.
type DegenerateFallback func(ctx DegenerateContext) mgl64.Vec3

// DirectionResolver computes the direction of a strike.
type DirectionResolver struct {
	randMu sync.Mutex
	rand   *rand.Rand

	custom DegenerateFallback
}

// NewDirectionResolver returns a DirectionResolver using the random source and custom fallback passed.
// Both may be nil.
func NewDirectionResolver(r *rand.Rand, custom DegenerateFallback) *DirectionResolver {
	if r == nil {
		r = rand.New(rand.NewSource(rand.Int63()))
	}
	return &DirectionResolver{rand: r, custom: custom}
}

// Resolve returns the direction of the strike described by the request, using the profile passed.
func (d *DirectionResolver) Resolve(p Profile, req Request, sprintHit bool) Direction {
	mode := p.DirectionMode(req.Strike)
	dir := Direction{Scale: 1, Mode: mode}

	if mode == DirectionVictimFacing {
		// The push follows the victim's look, but range reduction still measures from the attacker.
		if origin, _, ok := originOf(DirectionAttackerPosition, req); ok {
			dir.Origin, dir.HasOrigin = origin, true
			dir.Distance = req.Victim.Position().Sub(origin).Len()
		}
		if v, ok := req.Victim.(Directional); ok {
			dir.Vec = game.HorizontalLook(v.Rotation().Yaw())
			return dir
		}
		dir.Vec, dir.Degenerate = d.fallback(p, req, dir), true
		return dir
	}

	origin, looking, ok := originOf(mode, req)
	if !ok {
		dir.Vec, dir.Degenerate = d.fallback(p, req, dir), true
		return dir
	}
	victimPos := req.Victim.Position()
	dir.Origin, dir.HasOrigin = origin, true
	dir.Distance = victimPos.Sub(origin).Len()

	delta := game.Horizontal(victimPos.Sub(origin))
	if game.Vec3HzDist(delta) < game.MinDirectionDistance {
		dir.Vec, dir.Degenerate = d.fallback(p, req, dir), true
		return dir
	}
	dir.Vec = delta.Normalize()

	weight := p.LookWeight(sprintHit)
	if weight <= 0 || looking == nil {
		return dir
	}
	look := game.HorizontalLook(looking.Rotation().Yaw())
	sum := dir.Vec.Mul(1 - weight).Add(look.Mul(weight))
	length := sum.Len()

	if p.Blend() == BlendAddVectors {
		dir.Scale = length
	}
	if length >= game.MinDirectionDistance {
		dir.Vec = sum.Mul(1 / length)
	}
	return dir
}

// originOf returns the point the victim is pushed away from for the mode passed, and the entity whose look
// direction may be blended in, if any.
func originOf(mode DirectionMode, req Request) (mgl64.Vec3, Directional, bool) {
	switch mode {
	case DirectionAttackerPosition:
		if req.Attacker != nil {
			looking, _ := req.Attacker.(Directional)
			return req.Attacker.Position(), looking, true
		}
		if req.Source != nil {
			return req.Source.Position(), nil, true
		}
	case DirectionShooterOrigin:
		if req.ProjectileOrigin != nil {
			return *req.ProjectileOrigin, nil, true
		}
		if req.Attacker != nil {
			return req.Attacker.Position(), nil, true
		}
		if req.Source != nil {
			return req.Source.Position(), nil, true
		}
	case DirectionProjectilePosition:
		if req.Source != nil {
			looking, _ := req.Source.(Directional)
			return req.Source.Position(), looking, true
		}
		if req.ProjectileOrigin != nil {
			return *req.ProjectileOrigin, nil, true
		}
		if req.Attacker != nil {
			return req.Attacker.Position(), nil, true
		}
	}
	return mgl64.Vec3{}, nil, false
}

// fallback returns the direction used for degenerate geometry according to the profile's policy.
func (d *DirectionResolver) fallback(p Profile, req Request, dir Direction) mgl64.Vec3 {
	switch p.Fallback() {
	case FallbackLook:
		if a, ok := req.Attacker.(Directional); ok {
			return game.HorizontalLook(a.Rotation().Yaw())
		}
	case FallbackCustom:
		if d.custom != nil {
			v := game.Horizontal(d.custom(DegenerateContext{
				Victim:    req.Victim,
				Attacker:  req.Attacker,
				Origin:    dir.Origin,
				HasOrigin: dir.HasOrigin,
				Distance:  dir.Distance,
			}))
			if l := v.Len(); l >= game.MinDirectionDistance && !math.IsNaN(l) && !math.IsInf(l, 0) {
				return v.Mul(1 / l)
			}
		}
	}
	return d.random()
}

// random returns a random horizontal unit vector.
func (d *DirectionResolver) random() mgl64.Vec3 {
	d.randMu.Lock()
	angle := d.rand.Float64() * 2 * math.Pi
	d.randMu.Unlock()
	return mgl64.Vec3{math.Cos(angle), 0, math.Sin(angle)}
}
