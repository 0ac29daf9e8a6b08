package knockback

// Builder creates validated Profiles. The zero Builder is not usable; use NewBuilder or Profile.Builder.
type Builder struct {
	p Profile
}

// NewBuilder returns a Builder seeded with the LegacyProfile.
func NewBuilder() *Builder {
	return LegacyProfile().Builder()
}

// Build validates the values set and returns the resulting Profile. An error is returned if any value is
// outside its allowed range; values are never clamped.
func (b *Builder) Build() (Profile, error) {
	if err := b.p.validate(); err != nil {
		return Profile{}, err
	}
	return b.p, nil
}

// Strength sets the base horizontal and vertical strength.
func (b *Builder) Strength(horizontal, vertical float64) *Builder {
	b.p.horizontal, b.p.vertical = horizontal, vertical
	return b
}

// VerticalCap sets the maximum vertical velocity produced outside of the falling state.
func (b *Builder) VerticalCap(v float64) *Builder {
	b.p.verticalCap = v
	return b
}

// SprintBonus sets the strength added on sprint hits.
func (b *Builder) SprintBonus(horizontal, vertical float64) *Builder {
	b.p.sprintHorizontal, b.p.sprintVertical = horizontal, vertical
	return b
}

// AirMultiplier sets the multipliers applied when the victim is airborne.
func (b *Builder) AirMultiplier(horizontal, vertical float64) *Builder {
	b.p.airHorizontal, b.p.airVertical = horizontal, vertical
	return b
}

// LookWeight sets the weight of the attacker's look direction.
func (b *Builder) LookWeight(weight float64) *Builder {
	b.p.lookWeight = weight
	return b
}

// SprintLookWeight sets a separate look weight used on sprint hits.
func (b *Builder) SprintLookWeight(weight float64) *Builder {
	b.p.sprintLookWeight, b.p.hasSprintLookWeight = weight, true
	return b
}

// ClearSprintLookWeight removes the separate sprint look weight.
func (b *Builder) ClearSprintLookWeight() *Builder {
	b.p.sprintLookWeight, b.p.hasSprintLookWeight = 0, false
	return b
}

// Direction sets the direction modes for melee and for projectile strikes.
func (b *Builder) Direction(melee, projectile DirectionMode) *Builder {
	b.p.meleeDirection, b.p.projectileDirection = melee, projectile
	return b
}

func (b *Builder) Blend(mode BlendMode) *Builder {
	b.p.blend = mode
	return b
}

func (b *Builder) Fallback(policy FallbackPolicy) *Builder {
	b.p.fallback = policy
	return b
}

// Friction sets the friction model and the horizontal and vertical friction.
func (b *Builder) Friction(model FrictionModel, horizontal, vertical float64) *Builder {
	b.p.frictionModel = model
	b.p.frictionHorizontal, b.p.frictionVertical = horizontal, vertical
	return b
}

// SprintFriction sets a separate friction used on sprint hits.
func (b *Builder) SprintFriction(horizontal, vertical float64) *Builder {
	b.p.sprintFrictionHorizontal, b.p.sprintFrictionVertical = horizontal, vertical
	b.p.hasSprintFriction = true
	return b
}

// ClearSprintFriction removes the separate sprint friction.
func (b *Builder) ClearSprintFriction() *Builder {
	b.p.sprintFrictionHorizontal, b.p.sprintFrictionVertical = 0, 0
	b.p.hasSprintFriction = false
	return b
}

func (b *Builder) ApplyMode(mode ApplyMode) *Builder {
	b.p.applyMode = mode
	return b
}

// StateOverride sets the override applied when the victim is in the state passed.
func (b *Builder) StateOverride(state VictimState, o VictimStateOverride) *Builder {
	if state < victimStateCount {
		c := o.clone()
		b.p.states[state] = &c
	}
	return b
}

// ClearStateOverride removes the override for the state passed.
func (b *Builder) ClearStateOverride(state VictimState) *Builder {
	if state < victimStateCount {
		b.p.states[state] = nil
	}
	return b
}

// RangeReduction sets the range reduction curves for normal and for sprint hits.
func (b *Builder) RangeReduction(normal, sprint RangeReductionCurve) *Builder {
	b.p.rangeReduction, b.p.sprintRangeReduction = normal, sprint
	return b
}

// SprintBuffer sets the amount of ticks after sprinting stopped during which a hit still counts as a
// sprint hit.
func (b *Builder) SprintBuffer(ticks int64) *Builder {
	b.p.sprintBuffer = ticks
	return b
}

// FallingFloor sets the minimum vertical velocity of falling victims, in the velocity unit of the host.
func (b *Builder) FallingFloor(floor float64) *Builder {
	b.p.fallingFloor = floor
	return b
}
