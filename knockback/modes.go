package knockback

// DirectionMode selects the point the victim is pushed away from.
type DirectionMode uint8

const (
	// DirectionAttackerPosition pushes the victim away from the attacker's current position.
	DirectionAttackerPosition DirectionMode = iota
	// DirectionShooterOrigin pushes the victim away from the position the projectile was launched from.
	DirectionShooterOrigin
	// DirectionProjectilePosition pushes the victim away from the projectile's current position.
	DirectionProjectilePosition
	// DirectionVictimFacing pushes the victim along its own look direction, ignoring the attacker.
	DirectionVictimFacing
)

func (m DirectionMode) String() string {
	switch m {
	case DirectionAttackerPosition:
		return "attacker_position"
	case DirectionShooterOrigin:
		return "shooter_origin"
	case DirectionProjectilePosition:
		return "projectile_position"
	case DirectionVictimFacing:
		return "victim_facing"
	}
	return "unknown"
}

// FallbackPolicy decides the direction used when the origin and the victim are too close to derive one.
type FallbackPolicy uint8

const (
	// FallbackLook uses the attacker's horizontal look direction.
	FallbackLook FallbackPolicy = iota
	// FallbackRandom uses a random horizontal unit vector.
	FallbackRandom
	// FallbackCustom defers to the DegenerateFallback registered on the System. Without one registered,
	// it behaves like FallbackRandom.
	FallbackCustom
)

func (f FallbackPolicy) String() string {
	switch f {
	case FallbackLook:
		return "look"
	case FallbackRandom:
		return "random"
	case FallbackCustom:
		return "custom"
	}
	return "unknown"
}

// BlendMode selects how the positional direction and the look direction are combined.
type BlendMode uint8

const (
	// BlendDirection interpolates the two unit vectors by the look weight and renormalises the result.
	BlendDirection BlendMode = iota
	// BlendAddVectors adds both unit vectors scaled by their share. The length of the sum scales the
	// horizontal strength, so opposing directions weaken the knockback.
	BlendAddVectors
)

func (b BlendMode) String() string {
	switch b {
	case BlendDirection:
		return "blend_direction"
	case BlendAddVectors:
		return "add_vectors"
	}
	return "unknown"
}

// ApplyMode decides whether the computed velocity replaces or accumulates onto the victim's velocity.
type ApplyMode uint8

const (
	ApplySet ApplyMode = iota
	ApplyAdd
)

func (a ApplyMode) String() string {
	switch a {
	case ApplySet:
		return "set"
	case ApplyAdd:
		return "add"
	}
	return "unknown"
}

// FrictionModel decides how a friction value is turned into the fraction of the previous velocity kept.
type FrictionModel uint8

const (
	// FrictionDivide divides the previous velocity by the friction value, as the legacy formula does with a
	// friction of 2. A friction of 0 drops the previous velocity entirely.
	FrictionDivide FrictionModel = iota
	// FrictionRetain multiplies the previous velocity by the friction value.
	FrictionRetain
)

func (f FrictionModel) String() string {
	switch f {
	case FrictionDivide:
		return "divide"
	case FrictionRetain:
		return "retain"
	}
	return "unknown"
}

// retained returns the fraction of the previous velocity kept for the friction value passed.
func (f FrictionModel) retained(friction float64) float64 {
	if f == FrictionRetain {
		return friction
	}
	if friction == 0 {
		return 0
	}
	return 1 / friction
}

// StrikeType is the kind of strike that caused the knockback.
type StrikeType uint8

const (
	StrikeMelee StrikeType = iota
	StrikeProjectile
	// StrikeSweep is the glancing hit dealt to entities next to the primary target.
	StrikeSweep
	// StrikeArea is an area-of-effect strike, such as an explosion.
	StrikeArea
)

func (s StrikeType) String() string {
	switch s {
	case StrikeMelee:
		return "melee"
	case StrikeProjectile:
		return "projectile"
	case StrikeSweep:
		return "sweep"
	case StrikeArea:
		return "area"
	}
	return "unknown"
}

// Ranged returns true if the strike was dealt from range.
func (s StrikeType) Ranged() bool {
	return s == StrikeProjectile
}

// Glancing returns true if the strike is one of the reduced strike types.
func (s StrikeType) Glancing() bool {
	return s == StrikeSweep || s == StrikeArea
}

// VictimState is the kinematic bucket of the victim at the time of the strike.
type VictimState uint8

const (
	VictimOnGround VictimState = iota
	VictimAirborne
	VictimFalling

	victimStateCount
)

func (v VictimState) String() string {
	switch v {
	case VictimOnGround:
		return "on_ground"
	case VictimAirborne:
		return "airborne"
	case VictimFalling:
		return "falling"
	}
	return "unknown"
}

// Airborne returns true if the victim is not standing on the ground.
func (v VictimState) Airborne() bool {
	return v != VictimOnGround
}
