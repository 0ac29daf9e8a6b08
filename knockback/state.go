package knockback

// VictimStateOverride adjusts a resolved profile for one victim state. If Profile is set, it replaces the
// resolved profile entirely. Otherwise every non-nil field replaces, or for the multipliers scales, the
// matching value of the resolved profile.
type VictimStateOverride struct {
	FrictionHorizontal, FrictionVertical *float64
	ApplyMode                            *ApplyMode

	HorizontalMultiplier, VerticalMultiplier *float64

	Profile *Profile
}

// ClassifyVictim returns the state of a victim. An airborne victim is falling once its vertical velocity
// is at or below the threshold.
func ClassifyVictim(onGround bool, verticalVelocity, fallingThreshold float64) VictimState {
	if onGround {
		return VictimOnGround
	}
	if verticalVelocity <= fallingThreshold {
		return VictimFalling
	}
	return VictimAirborne
}

// SelectState returns the profile passed adjusted by its override for the victim state, or the profile
// unchanged if it has none.
func SelectState(p Profile, state VictimState) Profile {
	o, ok := p.StateOverride(state)
	if !ok {
		return p
	}
	if o.Profile != nil {
		return *o.Profile
	}
	if o.FrictionHorizontal != nil || o.FrictionVertical != nil {
		// A state specific friction is more specific than the sprint friction.
		p.hasSprintFriction = false
		if o.FrictionHorizontal != nil {
			p.frictionHorizontal = *o.FrictionHorizontal
		}
		if o.FrictionVertical != nil {
			p.frictionVertical = *o.FrictionVertical
		}
	}
	if o.ApplyMode != nil {
		p.applyMode = *o.ApplyMode
	}
	if o.HorizontalMultiplier != nil {
		p.horizontal *= *o.HorizontalMultiplier
	}
	if o.VerticalMultiplier != nil {
		p.vertical *= *o.VerticalMultiplier
	}
	return p
}

func (o VictimStateOverride) clone() VictimStateOverride {
	return VictimStateOverride{
		FrictionHorizontal:   clonePtr(o.FrictionHorizontal),
		FrictionVertical:     clonePtr(o.FrictionVertical),
		ApplyMode:            clonePtr(o.ApplyMode),
		HorizontalMultiplier: clonePtr(o.HorizontalMultiplier),
		VerticalMultiplier:   clonePtr(o.VerticalMultiplier),
		Profile:              clonePtr(o.Profile),
	}
}

func (o VictimStateOverride) validate(state string) error {
	for name, v := range map[string]*float64{
		"friction_horizontal":   o.FrictionHorizontal,
		"friction_vertical":     o.FrictionVertical,
		"horizontal_multiplier": o.HorizontalMultiplier,
		"vertical_multiplier":   o.VerticalMultiplier,
	} {
		if v == nil {
			continue
		}
		if err := nonNegative("states."+state+"."+name, *v); err != nil {
			return err
		}
	}
	if o.ApplyMode != nil && *o.ApplyMode > ApplyAdd {
		return &ProfileError{Field: "states." + state + ".apply_mode", Value: float64(*o.ApplyMode), Reason: "unknown apply mode"}
	}
	return nil
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
