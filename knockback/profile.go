package knockback

import (
	"math"

	"github.com/oomph-ac/knockback/game"
	"github.com/oomph-ac/knockback/oerror"
)

// Profile is the full set of tunable knockback parameters in effect for a strike. A Profile is immutable:
// it can only be created through a Builder, which validates every value, and is never modified in place.
// Strength values are expressed in blocks per tick.
type Profile struct {
	horizontal, vertical float64
	verticalCap          float64

	sprintHorizontal, sprintVertical float64
	airHorizontal, airVertical       float64

	lookWeight          float64
	sprintLookWeight    float64
	hasSprintLookWeight bool

	meleeDirection, projectileDirection DirectionMode
	blend                               BlendMode
	fallback                            FallbackPolicy

	frictionModel                                    FrictionModel
	frictionHorizontal, frictionVertical             float64
	sprintFrictionHorizontal, sprintFrictionVertical float64
	hasSprintFriction                                bool

	applyMode ApplyMode
	states    [victimStateCount]*VictimStateOverride

	rangeReduction, sprintRangeReduction RangeReductionCurve

	sprintBuffer int64
	fallingFloor float64
}

// LegacyProfile returns the profile reproducing the legacy fixed formula: the previous velocity is halved,
// 0.4 is added on both axes and the vertical velocity is capped at 0.4.
func LegacyProfile() Profile {
	return Profile{
		horizontal:          game.DefaultHorizontalKnockback,
		vertical:            game.DefaultVerticalKnockback,
		verticalCap:         game.DefaultVerticalKnockbackCap,
		sprintHorizontal:    game.DefaultSprintHorizontal,
		sprintVertical:      game.DefaultSprintVertical,
		airHorizontal:       1,
		airVertical:         1,
		meleeDirection:      DirectionAttackerPosition,
		projectileDirection: DirectionShooterOrigin,
		blend:               BlendDirection,
		fallback:            FallbackRandom,
		frictionModel:       FrictionDivide,
		frictionHorizontal:  game.LegacyFrictionDivisor,
		frictionVertical:    game.LegacyFrictionDivisor,
		applyMode:           ApplySet,

		rangeReduction:       NoRangeReduction(),
		sprintRangeReduction: NoRangeReduction(),
	}
}

// ModernProfile returns a friction based profile: half of the previous horizontal velocity is kept, and
// airborne victims keep their vertical velocity instead of being lifted again.
func ModernProfile() Profile {
	keep := 1.0
	none := 0.0
	airborne := &VictimStateOverride{FrictionVertical: &keep, VerticalMultiplier: &none}

	p := LegacyProfile()
	p.frictionModel = FrictionRetain
	p.frictionHorizontal, p.frictionVertical = 0.5, 0.5
	p.sprintVertical = 0
	p.lookWeight = 0.5
	p.blend = BlendDirection
	p.fallback = FallbackLook
	p.sprintBuffer = 1
	p.states[VictimAirborne] = airborne
	return p
}

// Builder returns a Builder seeded with the values of the profile, which may be used to derive a new,
// modified profile.
func (p Profile) Builder() *Builder {
	return &Builder{p: p}
}

// Horizontal returns the base horizontal strength.
func (p Profile) Horizontal() float64 { return p.horizontal }

// Vertical returns the base vertical strength.
func (p Profile) Vertical() float64 { return p.vertical }

// VerticalCap returns the maximum vertical velocity produced outside of the falling state.
func (p Profile) VerticalCap() float64 { return p.verticalCap }

// SprintHorizontal returns the horizontal bonus added on sprint hits.
func (p Profile) SprintHorizontal() float64 { return p.sprintHorizontal }

// SprintVertical returns the vertical bonus added on sprint hits.
func (p Profile) SprintVertical() float64 { return p.sprintVertical }

// AirHorizontal returns the horizontal multiplier for airborne victims.
func (p Profile) AirHorizontal() float64 { return p.airHorizontal }

// AirVertical returns the vertical multiplier for airborne victims.
func (p Profile) AirVertical() float64 { return p.airVertical }

// LookWeight returns the weight of the attacker's look direction, and the weight used on sprint hits.
func (p Profile) LookWeight(sprintHit bool) float64 {
	if sprintHit && p.hasSprintLookWeight {
		return p.sprintLookWeight
	}
	return p.lookWeight
}

// DirectionMode returns the direction mode for the strike type passed.
func (p Profile) DirectionMode(strike StrikeType) DirectionMode {
	if strike.Ranged() {
		return p.projectileDirection
	}
	return p.meleeDirection
}

// Blend returns how the positional and look directions are combined.
func (p Profile) Blend() BlendMode { return p.blend }

// Fallback returns the policy used for degenerate geometry.
func (p Profile) Fallback() FallbackPolicy { return p.fallback }

func (p Profile) FrictionModel() FrictionModel { return p.frictionModel }

func (p Profile) ApplyMode() ApplyMode { return p.applyMode }

// SprintBuffer returns the amount of ticks after sprinting stopped during which a hit still counts as a
// sprint hit.
func (p Profile) SprintBuffer() int64 { return p.sprintBuffer }

// FallingFloor returns the minimum vertical velocity of falling victims, in the velocity unit of the host.
func (p Profile) FallingFloor() float64 { return p.fallingFloor }

// Friction returns the horizontal and vertical friction, using the sprint friction on sprint hits if one
// is set.
func (p Profile) Friction(sprintHit bool) (float64, float64) {
	if sprintHit && p.hasSprintFriction {
		return p.sprintFrictionHorizontal, p.sprintFrictionVertical
	}
	return p.frictionHorizontal, p.frictionVertical
}

// RangeReduction returns the range reduction curve, using the sprint curve on sprint hits.
func (p Profile) RangeReduction(sprintHit bool) RangeReductionCurve {
	if sprintHit {
		return p.sprintRangeReduction
	}
	return p.rangeReduction
}

// StateOverride returns a copy of the override set for the victim state passed, if any.
func (p Profile) StateOverride(state VictimState) (VictimStateOverride, bool) {
	if state >= victimStateCount || p.states[state] == nil {
		return VictimStateOverride{}, false
	}
	return p.states[state].clone(), true
}

// component returns the value of one of the numeric components that override layers may modify.
func (p Profile) component(c Component) float64 {
	switch c {
	case ComponentHorizontal:
		return p.horizontal
	case ComponentVertical:
		return p.vertical
	case ComponentSprintHorizontal:
		return p.sprintHorizontal
	case ComponentSprintVertical:
		return p.sprintVertical
	case ComponentAirHorizontal:
		return p.airHorizontal
	case ComponentAirVertical:
		return p.airVertical
	}
	return 0
}

func (p *Profile) setComponent(c Component, v float64) {
	switch c {
	case ComponentHorizontal:
		p.horizontal = v
	case ComponentVertical:
		p.vertical = v
	case ComponentSprintHorizontal:
		p.sprintHorizontal = v
	case ComponentSprintVertical:
		p.sprintVertical = v
	case ComponentAirHorizontal:
		p.airHorizontal = v
	case ComponentAirVertical:
		p.airVertical = v
	}
}

// validate checks every value of the profile against its allowed range.
func (p Profile) validate() error {
	for _, v := range []struct {
		name  string
		value float64
	}{
		{"horizontal", p.horizontal},
		{"vertical", p.vertical},
		{"vertical_cap", p.verticalCap},
		{"sprint_horizontal", p.sprintHorizontal},
		{"sprint_vertical", p.sprintVertical},
		{"air_horizontal", p.airHorizontal},
		{"air_vertical", p.airVertical},
		{"friction_horizontal", p.frictionHorizontal},
		{"friction_vertical", p.frictionVertical},
		{"sprint_friction_horizontal", p.sprintFrictionHorizontal},
		{"sprint_friction_vertical", p.sprintFrictionVertical},
		{"falling_floor", p.fallingFloor},
	} {
		if err := nonNegative(v.name, v.value); err != nil {
			return err
		}
	}
	if err := unitInterval("look_weight", p.lookWeight); err != nil {
		return err
	}
	if err := unitInterval("sprint_look_weight", p.sprintLookWeight); err != nil {
		return err
	}
	if p.sprintBuffer < 0 {
		return &ProfileError{Field: "sprint_buffer", Value: float64(p.sprintBuffer), Reason: "must not be negative"}
	}
	if p.meleeDirection > DirectionVictimFacing || p.projectileDirection > DirectionVictimFacing {
		return &ProfileError{Field: "direction", Reason: "unknown direction mode"}
	}
	if p.blend > BlendAddVectors {
		return &ProfileError{Field: "blend", Value: float64(p.blend), Reason: "unknown blend mode"}
	}
	if p.fallback > FallbackCustom {
		return &ProfileError{Field: "fallback", Value: float64(p.fallback), Reason: "unknown fallback policy"}
	}
	if p.frictionModel > FrictionRetain {
		return &ProfileError{Field: "friction_model", Value: float64(p.frictionModel), Reason: "unknown friction model"}
	}
	if p.applyMode > ApplyAdd {
		return &ProfileError{Field: "apply_mode", Value: float64(p.applyMode), Reason: "unknown apply mode"}
	}
	if err := p.rangeReduction.validate("range_reduction"); err != nil {
		return err
	}
	if err := p.sprintRangeReduction.validate("sprint_range_reduction"); err != nil {
		return err
	}
	for state, o := range p.states {
		if o == nil {
			continue
		}
		if err := o.validate(VictimState(state).String()); err != nil {
			return err
		}
	}
	return nil
}

// ProfileError is returned when a Profile is built with a value outside its allowed range.
type ProfileError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ProfileError) Error() string {
	return oerror.New("invalid knockback profile: %s (%v) %s", e.Field, e.Value, e.Reason).Error()
}

func nonNegative(field string, v float64) error {
	if math.IsNaN(v) {
		return &ProfileError{Field: field, Value: v, Reason: "must be a number"}
	}
	if v < 0 {
		return &ProfileError{Field: field, Value: v, Reason: "must not be negative"}
	}
	return nil
}

func unitInterval(field string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return &ProfileError{Field: field, Value: v, Reason: "must be within [0, 1]"}
	}
	return nil
}
