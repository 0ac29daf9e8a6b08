package settings

import (
	"fmt"
	"math"

	"github.com/oomph-ac/knockback/knockback"
	"github.com/oomph-ac/knockback/oerror"
)

var (
	directionModes = []knockback.DirectionMode{
		knockback.DirectionAttackerPosition, knockback.DirectionShooterOrigin,
		knockback.DirectionProjectilePosition, knockback.DirectionVictimFacing,
	}
	fallbackPolicies = []knockback.FallbackPolicy{knockback.FallbackLook, knockback.FallbackRandom, knockback.FallbackCustom}
	blendModes       = []knockback.BlendMode{knockback.BlendDirection, knockback.BlendAddVectors}
	applyModes       = []knockback.ApplyMode{knockback.ApplySet, knockback.ApplyAdd}
	frictionModels   = []knockback.FrictionModel{knockback.FrictionDivide, knockback.FrictionRetain}
	victimStates     = []knockback.VictimState{knockback.VictimOnGround, knockback.VictimAirborne, knockback.VictimFalling}
)

// parse returns the value of which the name matches the name passed.
func parse[T fmt.Stringer](field, name string, values []T) (T, error) {
	for _, v := range values {
		if v.String() == name {
			return v, nil
		}
	}
	var zero T
	return zero, oerror.New("unknown %s %q", field, name)
}

// ProfileConfigOf returns the configuration that builds the profile passed, with every value written out.
// State overrides that replace the profile entirely cannot be expressed and are left out.
func ProfileConfigOf(name string, p knockback.Profile) ProfileConfig {
	c := ProfileConfig{
		Name:             name,
		Horizontal:       ptr(p.Horizontal()),
		Vertical:         ptr(p.Vertical()),
		VerticalCap:      ptr(p.VerticalCap()),
		SprintHorizontal: ptr(p.SprintHorizontal()),
		SprintVertical:   ptr(p.SprintVertical()),
		AirHorizontal:    ptr(p.AirHorizontal()),
		AirVertical:      ptr(p.AirVertical()),
		LookWeight:       ptr(p.LookWeight(false)),

		MeleeDirection:      p.DirectionMode(knockback.StrikeMelee).String(),
		ProjectileDirection: p.DirectionMode(knockback.StrikeProjectile).String(),
		Blend:               p.Blend().String(),
		Fallback:            p.Fallback().String(),
		FrictionModel:       p.FrictionModel().String(),
		ApplyMode:           p.ApplyMode().String(),

		SprintBuffer: ptr(p.SprintBuffer()),
		FallingFloor: ptr(p.FallingFloor()),
	}
	if w := p.LookWeight(true); w != p.LookWeight(false) {
		c.SprintLookWeight = ptr(w)
	}
	h, v := p.Friction(false)
	c.FrictionHorizontal, c.FrictionVertical = ptr(h), ptr(v)
	if sh, sv := p.Friction(true); sh != h || sv != v {
		c.SprintFrictionHorizontal, c.SprintFrictionVertical = ptr(sh), ptr(sv)
	}
	if curve := p.RangeReduction(false); curve != knockback.NoRangeReduction() {
		c.RangeReduction = curveConfigOf(curve)
	}
	if curve := p.RangeReduction(true); curve != knockback.NoRangeReduction() {
		c.SprintRangeReduction = curveConfigOf(curve)
	}
	for _, state := range victimStates {
		o, ok := p.StateOverride(state)
		if !ok || o.Profile != nil {
			continue
		}
		sc := StateConfig{
			State:                state.String(),
			FrictionHorizontal:   o.FrictionHorizontal,
			FrictionVertical:     o.FrictionVertical,
			HorizontalMultiplier: o.HorizontalMultiplier,
			VerticalMultiplier:   o.VerticalMultiplier,
		}
		if o.ApplyMode != nil {
			sc.ApplyMode = o.ApplyMode.String()
		}
		c.States = append(c.States, sc)
	}
	return c
}

// build builds the profile on top of the base passed. Profiles referenced by state overrides are looked
// up using the function passed.
func (c ProfileConfig) build(base knockback.Profile, lookup func(name string) (knockback.Profile, bool)) (knockback.Profile, error) {
	b := base.Builder()

	h, v := base.Horizontal(), base.Vertical()
	set(&h, c.Horizontal)
	set(&v, c.Vertical)
	b.Strength(h, v)
	if c.VerticalCap != nil {
		b.VerticalCap(*c.VerticalCap)
	}

	sh, sv := base.SprintHorizontal(), base.SprintVertical()
	set(&sh, c.SprintHorizontal)
	set(&sv, c.SprintVertical)
	b.SprintBonus(sh, sv)

	ah, av := base.AirHorizontal(), base.AirVertical()
	set(&ah, c.AirHorizontal)
	set(&av, c.AirVertical)
	b.AirMultiplier(ah, av)

	if c.LookWeight != nil {
		b.LookWeight(*c.LookWeight)
	}
	if c.SprintLookWeight != nil {
		b.SprintLookWeight(*c.SprintLookWeight)
	}

	melee, projectile := base.DirectionMode(knockback.StrikeMelee), base.DirectionMode(knockback.StrikeProjectile)
	if err := parseInto(&melee, "melee_direction", c.MeleeDirection, directionModes); err != nil {
		return knockback.Profile{}, err
	}
	if err := parseInto(&projectile, "projectile_direction", c.ProjectileDirection, directionModes); err != nil {
		return knockback.Profile{}, err
	}
	b.Direction(melee, projectile)

	blend, fallback := base.Blend(), base.Fallback()
	if err := parseInto(&blend, "blend", c.Blend, blendModes); err != nil {
		return knockback.Profile{}, err
	}
	if err := parseInto(&fallback, "fallback", c.Fallback, fallbackPolicies); err != nil {
		return knockback.Profile{}, err
	}
	b.Blend(blend).Fallback(fallback)

	model := base.FrictionModel()
	if err := parseInto(&model, "friction_model", c.FrictionModel, frictionModels); err != nil {
		return knockback.Profile{}, err
	}
	fh, fv := base.Friction(false)
	set(&fh, c.FrictionHorizontal)
	set(&fv, c.FrictionVertical)
	b.Friction(model, fh, fv)
	if c.SprintFrictionHorizontal != nil || c.SprintFrictionVertical != nil {
		sfh, sfv := base.Friction(true)
		set(&sfh, c.SprintFrictionHorizontal)
		set(&sfv, c.SprintFrictionVertical)
		b.SprintFriction(sfh, sfv)
	}

	mode := base.ApplyMode()
	if err := parseInto(&mode, "apply_mode", c.ApplyMode, applyModes); err != nil {
		return knockback.Profile{}, err
	}
	b.ApplyMode(mode)

	if c.SprintBuffer != nil {
		b.SprintBuffer(*c.SprintBuffer)
	}
	if c.FallingFloor != nil {
		b.FallingFloor(*c.FallingFloor)
	}
	normal, sprint := base.RangeReduction(false), base.RangeReduction(true)
	if c.RangeReduction != nil {
		normal = c.RangeReduction.curve()
	}
	if c.SprintRangeReduction != nil {
		sprint = c.SprintRangeReduction.curve()
	}
	b.RangeReduction(normal, sprint)

	for _, sc := range c.States {
		state, err := parse("victim state", sc.State, victimStates)
		if err != nil {
			return knockback.Profile{}, err
		}
		o, err := sc.override(lookup)
		if err != nil {
			return knockback.Profile{}, fmt.Errorf("state %s: %w", sc.State, err)
		}
		b.StateOverride(state, o)
	}
	return b.Build()
}

// override returns the victim state override described by the StateConfig.
func (sc StateConfig) override(lookup func(name string) (knockback.Profile, bool)) (knockback.VictimStateOverride, error) {
	o := knockback.VictimStateOverride{
		FrictionHorizontal:   sc.FrictionHorizontal,
		FrictionVertical:     sc.FrictionVertical,
		HorizontalMultiplier: sc.HorizontalMultiplier,
		VerticalMultiplier:   sc.VerticalMultiplier,
	}
	if sc.ApplyMode != "" {
		mode, err := parse("apply_mode", sc.ApplyMode, applyModes)
		if err != nil {
			return o, err
		}
		o.ApplyMode = &mode
	}
	if sc.Profile != "" {
		p, ok := lookup(sc.Profile)
		if !ok {
			return o, oerror.New("unknown profile %q", sc.Profile)
		}
		o.Profile = &p
	}
	return o, nil
}

func curveConfigOf(curve knockback.RangeReductionCurve) *CurveConfig {
	c := &CurveConfig{
		StartHorizontal:  curve.StartHorizontal,
		StartVertical:    curve.StartVertical,
		FactorHorizontal: curve.FactorHorizontal,
		FactorVertical:   curve.FactorVertical,
	}
	if !math.IsInf(curve.MaxHorizontal, 1) {
		c.MaxHorizontal = ptr(curve.MaxHorizontal)
	}
	if !math.IsInf(curve.MaxVertical, 1) {
		c.MaxVertical = ptr(curve.MaxVertical)
	}
	return c
}

// curve returns the range reduction curve described by the CurveConfig.
func (c CurveConfig) curve() knockback.RangeReductionCurve {
	curve := knockback.RangeReductionCurve{
		StartHorizontal:  c.StartHorizontal,
		StartVertical:    c.StartVertical,
		FactorHorizontal: c.FactorHorizontal,
		FactorVertical:   c.FactorVertical,
		MaxHorizontal:    math.Inf(1),
		MaxVertical:      math.Inf(1),
	}
	set(&curve.MaxHorizontal, c.MaxHorizontal)
	set(&curve.MaxVertical, c.MaxVertical)
	return curve
}

// parseInto parses the name into dst if it is not empty.
func parseInto[T fmt.Stringer](dst *T, field, name string, values []T) error {
	if name == "" {
		return nil
	}
	v, err := parse(field, name, values)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func ptr[T any](v T) *T {
	return &v
}
