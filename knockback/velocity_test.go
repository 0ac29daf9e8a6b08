package knockback_test

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/knockback/knockback"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertVec(t *testing.T, want, got mgl64.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-9, "component %d of %v, want %v", i, got, want)
	}
}

var east = knockback.Direction{Vec: mgl64.Vec3{1, 0, 0}, Scale: 1}

func TestIntegrateLegacyFriction(t *testing.T) {
	i := knockback.Integrator{Scale: 1}
	s := knockback.Strength{Horizontal: 0.4, Vertical: 0.4}

	// Gravity pulling a grounded victim down is discarded before friction applies.
	v := i.Integrate(knockback.LegacyProfile(), east, s, mgl64.Vec3{1, -0.5, 1}, knockback.VictimOnGround, false)
	assertVec(t, mgl64.Vec3{0.9, 0.4, 0.5}, v)

	// The vertical cap bounds the lift of airborne victims.
	v = i.Integrate(knockback.LegacyProfile(), east, s, mgl64.Vec3{0, 1, 0}, knockback.VictimAirborne, false)
	assertVec(t, mgl64.Vec3{0.4, 0.4, 0}, v)

	p, err := knockback.NewBuilder().Friction(knockback.FrictionDivide, 0, 0).Build()
	require.NoError(t, err)
	v = i.Integrate(p, east, s, mgl64.Vec3{3, 0, 3}, knockback.VictimOnGround, false)
	assertVec(t, mgl64.Vec3{0.4, 0.4, 0}, v)
}

func TestIntegrateRetainFriction(t *testing.T) {
	i := knockback.Integrator{Scale: 1}
	p, err := knockback.NewBuilder().
		Friction(knockback.FrictionRetain, 0.25, 0.5).
		SprintFriction(1, 1).
		VerticalCap(10).
		Build()
	require.NoError(t, err)
	s := knockback.Strength{Horizontal: 0.5, Vertical: 0.2}

	v := i.Integrate(p, east, s, mgl64.Vec3{2, 1, -4}, knockback.VictimAirborne, false)
	assertVec(t, mgl64.Vec3{1, 0.7, -1}, v)

	v = i.Integrate(p, east, s, mgl64.Vec3{2, 1, -4}, knockback.VictimAirborne, true)
	assertVec(t, mgl64.Vec3{2.5, 1.2, -4}, v)
}

func TestIntegrateFallingFloor(t *testing.T) {
	i := knockback.Integrator{Scale: 1}
	p, err := knockback.NewBuilder().Strength(0.4, 0.01).FallingFloor(0.1).Build()
	require.NoError(t, err)

	v := i.Integrate(p, east, knockback.Strength{Horizontal: 0.4, Vertical: 0.01}, mgl64.Vec3{0, -0.6, 0}, knockback.VictimFalling, false)
	assert.InDelta(t, 0.1, v.Y(), 1e-12)

	// Falling victims are not bound by the vertical cap.
	v = i.Integrate(p, east, knockback.Strength{Horizontal: 0.4, Vertical: 2}, mgl64.Vec3{0, -0.6, 0}, knockback.VictimFalling, false)
	assert.InDelta(t, 2, v.Y(), 1e-12)

	for _, vertical := range []float64{0, 0.05, 0.1, 0.3, 1} {
		v = knockback.Integrator{Scale: 20}.Integrate(p, east, knockback.Strength{Vertical: vertical}, mgl64.Vec3{0, -12, 0}, knockback.VictimFalling, false)
		assert.GreaterOrEqual(t, v.Y(), 0.1-1e-9)
		assert.GreaterOrEqual(t, v.Y(), vertical*20-1e-9)
	}
}

func TestIntegrateAdd(t *testing.T) {
	p, err := knockback.NewBuilder().ApplyMode(knockback.ApplyAdd).Build()
	require.NoError(t, err)

	dir := knockback.Direction{Vec: mgl64.Vec3{1, 0, 1}.Normalize(), Scale: 1}
	s := knockback.Strength{Horizontal: 0.5 * math.Sqrt2, Vertical: 0.3}
	v := knockback.Integrator{Scale: 1}.Integrate(p, dir, s, mgl64.Vec3{1, 0, 1}, knockback.VictimOnGround, false)
	assertVec(t, mgl64.Vec3{1.5, 0.3, 1.5}, v)
}

func TestIntegrateScale(t *testing.T) {
	north := knockback.Direction{Vec: mgl64.Vec3{0, 0, -1}, Scale: 1}
	s := knockback.Strength{Horizontal: 0.4, Vertical: 0.4}

	v := knockback.Integrator{}.Integrate(knockback.LegacyProfile(), north, s, mgl64.Vec3{}, knockback.VictimOnGround, false)
	assertVec(t, mgl64.Vec3{0, 8, -8}, v)

	// A direction scale from blended vectors weakens the horizontal impulse only.
	north.Scale = 0.5
	v = knockback.Integrator{Scale: 1}.Integrate(knockback.LegacyProfile(), north, s, mgl64.Vec3{}, knockback.VictimOnGround, false)
	assertVec(t, mgl64.Vec3{0, 0.4, -0.2}, v)
}
