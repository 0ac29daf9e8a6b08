package knockback_test

import (
	"testing"

	"github.com/oomph-ac/knockback/knockback"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type layered struct {
	l knockback.OverrideLayer
}

func (l layered) OverrideLayer() (knockback.OverrideLayer, bool) {
	return l.l, true
}

type mapStore map[knockback.Priority]knockback.OverrideLayer

func (m mapStore) Layer(class knockback.Priority, _ any) (knockback.OverrideLayer, bool) {
	l, ok := m[class]
	return l, ok
}

func TestResolveMultipliesThenAdds(t *testing.T) {
	def := knockback.LegacyProfile()
	weapon := knockback.NewOverrideLayer().
		Add(knockback.ComponentHorizontal, 0.1).
		Multiply(knockback.ComponentHorizontal, 2)
	world := knockback.NewOverrideLayer().Multiply(knockback.ComponentHorizontal, 0.5)

	p := knockback.ResolveLayers(def, weapon, world)
	// 0.4 * 2 * 0.5 + 0.1, regardless of the order the modifiers were declared in.
	assert.InDelta(t, 0.5, p.Horizontal(), 1e-12)
	assert.Equal(t, def.Vertical(), p.Vertical())
}

func TestResolveIsOrderIndependent(t *testing.T) {
	def := knockback.LegacyProfile()
	layers := []knockback.OverrideLayer{
		knockback.NewOverrideLayer().Multiply(knockback.ComponentVertical, 2).Add(knockback.ComponentAirHorizontal, 0.25),
		knockback.NewOverrideLayer().Multiply(knockback.ComponentVertical, 0.5).Add(knockback.ComponentVertical, 0.125),
		knockback.NewOverrideLayer().Multiply(knockback.ComponentAirHorizontal, 4).Add(knockback.ComponentSprintHorizontal, 0.5),
	}
	want := knockback.ResolveLayers(def, layers...)

	perms := [][]int{{0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}
	for _, perm := range perms {
		ordered := make([]knockback.OverrideLayer, 0, len(layers))
		for _, i := range perm {
			ordered = append(ordered, layers[i])
		}
		got := knockback.ResolveLayers(def, ordered...)
		for _, c := range knockback.Components() {
			assert.InDelta(t, componentOf(want, c), componentOf(got, c), 1e-12, "component %v, order %v", c, perm)
		}
		assert.InDelta(t, want.VerticalCap(), got.VerticalCap(), 1e-12)
	}
}

func TestResolveScalesVerticalCap(t *testing.T) {
	def := knockback.LegacyProfile()

	p := knockback.ResolveLayers(def, knockback.NewOverrideLayer().Multiply(knockback.ComponentVertical, 3).Add(knockback.ComponentVertical, 0.2))
	assert.InDelta(t, 0.4*3+0.2, p.VerticalCap(), 1e-12)

	// A multiplier below one and a negative term never shrink the cap.
	p = knockback.ResolveLayers(def, knockback.NewOverrideLayer().Multiply(knockback.ComponentVertical, 0.5).Add(knockback.ComponentVertical, -0.1))
	assert.InDelta(t, 0.4, p.VerticalCap(), 1e-12)
	assert.InDelta(t, 0.1, p.Vertical(), 1e-12)
}

func TestResolveSubstitutionPriority(t *testing.T) {
	def := knockback.LegacyProfile()
	weaponProfile, err := knockback.NewBuilder().Strength(9, 9).Direction(knockback.DirectionVictimFacing, knockback.DirectionVictimFacing).Build()
	require.NoError(t, err)
	worldProfile, err := knockback.NewBuilder().ApplyMode(knockback.ApplyAdd).Build()
	require.NoError(t, err)

	r := knockback.NewResolver(def, nil)
	p := r.Resolve(knockback.Subjects{
		Weapon: layered{knockback.NewOverrideLayer().Substitute(weaponProfile)},
		World:  layered{knockback.NewOverrideLayer().Substitute(worldProfile)},
	})
	assert.Equal(t, knockback.DirectionVictimFacing, p.DirectionMode(knockback.StrikeMelee))
	assert.Equal(t, knockback.ApplySet, p.ApplyMode(), "lower priority substitution must lose")
	// Numeric components always start from the server default.
	assert.Equal(t, def.Horizontal(), p.Horizontal())

	p = r.Resolve(knockback.Subjects{World: layered{knockback.NewOverrideLayer().Substitute(worldProfile)}})
	assert.Equal(t, knockback.ApplyAdd, p.ApplyMode())
}

func TestResolveUsesStoreForPlainSubjects(t *testing.T) {
	store := mapStore{
		knockback.PriorityWorld:  knockback.NewOverrideLayer().Multiply(knockback.ComponentHorizontal, 2),
		knockback.PriorityVictim: knockback.NewOverrideLayer().Add(knockback.ComponentHorizontal, 1),
	}
	r := knockback.NewResolver(knockback.LegacyProfile(), store)

	p := r.Resolve(knockback.Subjects{World: "overworld"})
	assert.InDelta(t, 0.8, p.Horizontal(), 1e-12)

	// Nil subjects are never looked up.
	assert.Len(t, r.Layers(knockback.Subjects{}), 0)
	assert.Len(t, r.Layers(knockback.Subjects{World: "overworld", Victim: "zombie"}), 2)
}

func TestResolveNeverFails(t *testing.T) {
	p := knockback.ResolveLayers(knockback.LegacyProfile(),
		knockback.NewOverrideLayer().Multiply(knockback.ComponentHorizontal, 0).Add(knockback.ComponentVertical, -5))
	assert.Equal(t, 0.0, p.Horizontal())
	assert.InDelta(t, -4.6, p.Vertical(), 1e-12)
}

func componentOf(p knockback.Profile, c knockback.Component) float64 {
	switch c {
	case knockback.ComponentHorizontal:
		return p.Horizontal()
	case knockback.ComponentVertical:
		return p.Vertical()
	case knockback.ComponentSprintHorizontal:
		return p.SprintHorizontal()
	case knockback.ComponentSprintVertical:
		return p.SprintVertical()
	case knockback.ComponentAirHorizontal:
		return p.AirHorizontal()
	case knockback.ComponentAirVertical:
		return p.AirVertical()
	}
	return 0
}
