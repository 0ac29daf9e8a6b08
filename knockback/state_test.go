package knockback_test

import (
	"testing"

	"github.com/oomph-ac/knockback/knockback"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyVictim(t *testing.T) {
	assert.Equal(t, knockback.VictimOnGround, knockback.ClassifyVictim(true, -10, -0.08))
	assert.Equal(t, knockback.VictimAirborne, knockback.ClassifyVictim(false, 0, -0.08))
	assert.Equal(t, knockback.VictimAirborne, knockback.ClassifyVictim(false, -0.07, -0.08))
	assert.Equal(t, knockback.VictimFalling, knockback.ClassifyVictim(false, -0.08, -0.08))
	assert.Equal(t, knockback.VictimFalling, knockback.ClassifyVictim(false, -3, -0.08))
}

func TestSelectStateWithoutOverride(t *testing.T) {
	p := knockback.LegacyProfile()
	for _, state := range []knockback.VictimState{knockback.VictimOnGround, knockback.VictimAirborne, knockback.VictimFalling} {
		got := knockback.SelectState(p, state)
		assert.Equal(t, p.Horizontal(), got.Horizontal())
		assert.Equal(t, p.ApplyMode(), got.ApplyMode())
	}
}

func TestSelectStateFields(t *testing.T) {
	p := knockback.ModernProfile()

	air := knockback.SelectState(p, knockback.VictimAirborne)
	h, v := air.Friction(false)
	assert.Equal(t, 0.5, h)
	assert.Equal(t, 1.0, v)
	assert.Equal(t, 0.0, air.Vertical())
	assert.Equal(t, p.Horizontal(), air.Horizontal())

	ground := knockback.SelectState(p, knockback.VictimOnGround)
	assert.Equal(t, p.Vertical(), ground.Vertical())
}

func TestSelectStateFrictionBeatsSprintFriction(t *testing.T) {
	add := knockback.ApplyAdd
	p, err := knockback.NewBuilder().
		Friction(knockback.FrictionRetain, 0.5, 0.5).
		SprintFriction(0.8, 0.8).
		StateOverride(knockback.VictimFalling, knockback.VictimStateOverride{FrictionHorizontal: ptr(0.1), ApplyMode: &add}).
		Build()
	require.NoError(t, err)

	h, _ := p.Friction(true)
	assert.Equal(t, 0.8, h)

	falling := knockback.SelectState(p, knockback.VictimFalling)
	h, v := falling.Friction(true)
	assert.Equal(t, 0.1, h)
	assert.Equal(t, 0.5, v)
	assert.Equal(t, knockback.ApplyAdd, falling.ApplyMode())
}

func TestSelectStateProfileReplaces(t *testing.T) {
	replacement, err := knockback.NewBuilder().Strength(1, 2).Build()
	require.NoError(t, err)
	p, err := knockback.NewBuilder().
		StateOverride(knockback.VictimAirborne, knockback.VictimStateOverride{Profile: &replacement, HorizontalMultiplier: ptr(3.0)}).
		Build()
	require.NoError(t, err)

	air := knockback.SelectState(p, knockback.VictimAirborne)
	assert.Equal(t, 1.0, air.Horizontal())
	assert.Equal(t, 2.0, air.Vertical())
}
