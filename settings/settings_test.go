package settings_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/oomph-ac/knockback/knockback"
	"github.com/oomph-ac/knockback/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tomlSettings = `
default = "combo"

[[profile]]
name = "combo"
base = "modern"
horizontal = 0.35
vertical = 0.3
sprint_buffer = 2
fallback = "random"

[profile.range_reduction]
start_horizontal = 3.0
start_vertical = 3.0
factor_horizontal = 0.1
factor_vertical = 0.0
max_horizontal = 0.2

[[profile.state]]
state = "falling"
apply_mode = "add"

[[profile]]
name = "bow"
base = "combo"
projectile_direction = "projectile_position"

[[layer]]
name = "nether"
[layer.multiply]
horizontal = 1.5
[layer.add]
vertical = 0.1

[[layer]]
name = "punch"
profile = "bow"

[worlds]
nether = "nether"

[items]
"minecraft:bow" = "punch"
`

const yamlSettings = `
default: combo
profiles:
  - name: combo
    base: modern
    horizontal: 0.35
    vertical: 0.3
    sprint_buffer: 2
    fallback: random
    range_reduction:
      start_horizontal: 3
      start_vertical: 3
      factor_horizontal: 0.1
      factor_vertical: 0
      max_horizontal: 0.2
    states:
      - state: falling
        apply_mode: add
  - name: bow
    base: combo
    projectile_direction: projectile_position
layers:
  - name: nether
    multiply:
      horizontal: 1.5
    add:
      vertical: 0.1
  - name: punch
    profile: bow
worlds:
  nether: nether
items:
  minecraft:bow: punch
`

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

type world string

func (w world) Name() string { return string(w) }

func TestLoadFormats(t *testing.T) {
	for name, data := range map[string]string{"knockback.toml": tomlSettings, "knockback.yaml": yamlSettings} {
		t.Run(name, func(t *testing.T) {
			r, err := settings.Open(writeFile(t, name, data))
			require.NoError(t, err)
			s := r.Snapshot()

			def, p := s.Default()
			assert.Equal(t, "combo", def)
			assert.Equal(t, 0.35, p.Horizontal())
			assert.Equal(t, 0.3, p.Vertical())
			assert.Equal(t, int64(2), p.SprintBuffer())
			assert.Equal(t, knockback.FallbackRandom, p.Fallback())
			assert.Equal(t, knockback.FrictionRetain, p.FrictionModel(), "values left out must come from the base")
			assert.Equal(t, 0.2, p.RangeReduction(false).MaxHorizontal)
			assert.Equal(t, knockback.NoRangeReduction(), p.RangeReduction(true))

			falling, ok := p.StateOverride(knockback.VictimFalling)
			require.True(t, ok)
			assert.Equal(t, knockback.ApplyAdd, *falling.ApplyMode)

			bow, ok := s.Profile("bow")
			require.True(t, ok)
			assert.Equal(t, knockback.DirectionProjectilePosition, bow.DirectionMode(knockback.StrikeProjectile))
			assert.Equal(t, 0.35, bow.Horizontal())
			assert.Equal(t, []string{"combo", "bow"}, s.ProfileNames())
			assert.Equal(t, []string{"nether", "punch"}, s.LayerNames())

			l, ok := r.Layer(knockback.PriorityWorld, world("nether"))
			require.True(t, ok)
			resolved := knockback.ResolveLayers(p, l)
			assert.InDelta(t, 0.525, resolved.Horizontal(), 1e-12)
			assert.InDelta(t, 0.4, resolved.Vertical(), 1e-12)

			l, ok = r.Layer(knockback.PriorityWeapon, "minecraft:bow")
			require.True(t, ok)
			sub, ok := l.Substitution()
			require.True(t, ok)
			assert.Equal(t, knockback.DirectionProjectilePosition, sub.DirectionMode(knockback.StrikeProjectile))

			_, ok = r.Layer(knockback.PriorityWorld, world("overworld"))
			assert.False(t, ok)
			_, ok = r.Layer(knockback.PriorityVictim, "nether")
			assert.False(t, ok, "bindings are per class")
			_, ok = r.Layer(knockback.PriorityWorld, 42)
			assert.False(t, ok)
		})
	}
}

func TestSaveDefaultRoundTrip(t *testing.T) {
	for _, name := range []string{"knockback.toml", "knockback.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, settings.SaveDefault(path))
			require.Error(t, settings.SaveDefault(path), "existing files must not be overwritten")

			r, err := settings.Open(path)
			require.NoError(t, err)

			def, p := r.Snapshot().Default()
			assert.Equal(t, "legacy", def)
			assert.Equal(t, knockback.LegacyProfile(), p)

			modern, ok := r.Profile("modern")
			require.True(t, ok)
			assert.Equal(t, knockback.ModernProfile(), modern)

			_, ok = r.Snapshot().LayerByName("heavy")
			assert.True(t, ok)
		})
	}
}

func TestCompileErrors(t *testing.T) {
	cases := map[string]settings.File{
		"unknown default":   {Default: "nope"},
		"unknown base":      {Profiles: []settings.ProfileConfig{{Name: "a", Base: "b"}}},
		"forward base":      {Profiles: []settings.ProfileConfig{{Name: "a", Base: "b"}, {Name: "b"}}},
		"duplicate profile": {Profiles: []settings.ProfileConfig{{Name: "a"}, {Name: "a"}}},
		"missing name":      {Profiles: []settings.ProfileConfig{{}}},
		"unknown enum":      {Profiles: []settings.ProfileConfig{{Name: "a", Blend: "sideways"}}},
		"unknown state":     {Profiles: []settings.ProfileConfig{{Name: "a", States: []settings.StateConfig{{State: "swimming"}}}}},
		"state profile":     {Profiles: []settings.ProfileConfig{{Name: "a", States: []settings.StateConfig{{State: "falling", Profile: "b"}}}}},
		"unknown component": {Layers: []settings.LayerConfig{{Name: "l", Multiply: map[string]float64{"sideways": 2}}}},
		"unknown layer":     {Worlds: map[string]string{"nether": "missing"}},
		"substitution":      {Layers: []settings.LayerConfig{{Name: "l", Profile: "missing"}}},
	}
	for name, f := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.Compile()
			require.Error(t, err)
		})
	}
}

func TestCompileInvalidProfile(t *testing.T) {
	negative := -1.0
	_, err := settings.File{Profiles: []settings.ProfileConfig{{Name: "a", Horizontal: &negative}}}.Compile()
	require.Error(t, err)

	var perr *knockback.ProfileError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "horizontal", perr.Field)
}

func TestReloadKeepsSnapshotOnError(t *testing.T) {
	path := writeFile(t, "knockback.toml", tomlSettings)
	r, err := settings.Open(path)
	require.NoError(t, err)
	before := r.Snapshot()

	require.NoError(t, os.WriteFile(path, []byte(`default = "missing"`), 0644))
	require.Error(t, r.Reload(path))
	assert.Same(t, before, r.Snapshot())

	require.NoError(t, os.WriteFile(path, []byte(`default = "modern"`), 0644))
	require.NoError(t, r.Reload(path))
	assert.Equal(t, knockback.ModernProfile(), defaultOf(t, r))
}

func TestRegistryDrivesSystem(t *testing.T) {
	path := writeFile(t, "knockback.toml", `default = "legacy"`)
	r, err := settings.Open(path)
	require.NoError(t, err)

	res := knockback.NewResolver(knockback.ModernProfile(), r)
	assert.Equal(t, knockback.LegacyProfile(), res.Default())

	require.NoError(t, os.WriteFile(path, []byte(`default = "modern"`), 0644))
	require.NoError(t, r.Reload(path))
	assert.Equal(t, knockback.ModernProfile(), res.Default())
}

func TestNewRegistryDefaults(t *testing.T) {
	r, err := settings.NewRegistry(nil)
	require.NoError(t, err)
	assert.Equal(t, knockback.LegacyProfile(), defaultOf(t, r))
	assert.Equal(t, []string{"legacy", "modern"}, r.Snapshot().ProfileNames())
}

func TestLayerModifiersSorted(t *testing.T) {
	f := settings.DefaultFile()
	f.Layers = append(f.Layers, settings.LayerConfig{
		Name:     "mixed",
		Multiply: map[string]float64{"vertical": 1.1, "horizontal": 1.3, "air_horizontal": 0.7, "sprint_vertical": 1.7},
		Add:      map[string]float64{"vertical": 0.2, "air_vertical": 0.1},
	})
	want := []knockback.Modifier{
		{Component: knockback.ComponentAirHorizontal, Operation: knockback.OperationMultiply, Value: 0.7},
		{Component: knockback.ComponentHorizontal, Operation: knockback.OperationMultiply, Value: 1.3},
		{Component: knockback.ComponentSprintVertical, Operation: knockback.OperationMultiply, Value: 1.7},
		{Component: knockback.ComponentVertical, Operation: knockback.OperationMultiply, Value: 1.1},
		{Component: knockback.ComponentAirVertical, Operation: knockback.OperationAdd, Value: 0.1},
		{Component: knockback.ComponentVertical, Operation: knockback.OperationAdd, Value: 0.2},
	}
	for i := 0; i < 20; i++ {
		s, err := f.Compile()
		require.NoError(t, err)
		l, ok := s.LayerByName("mixed")
		require.True(t, ok)
		require.Equal(t, want, l.Modifiers())
	}
}

func defaultOf(t *testing.T, r *settings.Registry) knockback.Profile {
	t.Helper()
	p, ok := r.DefaultProfile()
	require.True(t, ok)
	return p
}

func TestNilRegistryStore(t *testing.T) {
	var r *settings.Registry
	_, ok := r.DefaultProfile()
	assert.False(t, ok)
	_, ok = r.Layer(knockback.PriorityWorld, "nether")
	assert.False(t, ok)

	def := knockback.ModernProfile()
	sys := knockback.Config{Default: &def, Store: r}.New()
	assert.Equal(t, def, sys.Resolver().Default())
}
