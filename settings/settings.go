package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oomph-ac/knockback/knockback"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// File contains everything that can be configured in a knockback settings file. Profiles and layers are
// lists so that they keep the order they were written in.
type File struct {
	// Default is the name of the profile used when no override applies.
	Default  string          `toml:"default" yaml:"default"`
	Profiles []ProfileConfig `toml:"profile,omitempty" yaml:"profiles,omitempty"`
	Layers   []LayerConfig   `toml:"layer,omitempty" yaml:"layers,omitempty"`
	// Worlds, Items and Entities bind the names of worlds, held items and entities to layer names.
	Worlds   map[string]string `toml:"worlds,omitempty" yaml:"worlds,omitempty"`
	Items    map[string]string `toml:"items,omitempty" yaml:"items,omitempty"`
	Entities map[string]string `toml:"entities,omitempty" yaml:"entities,omitempty"`
}

// ProfileConfig is a named profile. Every field left out keeps the value of the base profile.
type ProfileConfig struct {
	Name string `toml:"name" yaml:"name"`
	// Base is "legacy", "modern" or the name of a profile defined earlier in the file. It defaults to
	// "legacy".
	Base string `toml:"base,omitempty" yaml:"base,omitempty"`

	Horizontal       *float64 `toml:"horizontal,omitempty" yaml:"horizontal,omitempty"`
	Vertical         *float64 `toml:"vertical,omitempty" yaml:"vertical,omitempty"`
	VerticalCap      *float64 `toml:"vertical_cap,omitempty" yaml:"vertical_cap,omitempty"`
	SprintHorizontal *float64 `toml:"sprint_horizontal,omitempty" yaml:"sprint_horizontal,omitempty"`
	SprintVertical   *float64 `toml:"sprint_vertical,omitempty" yaml:"sprint_vertical,omitempty"`
	AirHorizontal    *float64 `toml:"air_horizontal,omitempty" yaml:"air_horizontal,omitempty"`
	AirVertical      *float64 `toml:"air_vertical,omitempty" yaml:"air_vertical,omitempty"`

	LookWeight       *float64 `toml:"look_weight,omitempty" yaml:"look_weight,omitempty"`
	SprintLookWeight *float64 `toml:"sprint_look_weight,omitempty" yaml:"sprint_look_weight,omitempty"`

	MeleeDirection      string `toml:"melee_direction,omitempty" yaml:"melee_direction,omitempty"`
	ProjectileDirection string `toml:"projectile_direction,omitempty" yaml:"projectile_direction,omitempty"`
	Blend               string `toml:"blend,omitempty" yaml:"blend,omitempty"`
	Fallback            string `toml:"fallback,omitempty" yaml:"fallback,omitempty"`

	FrictionModel            string   `toml:"friction_model,omitempty" yaml:"friction_model,omitempty"`
	FrictionHorizontal       *float64 `toml:"friction_horizontal,omitempty" yaml:"friction_horizontal,omitempty"`
	FrictionVertical         *float64 `toml:"friction_vertical,omitempty" yaml:"friction_vertical,omitempty"`
	SprintFrictionHorizontal *float64 `toml:"sprint_friction_horizontal,omitempty" yaml:"sprint_friction_horizontal,omitempty"`
	SprintFrictionVertical   *float64 `toml:"sprint_friction_vertical,omitempty" yaml:"sprint_friction_vertical,omitempty"`

	ApplyMode    string   `toml:"apply_mode,omitempty" yaml:"apply_mode,omitempty"`
	SprintBuffer *int64   `toml:"sprint_buffer,omitempty" yaml:"sprint_buffer,omitempty"`
	FallingFloor *float64 `toml:"falling_floor,omitempty" yaml:"falling_floor,omitempty"`

	RangeReduction       *CurveConfig `toml:"range_reduction,omitempty" yaml:"range_reduction,omitempty"`
	SprintRangeReduction *CurveConfig `toml:"sprint_range_reduction,omitempty" yaml:"sprint_range_reduction,omitempty"`

	States []StateConfig `toml:"state,omitempty" yaml:"states,omitempty"`
}

// CurveConfig is a range reduction curve. A maximum left out does not limit the reduction.
type CurveConfig struct {
	StartHorizontal  float64  `toml:"start_horizontal" yaml:"start_horizontal"`
	StartVertical    float64  `toml:"start_vertical" yaml:"start_vertical"`
	FactorHorizontal float64  `toml:"factor_horizontal" yaml:"factor_horizontal"`
	FactorVertical   float64  `toml:"factor_vertical" yaml:"factor_vertical"`
	MaxHorizontal    *float64 `toml:"max_horizontal,omitempty" yaml:"max_horizontal,omitempty"`
	MaxVertical      *float64 `toml:"max_vertical,omitempty" yaml:"max_vertical,omitempty"`
}

// StateConfig overrides a profile for one victim state: "on_ground", "airborne" or "falling".
type StateConfig struct {
	State string `toml:"state" yaml:"state"`
	// Profile is the name of a profile defined earlier in the file that replaces the profile entirely.
	Profile string `toml:"profile,omitempty" yaml:"profile,omitempty"`

	FrictionHorizontal   *float64 `toml:"friction_horizontal,omitempty" yaml:"friction_horizontal,omitempty"`
	FrictionVertical     *float64 `toml:"friction_vertical,omitempty" yaml:"friction_vertical,omitempty"`
	ApplyMode            string   `toml:"apply_mode,omitempty" yaml:"apply_mode,omitempty"`
	HorizontalMultiplier *float64 `toml:"horizontal_multiplier,omitempty" yaml:"horizontal_multiplier,omitempty"`
	VerticalMultiplier   *float64 `toml:"vertical_multiplier,omitempty" yaml:"vertical_multiplier,omitempty"`
}

// LayerConfig is a named override layer. Multiply and Add map component names, such as "horizontal" or
// "air_vertical", to their factor or term.
type LayerConfig struct {
	Name     string             `toml:"name" yaml:"name"`
	Multiply map[string]float64 `toml:"multiply,omitempty" yaml:"multiply,omitempty"`
	Add      map[string]float64 `toml:"add,omitempty" yaml:"add,omitempty"`
	// Profile is the name of a profile that substitutes the non-numeric settings of the default profile.
	Profile string `toml:"profile,omitempty" yaml:"profile,omitempty"`
}

// DefaultFile returns the default settings: the legacy and modern profiles, with the legacy profile as
// default.
func DefaultFile() File {
	return File{
		Default: "legacy",
		Profiles: []ProfileConfig{
			ProfileConfigOf("legacy", knockback.LegacyProfile()),
			ProfileConfigOf("modern", knockback.ModernProfile()),
		},
		Layers: []LayerConfig{{
			Name:     "heavy",
			Multiply: map[string]float64{"horizontal": 0.8, "vertical": 0.8},
		}},
	}
}

// SaveDefault will create and save the default settings file. If the file already exists, it will return an
// error.
func SaveDefault(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return errors.New("settings file already exists")
	}
	data, err := Encode(path, DefaultFile())
	if err != nil {
		return fmt.Errorf("failed encoding default settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed creating settings file: %w", err)
	}
	return nil
}

// Load will load the settings from the settings file at the path passed, and return an error if the file
// does not exist. The format is picked from the extension: ".yaml" and ".yml" files are YAML, anything
// else is TOML.
func Load(path string) (File, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return File{}, errors.New("settings file doesn't exist")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("error reading settings: %w", err)
	}
	f, err := Decode(path, data)
	if err != nil {
		return File{}, fmt.Errorf("error decoding settings: %w", err)
	}
	return f, nil
}

// Encode encodes the file in the format matching the extension of the path passed.
func Encode(path string, f File) ([]byte, error) {
	if isYAML(path) {
		return yaml.Marshal(f)
	}
	return toml.Marshal(f)
}

// Decode decodes data in the format matching the extension of the path passed.
func Decode(path string, data []byte) (File, error) {
	var f File
	if isYAML(path) {
		err := yaml.Unmarshal(data, &f)
		return f, err
	}
	err := toml.Unmarshal(data, &f)
	return f, err
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
