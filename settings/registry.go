package settings

import (
	"fmt"
	"maps"
	"slices"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/oomph-ac/knockback/knockback"
	"github.com/oomph-ac/knockback/oerror"
	"go.uber.org/atomic"
)

// Named is implemented by subjects bound to override layers by name, such as worlds, entities and items.
type Named interface {
	Name() string
}

// Snapshot is an immutable, compiled settings file.
type Snapshot struct {
	defaultName string
	profiles    *orderedmap.OrderedMap[string, knockback.Profile]
	layers      *orderedmap.OrderedMap[string, knockback.OverrideLayer]
	// bindings maps subject names to layer names for every priority class.
	bindings [4]map[string]string
}

// Compile validates the file and builds every profile and layer it contains. Profiles may only refer to
// profiles defined before them.
func (f File) Compile() (*Snapshot, error) {
	s := &Snapshot{
		profiles: orderedmap.NewOrderedMap[string, knockback.Profile](),
		layers:   orderedmap.NewOrderedMap[string, knockback.OverrideLayer](),
	}
	for _, c := range f.Profiles {
		if c.Name == "" {
			return nil, oerror.New("profile without a name")
		}
		if _, ok := s.profiles.Get(c.Name); ok {
			return nil, oerror.New("duplicate profile %q", c.Name)
		}
		base, ok := s.base(c.Base)
		if !ok {
			return nil, oerror.New("profile %q: unknown base %q", c.Name, c.Base)
		}
		p, err := c.build(base, s.profiles.Get)
		if err != nil {
			return nil, fmt.Errorf("profile %q: %w", c.Name, err)
		}
		s.profiles.Set(c.Name, p)
	}

	s.defaultName = f.Default
	if s.defaultName == "" {
		s.defaultName = "legacy"
	}
	if _, ok := s.profiles.Get(s.defaultName); !ok {
		p, ok := s.base(s.defaultName)
		if !ok {
			return nil, oerror.New("unknown default profile %q", s.defaultName)
		}
		s.profiles.Set(s.defaultName, p)
	}

	for _, c := range f.Layers {
		if c.Name == "" {
			return nil, oerror.New("layer without a name")
		}
		if _, ok := s.layers.Get(c.Name); ok {
			return nil, oerror.New("duplicate layer %q", c.Name)
		}
		l, err := s.layer(c)
		if err != nil {
			return nil, fmt.Errorf("layer %q: %w", c.Name, err)
		}
		s.layers.Set(c.Name, l)
	}

	bindings := [4]map[string]string{
		knockback.PriorityWeapon:   f.Items,
		knockback.PriorityAttacker: f.Entities,
		knockback.PriorityVictim:   f.Entities,
		knockback.PriorityWorld:    f.Worlds,
	}
	for class, m := range bindings {
		for subject, layer := range m {
			if _, ok := s.layers.Get(layer); !ok {
				return nil, oerror.New("%s %q is bound to unknown layer %q", knockback.Priority(class), subject, layer)
			}
		}
		s.bindings[class] = m
	}
	return s, nil
}

// base returns the profile a profile configuration starts from.
func (s *Snapshot) base(name string) (knockback.Profile, bool) {
	if p, ok := s.profiles.Get(name); ok {
		return p, true
	}
	switch name {
	case "", "legacy":
		return knockback.LegacyProfile(), true
	case "modern":
		return knockback.ModernProfile(), true
	}
	return knockback.Profile{}, false
}

// layer builds the override layer described by the LayerConfig. Modifiers are added sorted by component
// name, so that compiling the same file always yields the same layer.
func (s *Snapshot) layer(c LayerConfig) (knockback.OverrideLayer, error) {
	l := knockback.NewOverrideLayer()
	for _, name := range slices.Sorted(maps.Keys(c.Multiply)) {
		comp, ok := knockback.ParseComponent(name)
		if !ok {
			return l, oerror.New("unknown component %q", name)
		}
		l = l.Multiply(comp, c.Multiply[name])
	}
	for _, name := range slices.Sorted(maps.Keys(c.Add)) {
		comp, ok := knockback.ParseComponent(name)
		if !ok {
			return l, oerror.New("unknown component %q", name)
		}
		l = l.Add(comp, c.Add[name])
	}
	if c.Profile != "" {
		p, ok := s.profiles.Get(c.Profile)
		if !ok {
			return l, oerror.New("unknown profile %q", c.Profile)
		}
		l = l.Substitute(p)
	}
	return l, nil
}

// Default returns the name of the default profile and the profile itself.
func (s *Snapshot) Default() (string, knockback.Profile) {
	p, _ := s.profiles.Get(s.defaultName)
	return s.defaultName, p
}

// Profile returns the profile with the name passed.
func (s *Snapshot) Profile(name string) (knockback.Profile, bool) {
	return s.profiles.Get(name)
}

// ProfileNames returns the names of all profiles in the order they were defined.
func (s *Snapshot) ProfileNames() []string {
	return s.profiles.Keys()
}

// LayerByName returns the layer with the name passed.
func (s *Snapshot) LayerByName(name string) (knockback.OverrideLayer, bool) {
	return s.layers.Get(name)
}

// LayerNames returns the names of all layers in the order they were defined.
func (s *Snapshot) LayerNames() []string {
	return s.layers.Keys()
}

// Layer returns the layer bound to the subject passed. Subjects are bound by their name: the subject must
// be a string or implement Named.
func (s *Snapshot) Layer(class knockback.Priority, subject any) (knockback.OverrideLayer, bool) {
	if int(class) >= len(s.bindings) {
		return knockback.OverrideLayer{}, false
	}
	var name string
	switch v := subject.(type) {
	case string:
		name = v
	case Named:
		name = v.Name()
	default:
		return knockback.OverrideLayer{}, false
	}
	layer, ok := s.bindings[class][name]
	if !ok {
		return knockback.OverrideLayer{}, false
	}
	return s.layers.Get(layer)
}

// Registry holds the current Snapshot and may be shared by any number of goroutines. It implements
// knockback.DefaultStore, so a knockback.System using it follows every reload.
type Registry struct {
	snapshot atomic.Pointer[Snapshot]
}

// NewRegistry returns a Registry holding the snapshot passed. If nil, the registry holds the compiled
// DefaultFile.
func NewRegistry(s *Snapshot) (*Registry, error) {
	if s == nil {
		var err error
		if s, err = DefaultFile().Compile(); err != nil {
			return nil, err
		}
	}
	r := &Registry{}
	r.snapshot.Store(s)
	return r, nil
}

// Open loads and compiles the settings file at the path passed into a new Registry.
func Open(path string) (*Registry, error) {
	s, err := compileFile(path)
	if err != nil {
		return nil, err
	}
	return NewRegistry(s)
}

// Reload loads and compiles the settings file at the path passed and swaps it in. If anything fails, the
// current snapshot is kept.
func (r *Registry) Reload(path string) error {
	s, err := compileFile(path)
	if err != nil {
		return err
	}
	r.snapshot.Store(s)
	return nil
}

// Snapshot returns the current snapshot, or nil for a nil Registry.
func (r *Registry) Snapshot() *Snapshot {
	if r == nil {
		return nil
	}
	return r.snapshot.Load()
}

// DefaultProfile returns the default profile of the current snapshot. It returns false for a nil
// Registry, so that a System configured with one falls back to its own default.
func (r *Registry) DefaultProfile() (knockback.Profile, bool) {
	s := r.Snapshot()
	if s == nil {
		return knockback.Profile{}, false
	}
	_, p := s.Default()
	return p, true
}

// Profile returns the profile with the name passed from the current snapshot.
func (r *Registry) Profile(name string) (knockback.Profile, bool) {
	s := r.Snapshot()
	if s == nil {
		return knockback.Profile{}, false
	}
	return s.Profile(name)
}

// Layer returns the layer bound to the subject passed in the current snapshot.
func (r *Registry) Layer(class knockback.Priority, subject any) (knockback.OverrideLayer, bool) {
	s := r.Snapshot()
	if s == nil {
		return knockback.OverrideLayer{}, false
	}
	return s.Layer(class, subject)
}

func compileFile(path string) (*Snapshot, error) {
	f, err := Load(path)
	if err != nil {
		return nil, err
	}
	s, err := f.Compile()
	if err != nil {
		return nil, fmt.Errorf("error compiling settings: %w", err)
	}
	return s, nil
}
