package knockback

import "slices"

// Component is one of the numeric profile values that override layers may modify.
type Component uint8

const (
	ComponentHorizontal Component = iota
	ComponentVertical
	ComponentSprintHorizontal
	ComponentSprintVertical
	ComponentAirHorizontal
	ComponentAirVertical

	componentCount
)

// Components returns all components that override layers may modify.
func Components() []Component {
	return []Component{
		ComponentHorizontal, ComponentVertical,
		ComponentSprintHorizontal, ComponentSprintVertical,
		ComponentAirHorizontal, ComponentAirVertical,
	}
}

func (c Component) String() string {
	switch c {
	case ComponentHorizontal:
		return "horizontal"
	case ComponentVertical:
		return "vertical"
	case ComponentSprintHorizontal:
		return "sprint_horizontal"
	case ComponentSprintVertical:
		return "sprint_vertical"
	case ComponentAirHorizontal:
		return "air_horizontal"
	case ComponentAirVertical:
		return "air_vertical"
	}
	return "unknown"
}

// ParseComponent returns the component with the name passed.
func ParseComponent(name string) (Component, bool) {
	for _, c := range Components() {
		if c.String() == name {
			return c, true
		}
	}
	return 0, false
}

// Operation is the way a Modifier combines with a component.
type Operation uint8

const (
	// OperationMultiply multiplies the component. All multipliers of all layers are combined by product.
	OperationMultiply Operation = iota
	// OperationAdd adds to the component after every multiplier has been applied. All additive terms of all
	// layers are combined by sum.
	OperationAdd
)

// Modifier is a single numeric contribution of an OverrideLayer.
type Modifier struct {
	Component Component
	Operation Operation
	Value     float64
}

// Priority is the class of the source an OverrideLayer is attached to. Lower values take precedence.
type Priority uint8

const (
	PriorityWeapon Priority = iota
	PriorityAttacker
	PriorityVictim
	PriorityWorld
)

func (p Priority) String() string {
	switch p {
	case PriorityWeapon:
		return "weapon"
	case PriorityAttacker:
		return "attacker"
	case PriorityVictim:
		return "victim"
	case PriorityWorld:
		return "world"
	}
	return "unknown"
}

// OverrideLayer is the knockback configuration contributed by a weapon, an entity or a world. Layers are
// values: every method returns a new layer and leaves the receiver untouched.
type OverrideLayer struct {
	modifiers []Modifier
	profile   *Profile
}

// NewOverrideLayer returns an empty OverrideLayer.
func NewOverrideLayer() OverrideLayer {
	return OverrideLayer{}
}

// Multiply returns a copy of the layer with a multiplier for the component added.
func (l OverrideLayer) Multiply(c Component, factor float64) OverrideLayer {
	return l.with(Modifier{Component: c, Operation: OperationMultiply, Value: factor})
}

// Add returns a copy of the layer with an additive term for the component added.
func (l OverrideLayer) Add(c Component, term float64) OverrideLayer {
	return l.with(Modifier{Component: c, Operation: OperationAdd, Value: term})
}

// Substitute returns a copy of the layer carrying a full profile substitution. The non-numeric values of
// the highest priority substitution replace those of the default profile.
func (l OverrideLayer) Substitute(p Profile) OverrideLayer {
	l.modifiers = slices.Clip(l.modifiers)
	l.profile = &p
	return l
}

// Modifiers returns the modifiers of the layer in insertion order.
func (l OverrideLayer) Modifiers() []Modifier {
	return slices.Clone(l.modifiers)
}

// Substitution returns the full profile substitution of the layer, if any.
func (l OverrideLayer) Substitution() (Profile, bool) {
	if l.profile == nil {
		return Profile{}, false
	}
	return *l.profile, true
}

// Empty returns true if the layer contributes nothing.
func (l OverrideLayer) Empty() bool {
	return len(l.modifiers) == 0 && l.profile == nil
}

func (l OverrideLayer) with(m Modifier) OverrideLayer {
	l.modifiers = append(slices.Clip(l.modifiers), m)
	return l
}

// HasOverrideLayer is implemented by host objects, such as items, entities and worlds, that carry their own
// knockback configuration.
type HasOverrideLayer interface {
	// OverrideLayer returns the layer of the object. The bool returned is false if the object currently
	// carries no layer.
	OverrideLayer() (OverrideLayer, bool)
}

// LayerStore is a configuration storage that holds override layers for objects that do not implement
// HasOverrideLayer themselves.
type LayerStore interface {
	// Layer returns the layer stored for the subject of the priority class passed.
	Layer(class Priority, subject any) (OverrideLayer, bool)
}

// DefaultStore is a LayerStore that also holds the server default profile, such as a configuration that
// may be reloaded at runtime.
type DefaultStore interface {
	LayerStore
	// DefaultProfile returns the current server default profile. It returns false if the store holds none,
	// in which case the default profile of the Resolver is used.
	DefaultProfile() (Profile, bool)
}
