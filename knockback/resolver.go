package knockback

import "math"

// Subjects holds the objects of a strike that may carry an OverrideLayer. Any of them may be nil.
type Subjects struct {
	Weapon   any
	Attacker any
	Victim   any
	World    any
}

// Resolver merges the server default profile with the override layers of a strike into the profile in
// effect for that strike.
type Resolver struct {
	def   Profile
	store LayerStore
}

// NewResolver returns a Resolver using the default profile passed. The store may be nil.
func NewResolver(def Profile, store LayerStore) *Resolver {
	return &Resolver{def: def, store: store}
}

// Default returns the server default profile of the Resolver. A store implementing DefaultStore provides
// the default instead of the profile passed to NewResolver, unless it holds none.
func (r *Resolver) Default() Profile {
	if ds, ok := r.store.(DefaultStore); ok {
		if p, ok := ds.DefaultProfile(); ok {
			return p
		}
	}
	return r.def
}

// Layers collects the override layers of the subjects passed, highest priority first. A subject
// implementing HasOverrideLayer takes precedence over the LayerStore.
func (r *Resolver) Layers(s Subjects) []OverrideLayer {
	layers := make([]OverrideLayer, 0, 4)
	for class, subject := range [...]any{s.Weapon, s.Attacker, s.Victim, s.World} {
		if l, ok := r.layer(Priority(class), subject); ok {
			layers = append(layers, l)
		}
	}
	return layers
}

func (r *Resolver) layer(class Priority, subject any) (OverrideLayer, bool) {
	if subject == nil {
		return OverrideLayer{}, false
	}
	if h, ok := subject.(HasOverrideLayer); ok {
		if l, ok := h.OverrideLayer(); ok && !l.Empty() {
			return l, true
		}
	}
	if r.store != nil {
		if l, ok := r.store.Layer(class, subject); ok && !l.Empty() {
			return l, true
		}
	}
	return OverrideLayer{}, false
}

// Resolve returns the effective profile for a strike involving the subjects passed.
func (r *Resolver) Resolve(s Subjects) Profile {
	return ResolveLayers(r.Default(), r.Layers(s)...)
}

// ResolveLayers merges the layers passed, highest priority first, onto the default profile. Every
// numeric component starts from the default value, is multiplied by the product of all multipliers and
// then has the sum of all additive terms added. Non-numeric values come from the first layer carrying a
// full substitution, or from the default profile if none does. The vertical cap grows with the vertical
// overrides so that it never clips them.
//
// ResolveLayers never fails: the result is not validated again.
func ResolveLayers(def Profile, layers ...OverrideLayer) Profile {
	var mul, add [componentCount]float64
	for i := range mul {
		mul[i] = 1
	}

	out := def
	substituted := false
	for _, l := range layers {
		for _, m := range l.modifiers {
			if m.Component >= componentCount {
				continue
			}
			switch m.Operation {
			case OperationMultiply:
				mul[m.Component] *= m.Value
			case OperationAdd:
				add[m.Component] += m.Value
			}
		}
		if l.profile != nil && !substituted {
			out, substituted = *l.profile, true
		}
	}

	for _, c := range Components() {
		out.setComponent(c, def.component(c)*mul[c]+add[c])
	}
	out.verticalCap = def.verticalCap*math.Max(1, mul[ComponentVertical]) + math.Max(0, add[ComponentVertical])
	return out
}
