package modes

import "image"

// RenderFunc paints exactly one frame. It must be a pure function of its
// arguments: the same (t, width, height, period, scaleFactor) always produce
// the same pixels, and all animated quantities complete a whole number of
// cycles per loop so t=0 and t=period render identically.
//
// Render functions never panic for in-range input; degenerate math is
// clamped inside.
type RenderFunc func(dst *image.RGBA, t float64, width, height int, period, scaleFactor float64)

// Descriptor describes one visual mode for selection UIs and lookup.
type Descriptor struct {
	ID          string
	Name        string
	Description string
	Render      RenderFunc
}

// Registry is an ordered id -> descriptor table. It is populated once at
// startup by the host and read-only afterwards; it is not safe for
// concurrent registration.
type Registry struct {
	order []string
	byID  map[string]Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]Descriptor)}
}

// Register adds a descriptor. Registering an id twice is a programmer error;
// the policy is last-write-wins: the new descriptor replaces the old one but
// keeps the original registration order slot.
func (r *Registry) Register(d Descriptor) {
	if _, exists := r.byID[d.ID]; !exists {
		r.order = append(r.order, d.ID)
	}
	r.byID[d.ID] = d
}

// Lookup returns the descriptor for id. The second result is false when the
// id is unknown; Lookup never panics.
func (r *Registry) Lookup(id string) (Descriptor, bool) {
	d, ok := r.byID[id]
	return d, ok
}

// All returns every registered descriptor in registration order. The order
// is stable between calls absent new registrations.
func (r *Registry) All() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Len returns the number of registered modes.
func (r *Registry) Len() int {
	return len(r.order)
}

// Builtin returns a fresh registry holding every built-in visual mode.
// Each caller gets its own instance, so a live preview and an export can
// hold independent registries without shared state.
func Builtin() *Registry {
	r := NewRegistry()
	r.Register(Descriptor{
		ID:          "gradientflow",
		Name:        "Gradient Flow",
		Description: "Slowly rotating color wash with drifting light orbs",
		Render:      renderGradientFlow,
	})
	r.Register(Descriptor{
		ID:          "blob",
		Name:        "Breathing Blob",
		Description: "A soft organic shape expanding and contracting with the breath",
		Render:      renderBlob,
	})
	r.Register(Descriptor{
		ID:          "nebula",
		Name:        "Nebula Clouds",
		Description: "Deep-space dust clouds drifting behind a twinkling star field",
		Render:      renderNebula,
	})
	r.Register(Descriptor{
		ID:          "aurora",
		Name:        "Aurora Ribbons",
		Description: "Northern-light ribbons waving over a polar night sky",
		Render:      renderAurora,
	})
	r.Register(Descriptor{
		ID:          "fireflies",
		Name:        "Firefly Field",
		Description: "Blinking fireflies wandering through a summer night",
		Render:      renderFireflies,
	})
	r.Register(Descriptor{
		ID:          "silk",
		Name:        "Liquid Silk",
		Description: "Interference waves folding like fabric in slow motion",
		Render:      renderSilk,
	})
	r.Register(Descriptor{
		ID:          "ripples",
		Name:        "Zen Ripples",
		Description: "Rain rings spreading across a still pond",
		Render:      renderRipples,
	})
	r.Register(Descriptor{
		ID:          "plasma",
		Name:        "Plasma Field",
		Description: "Classic plasma interference in shifting spectral colors",
		Render:      renderPlasma,
	})
	return r
}
