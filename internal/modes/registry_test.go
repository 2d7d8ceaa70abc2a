package modes

import (
	"image"
	"testing"
)

func TestBuiltinOrderStable(t *testing.T) {
	r := Builtin()
	if r.Len() != 8 {
		t.Fatalf("expected 8 built-in modes, got %d", r.Len())
	}

	first := r.All()
	second := r.All()
	if len(first) != len(second) {
		t.Fatalf("All() length changed between calls: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("order changed at %d: %s vs %s", i, first[i].ID, second[i].ID)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	r := Builtin()
	if _, ok := r.Lookup("nonexistent"); ok {
		t.Error("Lookup of unknown id should report not found")
	}
}

func TestLookupKnown(t *testing.T) {
	r := Builtin()
	d, ok := r.Lookup("plasma")
	if !ok {
		t.Fatal("plasma should be registered")
	}
	if d.Render == nil {
		t.Error("descriptor is missing its render function")
	}
	if d.Name == "" || d.Description == "" {
		t.Errorf("descriptor is missing display metadata: %+v", d)
	}
}

func TestRegisterLastWriteWins(t *testing.T) {
	r := NewRegistry()
	dummy := func(dst *image.RGBA, t float64, w, h int, period, sf float64) {}
	r.Register(Descriptor{ID: "a", Name: "first", Render: dummy})
	r.Register(Descriptor{ID: "b", Name: "other", Render: dummy})
	r.Register(Descriptor{ID: "a", Name: "second", Render: dummy})

	if r.Len() != 2 {
		t.Fatalf("duplicate id must not grow the registry: len=%d", r.Len())
	}
	d, _ := r.Lookup("a")
	if d.Name != "second" {
		t.Errorf("expected last registration to win, got %q", d.Name)
	}
	// Order slot of the first registration is kept.
	all := r.All()
	if all[0].ID != "a" || all[1].ID != "b" {
		t.Errorf("unexpected order: %s, %s", all[0].ID, all[1].ID)
	}
}
