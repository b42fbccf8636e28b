package engine

import "testing"

type radius struct{ value float32 }

func TestResourcesInsertGet(t *testing.T) {
	res := NewResources()

	if _, ok := GetResource[*radius](res); ok {
		t.Fatal("Empty store should not resolve")
	}

	InsertResource(res, &radius{value: 10})

	got, ok := GetResource[*radius](res)
	if !ok || got.value != 10 {
		t.Errorf("Expected radius 10, got %v (ok=%v)", got, ok)
	}

	// Value and pointer types are distinct keys
	if _, ok := GetResource[radius](res); ok {
		t.Error("Value type should not resolve a pointer resource")
	}
}

func TestResourcesInterfaceKey(t *testing.T) {
	res := NewResources()
	var s interface{ String() string } = Stage(0)
	InsertResource(res, s)

	got, ok := GetResource[interface{ String() string }](res)
	if !ok || got.String() != "Startup" {
		t.Error("Interface-typed resource should resolve by its static type")
	}
}

func TestRemoveResource(t *testing.T) {
	res := NewResources()
	InsertResource(res, &radius{value: 1})

	if !RemoveResource[*radius](res) {
		t.Error("RemoveResource should report an existing resource")
	}
	if RemoveResource[*radius](res) {
		t.Error("Second RemoveResource should report false")
	}
}

func TestMustGetResourcePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustGetResource should panic on a missing resource")
		}
	}()
	MustGetResource[*radius](NewResources())
}

func TestTrackedVersioning(t *testing.T) {
	tr := NewTracked(3)

	if tr.Version() == 0 {
		t.Fatal("Expected a non-zero initial version")
	}
	seen := tr.Version()
	if tr.ChangedSince(seen) {
		t.Error("Untouched value should not report a change")
	}

	tr.Set(4)
	if !tr.ChangedSince(seen) || tr.Get() != 4 {
		t.Error("Set should change value and version")
	}

	seen = tr.Version()
	tr.Mutate(func(v *int) { *v *= 2 })
	if !tr.ChangedSince(seen) || tr.Get() != 8 {
		t.Errorf("Mutate should change value and version, got %d", tr.Get())
	}

	// Reading never counts as a write
	seen = tr.Version()
	_ = tr.Get()
	if tr.ChangedSince(seen) {
		t.Error("Get should not bump the version")
	}
}

func TestTrackedVersionsNeverRepeat(t *testing.T) {
	first := NewTracked("a")
	seen := first.Version()

	// A fresh tracker must not look unchanged to a reader of the old one
	second := NewTracked("b")
	if !second.ChangedSince(seen) {
		t.Errorf("Expected a new version for a replacement tracker, got %d twice", seen)
	}

	first.Set("c")
	if first.Version() == second.Version() {
		t.Error("Expected distinct versions across trackers")
	}
}
