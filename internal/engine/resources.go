package engine

import (
	"reflect"

	"go.uber.org/atomic"
)

// Resources holds singleton values shared between systems, keyed by their type.
// Store pointers so systems can mutate in place.
type Resources struct {
	values map[reflect.Type]any
}

func NewResources() *Resources {
	return &Resources{values: make(map[reflect.Type]any)}
}

// InsertResource registers or replaces the resource of type T
func InsertResource[T any](r *Resources, value T) {
	r.values[reflect.TypeOf((*T)(nil)).Elem()] = value
}

// GetResource retrieves the resource of type T.
// Returns the zero value of T and false if not found.
func GetResource[T any](r *Resources) (T, bool) {
	v, ok := r.values[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// MustGetResource retrieves a resource or panics if missing.
// Only for resources the App itself installs.
func MustGetResource[T any](r *Resources) T {
	v, ok := GetResource[T](r)
	if !ok {
		panic("engine: required resource not found: " + reflect.TypeOf((*T)(nil)).Elem().String())
	}
	return v
}

// RemoveResource drops the resource of type T, reporting whether it existed
func RemoveResource[T any](r *Resources) bool {
	t := reflect.TypeOf((*T)(nil)).Elem()
	_, ok := r.values[t]
	delete(r.values, t)
	return ok
}

// versions is shared by every tracker, so a tracker that replaces another in
// Resources never repeats a version a reader has already seen.
var versions atomic.Uint64

// Tracked wraps a value with a write counter. Every Set or Mutate takes a new
// version, so readers detect edits by comparing against the version they last saw.
type Tracked[T any] struct {
	value   T
	version uint64
}

// NewTracked creates a tracked value with a fresh, non-zero version
func NewTracked[T any](value T) *Tracked[T] {
	return &Tracked[T]{value: value, version: versions.Inc()}
}

// Get returns a copy of the value
func (t *Tracked[T]) Get() T {
	return t.value
}

// Set replaces the value
func (t *Tracked[T]) Set(value T) {
	t.value = value
	t.version = versions.Inc()
}

// Mutate edits the value in place
func (t *Tracked[T]) Mutate(edit func(*T)) {
	edit(&t.value)
	t.version = versions.Inc()
}

// Version returns the version of the last write. It is never 0.
func (t *Tracked[T]) Version() uint64 {
	return t.version
}

// ChangedSince reports whether the value was written after version seen
func (t *Tracked[T]) ChangedSince(seen uint64) bool {
	return t.version != seen
}
