package assets

import (
	"GopherSky/internal/logger"

	"go.uber.org/zap"
)

// Handle identifies an asset of type T inside a Store[T].
// The zero Handle never resolves.
type Handle[T any] struct {
	index uint32
	gen   uint32
}

// IsValid reports whether h was issued by a store (it may still have been removed since).
func (h Handle[T]) IsValid() bool {
	return h.gen != 0
}

// ID returns an untyped identifier, for components that hold handles of several kinds.
func (h Handle[T]) ID() uint64 {
	return uint64(h.gen)<<32 | uint64(h.index)
}

// HandleFromID rebuilds a typed handle from ID.
func HandleFromID[T any](id uint64) Handle[T] {
	return Handle[T]{index: uint32(id), gen: uint32(id >> 32)}
}

type slot[T any] struct {
	value   T
	gen     uint32
	version uint64
	live    bool
}

// StoreStats provides debugging information about a store
type StoreStats struct {
	Live    int
	Free    int
	Added   int
	Removed int
}

// Store owns assets of one type and hands out handles to them.
// It is not safe for concurrent use; the frame loop runs systems one at a time.
type Store[T any] struct {
	slots []slot[T]
	free  []uint32
	stats StoreStats
}

// NewStore creates an empty store
func NewStore[T any]() *Store[T] {
	return &Store[T]{}
}

// Add stores value and returns its handle
func (s *Store[T]) Add(value T) Handle[T] {
	var idx uint32
	if n := len(s.free); n > 0 {
		idx = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		idx = uint32(len(s.slots))
		s.slots = append(s.slots, slot[T]{})
	}

	sl := &s.slots[idx]
	sl.gen++
	if sl.gen == 0 {
		sl.gen = 1
	}
	sl.value = value
	sl.version = 1
	sl.live = true
	s.stats.Added++

	return Handle[T]{index: idx, gen: sl.gen}
}

func (s *Store[T]) lookup(h Handle[T]) *slot[T] {
	if !h.IsValid() || int(h.index) >= len(s.slots) {
		return nil
	}
	sl := &s.slots[h.index]
	if !sl.live || sl.gen != h.gen {
		return nil
	}
	return sl
}

// Get returns a copy of the asset
func (s *Store[T]) Get(h Handle[T]) (T, bool) {
	sl := s.lookup(h)
	if sl == nil {
		var zero T
		return zero, false
	}
	return sl.value, true
}

// GetMut returns a pointer to the stored asset and marks it modified.
// The pointer is only valid until the next Add or Remove.
func (s *Store[T]) GetMut(h Handle[T]) (*T, bool) {
	sl := s.lookup(h)
	if sl == nil {
		return nil, false
	}
	sl.version++
	return &sl.value, true
}

// Set overwrites the asset and marks it modified
func (s *Store[T]) Set(h Handle[T], value T) bool {
	sl := s.lookup(h)
	if sl == nil {
		return false
	}
	sl.value = value
	sl.version++
	return true
}

// Version returns how many times the asset has been written, or 0 when h does not resolve
func (s *Store[T]) Version(h Handle[T]) uint64 {
	sl := s.lookup(h)
	if sl == nil {
		return 0
	}
	return sl.version
}

// Contains reports whether h resolves
func (s *Store[T]) Contains(h Handle[T]) bool {
	return s.lookup(h) != nil
}

// Remove drops the asset. Outstanding handles stop resolving.
func (s *Store[T]) Remove(h Handle[T]) bool {
	sl := s.lookup(h)
	if sl == nil {
		logger.Log.Debug("Remove of unknown asset handle", zap.Uint64("id", h.ID()))
		return false
	}
	var zero T
	sl.value = zero
	sl.live = false
	s.free = append(s.free, h.index)
	s.stats.Removed++
	return true
}

// Len returns the number of live assets
func (s *Store[T]) Len() int {
	return len(s.slots) - len(s.free)
}

// Stats returns a snapshot of the store counters
func (s *Store[T]) Stats() StoreStats {
	st := s.stats
	st.Live = s.Len()
	st.Free = len(s.free)
	return st
}
