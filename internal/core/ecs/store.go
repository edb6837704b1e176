package ecs

// SparseSet is a generic entity-keyed store with dense iteration.
// The sparse side is indexed by slot index; the dense side holds the full
// EntityID, so a handle from an older generation never matches.
type SparseSet[T any] struct {
	sparse []int32 // slot index -> dense position + 1, 0 = absent
	dense  []EntityID
	values []T
}

func NewSparseSet[T any](capacity int) *SparseSet[T] {
	return &SparseSet[T]{
		dense:  make([]EntityID, 0, capacity),
		values: make([]T, 0, capacity),
	}
}

func (s *SparseSet[T]) pos(id EntityID) (int, bool) {
	idx := id.Index()
	if int(idx) >= len(s.sparse) {
		return 0, false
	}
	p := int(s.sparse[idx]) - 1
	if p < 0 || s.dense[p] != id {
		return 0, false
	}
	return p, true
}

// Set inserts or replaces the value for id.
func (s *SparseSet[T]) Set(id EntityID, v T) {
	if p, ok := s.pos(id); ok {
		s.values[p] = v
		return
	}
	idx := int(id.Index())
	for idx >= len(s.sparse) {
		s.sparse = append(s.sparse, 0)
	}
	s.dense = append(s.dense, id)
	s.values = append(s.values, v)
	s.sparse[idx] = int32(len(s.dense))
}

func (s *SparseSet[T]) Get(id EntityID) (T, bool) {
	if p, ok := s.pos(id); ok {
		return s.values[p], true
	}
	var zero T
	return zero, false
}

func (s *SparseSet[T]) Has(id EntityID) bool {
	_, ok := s.pos(id)
	return ok
}

// Remove deletes id by swapping the last dense entry into its place.
func (s *SparseSet[T]) Remove(id EntityID) (T, bool) {
	var zero T
	p, ok := s.pos(id)
	if !ok {
		return zero, false
	}
	v := s.values[p]
	last := len(s.dense) - 1
	moved := s.dense[last]
	s.dense[p] = moved
	s.values[p] = s.values[last]
	s.sparse[moved.Index()] = int32(p + 1)

	s.values[last] = zero
	s.dense = s.dense[:last]
	s.values = s.values[:last]
	s.sparse[id.Index()] = 0
	return v, true
}

func (s *SparseSet[T]) Len() int {
	return len(s.dense)
}

// IDs returns the dense id slice. It is owned by the set and must not be
// modified or held across mutations.
func (s *SparseSet[T]) IDs() []EntityID {
	return s.dense
}

func (s *SparseSet[T]) Each(fn func(EntityID, T)) {
	for i, id := range s.dense {
		fn(id, s.values[i])
	}
}
