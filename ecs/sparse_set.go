package ecs

// sparseSet stores one component kind keyed by entity id. Values are kept
// densely packed; removal swaps the last element into the hole.
type sparseSet[T any] struct {
	denseEntities []entityID
	denseValues   []*T
	sparse        []int
}

// componentStore is the type-erased view the world needs for cleanup.
type componentStore interface {
	has(id entityID) bool
	remove(id entityID) bool
	size() int
}

func (s *sparseSet[T]) has(id entityID) bool {
	if s == nil || id == 0 || int(id)-1 >= len(s.sparse) {
		return false
	}
	idx := s.sparse[id-1]
	return idx >= 0 && idx < len(s.denseEntities) && s.denseEntities[idx] == id
}

func (s *sparseSet[T]) get(id entityID) *T {
	if !s.has(id) {
		return nil
	}
	return s.denseValues[s.sparse[id-1]]
}

// set inserts or replaces the component for id.
func (s *sparseSet[T]) set(id entityID, v *T) {
	if id == 0 {
		return
	}
	for int(id)-1 >= len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if s.has(id) {
		s.denseValues[s.sparse[id-1]] = v
		return
	}
	s.denseEntities = append(s.denseEntities, id)
	s.denseValues = append(s.denseValues, v)
	s.sparse[id-1] = len(s.denseEntities) - 1
}

func (s *sparseSet[T]) remove(id entityID) bool {
	if !s.has(id) {
		return false
	}
	idx := s.sparse[id-1]
	last := len(s.denseEntities) - 1
	lastID := s.denseEntities[last]

	s.denseEntities[idx] = s.denseEntities[last]
	s.denseValues[idx] = s.denseValues[last]
	s.sparse[lastID-1] = idx

	s.denseEntities = s.denseEntities[:last]
	s.denseValues[last] = nil
	s.denseValues = s.denseValues[:last]
	s.sparse[id-1] = -1
	return true
}

func (s *sparseSet[T]) size() int {
	if s == nil {
		return 0
	}
	return len(s.denseEntities)
}
