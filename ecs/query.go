package ecs

// intersect returns the ids present in every store, iterating the smallest.
func intersect(stores ...componentStore) []entityID {
	if len(stores) == 0 {
		return nil
	}
	smallest := 0
	for i, s := range stores {
		if s == nil {
			return nil
		}
		if s.size() < stores[smallest].size() {
			smallest = i
		}
	}

	ids := denseIDs(stores[smallest])
	out := make([]entityID, 0, len(ids))
	for _, id := range ids {
		ok := true
		for i, s := range stores {
			if i != smallest && !s.has(id) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, id)
		}
	}
	return out
}

type denseLister interface {
	ids() []entityID
}

func (s *sparseSet[T]) ids() []entityID {
	return s.denseEntities
}

func denseIDs(s componentStore) []entityID {
	if l, ok := s.(denseLister); ok {
		// copy so callbacks may add or remove components while iterating
		return append([]entityID(nil), l.ids()...)
	}
	return nil
}
