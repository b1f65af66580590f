package ecs

import (
	"fmt"

	"github.com/milk9111/minigames/ecs/component"
)

func storeFor[T any](w *World, h component.ComponentHandle[T], create bool) *sparseSet[T] {
	id := h.ID()
	if s, ok := w.stores[id]; ok {
		return s.(*sparseSet[T])
	}
	if !create {
		return nil
	}
	s := &sparseSet[T]{}
	w.stores[id] = s
	return s
}

// Add stores a copy of value on e, replacing any previous value.
func Add[T any](w *World, e Entity, h component.ComponentHandle[T], value T) error {
	return AddPtr(w, e, h, &value)
}

// AddPtr stores value itself on e, so the caller keeps a live reference.
func AddPtr[T any](w *World, e Entity, h component.ComponentHandle[T], value *T) error {
	if !h.Valid() {
		return fmt.Errorf("add %s: %w", h, component.ErrInvalidComponentKind)
	}
	if !IsAlive(w, e) {
		return fmt.Errorf("add %s to %s: %w", h, e, component.ErrEntityNotAlive)
	}
	if value == nil {
		value = new(T)
	}
	storeFor(w, h, true).set(e.id(), value)
	return nil
}

func Remove[T any](w *World, e Entity, h component.ComponentHandle[T]) bool {
	if !IsAlive(w, e) {
		return false
	}
	return storeFor(w, h, false).remove(e.id())
}

func Has[T any](w *World, e Entity, h component.ComponentHandle[T]) bool {
	return IsAlive(w, e) && storeFor(w, h, false).has(e.id())
}

// Get returns a pointer to e's component. Writes through it are visible to
// later systems in the same frame.
func Get[T any](w *World, e Entity, h component.ComponentHandle[T]) (*T, bool) {
	if !IsAlive(w, e) {
		return nil, false
	}
	v := storeFor(w, h, false).get(e.id())
	return v, v != nil
}

// First returns the first live entity carrying h, in storage order.
func First[T any](w *World, h component.ComponentHandle[T]) (Entity, *T, bool) {
	s := storeFor(w, h, false)
	if s == nil {
		return 0, nil, false
	}
	for i, id := range s.denseEntities {
		if e, ok := w.entities.current(id); ok {
			return e, s.denseValues[i], true
		}
	}
	return 0, nil, false
}

func ForEach[T any](w *World, h component.ComponentHandle[T], fn func(Entity, *T)) {
	s := storeFor(w, h, false)
	if s == nil {
		return
	}
	for _, id := range append([]entityID(nil), s.denseEntities...) {
		e, ok := w.entities.current(id)
		if !ok {
			continue
		}
		if v := s.get(id); v != nil {
			fn(e, v)
		}
	}
}

func ForEach2[A, B any](w *World, ha component.ComponentHandle[A], hb component.ComponentHandle[B], fn func(Entity, *A, *B)) {
	sa, sb := storeFor(w, ha, false), storeFor(w, hb, false)
	if sa == nil || sb == nil {
		return
	}
	for _, id := range intersect(sa, sb) {
		e, ok := w.entities.current(id)
		if !ok {
			continue
		}
		a, b := sa.get(id), sb.get(id)
		if a == nil || b == nil {
			continue
		}
		fn(e, a, b)
	}
}

func ForEach3[A, B, C any](w *World, ha component.ComponentHandle[A], hb component.ComponentHandle[B], hc component.ComponentHandle[C], fn func(Entity, *A, *B, *C)) {
	sa, sb, sc := storeFor(w, ha, false), storeFor(w, hb, false), storeFor(w, hc, false)
	if sa == nil || sb == nil || sc == nil {
		return
	}
	for _, id := range intersect(sa, sb, sc) {
		e, ok := w.entities.current(id)
		if !ok {
			continue
		}
		a, b, c := sa.get(id), sb.get(id), sc.get(id)
		if a == nil || b == nil || c == nil {
			continue
		}
		fn(e, a, b, c)
	}
}
