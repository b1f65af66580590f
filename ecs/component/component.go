package component

import (
	"errors"
	"fmt"
	"reflect"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ComponentID keys one component table in a world. Zero is never issued.
type ComponentID uint32

var lastComponentID atomic.Uint32

// ComponentHandle is the typed key for a component table. Handles are
// declared once per component type as package-level vars; two calls to
// NewComponent with the same T still give two separate tables.
type ComponentHandle[T any] struct {
	id   ComponentID
	name string
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{
		id:   ComponentID(lastComponentID.Add(1)),
		name: reflect.TypeOf((*T)(nil)).Elem().String(),
	}
}

func (h ComponentHandle[T]) ID() ComponentID {
	return h.id
}

// Valid is false for the zero handle.
func (h ComponentHandle[T]) Valid() bool {
	return h.id != 0
}

func (h ComponentHandle[T]) String() string {
	if !h.Valid() {
		return "component(invalid)"
	}
	return fmt.Sprintf("%s#%d", h.name, h.id)
}
