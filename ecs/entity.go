package ecs

import "strconv"

// Entity is an opaque handle. The low half is the slot id, counted from 1;
// the high half is how many times that slot had been recycled when the
// handle was issued. A handle kept past DestroyEntity never matches again.
type Entity uint64

type entityID uint32

func newEntity(id entityID, gen uint32) Entity {
	return Entity(uint64(gen)<<32 | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(e & 0xffffffff)
}

// Generation is the recycle count of the entity's slot.
func (e Entity) Generation() uint32 {
	return uint32(e >> 32)
}

func (e Entity) Valid() bool {
	return e.id() != 0
}

func (e Entity) String() string {
	if !e.Valid() {
		return "e-"
	}
	return "e" + strconv.FormatUint(uint64(e.id()), 10) + "." + strconv.FormatUint(uint64(e.Generation()), 10)
}

type slot struct {
	gen   uint32
	alive bool
}

// entityStore hands out ids, reusing destroyed ones under a bumped
// generation.
type entityStore struct {
	slots []slot
	free  []entityID
	live  int
}

func (s *entityStore) create() Entity {
	var id entityID
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.slots = append(s.slots, slot{})
		id = entityID(len(s.slots))
	}
	sl := &s.slots[id-1]
	sl.alive = true
	s.live++
	return newEntity(id, sl.gen)
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	sl := &s.slots[e.id()-1]
	sl.alive = false
	sl.gen++
	s.free = append(s.free, e.id())
	s.live--
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	id := e.id()
	if id == 0 || int(id) > len(s.slots) {
		return false
	}
	sl := s.slots[id-1]
	return sl.alive && sl.gen == e.Generation()
}

// current returns the live entity occupying id, if any.
func (s *entityStore) current(id entityID) (Entity, bool) {
	if id == 0 || int(id) > len(s.slots) || !s.slots[id-1].alive {
		return 0, false
	}
	return newEntity(id, s.slots[id-1].gen), true
}

func (s *entityStore) all() []Entity {
	out := make([]Entity, 0, s.live)
	for i, sl := range s.slots {
		if sl.alive {
			out = append(out, newEntity(entityID(i+1), sl.gen))
		}
	}
	return out
}
