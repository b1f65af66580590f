package physics

import "strconv"

// BodyHandle and ColliderHandle are opaque references into a World. The low
// 32 bits hold a slot index (offset by one so the zero handle is invalid),
// the high 32 bits the slot generation at creation time.
type BodyHandle uint64

type ColliderHandle uint64

const handleIndexBits = 32

func makeHandle(index int, gen uint32) uint64 {
	return uint64(gen)<<handleIndexBits | uint64(uint32(index+1))
}

func splitHandle(h uint64) (index int, gen uint32, ok bool) {
	raw := uint32(h)
	if raw == 0 {
		return 0, 0, false
	}
	return int(raw - 1), uint32(h >> handleIndexBits), true
}

func (h BodyHandle) Valid() bool {
	return uint32(h) != 0
}

func (h BodyHandle) String() string {
	return "body:" + strconv.FormatUint(uint64(h), 10)
}

func (h ColliderHandle) Valid() bool {
	return uint32(h) != 0
}

func (h ColliderHandle) String() string {
	return "collider:" + strconv.FormatUint(uint64(h), 10)
}

// BodyKind selects how the engine integrates a body.
type BodyKind int

const (
	BodyDynamic BodyKind = iota
	BodyFixed
	BodyKinematic
)

func (k BodyKind) String() string {
	switch k {
	case BodyDynamic:
		return "dynamic"
	case BodyFixed:
		return "fixed"
	case BodyKinematic:
		return "kinematic"
	}
	return "unknown"
}
