package ecs

// EventKind names something that happened during a frame.
type EventKind string

const (
	EventJumped     EventKind = "jumped"
	EventLanded     EventKind = "landed"
	EventLeftGround EventKind = "left_ground"
	EventStepped    EventKind = "stepped"
	EventAnimation  EventKind = "animation"
)

// Event is one frame event. Data depends on Kind.
type Event struct {
	Kind   EventKind
	Entity Entity
	Data   any
}

// EventQueue is a FIFO of the current frame's events. The scheduler clears
// it when a new frame starts.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = q.items[:0]
}
