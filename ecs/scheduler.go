package ecs

// System advances one concern of the world by dt seconds.
type System interface {
	Update(w *World, dt float64)
}

// Scheduler runs systems in the order they were added, once per frame.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Update clears last frame's events and runs every system.
func (s *Scheduler) Update(w *World, dt float64) {
	if s == nil || w == nil {
		return
	}
	w.events.flush()
	for _, system := range s.systems {
		system.Update(w, dt)
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
