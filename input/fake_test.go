package input

import "slices"

type fakeSource struct {
	listeners []Listener
	pads      map[int]bool
	axes      map[int]float64
	buttons   map[int]bool
	touches   []TouchPoint
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		pads:    map[int]bool{},
		axes:    map[int]float64{},
		buttons: map[int]bool{},
	}
}

func (f *fakeSource) Register(l Listener) { f.listeners = append(f.listeners, l) }

func (f *fakeSource) Unregister(l Listener) {
	f.listeners = slices.DeleteFunc(f.listeners, func(x Listener) bool { return x == l })
}

func (f *fakeSource) HasGamepad(id int) bool { return f.pads[id] }
func (f *fakeSource) GamepadAxis(_, axis int) float64 { return f.axes[axis] }
func (f *fakeSource) GamepadButton(_, button int) bool { return f.buttons[button] }
func (f *fakeSource) Touches() []TouchPoint { return f.touches }

func (f *fakeSource) down(keys ...string) {
	for _, l := range f.listeners {
		for _, k := range keys {
			l.KeyDown(k)
		}
	}
}

func (f *fakeSource) up(keys ...string) {
	for _, l := range f.listeners {
		for _, k := range keys {
			l.KeyUp(k)
		}
	}
}

func (f *fakeSource) connect(id int) {
	f.pads[id] = true
	for _, l := range f.listeners {
		l.GamepadConnected(id)
	}
}

func (f *fakeSource) touch(points ...TouchPoint) {
	f.touches = points
	for _, l := range f.listeners {
		for _, p := range points {
			l.TouchStart(p.ID)
		}
	}
}
