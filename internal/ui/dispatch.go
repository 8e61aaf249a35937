package ui

import (
	"fmt"
	"slices"

	"github.com/1broseidon/wintk/internal/geom"
	"github.com/1broseidon/wintk/internal/resource"
	"github.com/1broseidon/wintk/internal/tiling"
)

// RegisterEventType returns the id for name, assigning one on first use.
func (m *Manager) RegisterEventType(name string) (EventType, error) {
	return m.types.register(name)
}

func (m *Manager) mustEventType(name string) EventType {
	t, err := m.RegisterEventType(name)
	if err != nil {
		panic(err)
	}
	return t
}

// EventTypeName returns the name an event type was registered under.
func (m *Manager) EventTypeName(t EventType) (string, error) {
	name, ok := m.types.name(t)
	if !ok {
		return "", fmt.Errorf("event type %d: %w", uint32(t), ErrUnknownEventType)
	}
	return name, nil
}

// ClassType returns the event type of one of the toolkit classes.
func (m *Manager) ClassType(class string) EventType { return m.classTypes[class] }

// Queue returns the event queue.
func (m *Manager) Queue() *Queue { return m.queue }

// Post queues ev for the next Pump.
func (m *Manager) Post(ev Event) { m.queue.Post(ev) }

func (m *Manager) post(class string, code EventCode, source Widget, data any) {
	m.queue.Post(Event{Type: m.classTypes[class], Code: code, Source: source, Data: data})
}

// windowOf returns the window that routes events for w.
func windowOf(w Widget) *Window {
	if w == nil {
		return nil
	}
	return w.AsBase().Window()
}

// Dispatch delivers ev to the toolkit and reports whether it was consumed.
// Pointer input goes to the capture target, else to the topmost window hit.
// Key input goes to the capture target, else to the active window.
func (m *Manager) Dispatch(ev *Event) bool {
	switch {
	case ev.Type.IsPointer():
		m.pointer = ev.Pos
		if c := m.Capture(); c.Captured {
			if w := windowOf(c.Target.Target); w != nil {
				return w.HandleEvent(ev)
			}
			return c.Target.Target.HandleEvent(ev)
		}
		hit := m.HitTest(ev.Pos)
		if hit.Target == nil {
			if ev.Type == EventMouseMove {
				m.SetCursor(resource.CursorDefault)
			}
			return false
		}
		if w := windowOf(hit.Target); w != nil {
			return w.HandleEvent(ev)
		}
		return false

	case ev.Type.IsKey():
		if c := m.Capture(); c.Captured {
			if w := windowOf(c.Target.Target); w != nil {
				return w.HandleEvent(ev)
			}
		}
		if m.active != nil {
			return m.active.HandleEvent(ev)
		}
		return false

	case ev.Type == EventWindowResize:
		m.SetScreenSize(ev.Size)
		return true

	case ev.Type == m.timerType:
		return m.dispatchTimer(ev)
	}
	return false
}

// dispatchTimer hands a timer event to its owner. Timers of removed widgets
// are stopped; tooltip timers never reach the application.
func (m *Manager) dispatchTimer(ev *Event) bool {
	owner := ev.Source
	if !m.attached(owner) {
		if owner != nil {
			_ = m.DeleteTimer(ev.Timer)
			return true
		}
		return false
	}
	tooltip := owner.AsBase().tooltipTimer == ev.Timer
	handled := owner.HandleEvent(ev)
	return handled || tooltip
}

// Route dispatches ev and reports whether the application should see it:
// input nobody consumed, quit, and every toolkit notification.
func (m *Manager) Route(ev *Event) (forApp bool) {
	if ev.Type == EventQuit {
		return true
	}
	return !m.Dispatch(ev)
}

// Pump drains the queue through Route and returns the events left for the
// application. Scroll ranges are refreshed afterwards since dispatch may
// have moved or resized windows.
func (m *Manager) Pump() []Event {
	var out []Event
	for {
		ev, ok := m.queue.Poll()
		if !ok {
			break
		}
		if m.Route(&ev) {
			out = append(out, ev)
		}
	}
	for _, w := range m.windows {
		w.scrollBars.Refresh()
	}
	return out
}

// siblings returns the visible windows sharing w's parent in creation order.
func (m *Manager) siblings(w *Window) []*Window {
	var out []*Window
	for _, s := range m.ChildWindows(w.ParentWindow()) {
		if s.IsVisible() && !s.HasFlag(FlagNoActivate) {
			out = append(out, s)
		}
	}
	slices.SortFunc(out, func(a, b *Window) int {
		switch {
		case a.seq < b.seq:
			return -1
		case a.seq > b.seq:
			return 1
		}
		return 0
	})
	return out
}

// CycleActive activates the next (or previous) sibling of the active window
// in creation order.
func (m *Manager) CycleActive(forward bool) {
	cur := m.activeOrTopmost()
	if cur == nil {
		return
	}
	sibs := m.siblings(cur)
	i := slices.Index(sibs, cur)
	if len(sibs) < 2 || i < 0 {
		return
	}
	delta := 1
	if !forward {
		delta = -1
	}
	m.SetActive(sibs[tiling.Cycle(i, delta, len(sibs))])
}

// ActivateDirection activates the sibling window nearest the active one in
// dir, wrapping at the edges.
func (m *Manager) ActivateDirection(dir tiling.Direction) {
	cur := m.activeOrTopmost()
	if cur == nil {
		return
	}
	sibs := m.siblings(cur)
	i := slices.Index(sibs, cur)
	if len(sibs) < 2 || i < 0 {
		return
	}
	rects := make([]geom.Rect, len(sibs))
	for k, s := range sibs {
		rects[k] = s.Rect(false, true)
	}
	if j := tiling.Navigate(i, dir, rects); j != i {
		m.SetActive(sibs[j])
	}
}

func (m *Manager) activeOrTopmost() *Window {
	if m.active != nil {
		return m.active
	}
	for i := len(m.windows) - 1; i >= 0; i-- {
		if w := m.windows[i]; w.IsVisible() && !w.HasFlag(FlagNoActivate) {
			return w
		}
	}
	return nil
}
