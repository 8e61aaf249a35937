package ui

import (
	"context"
	"fmt"
	"sync"

	"github.com/1broseidon/wintk/internal/geom"
)

// EventType tags an event. Platform input types are fixed; user event types
// are assigned by name through Manager.RegisterEventType.
type EventType uint32

const (
	EventNone EventType = iota
	EventMouseDown
	EventMouseUp
	EventMouseMove
	EventMouseWheel
	EventKeyDown
	EventKeyUp
	EventTextInput
	EventWindowResize
	EventQuit

	// FirstUserEvent is the first id handed out to registered event types.
	FirstUserEvent EventType = 0x8000
	// LastUserEvent is the last id that can be registered.
	LastUserEvent EventType = 0xFFFF
)

// IsPointer reports whether t carries a pointer position.
func (t EventType) IsPointer() bool {
	switch t {
	case EventMouseDown, EventMouseUp, EventMouseMove, EventMouseWheel:
		return true
	}
	return false
}

// IsKey reports whether t is keyboard input.
func (t EventType) IsKey() bool {
	return t == EventKeyDown || t == EventKeyUp || t == EventTextInput
}

// IsUser reports whether t is a registered event type.
func (t EventType) IsUser() bool {
	return t >= FirstUserEvent && t <= LastUserEvent
}

func (t EventType) String() string {
	switch t {
	case EventNone:
		return "none"
	case EventMouseDown:
		return "mouse.down"
	case EventMouseUp:
		return "mouse.up"
	case EventMouseMove:
		return "mouse.move"
	case EventMouseWheel:
		return "mouse.wheel"
	case EventKeyDown:
		return "key.down"
	case EventKeyUp:
		return "key.up"
	case EventTextInput:
		return "text"
	case EventWindowResize:
		return "window.resize"
	case EventQuit:
		return "quit"
	}
	return fmt.Sprintf("user(%d)", uint32(t))
}

// Names of the event classes posted by the toolkit.
const (
	ClassWindow  = "Window"
	ClassButton  = "Button"
	ClassMenu    = "Menu"
	ClassToolbar = "Toolbar"
	ClassTextBox = "TextBox"
	ClassTree    = "Tree"
	ClassTimer   = "Timer"
	ClassManager = "Manager"
)

// EventCode distinguishes events within a class.
type EventCode int

const (
	CodeNone EventCode = iota
	CodeWindowActivated
	CodeWindowDeactivated
	CodeWindowClose
	CodeWindowSysMenu
	CodeButtonClicked
	CodeMenuSelected
	CodeToolbarClicked
	CodeTextBoxChanged
	CodeTextBoxEndEdit // Data is true for Enter, false for Escape.
	CodeTreeSelect     // Data is the selected *TreeNode.
	CodeTimerFired
	CodeDisplayChanged
)

func (c EventCode) String() string {
	switch c {
	case CodeWindowActivated:
		return "activated"
	case CodeWindowDeactivated:
		return "deactivated"
	case CodeWindowClose:
		return "close"
	case CodeWindowSysMenu:
		return "sysmenu"
	case CodeButtonClicked:
		return "clicked"
	case CodeMenuSelected:
		return "selected"
	case CodeToolbarClicked:
		return "toolbar.clicked"
	case CodeTextBoxChanged:
		return "textbox.changed"
	case CodeTextBoxEndEdit:
		return "textbox.endedit"
	case CodeTreeSelect:
		return "tree.select"
	case CodeTimerFired:
		return "timer"
	case CodeDisplayChanged:
		return "display.changed"
	}
	return "none"
}

// MouseButton identifies a pointer button.
type MouseButton int

const (
	ButtonNone MouseButton = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// Key identifies a non-printable key. Printable keys arrive as KeyRune with
// the character in Event.Rune.
type Key int

const (
	KeyUnknown Key = iota
	KeyRune
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyEnter
	KeyEscape
	KeySpace
	KeyTab
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
)

// Mod is a keyboard modifier mask.
type Mod uint8

const (
	ModShift Mod = 1 << iota
	ModCtrl
	ModAlt
)

// Event is a platform input notice or a toolkit notification. Pointer
// positions are absolute.
type Event struct {
	Type   EventType
	Code   EventCode
	Pos    geom.Point
	Button MouseButton
	Clicks int
	Wheel  geom.Point // Notches; positive Y is away from the user.
	Key    Key
	Rune   rune
	Mod    Mod
	Text   string
	Size   geom.Point // New screen size for EventWindowResize.
	Timer  TimerID
	Source Widget // Widget that posted the event.
	Data   any
}

func (e Event) String() string {
	switch {
	case e.Type.IsPointer():
		return fmt.Sprintf("%s %s", e.Type, e.Pos)
	case e.Source != nil:
		return fmt.Sprintf("%s %s from %s", e.Type, e.Code, e.Source.ID())
	default:
		return fmt.Sprintf("%s %s", e.Type, e.Code)
	}
}

// Queue is a FIFO of events. Posting is safe from any goroutine; events are
// consumed on the dispatch goroutine only.
type Queue struct {
	mu     sync.Mutex
	events []Event
	notify chan struct{}
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{notify: make(chan struct{}, 1)}
}

// Post appends ev.
func (q *Queue) Post(ev Event) {
	q.mu.Lock()
	q.events = append(q.events, ev)
	q.mu.Unlock()

	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// Poll removes and returns the oldest event, if any.
func (q *Queue) Poll() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return Event{}, false
	}
	ev := q.events[0]
	q.events[0] = Event{}
	q.events = q.events[1:]
	return ev, true
}

// Wait blocks until an event is available or ctx is done.
func (q *Queue) Wait(ctx context.Context) (Event, error) {
	for {
		if ev, ok := q.Poll(); ok {
			return ev, nil
		}
		select {
		case <-ctx.Done():
			return Event{}, ctx.Err()
		case <-q.notify:
		}
	}
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// eventTypes assigns ids to event class names.
type eventTypes struct {
	byName map[string]EventType
	byID   map[EventType]string
	next   EventType
	last   EventType
}

func newEventTypes(limit int) *eventTypes {
	last := LastUserEvent
	if limit > 0 && FirstUserEvent+EventType(limit-1) < last {
		last = FirstUserEvent + EventType(limit-1)
	}
	return &eventTypes{
		byName: make(map[string]EventType),
		byID:   make(map[EventType]string),
		next:   FirstUserEvent,
		last:   last,
	}
}

func (t *eventTypes) register(name string) (EventType, error) {
	if name == "" {
		return EventNone, fmt.Errorf("event type name: %w", ErrEmptyID)
	}
	if id, ok := t.byName[name]; ok {
		return id, nil
	}
	if t.next > t.last {
		return EventNone, fmt.Errorf("register %q: %w", name, ErrTooManyEventTypes)
	}
	id := t.next
	t.next++
	t.byName[name] = id
	t.byID[id] = name
	return id, nil
}

func (t *eventTypes) name(id EventType) (string, bool) {
	name, ok := t.byID[id]
	return name, ok
}
