// Package tui runs the toolkit inside a terminal. Bubbletea supplies input
// and the frame loop; a Canvas of lipgloss-styled cells is the renderer.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/wintk/internal/geom"
	"github.com/1broseidon/wintk/internal/ui"
)

// Handler receives each event the toolkit leaves for the application.
// Returning true ends the program.
type Handler func(ev ui.Event) (quit bool)

// Option configures a Program.
type Option func(*Program)

// WithHotkeys sets the key map consulted before input reaches the toolkit.
func WithHotkeys(h *Hotkeys) Option {
	return func(p *Program) { p.keys = h }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Program) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithIO replaces the terminal streams, for tests and pipes.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(p *Program) {
		p.teaOpts = append(p.teaOpts, tea.WithInput(in), tea.WithOutput(out))
	}
}

// Program drives a Manager from a terminal.
type Program struct {
	mgr     *ui.Manager
	canvas  *Canvas
	handler Handler
	keys    *Hotkeys
	logger  *slog.Logger
	teaOpts []tea.ProgramOption
}

// New returns a Program for mgr, which must draw to canvas.
func New(mgr *ui.Manager, canvas *Canvas, handler Handler, opts ...Option) *Program {
	p := &Program{
		mgr:     mgr,
		canvas:  canvas,
		handler: handler,
		logger:  mgr.Logger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run blocks until the user quits, the handler asks to, or ctx is done.
func (p *Program) Run(ctx context.Context) error {
	opts := append([]tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	}, p.teaOpts...)

	m := newModel(ctx, p.mgr, p.canvas, p.handler, p.keys)
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil && !errors.Is(err, tea.ErrInterrupted) {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	p.logger.Debug("terminal ui stopped")
	return nil
}

// eventMsg carries an event posted from outside the update loop, such as a
// timer firing.
type eventMsg struct {
	ev ui.Event
}

type model struct {
	ctx     context.Context
	mgr     *ui.Manager
	canvas  *Canvas
	handler Handler
	keys    *Hotkeys
	clicks  clickCounter
	now     func() time.Time
}

func newModel(ctx context.Context, mgr *ui.Manager, canvas *Canvas, handler Handler, keys *Hotkeys) *model {
	return &model{
		ctx:     ctx,
		mgr:     mgr,
		canvas:  canvas,
		handler: handler,
		keys:    keys,
		now:     time.Now,
	}
}

// wait blocks on the queue so events posted by timers wake the loop.
func (m *model) wait() tea.Cmd {
	q, ctx := m.mgr.Queue(), m.ctx
	return func() tea.Msg {
		ev, err := q.Wait(ctx)
		if err != nil {
			return nil
		}
		return eventMsg{ev: ev}
	}
}

// Init implements tea.Model.
func (m *model) Init() tea.Cmd {
	return m.wait()
}

// Update implements tea.Model.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.canvas.Resize(msg.Width, msg.Height)
		m.mgr.Post(ui.Event{Type: ui.EventWindowResize, Size: geom.Pt(msg.Width, msg.Height)})

	case tea.MouseMsg:
		if ev, ok := m.mouseEvent(msg); ok {
			m.mgr.Post(ev)
		}

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.keys.handle(msg) {
			break
		}
		for _, ev := range keyEvents(msg) {
			m.mgr.Post(ev)
		}

	case eventMsg:
		ev := msg.ev
		if m.mgr.Route(&ev) && m.deliver(ev) {
			return m, tea.Quit
		}
		cmd = m.wait()
	}

	for _, ev := range m.mgr.Pump() {
		if m.deliver(ev) {
			return m, tea.Quit
		}
	}
	return m, cmd
}

// deliver hands an application event to the handler.
func (m *model) deliver(ev ui.Event) bool {
	if ev.Type == ui.EventQuit {
		return true
	}
	return m.handler != nil && m.handler(ev)
}

// View implements tea.Model.
func (m *model) View() string {
	m.canvas.Clear()
	m.mgr.Draw()
	return m.canvas.String()
}

func mods(shift, ctrl, alt bool) ui.Mod {
	var mod ui.Mod
	if shift {
		mod |= ui.ModShift
	}
	if ctrl {
		mod |= ui.ModCtrl
	}
	if alt {
		mod |= ui.ModAlt
	}
	return mod
}

func mouseButton(b tea.MouseButton) ui.MouseButton {
	switch b {
	case tea.MouseButtonLeft:
		return ui.ButtonLeft
	case tea.MouseButtonMiddle:
		return ui.ButtonMiddle
	case tea.MouseButtonRight:
		return ui.ButtonRight
	}
	return ui.ButtonNone
}

func (m *model) mouseEvent(msg tea.MouseMsg) (ui.Event, bool) {
	ev := ui.Event{
		Pos: geom.Pt(msg.X, msg.Y),
		Mod: mods(msg.Shift, msg.Ctrl, msg.Alt),
	}

	if tea.MouseEvent(msg).IsWheel() {
		if msg.Action != tea.MouseActionPress {
			return ev, false
		}
		ev.Type = ui.EventMouseWheel
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			ev.Wheel = geom.Pt(0, 1)
		case tea.MouseButtonWheelDown:
			ev.Wheel = geom.Pt(0, -1)
		case tea.MouseButtonWheelLeft:
			ev.Wheel = geom.Pt(-1, 0)
		case tea.MouseButtonWheelRight:
			ev.Wheel = geom.Pt(1, 0)
		}
		return ev, true
	}

	switch msg.Action {
	case tea.MouseActionPress:
		ev.Type = ui.EventMouseDown
		ev.Button = mouseButton(msg.Button)
		if ev.Button == ui.ButtonNone {
			return ev, false
		}
		ev.Clicks = m.clicks.press(ev.Button, ev.Pos, m.now(), m.mgr.Config().Input.DoubleClick())
	case tea.MouseActionRelease:
		ev.Type = ui.EventMouseUp
		// Legacy encodings do not say which button was released.
		ev.Button = mouseButton(msg.Button)
		if ev.Button == ui.ButtonNone {
			ev.Button = m.clicks.button
		}
		ev.Clicks = m.clicks.count
	case tea.MouseActionMotion:
		ev.Type = ui.EventMouseMove
		ev.Button = mouseButton(msg.Button)
	default:
		return ev, false
	}
	return ev, true
}

// clickCounter turns presses into click counts.
type clickCounter struct {
	button ui.MouseButton
	pos    geom.Point
	at     time.Time
	count  int
}

func (c *clickCounter) press(b ui.MouseButton, pos geom.Point, now time.Time, interval time.Duration) int {
	if c.count > 0 && b == c.button && pos == c.pos && now.Sub(c.at) <= interval {
		c.count++
	} else {
		c.count = 1
	}
	c.button, c.pos, c.at = b, pos, now
	return c.count
}

var keyTypes = map[tea.KeyType]struct {
	key ui.Key
	mod ui.Mod
}{
	tea.KeyEnter:      {ui.KeyEnter, 0},
	tea.KeyEsc:        {ui.KeyEscape, 0},
	tea.KeyTab:        {ui.KeyTab, 0},
	tea.KeyShiftTab:   {ui.KeyTab, ui.ModShift},
	tea.KeyBackspace:  {ui.KeyBackspace, 0},
	tea.KeyDelete:     {ui.KeyDelete, 0},
	tea.KeyHome:       {ui.KeyHome, 0},
	tea.KeyEnd:        {ui.KeyEnd, 0},
	tea.KeySpace:      {ui.KeySpace, 0},
	tea.KeyUp:         {ui.KeyUp, 0},
	tea.KeyDown:       {ui.KeyDown, 0},
	tea.KeyLeft:       {ui.KeyLeft, 0},
	tea.KeyRight:      {ui.KeyRight, 0},
	tea.KeyShiftUp:    {ui.KeyUp, ui.ModShift},
	tea.KeyShiftDown:  {ui.KeyDown, ui.ModShift},
	tea.KeyShiftLeft:  {ui.KeyLeft, ui.ModShift},
	tea.KeyShiftRight: {ui.KeyRight, ui.ModShift},
	tea.KeyCtrlUp:     {ui.KeyUp, ui.ModCtrl},
	tea.KeyCtrlDown:   {ui.KeyDown, ui.ModCtrl},
	tea.KeyCtrlLeft:   {ui.KeyLeft, ui.ModCtrl},
	tea.KeyCtrlRight:  {ui.KeyRight, ui.ModCtrl},
}

// keyEvents converts a key press into toolkit events. Terminals report no
// key releases, so a KeyUp follows every KeyDown. Printable input without
// Alt also produces a TextInput event.
func keyEvents(k tea.KeyMsg) []ui.Event {
	down := ui.Event{Type: ui.EventKeyDown}
	if k.Alt {
		down.Mod |= ui.ModAlt
	}
	if k.Type == tea.KeyRunes {
		if len(k.Runes) == 0 {
			return nil
		}
		down.Key = ui.KeyRune
		down.Rune = k.Runes[0]
	} else {
		kt, ok := keyTypes[k.Type]
		if !ok {
			return nil
		}
		down.Key = kt.key
		down.Mod |= kt.mod
		if kt.key == ui.KeySpace {
			down.Rune = ' '
		}
	}

	up := down
	up.Type = ui.EventKeyUp
	evs := []ui.Event{down, up}
	if down.Mod&ui.ModAlt == 0 && (down.Key == ui.KeyRune || down.Key == ui.KeySpace) && !k.Paste {
		text := string(k.Runes)
		if down.Key == ui.KeySpace {
			text = " "
		}
		evs = append(evs, ui.Event{Type: ui.EventTextInput, Text: text})
	}
	return evs
}
