package ui

import (
	"errors"
	"image"
	"testing"

	"github.com/1broseidon/wintk/internal/geom"
	"github.com/1broseidon/wintk/internal/render"
)

func countEvents(evs []Event, code EventCode, source Widget) int {
	n := 0
	for _, ev := range evs {
		if ev.Code == code && ev.Source == source {
			n++
		}
	}
	return n
}

// newButtonWindow returns a window at the origin with an OK button whose
// absolute rect is (14,40)-(74,60).
func newButtonWindow(t *testing.T) (*Manager, *Window, *Button) {
	t.Helper()
	m, _ := newTestManager(t)
	w := mustWindow(t, m, "p", nil, geom.R(0, 0, 300, 200), frameFlags)
	b := NewButton("ok", "OK", geom.R(10, 10, 60, 20))
	if err := w.AddControl(b); err != nil {
		t.Fatalf("AddControl: %v", err)
	}
	if got := b.Rect(false, true); !got.Eq(geom.R(14, 40, 60, 20)) {
		t.Fatalf("button rect = %s", got)
	}
	return m, w, b
}

func TestButtonClick(t *testing.T) {
	tests := []struct {
		name    string
		release geom.Point
		clicks  int
	}{
		{"released inside", geom.Pt(30, 50), 1},
		{"released outside", geom.Pt(200, 150), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, w, b := newButtonWindow(t)

			if hit := m.HitTest(geom.Pt(20, 45)); hit.Zone != HitControl || hit.Target != Widget(b) {
				t.Fatalf("hit = %s", hit)
			}
			m.Dispatch(mouse(EventMouseDown, 20, 45))
			if !b.IsPushed() {
				t.Fatal("button not pushed")
			}
			if m.Active() != w {
				t.Fatal("click did not activate the window")
			}
			m.Dispatch(mouse(EventMouseUp, tt.release.X, tt.release.Y))
			if b.IsPushed() || m.Capture().Captured {
				t.Fatal("button still pushed or captured")
			}
			if got := countEvents(m.Pump(), CodeButtonClicked, b); got != tt.clicks {
				t.Fatalf("clicks = %d, want %d", got, tt.clicks)
			}
		})
	}
}

func TestButtonTracksPointerWhileCaptured(t *testing.T) {
	m, _, b := newButtonWindow(t)

	m.Dispatch(mouse(EventMouseDown, 20, 45))
	m.Dispatch(mouse(EventMouseMove, 200, 150))
	if b.IsPushed() {
		t.Fatal("button pushed with the pointer outside")
	}
	m.Dispatch(mouse(EventMouseMove, 21, 46))
	if !b.IsPushed() {
		t.Fatal("button not pushed after re-entering")
	}
}

func TestButtonKeyboard(t *testing.T) {
	for _, key := range []Key{KeySpace, KeyEnter} {
		m, w, b := newButtonWindow(t)
		m.SetActive(w)
		b.SetFocus(true, nil)
		if w.FocusedControl() != Widget(b) || !b.IsFocused() {
			t.Fatalf("focused control = %v", w.FocusedControl())
		}

		m.Dispatch(&Event{Type: EventKeyDown, Key: key})
		if !b.IsPushed() {
			t.Fatalf("key %d did not push the button", key)
		}
		m.Dispatch(&Event{Type: EventKeyUp, Key: key})
		if got := countEvents(m.Pump(), CodeButtonClicked, b); got != 1 {
			t.Fatalf("key %d: clicks = %d", key, got)
		}
	}
}

func TestRemoveControlReleasesCapture(t *testing.T) {
	m, w, b := newButtonWindow(t)
	m.Dispatch(mouse(EventMouseDown, 20, 45))
	if c := m.Capture(); c.Target.Target != Widget(b) {
		t.Fatalf("capture = %+v", c)
	}

	if err := w.RemoveControl("ok"); err != nil {
		t.Fatalf("RemoveControl: %v", err)
	}
	if m.Capture().Captured {
		t.Fatal("capture outlived its control")
	}
	if err := w.RemoveControl("ok"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second RemoveControl = %v", err)
	}
	// The stray release must not reach anything.
	m.Dispatch(mouse(EventMouseUp, 20, 45))
	if got := countEvents(m.Pump(), CodeButtonClicked, b); got != 0 {
		t.Fatalf("removed button clicked %d times", got)
	}
}

func TestAddControlErrors(t *testing.T) {
	m, w, b := newButtonWindow(t)
	other := mustWindow(t, m, "other", nil, geom.R(0, 0, 200, 200), frameFlags)

	tests := []struct {
		name string
		w    *Window
		c    Widget
		want error
	}{
		{"nil control", w, nil, ErrNilWidget},
		{"duplicate id", w, NewButton("ok", "Again", geom.R(0, 0, 10, 10)), ErrDuplicateID},
		{"empty id", w, NewLabel("", "x", geom.R(0, 0, 10, 10)), ErrEmptyID},
		{"null window", NullWindow(), NewLabel("l", "x", geom.R(0, 0, 10, 10)), ErrNotAttached},
		{"already parented", other, b, ErrAlreadyHasParent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.w.AddControl(tt.c); !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestAutoSizeLabel(t *testing.T) {
	m, _ := newTestManager(t)
	w := mustWindow(t, m, "p", nil, geom.R(0, 0, 300, 200), frameFlags)
	l := NewAutoSizeLabel("hello", "Hello", geom.Pt(5, 5))
	if err := w.AddControl(l); err != nil {
		t.Fatalf("AddControl: %v", err)
	}
	want := m.measure("Hello")
	if got := l.StoredRect(); !got.Eq(geom.R(5, 5, want.X, want.Y)) {
		t.Fatalf("label rect = %s", got)
	}
	abs := l.Rect(false, true)
	if hit := m.HitTest(abs.Origin()); hit.Target != Widget(l) {
		t.Fatalf("hit = %s", hit)
	}
}

func TestTooltip(t *testing.T) {
	m, w, b := newButtonWindow(t)
	b.SetTooltip("Hint")

	m.Dispatch(mouse(EventMouseMove, 20, 45))
	if b.tooltipTimer == 0 || m.TimerCount() != 1 {
		t.Fatalf("tooltip timer not started: id=%d count=%d", b.tooltipTimer, m.TimerCount())
	}

	ev := Event{Type: m.ClassType(ClassTimer), Code: CodeTimerFired, Timer: b.tooltipTimer, Source: b}
	if forApp := m.Route(&ev); forApp {
		t.Fatal("tooltip timer reached the application")
	}
	tip := m.Tooltip()
	if !tip.Visible() || tip.Text() != "Hint" {
		t.Fatalf("tooltip visible=%t text=%q", tip.Visible(), tip.Text())
	}
	if got := tip.Rect(); !got.Eq(geom.R(20, 20, 36, 21)) {
		t.Fatalf("tooltip rect = %s", got)
	}

	if err := w.RemoveControl("ok"); err != nil {
		t.Fatalf("RemoveControl: %v", err)
	}
	if tip.Visible() {
		t.Fatal("tooltip outlived its owner")
	}
	if n := m.TimerCount(); n != 0 {
		t.Fatalf("timer count = %d", n)
	}
}

func TestTooltipStaysOnScreen(t *testing.T) {
	m, _ := newTestManager(t)
	owner := mustWindow(t, m, "p", nil, geom.R(0, 0, 300, 200), frameFlags)

	m.Tooltip().Show(owner, geom.Pt(630, 5), "Long hint text")
	r := m.Tooltip().Rect()
	if r.Right() > m.ScreenRect().Right() || r.Y < 0 {
		t.Fatalf("tooltip rect %s leaves the screen", r)
	}
	m.Tooltip().Hide(nil)
	if m.Tooltip().Visible() {
		t.Fatal("Hide(nil) left the tooltip up")
	}
}

func TestParseLabel(t *testing.T) {
	tests := []struct {
		label  string
		text   string
		hotkey rune
	}{
		{"&File", "File", 'f'},
		{"Save &As", "Save As", 'a'},
		{"A&&B", "A&B", 0},
		{"plain", "plain", 0},
		{"trailing&", "trailing&", 0},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			text, hk := parseLabel(tt.label)
			if text != tt.text || hk != tt.hotkey {
				t.Fatalf("parseLabel(%q) = %q, %q", tt.label, text, hk)
			}
		})
	}
}

type menuFixture struct {
	m    *Manager
	w    *Window
	menu *Menu
	file *MenuItem
	open *MenuItem
	quit *MenuItem
}

func newMenuFixture(t *testing.T) menuFixture {
	t.Helper()
	m, _ := newTestManager(t)
	w := mustWindow(t, m, "p", nil, geom.R(0, 0, 400, 300), frameFlags)

	menu := NewMenu("menu")
	file, err := menu.AddItem("file", "&File")
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	open, _ := file.AddItem("open", "&Open")
	if err := file.AddSeparator(); err != nil {
		t.Fatalf("AddSeparator: %v", err)
	}
	quit, _ := file.AddItem("quit", "&Quit")
	edit, _ := menu.AddItem("edit", "&Edit")
	if _, err := edit.AddItem("copy", "&Copy"); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := w.SetMenu(menu); err != nil {
		t.Fatalf("SetMenu: %v", err)
	}
	m.SetActive(w)
	m.Pump()
	return menuFixture{m: m, w: w, menu: menu, file: file, open: open, quit: quit}
}

func altKey(r rune) *Event {
	return &Event{Type: EventKeyDown, Key: KeyRune, Rune: r, Mod: ModAlt}
}

func TestMenuShrinksClientArea(t *testing.T) {
	f := newMenuFixture(t)
	lh := f.menu.lineHeight()
	if got := f.w.ClientRect(false, false); !got.Eq(geom.R(4, 30+lh, 392, 266-lh)) {
		t.Fatalf("client = %s with menu line height %d", got, lh)
	}
}

func TestMenuKeyboardSelect(t *testing.T) {
	f := newMenuFixture(t)
	m := f.m

	m.Dispatch(altKey('F'))
	if !f.menu.IsOpen() || f.menu.Hot() != f.file {
		t.Fatal("Alt+F did not open File")
	}
	if c := m.Capture(); c.Target.Target != Widget(f.menu) {
		t.Fatalf("capture = %+v", c)
	}

	m.Dispatch(&Event{Type: EventKeyDown, Key: KeyDown})
	if f.menu.Hot() != f.open {
		t.Fatalf("hot = %v, want open", f.menu.Hot())
	}
	m.Dispatch(&Event{Type: EventKeyDown, Key: KeyDown})
	if f.menu.Hot() != f.quit {
		t.Fatal("Down did not skip the separator")
	}
	m.Dispatch(&Event{Type: EventKeyDown, Key: KeyEnter})

	if f.menu.IsOpen() || m.Capture().Captured {
		t.Fatal("menu still open after selection")
	}
	evs := m.Pump()
	if got := countEvents(evs, CodeMenuSelected, f.quit); got != 1 {
		t.Fatalf("selected events = %d (%v)", got, evs)
	}
}

func TestMenuEscapeReleasesCapture(t *testing.T) {
	f := newMenuFixture(t)
	f.m.Dispatch(altKey('f'))
	f.m.Dispatch(&Event{Type: EventKeyDown, Key: KeyEscape})

	if f.menu.IsOpen() {
		t.Fatal("menu still open")
	}
	if f.m.Capture().Captured {
		t.Fatal("capture not released")
	}
}

func TestMenuArrowsMoveBetweenTopItems(t *testing.T) {
	f := newMenuFixture(t)
	f.m.Dispatch(altKey('f'))
	f.m.Dispatch(&Event{Type: EventKeyDown, Key: KeyRight})
	if hot := f.menu.Hot(); hot == nil || hot.ID() != "edit" {
		t.Fatalf("hot = %v, want edit", hot)
	}
	f.m.Dispatch(&Event{Type: EventKeyDown, Key: KeyRight})
	if hot := f.menu.Hot(); hot != f.file {
		t.Fatalf("Right did not wrap to File")
	}
}

func TestMenuMouseSelect(t *testing.T) {
	f := newMenuFixture(t)
	m := f.m

	strip := f.menu.stripRects()[0]
	m.Dispatch(mouse(EventMouseDown, strip.X+2, strip.Y+2))
	if !f.menu.IsOpen() || !f.file.IsOpened() {
		t.Fatal("click did not open File")
	}

	drops := f.menu.dropdowns()
	if len(drops) != 1 || len(drops[0].entries) != 3 {
		t.Fatalf("dropdowns = %+v", drops)
	}
	q := drops[0].entries[2]
	m.Dispatch(mouse(EventMouseDown, q.X+2, q.Y+2))

	if f.menu.IsOpen() || m.Capture().Captured {
		t.Fatal("menu still open after click on an entry")
	}
	if got := countEvents(m.Pump(), CodeMenuSelected, f.quit); got != 1 {
		t.Fatalf("selected events = %d", got)
	}
}

func TestMenuClickOutsideCloses(t *testing.T) {
	f := newMenuFixture(t)
	f.m.Dispatch(altKey('f'))
	f.m.Dispatch(mouse(EventMouseDown, 600, 400))

	if f.menu.IsOpen() || f.m.Capture().Captured {
		t.Fatal("click outside left the menu open")
	}
	if got := countEvents(f.m.Pump(), CodeMenuSelected, f.quit); got != 0 {
		t.Fatal("click outside selected an item")
	}
}

func TestMenuBuildErrors(t *testing.T) {
	menu := NewMenu("menu")
	file, _ := menu.AddItem("file", "File")
	if err := file.AddSeparator(); !errors.Is(err, ErrSeparator) {
		t.Fatalf("leading separator = %v", err)
	}
	if _, err := file.AddItem("open", "Open"); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := file.AddSeparator(); err != nil {
		t.Fatalf("AddSeparator: %v", err)
	}
	if err := file.AddSeparator(); !errors.Is(err, ErrSeparator) {
		t.Fatalf("double separator = %v", err)
	}
	if _, err := menu.AddItem("open", "Again"); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("duplicate id = %v", err)
	}
	if _, err := file.AddItem("", "Empty"); !errors.Is(err, ErrEmptyID) {
		t.Fatalf("empty id = %v", err)
	}
}

func TestToolbarHeightRange(t *testing.T) {
	tests := []struct {
		height int
		ok     bool
	}{
		{0, false},
		{MinToolbarHeight, true},
		{MaxToolbarHeight, true},
		{MaxToolbarHeight + 1, false},
	}
	for _, tt := range tests {
		_, err := NewToolbar("tools", tt.height)
		if tt.ok && err != nil {
			t.Fatalf("height %d: %v", tt.height, err)
		}
		if !tt.ok && !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("height %d: got %v, want ErrOutOfRange", tt.height, err)
		}
	}
}

func TestToolbarLayoutAndClick(t *testing.T) {
	m, _ := newTestManager(t)
	w := mustWindow(t, m, "p", nil, geom.R(0, 0, 300, 200), frameFlags)

	tb := NewAutoSizeToolbar("tools")
	a, err := tb.AddItem("a", "A")
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	tb.AddSeparator()
	b, _ := tb.AddItem("b", "B")
	if err := w.SetToolbar(tb); err != nil {
		t.Fatalf("SetToolbar: %v", err)
	}

	ar := a.StoredRect()
	if tb.Height() != ar.H {
		t.Fatalf("toolbar height = %d, item height = %d", tb.Height(), ar.H)
	}
	if got, want := b.StoredRect().X, ar.W+tb.separatorWidth(); got != want {
		t.Fatalf("second item x = %d, want %d", got, want)
	}
	if got := w.ClientRect(false, false).Y; got != 30+tb.Height() {
		t.Fatalf("client top = %d", got)
	}

	abs := a.Rect(false, true)
	x, y := abs.X+2, abs.Y+2
	if hit := m.HitTest(geom.Pt(x, y)); hit.Zone != HitToolbar {
		t.Fatalf("hit = %s", hit)
	}
	m.Dispatch(mouse(EventMouseDown, x, y))
	if !a.IsPushed() {
		t.Fatal("toolbar item not pushed")
	}
	m.Dispatch(mouse(EventMouseUp, x, y))
	if got := countEvents(m.Pump(), CodeToolbarClicked, a); got != 1 {
		t.Fatalf("toolbar clicks = %d", got)
	}

	// A release off every item still ends the capture.
	m.Dispatch(mouse(EventMouseDown, x, y))
	m.Dispatch(mouse(EventMouseUp, 250, 150))
	if m.Capture().Captured || a.IsPushed() {
		t.Fatal("capture leaked after release outside")
	}
}

// newTextBoxWindow returns a window at the origin with a text box whose
// absolute rect is (14,40)-(114,60). Its text starts at x = 17.
func newTextBoxWindow(t *testing.T, text string) (*Manager, *Window, *TextBox) {
	t.Helper()
	m, _ := newTestManager(t)
	w := mustWindow(t, m, "p", nil, geom.R(0, 0, 300, 200), frameFlags)
	tb := NewTextBox("name", text, geom.R(10, 10, 100, 20))
	if err := w.AddControl(tb); err != nil {
		t.Fatalf("AddControl: %v", err)
	}
	if got := tb.ClientRect(false, true).X; got != 17 {
		t.Fatalf("text box client x = %d", got)
	}
	return m, w, tb
}

func TestTextBoxEditing(t *testing.T) {
	m, w, tb := newTextBoxWindow(t, "abc")
	if tb.Caret() != 3 {
		t.Fatalf("initial caret = %d", tb.Caret())
	}

	m.Dispatch(mouse(EventMouseDown, 17, 50))
	if !tb.IsFocused() || m.Active() != w || tb.Caret() != 0 {
		t.Fatalf("click: focused = %v, caret = %d", tb.IsFocused(), tb.Caret())
	}
	m.Pump()

	steps := []struct {
		name  string
		ev    Event
		text  string
		caret int
	}{
		{"insert", Event{Type: EventTextInput, Text: "xy"}, "xyabc", 2},
		{"end", Event{Type: EventKeyDown, Key: KeyEnd}, "xyabc", 5},
		{"backspace", Event{Type: EventKeyDown, Key: KeyBackspace}, "xyab", 4},
		{"home", Event{Type: EventKeyDown, Key: KeyHome}, "xyab", 0},
		{"left at start", Event{Type: EventKeyDown, Key: KeyLeft}, "xyab", 0},
		{"delete", Event{Type: EventKeyDown, Key: KeyDelete}, "yab", 0},
		{"right", Event{Type: EventKeyDown, Key: KeyRight}, "yab", 1},
		{"backspace at 1", Event{Type: EventKeyDown, Key: KeyBackspace}, "ab", 0},
		{"backspace at start", Event{Type: EventKeyDown, Key: KeyBackspace}, "ab", 0},
	}
	for _, st := range steps {
		ev := st.ev
		if !m.Dispatch(&ev) {
			t.Fatalf("%s: not consumed", st.name)
		}
		if tb.Text() != st.text || tb.Caret() != st.caret {
			t.Fatalf("%s: text = %q caret = %d, want %q %d", st.name, tb.Text(), tb.Caret(), st.text, st.caret)
		}
	}
	if got := countEvents(m.Pump(), CodeTextBoxChanged, tb); got != 4 {
		t.Fatalf("changed events = %d, want 4", got)
	}
}

func TestTextBoxCaretFromClick(t *testing.T) {
	tests := []struct {
		name  string
		x     int
		caret int
	}{
		{"first half of a", 19, 0},
		{"second half of a", 21, 1},
		{"between b and c", 31, 2},
		{"past the end", 100, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _, tb := newTextBoxWindow(t, "abc")
			m.Dispatch(mouse(EventMouseDown, tt.x, 50))
			if tb.Caret() != tt.caret {
				t.Fatalf("caret = %d, want %d", tb.Caret(), tt.caret)
			}
		})
	}
}

func TestTextBoxEndEdit(t *testing.T) {
	tests := []struct {
		key  Key
		want bool
	}{
		{KeyEnter, true},
		{KeyEscape, false},
	}
	for _, tt := range tests {
		m, w, tb := newTextBoxWindow(t, "abc")
		m.SetActive(w)
		tb.SetFocus(true, nil)
		m.Pump()

		m.Dispatch(&Event{Type: EventKeyDown, Key: tt.key})
		var got []Event
		for _, ev := range m.Pump() {
			if ev.Code == CodeTextBoxEndEdit && ev.Source == Widget(tb) {
				got = append(got, ev)
			}
		}
		if len(got) != 1 || got[0].Data != tt.want {
			t.Fatalf("key %d: end edit events = %v", tt.key, got)
		}
	}
}

func TestTextBoxIgnoresInputWithoutFocus(t *testing.T) {
	m, w, tb := newTextBoxWindow(t, "abc")
	m.SetActive(w)

	if m.Dispatch(&Event{Type: EventTextInput, Text: "z"}) {
		t.Fatal("text input consumed without focus")
	}
	if tb.Text() != "abc" {
		t.Fatalf("text = %q", tb.Text())
	}
	tb.Insert("d\ne")
	if tb.Text() != "abcde" || tb.Caret() != 5 {
		t.Fatalf("insert: text = %q caret = %d", tb.Text(), tb.Caret())
	}
}

// treeFixture is a tree at (14,40) in window coordinates with rows 20 high
// starting at y = 41 and expanders 20 wide per depth level from x = 15.
type treeFixture struct {
	m              *Manager
	tree           *Tree
	root, a, a1, b *TreeNode
}

func newTreeFixture(t *testing.T) treeFixture {
	t.Helper()
	m, _ := newTestManager(t)
	w := mustWindow(t, m, "p", nil, geom.R(0, 0, 300, 200), frameFlags)
	tree := NewTree("files", geom.R(10, 10, 200, 150), 20)
	if err := w.AddControl(tree); err != nil {
		t.Fatalf("AddControl: %v", err)
	}
	f := treeFixture{m: m, tree: tree}
	var err error
	if f.root, err = tree.AddNode("root", nil); err != nil {
		t.Fatalf("AddNode(root): %v", err)
	}
	f.a, _ = tree.AddNode("a", f.root)
	f.b, _ = tree.AddNode("b", f.root)
	f.a1, _ = tree.AddNode("a1", f.a)
	return f
}

func nodeTexts(nodes []*TreeNode) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Text
	}
	return out
}

func TestTreeAddNode(t *testing.T) {
	f := newTreeFixture(t)
	if got, want := nodeTexts(f.tree.Nodes()), []string{"root", "a", "a1", "b"}; !sameIDs(got, want) {
		t.Fatalf("nodes = %v, want %v", got, want)
	}
	if !f.tree.HasChildren(f.a) || f.tree.HasChildren(f.b) {
		t.Fatal("HasChildren wrong")
	}
	if f.a1.Parent() != f.a || f.a1.IsVisible() {
		t.Fatal("a1 should sit under the closed node a")
	}
	if _, err := f.tree.AddNode("second", nil); !errors.Is(err, ErrTreeHasRoot) {
		t.Fatalf("second root: got %v", err)
	}
	if _, err := f.tree.AddNode("orphan", &TreeNode{Text: "stray"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown parent: got %v", err)
	}
}

func TestTreeMouse(t *testing.T) {
	f := newTreeFixture(t)
	m, tree := f.m, f.tree

	if hit := m.HitTest(geom.Pt(100, 50)); hit.Zone != HitControl || hit.Target != Widget(tree) {
		t.Fatalf("hit = %s", hit)
	}
	m.Dispatch(mouse(EventMouseDown, 100, 50))
	if tree.Selected() != f.root || f.root.IsOpen() || !tree.IsFocused() {
		t.Fatal("click on the label should select root without opening it")
	}
	var selected []Event
	for _, ev := range m.Pump() {
		if ev.Code == CodeTreeSelect && ev.Source == Widget(tree) {
			selected = append(selected, ev)
		}
	}
	if len(selected) != 1 || selected[0].Data != f.root {
		t.Fatalf("select events = %v", selected)
	}

	m.Dispatch(mouse(EventMouseDown, 20, 50))
	if !f.root.IsOpen() {
		t.Fatal("click on the expander did not open root")
	}
	if got := tree.NodeAt(geom.Pt(100, 70)); got != f.a {
		t.Fatalf("second row = %v", got)
	}

	dbl := mouse(EventMouseDown, 100, 70)
	dbl.Clicks = 2
	m.Dispatch(dbl)
	if tree.Selected() != f.a || !f.a.IsOpen() {
		t.Fatal("double click did not select and open a")
	}
	if got := tree.NodeAt(geom.Pt(100, 90)); got != f.a1 {
		t.Fatalf("third row = %v", got)
	}
	if got := tree.NodeAt(geom.Pt(100, 150)); got != nil {
		t.Fatalf("row past the last node = %v", got)
	}
}

func TestTreeKeyboard(t *testing.T) {
	f := newTreeFixture(t)
	m, tree := f.m, f.tree
	m.Dispatch(mouse(EventMouseDown, 100, 50))

	steps := []struct {
		key      Key
		selected *TreeNode
		open     []*TreeNode
	}{
		{KeyRight, f.root, []*TreeNode{f.root}},
		{KeyDown, f.a, []*TreeNode{f.root}},
		{KeyDown, f.b, []*TreeNode{f.root}},
		{KeyUp, f.a, []*TreeNode{f.root}},
		{KeyRight, f.a, []*TreeNode{f.root, f.a}},
		{KeyDown, f.a1, []*TreeNode{f.root, f.a}},
		{KeyEnd, f.b, []*TreeNode{f.root, f.a}},
		{KeyHome, f.root, []*TreeNode{f.root, f.a}},
		{KeyLeft, f.root, []*TreeNode{f.a}},
		{KeyDown, f.root, []*TreeNode{f.a}},
	}
	for i, st := range steps {
		if !m.Dispatch(&Event{Type: EventKeyDown, Key: st.key}) {
			t.Fatalf("step %d: key %d not consumed", i, st.key)
		}
		if tree.Selected() != st.selected {
			t.Fatalf("step %d: selected = %v, want %s", i, tree.Selected(), st.selected.Text)
		}
		for _, n := range []*TreeNode{f.root, f.a} {
			want := false
			for _, o := range st.open {
				want = want || o == n
			}
			if n.IsOpen() != want {
				t.Fatalf("step %d: %s open = %v", i, n.Text, n.IsOpen())
			}
		}
	}
}

func TestTreeClosingMovesSelection(t *testing.T) {
	f := newTreeFixture(t)
	f.tree.OpenNode(f.root, true)
	f.tree.OpenNode(f.a, true)
	f.tree.SelectNode(f.a1)

	f.tree.OpenNode(f.root, false)
	if f.tree.Selected() != f.root {
		t.Fatalf("selected = %v", f.tree.Selected())
	}
	if f.a1.IsSelected() {
		t.Fatal("hidden node still selected")
	}
}

func TestImageWidget(t *testing.T) {
	m, rec := newTestManager(t)
	w := mustWindow(t, m, "p", nil, geom.R(0, 0, 300, 200), frameFlags)
	src := image.NewRGBA(image.Rect(0, 0, 32, 16))
	if _, err := m.Resources().AddImageMap("icons", src, 16, 16); err != nil {
		t.Fatalf("AddImageMap: %v", err)
	}
	if _, err := m.Resources().AddImage("plain", src); err != nil {
		t.Fatalf("AddImage: %v", err)
	}

	logo := NewAutoSizeImage("logo", "icons", 1, geom.Pt(5, 5))
	missing := NewImage("missing", "nope", 0, geom.R(50, 5, 16, 16))
	notMap := NewImage("notmap", "plain", 2, geom.R(80, 5, 16, 16))
	for _, c := range []Widget{logo, missing, notMap} {
		if err := w.AddControl(c); err != nil {
			t.Fatalf("AddControl(%s): %v", c.ID(), err)
		}
	}
	if got := logo.StoredRect(); !got.Eq(geom.R(5, 5, 16, 16)) {
		t.Fatalf("auto-size rect = %s", got)
	}
	if missing.Source() != nil || notMap.Source() != nil {
		t.Fatal("failed lookups should yield no image")
	}
	if hit := m.HitTest(geom.Pt(10, 40)); hit.Zone != HitControl || hit.Target != Widget(logo) {
		t.Fatalf("hit = %s", hit)
	}

	m.Draw()
	var copies []geom.Rect
	for _, op := range rec.Ops {
		if op.Kind == render.OpCopy {
			copies = append(copies, op.Rect)
		}
	}
	if len(copies) != 1 || !copies[0].Eq(geom.R(9, 35, 16, 16)) {
		t.Fatalf("copies = %v", copies)
	}
}
