package ui

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/1broseidon/wintk/internal/geom"
	"github.com/1broseidon/wintk/internal/render"
)

// MenuItem is an entry of a menu bar or of a dropdown. An item with
// children opens a dropdown; a leaf posts MenuSelected when chosen.
type MenuItem struct {
	Base

	menu       *Menu
	parentItem *MenuItem
	items      []*MenuItem // nil entries are separators
	hotkey     rune
}

// Menu is a window's menu bar. Top-level items wrap onto further lines when
// the window is too narrow.
type Menu struct {
	Base

	items []*MenuItem

	// Items whose dropdowns are open, outermost first.
	path []*MenuItem
	// Highlighted item.
	hot *MenuItem
}

// NewMenu returns an empty menu bar.
func NewMenu(id string) *Menu {
	m := &Menu{}
	m.Base = newBase(m, id, geom.Rect{}, 0)
	return m
}

// parseLabel strips the hotkey marker: "&File" shows "File" with hotkey f.
// "&&" is a literal ampersand.
func parseLabel(label string) (string, rune) {
	var b strings.Builder
	var hotkey rune
	rs := []rune(label)
	for i := 0; i < len(rs); i++ {
		if rs[i] == '&' && i+1 < len(rs) {
			i++
			if rs[i] != '&' && hotkey == 0 {
				hotkey = unicode.ToLower(rs[i])
			}
		}
		b.WriteRune(rs[i])
	}
	return b.String(), hotkey
}

func (m *Menu) newItem(id, label string, parent *MenuItem) (*MenuItem, error) {
	if id == "" {
		return nil, fmt.Errorf("menu item: %w", ErrEmptyID)
	}
	if m.Find(id) != nil {
		return nil, fmt.Errorf("menu item %s: %w", id, ErrDuplicateID)
	}
	it := &MenuItem{menu: m, parentItem: parent}
	it.Base = newBase(it, id, geom.Rect{}, FlagNoFocus)
	it.text, it.hotkey = parseLabel(label)

	var p Widget = m
	if parent != nil {
		p = parent
	}
	if err := it.SetParent(p); err != nil {
		return nil, err
	}
	if m.mgr != nil {
		register(m.mgr, it)
	}
	return it, nil
}

// AddItem appends a top-level item.
func (m *Menu) AddItem(id, label string) (*MenuItem, error) {
	it, err := m.newItem(id, label, nil)
	if err != nil {
		return nil, err
	}
	m.items = append(m.items, it)
	return it, nil
}

// AddItem appends an entry to the item's dropdown.
func (it *MenuItem) AddItem(id, label string) (*MenuItem, error) {
	child, err := it.menu.newItem(id, label, it)
	if err != nil {
		return nil, err
	}
	it.items = append(it.items, child)
	return child, nil
}

// AddSeparator appends a separator line to the item's dropdown. A separator
// must follow an entry.
func (it *MenuItem) AddSeparator() error {
	if len(it.items) == 0 || it.items[len(it.items)-1] == nil {
		return fmt.Errorf("menu item %s: %w", it.id, ErrSeparator)
	}
	it.items = append(it.items, nil)
	return nil
}

// Items returns the dropdown entries; nil entries are separators.
func (it *MenuItem) Items() []*MenuItem { return slices.Clone(it.items) }

// Hotkey returns the lower-case hotkey, or zero.
func (it *MenuItem) Hotkey() rune { return it.hotkey }

// HasSubmenu reports whether the item opens a dropdown.
func (it *MenuItem) HasSubmenu() bool { return len(it.items) > 0 }

// IsOpened reports whether the item's dropdown is showing.
func (it *MenuItem) IsOpened() bool { return slices.Contains(it.menu.path, it) }

func (it *MenuItem) children() []Widget {
	var out []Widget
	for _, c := range it.items {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

// siblings is the list the item belongs to.
func (it *MenuItem) siblings() []*MenuItem {
	if it.parentItem == nil {
		return it.menu.items
	}
	return it.parentItem.items
}

// Items returns the top-level items.
func (m *Menu) Items() []*MenuItem { return slices.Clone(m.items) }

// Find returns the item with id anywhere in the menu, or nil.
func (m *Menu) Find(id string) *MenuItem {
	var walk func(items []*MenuItem) *MenuItem
	walk = func(items []*MenuItem) *MenuItem {
		for _, it := range items {
			if it == nil {
				continue
			}
			if it.id == id {
				return it
			}
			if found := walk(it.items); found != nil {
				return found
			}
		}
		return nil
	}
	return walk(m.items)
}

func (m *Menu) children() []Widget {
	out := make([]Widget, 0, len(m.items))
	for _, it := range m.items {
		out = append(out, it)
	}
	return out
}

// IsOpen reports whether an item is highlighted or a dropdown is showing.
func (m *Menu) IsOpen() bool { return m.hot != nil }

// Hot returns the highlighted item, or nil.
func (m *Menu) Hot() *MenuItem { return m.hot }

func (m *Menu) padding() int {
	if m.mgr == nil {
		return 0
	}
	return m.mgr.cfg.Metrics.MenuPadding
}

func (m *Menu) lineHeight() int {
	return m.measure("M").Y + 2*(m.padding()/4)
}

func (m *Menu) separatorHeight() int {
	return max(1, m.lineHeight()/4)
}

func (m *Menu) itemWidth(it *MenuItem) int {
	return m.measure(it.text).X + 2*m.padding()
}

// layoutStrip places the top-level items, wrapping at width. Rects are
// relative to the strip origin.
func (m *Menu) layoutStrip(width int) []geom.Rect {
	lh := m.lineHeight()
	rects := make([]geom.Rect, len(m.items))
	x, y := 0, 0
	for i, it := range m.items {
		iw := m.itemWidth(it)
		if x > 0 && x+iw > width {
			x, y = 0, y+lh
		}
		rects[i] = geom.R(x, y, iw, lh)
		x += iw
	}
	return rects
}

// Height returns the strip height for the given width.
func (m *Menu) Height(width int) int {
	if len(m.items) == 0 {
		return 0
	}
	rects := m.layoutStrip(width)
	return rects[len(rects)-1].Bottom()
}

// Rect is the strip across the top of the window's frame interior.
func (m *Menu) Rect(relative, scrolled bool) geom.Rect {
	w, ok := m.parent.(*Window)
	if !ok {
		return geom.Rect{}
	}
	fi := w.frameInterior(relative, scrolled)
	return geom.R(fi.X, fi.Y, fi.W, min(m.Height(fi.W), fi.H))
}

func (m *Menu) stripRects() []geom.Rect {
	strip := m.Rect(false, true)
	rects := m.layoutStrip(strip.W)
	for i := range rects {
		rects[i] = rects[i].Offset(strip.Origin())
	}
	return rects
}

// dropdown is the on-screen layout of an open item's entries.
type dropdown struct {
	owner   *MenuItem
	rect    geom.Rect
	entries []geom.Rect
}

// dropdowns lays out every open dropdown, outermost first.
func (m *Menu) dropdowns() []dropdown {
	if len(m.path) == 0 {
		return nil
	}
	var out []dropdown
	var origin geom.Point

	strip := m.stripRects()
	top := m.path[0]
	if i := slices.Index(m.items, top); i >= 0 {
		origin = geom.Pt(strip[i].X, strip[i].Bottom())
	}

	lh, sh := m.lineHeight(), m.separatorHeight()
	for level, owner := range m.path {
		if level > 0 {
			prev := out[level-1]
			i := slices.Index(prev.owner.items, owner)
			if i < 0 {
				break
			}
			origin = geom.Pt(prev.rect.Right(), prev.entries[i].Y)
		}

		width := 0
		for _, it := range owner.items {
			if it != nil {
				width = max(width, m.itemWidth(it)+m.arrowWidth(it))
			}
		}
		d := dropdown{owner: owner}
		y := origin.Y
		for _, it := range owner.items {
			if it == nil {
				d.entries = append(d.entries, geom.R(origin.X, y, width, sh))
				y += sh
				continue
			}
			d.entries = append(d.entries, geom.R(origin.X, y, width, lh))
			y += lh
		}
		d.rect = geom.R(origin.X, origin.Y, width, y-origin.Y)
		out = append(out, d)
	}
	return out
}

func (m *Menu) arrowWidth(it *MenuItem) int {
	if !it.HasSubmenu() {
		return 0
	}
	return m.measure(glyphText[GlyphSubmenu]).X + m.padding()
}

// itemAt returns the item under pt in the strip or an open dropdown. Inner
// dropdowns are checked first since they overlap their parents.
func (m *Menu) itemAt(pt geom.Point) (it *MenuItem, inDropdown bool) {
	drops := m.dropdowns()
	for i := len(drops) - 1; i >= 0; i-- {
		d := drops[i]
		if !d.rect.Contains(pt) {
			continue
		}
		for j, r := range d.entries {
			if r.Contains(pt) {
				return d.owner.items[j], true
			}
		}
		return nil, true
	}
	for i, r := range m.stripRects() {
		if r.Contains(pt) {
			return m.items[i], false
		}
	}
	return nil, false
}

// HitTest reports Menu on the strip and MenuItem on an open dropdown.
func (m *Menu) HitTest(pt geom.Point) HitResult {
	if m.Rect(false, true).Contains(pt) {
		return HitResult{HitMenu, m}
	}
	for _, d := range m.dropdowns() {
		if d.rect.Contains(pt) {
			return HitResult{HitMenuItem, m}
		}
	}
	return noHit
}

// Open highlights it and shows the dropdowns leading to it, plus its own
// when it has children.
func (m *Menu) Open(it *MenuItem) {
	if it == nil || it.menu != m {
		return
	}
	var path []*MenuItem
	for p := it.parentItem; p != nil; p = p.parentItem {
		path = append([]*MenuItem{p}, path...)
	}
	if it.HasSubmenu() {
		path = append(path, it)
	}
	m.path = path
	m.hot = it
}

// Close hides every dropdown and clears the highlight.
func (m *Menu) Close() {
	m.path = nil
	m.hot = nil
}

func (m *Menu) captured() bool {
	if m.mgr == nil {
		return false
	}
	c := m.mgr.Capture()
	return c.Captured && c.Target.Target == Widget(m)
}

func (m *Menu) grab(pt geom.Point) {
	m.mgr.startCapture(HitResult{HitMenu, m}, pt)
}

func (m *Menu) release() {
	m.Close()
	if m.captured() {
		m.mgr.ReleaseCapture()
	}
}

// Select closes the menu and posts MenuSelected from it.
func (m *Menu) Select(it *MenuItem) {
	m.release()
	if it != nil {
		it.post(ClassMenu, CodeMenuSelected, it.id)
	}
}

// HandleEvent opens items on click and runs keyboard navigation while the
// menu holds the capture.
func (m *Menu) HandleEvent(ev *Event) bool {
	if m.mgr == nil {
		return false
	}
	ours := m.captured()

	switch ev.Type {
	case EventMouseDown:
		if ours {
			it, inDropdown := m.itemAt(ev.Pos)
			if it != nil && it.HasSubmenu() && it.IsOpened() {
				return true
			}
			if it != nil && !it.HasSubmenu() && (inDropdown || it == m.hot) {
				m.Select(it)
				return true
			}
			m.release()
			return true
		}
		if ev.Button != ButtonLeft || !m.Rect(false, true).Contains(ev.Pos) {
			return false
		}
		m.SetActive()
		m.SetFocus(true, nil)
		if it, _ := m.itemAt(ev.Pos); it != nil {
			m.Open(it)
			m.grab(ev.Pos)
		}
		return true

	case EventMouseMove:
		if !ours {
			return false
		}
		if it, _ := m.itemAt(ev.Pos); it != nil {
			m.Open(it)
		}
		return true

	case EventKeyDown:
		if ours {
			m.handleKey(ev)
			return true
		}
		if ev.Mod&ModAlt != 0 && ev.Key == KeyRune {
			if it := findHotkey(m.items, ev.Rune); it != nil {
				m.Open(it)
				m.grab(m.mgr.Pointer())
				return true
			}
		}
	}
	return false
}

func findHotkey(items []*MenuItem, r rune) *MenuItem {
	r = unicode.ToLower(r)
	for _, it := range items {
		if it != nil && it.hotkey == r {
			return it
		}
	}
	return nil
}

func (m *Menu) handleKey(ev *Event) {
	switch ev.Key {
	case KeyEscape:
		m.release()
	case KeyLeft:
		m.MoveLeft()
	case KeyRight:
		m.MoveRight()
	case KeyUp:
		m.MoveUp()
	case KeyDown:
		m.MoveDown()
	case KeyEnter:
		if m.hot == nil {
			return
		}
		if m.hot.HasSubmenu() {
			m.enter(m.hot)
			return
		}
		m.Select(m.hot)
	case KeyRune:
		if m.hot == nil {
			return
		}
		level := m.hot.siblings()
		if m.hot.HasSubmenu() && m.hot.IsOpened() {
			level = m.hot.items
		}
		it := findHotkey(level, ev.Rune)
		switch {
		case it == nil:
		case it.HasSubmenu():
			m.enter(it)
		default:
			m.Select(it)
		}
	}
}

// enter opens it and highlights its first entry.
func (m *Menu) enter(it *MenuItem) {
	m.Open(it)
	if first := step(it.items, -1, 1); first != nil {
		m.hot = first
	}
}

// step returns the next non-separator item after index i in direction dir,
// wrapping around.
func step(items []*MenuItem, i, dir int) *MenuItem {
	n := len(items)
	for k := 1; k <= n; k++ {
		j := ((i+dir*k)%n + n) % n
		if items[j] != nil {
			return items[j]
		}
	}
	return nil
}

// MoveRight enters the highlighted item's submenu, or moves to the next
// top-level item.
func (m *Menu) MoveRight() {
	hot := m.hot
	if hot == nil {
		return
	}
	if hot.parentItem != nil && hot.HasSubmenu() {
		m.enter(hot)
		return
	}
	top := m.topOf(hot)
	if next := step(m.items, slices.Index(m.items, top), 1); next != nil {
		m.Open(next)
	}
}

// MoveLeft leaves a submenu, or moves to the previous top-level item.
func (m *Menu) MoveLeft() {
	hot := m.hot
	if hot == nil {
		return
	}
	if p := hot.parentItem; p != nil && p.parentItem != nil {
		m.Open(p)
		return
	}
	top := m.topOf(hot)
	if prev := step(m.items, slices.Index(m.items, top), -1); prev != nil {
		m.Open(prev)
	}
}

// MoveDown opens a top-level item's dropdown or moves down a dropdown.
func (m *Menu) MoveDown() {
	hot := m.hot
	if hot == nil {
		return
	}
	if hot.parentItem == nil {
		if hot.HasSubmenu() {
			m.enter(hot)
		}
		return
	}
	sibs := hot.siblings()
	if next := step(sibs, slices.Index(sibs, hot), 1); next != nil {
		m.Open(next)
	}
}

// MoveUp moves up a dropdown.
func (m *Menu) MoveUp() {
	hot := m.hot
	if hot == nil || hot.parentItem == nil {
		return
	}
	sibs := hot.siblings()
	if prev := step(sibs, slices.Index(sibs, hot), -1); prev != nil {
		m.Open(prev)
	}
}

func (m *Menu) topOf(it *MenuItem) *MenuItem {
	for it.parentItem != nil {
		it = it.parentItem
	}
	return it
}

// Draw paints the strip. Open dropdowns are drawn by DrawOpened after every
// window so they overlap other windows.
func (m *Menu) Draw() {
	mgr := m.mgr
	if mgr == nil {
		return
	}
	pal := mgr.palette
	strip := m.Rect(false, true)
	fillRect(mgr.r, strip, pal.Menu)

	var hotTop *MenuItem
	if m.hot != nil {
		hotTop = m.topOf(m.hot)
	}
	for i, r := range m.stripRects() {
		it := m.items[i]
		fg := pal.Text
		if it == hotTop {
			fillRect(mgr.r, r, pal.MenuHighlight)
			fg = pal.TitleText
		}
		mgr.drawTextIn(it.text, r, fg, true, true)
	}
}

// DrawOpened paints the open dropdowns.
func (m *Menu) DrawOpened() {
	mgr := m.mgr
	if mgr == nil {
		return
	}
	pal := mgr.palette
	clip := render.PushClip(mgr.r, mgr.ScreenRect(), false)
	defer clip.Restore()

	pad := m.padding()
	for _, d := range m.dropdowns() {
		fillRect(mgr.r, d.rect, pal.Menu)
		frameRect(mgr.r, d.rect, 1, pal.Border)
		for i, r := range d.entries {
			it := d.owner.items[i]
			if it == nil {
				mid := r.Y + r.H/2
				mgr.r.SetDrawColor(pal.Border)
				mgr.r.DrawLines([]geom.Point{geom.Pt(r.X+pad/2, mid), geom.Pt(r.Right()-1-pad/2, mid)})
				continue
			}
			fg := pal.Text
			if it == m.hot || it.IsOpened() {
				fillRect(mgr.r, r, pal.MenuHighlight)
				fg = pal.TitleText
			}
			mgr.drawTextIn(it.text, geom.R(r.X+pad, r.Y, r.W-pad, r.H), fg, false, true)
			if it.HasSubmenu() {
				aw := m.arrowWidth(it)
				mgr.drawGlyph(GlyphSubmenu, geom.R(r.Right()-aw, r.Y, aw, r.H), fg)
			}
		}
	}
}
