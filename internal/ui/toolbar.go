package ui

import (
	"fmt"
	"slices"

	"github.com/1broseidon/wintk/internal/geom"
)

// Toolbar height limits.
const (
	MinToolbarHeight = 1
	MaxToolbarHeight = 128
)

// ToolbarItem is a toolbar button. It posts Toolbar/Clicked.
type ToolbarItem struct {
	Button
}

// Toolbar is a strip of buttons below the menu bar.
type Toolbar struct {
	Base

	height   int
	autoSize bool
	items    []*ToolbarItem // nil entries are separators
}

// NewToolbar returns a toolbar of fixed height.
func NewToolbar(id string, height int) (*Toolbar, error) {
	if height < MinToolbarHeight || height > MaxToolbarHeight {
		return nil, fmt.Errorf("toolbar %s height %d not in [%d,%d]: %w",
			id, height, MinToolbarHeight, MaxToolbarHeight, ErrOutOfRange)
	}
	t := &Toolbar{height: height}
	t.Base = newBase(t, id, geom.Rect{}, 0)
	return t, nil
}

// NewAutoSizeToolbar returns a toolbar that grows to fit its items.
func NewAutoSizeToolbar(id string) *Toolbar {
	t := &Toolbar{autoSize: true}
	t.Base = newBase(t, id, geom.Rect{}, FlagAutoSize)
	return t
}

// AddItem appends a button. Item ids are unique within the toolbar.
func (t *Toolbar) AddItem(id, text string) (*ToolbarItem, error) {
	if id == "" {
		return nil, fmt.Errorf("toolbar item: %w", ErrEmptyID)
	}
	if t.Find(id) != nil {
		return nil, fmt.Errorf("toolbar item %s: %w", id, ErrDuplicateID)
	}
	it := &ToolbarItem{}
	it.Button = *NewButton(id, text, geom.Rect{})
	it.This = it
	it.class, it.code = ClassToolbar, CodeToolbarClicked
	it.flags |= FlagAutoSize | FlagNoFocus
	if err := it.SetParent(t); err != nil {
		return nil, err
	}
	t.items = append(t.items, it)
	if t.mgr != nil {
		register(t.mgr, it)
		t.layout()
	}
	return it, nil
}

// AddSeparator appends a gap between button groups.
func (t *Toolbar) AddSeparator() {
	t.items = append(t.items, nil)
	if t.mgr != nil {
		t.layout()
	}
}

// Find returns the item with id, or nil.
func (t *Toolbar) Find(id string) *ToolbarItem {
	for _, it := range t.items {
		if it != nil && it.id == id {
			return it
		}
	}
	return nil
}

// Items returns the items; nil entries are separators.
func (t *Toolbar) Items() []*ToolbarItem { return slices.Clone(t.items) }

func (t *Toolbar) children() []Widget {
	var out []Widget
	for _, it := range t.items {
		if it != nil {
			out = append(out, it)
		}
	}
	return out
}

// Init lays out the items once the toolbar knows its fonts.
func (t *Toolbar) Init() {
	t.layout()
}

func (t *Toolbar) separatorWidth() int {
	if t.mgr == nil {
		return 1
	}
	return max(1, 2*t.mgr.cfg.Metrics.BorderWidth)
}

// layout places the items left to right, vertically centered in the strip,
// and grows an auto-size toolbar to the tallest item.
func (t *Toolbar) layout() {
	if t.autoSize {
		h := MinToolbarHeight
		for _, it := range t.items {
			if it != nil {
				h = max(h, it.rect.H)
			}
		}
		t.height = min(h, MaxToolbarHeight)
	}
	x := 0
	for _, it := range t.items {
		if it == nil {
			x += t.separatorWidth()
			continue
		}
		it.rect.X = x
		it.rect.Y = max(0, (t.height-it.rect.H)/2)
		x += it.rect.W
	}
}

// Height returns the strip height.
func (t *Toolbar) Height() int { return t.height }

// Rect is the strip below the menu bar.
func (t *Toolbar) Rect(relative, scrolled bool) geom.Rect {
	w, ok := t.parent.(*Window)
	if !ok {
		return geom.Rect{}
	}
	fi := w.frameInterior(relative, scrolled)
	top := w.menuHeight(fi.W)
	return geom.R(fi.X, fi.Y+top, fi.W, max(0, min(t.height, fi.H-top)))
}

// SetFocus keeps at most one item focused.
func (t *Toolbar) SetFocus(focus bool, from Widget) {
	if from != nil && focus {
		for _, it := range t.items {
			if it != nil && Widget(it) != from {
				it.focused = false
			}
		}
	}
	t.Base.SetFocus(focus, from)
}

// HitTest reports Toolbar anywhere on the strip.
func (t *Toolbar) HitTest(pt geom.Point) HitResult {
	if t.Rect(false, true).Contains(pt) {
		return HitResult{HitToolbar, t}
	}
	return noHit
}

func (t *Toolbar) itemAt(pt geom.Point) *ToolbarItem {
	for _, it := range t.items {
		if it != nil && it.HitTest(pt).Hit() {
			return it
		}
	}
	return nil
}

// HandleEvent hands pointer events to the item holding the capture, else
// to the item under the pointer.
func (t *Toolbar) HandleEvent(ev *Event) bool {
	if t.mgr == nil || !ev.Type.IsPointer() {
		return false
	}
	if c := t.mgr.Capture(); c.Captured {
		for _, it := range t.items {
			if it != nil && c.Target.Target == Widget(it) {
				return it.HandleEvent(ev)
			}
		}
		return false
	}
	if it := t.itemAt(ev.Pos); it != nil {
		return it.HandleEvent(ev)
	}
	return false
}

func (t *Toolbar) Draw() {
	m := t.mgr
	if m == nil {
		return
	}
	strip := t.Rect(false, true)
	fillRect(m.r, strip, m.palette.Window)
	bevel(m.r, strip, m.palette.Window, false)
	for _, it := range t.items {
		if it != nil {
			it.Draw()
		}
	}
}
