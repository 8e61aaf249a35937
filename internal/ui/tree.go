package ui

import (
	"fmt"
	"slices"

	"github.com/1broseidon/wintk/internal/geom"
	"github.com/1broseidon/wintk/internal/render"
)

// TreeNode is one row of a Tree.
type TreeNode struct {
	Text string
	Tag  any

	parent   *TreeNode
	depth    int
	open     bool
	selected bool

	image       string
	openIndex   int
	closedIndex int
}

func (n *TreeNode) Parent() *TreeNode { return n.parent }
func (n *TreeNode) IsOpen() bool      { return n.open }
func (n *TreeNode) IsSelected() bool  { return n.selected }

// IsVisible reports whether every ancestor of n is open.
func (n *TreeNode) IsVisible() bool {
	for p := n.parent; p != nil; p = p.parent {
		if !p.open {
			return false
		}
	}
	return true
}

// SetImage draws tile opened or closed of the image map id before the text,
// depending on the node state.
func (n *TreeNode) SetImage(id string, opened, closed int) {
	n.image, n.openIndex, n.closedIndex = id, opened, closed
}

func (n *TreeNode) isDescendantOf(a *TreeNode) bool {
	for p := n.parent; p != nil; p = p.parent {
		if p == a {
			return true
		}
	}
	return false
}

// Tree shows a single-rooted hierarchy of text nodes, one per line. A click
// selects a node; a double click or a click on its expander opens or closes
// it. Selecting posts Select with the node as data.
type Tree struct {
	Base

	nodes      []*TreeNode // Depth-first order.
	lineHeight int
	indent     int
}

// NewTree returns an empty tree. A lineHeight of 0 uses the font height.
func NewTree(id string, rect geom.Rect, lineHeight int) *Tree {
	t := &Tree{lineHeight: lineHeight}
	t.Base = newBase(t, id, rect, FlagBorder)
	return t
}

func (t *Tree) Init() {
	if t.style.BorderWidth == 0 {
		t.style.BorderWidth = 1
	}
	if t.lineHeight <= 0 {
		t.lineHeight = max(t.measure("").Y, 1)
	}
	if t.indent <= 0 {
		t.indent = t.lineHeight
	}
}

func (t *Tree) Indent() int { return t.indent }

// SetIndent sets the horizontal step per depth level, clamped to [0,255].
func (t *Tree) SetIndent(indent int) { t.indent = min(max(indent, 0), 255) }

// LineHeight returns the row height.
func (t *Tree) LineHeight() int { return t.lineHeight }

// Nodes returns every node in depth-first order.
func (t *Tree) Nodes() []*TreeNode { return slices.Clone(t.nodes) }

// AddNode adds a node labeled text under parent, after the parent's
// existing descendants. A nil parent adds the root, which must come first.
func (t *Tree) AddNode(text string, parent *TreeNode) (*TreeNode, error) {
	if parent == nil {
		if len(t.nodes) > 0 {
			return nil, fmt.Errorf("tree %s: %w", t.id, ErrTreeHasRoot)
		}
		n := &TreeNode{Text: text}
		t.nodes = append(t.nodes, n)
		return n, nil
	}
	at := slices.Index(t.nodes, parent)
	if at < 0 {
		return nil, fmt.Errorf("parent %q in tree %s: %w", parent.Text, t.id, ErrNotFound)
	}
	at++
	for at < len(t.nodes) && t.nodes[at].isDescendantOf(parent) {
		at++
	}
	n := &TreeNode{Text: text, parent: parent, depth: parent.depth + 1}
	t.nodes = slices.Insert(t.nodes, at, n)
	return n, nil
}

// HasChildren reports whether n has at least one child.
func (t *Tree) HasChildren(n *TreeNode) bool {
	i := slices.Index(t.nodes, n)
	return i >= 0 && i+1 < len(t.nodes) && t.nodes[i+1].parent == n
}

// OpenNode opens or closes n. Closing a node that hides the selection
// selects n.
func (t *Tree) OpenNode(n *TreeNode, open bool) {
	if n == nil || n.open == open {
		return
	}
	n.open = open
	if sel := t.Selected(); !open && sel != nil && sel.isDescendantOf(n) {
		t.SelectNode(n)
	}
}

// ToggleNode flips the open state of n.
func (t *Tree) ToggleNode(n *TreeNode) {
	if n != nil {
		t.OpenNode(n, !n.open)
	}
}

// SelectNode makes n the only selected node and posts Select. A nil n
// clears the selection.
func (t *Tree) SelectNode(n *TreeNode) {
	for _, node := range t.nodes {
		node.selected = node == n
	}
	t.post(ClassTree, CodeTreeSelect, n)
	t.scrollSelectionIntoView()
}

// Selected returns the selected node, or nil.
func (t *Tree) Selected() *TreeNode {
	for _, n := range t.nodes {
		if n.selected {
			return n
		}
	}
	return nil
}

// visible returns the nodes drawn, in row order.
func (t *Tree) visible() []*TreeNode {
	var rows []*TreeNode
	for _, n := range t.nodes {
		if n.IsVisible() {
			rows = append(rows, n)
		}
	}
	return rows
}

// MoveSelection moves the selection by delta visible rows, stopping at the
// first and last row. Without a selection the first row is selected.
func (t *Tree) MoveSelection(delta int) {
	rows := t.visible()
	if len(rows) == 0 {
		return
	}
	i := slices.Index(rows, t.Selected())
	if i < 0 {
		t.SelectNode(rows[0])
		return
	}
	t.SelectNode(rows[min(max(i+delta, 0), len(rows)-1)])
}

// rowRect returns the absolute, scrolled rect of visible row i.
func (t *Tree) rowRect(i int) geom.Rect {
	c := t.ClientRect(false, true)
	return geom.R(c.X, c.Y+i*t.lineHeight, c.W, t.lineHeight)
}

// expanderRect is the open/close box of a node on row r.
func (t *Tree) expanderRect(n *TreeNode, r geom.Rect) geom.Rect {
	return geom.R(r.X+n.depth*t.indent, r.Y, t.indent, r.H)
}

// NodeAt returns the visible node on the row under pt, or nil.
func (t *Tree) NodeAt(pt geom.Point) *TreeNode {
	c := t.ClientRect(false, true)
	if !c.Contains(pt) || t.lineHeight <= 0 {
		return nil
	}
	rows := t.visible()
	if i := (pt.Y - c.Y) / t.lineHeight; i < len(rows) {
		return rows[i]
	}
	return nil
}

func (t *Tree) scrollSelectionIntoView() {
	w := t.Window()
	i := slices.Index(t.visible(), t.Selected())
	if w == nil || i < 0 {
		return
	}
	row := t.rowRect(i)
	client := w.ClientRect(false, false)
	switch {
	case row.Y < client.Y:
		w.ScrollRel(geom.Pt(0, row.Y-client.Y))
	case row.Bottom() > client.Bottom():
		w.ScrollRel(geom.Pt(0, row.Bottom()-client.Bottom()))
	}
}

func (t *Tree) HitTest(pt geom.Point) HitResult {
	if t.Rect(false, true).Contains(pt) {
		return HitResult{HitControl, t}
	}
	return noHit
}

func (t *Tree) HandleEvent(ev *Event) bool {
	m := t.mgr
	if m == nil {
		return false
	}
	t.handleTooltip(ev)

	switch ev.Type {
	case EventMouseDown:
		if ev.Button != ButtonLeft || m.Capture().Captured || !t.HitTest(ev.Pos).Hit() {
			return false
		}
		t.SetActive()
		t.SetFocus(true, nil)
		n := t.NodeAt(ev.Pos)
		if n == nil {
			return true
		}
		row := t.rowRect(slices.Index(t.visible(), n))
		onExpander := t.HasChildren(n) && t.expanderRect(n, row).Contains(ev.Pos)
		t.SelectNode(n)
		if ev.Clicks == 2 || onExpander {
			t.ToggleNode(n)
		}
		return true

	case EventKeyDown:
		if !t.focused {
			return false
		}
		switch ev.Key {
		case KeyUp:
			t.MoveSelection(-1)
		case KeyDown:
			t.MoveSelection(1)
		case KeyHome:
			t.MoveSelection(-len(t.nodes))
		case KeyEnd:
			t.MoveSelection(len(t.nodes))
		case KeyLeft:
			t.OpenNode(t.Selected(), false)
		case KeyRight:
			t.OpenNode(t.Selected(), true)
		default:
			return false
		}
		return true
	}
	return false
}

func (t *Tree) Draw() {
	m := t.mgr
	if m == nil {
		return
	}
	r := t.Rect(false, true)
	bg := m.palette.Window
	if !t.style.Bg.IsTransparent() {
		bg = t.style.Bg
	}
	fillRect(m.r, r, bg)
	border := m.palette.Border
	if t.focused {
		border = border.Darken()
	}
	frameRect(m.r, r, int(t.style.BorderWidth), border)

	clip := render.PushClip(m.r, t.ClientRect(false, true), true)
	defer clip.Restore()
	if clip.Empty() {
		return
	}
	fg := m.palette.Text
	if !t.style.Fg.IsTransparent() {
		fg = t.style.Fg
	}
	for i, n := range t.visible() {
		t.drawNode(n, t.rowRect(i), fg)
	}
}

func (t *Tree) drawNode(n *TreeNode, row geom.Rect, fg render.Color) {
	m := t.mgr
	if n.selected {
		fillRect(m.r, row, m.palette.MenuHighlight)
	}
	box := t.expanderRect(n, row)
	if t.HasChildren(n) {
		sign := "+"
		if n.open {
			sign = "-"
		}
		m.drawTextIn(sign, box, fg, true, true)
	}
	x := box.Right()
	if n.image != "" {
		index := n.closedIndex
		if n.open {
			index = n.openIndex
		}
		if img := m.res.Glyph(n.image, index); img != nil {
			icon := geom.R(x, row.Y, t.lineHeight, row.H)
			if img.Draw(m.r, icon) {
				x = icon.Right()
			}
		}
	}
	m.drawTextIn(n.Text, geom.R(x+2, row.Y, row.Right()-x-2, row.H), fg, false, true)
}
