package ui

import (
	"fmt"

	"github.com/1broseidon/wintk/internal/geom"
	"github.com/1broseidon/wintk/internal/render"
)

// Grid is the snap-to-grid setting of a window's client area. Child windows
// dragged inside the window land on grid points when Snap is set.
type Grid struct {
	Size int
	Show bool
	Snap bool
}

// DefaultGrid is a hidden, non-snapping grid.
var DefaultGrid = Grid{Size: 1}

func (g Grid) roundUp(v int) int {
	return ((v + g.Size - 1) / g.Size) * g.Size
}

// SnapPoint rounds pt up to the next grid point.
func (g Grid) SnapPoint(pt geom.Point) geom.Point {
	if g.Size <= 1 || !g.Snap {
		return pt
	}
	return geom.Pt(g.roundUp(pt.X), g.roundUp(pt.Y))
}

// Draw marks the grid points inside area. Offset is the client scroll
// position so the dots move with the content.
func (g Grid) Draw(r render.Renderer, area geom.Rect, offset geom.Point, c render.Color) {
	if !g.Show || g.Size <= 1 {
		return
	}
	r.SetDrawColor(c)
	startX := area.X - offset.X%g.Size
	startY := area.Y - offset.Y%g.Size
	for y := startY; y < area.Bottom(); y += g.Size {
		if y < area.Y {
			continue
		}
		for x := startX; x < area.Right(); x += g.Size {
			if x < area.X {
				continue
			}
			r.FillRect(geom.R(x, y, 1, 1))
		}
	}
}

func (g Grid) String() string {
	return fmt.Sprintf("GRID(%d, show=%t, snap=%t)", g.Size, g.Show, g.Snap)
}
