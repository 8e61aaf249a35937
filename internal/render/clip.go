package render

import "github.com/1broseidon/wintk/internal/geom"

// Clip narrows the renderer's clip rect for the duration of a draw and restores
// the previous one on Restore.
//
//	clip := render.PushClip(r, rect, true)
//	defer clip.Restore()
//	if clip.Empty() {
//		return
//	}
type Clip struct {
	r    Renderer
	last geom.Rect
	rect geom.Rect
}

// PushClip sets rect as the clip region. With merge, the region is intersected
// with the current clip rect (when one is set).
func PushClip(r Renderer, rect geom.Rect, merge bool) *Clip {
	c := &Clip{r: r, last: r.ClipRect()}
	if merge && !c.last.IsEmpty() {
		c.rect = rect.Intersect(c.last)
	} else {
		c.rect = rect
	}

	if c.rect.IsEmpty() {
		// An empty clip rect means "no clipping" to the renderer, so clip to a
		// single pixel instead.
		r.SetClipRect(geom.R(0, 0, 1, 1))
	} else {
		r.SetClipRect(c.rect)
	}
	return c
}

// Rect returns the effective clip region.
func (c *Clip) Rect() geom.Rect {
	return c.rect
}

// Empty reports whether nothing can be drawn inside the region.
func (c *Clip) Empty() bool {
	return c.rect.IsEmpty()
}

// Restore reinstates the previous clip rect.
func (c *Clip) Restore() {
	c.r.SetClipRect(c.last)
}
