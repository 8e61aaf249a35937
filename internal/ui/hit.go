package ui

import "strings"

// HitZone identifies the part of a widget a point falls on. Zones are bit
// flags so they can be tested against the grouped masks.
type HitZone uint32

const (
	HitNothing HitZone = 0

	HitTitleBar HitZone = 1 << (iota - 1)
	HitClient

	HitBorderTop
	HitBorderBottom
	HitBorderLeft
	HitBorderRight

	HitCornerTopLeft
	HitCornerTopRight
	HitCornerBottomLeft
	HitCornerBottomRight

	HitSysMenu
	HitMinButton
	HitMaxButton
	HitCloseButton

	HitHScrollLeft
	HitHScrollRight
	HitHScrollSlider
	HitHScrollArea

	HitVScrollUp
	HitVScrollDown
	HitVScrollSlider
	HitVScrollArea

	HitMenu
	HitMenuItem
	HitToolbar
	HitControl
)

const (
	HitBorderAny  = HitBorderTop | HitBorderBottom | HitBorderLeft | HitBorderRight
	HitCornerAny  = HitCornerTopLeft | HitCornerTopRight | HitCornerBottomLeft | HitCornerBottomRight
	HitButtonAny  = HitSysMenu | HitMinButton | HitMaxButton | HitCloseButton
	HitHScrollAny = HitHScrollLeft | HitHScrollRight | HitHScrollSlider | HitHScrollArea
	HitVScrollAny = HitVScrollUp | HitVScrollDown | HitVScrollSlider | HitVScrollArea
	HitScrollAny  = HitHScrollAny | HitVScrollAny

	// HitScrollButton covers the arrow buttons at either end of a scroll bar.
	HitScrollButton = HitHScrollLeft | HitHScrollRight | HitVScrollUp | HitVScrollDown
)

var zoneNames = []struct {
	zone HitZone
	name string
}{
	{HitTitleBar, "titlebar"},
	{HitClient, "client"},
	{HitBorderTop, "border.top"},
	{HitBorderBottom, "border.bottom"},
	{HitBorderLeft, "border.left"},
	{HitBorderRight, "border.right"},
	{HitCornerTopLeft, "corner.topleft"},
	{HitCornerTopRight, "corner.topright"},
	{HitCornerBottomLeft, "corner.bottomleft"},
	{HitCornerBottomRight, "corner.bottomright"},
	{HitSysMenu, "sysmenu"},
	{HitMinButton, "button.min"},
	{HitMaxButton, "button.max"},
	{HitCloseButton, "button.close"},
	{HitHScrollLeft, "hscroll.left"},
	{HitHScrollRight, "hscroll.right"},
	{HitHScrollSlider, "hscroll.slider"},
	{HitHScrollArea, "hscroll.area"},
	{HitVScrollUp, "vscroll.up"},
	{HitVScrollDown, "vscroll.down"},
	{HitVScrollSlider, "vscroll.slider"},
	{HitVScrollArea, "vscroll.area"},
	{HitMenu, "menu"},
	{HitMenuItem, "menuitem"},
	{HitToolbar, "toolbar"},
	{HitControl, "control"},
}

func (z HitZone) String() string {
	if z == HitNothing {
		return "nothing"
	}
	var parts []string
	for _, zn := range zoneNames {
		if z&zn.zone != 0 {
			parts = append(parts, zn.name)
		}
	}
	if len(parts) == 0 {
		return "unknown"
	}
	return strings.Join(parts, "|")
}

// HitResult is the outcome of a hit test: the zone and the widget owning it.
// Target is only meaningful while the widget is attached.
type HitResult struct {
	Zone   HitZone
	Target Widget
}

// Hit reports whether anything was hit.
func (h HitResult) Hit() bool {
	return h.Zone != HitNothing
}

// Is reports whether the zone is one of the zones in mask.
func (h HitResult) Is(mask HitZone) bool {
	return h.Zone&mask != 0
}

// Same reports whether h and o name the same zone on the same widget.
func (h HitResult) Same(o HitResult) bool {
	return h.Zone == o.Zone && h.Target == o.Target
}

func (h HitResult) String() string {
	if h.Target == nil {
		return h.Zone.String()
	}
	return h.Zone.String() + "@" + h.Target.ID()
}

var noHit = HitResult{}
