package ui

import (
	"github.com/1broseidon/wintk/internal/geom"
	"github.com/1broseidon/wintk/internal/resource"
)

// Image shows a registered image, or one tile of an image map, centered in
// its rect. A missing image draws nothing.
type Image struct {
	Base

	image string
	index int // Tile index; negative for the whole image.
}

// NewImage returns an image widget for tile index of the image id. Use a
// negative index for a plain image.
func NewImage(id, image string, index int, rect geom.Rect) *Image {
	img := &Image{image: image, index: index}
	img.Base = newBase(img, id, rect, FlagNoFocus)
	return img
}

// NewAutoSizeImage returns an image widget sized to its image when attached.
func NewAutoSizeImage(id, image string, index int, pos geom.Point) *Image {
	img := NewImage(id, image, index, geom.R(pos.X, pos.Y, 0, 0))
	img.flags |= FlagAutoSize
	return img
}

// SetImage switches to tile index of the image id.
func (img *Image) SetImage(image string, index int) {
	img.image, img.index = image, index
}

// Source returns the image lookup, or nil when it fails.
func (img *Image) Source() *resource.Image {
	m := img.mgr
	if m == nil || img.image == "" {
		return nil
	}
	src, err := m.res.FindImage(img.image, img.index)
	if err != nil {
		m.logger.Warn("image lookup failed", "widget", img.id, "image", img.image, "index", img.index, "err", err)
		return nil
	}
	return src
}

func (img *Image) Init() {
	if !img.HasFlag(FlagAutoSize) {
		return
	}
	if src := img.Source(); src != nil {
		size := src.Size()
		sf := img.ShrinkFactor()
		img.rect.W = size.X + 2*int(sf.W)
		img.rect.H = size.Y + 2*int(sf.H)
	}
}

func (img *Image) HitTest(pt geom.Point) HitResult {
	if img.Rect(false, true).Contains(pt) {
		return HitResult{HitControl, img}
	}
	return noHit
}

func (img *Image) Draw() {
	m := img.mgr
	if m == nil {
		return
	}
	fillRect(m.r, img.Rect(false, true), img.style.Bg)
	if src := img.Source(); src != nil {
		src.Draw(m.r, img.ClientRect(false, true))
	}
}
