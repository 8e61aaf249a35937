package resource

import (
	"fmt"
	"image"

	"github.com/1broseidon/wintk/internal/geom"
	"github.com/1broseidon/wintk/internal/render"
)

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// Image is a loaded image or image map. Tiles of a map are images themselves.
type Image struct {
	ID  string
	Src image.Image

	tiles []*Image
	tile  geom.Point
	tex   render.Texture
	owner render.Renderer
}

func newImage(id string, src image.Image) *Image {
	return &Image{ID: id, Src: src}
}

func newImageMap(id string, src image.Image, tileW, tileH int) (*Image, error) {
	b := src.Bounds()
	if tileW <= 0 || tileH <= 0 || tileW > b.Dx() || tileH > b.Dy() {
		return nil, fmt.Errorf("tile %dx%d for %dx%d image %q: %w", tileW, tileH, b.Dx(), b.Dy(), id, ErrOutOfRange)
	}
	sub, ok := src.(subImager)
	if !ok {
		return nil, fmt.Errorf("image %q cannot be split into tiles", id)
	}

	img := &Image{ID: id, Src: src, tile: geom.Pt(tileW, tileH)}
	for y := b.Min.Y; y+tileH <= b.Max.Y; y += tileH {
		for x := b.Min.X; x+tileW <= b.Max.X; x += tileW {
			r := image.Rect(x, y, x+tileW, y+tileH)
			img.tiles = append(img.tiles, &Image{
				ID:  fmt.Sprintf("%s[%d]", id, len(img.tiles)),
				Src: sub.SubImage(r),
			})
		}
	}
	return img, nil
}

// IsMap reports whether the image was loaded as a tile map.
func (img *Image) IsMap() bool {
	return img.tile != (geom.Point{})
}

// Tiles returns the number of tiles in a map.
func (img *Image) Tiles() int {
	return len(img.tiles)
}

// Tile returns the tile at index, or nil when out of range.
func (img *Image) Tile(index int) *Image {
	if index < 0 || index >= len(img.tiles) {
		return nil
	}
	return img.tiles[index]
}

// Size returns the image size in pixels (the tile size for a map).
func (img *Image) Size() geom.Point {
	if img.IsMap() {
		return img.tile
	}
	b := img.Src.Bounds()
	return geom.Pt(b.Dx(), b.Dy())
}

// Texture returns the image uploaded to r, creating it on first use.
func (img *Image) Texture(r render.Renderer) (render.Texture, error) {
	if img.tex != nil && img.owner == r {
		return img.tex, nil
	}
	img.Release()
	tex, err := r.CreateTexture(img.Src)
	if err != nil {
		return nil, fmt.Errorf("failed to create texture for %q: %w", img.ID, err)
	}
	img.tex, img.owner = tex, r
	return tex, nil
}

// Release destroys the uploaded texture, if any.
func (img *Image) Release() {
	if img.tex != nil && img.owner != nil {
		img.owner.DestroyTexture(img.tex)
	}
	img.tex, img.owner = nil, nil
	for _, t := range img.tiles {
		t.Release()
	}
}

// Draw copies the image into dst, centered. It reports false when nothing was
// drawn, so the caller can draw a fallback.
func (img *Image) Draw(r render.Renderer, dst geom.Rect) bool {
	if img == nil {
		return false
	}
	tex, err := img.Texture(r)
	if err != nil {
		return false
	}
	size := img.Size()
	src := geom.R(0, 0, size.X, size.Y)
	r.Copy(tex, src, src.CenterIn(dst, true, true))
	return true
}
