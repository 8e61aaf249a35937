// Package resource looks up fonts, images and cursors by logical name.
package resource

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"sort"

	// Decoders for LoadImage.
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"

	"github.com/1broseidon/wintk/internal/geom"
)

// DefaultFontID is the font every widget falls back to.
const DefaultFontID = "wintk.default"

var (
	ErrNoDefaultFont = errors.New("default font not loaded")
	ErrDuplicateID   = errors.New("resource id already loaded")
	ErrEmptyID       = errors.New("resource id is empty")
	ErrNotImageMap   = errors.New("not an image map")
	ErrOutOfRange    = errors.New("value out of range")
)

// Provider owns loaded fonts, images and cursors.
type Provider struct {
	logger  *slog.Logger
	fonts   map[string]font.Face
	images  map[string]*Image
	cursors map[string]*Cursor
}

// New returns a provider with the default font and the standard cursors
// registered.
func New(logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Provider{
		logger:  logger,
		fonts:   make(map[string]font.Face),
		images:  make(map[string]*Image),
		cursors: make(map[string]*Cursor),
	}
	p.fonts[DefaultFontID] = basicfont.Face7x13
	for _, c := range standardCursors {
		p.cursors[c.ID] = &Cursor{ID: c.ID, Shape: c.Shape}
	}
	return p
}

// SetDefaultFont replaces the default font.
func (p *Provider) SetDefaultFont(face font.Face) {
	if face == nil {
		delete(p.fonts, DefaultFontID)
		return
	}
	p.fonts[DefaultFontID] = face
}

// DefaultFont returns the default font. Text cannot be rendered without it.
func (p *Provider) DefaultFont() (font.Face, error) {
	face, ok := p.fonts[DefaultFontID]
	if !ok || face == nil {
		return nil, ErrNoDefaultFont
	}
	return face, nil
}

// AddFont registers an already constructed face.
func (p *Provider) AddFont(id string, face font.Face) error {
	if id == "" {
		return ErrEmptyID
	}
	if _, ok := p.fonts[id]; ok {
		return fmt.Errorf("font %q: %w", id, ErrDuplicateID)
	}
	p.fonts[id] = face
	return nil
}

// LoadFont parses an OpenType/TrueType file and registers it at the given size
// in points (72 DPI, so points equal pixels).
func (p *Provider) LoadFont(id, path string, size int) (font.Face, error) {
	if id == "" || path == "" {
		return nil, ErrEmptyID
	}
	if _, ok := p.fonts[id]; ok {
		return nil, fmt.Errorf("font %q: %w", id, ErrDuplicateID)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		p.logger.Warn("font not loaded", "id", id, "path", path, "error", err)
		return nil, fmt.Errorf("failed to read font %s: %w", path, err)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		p.logger.Warn("font not loaded", "id", id, "path", path, "error", err)
		return nil, fmt.Errorf("failed to parse font %s: %w", path, err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create face for %s: %w", path, err)
	}

	p.fonts[id] = face
	return face, nil
}

// FindFont returns the font registered under id, or nil.
func (p *Provider) FindFont(id string) font.Face {
	face, ok := p.fonts[id]
	if !ok {
		p.logger.Debug("font not found", "id", id)
		return nil
	}
	return face
}

// FontIDs returns the registered font ids, sorted.
func (p *Provider) FontIDs() []string {
	ids := make([]string, 0, len(p.fonts))
	for id := range p.fonts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// LoadImage decodes a PNG or BMP file and registers it.
func (p *Provider) LoadImage(id, path string) (*Image, error) {
	img, err := p.decode(id, path)
	if err != nil {
		return nil, err
	}
	return p.AddImage(id, img)
}

// AddImage registers a decoded image.
func (p *Provider) AddImage(id string, src image.Image) (*Image, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	if _, ok := p.images[id]; ok {
		return nil, fmt.Errorf("image %q: %w", id, ErrDuplicateID)
	}
	img := newImage(id, src)
	p.images[id] = img
	return img, nil
}

// LoadImageMap decodes a file and splits it into tiles of the given size.
func (p *Provider) LoadImageMap(id, path string, tileW, tileH int) (*Image, error) {
	src, err := p.decode(id, path)
	if err != nil {
		return nil, err
	}
	return p.AddImageMap(id, src, tileW, tileH)
}

// AddImageMap registers src split into tiles, row by row.
func (p *Provider) AddImageMap(id string, src image.Image, tileW, tileH int) (*Image, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	if _, ok := p.images[id]; ok {
		return nil, fmt.Errorf("image %q: %w", id, ErrDuplicateID)
	}
	img, err := newImageMap(id, src, tileW, tileH)
	if err != nil {
		return nil, err
	}
	p.images[id] = img
	return img, nil
}

// FindImage returns the image registered under id, or nil. With index >= 0 the
// image must be a map and the tile at index is returned (nil when out of range).
func (p *Provider) FindImage(id string, index int) (*Image, error) {
	img, ok := p.images[id]
	if !ok {
		p.logger.Debug("image not found", "id", id)
		return nil, nil
	}
	if index < 0 {
		return img, nil
	}
	if !img.IsMap() {
		return nil, fmt.Errorf("image %q: %w", id, ErrNotImageMap)
	}
	return img.Tile(index), nil
}

// Glyph is FindImage for callers that draw a degraded fallback on any failure.
func (p *Provider) Glyph(id string, index int) *Image {
	img, err := p.FindImage(id, index)
	if err != nil {
		p.logger.Warn("glyph lookup failed", "id", id, "index", index, "error", err)
		return nil
	}
	return img
}

// LoadCursor registers a cursor shape under id.
func (p *Provider) LoadCursor(id string, shape CursorShape) (*Cursor, error) {
	if id == "" {
		return nil, ErrEmptyID
	}
	if _, ok := p.cursors[id]; ok {
		return nil, fmt.Errorf("cursor %q: %w", id, ErrDuplicateID)
	}
	c := &Cursor{ID: id, Shape: shape}
	p.cursors[id] = c
	return c, nil
}

// FindCursor returns the cursor registered under id, or nil.
func (p *Provider) FindCursor(id string) *Cursor {
	c, ok := p.cursors[id]
	if !ok {
		p.logger.Debug("cursor not found", "id", id)
		return nil
	}
	return c
}

func (p *Provider) decode(id, path string) (image.Image, error) {
	if id == "" || path == "" {
		return nil, ErrEmptyID
	}
	f, err := os.Open(path)
	if err != nil {
		p.logger.Warn("image not loaded", "id", id, "path", path, "error", err)
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		p.logger.Warn("image not loaded", "id", id, "path", path, "error", err)
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	p.logger.Debug("image loaded", "id", id, "format", format, "size", geom.Pt(img.Bounds().Dx(), img.Bounds().Dy()))
	return img, nil
}
