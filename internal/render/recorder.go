package render

import (
	"errors"
	"image"

	"github.com/1broseidon/wintk/internal/geom"
)

// OpKind identifies a recorded drawing call.
type OpKind int

const (
	OpFillRect OpKind = iota
	OpDrawRect
	OpDrawLines
	OpCopy
	OpText
)

func (k OpKind) String() string {
	switch k {
	case OpFillRect:
		return "fill"
	case OpDrawRect:
		return "rect"
	case OpDrawLines:
		return "lines"
	case OpCopy:
		return "copy"
	case OpText:
		return "text"
	default:
		return "unknown"
	}
}

// Op is one recorded drawing call.
type Op struct {
	Kind  OpKind
	Rect  geom.Rect
	Color Color
	Clip  geom.Rect
	Text  string
}

type recordedTexture struct {
	size geom.Point
}

func (t *recordedTexture) Size() geom.Point { return t.size }

// Recorder is a Renderer that records every call. It is used by tests and by
// the layout dump command.
type Recorder struct {
	Ops []Op

	color    Color
	clip     geom.Rect
	textures int
	target   Texture
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) record(kind OpKind, rect geom.Rect, text string) {
	r.Ops = append(r.Ops, Op{Kind: kind, Rect: rect, Color: r.color, Clip: r.clip, Text: text})
}

func (r *Recorder) SetDrawColor(c Color)    { r.color = c }
func (r *Recorder) FillRect(rect geom.Rect) { r.record(OpFillRect, rect, "") }
func (r *Recorder) DrawRect(rect geom.Rect) { r.record(OpDrawRect, rect, "") }
func (r *Recorder) ClipRect() geom.Rect     { return r.clip }
func (r *Recorder) SetClipRect(c geom.Rect) { r.clip = c }

func (r *Recorder) DrawLines(pts []geom.Point) {
	if len(pts) == 0 {
		return
	}
	minX, minY, maxX, maxY := pts[0].X, pts[0].Y, pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		minX, minY = min(minX, p.X), min(minY, p.Y)
		maxX, maxY = max(maxX, p.X), max(maxY, p.Y)
	}
	r.record(OpDrawLines, geom.R(minX, minY, maxX-minX+1, maxY-minY+1), "")
}

func (r *Recorder) CreateTexture(img image.Image) (Texture, error) {
	if img == nil {
		return nil, errors.New("nil image")
	}
	b := img.Bounds()
	r.textures++
	return &recordedTexture{size: geom.Pt(b.Dx(), b.Dy())}, nil
}

func (r *Recorder) DestroyTexture(t Texture) {
	if t != nil {
		r.textures--
	}
}

func (r *Recorder) Copy(t Texture, src, dst geom.Rect) {
	if t == nil {
		return
	}
	r.record(OpCopy, dst, "")
}

func (r *Recorder) SetTarget(t Texture) error {
	r.target = t
	return nil
}

func (r *Recorder) DrawText(text string, at geom.Point, fg Color) {
	r.Ops = append(r.Ops, Op{Kind: OpText, Rect: geom.R(at.X, at.Y, len(text), 1), Color: fg, Clip: r.clip, Text: text})
}

// Reset clears the recorded operations.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}

// LiveTextures returns the number of textures created and not destroyed.
func (r *Recorder) LiveTextures() int {
	return r.textures
}

// Texts returns the text of every recorded DrawText call, in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == OpText {
			out = append(out, op.Text)
		}
	}
	return out
}
