package render

import (
	"testing"

	"github.com/1broseidon/wintk/internal/geom"
)

func TestPushClipMergesAndRestores(t *testing.T) {
	r := NewRecorder()
	r.SetClipRect(geom.R(0, 0, 50, 50))

	clip := PushClip(r, geom.R(40, 40, 20, 20), true)
	if clip.Rect() != geom.R(40, 40, 10, 10) {
		t.Fatalf("merged clip = %v", clip.Rect())
	}
	if r.ClipRect() != geom.R(40, 40, 10, 10) {
		t.Fatalf("renderer clip = %v", r.ClipRect())
	}
	clip.Restore()
	if r.ClipRect() != geom.R(0, 0, 50, 50) {
		t.Fatalf("restored clip = %v", r.ClipRect())
	}
}

func TestPushClipEmptyRegion(t *testing.T) {
	r := NewRecorder()
	r.SetClipRect(geom.R(0, 0, 10, 10))

	clip := PushClip(r, geom.R(20, 20, 5, 5), true)
	defer clip.Restore()
	if !clip.Empty() {
		t.Fatalf("expected empty clip")
	}
	if r.ClipRect() != geom.R(0, 0, 1, 1) {
		t.Fatalf("empty region should clip to one pixel, got %v", r.ClipRect())
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#5a8080", RGB(90, 128, 128), false},
		{"#fff", White, false},
		{"#000000", Black, false},
		{"5a8080", Color{}, true},
		{"#zzzzzz", Color{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ParseHex(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
			if got.Hex() != RGB(got.R, got.G, got.B).Hex() {
				t.Fatalf("Hex round trip mismatch")
			}
		})
	}
}
