package tiling

import (
	"testing"

	"github.com/1broseidon/wintk/internal/geom"
)

func TestNavigate(t *testing.T) {
	// [0] [1]
	// [  2  ]
	rects := []geom.Rect{
		geom.R(0, 0, 100, 100),
		geom.R(100, 0, 100, 100),
		geom.R(0, 100, 200, 100),
	}

	tests := []struct {
		name     string
		current  int
		dir      Direction
		expected int
	}{
		{"right from 0", 0, DirRight, 1},
		{"down from 0", 0, DirDown, 2},
		{"down from 1", 1, DirDown, 2},
		{"left from 1", 1, DirLeft, 0},
		{"up from 2 picks first of equals", 2, DirUp, 0},

		{"right wrap from 1", 1, DirRight, 0},
		{"left wrap from 0", 0, DirLeft, 1},
		{"up wrap from 0", 0, DirUp, 2},
		{"down wrap from 2", 2, DirDown, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Navigate(tt.current, tt.dir, rects)
			if got != tt.expected {
				t.Errorf("Navigate(%d, %v) = %d, want %d", tt.current, tt.dir, got, tt.expected)
			}
		})
	}
}

func TestNavigateSingleAndInvalid(t *testing.T) {
	one := []geom.Rect{geom.R(0, 0, 100, 100)}
	for _, dir := range []Direction{DirUp, DirDown, DirLeft, DirRight} {
		if got := Navigate(0, dir, one); got != 0 {
			t.Errorf("Navigate with single rect, dir=%v = %d, want 0", dir, got)
		}
	}
	two := []geom.Rect{geom.R(0, 0, 100, 100), geom.R(100, 0, 100, 100)}
	if got := Navigate(-1, DirRight, two); got != 0 {
		t.Errorf("Navigate with negative index = %d, want 0", got)
	}
	if got := Navigate(10, DirRight, two); got != 0 {
		t.Errorf("Navigate with out-of-bounds index = %d, want 0", got)
	}
}

func TestCycle(t *testing.T) {
	tests := []struct {
		name                  string
		current, delta, count int
		expected              int
	}{
		{"next from 0", 0, 1, 3, 1},
		{"next from 2", 2, 1, 3, 0},
		{"prev from 0", 0, -1, 3, 2},
		{"prev from 1", 1, -1, 3, 0},
		{"single", 0, 1, 1, 0},
		{"zero count", 0, 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Cycle(tt.current, tt.delta, tt.count); got != tt.expected {
				t.Errorf("Cycle(%d, %d, %d) = %d, want %d", tt.current, tt.delta, tt.count, got, tt.expected)
			}
		})
	}
}

func TestClosest(t *testing.T) {
	rects := []geom.Rect{
		geom.R(0, 0, 100, 100),
		geom.R(100, 0, 100, 100),
	}
	if got := Closest(geom.Pt(160, 40), rects); got != 1 {
		t.Errorf("Closest = %d, want 1", got)
	}
	if got := Closest(geom.Pt(0, 0), nil); got != -1 {
		t.Errorf("Closest on empty = %d, want -1", got)
	}
}

func TestDirectionString(t *testing.T) {
	if DirLeft.String() != "left" || Direction(9).String() != "unknown" {
		t.Fatalf("unexpected names %q %q", DirLeft, Direction(9))
	}
}
