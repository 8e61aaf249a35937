package tiling

import (
	"testing"

	"github.com/1broseidon/wintk/internal/geom"
)

func TestCalculateGrid(t *testing.T) {
	tests := []struct {
		n, rows, cols int
	}{
		{0, 0, 0},
		{1, 1, 1},
		{2, 1, 2},
		{3, 2, 2},
		{4, 2, 2},
		{5, 2, 3},
		{7, 3, 3},
		{10, 3, 4},
	}
	for _, tt := range tests {
		rows, cols := CalculateGrid(tt.n)
		if rows != tt.rows || cols != tt.cols {
			t.Fatalf("CalculateGrid(%d) = %dx%d, want %dx%d", tt.n, rows, cols, tt.rows, tt.cols)
		}
	}
}

func TestPositions(t *testing.T) {
	area := geom.R(0, 0, 300, 200)
	tests := []struct {
		name   string
		area   geom.Rect
		n      int
		layout Layout
		gap    int
		want   []geom.Rect
	}{
		{
			name:   "grid with gaps",
			n:      4,
			layout: Layout{Mode: ModeGrid},
			gap:    10,
			want: []geom.Rect{
				geom.R(10, 10, 135, 85),
				geom.R(155, 10, 135, 85),
				geom.R(10, 105, 135, 85),
				geom.R(155, 105, 135, 85),
			},
		},
		{
			name:   "flexible last row",
			n:      3,
			layout: Layout{Mode: ModeGrid, FlexibleLastRow: true},
			want: []geom.Rect{
				geom.R(0, 0, 150, 100),
				geom.R(150, 0, 150, 100),
				geom.R(0, 100, 300, 100),
			},
		},
		{
			name:   "fixed last row",
			n:      3,
			layout: Layout{Mode: ModeGrid},
			want: []geom.Rect{
				geom.R(0, 0, 150, 100),
				geom.R(150, 0, 150, 100),
				geom.R(0, 100, 150, 100),
			},
		},
		{
			name:   "vertical",
			n:      2,
			layout: Layout{Mode: ModeVertical, FlexibleLastRow: true},
			want: []geom.Rect{
				geom.R(0, 0, 300, 100),
				geom.R(0, 100, 300, 100),
			},
		},
		{
			name:   "horizontal",
			n:      3,
			layout: Layout{Mode: ModeHorizontal},
			want: []geom.Rect{
				geom.R(0, 0, 100, 200),
				geom.R(100, 0, 100, 200),
				geom.R(200, 0, 100, 200),
			},
		},
		{
			// slot 90 wide, cell capped at 50 and centered
			name:   "capped cells are centered",
			area:   geom.R(0, 0, 210, 200),
			n:      2,
			layout: Layout{Mode: ModeHorizontal, MaxCellWidth: 50, MaxCellHeight: 40},
			gap:    10,
			want: []geom.Rect{
				geom.R(30, 80, 50, 40),
				geom.R(130, 80, 50, 40),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := area
			if !tt.area.IsEmpty() {
				a = tt.area
			}
			got, err := Positions(tt.n, a, tt.layout, tt.gap)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d positions, got %d", len(tt.want), len(got))
			}
			for i := range got {
				if !got[i].Eq(tt.want[i]) {
					t.Fatalf("position %d = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPositionsOffsetArea(t *testing.T) {
	got, err := Positions(2, geom.R(40, 30, 200, 100), Layout{Mode: ModeHorizontal}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got[0].Eq(geom.R(40, 30, 100, 100)) || !got[1].Eq(geom.R(140, 30, 100, 100)) {
		t.Fatalf("got %v", got)
	}
}

func TestPositionsErrors(t *testing.T) {
	tests := []struct {
		name   string
		area   geom.Rect
		layout Layout
		gap    int
	}{
		{"insufficient space", geom.R(0, 0, 20, 10), Layout{Mode: ModeHorizontal}, 20},
		{"unknown mode", geom.R(0, 0, 200, 200), Layout{Mode: "spiral"}, 0},
		{"master stack without room", geom.R(0, 0, 20, 20), Layout{Mode: ModeMasterStack}, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Positions(3, tt.area, tt.layout, tt.gap); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestPositionsNoWindows(t *testing.T) {
	got, err := Positions(0, geom.R(0, 0, 10, 10), DefaultLayout, 0)
	if err != nil || got != nil {
		t.Fatalf("Positions(0) = %v, %v", got, err)
	}
}

func TestMasterStack(t *testing.T) {
	area := geom.R(0, 0, 200, 100)
	layout := Layout{Mode: ModeMasterStack, MasterWidthPercent: 50, MaxStackRows: 3, MaxStackCols: 2}

	got, err := Positions(3, area, layout, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []geom.Rect{
		geom.R(0, 0, 100, 100),
		geom.R(100, 0, 100, 50),
		geom.R(100, 50, 100, 50),
	}
	for i := range want {
		if !got[i].Eq(want[i]) {
			t.Fatalf("position %d = %s, want %s", i, got[i], want[i])
		}
	}

	single, err := Positions(1, area, layout, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !single[0].Eq(geom.R(0, 0, 100, 100)) {
		t.Fatalf("single master = %s", single[0])
	}
}

func TestMasterStackDropsOverflow(t *testing.T) {
	layout := Layout{Mode: ModeMasterStack, MasterWidthPercent: 50, MaxStackRows: 3, MaxStackCols: 2}
	got, err := Positions(9, geom.R(0, 0, 400, 300), layout, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// one master plus a 3x2 stack
	if len(got) != 7 {
		t.Fatalf("expected 7 positions, got %d", len(got))
	}
}

func TestCascade(t *testing.T) {
	area := geom.R(0, 0, 200, 150)
	got := Cascade(4, area, geom.Pt(30, 30), geom.Pt(120, 100))
	want := []geom.Rect{
		geom.R(0, 0, 120, 100),
		geom.R(30, 30, 120, 100),
		geom.R(0, 0, 120, 100),
		geom.R(30, 30, 120, 100),
	}
	for i := range want {
		if !got[i].Eq(want[i]) {
			t.Fatalf("position %d = %s, want %s", i, got[i], want[i])
		}
	}

	shrunk := Cascade(1, geom.R(10, 10, 50, 40), geom.Pt(5, 5), geom.Pt(100, 100))
	if !shrunk[0].Eq(geom.R(10, 10, 50, 40)) {
		t.Fatalf("oversized window = %s", shrunk[0])
	}
	if Cascade(0, area, geom.Pt(1, 1), geom.Pt(1, 1)) != nil {
		t.Fatal("expected nil for no windows")
	}
}
