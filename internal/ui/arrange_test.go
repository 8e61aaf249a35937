package ui

import (
	"testing"

	"github.com/1broseidon/wintk/internal/geom"
	"github.com/1broseidon/wintk/internal/tiling"
)

func TestTileAndUntile(t *testing.T) {
	m, _ := newTestManager(t)
	var wins []*Window
	for i, id := range []string{"a", "b", "c", "d"} {
		wins = append(wins, mustWindow(t, m, id, nil, geom.R(10*i, 10*i, 150, 150), frameFlags))
	}

	if err := m.Tile(nil, tiling.Layout{Mode: tiling.ModeGrid}, 0); err != nil {
		t.Fatalf("Tile: %v", err)
	}
	want := []geom.Rect{
		geom.R(0, 0, 320, 240),
		geom.R(320, 0, 320, 240),
		geom.R(0, 240, 320, 240),
		geom.R(320, 240, 320, 240),
	}
	for i, w := range wins {
		if got := w.StoredRect(); !got.Eq(want[i]) {
			t.Fatalf("%s tiled to %s, want %s", w.ID(), got, want[i])
		}
	}

	// Tiling twice keeps the first saved geometry.
	if err := m.Tile(nil, tiling.Layout{Mode: tiling.ModeHorizontal}, 0); err != nil {
		t.Fatalf("second Tile: %v", err)
	}
	if n := m.Untile(nil); n != 4 {
		t.Fatalf("Untile moved %d windows", n)
	}
	for i, w := range wins {
		if got := w.StoredRect(); !got.Eq(geom.R(10*i, 10*i, 150, 150)) {
			t.Fatalf("%s restored to %s", w.ID(), got)
		}
	}
	if n := m.Untile(nil); n != 0 {
		t.Fatalf("second Untile moved %d windows", n)
	}
}

func TestTileRestoresMaximizedChildren(t *testing.T) {
	m, _ := newTestManager(t)
	p := mustWindow(t, m, "p", nil, geom.R(0, 0, 600, 400), frameFlags)
	c1 := mustWindow(t, m, "c1", p, geom.R(5, 5, 150, 150), FlagsDefault)
	c2 := mustWindow(t, m, "c2", p, geom.R(50, 50, 150, 150), FlagsDefault)
	c3 := mustWindow(t, m, "c3", p, geom.R(90, 90, 150, 150), FlagsDefault)
	c1.Maximize()
	c3.Minimize()

	if err := m.Tile(p, tiling.Layout{Mode: tiling.ModeVertical}, 0); err != nil {
		t.Fatalf("Tile: %v", err)
	}
	if c1.IsMaximized() {
		t.Fatal("tiling left c1 maximized")
	}
	client := p.ClientRect(true, false)
	if got := c1.StoredRect(); !got.Eq(geom.R(0, 0, client.W, client.H/2)) {
		t.Fatalf("c1 = %s", got)
	}
	if got := c2.StoredRect(); !got.Eq(geom.R(0, client.H/2, client.W, client.H/2)) {
		t.Fatalf("c2 = %s", got)
	}
	if !c3.IsMinimized() || !c3.StoredRect().Eq(geom.R(90, 90, 150, 150)) {
		t.Fatal("minimized window was tiled")
	}
}

func TestTileInsufficientSpace(t *testing.T) {
	m, _ := newTestManager(t)
	mustWindow(t, m, "a", nil, geom.R(0, 0, 150, 150), frameFlags)
	mustWindow(t, m, "b", nil, geom.R(0, 0, 150, 150), frameFlags)

	if err := m.Tile(nil, tiling.Layout{Mode: tiling.ModeHorizontal}, 400); err == nil {
		t.Fatal("expected an error for a gap wider than the screen")
	}
	if err := m.Tile(nil, tiling.Layout{Mode: "spiral"}, 0); err == nil {
		t.Fatal("expected an error for an unknown mode")
	}
}

func TestCascade(t *testing.T) {
	m, _ := newTestManager(t)
	a := mustWindow(t, m, "a", nil, geom.R(300, 300, 150, 150), frameFlags)
	b := mustWindow(t, m, "b", nil, geom.R(300, 300, 150, 150), frameFlags)
	c := mustWindow(t, m, "c", nil, geom.R(300, 300, 150, 150), frameFlags)

	if err := m.Cascade(nil); err != nil {
		t.Fatalf("Cascade: %v", err)
	}
	met := m.Config().Metrics
	step := met.ButtonSize + met.BorderWidth
	screen := m.ScreenRect()
	for i, w := range []*Window{a, b, c} {
		want := geom.R(i*step, i*step, screen.W*2/3, screen.H*2/3)
		if got := w.StoredRect(); !got.Eq(want) {
			t.Fatalf("%s = %s, want %s", w.ID(), got, want)
		}
	}
}

func TestActivateDirection(t *testing.T) {
	m, _ := newTestManager(t)
	var wins []*Window
	for _, id := range []string{"a", "b", "c", "d"} {
		wins = append(wins, mustWindow(t, m, id, nil, geom.R(0, 0, 150, 150), frameFlags))
	}
	if err := m.Tile(nil, tiling.DefaultLayout, 0); err != nil {
		t.Fatalf("Tile: %v", err)
	}
	m.SetActive(wins[0])

	steps := []struct {
		dir  tiling.Direction
		want string
	}{
		{tiling.DirRight, "b"},
		{tiling.DirDown, "d"},
		{tiling.DirLeft, "c"},
		{tiling.DirUp, "a"},
	}
	for _, s := range steps {
		m.ActivateDirection(s.dir)
		if got := m.Active().ID(); got != s.want {
			t.Fatalf("after %s: active = %s, want %s", s.dir, got, s.want)
		}
	}
}
