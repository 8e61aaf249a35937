package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/1broseidon/wintk/internal/config"
	"github.com/1broseidon/wintk/internal/ipc"
	"github.com/1broseidon/wintk/internal/render"
	"github.com/1broseidon/wintk/internal/resource"
	"github.com/1broseidon/wintk/internal/ui"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func terminalConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	if err := cfg.UsePreset(terminalPreset); err != nil {
		t.Fatalf("UsePreset: %v", err)
	}
	return cfg
}

func newTestDemo(t *testing.T) *demo {
	t.Helper()
	res := resource.New(testLogger())
	res.SetDefaultFont(resource.CellFace{})
	mgr, err := ui.NewManager(render.NewRecorder(), res, terminalConfig(t),
		ui.WithLogger(testLogger()), ui.WithScreenSize(80, 24))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	t.Cleanup(mgr.Dispose)

	d, err := newDemo(mgr, testLogger())
	if err != nil {
		t.Fatalf("newDemo: %v", err)
	}
	return d
}

func (d *demo) children() []*ui.Window {
	return d.mgr.ChildWindows(d.desk)
}

func TestNewDemo(t *testing.T) {
	d := newTestDemo(t)

	if d.desk.Rect(false, false) != d.mgr.ScreenRect() {
		t.Fatalf("desk rect = %s, want the screen", d.desk.Rect(false, false))
	}
	if d.desk.Menu() == nil || d.desk.Toolbar() == nil {
		t.Fatal("desk is missing its menu or toolbar")
	}
	if d.desk.Menu().Find("file.quit") == nil {
		t.Fatal("menu lacks file.quit")
	}
	if len(d.children()) != 2 {
		t.Fatalf("got %d windows, want 2", len(d.children()))
	}
	if act := d.mgr.Active(); act == nil || act.ID() != "win2" {
		t.Fatalf("active window = %v, want win2", act)
	}
	w := d.mgr.FindWindow("win1")
	if w.FindControl("count") == nil || w.FindControl("click") == nil {
		t.Fatal("window lacks its controls")
	}
}

func TestDemoCommands(t *testing.T) {
	d := newTestDemo(t)
	menuType := d.mgr.ClassType(ui.ClassMenu)

	if quit := d.handle(ui.Event{Type: menuType, Source: d.desk.Menu().Find("file.new")}); quit {
		t.Fatal("file.new asked to quit")
	}
	if len(d.children()) != 3 {
		t.Fatalf("got %d windows after file.new, want 3", len(d.children()))
	}

	if !d.handle(ui.Event{Type: menuType, Source: d.desk.Menu().Find("file.quit")}) {
		t.Fatal("file.quit did not quit")
	}
}

func TestDemoToolbarNew(t *testing.T) {
	d := newTestDemo(t)
	item := d.desk.Toolbar().Find("new")
	if item == nil {
		t.Fatal("toolbar lacks new")
	}
	d.handle(ui.Event{Type: d.mgr.ClassType(ui.ClassToolbar), Source: item})
	if len(d.children()) != 3 {
		t.Fatalf("got %d windows, want 3", len(d.children()))
	}
}

func TestDemoTileAndUntile(t *testing.T) {
	d := newTestDemo(t)
	client := d.desk.ClientRect(true, false)
	before := map[string]string{}
	for _, w := range d.children() {
		before[w.ID()] = w.Rect(true, false).String()
	}

	d.command("window.tile")
	a := d.mgr.FindWindow("win1").Rect(true, false)
	b := d.mgr.FindWindow("win2").Rect(true, false)
	if a.X != 0 || a.Y != 0 || a.H != client.H {
		t.Fatalf("win1 tiled to %s in client %s", a, client)
	}
	if b.X != a.W || b.Y != 0 || b.H != client.H {
		t.Fatalf("win2 tiled to %s next to %s", b, a)
	}

	d.command("window.untile")
	for _, w := range d.children() {
		if got := w.Rect(true, false).String(); got != before[w.ID()] {
			t.Fatalf("%s restored to %s, want %s", w.ID(), got, before[w.ID()])
		}
	}
}

func TestDemoCloseRemovesWindow(t *testing.T) {
	d := newTestDemo(t)
	w := d.mgr.FindWindow("win1")
	d.handle(ui.Event{Type: d.mgr.ClassType(ui.ClassWindow), Code: ui.CodeWindowClose, Source: w})
	if d.mgr.FindWindow("win1") != nil {
		t.Fatal("win1 still present after close")
	}
	if len(d.children()) != 1 {
		t.Fatalf("got %d windows, want 1", len(d.children()))
	}
}

func TestDemoCountsClicks(t *testing.T) {
	d := newTestDemo(t)
	w := d.mgr.FindWindow("win2")
	btn := w.FindControl("click")
	for range 3 {
		d.handle(ui.Event{Type: d.mgr.ClassType(ui.ClassButton), Source: btn})
	}
	got := w.FindControl("count").AsBase().Text()
	if got != clickText(3) {
		t.Fatalf("label = %q, want %q", got, clickText(3))
	}
	other := d.mgr.FindWindow("win1").FindControl("count").AsBase().Text()
	if other != clickText(0) {
		t.Fatalf("other label = %q, want %q", other, clickText(0))
	}
}

func TestDemoAppliesConfigEvent(t *testing.T) {
	d := newTestDemo(t)

	cfg := terminalConfig(t)
	cfg.Metrics.MinWindowSize = 10
	d.handle(ui.Event{Type: d.configType, Data: cfg})
	if d.mgr.Config() != cfg {
		t.Fatal("config event not applied")
	}

	bad := terminalConfig(t)
	bad.Metrics.ButtonSize = 0
	d.handle(ui.Event{Type: d.configType, Data: bad})
	if d.mgr.Config() != cfg {
		t.Fatal("invalid config replaced the current one")
	}
}

func TestLogFile(t *testing.T) {
	runtimeErr := errors.New("no runtime dir")
	failing := func() (string, error) { return "", runtimeErr }
	fixed := func() (string, error) { return "/run/wintk.log", nil }

	if got, err := logFile("/tmp/custom.log", failing); err != nil || got != "/tmp/custom.log" {
		t.Fatalf("explicit path = %q, %v", got, err)
	}
	if got, err := logFile("", fixed); err != nil || got != "/run/wintk.log" {
		t.Fatalf("default path = %q, %v", got, err)
	}
	if _, err := logFile("", failing); !errors.Is(err, runtimeErr) {
		t.Fatalf("error = %v, want the runtime dir error", err)
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		w, h    int
		wantErr bool
	}{
		{in: "640x480", w: 640, h: 480},
		{in: "80X24", w: 80, h: 24},
		{in: "640", wantErr: true},
		{in: "0x10", wantErr: true},
		{in: "10x-1", wantErr: true},
		{in: "axb", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			w, h, err := parseSize(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %dx%d", w, h)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseSize: %v", err)
			}
			if w != tt.w || h != tt.h {
				t.Fatalf("got %dx%d, want %dx%d", w, h, tt.w, tt.h)
			}
		})
	}
}

// nextOfType waits for the next queued event of type typ, dropping others.
func nextOfType(t *testing.T, d *demo, typ ui.EventType) ui.Event {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for {
		ev, err := d.mgr.Queue().Wait(ctx)
		if err != nil {
			t.Fatalf("no %s event: %v", typ, err)
		}
		if ev.Type == typ {
			return ev
		}
	}
}

func TestDesktopControlRun(t *testing.T) {
	d := newTestDemo(t)
	ctl := desktopControl{mgr: d.mgr, typ: d.ipcType}

	if err := ctl.Run("window.bogus"); err == nil {
		t.Fatal("expected error for unknown command")
	}
	if err := ctl.Run("file.new"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	ev := nextOfType(t, d, d.ipcType)
	if quit := d.handle(ev); quit {
		t.Fatal("file.new asked to quit")
	}
	if len(d.children()) != 3 {
		t.Fatalf("got %d windows, want 3", len(d.children()))
	}

	if err := ctl.Run("file.quit"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !d.handle(nextOfType(t, d, d.ipcType)) {
		t.Fatal("file.quit over the socket did not quit")
	}
}

func TestDesktopControlStatus(t *testing.T) {
	d := newTestDemo(t)
	ctl := desktopControl{mgr: d.mgr, typ: d.ipcType}

	done := make(chan *ipc.StatusData, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		s, err := ctl.Status(ctx)
		if err != nil {
			s = nil
		}
		done <- s
	}()
	d.handle(nextOfType(t, d, d.ipcType))

	s := <-done
	if s == nil {
		t.Fatal("status request failed")
	}
	if s.Preset != terminalPreset || s.Active != "win2" || s.Screen != d.mgr.ScreenRect().String() {
		t.Fatalf("unexpected status header: %+v", s)
	}
	parents := map[string]string{}
	for _, w := range s.Windows {
		parents[w.ID] = w.Parent
	}
	want := map[string]string{"desk": "", "win1": "desk", "win2": "desk"}
	if len(parents) != len(want) {
		t.Fatalf("windows = %v", parents)
	}
	for id, p := range want {
		if got, ok := parents[id]; !ok || got != p {
			t.Fatalf("window %s parent = %q, want %q", id, got, p)
		}
	}
}

func TestDesktopControlStatusTimesOut(t *testing.T) {
	d := newTestDemo(t)
	ctl := desktopControl{mgr: d.mgr, typ: d.ipcType}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := ctl.Status(ctx); err == nil {
		t.Fatal("expected timeout without a dispatch loop")
	}
}

func TestDemoRenameFromTitleBox(t *testing.T) {
	tests := []struct {
		name  string
		enter bool
		want  string
	}{
		{"enter renames", true, "Notes"},
		{"escape keeps the title", false, "Window 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDemo(t)
			w := d.mgr.FindWindow("win1")
			tb, ok := w.FindControl("title").(*ui.TextBox)
			if !ok {
				t.Fatalf("title control = %T", w.FindControl("title"))
			}
			if tb.Text() != "Window 1" {
				t.Fatalf("title box text = %q", tb.Text())
			}
			if w.FindControl("logo") == nil {
				t.Fatal("window lacks its logo")
			}
			tb.SetText("Notes")
			d.handle(ui.Event{Type: d.mgr.ClassType(ui.ClassTextBox), Code: ui.CodeTextBoxEndEdit, Source: tb, Data: tt.enter})
			if got := w.Text(); got != tt.want {
				t.Fatalf("title = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDemoWindowList(t *testing.T) {
	d := newTestDemo(t)
	for range 2 {
		if d.command("window.list") {
			t.Fatal("window.list asked to quit")
		}
	}
	if len(d.children()) != 3 {
		t.Fatalf("got %d windows, want 2 plus the list", len(d.children()))
	}
	list := d.mgr.FindWindow("outline")
	if list == nil || d.mgr.Active() != list {
		t.Fatalf("window list missing or inactive: %v", d.mgr.Active())
	}
	tree, ok := list.FindControl("windows").(*ui.Tree)
	if !ok {
		t.Fatalf("tree control = %T", list.FindControl("windows"))
	}
	var texts []string
	var win1 *ui.TreeNode
	for _, n := range tree.Nodes() {
		texts = append(texts, n.Text)
		if n.Text == "Window 1" {
			win1 = n
		}
	}
	if len(texts) != 3 || texts[0] != "wintk" || win1 == nil {
		t.Fatalf("nodes = %v", texts)
	}

	tree.SelectNode(win1)
	for _, ev := range d.mgr.Pump() {
		d.handle(ev)
	}
	if act := d.mgr.Active(); act == nil || act.ID() != "win1" {
		t.Fatalf("active window = %v, want win1", act)
	}
}
