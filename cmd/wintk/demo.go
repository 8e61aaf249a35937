package main

import (
	"fmt"
	"log/slog"

	"github.com/1broseidon/wintk/internal/config"
	"github.com/1broseidon/wintk/internal/geom"
	"github.com/1broseidon/wintk/internal/ipc"
	"github.com/1broseidon/wintk/internal/tiling"
	"github.com/1broseidon/wintk/internal/ui"
)

// configEventName is the event type carrying a reloaded *config.Config.
const configEventName = "wintk.config"

var stackLayout = tiling.Layout{
	Mode:               tiling.ModeMasterStack,
	MasterWidthPercent: 60,
	MaxStackRows:       3,
	MaxStackCols:       2,
}

// commandNames lists the commands accepted from the menu, the toolbar and
// the control socket.
var commandNames = []string{
	"file.new", "file.quit",
	"window.tile", "window.stack", "window.cascade", "window.untile", "window.next",
	"window.list",
}

// logoImageID is the image shown in every demo window when the config
// loads one under that id.
const logoImageID = "logo"

type menuEntry struct {
	id, label string
	items     []menuEntry // an entry with an empty id is a separator
}

var demoMenu = []menuEntry{
	{id: "file", label: "&File", items: []menuEntry{
		{id: "file.new", label: "&New window"},
		{},
		{id: "file.quit", label: "&Quit"},
	}},
	{id: "window", label: "&Window", items: []menuEntry{
		{id: "window.tile", label: "&Tile"},
		{id: "window.stack", label: "&Master stack"},
		{id: "window.cascade", label: "&Cascade"},
		{id: "window.untile", label: "&Restore layout"},
		{},
		{id: "window.next", label: "&Next window"},
		{id: "window.list", label: "&List windows"},
	}},
}

// demo is the sample application run by "wintk run": a desktop window with a
// menu and toolbar hosting child windows that count button clicks.
type demo struct {
	mgr        *ui.Manager
	logger     *slog.Logger
	desk       *ui.Window
	configType ui.EventType
	ipcType    ui.EventType
	created    int
	clicks     map[string]int
}

func newDemo(mgr *ui.Manager, logger *slog.Logger) (*demo, error) {
	configType, err := mgr.RegisterEventType(configEventName)
	if err != nil {
		return nil, err
	}
	ipcType, err := mgr.RegisterEventType(ipcEventName)
	if err != nil {
		return nil, err
	}
	d := &demo{
		mgr:        mgr,
		logger:     logger,
		configType: configType,
		ipcType:    ipcType,
		clicks:     make(map[string]int),
	}

	desk, err := mgr.AddWindow("desk", nil, mgr.ScreenRect(), ui.FlagFill|ui.FlagActive)
	if err != nil {
		return nil, fmt.Errorf("create desktop: %w", err)
	}
	desk.SetText("wintk")
	d.desk = desk

	menu := ui.NewMenu("menu")
	for _, top := range demoMenu {
		item, err := menu.AddItem(top.id, top.label)
		if err != nil {
			return nil, fmt.Errorf("build menu: %w", err)
		}
		for _, sub := range top.items {
			if sub.id == "" {
				err = item.AddSeparator()
			} else {
				_, err = item.AddItem(sub.id, sub.label)
			}
			if err != nil {
				return nil, fmt.Errorf("build menu: %w", err)
			}
		}
	}
	if err := desk.SetMenu(menu); err != nil {
		return nil, fmt.Errorf("attach menu: %w", err)
	}

	tb := ui.NewAutoSizeToolbar("tools")
	for _, it := range []struct{ id, text, tip string }{
		{"new", "New", "Open another window"},
		{"tile", "Tile", "Tile the windows"},
		{"", "", ""},
		{"cascade", "Cascade", "Stack the windows diagonally"},
	} {
		if it.id == "" {
			tb.AddSeparator()
			continue
		}
		item, err := tb.AddItem(it.id, it.text)
		if err != nil {
			return nil, fmt.Errorf("build toolbar: %w", err)
		}
		item.SetTooltip(it.tip)
	}
	if err := desk.SetToolbar(tb); err != nil {
		return nil, fmt.Errorf("attach toolbar: %w", err)
	}

	for range 2 {
		if _, err := d.newWindow(); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// newWindow opens a child window holding a click counter.
func (d *demo) newWindow() (*ui.Window, error) {
	d.created++
	n := d.created
	met := d.mgr.Config().Metrics
	client := d.desk.ClientRect(true, false)
	step := met.ButtonSize + met.BorderWidth
	off := (n - 1) % 5 * step
	size := geom.Pt(max(client.W/2, met.MinWindowSize), max(client.H/2, met.MinWindowSize))

	w, err := d.mgr.AddWindow(fmt.Sprintf("win%d", n), d.desk, geom.R(off, off, size.X, size.Y), ui.FlagsDefault)
	if err != nil {
		return nil, fmt.Errorf("open window %d: %w", n, err)
	}
	w.SetText(fmt.Sprintf("Window %d", n))

	pad := met.MenuPadding
	count := ui.NewAutoSizeLabel("count", clickText(0), geom.Pt(pad, pad))
	if err := w.AddControl(count); err != nil {
		return nil, err
	}
	click := ui.NewAutoSizeButton("click", "Click me", geom.Pt(pad, count.StoredRect().Bottom()+pad))
	click.SetTooltip("Counts clicks")
	if err := w.AddControl(click); err != nil {
		return nil, err
	}
	cr := click.StoredRect()
	logo := ui.NewAutoSizeImage("logo", logoImageID, -1, geom.Pt(cr.Right()+pad, cr.Y))
	if err := w.AddControl(logo); err != nil {
		return nil, err
	}
	title := ui.NewTextBox("title", w.Text(), geom.R(pad, cr.Bottom()+pad, max(size.X/2, 8*count.StoredRect().H), 0))
	title.SetTooltip("Enter renames the window")
	if err := w.AddControl(title); err != nil {
		return nil, err
	}

	d.mgr.SetActive(w)
	d.logger.Debug("window opened", "id", w.ID())
	return w, nil
}

func clickText(n int) string {
	return fmt.Sprintf("Clicks: %3d", n)
}

// handle reacts to the events the toolkit leaves for the application.
func (d *demo) handle(ev ui.Event) bool {
	mgr := d.mgr
	switch ev.Type {
	case d.configType:
		if cfg, ok := ev.Data.(*config.Config); ok {
			if err := mgr.ApplyConfig(cfg); err != nil {
				d.logger.Warn("config rejected", "error", err)
			} else {
				d.logger.Info("config applied", "preset", cfg.Preset)
			}
		}

	case d.ipcType:
		if reply, ok := ev.Data.(chan *ipc.StatusData); ok {
			reply <- d.status()
			return false
		}
		return d.command(ev.Text)

	case mgr.ClassType(ui.ClassMenu), mgr.ClassType(ui.ClassToolbar):
		if ev.Source != nil {
			return d.command(ev.Source.ID())
		}

	case mgr.ClassType(ui.ClassButton):
		if ev.Source != nil && ev.Source.ID() == "click" {
			d.countClick(ev.Source)
		}

	case mgr.ClassType(ui.ClassTextBox):
		if ev.Code == ui.CodeTextBoxEndEdit && ev.Data == true && ev.Source != nil {
			d.rename(ev.Source)
		}

	case mgr.ClassType(ui.ClassTree):
		if n, ok := ev.Data.(*ui.TreeNode); ok && n != nil {
			if w, ok := n.Tag.(*ui.Window); ok {
				mgr.SetActive(w)
			}
		}

	case mgr.ClassType(ui.ClassWindow):
		if ev.Code == ui.CodeWindowClose && ev.Source != nil {
			if err := mgr.RemoveWindow(ev.Source.ID()); err != nil {
				d.logger.Warn("close failed", "id", ev.Source.ID(), "error", err)
			}
		}

	case mgr.ClassType(ui.ClassManager):
		if ev.Code == ui.CodeDisplayChanged {
			d.logger.Info("display changed", "mode", ev.Data)
		}
	}
	return false
}

// command runs a menu or toolbar command and reports whether to quit.
func (d *demo) command(id string) bool {
	var err error
	switch id {
	case "file.new", "new":
		_, err = d.newWindow()
	case "file.quit":
		return true
	case "window.tile", "tile":
		err = d.mgr.Tile(d.desk, tiling.DefaultLayout, 0)
	case "window.stack":
		err = d.mgr.Tile(d.desk, stackLayout, 0)
	case "window.cascade", "cascade":
		err = d.mgr.Cascade(d.desk)
	case "window.untile":
		d.mgr.Untile(d.desk)
	case "window.next":
		d.mgr.CycleActive(true)
	case "window.list":
		_, err = d.listWindows()
	default:
		d.logger.Debug("unhandled command", "id", id)
	}
	if err != nil {
		d.logger.Warn("command failed", "id", id, "error", err)
	}
	return false
}

func (d *demo) countClick(src ui.Widget) {
	w := src.AsBase().Window()
	if w == nil {
		return
	}
	d.clicks[w.ID()]++
	if label := w.FindControl("count"); label != nil {
		label.AsBase().SetText(clickText(d.clicks[w.ID()]))
	}
}

// rename sets the title of the text box's window to the box's text.
func (d *demo) rename(src ui.Widget) {
	tb, ok := src.(*ui.TextBox)
	w := src.AsBase().Window()
	if !ok || w == nil || tb.Text() == "" {
		return
	}
	w.SetText(tb.Text())
	d.logger.Debug("window renamed", "id", w.ID(), "title", tb.Text())
}

// listWindows opens, or rebuilds, a window with a tree of the desktop's
// windows. Selecting a node activates its window.
func (d *demo) listWindows() (*ui.Window, error) {
	const id = "outline"
	if d.mgr.FindWindow(id) != nil {
		if err := d.mgr.RemoveWindow(id); err != nil {
			return nil, err
		}
	}
	met := d.mgr.Config().Metrics
	client := d.desk.ClientRect(true, false)
	size := geom.Pt(max(client.W/3, met.MinWindowSize), max(client.H/2, met.MinWindowSize))
	w, err := d.mgr.AddWindow(id, d.desk, geom.R(client.W-size.X, 0, size.X, size.Y), ui.FlagsDefault)
	if err != nil {
		return nil, fmt.Errorf("open window list: %w", err)
	}
	w.SetText("Windows")

	inner := w.ClientRect(true, false)
	tree := ui.NewTree("windows", geom.R(0, 0, inner.W, inner.H), 0)
	if err := w.AddControl(tree); err != nil {
		return nil, err
	}
	root, err := tree.AddNode(d.desk.Text(), nil)
	if err != nil {
		return nil, err
	}
	root.Tag = d.desk
	for _, child := range d.mgr.ChildWindows(d.desk) {
		if child == w {
			continue
		}
		n, err := tree.AddNode(child.Text(), root)
		if err != nil {
			return nil, err
		}
		n.Tag = child
	}
	tree.OpenNode(root, true)
	d.mgr.SetActive(w)
	tree.SetFocus(true, nil)
	return w, nil
}
