package main

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/1broseidon/wintk/internal/ipc"
	"github.com/1broseidon/wintk/internal/runtimepath"
	"github.com/1broseidon/wintk/internal/ui"
)

// ipcEventName is the event type carrying control socket requests into the
// dispatch goroutine.
const ipcEventName = "wintk.ipc"

// desktopControl answers control socket requests by posting events that the
// demo handles on the dispatch goroutine.
type desktopControl struct {
	mgr *ui.Manager
	typ ui.EventType
}

func (c desktopControl) Run(name string) error {
	if !slices.Contains(commandNames, name) {
		return fmt.Errorf("unknown command %q (available: %s)", name, strings.Join(commandNames, ", "))
	}
	c.mgr.Post(ui.Event{Type: c.typ, Text: name})
	return nil
}

func (c desktopControl) Status(ctx context.Context) (*ipc.StatusData, error) {
	reply := make(chan *ipc.StatusData, 1)
	c.mgr.Post(ui.Event{Type: c.typ, Data: reply})
	select {
	case s := <-reply:
		return s, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// status snapshots the desktop. It runs on the dispatch goroutine.
func (d *demo) status() *ipc.StatusData {
	s := &ipc.StatusData{
		Preset: d.mgr.Config().Preset,
		Screen: d.mgr.ScreenRect().String(),
		Active: d.mgr.Active().ID(),
	}
	for _, w := range d.mgr.Windows() {
		info := ipc.WindowInfo{
			ID:        w.ID(),
			Title:     w.Text(),
			Rect:      w.Rect(false, false).String(),
			Minimized: w.IsMinimized(),
			Maximized: w.IsMaximized(),
		}
		if p := w.ParentWindow(); p != nil {
			info.Parent = p.ID()
		}
		s.Windows = append(s.Windows, info)
	}
	return s
}

func printCtlUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  wintk ctl [--socket PATH] status")
	fmt.Fprintln(os.Stderr, "  wintk ctl [--socket PATH] <command>")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintf(os.Stderr, "Commands: %s\n", strings.Join(commandNames, ", "))
}

func runCtl(args []string) int {
	socket := ""
	if len(args) >= 2 && args[0] == "--socket" {
		socket, args = args[1], args[2:]
	}
	if len(args) != 1 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printCtlUsage()
		return 2
	}
	if socket == "" {
		var err error
		if socket, err = runtimepath.SocketPath(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	client := ipc.NewClient(socket)
	if args[0] != "status" {
		if err := client.Run(args[0]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("preset: %s\n", status.Preset)
	fmt.Printf("screen: %s\n", status.Screen)
	fmt.Printf("active: %s\n", status.Active)
	fmt.Printf("uptime: %ds\n", status.UptimeSeconds)
	for _, w := range status.Windows {
		state := ""
		switch {
		case w.Minimized:
			state = " minimized"
		case w.Maximized:
			state = " maximized"
		}
		fmt.Printf("  %-8s %-8s %s %q%s\n", w.ID, w.Parent, w.Rect, w.Title, state)
	}
	return 0
}
