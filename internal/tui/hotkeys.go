package tui

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/wintk/internal/tiling"
	"github.com/1broseidon/wintk/internal/ui"
)

// Hotkeys maps key sequences to actions run before input reaches the
// toolkit. Sequences use bubbletea's key names, e.g. "ctrl+t".
type Hotkeys struct {
	funcs map[string]func()
}

// NewHotkeys returns an empty key map.
func NewHotkeys() *Hotkeys {
	return &Hotkeys{funcs: make(map[string]func())}
}

// RegisterFunc binds fn to keySequence.
func (h *Hotkeys) RegisterFunc(keySequence string, fn func()) error {
	if keySequence == "" || fn == nil {
		return fmt.Errorf("hotkey %q: empty sequence or action", keySequence)
	}
	if _, ok := h.funcs[keySequence]; ok {
		return fmt.Errorf("hotkey %q already registered", keySequence)
	}
	h.funcs[keySequence] = fn
	return nil
}

func (h *Hotkeys) handle(k tea.KeyMsg) bool {
	if h == nil {
		return false
	}
	fn, ok := h.funcs[k.String()]
	if ok {
		fn()
	}
	return ok
}

// DefaultHotkeys binds the window management shortcuts. Arrangement keys act
// on the children of parent, or on the top-level windows when it is nil.
func DefaultHotkeys(mgr *ui.Manager, parent *ui.Window, logger *slog.Logger) *Hotkeys {
	h := NewHotkeys()
	tile := func(layout tiling.Layout) func() {
		return func() {
			if err := mgr.Tile(parent, layout, 0); err != nil {
				logger.Warn("tiling failed", "error", err)
			}
		}
	}
	bindings := []struct {
		seq string
		fn  func()
	}{
		{"ctrl+up", func() { mgr.ActivateDirection(tiling.DirUp) }},
		{"ctrl+down", func() { mgr.ActivateDirection(tiling.DirDown) }},
		{"ctrl+left", func() { mgr.ActivateDirection(tiling.DirLeft) }},
		{"ctrl+right", func() { mgr.ActivateDirection(tiling.DirRight) }},
		{"ctrl+n", func() { mgr.CycleActive(true) }},
		{"ctrl+p", func() { mgr.CycleActive(false) }},
		{"ctrl+t", tile(tiling.DefaultLayout)},
		{"ctrl+g", tile(tiling.Layout{Mode: tiling.ModeMasterStack, MasterWidthPercent: 60, MaxStackRows: 3, MaxStackCols: 2})},
		{"ctrl+u", func() { mgr.Untile(parent) }},
		{"ctrl+k", func() {
			if err := mgr.Cascade(parent); err != nil {
				logger.Warn("cascade failed", "error", err)
			}
		}},
	}
	for _, b := range bindings {
		// Sequences are distinct literals.
		_ = h.RegisterFunc(b.seq, b.fn)
	}
	return h
}
