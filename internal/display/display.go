// Package display lists and switches screen modes.
package display

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var ErrUnsupportedMode = errors.New("display mode not supported")

// Mode is a screen resolution.
type Mode struct {
	Width     int
	Height    int
	RefreshHz float64
}

func (m Mode) String() string {
	if m.RefreshHz > 0 {
		return fmt.Sprintf("%dx%d@%.2f", m.Width, m.Height, m.RefreshHz)
	}
	return fmt.Sprintf("%dx%d", m.Width, m.Height)
}

// SameSize reports whether m and o have the same resolution.
func (m Mode) SameSize(o Mode) bool {
	return m.Width == o.Width && m.Height == o.Height
}

// Provider is the source of screen modes.
type Provider interface {
	Modes() ([]Mode, error)
	Current() (Mode, error)
	SetMode(m Mode) error
}

// Static is a Provider over a fixed mode list. Its mode list can be replaced,
// for example when a terminal is resized.
type Static struct {
	mu      sync.Mutex
	modes   []Mode
	current Mode
}

// NewStatic returns a provider whose current mode is the first of modes.
func NewStatic(modes ...Mode) *Static {
	s := &Static{}
	s.Replace(modes...)
	return s
}

// Replace swaps the mode list and selects the first mode.
func (s *Static) Replace(modes ...Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.modes = append([]Mode(nil), modes...)
	SortModes(s.modes)
	s.current = Mode{}
	if len(modes) > 0 {
		s.current = modes[0]
	}
}

func (s *Static) Modes() ([]Mode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Mode(nil), s.modes...), nil
}

func (s *Static) Current() (Mode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.modes) == 0 {
		return Mode{}, fmt.Errorf("no display modes")
	}
	return s.current, nil
}

func (s *Static) SetMode(m Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, known := range s.modes {
		if known.SameSize(m) {
			s.current = known
			return nil
		}
	}
	return fmt.Errorf("%s: %w", m, ErrUnsupportedMode)
}

// SortModes orders modes largest first, then by refresh rate.
func SortModes(modes []Mode) {
	sort.SliceStable(modes, func(i, j int) bool {
		a, b := modes[i], modes[j]
		if a.Width*a.Height != b.Width*b.Height {
			return a.Width*a.Height > b.Width*b.Height
		}
		if a.Width != b.Width {
			return a.Width > b.Width
		}
		return a.RefreshHz > b.RefreshHz
	})
}
