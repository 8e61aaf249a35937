package display

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/1broseidon/wintk/internal/geom"
)

// Monitor is an active output.
type Monitor struct {
	ID     int
	Name   string
	Bounds geom.Rect
	Mode   Mode
}

// X11 reads and switches modes of the primary output through XRandR.
type X11 struct {
	xu   *xgbutil.XUtil
	root xproto.Window
}

// NewX11 connects to display (empty means $DISPLAY) and initializes RandR.
func NewX11(display string) (*X11, error) {
	var (
		xu  *xgbutil.XUtil
		err error
	)
	if display == "" {
		xu, err = xgbutil.NewConn()
	} else {
		xu, err = xgbutil.NewConnDisplay(display)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}
	if err := randr.Init(xu.Conn()); err != nil {
		xu.Conn().Close()
		return nil, fmt.Errorf("randr init failed: %w", err)
	}
	return &X11{xu: xu, root: xu.RootWin()}, nil
}

// Close disconnects from the X server.
func (x *X11) Close() {
	x.xu.Conn().Close()
}

type crtcState struct {
	resources *randr.GetScreenResourcesReply
	crtc      randr.Crtc
	info      *randr.GetCrtcInfoReply
	output    *randr.GetOutputInfoReply
}

// primary returns the first enabled CRTC and its first output.
func (x *X11) primary() (*crtcState, error) {
	resources, err := randr.GetScreenResources(x.xu.Conn(), x.root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}
	for _, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(x.xu.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}
		output, err := randr.GetOutputInfo(x.xu.Conn(), info.Outputs[0], resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		return &crtcState{resources: resources, crtc: crtc, info: info, output: output}, nil
	}
	return nil, fmt.Errorf("no active output")
}

func modeFromInfo(mi randr.ModeInfo) Mode {
	m := Mode{Width: int(mi.Width), Height: int(mi.Height)}
	if mi.Htotal > 0 && mi.Vtotal > 0 {
		m.RefreshHz = float64(mi.DotClock) / (float64(mi.Htotal) * float64(mi.Vtotal))
	}
	return m
}

func findModeInfo(resources *randr.GetScreenResourcesReply, id randr.Mode) (randr.ModeInfo, bool) {
	for _, mi := range resources.Modes {
		if randr.Mode(mi.Id) == id {
			return mi, true
		}
	}
	return randr.ModeInfo{}, false
}

// Modes returns the modes supported by the primary output, largest first.
func (x *X11) Modes() ([]Mode, error) {
	st, err := x.primary()
	if err != nil {
		return nil, err
	}
	var modes []Mode
	for _, id := range st.output.Modes {
		if mi, ok := findModeInfo(st.resources, id); ok {
			modes = append(modes, modeFromInfo(mi))
		}
	}
	SortModes(modes)
	return modes, nil
}

// Current returns the mode of the primary output.
func (x *X11) Current() (Mode, error) {
	st, err := x.primary()
	if err != nil {
		return Mode{}, err
	}
	mi, ok := findModeInfo(st.resources, st.info.Mode)
	if !ok {
		return Mode{Width: int(st.info.Width), Height: int(st.info.Height)}, nil
	}
	return modeFromInfo(mi), nil
}

// SetMode switches the primary output to the first supported mode with m's size
// (and refresh rate, when given).
func (x *X11) SetMode(m Mode) error {
	st, err := x.primary()
	if err != nil {
		return err
	}
	for _, id := range st.output.Modes {
		mi, ok := findModeInfo(st.resources, id)
		if !ok {
			continue
		}
		cand := modeFromInfo(mi)
		if !cand.SameSize(m) {
			continue
		}
		if m.RefreshHz > 0 && int(cand.RefreshHz+0.5) != int(m.RefreshHz+0.5) {
			continue
		}
		reply, err := randr.SetCrtcConfig(x.xu.Conn(), st.crtc, st.info.Timestamp, st.resources.ConfigTimestamp,
			st.info.X, st.info.Y, id, st.info.Rotation, st.info.Outputs).Reply()
		if err != nil {
			return fmt.Errorf("failed to set mode %s: %w", m, err)
		}
		if reply != nil && reply.Status != randr.SetConfigSuccess {
			return fmt.Errorf("failed to set mode %s: status %d", m, reply.Status)
		}
		return nil
	}
	return fmt.Errorf("%s: %w", m, ErrUnsupportedMode)
}

// Monitors returns every active output.
func (x *X11) Monitors() ([]Monitor, error) {
	resources, err := randr.GetScreenResources(x.xu.Conn(), x.root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(x.xu.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("Monitor%d", i)
		if out, err := randr.GetOutputInfo(x.xu.Conn(), info.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			name = string(out.Name)
		}
		mode := Mode{Width: int(info.Width), Height: int(info.Height)}
		if mi, ok := findModeInfo(resources, info.Mode); ok {
			mode = modeFromInfo(mi)
		}

		monitors = append(monitors, Monitor{
			ID:     i,
			Name:   name,
			Bounds: geom.R(int(info.X), int(info.Y), int(info.Width), int(info.Height)),
			Mode:   mode,
		})
	}
	return monitors, nil
}

// WorkArea returns the desktop work area (the screen minus panels and docks)
// of the current desktop, or ok=false when the window manager does not set one.
func (x *X11) WorkArea() (geom.Rect, bool) {
	areas, err := ewmh.WorkareaGet(x.xu)
	if err != nil || len(areas) == 0 {
		return geom.Rect{}, false
	}
	idx := 0
	if cur, err := ewmh.CurrentDesktopGet(x.xu); err == nil && int(cur) < len(areas) {
		idx = int(cur)
	}
	wa := areas[idx]
	return geom.R(wa.X, wa.Y, int(wa.Width), int(wa.Height)), true
}
