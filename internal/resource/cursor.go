package resource

// CursorShape is the platform-independent shape of a cursor.
type CursorShape int

const (
	CursorArrow CursorShape = iota
	CursorSizeNS
	CursorSizeWE
	CursorSizeNWSE
	CursorSizeNESW
	CursorHand
	CursorText
)

func (s CursorShape) String() string {
	switch s {
	case CursorArrow:
		return "arrow"
	case CursorSizeNS:
		return "size-ns"
	case CursorSizeWE:
		return "size-we"
	case CursorSizeNWSE:
		return "size-nwse"
	case CursorSizeNESW:
		return "size-nesw"
	case CursorHand:
		return "hand"
	case CursorText:
		return "text"
	default:
		return "unknown"
	}
}

// Cursor is a named cursor.
type Cursor struct {
	ID    string
	Shape CursorShape
}

// Logical cursor names set by windows while the pointer hovers a border, and
// by text boxes.
const (
	CursorDefault = "default"
	CursorNS      = "size.NS"
	CursorWE      = "size.WE"
	CursorNWSE    = "size.NWSE"
	CursorNESW    = "size.NESW"
	CursorIBeam   = "edit.ibeam"
)

var standardCursors = []Cursor{
	{ID: CursorDefault, Shape: CursorArrow},
	{ID: CursorNS, Shape: CursorSizeNS},
	{ID: CursorWE, Shape: CursorSizeWE},
	{ID: CursorNWSE, Shape: CursorSizeNWSE},
	{ID: CursorNESW, Shape: CursorSizeNESW},
	{ID: CursorIBeam, Shape: CursorText},
}
