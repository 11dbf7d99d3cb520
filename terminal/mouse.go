package terminal

// MouseButton represents mouse button identity
type MouseButton uint8

const (
	MouseBtnNone MouseButton = iota
	MouseBtnLeft
	MouseBtnMiddle
	MouseBtnRight
	MouseBtnWheelUp
	MouseBtnWheelDown
)

// MouseAction represents the type of mouse event
type MouseAction uint8

const (
	MouseActionNone MouseAction = iota
	MouseActionPress
	MouseActionRelease
	MouseActionMove
	MouseActionDrag
)

// MouseEvent carries a decoded SGR mouse report. Col and Row are
// 1-indexed, exactly as the terminal reports them.
type MouseEvent struct {
	Button MouseButton
	Action MouseAction
	Col    int
	Row    int
	Shift  bool
	Alt    bool
	Ctrl   bool
}

// String returns the wire-level button name
func (b MouseButton) String() string {
	switch b {
	case MouseBtnLeft:
		return "left"
	case MouseBtnMiddle:
		return "middle"
	case MouseBtnRight:
		return "right"
	case MouseBtnWheelUp:
		return "wheel_up"
	case MouseBtnWheelDown:
		return "wheel_down"
	default:
		return "none"
	}
}

// String returns the action name
func (a MouseAction) String() string {
	switch a {
	case MouseActionPress:
		return "press"
	case MouseActionRelease:
		return "release"
	case MouseActionMove:
		return "move"
	case MouseActionDrag:
		return "drag"
	default:
		return "none"
	}
}
