package reactor

import (
	"github.com/lixenwraith/reactor/terminal"
)

// Msg is the closed set of events delivered to an application's Update.
// One variant exists per kind; messages are immutable once constructed.
type Msg interface {
	isMsg()
}

// KeyMsg reports a decoded keypress. Key is the canonical name:
// the literal character for printable input ("a", "é"), a named key
// ("up", "enter", "f5"), or a '+'-joined modifier form ("ctrl+up",
// "alt+x", "shift+tab").
type KeyMsg struct {
	Key string
}

// MouseMsg reports a decoded SGR mouse event. Col and Row are
// 1-indexed, as reported by the terminal.
type MouseMsg struct {
	Button string
	Action string
	Col    int
	Row    int
	Shift  bool
	Alt    bool
	Ctrl   bool
}

// TickMsg fires when the armed tick timer expires. The slot clears on
// delivery; re-arm with Program.Tick to repeat.
type TickMsg struct{}

// InboxMsg wraps an opaque value forwarded from the supervisor inbox
// or injected with Program.Send.
type InboxMsg struct {
	Value any
}

// CustomMsg carries an application-defined payload, typically returned
// from a command.
type CustomMsg struct {
	Value any
}

// ErrMsg reports a failed command. Delivered through the normal message
// channel; never fatal to the loop.
type ErrMsg struct {
	Err error
}

// QuitMsg requests shutdown. It is dispatched to Update like any other
// message, then the loop drains.
type QuitMsg struct{}

// ResizeMsg reports new terminal dimensions after a SIGWINCH. The next
// paint after a resize is a full repaint.
type ResizeMsg struct {
	Width  int
	Height int
}

func (KeyMsg) isMsg()    {}
func (MouseMsg) isMsg()  {}
func (TickMsg) isMsg()   {}
func (InboxMsg) isMsg()  {}
func (CustomMsg) isMsg() {}
func (ErrMsg) isMsg()    {}
func (QuitMsg) isMsg()   {}
func (ResizeMsg) isMsg() {}

func (k KeyMsg) String() string { return k.Key }

func (e ErrMsg) Error() string {
	if e.Err == nil {
		return "command failed"
	}
	return e.Err.Error()
}

// msgFromEvent translates a decoder event into a message. Returns nil
// for events with no message representation.
func msgFromEvent(ev terminal.Event) Msg {
	switch ev.Type {
	case terminal.EventKey:
		name := terminal.EventKeyName(ev)
		if name == "" {
			return nil
		}
		return KeyMsg{Key: name}
	case terminal.EventMouse:
		m := ev.Mouse
		return MouseMsg{
			Button: m.Button.String(),
			Action: m.Action.String(),
			Col:    m.Col,
			Row:    m.Row,
			Shift:  m.Shift,
			Alt:    m.Alt,
			Ctrl:   m.Ctrl,
		}
	}
	return nil
}
