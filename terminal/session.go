package terminal

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Session brackets a runtime's exclusive ownership of the terminal
// device. Enter switches the device into raw mode and applies the
// requested screen modes; Exit restores everything and is safe to call
// from any exit path, any number of times.
type Session struct {
	backend   Backend
	altScreen bool
	mouse     bool

	mu      sync.Mutex
	entered bool
	exited  bool
	width   int
	height  int
}

// dsrTimeout bounds the wait for a cursor-position report. Terminals
// answer within a couple of milliseconds; anything slower is treated as
// no answer.
const dsrTimeout = 200 * time.Millisecond

// NewSession creates a session over the backend. Nothing touches the
// device until Enter.
func NewSession(backend Backend, altScreen, mouse bool) *Session {
	return &Session{
		backend:   backend,
		altScreen: altScreen,
		mouse:     mouse,
		width:     80,
		height:    24,
	}
}

// Enter switches to raw mode, detects the terminal size, and applies
// alternate screen, mouse reporting and cursor visibility. Size
// detection runs before any input consumer starts, because the DSR
// fallback reads the response off the input stream.
func (s *Session) Enter() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entered {
		return nil
	}

	if err := s.backend.Init(); err != nil {
		return err
	}
	s.entered = true

	if w, h := s.backend.Size(); w > 0 && h > 0 {
		s.width, s.height = w, h
	} else if w, h, ok := s.probeSize(); ok {
		s.width, s.height = w, h
	}
	// On failure the defaults stand; never an error

	if s.altScreen {
		s.backend.Write(SeqAltScreenEnter)
		s.backend.Write(SeqClearScreen)
		s.backend.Write(SeqCursorHome)
	}
	if s.mouse {
		s.backend.Write(SeqMouseOn)
	}
	s.backend.Write(SeqCursorHide)

	return nil
}

// Exit restores the terminal. Runs the full sequence exactly once; the
// session is unusable afterwards.
func (s *Session) Exit() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.entered || s.exited {
		return
	}
	s.exited = true

	s.backend.Write(SeqCursorShow)
	if s.mouse {
		s.backend.Write(SeqMouseOff)
	}
	if s.altScreen {
		s.backend.Write(SeqAltScreenExit)
	}
	s.backend.Write(SeqSGRReset)
	s.backend.Fini()
}

// Size returns the detected dimensions.
func (s *Session) Size() (width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// SetSize records new dimensions (resize delivery path).
func (s *Session) SetSize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if width > 0 && height > 0 {
		s.width, s.height = width, height
	}
}

// AltScreen reports whether the alternate screen buffer is in use.
func (s *Session) AltScreen() bool {
	return s.altScreen
}

// probeSize queries the terminal for its size by parking the cursor at
// an out-of-range position and asking where it ended up (DSR cursor
// position report). Used when the winsize ioctl is unavailable, e.g.
// over some serial or pty transports.
func (s *Session) probeSize() (int, int, bool) {
	b := s.backend

	var req []byte
	req = append(req, SeqCursorSave...)
	req = append(req, seqCursorFar...)
	req = append(req, seqCursorQuery...)
	if err := b.Write(req); err != nil {
		return 0, 0, false
	}

	stop := make(chan struct{})
	timer := time.AfterFunc(dsrTimeout, func() { close(stop) })
	defer timer.Stop()

	var resp []byte
read:
	for {
		data, err := b.Read(stop)
		if err != nil {
			break
		}
		if len(data) == 0 {
			select {
			case <-stop:
				break read
			default:
				continue
			}
		}
		resp = append(resp, data...)
		if bytes.IndexByte(resp, 'R') >= 0 {
			break
		}
		if len(resp) > 64 {
			break // Not a report
		}
	}

	b.Write(SeqCursorLoad)

	return parseDSR(resp)
}

// parseDSR extracts (cols, rows) from an ESC [ rows ; cols R report.
// Tolerates leading junk (queued keystrokes ahead of the report).
func parseDSR(resp []byte) (int, int, bool) {
	i := bytes.LastIndex(resp, []byte("\x1b["))
	if i < 0 {
		return 0, 0, false
	}
	body := resp[i+2:]

	rows, rest, ok := leadingInt(body)
	if !ok || len(rest) == 0 || rest[0] != ';' {
		return 0, 0, false
	}
	cols, rest, ok := leadingInt(rest[1:])
	if !ok || len(rest) == 0 || rest[0] != 'R' {
		return 0, 0, false
	}
	if rows <= 0 || cols <= 0 {
		return 0, 0, false
	}
	return cols, rows, true
}

// EmergencyReset attempts to restore the terminal to a sane state.
// Call from panic recovery when Exit cannot run normally.
func EmergencyReset(w io.Writer) {
	w.Write(SeqMouseOff)
	w.Write(SeqCursorShow)
	w.Write(SeqAltScreenExit)
	w.Write(SeqSGRReset)
	w.Write(seqRIS)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios; best-effort reset
	resetTerminalMode()
}

// DumpState renders session state for diagnostics.
func (s *Session) DumpState() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("entered=%v exited=%v size=%dx%d alt=%v mouse=%v",
		s.entered, s.exited, s.width, s.height, s.altScreen, s.mouse)
}
