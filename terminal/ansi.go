package terminal

// Pre-allocated ANSI sequence fragments (avoid allocations on hot paths).
// Exported fragments are shared with the frame renderer in the root
// package; everything here targets xterm-compatible terminals directly.
var (
	// Cursor control
	SeqCursorHide = []byte("\x1b[?25l")
	SeqCursorShow = []byte("\x1b[?25h")
	SeqCursorHome = []byte("\x1b[H")
	SeqCursorSave = []byte("\x1b7")
	SeqCursorLoad = []byte("\x1b8")

	// Line control
	SeqClearLine   = []byte("\x1b[2K")
	SeqClearScreen = []byte("\x1b[2J\x1b[H")

	// Screen modes
	SeqAltScreenEnter = []byte("\x1b[?1049h")
	SeqAltScreenExit  = []byte("\x1b[?1049l")

	// SGR mouse reporting (button-motion tracking + SGR extended
	// coordinates; 1002 covers presses, releases and drags)
	SeqMouseOn  = []byte("\x1b[?1002h\x1b[?1006h")
	SeqMouseOff = []byte("\x1b[?1006l\x1b[?1002l")

	// Attribute reset
	SeqSGRReset = []byte("\x1b[0m")

	// Reset to Initial State (emergency only)
	seqRIS = []byte("\x1bc")

	// Device Status Report: cursor position query, response ESC [ r ; c R
	seqCursorQuery = []byte("\x1b[6n")
	// Out-of-range move used to park the cursor at the bottom-right
	// corner before the DSR query
	seqCursorFar = []byte("\x1b[999;999H")
)

// appendInt appends a decimal integer without fmt overhead.
// Optimized for terminal coordinates (0-999 typical)
func appendInt(dst []byte, n int) []byte {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		return append(dst, byte(n)+'0')
	}
	if n < 100 {
		return append(dst, byte(n/10)+'0', byte(n%10)+'0')
	}
	if n < 1000 {
		return append(dst, byte(n/100)+'0', byte(n/10%10)+'0', byte(n%10)+'0')
	}
	var buf [6]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte(n%10) + '0'
		n /= 10
	}
	return append(dst, buf[i:]...)
}

// AppendCursorUp appends the cursor-up-N sequence. No-op for n <= 0.
func AppendCursorUp(dst []byte, n int) []byte {
	if n <= 0 {
		return dst
	}
	dst = append(dst, 0x1b, '[')
	dst = appendInt(dst, n)
	return append(dst, 'A')
}
