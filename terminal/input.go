package terminal

import (
	"sync"
)

// EventType distinguishes input event categories
type EventType uint8

const (
	EventKey EventType = iota
	EventMouse
)

// Event represents a decoded terminal input event
type Event struct {
	Type  EventType
	Key   Key
	Rune  rune
	Mod   Modifier
	Mouse MouseEvent // valid when Type == EventMouse
}

// Reader turns the backend byte stream into structured events.
// It runs as a single goroutine and emits onto a bounded channel; when
// the channel is full the reader blocks, pushing backpressure onto the
// terminal rather than dropping events.
type Reader struct {
	backend Backend
	eventCh chan Event
	stopCh  chan struct{}
	doneCh  chan struct{}
	mu      sync.Mutex
	running bool

	// Persistent buffer for stream assembly; sequences split across
	// reads are completed on the next chunk
	buf []byte
}

// NewReader creates an input reader over the given backend.
func NewReader(backend Backend) *Reader {
	return &Reader{
		backend: backend,
		eventCh: make(chan Event, 256),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
		buf:     make([]byte, 0, 256),
	}
}

// Start begins reading input in a goroutine.
func (r *Reader) Start() {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.mu.Unlock()

	go r.readLoop()
}

// Stop signals the reader to stop and waits for the goroutine to exit.
func (r *Reader) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	r.mu.Unlock()

	close(r.stopCh)
	<-r.doneCh
}

// Events returns the event channel. The channel is closed when the
// reader exits, whether from Stop or from end of stream.
func (r *Reader) Events() <-chan Event {
	return r.eventCh
}

// readLoop is the reading goroutine. Read failure (including EOF) ends
// the loop quietly; the closed channel is the only signal the rest of
// the system sees.
func (r *Reader) readLoop() {
	defer close(r.doneCh)
	defer close(r.eventCh)

	for {
		data, err := r.backend.Read(r.stopCh)
		if err != nil {
			return
		}

		if len(data) == 0 {
			// Poll timeout or stop. A lone buffered ESC with nothing
			// following is a standalone escape key.
			if len(r.buf) == 1 && r.buf[0] == 0x1b {
				if !r.send(Event{Type: EventKey, Key: KeyEscape}) {
					return
				}
				r.buf = r.buf[:0]
			}
			select {
			case <-r.stopCh:
				return
			default:
				continue
			}
		}

		r.buf = append(r.buf, data...)

		consumed, ok := r.parse(r.buf)
		if !ok {
			return
		}

		// Compact buffer
		if consumed > 0 {
			if consumed >= len(r.buf) {
				r.buf = r.buf[:0]
			} else {
				copy(r.buf, r.buf[consumed:])
				r.buf = r.buf[:len(r.buf)-consumed]
			}
		}
	}
}

// parse decodes as many events as the buffer allows and returns the
// number of bytes consumed. Stops at an incomplete trailing sequence.
// The second return is false when a send was interrupted by Stop.
func (r *Reader) parse(data []byte) (int, bool) {
	i := 0
	n := len(data)

	for i < n {
		b := data[i]

		// Printable ASCII, space included
		if b >= 0x20 && b < 0x7f {
			ev := Event{Type: EventKey, Key: KeyRune, Rune: rune(b)}
			if b == ' ' {
				ev = Event{Type: EventKey, Key: KeySpace}
			}
			if !r.send(ev) {
				return i, false
			}
			i++
			continue
		}

		// Escape sequence
		if b == 0x1b {
			if i+1 >= n {
				return i, true // Wait for more data
			}

			consumed, ev := r.parseEscape(data[i:])
			if consumed == 0 {
				return i, true // Incomplete
			}
			if ev.Type != EventKey || ev.Key != KeyNone {
				if !r.send(ev) {
					return i, false
				}
			}
			i += consumed
			continue
		}

		// Control bytes
		if b < 0x20 {
			if k := ctrlKeys[b]; k != KeyNone {
				if !r.send(Event{Type: EventKey, Key: k}) {
					return i, false
				}
			}
			i++
			continue
		}

		// DEL
		if b == 0x7f {
			if !r.send(Event{Type: EventKey, Key: KeyBackspace}) {
				return i, false
			}
			i++
			continue
		}

		// UTF-8 multibyte: consume the lead-byte-determined count of
		// continuation bytes, emit one key event
		seqLen := utf8SeqLen(b)
		if seqLen == 0 {
			i++ // Invalid start byte, skip
			continue
		}
		if i+seqLen > n {
			return i, true // Incomplete
		}
		rn, size := decodeRune(data[i : i+seqLen])
		if !r.send(Event{Type: EventKey, Key: KeyRune, Rune: rn}) {
			return i, false
		}
		i += size
		continue
	}
	return i, true
}

// parseEscape parses a sequence starting at ESC. Returns 0 consumed on
// an incomplete sequence.
func (r *Reader) parseEscape(data []byte) (int, Event) {
	if len(data) < 2 {
		return 0, Event{}
	}

	switch {
	case data[1] == 0x1b:
		// ESC ESC: a held escape key repeating
		return 2, Event{Type: EventKey, Key: KeyEscape}
	case data[1] == '[':
		return r.parseCSI(data)
	case data[1] == 'O':
		return r.parseSS3(data)
	case data[1] >= 0x20 && data[1] < 0x7f:
		// Alt+printable
		return 2, Event{Type: EventKey, Key: KeyRune, Rune: rune(data[1]), Mod: ModAlt}
	case data[1] < 0x20:
		// Alt+control
		ev := Event{Type: EventKey, Key: ctrlKeys[data[1]], Mod: ModAlt}
		if ev.Key == KeyNone {
			ev.Key = KeyEscape
			ev.Mod = ModNone
		}
		return 2, ev
	}
	// 0x7f and above: swallow the pair
	return 2, Event{Type: EventKey, Key: KeyNone}
}

// maxCSIScan bounds parameter accumulation; anything longer is garbage
const maxCSIScan = 32

// parseCSI parses a CSI sequence: ESC [ params final.
// Parameter bytes are 0x30-0x3f, the final byte 0x40-0x7e.
func (r *Reader) parseCSI(data []byte) (int, Event) {
	if len(data) < 3 {
		return 0, Event{}
	}

	// SGR mouse: ESC [ < Btn ; X ; Y M/m
	if data[2] == '<' {
		return r.parseSGRMouse(data)
	}

	end := 2
	for end < len(data) && end < maxCSIScan {
		b := data[end]
		if b >= 0x40 && b <= 0x7e {
			// Final byte found
			return end + 1, decodeCSI(data[2:end], b)
		}
		if b < 0x30 || b > 0x3f {
			// Not a parameter byte: malformed, swallow what we scanned
			return end + 1, Event{Type: EventKey, Key: KeyNone}
		}
		end++
	}
	if end >= maxCSIScan {
		// Runaway sequence, drop it
		return end, Event{Type: EventKey, Key: KeyNone}
	}
	return 0, Event{} // Incomplete
}

// decodeCSI maps accumulated parameter bytes plus final byte to a key
// event. Unrecognized sequences decode to KeyNone and are dropped by
// the caller.
func decodeCSI(params []byte, final byte) Event {
	none := Event{Type: EventKey, Key: KeyNone}

	if final == '~' {
		// Leading numeric parameter selects the key; any ";<mod>"
		// suffix is ignored
		num, rest, ok := leadingInt(params)
		if !ok || (len(rest) > 0 && rest[0] != ';') {
			return none
		}
		if k, ok := csiTildeKeys[num]; ok {
			return Event{Type: EventKey, Key: k}
		}
		return none
	}

	if len(params) == 0 {
		if k, ok := csiBareKeys[final]; ok {
			return Event{Type: EventKey, Key: k}
		}
		return none
	}

	// Modified arrows/home/end: ESC [ 1 ; <mod> <final>
	num, rest, ok := leadingInt(params)
	if ok && num == 1 && len(rest) >= 2 && rest[0] == ';' {
		modNum, tail, ok := leadingInt(rest[1:])
		if ok && len(tail) == 0 {
			mod, okMod := csiModifiers[modNum]
			k, okKey := csiBareKeys[final]
			if okMod && okKey && k != KeyBacktab {
				return Event{Type: EventKey, Key: k, Mod: mod}
			}
		}
	}
	return none
}

// parseSS3 parses an SS3 sequence: ESC O byte.
// Always consumes 3 bytes; unmapped bytes are dropped.
func (r *Reader) parseSS3(data []byte) (int, Event) {
	if len(data) < 3 {
		return 0, Event{}
	}
	if k, ok := ss3Keys[data[2]]; ok {
		return 3, Event{Type: EventKey, Key: k}
	}
	return 3, Event{Type: EventKey, Key: KeyNone}
}

// parseSGRMouse parses ESC [ < Btn ; X ; Y M/m.
// Button bit flags: 2=shift, 3=alt, 4=ctrl, 5=motion, 6=scroll; the low
// two bits select the button, the terminator press vs release.
func (r *Reader) parseSGRMouse(data []byte) (int, Event) {
	// Minimum: ESC [ < 0 ; 1 ; 1 M = 9 bytes
	if len(data) < 9 {
		return 0, Event{}
	}

	end := 3
	for end < len(data) && end < maxCSIScan {
		if data[end] == 'M' || data[end] == 'm' {
			break
		}
		end++
	}
	if end >= len(data) {
		return 0, Event{}
	}
	if data[end] != 'M' && data[end] != 'm' {
		// Runaway, drop
		return end, Event{Type: EventKey, Key: KeyNone}
	}

	btn, x, y, ok := parseSGRParams(data[3:end])
	if !ok {
		return end + 1, Event{Type: EventKey, Key: KeyNone}
	}

	me := MouseEvent{
		Col:   x,
		Row:   y,
		Shift: btn&4 != 0,
		Alt:   btn&8 != 0,
		Ctrl:  btn&16 != 0,
	}

	buttonID := btn & 0x03
	isMotion := btn&32 != 0
	isScroll := btn&64 != 0

	switch {
	case isScroll:
		// Low bits give direction: 0=up, 1=down
		if buttonID == 0 {
			me.Button = MouseBtnWheelUp
		} else {
			me.Button = MouseBtnWheelDown
		}
		me.Action = MouseActionPress // Scroll is instantaneous
	default:
		switch buttonID {
		case 0:
			me.Button = MouseBtnLeft
		case 1:
			me.Button = MouseBtnMiddle
		case 2:
			me.Button = MouseBtnRight
		case 3:
			me.Button = MouseBtnNone
		}

		if data[end] == 'M' {
			switch {
			case isMotion && me.Button != MouseBtnNone:
				me.Action = MouseActionDrag
			case isMotion:
				me.Action = MouseActionMove
			default:
				me.Action = MouseActionPress
			}
		} else {
			me.Action = MouseActionRelease
		}
	}

	return end + 1, Event{Type: EventMouse, Mouse: me}
}

// parseSGRParams extracts btn, x, y from "Btn;X;Y"
func parseSGRParams(data []byte) (btn, x, y int, ok bool) {
	state := 0 // 0=btn, 1=x, 2=y
	val := 0

	for _, b := range data {
		switch {
		case b == ';':
			switch state {
			case 0:
				btn = val
			case 1:
				x = val
			default:
				return 0, 0, 0, false
			}
			state++
			val = 0
		case b >= '0' && b <= '9':
			val = val*10 + int(b-'0')
			if val > 9999 { // Sanity limit
				return 0, 0, 0, false
			}
		default:
			return 0, 0, 0, false
		}
	}

	if state != 2 {
		return 0, 0, 0, false
	}
	y = val
	return btn, x, y, true
}

// leadingInt parses a decimal prefix of params, returning the value and
// the remaining bytes.
func leadingInt(params []byte) (int, []byte, bool) {
	i := 0
	val := 0
	for i < len(params) && params[i] >= '0' && params[i] <= '9' {
		val = val*10 + int(params[i]-'0')
		if val > 9999 {
			return 0, nil, false
		}
		i++
	}
	if i == 0 {
		return 0, nil, false
	}
	return val, params[i:], true
}

// send delivers an event, blocking until the consumer accepts it or the
// reader is stopped. Returns false when stopped.
func (r *Reader) send(ev Event) bool {
	select {
	case r.eventCh <- ev:
		return true
	case <-r.stopCh:
		return false
	}
}

// utf8SeqLen returns expected UTF-8 sequence length from the lead byte,
// 0 if invalid
func utf8SeqLen(b byte) int {
	if b < 0x80 {
		return 1
	}
	if b&0xe0 == 0xc0 {
		return 2
	}
	if b&0xf0 == 0xe0 {
		return 3
	}
	if b&0xf8 == 0xf0 {
		return 4
	}
	return 0
}

// decodeRune decodes the first UTF-8 rune from data
func decodeRune(data []byte) (rune, int) {
	if len(data) == 0 {
		return 0, 0
	}

	b := data[0]
	if b < 0x80 {
		return rune(b), 1
	}

	var size int
	var min rune
	var r rune

	switch {
	case b&0xe0 == 0xc0:
		size = 2
		min = 0x80
		r = rune(b & 0x1f)
	case b&0xf0 == 0xe0:
		size = 3
		min = 0x800
		r = rune(b & 0x0f)
	case b&0xf8 == 0xf0:
		size = 4
		min = 0x10000
		r = rune(b & 0x07)
	default:
		return 0xFFFD, 1
	}

	if len(data) < size {
		return 0xFFFD, 1
	}

	for i := 1; i < size; i++ {
		if data[i]&0xc0 != 0x80 {
			return 0xFFFD, 1
		}
		r = r<<6 | rune(data[i]&0x3f)
	}

	if r < min {
		return 0xFFFD, 1 // Overlong encoding
	}

	return r, size
}
