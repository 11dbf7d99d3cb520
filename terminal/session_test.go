package terminal

import (
	"strings"
	"testing"
)

func TestSessionEnterExitSequences(t *testing.T) {
	b := newScriptBackend()
	s := NewSession(b, true, true)

	if err := s.Enter(); err != nil {
		t.Fatalf("Enter failed: %v", err)
	}

	out := b.written()
	for _, seq := range []string{
		string(SeqAltScreenEnter),
		string(SeqMouseOn),
		string(SeqCursorHide),
	} {
		if !strings.Contains(out, seq) {
			t.Errorf("Enter output missing %q", seq)
		}
	}

	s.Exit()
	out = b.written()
	for _, seq := range []string{
		string(SeqCursorShow),
		string(SeqMouseOff),
		string(SeqAltScreenExit),
		string(SeqSGRReset),
	} {
		if !strings.Contains(out, seq) {
			t.Errorf("Exit output missing %q", seq)
		}
	}

	// Cursor restore comes before leaving the alternate screen
	if strings.Index(out, string(SeqCursorShow)) > strings.Index(out, string(SeqAltScreenExit)) {
		t.Error("Expected cursor show before alt screen exit")
	}
}

func TestSessionExitIdempotent(t *testing.T) {
	b := newScriptBackend()
	s := NewSession(b, false, false)

	if err := s.Enter(); err != nil {
		t.Fatalf("Enter failed: %v", err)
	}
	s.Exit()
	before := b.written()
	s.Exit()
	s.Exit()
	if after := b.written(); after != before {
		t.Error("Second Exit wrote additional bytes")
	}
}

func TestSessionPlainScreenSkipsAltSequences(t *testing.T) {
	b := newScriptBackend()
	s := NewSession(b, false, false)

	if err := s.Enter(); err != nil {
		t.Fatalf("Enter failed: %v", err)
	}
	s.Exit()

	out := b.written()
	if strings.Contains(out, string(SeqAltScreenEnter)) || strings.Contains(out, string(SeqAltScreenExit)) {
		t.Error("Alt screen sequences written without alt screen requested")
	}
	if strings.Contains(out, string(SeqMouseOn)) {
		t.Error("Mouse sequences written without mouse requested")
	}
}

func TestSessionSizeFromBackend(t *testing.T) {
	b := newScriptBackend()
	b.width, b.height = 120, 40
	s := NewSession(b, false, false)

	if err := s.Enter(); err != nil {
		t.Fatalf("Enter failed: %v", err)
	}
	defer s.Exit()

	if w, h := s.Size(); w != 120 || h != 40 {
		t.Errorf("Expected 120x40, got %dx%d", w, h)
	}
}

func TestSessionSizeDSRFallback(t *testing.T) {
	// Backend cannot report a size; the DSR probe response is queued as
	// input and must be consumed before the decoder would start
	b := newScriptBackend([]byte("\x1b[40;132R"))
	b.width, b.height = 0, 0
	s := NewSession(b, false, false)

	if err := s.Enter(); err != nil {
		t.Fatalf("Enter failed: %v", err)
	}
	defer s.Exit()

	if w, h := s.Size(); w != 132 || h != 40 {
		t.Errorf("Expected 132x40 from DSR, got %dx%d", w, h)
	}

	out := b.written()
	if !strings.Contains(out, string(seqCursorQuery)) {
		t.Error("Probe did not emit the DSR query")
	}
	if !strings.Contains(out, string(SeqCursorSave)) || !strings.Contains(out, string(SeqCursorLoad)) {
		t.Error("Probe did not save/restore the cursor position")
	}
}

func TestSessionSizeDSRMalformed(t *testing.T) {
	// Malformed response keeps the defaults, never errors
	b := newScriptBackend([]byte("garbage"))
	b.width, b.height = 0, 0
	s := NewSession(b, false, false)

	if err := s.Enter(); err != nil {
		t.Fatalf("Enter failed: %v", err)
	}
	defer s.Exit()

	if w, h := s.Size(); w != 80 || h != 24 {
		t.Errorf("Expected default 80x24, got %dx%d", w, h)
	}
}

func TestParseDSR(t *testing.T) {
	cases := []struct {
		resp string
		w, h int
		ok   bool
	}{
		{"\x1b[24;80R", 80, 24, true},
		{"junk\x1b[50;200R", 200, 50, true},
		{"\x1b[24R", 0, 0, false},
		{"\x1b[;80R", 0, 0, false},
		{"\x1b[24;80", 0, 0, false},
		{"", 0, 0, false},
		{"\x1b[0;0R", 0, 0, false},
	}
	for _, tc := range cases {
		w, h, ok := parseDSR([]byte(tc.resp))
		if ok != tc.ok || w != tc.w || h != tc.h {
			t.Errorf("parseDSR(%q) = %d,%d,%v; want %d,%d,%v", tc.resp, w, h, ok, tc.w, tc.h, tc.ok)
		}
	}
}

func TestKeyNameRoundTrip(t *testing.T) {
	for k, name := range keyToName {
		got, ok := KeyByName(name)
		if !ok || got != k {
			t.Errorf("KeyByName(%q) = %d,%v; want %d", name, got, ok, k)
		}
	}
	if k, ok := KeyByName("backtab"); !ok || k != KeyBacktab {
		t.Error("Expected backtab alias to resolve")
	}
}
