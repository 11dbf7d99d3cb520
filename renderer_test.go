package reactor

import (
	"bytes"
	"strings"
	"testing"
)

// paintTo paints and returns only the bytes produced by this paint
func paintTo(t *testing.T, r *renderer, buf *bytes.Buffer, view string) string {
	t.Helper()
	start := buf.Len()
	if err := r.paint(view); err != nil {
		t.Fatalf("paint failed: %v", err)
	}
	return buf.String()[start:]
}

func TestFirstPaintWritesAllLines(t *testing.T) {
	var buf bytes.Buffer
	r := newRenderer(&buf, false)

	out := paintTo(t, r, &buf, "one\ntwo\nthree")
	if !strings.Contains(out, "one\r\ntwo\r\nthree") {
		t.Errorf("First paint missing CR+LF separated lines: %q", out)
	}
}

func TestFirstPaintAltScreenHomesCursor(t *testing.T) {
	var buf bytes.Buffer
	r := newRenderer(&buf, true)

	out := paintTo(t, r, &buf, "hello")
	if !strings.HasPrefix(out, "\x1b[H") {
		t.Errorf("Alt screen first paint should home the cursor: %q", out)
	}
}

func TestRepaintIdenticalFrameRewritesNothing(t *testing.T) {
	var buf bytes.Buffer
	r := newRenderer(&buf, false)

	frame := "aaa\nbbb\nccc"
	paintTo(t, r, &buf, frame)
	out := paintTo(t, r, &buf, frame)

	if strings.Contains(out, "\x1b[2K") {
		t.Errorf("Unchanged repaint cleared a line: %q", out)
	}
	for _, content := range []string{"aaa", "bbb", "ccc"} {
		if strings.Contains(out, content) {
			t.Errorf("Unchanged repaint rewrote %q: %q", content, out)
		}
	}
}

func TestRepaintOnlyChangedLine(t *testing.T) {
	var buf bytes.Buffer
	r := newRenderer(&buf, false)

	paintTo(t, r, &buf, "a\nb\nc")
	out := paintTo(t, r, &buf, "a\nx\nc")

	if got := strings.Count(out, "\x1b[2K"); got != 1 {
		t.Errorf("Expected exactly 1 line clear, got %d: %q", got, out)
	}
	if !strings.Contains(out, "x") {
		t.Errorf("Changed line not rewritten: %q", out)
	}
	if strings.Contains(out, "a") || strings.Contains(out, "c") {
		t.Errorf("Unchanged lines rewritten: %q", out)
	}
}

func TestRepaintRepositionsToOrigin(t *testing.T) {
	var buf bytes.Buffer
	r := newRenderer(&buf, false)

	paintTo(t, r, &buf, "a\nb\nc")
	out := paintTo(t, r, &buf, "a\nb\nz")

	// Inline mode: move up previous-height-1 lines and return to col 1
	if !strings.HasPrefix(out, "\x1b[2A\r") {
		t.Errorf("Expected cursor-up-2 then CR prefix: %q", out)
	}
}

func TestRepaintAltScreenHomesCursor(t *testing.T) {
	var buf bytes.Buffer
	r := newRenderer(&buf, true)

	paintTo(t, r, &buf, "a\nb")
	out := paintTo(t, r, &buf, "a\nz")
	if !strings.HasPrefix(out, "\x1b[H") {
		t.Errorf("Alt screen repaint should home the cursor: %q", out)
	}
}

func TestShrinkClearsOrphanedLines(t *testing.T) {
	var buf bytes.Buffer
	r := newRenderer(&buf, false)

	paintTo(t, r, &buf, "1\n2\n3\n4\n5")
	out := paintTo(t, r, &buf, "1\n2")

	// Lines 3-5 cleared
	if got := strings.Count(out, "\x1b[2K"); got != 3 {
		t.Errorf("Expected 3 orphan clears, got %d: %q", got, out)
	}
	// Cursor repositioned back to the end of the new frame
	if !strings.HasSuffix(out, "\x1b[3A\r") {
		t.Errorf("Expected cursor-up-3 suffix: %q", out)
	}
}

func TestGrowPaintsNewLines(t *testing.T) {
	var buf bytes.Buffer
	r := newRenderer(&buf, false)

	paintTo(t, r, &buf, "a")
	out := paintTo(t, r, &buf, "a\nb\nc")

	if got := strings.Count(out, "\x1b[2K"); got != 2 {
		t.Errorf("Expected 2 line writes for new lines, got %d: %q", got, out)
	}
	if !strings.Contains(out, "b") || !strings.Contains(out, "c") {
		t.Errorf("New lines not painted: %q", out)
	}
}

func TestInvalidateForcesFullRepaint(t *testing.T) {
	var buf bytes.Buffer
	r := newRenderer(&buf, false)

	frame := "a\nb"
	paintTo(t, r, &buf, frame)
	r.invalidate()
	out := paintTo(t, r, &buf, frame)

	if got := strings.Count(out, "\x1b[2K"); got != 2 {
		t.Errorf("Expected both lines cleared and rewritten, got %d clears: %q", got, out)
	}
	if !strings.Contains(out, "a") || !strings.Contains(out, "b") {
		t.Errorf("Post-invalidate paint should rewrite everything: %q", out)
	}
}

func TestInvalidateInlineRepositionsToOrigin(t *testing.T) {
	var buf bytes.Buffer
	r := newRenderer(&buf, false)

	paintTo(t, r, &buf, "a\nb\nc")
	r.setWidth(20)
	r.invalidate()
	out := paintTo(t, r, &buf, "a\nb\nc")

	// Without repositioning the stale frame would stay on screen above
	// a duplicate
	if !strings.HasPrefix(out, "\x1b[2A\r") {
		t.Errorf("Invalidated inline repaint must return to the frame origin: %q", out)
	}
}

func TestInvalidateClearsStaleTallerFrame(t *testing.T) {
	var buf bytes.Buffer
	r := newRenderer(&buf, false)

	paintTo(t, r, &buf, "1\n2\n3\n4")
	r.invalidate()
	out := paintTo(t, r, &buf, "1\n2")

	// Two rewrites plus two orphan clears
	if got := strings.Count(out, "\x1b[2K"); got != 4 {
		t.Errorf("Expected 4 line clears, got %d: %q", got, out)
	}
	if !strings.HasSuffix(out, "\x1b[2A\r") {
		t.Errorf("Cursor should return to the end of the new frame: %q", out)
	}
}

func TestClipLineWidth(t *testing.T) {
	r := newRenderer(&bytes.Buffer{}, false)
	r.setWidth(5)

	var buf bytes.Buffer
	r.out.Reset(&buf)
	if err := r.paint("abcdefgh"); err != nil {
		t.Fatalf("paint failed: %v", err)
	}
	if strings.Contains(buf.String(), "f") {
		t.Errorf("Line not clipped to width: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "abcde") {
		t.Errorf("Clipped line lost visible prefix: %q", buf.String())
	}
}

func TestClipLinePreservesStyledWidth(t *testing.T) {
	// Escape codes don't count toward visible width
	styled := "\x1b[31mabc\x1b[0m"
	if got := clipLine(styled, 3); got != styled {
		t.Errorf("Styled line within width was altered: %q", got)
	}
}

func TestTrailingNewlineIgnored(t *testing.T) {
	var buf bytes.Buffer
	r := newRenderer(&buf, false)

	paintTo(t, r, &buf, "a\nb\n")
	out := paintTo(t, r, &buf, "a\nb\n")
	if strings.Contains(out, "\x1b[2K") {
		t.Errorf("Trailing newline caused spurious diff: %q", out)
	}
}
