package reactor

import (
	"bufio"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/reactor/terminal"
)

// renderer paints frames with line-level diffing. Bytes written on a
// repaint are bounded by the number of changed lines; repainting an
// identical frame rewrites nothing.
//
// The previous-frame cache belongs to the renderer alone and is updated
// only after a successful paint.
type renderer struct {
	out       *bufio.Writer
	altScreen bool
	width     int

	prev     []string
	painted  bool
	forceAll bool
}

func newRenderer(w io.Writer, altScreen bool) *renderer {
	return &renderer{
		out:       bufio.NewWriterSize(w, 8192),
		altScreen: altScreen,
	}
}

// setWidth records the clip width for subsequent paints.
func (r *renderer) setWidth(w int) {
	r.width = w
}

// invalidate forces the next paint to rewrite every line. The previous
// frame's geometry is kept so an inline repaint still repositions to
// the frame origin and clears what the stale frame left on screen.
func (r *renderer) invalidate() {
	r.forceAll = true
}

// paint writes the frame. Lines are compared one by one against the
// previous frame; only changed lines are cleared and rewritten, equal
// lines are skipped by advancing the cursor. Raw mode suppresses the
// automatic carriage return, so line breaks are written as CR+LF.
func (r *renderer) paint(view string) error {
	view = strings.TrimSuffix(view, "\n")
	lines := strings.Split(view, "\n")
	for i := range lines {
		lines[i] = clipLine(lines[i], r.width)
	}

	if !r.painted {
		r.paintFull(lines)
	} else {
		r.paintDiff(lines)
	}

	if err := r.out.Flush(); err != nil {
		return err
	}

	r.prev = lines
	r.painted = true
	r.forceAll = false
	return nil
}

// paintFull is the first-paint path: write every line in sequence.
func (r *renderer) paintFull(lines []string) {
	if r.altScreen {
		r.out.Write(terminal.SeqCursorHome)
	}
	for i, ln := range lines {
		if i > 0 {
			r.out.WriteString("\r\n")
		}
		r.out.WriteString(ln)
	}
}

// paintDiff repositions to the frame origin and rewrites only changed
// lines. Lines left over from a taller previous frame are cleared and
// the cursor is repositioned to the end of the new frame.
func (r *renderer) paintDiff(lines []string) {
	if r.altScreen {
		r.out.Write(terminal.SeqCursorHome)
	} else {
		r.out.Write(terminal.AppendCursorUp(nil, len(r.prev)-1))
		r.out.WriteString("\r")
	}

	total := len(lines)
	if len(r.prev) > total {
		total = len(r.prev)
	}

	for i := 0; i < total; i++ {
		if i > 0 {
			r.out.WriteString("\r\n")
		}
		if i >= len(lines) {
			// Orphaned line from the taller previous frame
			r.out.Write(terminal.SeqClearLine)
			continue
		}
		if !r.forceAll && i < len(r.prev) && r.prev[i] == lines[i] {
			continue // Unchanged, cursor advance only
		}
		r.out.Write(terminal.SeqClearLine)
		r.out.WriteString(lines[i])
	}

	if orphans := total - len(lines); orphans > 0 {
		r.out.Write(terminal.AppendCursorUp(nil, orphans))
		r.out.WriteString("\r")
	}
}

// clipLine truncates a styled line to the terminal width. A line that
// wraps would desynchronize the cursor bookkeeping of the diff, so
// over-wide lines are cut ANSI-aware instead.
func clipLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	if runewidth.StringWidth(ansi.Strip(s)) <= width {
		return s
	}
	return ansi.Truncate(s, width, "")
}
