package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/muesli/termenv"

	"github.com/lixenwraith/reactor"
)

type demoModel struct {
	ticks    int
	lastKey  string
	mouseCol int
	mouseRow int
	width    int
	height   int
	paused   bool
}

type demo struct {
	interval time.Duration
}

func newDemo(cfg demoConfig) demo {
	return demo{interval: time.Duration(cfg.TickMs) * time.Millisecond}
}

func (d demo) Init(p *reactor.Program) any {
	w, h := p.Size()
	p.Tick(d.interval)
	return demoModel{width: w, height: h}
}

func (d demo) Update(p *reactor.Program, m any, msg reactor.Msg) any {
	st := m.(demoModel)

	switch msg := msg.(type) {
	case reactor.KeyMsg:
		switch msg.Key {
		case "q", "ctrl+c":
			p.Quit()
		case "space":
			st.paused = !st.paused
			if !st.paused {
				p.Tick(d.interval)
			}
		case "r":
			st.ticks = 0
		}
		st.lastKey = msg.Key

	case reactor.MouseMsg:
		st.mouseCol, st.mouseRow = msg.Col, msg.Row

	case reactor.TickMsg:
		if !st.paused {
			st.ticks++
			p.Tick(d.interval)
		}

	case reactor.ResizeMsg:
		st.width, st.height = msg.Width, msg.Height
	}

	return st
}

func (d demo) View(m any) string {
	st := m.(demoModel)
	var b strings.Builder

	title := termenv.String(" reactor-demo ").Reverse().Bold()
	fmt.Fprintf(&b, "%s\n\n", title)

	fmt.Fprintf(&b, "  ticks   %s\n", termenv.String(fmt.Sprintf("%d", st.ticks)).Foreground(termenv.ANSICyan))
	fmt.Fprintf(&b, "  key     %s\n", orDash(st.lastKey))
	fmt.Fprintf(&b, "  mouse   %s\n", mousePos(st))
	fmt.Fprintf(&b, "  size    %dx%d\n\n", st.width, st.height)

	if st.paused {
		fmt.Fprintf(&b, "  %s\n", termenv.String("paused").Foreground(termenv.ANSIYellow))
	} else {
		fmt.Fprintf(&b, "  %s\n", termenv.String("running").Foreground(termenv.ANSIGreen))
	}

	b.WriteString("\n  space pause/resume, r reset, q quit\n")
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func mousePos(st demoModel) string {
	if st.mouseCol == 0 && st.mouseRow == 0 {
		return "-"
	}
	return fmt.Sprintf("(%d,%d)", st.mouseCol, st.mouseRow)
}
