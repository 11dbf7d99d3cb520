// Input-probe is an interactive decoder diagnostic. It shows every
// decoded key and mouse event as it arrives, with a rolling log of the
// most recent events. Press ctrl+c or q to quit.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/lixenwraith/reactor"
)

const maxLog = 16

type model struct {
	events []string
	width  int
	height int
	total  int
}

type probe struct{}

func (probe) Init(p *reactor.Program) any {
	w, h := p.Size()
	return model{width: w, height: h}
}

func (probe) Update(p *reactor.Program, m any, msg reactor.Msg) any {
	st := m.(model)

	switch msg := msg.(type) {
	case reactor.KeyMsg:
		if msg.Key == "ctrl+c" || msg.Key == "q" {
			p.Quit()
			return st
		}
		st = st.log(fmt.Sprintf("key    %s", msg.Key))

	case reactor.MouseMsg:
		mods := ""
		if msg.Shift {
			mods += "shift+"
		}
		if msg.Alt {
			mods += "alt+"
		}
		if msg.Ctrl {
			mods += "ctrl+"
		}
		st = st.log(fmt.Sprintf("mouse  %s%s %s @ (%d,%d)",
			mods, msg.Button, msg.Action, msg.Col, msg.Row))

	case reactor.ResizeMsg:
		st.width, st.height = msg.Width, msg.Height
		st = st.log(fmt.Sprintf("resize %dx%d", msg.Width, msg.Height))
	}

	return st
}

func (probe) View(m any) string {
	st := m.(model)

	s := "input-probe: press keys, click and drag the mouse. q or ctrl+c quits.\n"
	s += fmt.Sprintf("terminal %dx%d, %d events\n\n", st.width, st.height, st.total)
	for _, e := range st.events {
		s += "  " + e + "\n"
	}
	return s
}

func (st model) log(entry string) model {
	st.total++
	if len(st.events) >= maxLog {
		copy(st.events, st.events[1:])
		st.events = st.events[:maxLog-1]
	}
	st.events = append(st.events, fmt.Sprintf("%4d  %s", st.total, entry))
	return st
}

func main() {
	logger, err := reactor.LogFromEnv("input-probe.log")
	if err != nil {
		fmt.Fprintf(os.Stderr, "input-probe: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	p := reactor.NewProgram(probe{},
		reactor.WithAltScreen(),
		reactor.WithMouse(),
		reactor.WithLogger(logger),
	)
	if err := p.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "input-probe: %v\n", err)
		os.Exit(1)
	}
}
