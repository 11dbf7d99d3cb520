package reactor

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/reactor/terminal"
)

// App is the application contract. Init produces the first model,
// Update replaces it in response to each message, View renders it as a
// multi-line string (lines separated by '\n', style escapes allowed).
//
// Update must not touch the terminal; effects go through Exec/ExecBatch
// and timing through Tick. All three methods run on the reactor
// goroutine, so they may call the Program they receive without locking.
type App interface {
	Init(p *Program) any
	Update(p *Program, model any, msg Msg) any
	View(model any) string
}

// Program is one runtime instance. It exclusively owns the terminal
// device between Run's entry and return, and exclusively owns the model
// between Init and the drain.
type Program struct {
	app App
	cfg config
	log *zap.Logger

	backend  terminal.Backend
	session  *terminal.Session
	reader   *terminal.Reader
	renderer *renderer

	msgCh chan Msg
	done  chan struct{}

	// Tick slot; loop goroutine only
	tickTimer *time.Timer
	tickC     <-chan time.Time

	quitting bool // Loop goroutine only
}

// NewProgram builds a Program around an App. Options are snapshotted
// here; nothing touches the terminal until Run.
func NewProgram(app App, opts ...Option) *Program {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Program{
		app:   app,
		cfg:   cfg,
		log:   cfg.logger,
		msgCh: make(chan Msg, 32),
		done:  make(chan struct{}),
	}
}

// Quit requests shutdown. Intended for Update; external goroutines use
// Send(QuitMsg{}) instead.
func (p *Program) Quit() {
	p.quitting = true
}

// Send injects a message from any goroutine. Messages arriving after
// the loop has exited are dropped.
func (p *Program) Send(msg Msg) {
	if msg == nil {
		return
	}
	select {
	case p.msgCh <- msg:
	case <-p.done:
	}
}

// Size returns the current terminal dimensions. Valid once Run has
// entered the terminal.
func (p *Program) Size() (width, height int) {
	if p.session == nil {
		return 0, 0
	}
	return p.session.Size()
}

// Run drives the reactor until quit, supervisor cancellation, or a
// fatal application error. The terminal is restored on every exit path,
// including panics raised by application callbacks; such panics come
// back as errors after restoration.
//
// When several sources are ready at once the winner is Go's
// pseudo-random select choice; no cross-source ordering is guaranteed.
func (p *Program) Run(ctx context.Context) (err error) {
	if p.backend == nil {
		p.backend = p.cfg.backend
	}
	if p.backend == nil {
		p.backend = terminal.NewBackend()
	}

	p.session = terminal.NewSession(p.backend, p.cfg.altScreen, p.cfg.mouse)
	if err := p.session.Enter(); err != nil {
		return fmt.Errorf("enter terminal: %w", err)
	}
	// The one unconditional guarantee: restore the terminal on every
	// exit path before the error reaches the caller
	defer p.session.Exit()
	defer close(p.done)

	w, h := p.session.Size()
	p.log.Debug("session entered", zap.Int("width", w), zap.Int("height", h))

	p.renderer = newRenderer(backendWriter{p.backend}, p.cfg.altScreen)
	p.renderer.setWidth(w)

	// Latest-wins resize notifications
	resizeCh := make(chan [2]int, 1)
	p.backend.SetResizeHandler(func(w, h int) {
		select {
		case resizeCh <- [2]int{w, h}:
		default:
			select {
			case <-resizeCh:
			default:
			}
			select {
			case resizeCh <- [2]int{w, h}:
			default:
			}
		}
	})

	model, err := p.callInit()
	if err != nil {
		return err
	}

	view, err := p.callView(model)
	if err != nil {
		return err
	}
	if err := p.renderer.paint(view); err != nil {
		return fmt.Errorf("paint: %w", err)
	}
	if p.quitting {
		return p.drain()
	}

	// Size detection ran inside Enter; the decoder may start consuming
	// bytes now
	p.reader = terminal.NewReader(p.backend)
	p.reader.Start()
	defer p.reader.Stop()

	inputCh := p.reader.Events()
	inbox := p.cfg.inbox

	for {
		var msg Msg

		select {
		case <-ctx.Done():
			// Supervisor cancellation: drain without further dispatch
			p.log.Debug("supervisor cancellation")
			return p.drain()

		case ev, ok := <-inputCh:
			if !ok {
				// Input stream ended; remaining sources still drive
				// the loop
				inputCh = nil
				continue
			}
			msg = msgFromEvent(ev)
			if msg == nil {
				continue
			}

		case m := <-p.msgCh:
			msg = m

		case <-p.tickC:
			// One-shot: the slot clears on delivery
			p.tickTimer = nil
			p.tickC = nil
			msg = TickMsg{}

		case v, ok := <-inbox:
			if !ok {
				inbox = nil
				continue
			}
			msg = InboxMsg{Value: v}

		case sz := <-resizeCh:
			p.session.SetSize(sz[0], sz[1])
			p.renderer.setWidth(sz[0])
			p.renderer.invalidate()
			msg = ResizeMsg{Width: sz[0], Height: sz[1]}
		}

		if _, ok := msg.(QuitMsg); ok {
			p.quitting = true
		}

		model, err = p.callUpdate(model, msg)
		if err != nil {
			return err
		}

		view, err := p.callView(model)
		if err != nil {
			return err
		}
		if err := p.renderer.paint(view); err != nil {
			return fmt.Errorf("paint: %w", err)
		}

		if p.quitting {
			return p.drain()
		}
	}
}

// drain runs the optional quit hook. The deferred session exit in Run
// restores the terminal afterwards.
func (p *Program) drain() (err error) {
	if p.tickTimer != nil {
		p.tickTimer.Stop()
		p.tickTimer = nil
		p.tickC = nil
	}
	if p.cfg.onQuit == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("quit hook panicked: %v", r)
			p.log.Error("quit hook panicked", zap.Any("panic", r))
		}
	}()
	p.cfg.onQuit()
	return nil
}

func (p *Program) callInit() (model any, err error) {
	defer func() {
		if r := recover(); r != nil {
			model = nil
			err = fmt.Errorf("init panicked: %v", r)
			p.log.Error("init panicked", zap.Any("panic", r), zap.String("stack", string(debug.Stack())))
		}
	}()
	return p.app.Init(p), nil
}

func (p *Program) callUpdate(model any, msg Msg) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("update panicked: %v", r)
			p.log.Error("update panicked", zap.Any("panic", r), zap.String("stack", string(debug.Stack())))
		}
	}()
	return p.app.Update(p, model, msg), nil
}

func (p *Program) callView(model any) (view string, err error) {
	defer func() {
		if r := recover(); r != nil {
			view = ""
			err = fmt.Errorf("view panicked: %v", r)
			p.log.Error("view panicked", zap.Any("panic", r), zap.String("stack", string(debug.Stack())))
		}
	}()
	return p.app.View(model), nil
}

// backendWriter adapts the terminal backend to io.Writer for the
// renderer's buffered output.
type backendWriter struct {
	b terminal.Backend
}

func (w backendWriter) Write(p []byte) (int, error) {
	if err := w.b.Write(p); err != nil {
		return 0, err
	}
	return len(p), nil
}
