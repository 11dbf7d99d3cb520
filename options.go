package reactor

import (
	"go.uber.org/zap"

	"github.com/lixenwraith/reactor/terminal"
)

// config is the immutable option snapshot captured at NewProgram.
type config struct {
	altScreen bool
	mouse     bool
	fps       int
	onQuit    func()
	inbox     <-chan any
	logger    *zap.Logger
	backend   terminal.Backend
}

// Option configures a Program before it runs.
type Option func(*config)

func defaultConfig() config {
	return config{
		fps:    60,
		logger: zap.NewNop(),
	}
}

// WithAltScreen runs the application in the alternate screen buffer,
// restored on exit.
func WithAltScreen() Option {
	return func(c *config) { c.altScreen = true }
}

// WithMouse enables SGR mouse reporting for the run.
func WithMouse() Option {
	return func(c *config) { c.mouse = true }
}

// WithFPS records an advisory render-rate hint. Rendering is driven by
// message dispatch: one paint per dispatch, no frame coalescing. The
// hint is not enforced as a cap.
func WithFPS(fps int) Option {
	return func(c *config) {
		if fps > 0 {
			c.fps = fps
		}
	}
}

// WithOnQuit registers a cleanup hook invoked while draining, before
// the terminal is restored to the caller.
func WithOnQuit(fn func()) Option {
	return func(c *config) { c.onQuit = fn }
}

// WithInbox attaches a supervisor inbox. Values received on the channel
// are delivered to Update as InboxMsg.
func WithInbox(ch <-chan any) Option {
	return func(c *config) { c.inbox = ch }
}

// WithLogger sets the diagnostic logger. The default is a nop logger;
// never attach one that writes to the terminal the Program owns.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithBackend substitutes the terminal backend, primarily for tests.
func WithBackend(b terminal.Backend) Option {
	return func(c *config) { c.backend = b }
}

func errField(err error) zap.Field {
	return zap.Error(err)
}
