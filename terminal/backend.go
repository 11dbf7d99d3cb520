package terminal

// Backend abstracts platform-specific terminal operations.
// The Unix implementation owns stdin/stdout; test code substitutes a
// scripted backend so decoder and session logic run without a tty.
type Backend interface {
	// Lifecycle
	// Init switches the device to raw mode.
	Init() error
	// Fini restores the saved device mode. Safe to call more than once.
	Fini()

	// Size returns current terminal dimensions, or (0, 0) when the
	// device cannot report them.
	Size() (width, height int)

	// Write writes raw bytes to the terminal output.
	Write(p []byte) error

	// Read blocks until input is available, the stop channel is closed,
	// or an error occurs. A nil slice with nil error means a poll
	// timeout or closed stop channel; callers use the empty read to
	// flush pending state.
	Read(stopCh <-chan struct{}) ([]byte, error)

	// SetResizeHandler registers a callback for terminal resize events.
	SetResizeHandler(handler func(width, height int))
}
