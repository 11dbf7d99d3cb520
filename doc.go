// Package reactor is a terminal application runtime. It decodes the
// raw input byte stream into structured messages, multiplexes input,
// timers, command results and supervisor events through a
// single-goroutine reactor loop, dispatches them to an application's
// Update function, and paints the resulting view with a line-diffing
// renderer that rewrites only changed lines.
//
// The runtime owns the terminal device for the duration of Run and
// guarantees restoration (cursor visible, cooked mode, main screen
// buffer) on every exit path, including panics raised by application
// callbacks.
//
// Applications implement the App interface: Init builds the model,
// Update replaces it per message, View renders it. The model is owned
// by the reactor goroutine; effects run through Exec/ExecBatch and the
// single one-shot Tick slot.
package reactor
