// Package terminal provides direct ANSI terminal access for the reactor
// runtime.
//
// Features:
//   - Raw stdin parsing with escape sequence handling (CSI, SS3, SGR mouse, UTF-8)
//   - Raw mode, alternate screen and mouse reporting bracketed by Session
//   - Size detection via TIOCGWINSZ with a DSR cursor-position fallback
//   - SIGWINCH resize detection
//   - Clean terminal restoration on exit/panic
//
// This package bypasses terminfo/termcap entirely, emitting direct ANSI
// sequences. Target environments: Linux, macOS, BSDs with xterm-compatible
// terminals.
package terminal
