package reactor

import (
	"fmt"
	"time"
)

// Cmd is a user-supplied effect function run off the reactor goroutine.
// A non-nil Msg is delivered back through the message channel; a nil
// Msg delivers nothing; an error (or a panic inside the function) is
// converted into an ErrMsg.
type Cmd func() (Msg, error)

// Exec schedules a command as an independent goroutine. Results from
// commands still in flight when the loop has exited are dropped.
func (p *Program) Exec(c Cmd) {
	if c == nil {
		return
	}
	go func() {
		msg, err := runCmd(c)
		if err != nil {
			p.log.Debug("command failed", errField(err))
			msg = ErrMsg{Err: err}
		}
		if msg == nil {
			return
		}
		select {
		case p.msgCh <- msg:
		case <-p.done:
			// Loop gone; fire-and-forget result dropped
		}
	}()
}

// ExecBatch schedules several commands concurrently. No ordering is
// guaranteed among their results.
func (p *Program) ExecBatch(cs ...Cmd) {
	for _, c := range cs {
		p.Exec(c)
	}
}

// Tick arms the single one-shot tick slot to fire after d. Firing
// delivers one TickMsg and clears the slot; call Tick again to repeat.
// Re-arming before the previous timer fires stops and abandons it; the
// abandoned timer's channel is unreachable afterwards, so no stray
// tick can be observed. Must only be called from Init/Update.
func (p *Program) Tick(d time.Duration) {
	if p.tickTimer != nil {
		p.tickTimer.Stop()
	}
	p.tickTimer = time.NewTimer(d)
	p.tickC = p.tickTimer.C
}

// runCmd invokes a command with a panic boundary.
func runCmd(c Cmd) (msg Msg, err error) {
	defer func() {
		if r := recover(); r != nil {
			msg = nil
			err = fmt.Errorf("command panicked: %v", r)
		}
	}()
	return c()
}
