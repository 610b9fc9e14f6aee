// Package testing drives Bubble Tea models in tests without a terminal.
package testing

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// commandTimeout bounds how long Settle waits for one command. Timers that
// outlast it, such as cursor blinks, are dropped.
const commandTimeout = 50 * time.Millisecond

// Driver feeds messages to a model and runs the commands it returns.
type Driver struct {
	Model    tea.Model
	Messages []tea.Msg
	pending  []tea.Cmd
}

// NewDriver wraps model.
func NewDriver(model tea.Model) *Driver {
	return &Driver{Model: model}
}

// Send updates the model with each message and queues the returned commands.
func (d *Driver) Send(msgs ...tea.Msg) *Driver {
	for _, msg := range msgs {
		d.Messages = append(d.Messages, msg)
		var cmd tea.Cmd
		d.Model, cmd = d.Model.Update(msg)
		if cmd != nil {
			d.pending = append(d.pending, cmd)
		}
	}
	return d
}

// Type sends text one rune at a time.
func (d *Driver) Type(text string) *Driver {
	for _, r := range text {
		d.Send(KeyPress(string(r)))
	}
	return d
}

// Settle runs queued commands, feeding their messages back to the model, until
// nothing is left or maxRounds is reached. Batches are flattened.
func (d *Driver) Settle(maxRounds int) *Driver {
	for range maxRounds {
		if len(d.pending) == 0 {
			return d
		}
		cmds := d.pending
		d.pending = nil
		for _, cmd := range cmds {
			msg, ok := run(cmd)
			if !ok || msg == nil {
				continue
			}
			if batch, isBatch := msg.(tea.BatchMsg); isBatch {
				d.pending = append(d.pending, batch...)
				continue
			}
			d.Send(msg)
		}
	}
	return d
}

// Pending reports how many commands are queued.
func (d *Driver) Pending() int {
	return len(d.pending)
}

// View renders the model without ANSI codes.
func (d *Driver) View() string {
	return StripANSI(d.Model.View())
}

func run(cmd tea.Cmd) (tea.Msg, bool) {
	if cmd == nil {
		return nil, false
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		return msg, true
	case <-time.After(commandTimeout):
		return nil, false
	}
}
