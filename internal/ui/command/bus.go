package command

import (
	"fmt"

	"github.com/atomicstack/pkgsorter/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Request encapsulates a unit of background work started from the UI.
type Request struct {
	ID      string
	Label   string
	Handler func() tea.Msg
}

// Bus turns requests into Bubble Tea commands while emitting trace logs.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute wraps the request handler into a command. A nil handler yields a
// command that produces no message.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Handler == nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		msg := req.Handler()
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}
