package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Dispatcher adapts callbacks from timer goroutines to a channel for Bubble Tea.
type Dispatcher struct {
	ch   chan func()
	done chan struct{}
	once sync.Once
}

// NewDispatcher creates a new channel-based dispatcher.
func NewDispatcher(size int) *Dispatcher {
	return &Dispatcher{ch: make(chan func(), size), done: make(chan struct{})}
}

// Dispatch queues fn for the event loop. It blocks while the queue is full
// and drops fn once the dispatcher is closed.
func (d *Dispatcher) Dispatch(fn func()) {
	select {
	case d.ch <- fn:
	case <-d.done:
	}
}

// Wait returns a command delivering the next queued callback as a DispatchMsg.
func (d *Dispatcher) Wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case fn := <-d.ch:
			return DispatchMsg{Fn: fn}
		case <-d.done:
			return nil
		}
	}
}

// Close releases goroutines blocked in Dispatch or Wait.
func (d *Dispatcher) Close() {
	d.once.Do(func() { close(d.done) })
}
