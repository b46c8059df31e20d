package tui

import (
	"github.com/mmcdole/pullfeed/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// ItemsLoadedMsg signals that cached items were restored from the store
type ItemsLoadedMsg struct{}

// RefreshDoneMsg signals that a feed refresh finished
type RefreshDoneMsg struct {
	Record domain.RefreshRecord
	Err    error
}

// HistoryLoadedMsg carries the most recent refresh records
type HistoryLoadedMsg struct {
	Records []domain.RefreshRecord
}

// DispatchMsg runs a callback handed back from another goroutine
type DispatchMsg struct {
	Fn func()
}

// ClearStatusMsg clears the status message if it is still the current one
type ClearStatusMsg struct {
	Seq int
}
