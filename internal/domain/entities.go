package domain

import (
	"fmt"
	"time"
)

// Item is a single entry of a feed
type Item struct {
	ID        string    `json:"id"`        // Stable identifier within the feed
	Title     string    `json:"title"`     // Display title
	Summary   string    `json:"summary"`   // One-line description
	Published time.Time `json:"published"` // When the source produced the item
}

// Age returns a compact age string such as "5m" or "3h" relative to now
func (i Item) Age(now time.Time) string {
	d := now.Sub(i.Published)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}

// Trigger records what started a refresh
type Trigger string

const (
	TriggerPull   Trigger = "pull"   // Pull gesture on the list
	TriggerManual Trigger = "manual" // Key binding or startup
)

// RefreshRecord is one completed refresh in the history
type RefreshRecord struct {
	Feed        string    `json:"feed"`
	Trigger     Trigger   `json:"trigger"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
	Added       int       `json:"added"` // New items merged into the feed
	Error       string    `json:"error,omitempty"`
}

// Duration returns how long the refresh took
func (r RefreshRecord) Duration() time.Duration {
	return r.CompletedAt.Sub(r.StartedAt)
}
