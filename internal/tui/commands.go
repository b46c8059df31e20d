package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/pullfeed/internal/domain"
	"github.com/mmcdole/pullfeed/internal/feed"
)

// Command factories for async operations

const refreshTimeout = 30 * time.Second

// LoadItemsCmd restores cached items from the store
func LoadItemsCmd(svc *feed.Service) tea.Cmd {
	return func() tea.Msg {
		if err := svc.Load(); err != nil {
			return ErrMsg{Err: err, Context: "loading cached items"}
		}
		return ItemsLoadedMsg{}
	}
}

// RefreshCmd fetches new items for the feed
func RefreshCmd(svc *feed.Service, trigger domain.Trigger) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()

		rec, err := svc.Refresh(ctx, trigger)
		return RefreshDoneMsg{Record: rec, Err: err}
	}
}

// LoadHistoryCmd loads the most recent refresh records
func LoadHistoryCmd(svc *feed.Service, limit int) tea.Cmd {
	return func() tea.Msg {
		records, err := svc.History(limit)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading history"}
		}
		return HistoryLoadedMsg{Records: records}
	}
}

// ClearStatusCmd clears status message seq after d
func ClearStatusCmd(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}
