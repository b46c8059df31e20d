package tui

import (
	"context"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/pullfeed/internal/domain"
	"github.com/mmcdole/pullfeed/internal/feed"
	"github.com/mmcdole/pullfeed/internal/log"
	"github.com/mmcdole/pullfeed/internal/pull"
	"github.com/mmcdole/pullfeed/internal/store"
	"github.com/zoobzio/clockz"
)

// countingSource yields one new item per fetch.
type countingSource struct {
	n int
}

func (s *countingSource) Name() string { return "test" }

func (s *countingSource) Fetch(ctx context.Context) ([]domain.Item, error) {
	s.n++
	return []domain.Item{{
		ID:        fmt.Sprintf("item-%d", s.n),
		Title:     fmt.Sprintf("Item number %d", s.n),
		Published: time.Unix(int64(s.n), 0),
	}}, nil
}

func testPullConfig() pull.Config {
	return pull.Config{
		ScrollFraction:  0.5,
		MinimizeEnabled: true,
		MinimizeDelay:   time.Second,
		TouchSlop:       1,
		HeaderLayout:    pull.DefaultHeaderLayout,
	}
}

func newTestModel(t *testing.T, cfg pull.Config) (Model, *clockz.FakeClock) {
	t.Helper()
	st, err := store.NewFeedStore("", "")
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	clock := clockz.NewFakeClock()
	svc := feed.NewService(&countingSource{}, st, clock, 0, log.NullLogger())

	m, err := NewModel(Options{Feed: svc, Pull: cfg, Clock: clock, Logger: log.NullLogger()})
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	t.Cleanup(func() {
		m.Close()
		st.Close()
	})

	// 24 rows leave a 20 row list, so the pull threshold is 10 rows.
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	return m, clock
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func updateCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// collect runs cmd and any batched commands, keeping the messages produced
// within the timeout. Blocking commands such as Dispatcher.Wait are dropped.
func collect(cmd tea.Cmd, timeout time.Duration) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-ch:
	case <-time.After(timeout):
		return nil
	}

	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c, timeout)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func findMsg[T any](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone}
}
