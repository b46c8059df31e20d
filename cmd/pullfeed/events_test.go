package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/mmcdole/pullfeed/internal/pull"
	"github.com/zoobzio/capitan"
)

type fakeSurface struct{}

func (fakeSurface) Height() float64       { return 20 }
func (fakeSurface) ScrollOffset() float64 { return 0 }

func TestWatchAttacher_LogsLifecycle(t *testing.T) {
	events := capitan.New(capitan.WithSyncMode())
	defer events.Shutdown()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	unhook := watchAttacher(events, logger)

	cfg := pull.DefaultConfig()
	cfg.MinimizeEnabled = false
	a, err := pull.New("host", cfg, pull.WithEvents(events))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	s := fakeSurface{}
	if err := a.Register(s, nil, pull.RefreshFunc(func(pull.Surface) {})); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := a.SetRefreshing(true); err != nil {
		t.Fatalf("SetRefreshing failed: %v", err)
	}
	a.Destroy()

	var records []map[string]any
	dec := json.NewDecoder(&buf)
	for dec.More() {
		var r map[string]any
		if err := dec.Decode(&r); err != nil {
			t.Fatalf("decode log line: %v", err)
		}
		records = append(records, r)
	}

	find := func(msg string) map[string]any {
		for _, r := range records {
			if r["msg"] == msg {
				return r
			}
		}
		t.Fatalf("no %q log record in %v", msg, records)
		return nil
	}

	status := find("pull status")
	if status["from"] != "idle" || status["to"] != "refreshing" {
		t.Errorf("status record = %v", status)
	}
	started := find("refresh started")
	if started["trigger"] != "manual" {
		t.Errorf("trigger = %v, want manual", started["trigger"])
	}
	if started["component"] != "events" {
		t.Errorf("component = %v, want events", started["component"])
	}
	find("attacher destroyed")

	unhook()
	buf.Reset()
	b, err := pull.New("host", cfg, pull.WithEvents(events))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	b.SetRefreshing(true)
	b.Destroy()
	if buf.Len() != 0 {
		t.Errorf("logged after unhook: %s", buf.String())
	}
}
