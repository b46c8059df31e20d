package main

import (
	"context"
	"log/slog"

	"github.com/mmcdole/pullfeed/internal/pull"
	"github.com/zoobzio/capitan"
)

// watchAttacher logs pull attacher lifecycle signals. The returned function
// removes the hooks.
func watchAttacher(events *capitan.Capitan, logger *slog.Logger) func() {
	logger = logger.With("component", "events")

	listeners := []*capitan.Listener{
		events.Hook(pull.StatusChanged, func(_ context.Context, e *capitan.Event) {
			from, _ := pull.KeyOldStatus.From(e)
			to, _ := pull.KeyNewStatus.From(e)
			logger.Info("pull status", "from", from, "to", to)
		}),
		events.Hook(pull.RefreshStarted, func(_ context.Context, e *capitan.Event) {
			trigger, _ := pull.KeyTrigger.From(e)
			delay, _ := pull.KeyMinimizeDelay.From(e)
			logger.Info("refresh started", "trigger", trigger, "minimize_delay", delay)
		}),
		events.Hook(pull.HeaderStateChanged, func(_ context.Context, e *capitan.Event) {
			state, _ := pull.KeyHeaderState.From(e)
			logger.Debug("header state", "state", state)
		}),
		events.Hook(pull.AttacherDestroyed, func(context.Context, *capitan.Event) {
			logger.Info("attacher destroyed")
		}),
	}

	return func() {
		for _, l := range listeners {
			l.Close()
		}
	}
}
