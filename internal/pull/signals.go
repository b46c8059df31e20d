package pull

import "github.com/zoobzio/capitan"

// Attacher lifecycle signals.
var (
	// StatusChanged is emitted when the attacher moves between statuses.
	StatusChanged = capitan.NewSignal(
		"pull.status.changed",
		"Attacher status transition",
	)

	// HeaderStateChanged is emitted when the header visibly changes state.
	HeaderStateChanged = capitan.NewSignal(
		"pull.header.state.changed",
		"Header visibility transition",
	)

	// RefreshStarted is emitted when a refresh begins.
	RefreshStarted = capitan.NewSignal(
		"pull.refresh.started",
		"Refresh started",
	)

	// AttacherDestroyed is emitted once when an attacher is destroyed.
	AttacherDestroyed = capitan.NewSignal(
		"pull.attacher.destroyed",
		"Attacher destroyed",
	)
)

// Field keys for attacher events.
var (
	// KeyOldStatus is the status before a transition.
	KeyOldStatus = capitan.NewStringKey("old_status")

	// KeyNewStatus is the status after a transition.
	KeyNewStatus = capitan.NewStringKey("new_status")

	// KeyHeaderState is the header state after a transition.
	KeyHeaderState = capitan.NewStringKey("header_state")

	// KeyTrigger is "touch" for gesture-started refreshes and "manual" otherwise.
	KeyTrigger = capitan.NewStringKey("trigger")

	// KeyMinimizeDelay is the configured minimize delay.
	KeyMinimizeDelay = capitan.NewDurationKey("minimize_delay")
)
