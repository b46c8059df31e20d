/*
Package pull recognizes "pull down to refresh" gestures on scrollable
surfaces and drives a header indicator through the refresh lifecycle,
independent of any UI toolkit.

The host feeds normalized pointer samples for each registered surface into an
Attacher. The attacher decides when a sample stream becomes a pull (slop,
direction and horizontal-dominance checks), reports pull progress to a
HeaderPresenter, starts a refresh once the pull reaches the configured share
of the surface height, and minimizes the header after a delay while the
refresh runs. The caller ends the refresh with SetRefreshComplete.

# Basic Usage

	sched := scheduler.New(clockz.RealClock, post)
	attacher, err := pull.New(window, pull.DefaultConfig(),
	    pull.WithPresenter(header),
	    pull.WithScheduler(sched),
	)
	if err != nil {
	    return err
	}
	defer attacher.Destroy()

	err = attacher.Register(list, nil, pull.RefreshFunc(func(s pull.Surface) {
	    go fetch(func() { post(func() { attacher.SetRefreshComplete() }) })
	}))

	// from the host event loop
	attacher.OnTouch(list, pull.PointerEvent{Action: pull.ActionDown, X: x, Y: y})

# Threading

An Attacher belongs to one goroutine, the host event loop. Scheduler
implementations must deliver timer callbacks on that goroutine; see
internal/scheduler for one built on a dispatch function.
*/
package pull
