package pull

import "math"

// noCandidate marks gesture coordinates that are not set.
const noCandidate = -1

// gestureState is the per-attacher record of the gesture in progress.
type gestureState struct {
	dragging         bool
	armed            bool // release mode: threshold met, waiting for up
	handlingFromDown bool

	initialX, initialY float64
	lastY              float64
	pullBeginY         float64

	// surface is the surface the current candidate or drag belongs to.
	surface Surface
}

// reset clears the gesture. initialY <= 0 means there is no candidate.
func (g *gestureState) reset() {
	g.dragging = false
	g.armed = false
	g.handlingFromDown = false
	g.initialY = noCandidate
	g.lastY = noCandidate
	g.pullBeginY = noCandidate
	g.surface = nil
}

func (g *gestureState) hasCandidate() bool {
	return g.initialY > 0
}

// OnTouch feeds one pointer sample for s into the recognizer. It reports
// whether a pull is being dragged after the sample, in which case the host
// should not scroll the surface itself. Samples for unregistered surfaces are
// ignored.
func (a *Attacher) OnTouch(s Surface, ev PointerEvent) (bool, error) {
	if a.destroyed {
		return false, ErrDestroyed
	}
	var dragging bool
	a.run(func() {
		dragging = a.handleTouch(s, ev)
	})
	return dragging, nil
}

// OnDown is OnTouch with an ActionDown sample.
func (a *Attacher) OnDown(s Surface, x, y float64) (bool, error) {
	return a.OnTouch(s, PointerEvent{Action: ActionDown, X: x, Y: y})
}

// OnMove is OnTouch with an ActionMove sample.
func (a *Attacher) OnMove(s Surface, x, y float64) (bool, error) {
	return a.OnTouch(s, PointerEvent{Action: ActionMove, X: x, Y: y})
}

// OnUp is OnTouch with an ActionUp sample.
func (a *Attacher) OnUp(s Surface) (bool, error) {
	return a.OnTouch(s, PointerEvent{Action: ActionUp})
}

// OnCancel is OnTouch with an ActionCancel sample.
func (a *Attacher) OnCancel(s Surface) (bool, error) {
	return a.OnTouch(s, PointerEvent{Action: ActionCancel})
}

func (a *Attacher) handleTouch(s Surface, ev PointerEvent) bool {
	if a.destroyed || !a.enabled {
		return false
	}

	e := a.registry.get(s)
	if e == nil {
		a.logger.Debug("pointer sample for unregistered surface", "action", ev.Action.String())
		return false
	}

	g := &a.gesture
	if ev.Action == ActionDown {
		// A new gesture never sees state from the previous one.
		if g.dragging {
			a.endPull()
		}
		g.reset()
		g.handlingFromDown = true
	} else if g.surface != nil && g.surface != s {
		return false
	}

	// Until a drag starts, samples only establish or drop the candidate.
	if g.handlingFromDown && !g.dragging {
		return a.intercept(s, e, ev)
	}

	switch ev.Action {
	case ActionMove:
		if a.refreshing {
			return false
		}
		if g.dragging && ev.Y != g.lastY {
			a.drag(s, ev.Y)
		}
	case ActionUp, ActionCancel:
		a.release(s)
	}
	return g.dragging
}

// intercept decides whether the samples of a gesture become a pull.
func (a *Attacher) intercept(s Surface, e *entry, ev PointerEvent) bool {
	if a.refreshing {
		return false
	}

	g := &a.gesture
	switch ev.Action {
	case ActionDown:
		if a.canRefresh(true, e.refreshCallback()) && e.capability.IsReadyForPull(s, ev.X, ev.Y) {
			g.initialX = ev.X
			g.initialY = ev.Y
			g.surface = s
		}
	case ActionMove:
		if !g.dragging && g.hasCandidate() {
			yDiff := ev.Y - g.initialY
			xDiff := ev.X - g.initialX
			if yDiff > xDiff && yDiff > a.cfg.TouchSlop {
				a.startDrag(s, ev.Y)
			} else if yDiff < -a.cfg.TouchSlop {
				g.reset()
			} else if xDiff >= yDiff && xDiff > a.cfg.TouchSlop {
				// Horizontal motion owns the rest of this gesture.
				g.reset()
			}
		}
	case ActionUp, ActionCancel:
		g.reset()
	}
	return g.dragging
}

func (a *Attacher) startDrag(s Surface, y float64) {
	g := &a.gesture
	g.dragging = true
	g.pullBeginY = y
	g.lastY = y
	g.surface = s
	a.logger.Debug("pull started", "y", y)
	a.showHeader()
}

// drag handles a move while dragging. Upward jitter within the slop is
// tolerated; a larger reversal ends the pull.
func (a *Attacher) drag(s Surface, y float64) {
	g := &a.gesture
	delta := y - g.lastY
	if delta < -a.cfg.TouchSlop {
		a.endPull()
		g.reset()
		return
	}
	if delta > 0 {
		g.lastY = y
	}
	a.pulled(s, y)
}

// pulled reports progress for a pull that reached y.
func (a *Attacher) pulled(s Surface, y float64) {
	g := &a.gesture
	threshold := a.threshold(s)
	distance := y - g.pullBeginY
	if distance >= threshold {
		a.thresholdCrossed(s)
		return
	}

	g.armed = false
	fraction := 0.0
	if threshold > 0 {
		fraction = math.Max(0, distance/threshold)
	}
	a.presenter.OnPulled(fraction)
}

func (a *Attacher) thresholdCrossed(s Surface) {
	g := &a.gesture
	if a.cfg.RefreshOnRelease {
		if !g.armed {
			g.armed = true
			a.presenter.OnReleaseToRefresh()
		}
		return
	}
	a.setRefreshing(s, true, true)
}

// release handles up and cancel.
func (a *Attacher) release(s Surface) {
	g := &a.gesture
	if g.dragging && a.cfg.RefreshOnRelease && g.lastY-g.pullBeginY >= a.threshold(s) {
		a.setRefreshing(s, true, true)
	}
	if g.dragging {
		a.endPull()
	}
	g.reset()
}

// endPull returns the header to idle unless a refresh took over.
func (a *Attacher) endPull() {
	if !a.refreshing {
		a.logger.Debug("pull ended without refresh")
		a.reset()
	}
}

// threshold is the pull distance that triggers a refresh on s.
func (a *Attacher) threshold(s Surface) float64 {
	return s.Height() * a.cfg.ScrollFraction
}
