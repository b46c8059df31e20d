package pull

import "time"

// Surface is a scrollable region that can be pulled. Implementations must be
// comparable; pointer types are the usual choice.
type Surface interface {
	// Height is the extent of the surface along the pull axis.
	Height() float64
}

// Host is the opaque environment the header lives in (a window, a program).
type Host any

// Header is the opaque handle of the header view built by an Environment.
type Header any

// Capability reports whether a pull may begin on a surface at a point.
type Capability interface {
	IsReadyForPull(s Surface, x, y float64) bool
}

// CapabilityFunc adapts a function to Capability.
type CapabilityFunc func(s Surface, x, y float64) bool

func (f CapabilityFunc) IsReadyForPull(s Surface, x, y float64) bool { return f(s, x, y) }

// Scroller is implemented by surfaces that know their scroll position. The
// built-in capability treats an offset of zero or less as ready.
type Scroller interface {
	ScrollOffset() float64
}

// RefreshCallback is told when a user gesture starts a refresh.
type RefreshCallback interface {
	OnRefreshStarted(s Surface)
}

// RefreshFunc adapts a function to RefreshCallback.
type RefreshFunc func(s Surface)

func (f RefreshFunc) OnRefreshStarted(s Surface) { f(s) }

// expirer is implemented by callbacks whose target can go away.
type expirer interface {
	Expired() bool
}

// detacher is implemented by surfaces that can report they are no longer in use.
type detacher interface {
	Detached() bool
}

// TouchHandler receives pointer samples for a surface.
type TouchHandler interface {
	OnTouch(s Surface, ev PointerEvent) (bool, error)
}

// TouchSource is implemented by surfaces that deliver their own pointer
// samples. Register installs the attacher as the handler; Unregister and
// Clear install nil.
type TouchSource interface {
	SetTouchHandler(h TouchHandler)
}

// HeaderPresenter drives the visuals of the header. Embed BasePresenter to
// get no-op defaults.
type HeaderPresenter interface {
	OnCreated(host Host, header Header)
	OnReset()
	// OnPulled reports pull progress in [0, 1).
	OnPulled(fraction float64)
	OnRefreshStarted()
	OnReleaseToRefresh()
	OnRefreshMinimized()
	// ShowHeaderView makes the header visible and reports whether visibility changed.
	ShowHeaderView() bool
	// HideHeaderView hides the header and reports whether visibility changed.
	HideHeaderView() bool
	OnEnvironmentChanged(host Host, cfg any)
}

// HeaderObserver is notified when the header visibly changes state.
type HeaderObserver interface {
	OnStateChanged(header Header, state HeaderState)
}

// HeaderObserverFunc adapts a function to HeaderObserver.
type HeaderObserverFunc func(header Header, state HeaderState)

func (f HeaderObserverFunc) OnStateChanged(header Header, state HeaderState) { f(header, state) }

// Environment builds the header for a host.
type Environment interface {
	InflateHeader(host Host, layout string) (Header, error)
}

// HeaderReleaser is implemented by environments that must detach the header
// from the host on Destroy.
type HeaderReleaser interface {
	ReleaseHeader(host Host, header Header)
}

// Scheduler runs deferred work on the host event thread.
type Scheduler interface {
	// AfterFunc runs fn once after d. The returned stop function cancels it;
	// after stop returns fn never runs.
	AfterFunc(d time.Duration, fn func()) (stop func())
}
