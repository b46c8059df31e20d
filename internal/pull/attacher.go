package pull

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zoobzio/capitan"
)

// Attacher recognizes pull gestures on registered surfaces and drives the
// header through show, minimize and hide while a refresh runs.
//
// An Attacher is not safe for concurrent use. All calls, pointer samples and
// scheduler callbacks must arrive on the host event goroutine. Calls made
// from inside a presenter, observer or refresh callback are queued and run
// once the current transition has finished.
type Attacher struct {
	host   Host
	header Header
	cfg    Config

	presenter HeaderPresenter
	env       Environment
	scheduler Scheduler
	observer  HeaderObserver
	logger    *slog.Logger
	events    *capitan.Capitan

	registry *registry
	gesture  gestureState

	enabled    bool
	refreshing bool
	destroyed  bool

	// Single minimize slot. minimizeGen invalidates timers that fire after
	// being replaced or stopped.
	minimizeStop func()
	minimizeGen  uint64

	dispatching bool
	deferred    []func()
}

// options holds the collaborators of an Attacher.
type options struct {
	presenter HeaderPresenter
	env       Environment
	scheduler Scheduler
	observer  HeaderObserver
	logger    *slog.Logger
	events    *capitan.Capitan
}

// Option configures an Attacher.
type Option func(*options)

// WithPresenter sets the header presenter. Without it a BasePresenter is used.
func WithPresenter(p HeaderPresenter) Option {
	return func(o *options) {
		o.presenter = p
	}
}

// WithEnvironment sets the environment that builds the header.
func WithEnvironment(env Environment) Option {
	return func(o *options) {
		o.env = env
	}
}

// WithScheduler sets the scheduler used for the minimize timer. It is
// required when Config.MinimizeEnabled is set.
func WithScheduler(s Scheduler) Option {
	return func(o *options) {
		o.scheduler = s
	}
}

// WithObserver sets the header state observer.
func WithObserver(obs HeaderObserver) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithEvents sets the capitan instance lifecycle signals are emitted on.
// Defaults to capitan.Default().
func WithEvents(c *capitan.Capitan) Option {
	return func(o *options) {
		o.events = c
	}
}

// New creates an Attacher for host. The header is built immediately through
// the environment and handed to the presenter.
func New(host Host, cfg Config, opts ...Option) (*Attacher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := &options{
		env:    DefaultEnvironment{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.presenter == nil {
		o.presenter = &BasePresenter{}
	}
	if o.env == nil {
		o.env = DefaultEnvironment{}
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.events == nil {
		o.events = capitan.Default()
	}
	if cfg.MinimizeEnabled && o.scheduler == nil {
		return nil, ErrNoScheduler
	}

	header, err := o.env.InflateHeader(host, cfg.HeaderLayout)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHeaderLayout, err)
	}
	if header == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidHeaderLayout, cfg.HeaderLayout)
	}

	a := &Attacher{
		host:      host,
		header:    header,
		cfg:       cfg,
		presenter: o.presenter,
		env:       o.env,
		scheduler: o.scheduler,
		observer:  o.observer,
		logger:    o.logger.With("component", "pull"),
		events:    o.events,
		registry:  newRegistry(),
		enabled:   true,
	}
	a.gesture.reset()
	a.presenter.OnCreated(host, header)

	return a, nil
}

// Register makes s refreshable. A nil capability falls back to the built-in
// lookup: s itself if it implements Capability, or a scroll-to-top check if
// it implements Scroller. Registering s again replaces its entry.
func (a *Attacher) Register(s Surface, capability Capability, callback RefreshCallback) error {
	if a.destroyed {
		return ErrDestroyed
	}
	if s == nil {
		return ErrNilSurface
	}
	if !isComparable(s) {
		return fmt.Errorf("%w: %T", ErrSurfaceNotComparable, s)
	}
	if callback == nil {
		return ErrNoRefreshCallback
	}
	if f, ok := callback.(RefreshFunc); ok && f == nil {
		return ErrNoRefreshCallback
	}
	if capability == nil {
		capability = builtinCapability(s)
		if capability == nil {
			return fmt.Errorf("%w: %T", ErrNoCapability, s)
		}
	}

	a.registry.prune()
	a.registry.put(s, &entry{capability: capability, callback: callback})
	if ts, ok := s.(TouchSource); ok {
		ts.SetTouchHandler(a)
	}
	a.logger.Debug("registered refreshable surface", "surface", fmt.Sprintf("%T", s), "count", a.registry.size())
	return nil
}

// Unregister stops observing s. Unknown surfaces are ignored.
func (a *Attacher) Unregister(s Surface) error {
	if a.destroyed {
		return ErrDestroyed
	}
	if s == nil || !isComparable(s) || !a.registry.remove(s) {
		a.logger.Debug("unregister of unknown surface")
		return nil
	}
	a.detach(s)
	a.run(func() {
		if a.gesture.surface == s {
			a.abandonGesture()
		}
	})
	return nil
}

// Clear unregisters every surface.
func (a *Attacher) Clear() error {
	if a.destroyed {
		return ErrDestroyed
	}
	for _, s := range a.registry.drain() {
		a.detach(s)
	}
	a.run(a.abandonGesture)
	return nil
}

// Registered reports whether s is currently registered.
func (a *Attacher) Registered(s Surface) bool {
	return a.registry.get(s) != nil
}

// SetRefreshing starts or ends a refresh programmatically. Starting this way
// never calls a refresh callback. Setting the current value is a no-op.
func (a *Attacher) SetRefreshing(refreshing bool) error {
	if a.destroyed {
		return ErrDestroyed
	}
	a.run(func() {
		a.setRefreshing(nil, refreshing, false)
	})
	return nil
}

// SetRefreshComplete ends the current refresh.
func (a *Attacher) SetRefreshComplete() error {
	return a.SetRefreshing(false)
}

// IsRefreshing reports whether a refresh is running.
func (a *Attacher) IsRefreshing() bool {
	return a.refreshing
}

// SetEnabled turns gesture recognition on or off. Disabling drops any
// gesture in progress and ends a running refresh without a callback.
func (a *Attacher) SetEnabled(enabled bool) error {
	if a.destroyed {
		return ErrDestroyed
	}
	a.run(func() {
		a.setEnabled(enabled)
	})
	return nil
}

// IsEnabled reports whether gestures are recognized.
func (a *Attacher) IsEnabled() bool {
	return a.enabled
}

// Status returns the current status.
func (a *Attacher) Status() Status {
	switch {
	case a.refreshing:
		return StatusRefreshing
	case a.gesture.dragging:
		return StatusDragging
	default:
		return StatusIdle
	}
}

// Config returns the configuration the attacher was built with.
func (a *Attacher) Config() Config {
	return a.cfg
}

// Header returns the header handle built by the environment.
func (a *Attacher) Header() Header {
	return a.header
}

// Presenter returns the header presenter.
func (a *Attacher) Presenter() HeaderPresenter {
	return a.presenter
}

// OnEnvironmentChanged forwards a host configuration change to the presenter.
func (a *Attacher) OnEnvironmentChanged(cfg any) error {
	if a.destroyed {
		return ErrDestroyed
	}
	a.run(func() {
		a.presenter.OnEnvironmentChanged(a.host, cfg)
	})
	return nil
}

// Destroy releases the header and all registrations and cancels the pending
// minimize timer. Every later gesture-affecting call returns ErrDestroyed.
// Calling Destroy again does nothing.
func (a *Attacher) Destroy() {
	if a.destroyed {
		return
	}
	a.destroyed = true
	a.deferred = nil
	a.stopMinimize()

	for _, s := range a.registry.drain() {
		a.detach(s)
	}
	a.gesture.reset()
	a.refreshing = false

	if r, ok := a.env.(HeaderReleaser); ok {
		r.ReleaseHeader(a.host, a.header)
	}
	a.host = nil
	a.observer = nil

	a.logger.Debug("attacher destroyed")
	a.events.Emit(context.Background(), AttacherDestroyed)
}

// run executes fn as one transition. Calls that arrive while a transition is
// running are queued behind it.
func (a *Attacher) run(fn func()) {
	if a.dispatching {
		a.deferred = append(a.deferred, fn)
		return
	}
	a.dispatching = true
	defer func() {
		a.dispatching = false
	}()

	for {
		before := a.Status()
		if !a.destroyed {
			fn()
		}
		a.statusChanged(before)

		if len(a.deferred) == 0 {
			return
		}
		fn = a.deferred[0]
		a.deferred = a.deferred[1:]
	}
}

func (a *Attacher) statusChanged(before Status) {
	after := a.Status()
	if before == after || a.destroyed {
		return
	}
	a.logger.Debug("status changed", "old_status", before.String(), "new_status", after.String())
	a.events.Emit(context.Background(), StatusChanged,
		KeyOldStatus.Field(before.String()),
		KeyNewStatus.Field(after.String()),
	)
}

func (a *Attacher) setEnabled(enabled bool) {
	a.enabled = enabled
	if enabled {
		return
	}
	a.abandonGesture()
	if a.refreshing {
		a.reset()
	}
}

// abandonGesture drops the gesture, hiding the header if it was being dragged.
func (a *Attacher) abandonGesture() {
	if a.gesture.dragging {
		a.endPull()
	}
	a.gesture.reset()
}

// setRefreshing is the single entry into and out of StatusRefreshing. s is
// the originating surface for touch-started refreshes.
func (a *Attacher) setRefreshing(s Surface, refreshing, fromTouch bool) {
	if a.refreshing == refreshing {
		return
	}
	a.gesture.reset()

	var callback RefreshCallback
	if fromTouch {
		callback = a.registry.get(s).refreshCallback()
	}
	if refreshing && a.canRefresh(fromTouch, callback) {
		a.startRefresh(s, fromTouch, callback)
	} else {
		a.reset()
	}
}

// canRefresh reports whether a refresh may start. Touch-started refreshes need
// a live callback.
func (a *Attacher) canRefresh(fromTouch bool, callback RefreshCallback) bool {
	return !a.refreshing && (!fromTouch || callback != nil)
}

func (a *Attacher) startRefresh(s Surface, fromTouch bool, callback RefreshCallback) {
	a.refreshing = true

	trigger := "manual"
	if fromTouch {
		trigger = "touch"
		callback.OnRefreshStarted(s)
		if a.destroyed {
			return
		}
	}

	a.presenter.OnRefreshStarted()
	if a.destroyed {
		return
	}
	a.showHeader()
	if a.destroyed {
		return
	}

	a.logger.Debug("refresh started", "trigger", trigger)
	a.events.Emit(context.Background(), RefreshStarted,
		KeyTrigger.Field(trigger),
		KeyMinimizeDelay.Field(a.cfg.MinimizeDelay),
	)

	if a.cfg.MinimizeEnabled {
		a.scheduleMinimize()
	}
}

// reset returns to idle and hides the header.
func (a *Attacher) reset() {
	a.refreshing = false
	a.stopMinimize()
	a.presenter.OnReset()
	a.hideHeader()
}

func (a *Attacher) scheduleMinimize() {
	a.stopMinimize()
	gen := a.minimizeGen
	a.minimizeStop = a.scheduler.AfterFunc(a.cfg.MinimizeDelay, func() {
		a.run(func() {
			a.minimize(gen)
		})
	})
}

func (a *Attacher) stopMinimize() {
	a.minimizeGen++
	if a.minimizeStop != nil {
		a.minimizeStop()
		a.minimizeStop = nil
	}
}

func (a *Attacher) minimize(gen uint64) {
	if gen != a.minimizeGen || !a.refreshing {
		return
	}
	a.minimizeStop = nil
	a.presenter.OnRefreshMinimized()
	a.notify(HeaderMinimized)
}

func (a *Attacher) showHeader() {
	if a.presenter.ShowHeaderView() {
		a.notify(HeaderVisible)
	}
}

func (a *Attacher) hideHeader() {
	if a.presenter.HideHeaderView() {
		a.notify(HeaderHidden)
	}
}

func (a *Attacher) notify(state HeaderState) {
	if a.observer != nil {
		a.observer.OnStateChanged(a.header, state)
	}
	a.events.Emit(context.Background(), HeaderStateChanged,
		KeyHeaderState.Field(state.String()),
	)
}

// detach removes the attacher as touch handler of s.
func (a *Attacher) detach(s Surface) {
	if ts, ok := s.(TouchSource); ok {
		ts.SetTouchHandler(nil)
	}
}
