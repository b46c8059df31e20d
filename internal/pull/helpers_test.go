package pull

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/zoobzio/capitan"
)

// testSurface is a pointer surface with a scroll offset.
type testSurface struct {
	height   float64
	offset   float64
	detached bool
	handler  TouchHandler
}

func (s *testSurface) Height() float64 { return s.height }
func (s *testSurface) ScrollOffset() float64 { return s.offset }
func (s *testSurface) Detached() bool { return s.detached }
func (s *testSurface) SetTouchHandler(h TouchHandler) { s.handler = h }

// plainSurface has no built-in capability.
type plainSurface struct{ height float64 }

func (s *plainSurface) Height() float64 { return s.height }

// sliceSurface is not comparable.
type sliceSurface []float64

func (s sliceSurface) Height() float64 { return 100 }

// boxedSurface has a comparable type but panics as a map key when v holds a
// slice or map.
type boxedSurface struct{ v any }

func (boxedSurface) Height() float64       { return 100 }
func (boxedSurface) ScrollOffset() float64 { return 0 }

// recordingPresenter records every presenter call in order.
type recordingPresenter struct {
	BasePresenter
	calls     []string
	fractions []float64
	onShow    func()
}

func (p *recordingPresenter) OnCreated(Host, Header) { p.calls = append(p.calls, "created") }
func (p *recordingPresenter) OnReset() { p.calls = append(p.calls, "reset") }
func (p *recordingPresenter) OnPulled(f float64) {
	p.calls = append(p.calls, fmt.Sprintf("pulled(%.3f)", f))
	p.fractions = append(p.fractions, f)
}
func (p *recordingPresenter) OnRefreshStarted() { p.calls = append(p.calls, "refresh") }
func (p *recordingPresenter) OnReleaseToRefresh() { p.calls = append(p.calls, "release") }
func (p *recordingPresenter) OnRefreshMinimized() { p.calls = append(p.calls, "minimized") }
func (p *recordingPresenter) OnEnvironmentChanged(_ Host, cfg any) {
	p.calls = append(p.calls, fmt.Sprintf("env(%v)", cfg))
}

func (p *recordingPresenter) ShowHeaderView() bool {
	changed := p.BasePresenter.ShowHeaderView()
	p.calls = append(p.calls, fmt.Sprintf("show(%t)", changed))
	if p.onShow != nil {
		p.onShow()
	}
	return changed
}

func (p *recordingPresenter) HideHeaderView() bool {
	changed := p.BasePresenter.HideHeaderView()
	p.calls = append(p.calls, fmt.Sprintf("hide(%t)", changed))
	return changed
}

func (p *recordingPresenter) count(call string) int {
	n := 0
	for _, c := range p.calls {
		if c == call {
			n++
		}
	}
	return n
}

func (p *recordingPresenter) clear() {
	p.calls = nil
	p.fractions = nil
}

// manualScheduler fires timers when Advance moves past their deadline.
type manualScheduler struct {
	now    time.Duration
	timers []*manualTimer
}

type manualTimer struct {
	at      time.Duration
	fn      func()
	stopped bool
	fired   bool
}

func (s *manualScheduler) AfterFunc(d time.Duration, fn func()) func() {
	t := &manualTimer{at: s.now + d, fn: fn}
	s.timers = append(s.timers, t)
	return func() { t.stopped = true }
}

func (s *manualScheduler) Advance(d time.Duration) {
	s.now += d
	due := make([]*manualTimer, 0, len(s.timers))
	for _, t := range s.timers {
		if !t.stopped && !t.fired && t.at <= s.now {
			due = append(due, t)
		}
	}
	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		if t.stopped {
			continue
		}
		t.fired = true
		t.fn()
	}
}

func (s *manualScheduler) pending() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// recordingObserver records header states.
type recordingObserver struct {
	states []HeaderState
}

func (o *recordingObserver) OnStateChanged(_ Header, state HeaderState) {
	o.states = append(o.states, state)
}

// refreshRecorder counts refresh callback invocations.
type refreshRecorder struct {
	surfaces []Surface
}

func (r *refreshRecorder) OnRefreshStarted(s Surface) {
	r.surfaces = append(r.surfaces, s)
}

type fixture struct {
	attacher  *Attacher
	presenter *recordingPresenter
	scheduler *manualScheduler
	observer  *recordingObserver
	refreshes *refreshRecorder
	surface   *testSurface
	events    *capitan.Capitan
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newFixture builds an attacher with a registered 400-high surface, slop 10
// and fraction 0.5, so the refresh threshold is 200.
func newFixture(t *testing.T, mutate func(*Config)) *fixture {
	t.Helper()

	cfg := DefaultConfig()
	cfg.TouchSlop = 10
	cfg.ScrollFraction = 0.5
	if mutate != nil {
		mutate(&cfg)
	}

	f := &fixture{
		presenter: &recordingPresenter{},
		scheduler: &manualScheduler{},
		observer:  &recordingObserver{},
		refreshes: &refreshRecorder{},
		surface:   &testSurface{height: 400},
		events:    capitan.New(capitan.WithSyncMode()),
	}
	t.Cleanup(f.events.Shutdown)

	a, err := New("host", cfg,
		WithPresenter(f.presenter),
		WithScheduler(f.scheduler),
		WithObserver(f.observer),
		WithLogger(testLogger()),
		WithEvents(f.events),
	)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := a.Register(f.surface, nil, f.refreshes); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	f.attacher = a
	f.presenter.clear()
	return f
}

func (f *fixture) down(t *testing.T, x, y float64) bool {
	t.Helper()
	dragging, err := f.attacher.OnDown(f.surface, x, y)
	if err != nil {
		t.Fatalf("OnDown failed: %v", err)
	}
	return dragging
}

func (f *fixture) move(t *testing.T, x, y float64) bool {
	t.Helper()
	dragging, err := f.attacher.OnMove(f.surface, x, y)
	if err != nil {
		t.Fatalf("OnMove failed: %v", err)
	}
	return dragging
}

func (f *fixture) up(t *testing.T) {
	t.Helper()
	if _, err := f.attacher.OnUp(f.surface); err != nil {
		t.Fatalf("OnUp failed: %v", err)
	}
}

// startDrag performs down at y=100 and a move to y=130.
func (f *fixture) startDrag(t *testing.T) {
	t.Helper()
	f.down(t, 50, 100)
	if !f.move(t, 50, 130) {
		t.Fatalf("expected drag to start")
	}
}
