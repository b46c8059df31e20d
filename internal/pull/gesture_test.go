package pull

import (
	"math"
	"reflect"
	"testing"
)

func TestGesture_PullScenario(t *testing.T) {
	f := newFixture(t, nil)

	if f.down(t, 50, 100) {
		t.Fatal("down must not report dragging")
	}
	if !f.move(t, 50, 130) {
		t.Fatal("expected drag start at yDiff 30")
	}
	if f.attacher.Status() != StatusDragging {
		t.Errorf("expected dragging, got %s", f.attacher.Status())
	}

	f.move(t, 50, 300)
	if len(f.presenter.fractions) != 1 || math.Abs(f.presenter.fractions[0]-0.85) > 1e-9 {
		t.Fatalf("expected onPulled(0.85), got %v", f.presenter.fractions)
	}

	f.move(t, 50, 335)
	if len(f.refreshes.surfaces) != 1 {
		t.Fatalf("expected one refresh callback, got %d", len(f.refreshes.surfaces))
	}
	if f.refreshes.surfaces[0] != Surface(f.surface) {
		t.Error("refresh callback got the wrong surface")
	}
	if f.presenter.count("refresh") != 1 {
		t.Errorf("expected one OnRefreshStarted, got %d", f.presenter.count("refresh"))
	}
	if !f.attacher.IsRefreshing() {
		t.Error("expected refreshing")
	}

	want := []string{"show(true)", "pulled(0.850)", "refresh", "show(false)"}
	if !reflect.DeepEqual(f.presenter.calls, want) {
		t.Errorf("presenter calls = %v, want %v", f.presenter.calls, want)
	}

	// The rest of the gesture is ignored while refreshing.
	f.move(t, 50, 380)
	f.up(t)
	if f.presenter.count("refresh") != 1 || len(f.refreshes.surfaces) != 1 {
		t.Error("refresh fired more than once for one gesture")
	}
}

func TestGesture_ReadyCheckGatesDragStart(t *testing.T) {
	f := newFixture(t, nil)
	f.surface.offset = 25 // scrolled away from the top

	f.down(t, 50, 100)
	for _, y := range []float64{130, 200, 400} {
		if f.move(t, 50, y) {
			t.Fatalf("drag started at y=%v although the surface was not ready", y)
		}
	}
	f.up(t)

	if len(f.presenter.calls) != 0 {
		t.Errorf("expected no presenter calls, got %v", f.presenter.calls)
	}
}

func TestGesture_CustomCapabilityReceivesCoordinates(t *testing.T) {
	f := newFixture(t, nil)
	s := &plainSurface{height: 400}

	var gotX, gotY float64
	capability := CapabilityFunc(func(_ Surface, x, y float64) bool {
		gotX, gotY = x, y
		return y < 150
	})
	if err := f.attacher.Register(s, capability, f.refreshes); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	f.attacher.OnDown(s, 12, 140)
	if gotX != 12 || gotY != 140 {
		t.Errorf("capability got (%v, %v)", gotX, gotY)
	}
	if dragging, _ := f.attacher.OnMove(s, 12, 170); !dragging {
		t.Error("expected drag start")
	}
	f.attacher.OnUp(s)

	f.attacher.OnDown(s, 12, 160)
	if dragging, _ := f.attacher.OnMove(s, 12, 200); dragging {
		t.Error("capability rejected the down; drag must not start")
	}
}

func TestGesture_SlopAndDirection(t *testing.T) {
	tests := []struct {
		name  string
		moves [][2]float64
		want  bool
	}{
		{"within slop", [][2]float64{{50, 110}}, false},
		{"just past slop", [][2]float64{{50, 111}}, true},
		{"horizontal", [][2]float64{{300, 105}}, false},
		{"diagonal dominant x", [][2]float64{{100, 140}}, false},
		{"diagonal dominant y", [][2]float64{{60, 140}}, true},
		{"equal x and y", [][2]float64{{90, 140}}, false},
		{"horizontal then down", [][2]float64{{80, 110}, {80, 200}}, false},
		{"small sideways then down", [][2]float64{{55, 102}, {55, 140}}, true},
		{"upward reversal drops candidate", [][2]float64{{50, 85}, {50, 200}}, false},
		{"small upward jitter keeps candidate", [][2]float64{{50, 95}, {50, 130}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			f.down(t, 50, 100)
			var dragging bool
			for _, m := range tt.moves {
				dragging = f.move(t, m[0], m[1])
			}
			if dragging != tt.want {
				t.Errorf("dragging = %t, want %t", dragging, tt.want)
			}
		})
	}
}

func TestGesture_FractionMonotonic(t *testing.T) {
	f := newFixture(t, nil)
	f.startDrag(t)

	ys := []float64{140, 150, 180, 230, 270, 329}
	for _, y := range ys {
		f.move(t, 50, y)
	}

	if len(f.presenter.fractions) != len(ys) {
		t.Fatalf("expected %d fractions, got %v", len(ys), f.presenter.fractions)
	}
	prev := -1.0
	for i, fr := range f.presenter.fractions {
		want := (ys[i] - 130) / 200
		if math.Abs(fr-want) > 1e-9 {
			t.Errorf("fraction[%d] = %v, want %v", i, fr, want)
		}
		if fr < prev {
			t.Errorf("fraction decreased at %d: %v < %v", i, fr, prev)
		}
		if fr >= 1 {
			t.Errorf("fraction[%d] = %v must stay below 1", i, fr)
		}
		prev = fr
	}
}

func TestGesture_JitterToleratedReversalEnds(t *testing.T) {
	f := newFixture(t, nil)
	f.startDrag(t)
	f.move(t, 50, 300)

	// Upward jitter inside the slop is reported but does not move lastY.
	f.move(t, 50, 295)
	if f.attacher.Status() != StatusDragging {
		t.Fatalf("jitter ended the drag")
	}
	if got := f.presenter.fractions[len(f.presenter.fractions)-1]; math.Abs(got-0.825) > 1e-9 {
		t.Errorf("expected fraction 0.825 for jitter sample, got %v", got)
	}
	if f.attacher.gesture.lastY != 300 {
		t.Errorf("lastY moved on jitter: %v", f.attacher.gesture.lastY)
	}

	// Same y as lastY is ignored.
	f.presenter.clear()
	f.move(t, 50, 300)
	if len(f.presenter.calls) != 0 {
		t.Errorf("unchanged y produced calls: %v", f.presenter.calls)
	}

	// A reversal past the slop ends the pull.
	f.move(t, 50, 285)
	if f.attacher.Status() != StatusIdle {
		t.Errorf("expected idle after reversal, got %s", f.attacher.Status())
	}
	want := []string{"reset", "hide(true)"}
	if !reflect.DeepEqual(f.presenter.calls, want) {
		t.Errorf("presenter calls = %v, want %v", f.presenter.calls, want)
	}
	if len(f.refreshes.surfaces) != 0 {
		t.Error("reversal must not refresh")
	}
}

func TestGesture_NegativeDistanceClampsToZero(t *testing.T) {
	f := newFixture(t, nil)
	f.startDrag(t)

	f.move(t, 50, 125)
	if len(f.presenter.fractions) != 1 || f.presenter.fractions[0] != 0 {
		t.Errorf("expected fraction 0, got %v", f.presenter.fractions)
	}
}

func TestGesture_UpWithoutRefreshHides(t *testing.T) {
	f := newFixture(t, nil)
	f.startDrag(t)
	f.move(t, 50, 200)
	f.presenter.clear()

	f.up(t)

	want := []string{"reset", "hide(true)"}
	if !reflect.DeepEqual(f.presenter.calls, want) {
		t.Errorf("presenter calls = %v, want %v", f.presenter.calls, want)
	}
	if f.attacher.Status() != StatusIdle {
		t.Errorf("expected idle, got %s", f.attacher.Status())
	}
}

func TestGesture_UpClearsStaleCandidate(t *testing.T) {
	f := newFixture(t, nil)
	f.down(t, 50, 100)
	f.up(t)

	if f.attacher.gesture.hasCandidate() {
		t.Fatal("candidate survived up")
	}
	if f.move(t, 50, 200) {
		t.Error("move after up started a drag without a down")
	}
}

func TestGesture_CancelBehavesLikeUp(t *testing.T) {
	f := newFixture(t, nil)
	f.startDrag(t)

	if _, err := f.attacher.OnCancel(f.surface); err != nil {
		t.Fatalf("OnCancel failed: %v", err)
	}
	if f.attacher.Status() != StatusIdle {
		t.Errorf("expected idle, got %s", f.attacher.Status())
	}
	if f.presenter.count("hide(true)") != 1 {
		t.Errorf("expected header hidden, calls %v", f.presenter.calls)
	}
}

func TestGesture_ThresholdInclusive(t *testing.T) {
	f := newFixture(t, nil)
	f.startDrag(t)

	f.move(t, 50, 330) // exactly 200
	if !f.attacher.IsRefreshing() {
		t.Error("distance equal to the threshold must refresh")
	}
}

func TestGesture_RefreshOnRelease(t *testing.T) {
	f := newFixture(t, func(c *Config) { c.RefreshOnRelease = true })
	f.startDrag(t)

	f.move(t, 50, 300)
	f.move(t, 50, 335)
	if f.attacher.IsRefreshing() {
		t.Fatal("release mode must not refresh before up")
	}
	if f.presenter.count("release") != 1 {
		t.Fatalf("expected OnReleaseToRefresh once, calls %v", f.presenter.calls)
	}

	// Further pulling past the threshold does not re-arm.
	f.move(t, 50, 345)
	if f.presenter.count("release") != 1 {
		t.Errorf("OnReleaseToRefresh repeated: %v", f.presenter.calls)
	}

	f.up(t)
	if !f.attacher.IsRefreshing() {
		t.Fatal("expected refresh on up")
	}
	if len(f.refreshes.surfaces) != 1 || f.presenter.count("refresh") != 1 {
		t.Errorf("expected exactly one refresh start, calls %v", f.presenter.calls)
	}
	if f.presenter.count("reset") != 0 {
		t.Errorf("up after refresh start must not reset: %v", f.presenter.calls)
	}
}

func TestGesture_RefreshOnReleaseBelowThreshold(t *testing.T) {
	f := newFixture(t, func(c *Config) { c.RefreshOnRelease = true })
	f.startDrag(t)
	f.move(t, 50, 250)
	f.up(t)

	if f.attacher.IsRefreshing() {
		t.Error("released below threshold must not refresh")
	}
	if f.presenter.count("hide(true)") != 1 {
		t.Errorf("expected header hidden, calls %v", f.presenter.calls)
	}
}

func TestGesture_RefreshOnReleaseRearms(t *testing.T) {
	f := newFixture(t, func(c *Config) {
		c.RefreshOnRelease = true
		c.TouchSlop = 50
	})
	f.down(t, 50, 100)
	if !f.move(t, 50, 160) {
		t.Fatal("expected drag start")
	}

	f.move(t, 50, 370) // armed
	f.move(t, 50, 340) // jitter below threshold, disarms
	f.move(t, 50, 365) // armed again

	if got := f.presenter.count("release"); got != 2 {
		t.Errorf("expected two arming calls, got %d: %v", got, f.presenter.calls)
	}
}

func TestGesture_IgnoredWhileRefreshing(t *testing.T) {
	f := newFixture(t, nil)
	if err := f.attacher.SetRefreshing(true); err != nil {
		t.Fatalf("SetRefreshing failed: %v", err)
	}
	f.presenter.clear()

	f.down(t, 50, 100)
	f.move(t, 50, 140)
	f.move(t, 50, 400)
	f.up(t)

	if len(f.presenter.calls) != 0 {
		t.Errorf("gesture while refreshing produced calls: %v", f.presenter.calls)
	}
	if len(f.refreshes.surfaces) != 0 {
		t.Error("gesture while refreshing invoked the callback")
	}
}

func TestGesture_UnregisteredSurfaceIsNoOp(t *testing.T) {
	f := newFixture(t, nil)
	other := &testSurface{height: 400}

	dragging, err := f.attacher.OnDown(other, 50, 100)
	if err != nil || dragging {
		t.Fatalf("expected no-op, got %t, %v", dragging, err)
	}
	f.attacher.OnMove(other, 50, 140)
	f.attacher.OnMove(other, 50, 400)
	f.attacher.OnUp(other)

	if len(f.presenter.calls) != 0 {
		t.Errorf("unregistered surface produced calls: %v", f.presenter.calls)
	}
}

func TestGesture_OtherSurfaceDoesNotStealDrag(t *testing.T) {
	f := newFixture(t, nil)
	other := &testSurface{height: 400}
	if err := f.attacher.Register(other, nil, f.refreshes); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	f.startDrag(t)

	f.attacher.OnMove(other, 50, 400)
	if f.attacher.IsRefreshing() {
		t.Error("move on another surface advanced the drag")
	}
	if f.attacher.Status() != StatusDragging {
		t.Errorf("expected drag to continue, got %s", f.attacher.Status())
	}
}

func TestGesture_TouchSourceHandlerDrivesAttacher(t *testing.T) {
	f := newFixture(t, nil)
	if f.surface.handler == nil {
		t.Fatal("Register did not install the touch handler")
	}

	f.surface.handler.OnTouch(f.surface, PointerEvent{Action: ActionDown, X: 50, Y: 100})
	dragging, err := f.surface.handler.OnTouch(f.surface, PointerEvent{Action: ActionMove, X: 50, Y: 130})
	if err != nil || !dragging {
		t.Errorf("expected drag through the installed handler, got %t, %v", dragging, err)
	}
}
