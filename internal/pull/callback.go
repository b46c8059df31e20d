package pull

import "weak"

// weakCallback holds its owner through a weak pointer so the registry never
// keeps a discarded owner alive.
type weakCallback[T any] struct {
	owner weak.Pointer[T]
	fn    func(owner *T, s Surface)
}

// WeakCallback returns a RefreshCallback that calls fn with owner for as long
// as owner is reachable elsewhere. Once owner is collected the registration
// keeps observing gestures but can no longer start a refresh from touch.
//
// fn must not capture owner, or owner will never be collected.
func WeakCallback[T any](owner *T, fn func(owner *T, s Surface)) RefreshCallback {
	return &weakCallback[T]{owner: weak.Make(owner), fn: fn}
}

func (w *weakCallback[T]) OnRefreshStarted(s Surface) {
	if o := w.owner.Value(); o != nil {
		w.fn(o, s)
	}
}

// Expired reports whether the owner has been collected.
func (w *weakCallback[T]) Expired() bool {
	return w.owner.Value() == nil
}
