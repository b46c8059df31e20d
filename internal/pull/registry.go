package pull

// entry is what the registry keeps per surface.
type entry struct {
	capability Capability
	callback   RefreshCallback
}

// refreshCallback returns the callback, or nil once it has expired.
func (e *entry) refreshCallback() RefreshCallback {
	if e == nil || e.callback == nil {
		return nil
	}
	if ex, ok := e.callback.(expirer); ok && ex.Expired() {
		return nil
	}
	return e.callback
}

// registry maps surfaces to their capability and callback. It keeps
// insertion order so Clear detaches deterministically.
type registry struct {
	entries map[Surface]*entry
	order   []Surface
}

func newRegistry() *registry {
	return &registry{entries: make(map[Surface]*entry)}
}

// isComparable reports whether s can be used as a map key. A comparable type
// can still hold a slice or map in an interface field, so the key is hashed.
func isComparable(s Surface) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	keys := map[Surface]struct{}{}
	keys[s] = struct{}{}
	return true
}

func (r *registry) put(s Surface, e *entry) {
	if _, ok := r.entries[s]; !ok {
		r.order = append(r.order, s)
	}
	r.entries[s] = e
}

// get returns the entry for s. Entries whose surface reports Detached are
// dropped and reported as absent.
func (r *registry) get(s Surface) *entry {
	if s == nil || !isComparable(s) {
		return nil
	}
	e, ok := r.entries[s]
	if !ok {
		return nil
	}
	if d, ok := s.(detacher); ok && d.Detached() {
		r.remove(s)
		return nil
	}
	return e
}

func (r *registry) remove(s Surface) bool {
	if _, ok := r.entries[s]; !ok {
		return false
	}
	delete(r.entries, s)
	for i, o := range r.order {
		if o == s {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// prune drops every detached surface.
func (r *registry) prune() {
	for _, s := range append([]Surface(nil), r.order...) {
		if d, ok := s.(detacher); ok && d.Detached() {
			r.remove(s)
		}
	}
}

// drain empties the registry and returns the surfaces it held, oldest first.
func (r *registry) drain() []Surface {
	surfaces := r.order
	r.entries = make(map[Surface]*entry)
	r.order = nil
	return surfaces
}

func (r *registry) size() int {
	return len(r.entries)
}

// builtinCapability picks a capability from the surface type.
func builtinCapability(s Surface) Capability {
	switch v := s.(type) {
	case Capability:
		return v
	case Scroller:
		return CapabilityFunc(func(Surface, float64, float64) bool {
			return v.ScrollOffset() <= 0
		})
	default:
		return nil
	}
}
