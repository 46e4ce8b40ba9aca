package property

// WeakProperty refers to a property without keeping it in the graph. Once
// the property is disposed the handle resolves to nothing, even if its arena
// slot is reused.
type WeakProperty[T any] struct {
	rt  *Runtime
	ref cellRef
}

// Get performs a tracked Get on the property, or reports false without
// registering anything if it is gone.
func (w WeakProperty[T]) Get() (T, bool) {
	p, ok := w.Upgrade()
	if !ok {
		var zero T
		return zero, false
	}
	return p.Get(), true
}

func (w WeakProperty[T]) Upgrade() (*Property[T], bool) {
	if w.rt == nil {
		return nil, false
	}
	s := w.rt.cell(w.ref)
	if s == nil {
		return nil, false
	}
	p, ok := s.node.(*Property[T])
	return p, ok
}
