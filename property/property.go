// Package property implements reactive cells whose bindings record the
// cells they read, so that writing a cell re-evaluates exactly its
// dependents.
package property

import "fmt"

type Property[T any] struct {
	rt          *Runtime
	ref         cellRef
	value       T
	binding     Binding[T]
	subscribers []func(T)
}

// From creates a leaf property holding value.
func From[T any](rt *Runtime, value T) *Property[T] {
	p := &Property[T]{rt: rt, value: value}
	p.ref = rt.newCell(p)
	return p
}

// FromBinding creates a computed property and evaluates b once. The property
// is returned even when evaluation fails.
func FromBinding[T any](rt *Runtime, b Binding[T]) (*Property[T], error) {
	p := &Property[T]{rt: rt, binding: b}
	p.ref = rt.newCell(p)
	if err := p.update(); err != nil {
		return p, err
	}
	return p, nil
}

// Get returns the current value. Inside a binding it also registers this
// property as a dependency of the property being evaluated.
func (p *Property[T]) Get() T {
	p.rt.track(p.ref)
	return p.value
}

// Peek returns the current value without registering a dependency.
func (p *Property[T]) Peek() T {
	return p.value
}

// Set drops any binding, stores value and re-evaluates every dependent.
func (p *Property[T]) Set(value T) error {
	s := p.rt.cell(p.ref)
	if s == nil {
		return ErrDisposed
	}
	if s.evaluating {
		return &CycleError{Chain: []string{p.label(), p.label()}}
	}
	p.binding = nil
	p.rt.clearUpstream(s)
	p.value = value
	return p.rt.propagate(p.ref)
}

// SetBinding installs b and evaluates it immediately. Dependents are
// re-evaluated and subscribers notified whenever b yields a value, even an
// unchanged one. A nil binding turns the property into a leaf keeping its
// current value.
func (p *Property[T]) SetBinding(b Binding[T]) error {
	s := p.rt.cell(p.ref)
	if s == nil {
		return ErrDisposed
	}
	if s.evaluating {
		return &CycleError{Chain: []string{p.label(), p.label()}}
	}
	if b == nil {
		p.binding = nil
		p.rt.clearUpstream(s)
		return nil
	}
	p.binding = b
	return p.update()
}

// OnNotify registers fn to be called with the new value after every change
// has been propagated to dependents.
func (p *Property[T]) OnNotify(fn func(T)) {
	p.subscribers = append(p.subscribers, fn)
}

// AsWeak returns a handle that reads p without keeping it alive.
func (p *Property[T]) AsWeak() WeakProperty[T] {
	return WeakProperty[T]{rt: p.rt, ref: p.ref}
}

// Dispose unlinks the property from the graph. Weak handles to it stop
// resolving and dependents keep their last value until re-bound.
func (p *Property[T]) Dispose() {
	p.rt.releaseCell(p.ref)
	p.binding = nil
	p.subscribers = nil
}

func (p *Property[T]) Description() string {
	return p.description()
}

// ID is the arena index of the property. Indices of disposed properties are
// reused.
func (p *Property[T]) ID() uint32 {
	return p.ref.index
}

// DependentCount is the number of properties whose last evaluation read p.
func (p *Property[T]) DependentCount() int {
	if s := p.rt.cell(p.ref); s != nil {
		return len(s.dependents)
	}
	return 0
}

// UpstreamCount is the number of properties p's binding read last time.
func (p *Property[T]) UpstreamCount() int {
	if s := p.rt.cell(p.ref); s != nil {
		return len(s.upstream)
	}
	return 0
}

func (p *Property[T]) description() string {
	if p.binding == nil {
		return ""
	}
	return p.binding.Description()
}

func (p *Property[T]) computed() bool {
	return p.binding != nil
}

func (p *Property[T]) label() string {
	if d := p.description(); d != "" {
		return d
	}
	return fmt.Sprintf("property#%d", p.ref.index)
}

func (p *Property[T]) notify() {
	for _, fn := range p.subscribers {
		fn(p.value)
	}
}

// update re-runs the binding with the property installed as the evaluating
// cell, then propagates. The evaluating flag stays set until propagation
// returns, so a dependent that leads back here is reported as a cycle.
func (p *Property[T]) update() error {
	rt := p.rt
	s := rt.cell(p.ref)
	if s == nil || p.binding == nil {
		return nil
	}
	if s.evaluating {
		rt.logger.Debug("circular dependency", "property", p.label())
		return &CycleError{Chain: []string{p.label()}}
	}
	s.evaluating = true
	defer func() {
		if s := rt.cell(p.ref); s != nil {
			s.evaluating = false
		}
	}()
	rt.clearUpstream(s)

	if rt.logger.IsTrace() {
		rt.logger.Trace("evaluate", "property", p.label())
	}
	value, ok := p.run()
	if !ok {
		return nil
	}
	p.value = value
	rt.stats.Evaluations++

	if err := rt.propagate(p.ref); err != nil {
		return withFrame(err, p.label())
	}
	return nil
}

func (p *Property[T]) run() (T, bool) {
	restore := p.rt.enter(p.ref)
	defer restore()
	return p.binding.Run()
}
