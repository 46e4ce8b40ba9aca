package property

import (
	"github.com/hashicorp/go-hclog"
)

// Runtime owns every cell and dependency edge of one reactive graph, and the
// slot naming the cell whose binding is currently running. It is not safe
// for concurrent use.
type Runtime struct {
	cells     []*cellSlot
	freeCells []uint32
	edges     []edgeSlot
	freeEdges []uint32

	current      cellRef
	currentEpoch uint64
	epoch        uint64

	logger hclog.Logger
	stats  Stats
}

// RuntimeOption configures a Runtime at construction.
type RuntimeOption func(*Runtime)

// WithLogger routes evaluation and propagation tracing to logger.
func WithLogger(logger hclog.Logger) RuntimeOption {
	return func(rt *Runtime) {
		if logger != nil {
			rt.logger = logger
		}
	}
}

// NewRuntime returns an empty graph. Logging is discarded unless WithLogger
// is given.
func NewRuntime(opts ...RuntimeOption) *Runtime {
	rt := &Runtime{
		logger: hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Stats reports live cells and edges and the work done so far.
func (rt *Runtime) Stats() Stats {
	return rt.stats
}

func (rt *Runtime) newCell(node cellNode) cellRef {
	var idx uint32
	if n := len(rt.freeCells); n > 0 {
		idx = rt.freeCells[n-1]
		rt.freeCells = rt.freeCells[:n-1]
	} else {
		idx = uint32(len(rt.cells))
		rt.cells = append(rt.cells, &cellSlot{})
	}
	s := rt.cells[idx]
	s.gen++
	if s.gen == 0 {
		s.gen++
	}
	s.alive = true
	s.node = node
	rt.stats.Cells++
	return cellRef{index: idx, gen: s.gen}
}

func (rt *Runtime) cell(ref cellRef) *cellSlot {
	if ref.isZero() || int(ref.index) >= len(rt.cells) {
		return nil
	}
	s := rt.cells[ref.index]
	if !s.alive || s.gen != ref.gen {
		return nil
	}
	return s
}

// releaseCell unlinks every edge touching ref on both sides and tombstones
// the slot. Handles holding the old generation resolve to nothing afterwards.
func (rt *Runtime) releaseCell(ref cellRef) {
	s := rt.cell(ref)
	if s == nil {
		return
	}
	for len(s.dependents) > 0 {
		rt.removeEdge(s.dependents[len(s.dependents)-1])
	}
	rt.clearUpstream(s)

	s.alive = false
	s.evaluating = false
	s.node = nil
	s.dependents = s.dependents[:0]
	s.upstream = s.upstream[:0]
	s.lastReader = cellRef{}
	rt.freeCells = append(rt.freeCells, ref.index)
	rt.stats.Cells--
}

func (rt *Runtime) edge(ref edgeRef) *edgeSlot {
	if int(ref.index) >= len(rt.edges) {
		return nil
	}
	e := &rt.edges[ref.index]
	if !e.alive || e.gen != ref.gen {
		return nil
	}
	return e
}

// track records that the cell being evaluated read producer.
func (rt *Runtime) track(producer cellRef) {
	if rt.current.isZero() {
		return
	}
	s := rt.cell(producer)
	if s == nil {
		return
	}
	if s.lastReader == rt.current && s.lastEpoch == rt.currentEpoch {
		return
	}
	s.lastReader, s.lastEpoch = rt.current, rt.currentEpoch
	// a nested evaluation may have overwritten the marker since the current
	// cell last read producer
	if rt.linked(producer, rt.current) {
		return
	}
	rt.link(producer, rt.current)
}

func (rt *Runtime) linked(producer, consumer cellRef) bool {
	c := rt.cell(consumer)
	if c == nil {
		return false
	}
	for _, ref := range c.upstream {
		if e := rt.edge(ref); e != nil && e.producer == producer {
			return true
		}
	}
	return false
}

// link creates a producer -> consumer edge and appends it to both lists.
func (rt *Runtime) link(producer, consumer cellRef) {
	p, c := rt.cell(producer), rt.cell(consumer)
	if p == nil || c == nil {
		return
	}

	var idx uint32
	if n := len(rt.freeEdges); n > 0 {
		idx = rt.freeEdges[n-1]
		rt.freeEdges = rt.freeEdges[:n-1]
	} else {
		idx = uint32(len(rt.edges))
		rt.edges = append(rt.edges, edgeSlot{})
	}
	e := &rt.edges[idx]
	e.gen++
	e.alive = true
	e.producer = producer
	e.consumer = consumer
	e.prodPos = len(p.dependents)
	e.consPos = len(c.upstream)

	ref := edgeRef{index: idx, gen: e.gen}
	p.dependents = append(p.dependents, ref)
	c.upstream = append(c.upstream, ref)
	rt.stats.Edges++
}

func (rt *Runtime) removeEdge(ref edgeRef) {
	e := rt.edge(ref)
	if e == nil {
		return
	}
	if p := rt.cell(e.producer); p != nil {
		p.dependents = rt.swapRemove(p.dependents, e.prodPos, true)
	}
	if c := rt.cell(e.consumer); c != nil {
		c.upstream = rt.swapRemove(c.upstream, e.consPos, false)
	}
	rt.freeEdge(ref.index)
}

// swapRemove drops list[pos] by moving the last element into its place and
// fixing the moved edge's stored position.
func (rt *Runtime) swapRemove(list []edgeRef, pos int, producerSide bool) []edgeRef {
	last := len(list) - 1
	if pos < 0 || pos > last {
		return list
	}
	if pos != last {
		moved := list[last]
		list[pos] = moved
		m := &rt.edges[moved.index]
		if producerSide {
			m.prodPos = pos
		} else {
			m.consPos = pos
		}
	}
	return list[:last]
}

func (rt *Runtime) freeEdge(idx uint32) {
	e := &rt.edges[idx]
	e.alive = false
	e.producer = cellRef{}
	e.consumer = cellRef{}
	rt.freeEdges = append(rt.freeEdges, idx)
	rt.stats.Edges--
}

func (rt *Runtime) clearUpstream(s *cellSlot) {
	for len(s.upstream) > 0 {
		rt.removeEdge(s.upstream[len(s.upstream)-1])
	}
}

// drainDependents empties the dependents list of s, unlinking every edge
// from its consumer too, and returns the consumers in link order.
func (rt *Runtime) drainDependents(s *cellSlot) []cellRef {
	drained := s.dependents
	s.dependents = nil
	if len(drained) == 0 {
		return nil
	}

	consumers := make([]cellRef, 0, len(drained))
	for _, ref := range drained {
		e := rt.edge(ref)
		if e == nil {
			continue
		}
		consumer := e.consumer
		if c := rt.cell(consumer); c != nil {
			c.upstream = rt.swapRemove(c.upstream, e.consPos, false)
		}
		rt.freeEdge(ref.index)
		consumers = append(consumers, consumer)
	}
	return consumers
}

// enter installs ref as the evaluating cell under a fresh epoch and returns
// the function restoring the previous slot.
func (rt *Runtime) enter(ref cellRef) (restore func()) {
	prev, prevEpoch := rt.current, rt.currentEpoch
	rt.epoch++
	rt.current, rt.currentEpoch = ref, rt.epoch
	return func() {
		rt.current, rt.currentEpoch = prev, prevEpoch
	}
}

// propagate re-evaluates every consumer of ref and then notifies ref's
// subscribers. The dependents list is drained before iterating because
// consumers register fresh edges into it while they re-evaluate.
func (rt *Runtime) propagate(ref cellRef) error {
	s := rt.cell(ref)
	if s == nil {
		return nil
	}
	consumers := rt.drainDependents(s)
	rt.stats.Propagations++
	if len(consumers) > 0 && rt.logger.IsTrace() {
		rt.logger.Trace("propagate", "property", s.node.description(), "consumers", len(consumers))
	}

	for _, consumer := range consumers {
		c := rt.cell(consumer)
		if c == nil {
			continue
		}
		if err := c.node.update(); err != nil {
			return err
		}
	}

	if s = rt.cell(ref); s != nil {
		s.node.notify()
	}
	return nil
}
