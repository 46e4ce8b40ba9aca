package property

// cellRef addresses a slot in the runtime's cell arena. A ref is only valid
// while the slot is alive and still carries the same generation; gen 0 is
// never handed out so the zero ref means "no cell".
type cellRef struct {
	index uint32
	gen   uint32
}

func (r cellRef) isZero() bool {
	return r.gen == 0
}

type edgeRef struct {
	index uint32
	gen   uint32
}

// cellNode is the untyped view the runtime has of a *Property[T].
type cellNode interface {
	update() error
	notify()
	description() string
	computed() bool
}

type cellSlot struct {
	gen        uint32
	alive      bool
	evaluating bool
	node       cellNode

	// edges whose producer is this cell
	dependents []edgeRef
	// edges whose consumer is this cell, rebuilt on every evaluation
	upstream []edgeRef

	// last consumer/epoch that linked to this cell, so repeated reads inside
	// one evaluation produce a single edge
	lastReader cellRef
	lastEpoch  uint64
}

type edgeSlot struct {
	gen      uint32
	alive    bool
	producer cellRef
	consumer cellRef
	// positions inside producer.dependents and consumer.upstream
	prodPos int
	consPos int
}

// Stats counts arena occupancy and work done by a Runtime.
type Stats struct {
	Cells        int
	Edges        int
	Evaluations  uint64
	Propagations uint64
}
