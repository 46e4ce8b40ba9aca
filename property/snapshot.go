package property

import (
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
)

// Node is one live property in a Snapshot.
type Node struct {
	ID          uint32
	Description string
	Computed    bool
	Evaluating  bool
	Dependents  int
	Upstream    int
}

// Edge points from the producer (From) to the consumer that read it (To).
type Edge struct {
	From uint32
	To   uint32
}

// Snapshot is a point-in-time copy of a runtime's dependency graph.
type Snapshot struct {
	Nodes []Node
	Edges []Edge
}

func (rt *Runtime) Snapshot() Snapshot {
	var snap Snapshot
	for idx, s := range rt.cells {
		if !s.alive {
			continue
		}
		snap.Nodes = append(snap.Nodes, Node{
			ID:          uint32(idx),
			Description: s.node.description(),
			Computed:    s.node.computed(),
			Evaluating:  s.evaluating,
			Dependents:  len(s.dependents),
			Upstream:    len(s.upstream),
		})
		for _, ref := range s.dependents {
			e := rt.edge(ref)
			if e == nil {
				continue
			}
			snap.Edges = append(snap.Edges, Edge{From: e.producer.index, To: e.consumer.index})
		}
	}
	sort.Slice(snap.Edges, func(i, j int) bool {
		if snap.Edges[i].From != snap.Edges[j].From {
			return snap.Edges[i].From < snap.Edges[j].From
		}
		return snap.Edges[i].To < snap.Edges[j].To
	})
	return snap
}

// Downstream returns every node transitively re-evaluated when id changes.
func (s Snapshot) Downstream(id uint32) mapset.Set[uint32] {
	next := map[uint32][]uint32{}
	for _, e := range s.Edges {
		next[e.From] = append(next[e.From], e.To)
	}
	return reach(id, next)
}

// Upstream returns every node id transitively reads.
func (s Snapshot) Upstream(id uint32) mapset.Set[uint32] {
	prev := map[uint32][]uint32{}
	for _, e := range s.Edges {
		prev[e.To] = append(prev[e.To], e.From)
	}
	return reach(id, prev)
}

// Subgraph keeps the nodes in ids and the edges between them.
func (s Snapshot) Subgraph(ids mapset.Set[uint32]) Snapshot {
	var out Snapshot
	for _, n := range s.Nodes {
		if ids.Contains(n.ID) {
			out.Nodes = append(out.Nodes, n)
		}
	}
	for _, e := range s.Edges {
		if ids.Contains(e.From) && ids.Contains(e.To) {
			out.Edges = append(out.Edges, e)
		}
	}
	return out
}

func reach(start uint32, adj map[uint32][]uint32) mapset.Set[uint32] {
	seen := mapset.NewThreadUnsafeSet[uint32]()
	stack := append([]uint32(nil), adj[start]...)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !seen.Add(n) {
			continue
		}
		stack = append(stack, adj[n]...)
	}
	return seen
}
