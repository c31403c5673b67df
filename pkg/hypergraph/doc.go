// Package hypergraph provides the directed hypergraph model used by the
// coupling engine.
//
// # Overview
//
// A hyperedge relates a set of source nodes to a set of target nodes. In
// dependency diagrams the sources depend on the targets: a source node is
// "blocked" while it still has an outgoing hyperedge, and becomes a leaf once
// every hyperedge it sources has expired.
//
// The package separates the immutable description of a graph from the views
// that algorithms walk over:
//
//   - [Hypergraph] is an arena. It owns the node ids, the hyperedges and their
//     endpoint sets, indexed by position. It is built once with [New] and never
//     modified.
//   - [Snapshot] is a view over the arena: a [Set] of present nodes and a [Set]
//     of present edges. Snapshots are small values, so cloning one is a copy
//     and two snapshots never share mutable state.
//
// # Basic Usage
//
//	g, err := hypergraph.New(
//	    []hypergraph.Node{{ID: "a"}, {ID: "b"}, {ID: "c"}},
//	    []hypergraph.Edge{
//	        {ID: "ac", Sources: []string{"a"}, Targets: []string{"c"}},
//	        {ID: "bc", Sources: []string{"b"}, Targets: []string{"c"}},
//	    },
//	)
//	s := g.Snapshot()
//	g.IDs(s.Leaves())   // [c]
//	g.IDs(s.Blocked())  // [a b]
//
// # Frontiers
//
// A frontier is a node set closed under descendants: for every node in the
// set, everything reachable from it through outgoing hyperedges is in the set
// as well. Removing a frontier ("expiring" it) drops the nodes and every
// hyperedge touching them. A frontier is productive when its removal turns at
// least one previously blocked node into a leaf.
//
// [Snapshot.AllFrontiers] enumerates every non-empty node subset and is
// exponential in the number of nodes. Callers are expected to bound the input
// size before calling it; the coupling engine does so with configurable limits.
//
// # Lenient Input
//
// Edges whose Sources or Targets slice is nil are treated as incomplete and
// dropped by [New]. Edges without an ID receive "edge-<index>", where index is
// the edge's position in the input slice. Endpoint ids that are not declared
// as nodes are tracked in the arena but never belong to a snapshot's node set,
// so such edges stay inert until one of their declared endpoints is removed.
//
// # Cycles
//
// Descendant traversal terminates on cyclic inputs, but frontier semantics
// are only meaningful for acyclic hypergraphs. [Hypergraph.CheckAcyclic]
// reports the first back edge found.
//
// # Concurrency
//
// A Hypergraph is immutable after [New] and safe for concurrent use. Snapshot
// values can be copied freely between goroutines.
package hypergraph
