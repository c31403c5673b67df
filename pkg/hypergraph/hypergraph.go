package hypergraph

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
)

var (
	// ErrInvalidNodeID is returned by [New] when a node or an edge endpoint
	// has an empty identifier.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateEdgeID is returned by [New] when two edges share an ID.
	// Coupled sets are sets of edge ids, so edge ids must be unique.
	ErrDuplicateEdgeID = errors.New("duplicate edge ID")

	// ErrUnknownNode is returned by [Hypergraph.NodeSet] for ids not in the arena.
	ErrUnknownNode = errors.New("unknown node")

	// ErrUnknownEdge is returned by [Hypergraph.EdgeSet] for ids not in the arena.
	ErrUnknownEdge = errors.New("unknown edge")

	// ErrTooLarge is returned by [New] when the input needs more than
	// [MaxSize] node ids or edges.
	ErrTooLarge = errors.New("hypergraph too large")

	// ErrCycle is returned by [Hypergraph.CheckAcyclic] when some node can
	// reach itself through outgoing hyperedges.
	ErrCycle = errors.New("hypergraph contains a cycle")
)

// Metadata stores opaque caller data attached to nodes and edges (labels,
// positions, styling). The coupling engine never interprets it.
type Metadata map[string]any

// Node is a hypergraph vertex. Only the ID matters to the algorithms.
type Node struct {
	ID   string
	Meta Metadata
}

// Edge is a directed hyperedge from a set of source nodes to a set of target
// nodes.
//
// A nil Sources or Targets slice means the field was missing from the input,
// and [New] drops the edge. An empty non-nil slice is a valid, empty side.
type Edge struct {
	ID      string
	Sources []string
	Targets []string
	Meta    Metadata

	// Index is the edge's position in the caller's input slice.
	Index int
}

// NormalizeEdge returns e with Index set to position and, if e has no ID,
// the synthesized id "edge-<position>".
func NormalizeEdge(e Edge, position int) Edge {
	e.Index = position
	if e.ID == "" {
		e.ID = "edge-" + strconv.Itoa(position)
	}
	return e
}

// Complete reports whether both endpoint fields are present.
func (e Edge) Complete() bool { return e.Sources != nil && e.Targets != nil }

// Hypergraph is an immutable arena of node ids and hyperedges.
//
// Node ids are indexed in declaration order, followed by ids that only occur
// as edge endpoints ("dangling" ids). Edges keep their input order. All
// algorithms operate on [Snapshot] views over the arena.
type Hypergraph struct {
	ids      []string
	index    map[string]int
	nodes    []Node
	declared Set

	edges     []Edge
	edgeIndex map[string]int
	sources   []Set
	targets   []Set
}

// New builds a hypergraph from a node list and a raw edge list.
//
// Duplicate node ids are merged. Edges missing Sources or Targets are
// dropped, and missing edge ids are synthesized from the input position (see
// [NormalizeEdge]). New returns [ErrInvalidNodeID] for empty node or endpoint
// ids, [ErrDuplicateEdgeID] for repeated edge ids, and [ErrTooLarge] when the
// arena would exceed [MaxSize] ids or edges.
func New(nodes []Node, edges []Edge) (*Hypergraph, error) {
	g := &Hypergraph{
		index:     make(map[string]int),
		edgeIndex: make(map[string]int),
	}

	for _, n := range nodes {
		if n.ID == "" {
			return nil, ErrInvalidNodeID
		}
		if _, seen := g.index[n.ID]; seen {
			continue
		}
		i, err := g.intern(n.ID)
		if err != nil {
			return nil, err
		}
		g.declared = g.declared.With(i)
		g.nodes = append(g.nodes, n)
	}

	for pos, raw := range edges {
		if !raw.Complete() {
			continue
		}
		e := NormalizeEdge(raw, pos)
		if _, dup := g.edgeIndex[e.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateEdgeID, e.ID)
		}
		if len(g.edges) == MaxSize {
			return nil, fmt.Errorf("%w: more than %d edges", ErrTooLarge, MaxSize)
		}
		src, err := g.endpoints(e.ID, e.Sources)
		if err != nil {
			return nil, err
		}
		dst, err := g.endpoints(e.ID, e.Targets)
		if err != nil {
			return nil, err
		}
		e.Sources = slices.Clone(e.Sources)
		e.Targets = slices.Clone(e.Targets)
		g.edgeIndex[e.ID] = len(g.edges)
		g.edges = append(g.edges, e)
		g.sources = append(g.sources, src)
		g.targets = append(g.targets, dst)
	}

	return g, nil
}

func (g *Hypergraph) intern(id string) (int, error) {
	if i, ok := g.index[id]; ok {
		return i, nil
	}
	if len(g.ids) == MaxSize {
		return 0, fmt.Errorf("%w: more than %d node ids", ErrTooLarge, MaxSize)
	}
	i := len(g.ids)
	g.ids = append(g.ids, id)
	g.index[id] = i
	return i, nil
}

func (g *Hypergraph) endpoints(edgeID string, ids []string) (Set, error) {
	var s Set
	for _, id := range ids {
		if id == "" {
			return 0, fmt.Errorf("edge %s: %w", edgeID, ErrInvalidNodeID)
		}
		i, err := g.intern(id)
		if err != nil {
			return 0, err
		}
		s = s.With(i)
	}
	return s, nil
}

// Snapshot returns the full view: every declared node and every edge.
func (g *Hypergraph) Snapshot() Snapshot {
	var edges Set
	for i := range g.edges {
		edges = edges.With(i)
	}
	return Snapshot{g: g, nodes: g.declared, edges: edges}
}

// Nodes returns the declared nodes in declaration order.
func (g *Hypergraph) Nodes() []Node { return slices.Clone(g.nodes) }

// Edges returns the retained edges in input order.
func (g *Hypergraph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of declared nodes.
func (g *Hypergraph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of retained edges.
func (g *Hypergraph) EdgeCount() int { return len(g.edges) }

// Edge returns the edge at arena index i.
func (g *Hypergraph) Edge(i int) Edge { return g.edges[i] }

// NodeID returns the id at arena index i.
func (g *Hypergraph) NodeID(i int) string { return g.ids[i] }

// NodeIndex returns the arena index of id.
func (g *Hypergraph) NodeIndex(id string) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

// NodeSet converts node ids to a [Set].
func (g *Hypergraph) NodeSet(ids ...string) (Set, error) {
	var s Set
	for _, id := range ids {
		i, ok := g.index[id]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnknownNode, id)
		}
		s = s.With(i)
	}
	return s, nil
}

// EdgeSet converts edge ids to a [Set].
func (g *Hypergraph) EdgeSet(ids ...string) (Set, error) {
	var s Set
	for _, id := range ids {
		i, ok := g.edgeIndex[id]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnknownEdge, id)
		}
		s = s.With(i)
	}
	return s, nil
}

// IDs returns the node ids of s in arena order.
func (g *Hypergraph) IDs(s Set) []string {
	out := make([]string, 0, s.Len())
	for i := range s.All() {
		out = append(out, g.ids[i])
	}
	return out
}

// EdgeIDs returns the edge ids of s in input order.
func (g *Hypergraph) EdgeIDs(s Set) []string {
	out := make([]string, 0, s.Len())
	for i := range s.All() {
		out = append(out, g.edges[i].ID)
	}
	return out
}

// EdgesOf returns the edges of s in input order.
func (g *Hypergraph) EdgesOf(s Set) []Edge {
	out := make([]Edge, 0, s.Len())
	for i := range s.All() {
		out = append(out, g.edges[i])
	}
	return out
}

// CheckAcyclic reports whether any node can reach itself through outgoing
// hyperedges. It returns an error wrapping [ErrCycle] that names the first
// back edge found, or nil for an acyclic hypergraph.
//
// Every (source, target) pair of every hyperedge counts as a step, including
// pairs that involve dangling endpoint ids.
func (g *Hypergraph) CheckAcyclic() error {
	const (
		white = iota
		gray
		black
	)

	succ := make([]Set, len(g.ids))
	for e := range g.edges {
		for s := range g.sources[e].All() {
			succ[s] = succ[s].Union(g.targets[e])
		}
	}

	color := make([]int, len(g.ids))
	var back [2]int
	var dfs func(n int) bool
	dfs = func(n int) bool {
		color[n] = gray
		for c := range succ[n].All() {
			switch color[c] {
			case white:
				if dfs(c) {
					return true
				}
			case gray:
				back = [2]int{n, c}
				return true
			}
		}
		color[n] = black
		return false
	}

	for n := range g.ids {
		if color[n] == white && dfs(n) {
			return fmt.Errorf("%w: %s -> %s", ErrCycle, g.ids[back[0]], g.ids[back[1]])
		}
	}
	return nil
}
