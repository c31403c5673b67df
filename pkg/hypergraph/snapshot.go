package hypergraph

import "slices"

// Snapshot is a view over a [Hypergraph]: the nodes and edges still present
// after some sequence of removals.
//
// Snapshot is a comparable value. Copying it is a clone, and two snapshots
// over the same arena are equal exactly when they hold the same nodes and
// edges, so snapshots can be used as map keys.
type Snapshot struct {
	g     *Hypergraph
	nodes Set
	edges Set
}

// Graph returns the arena the snapshot views.
func (s Snapshot) Graph() *Hypergraph { return s.g }

// Nodes returns the present node set.
func (s Snapshot) Nodes() Set { return s.nodes }

// Edges returns the present edge set.
func (s Snapshot) Edges() Set { return s.edges }

// NodeCount returns the number of present nodes.
func (s Snapshot) NodeCount() int { return s.nodes.Len() }

// EdgeCount returns the number of present edges.
func (s Snapshot) EdgeCount() int { return s.edges.Len() }

// IsEmpty reports whether no edges remain.
func (s Snapshot) IsEmpty() bool { return s.edges.IsEmpty() }

// Clone returns an independent copy of s.
func (s Snapshot) Clone() Snapshot { return s }

// RemoveNodes deletes the nodes in rm and every edge with a source or target
// in rm.
func (s *Snapshot) RemoveNodes(rm Set) {
	s.edges = s.edges.Minus(s.ExpiryEdges(rm))
	s.nodes = s.nodes.Minus(rm)
}

// Without returns a copy of s with rm removed, see [Snapshot.RemoveNodes].
func (s Snapshot) Without(rm Set) Snapshot {
	s.RemoveNodes(rm)
	return s
}

func (s Snapshot) sources() Set {
	var out Set
	for e := range s.edges.All() {
		out = out.Union(s.g.sources[e])
	}
	return out
}

// Leaves returns the present nodes that source no present edge.
func (s Snapshot) Leaves() Set { return s.nodes.Minus(s.sources()) }

// Blocked returns the present nodes that still source at least one edge.
func (s Snapshot) Blocked() Set { return s.nodes.Intersect(s.sources()) }

// Descendants returns the reflexive-transitive closure of n over the present
// edges. Targets that are not declared nodes are included.
func (s Snapshot) Descendants(n int) Set {
	seen := SetOf(n)
	for {
		next := seen
		for e := range s.edges.All() {
			if s.g.sources[e].Overlaps(seen) {
				next = next.Union(s.g.targets[e])
			}
		}
		if next == seen {
			return seen
		}
		seen = next
	}
}

// IsFrontier reports whether set contains the descendants of each of its
// members.
//
// A set holds all descendants of its members exactly when it is closed under
// one step, so the check is a single pass over the present edges.
func (s Snapshot) IsFrontier(set Set) bool {
	for e := range s.edges.All() {
		if s.g.sources[e].Overlaps(set) && !s.g.targets[e].SubsetOf(set) {
			return false
		}
	}
	return true
}

// UnblockedNodes returns the nodes that are blocked in s, are not in set, and
// become leaves once set is removed.
func (s Snapshot) UnblockedNodes(set Set) Set {
	before := s.Blocked().Minus(set)
	return before.Intersect(s.Without(set).Leaves())
}

// IsProductiveExpiry reports whether removing set unblocks at least one node.
func (s Snapshot) IsProductiveExpiry(set Set) bool {
	return !s.UnblockedNodes(set).IsEmpty()
}

// ExpiryEdges returns the present edges with at least one source or target in
// set.
func (s Snapshot) ExpiryEdges(set Set) Set {
	var out Set
	for e := range s.edges.All() {
		if s.g.sources[e].Overlaps(set) || s.g.targets[e].Overlaps(set) {
			out = out.With(e)
		}
	}
	return out
}

// AllFrontiers returns every non-empty frontier in the enumeration order of
// [Subsets]. It examines 2^n - 1 candidate sets for n present nodes.
func (s Snapshot) AllFrontiers() []Set {
	var out []Set
	for sub := range Subsets(s.nodes) {
		if s.IsFrontier(sub) {
			out = append(out, sub)
		}
	}
	return out
}

// ProductiveFrontiers returns the frontiers whose removal unblocks at least
// one node, in the order of [Snapshot.AllFrontiers].
func (s Snapshot) ProductiveFrontiers() []Set {
	var out []Set
	for _, f := range s.AllFrontiers() {
		if s.IsProductiveExpiry(f) {
			out = append(out, f)
		}
	}
	return out
}

// MinimalProductiveFrontiers returns the productive frontiers that do not
// strictly contain another productive frontier.
func (s Snapshot) MinimalProductiveFrontiers() []Set {
	return Minimal(s.ProductiveFrontiers())
}

// Minimal keeps the sets that are not a proper superset of another set in
// sets. Order is preserved.
func Minimal(sets []Set) []Set {
	return extremal(sets, func(a, b Set) bool { return b.ProperSubsetOf(a) }, func(a, b Set) int {
		return a.Len() - b.Len()
	})
}

// Maximal keeps the sets that are not a proper subset of another set in sets.
// Order is preserved.
func Maximal(sets []Set) []Set {
	return extremal(sets, func(a, b Set) bool { return a.ProperSubsetOf(b) }, func(a, b Set) int {
		return b.Len() - a.Len()
	})
}

// extremal visits sets from the most to the least extreme size, so each
// candidate only has to be compared against the extremal sets kept so far.
func extremal(sets []Set, dominated func(a, b Set) bool, bySize func(a, b Set) int) []Set {
	order := make([]int, len(sets))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(i, j int) int { return bySize(sets[i], sets[j]) })

	keep := make([]bool, len(sets))
	var kept []Set
	for _, i := range order {
		if !slices.ContainsFunc(kept, func(k Set) bool { return dominated(sets[i], k) }) {
			keep[i] = true
			kept = append(kept, sets[i])
		}
	}

	var out []Set
	for i, s := range sets {
		if keep[i] {
			out = append(out, s)
		}
	}
	return out
}
