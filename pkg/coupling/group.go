package coupling

import (
	"slices"

	"github.com/matzehuels/hypercouple/pkg/hypergraph"
)

// Kind tags a [Group] with the strategy family that produced it.
type Kind string

const (
	// KindIdentity marks a singleton group produced by [None].
	KindIdentity Kind = "identity"
	// KindCoupled marks a group produced by a real coupling strategy.
	KindCoupled Kind = "coupled"
)

// Group is a set of hyperedges that expire together, drawn as one macro-edge.
//
// Sources and Targets are the boundary of the group: nodes that are a source
// of some underlying edge but never a target within the group, and the other
// way around. Nodes passed through inside the group are hidden.
type Group struct {
	Kind            Kind
	UnderlyingEdges []hypergraph.Edge
	Sources         []string
	Targets         []string

	// Frontier is the node set whose expiry produced the group. Only
	// productive-expiries groups carry it.
	Frontier []string
}

// NewGroup builds a group over edges and derives its boundary. Boundary ids
// keep the order in which they are first seen across the edges.
func NewGroup(kind Kind, edges []hypergraph.Edge) Group {
	var allSources, allTargets []string
	for _, e := range edges {
		allSources = appendUnique(allSources, e.Sources...)
		allTargets = appendUnique(allTargets, e.Targets...)
	}
	return Group{
		Kind:            kind,
		UnderlyingEdges: slices.Clone(edges),
		Sources:         minus(allSources, allTargets),
		Targets:         minus(allTargets, allSources),
	}
}

// identityGroup wraps one raw edge. Missing endpoint lists become empty.
func identityGroup(e hypergraph.Edge) Group {
	if e.Sources == nil {
		e.Sources = []string{}
	}
	if e.Targets == nil {
		e.Targets = []string{}
	}
	return Group{
		Kind:            KindIdentity,
		UnderlyingEdges: []hypergraph.Edge{e},
		Sources:         slices.Clone(e.Sources),
		Targets:         slices.Clone(e.Targets),
	}
}

func appendUnique(dst []string, ids ...string) []string {
	for _, id := range ids {
		if !slices.Contains(dst, id) {
			dst = append(dst, id)
		}
	}
	return dst
}

func minus(a, b []string) []string {
	out := make([]string, 0, len(a))
	for _, id := range a {
		if !slices.Contains(b, id) {
			out = append(out, id)
		}
	}
	return out
}
