package coupling

import (
	"context"

	"github.com/matzehuels/hypercouple/pkg/hypergraph"
)

// productive emits one group per minimal productive frontier of s, built from
// the edges that frontier expires, followed by the groups of s without it.
func (r *run) productive(ctx context.Context, s hypergraph.Snapshot) ([]Group, error) {
	if err := r.check(ctx); err != nil {
		return nil, err
	}
	if s.IsEmpty() {
		return nil, nil
	}

	g := s.Graph()
	var out []Group
	for _, f := range s.MinimalProductiveFrontiers() {
		if expired := s.ExpiryEdges(f); !expired.IsEmpty() {
			grp := NewGroup(KindCoupled, g.EdgesOf(expired))
			grp.Frontier = g.IDs(f)
			out = append(out, grp)
			if err := r.produce(1); err != nil {
				return nil, err
			}
		}
		rest, err := r.productive(ctx, s.Without(f))
		if err != nil {
			return nil, err
		}
		out = append(out, rest...)
	}
	return out, nil
}

// frontierExpiries groups the edges of s into maximal sets that are never
// partially present in a graph reachable through a distinct unblocking.
func (e *Engine) frontierExpiries(ctx context.Context, r *run, s hypergraph.Snapshot) ([]Group, error) {
	all, err := r.unblockingsParallel(ctx, s, e.parallelism)
	if err != nil {
		return nil, err
	}
	distinct := DistinctUnblockings(all)
	graphs := ReachableGraphs(distinct)
	e.logger.Debug("unblockings", "raw", len(all), "distinct", len(distinct), "reachable", len(graphs))
	e.hooks().OnUnblockings(ctx, len(all), len(distinct))

	sets, err := findEffectivelyCoupledSets(ctx, graphs, s.Edges())
	if err != nil {
		return nil, r.check(ctx)
	}
	maximal := FindMaximallyCoupledSets(sets)
	e.logger.Debug("coupled sets", "effective", len(sets), "maximal", len(maximal))

	g := s.Graph()
	out := make([]Group, 0, len(maximal))
	for _, m := range maximal {
		out = append(out, NewGroup(KindCoupled, g.EdgesOf(m)))
	}
	return out, nil
}
