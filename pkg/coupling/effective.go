package coupling

import (
	"context"

	"github.com/matzehuels/hypercouple/pkg/hypergraph"
)

// IsEffectivelyCoupled reports whether every graph holds either all of edges
// or none of them.
func IsEffectivelyCoupled(edges hypergraph.Set, graphs []hypergraph.Snapshot) bool {
	for _, g := range graphs {
		present := g.Edges().Intersect(edges)
		if present != 0 && present != edges {
			return false
		}
	}
	return true
}

// FindEffectivelyCoupledSets returns every non-empty subset of all that is
// effectively coupled across graphs, in [hypergraph.Subsets] order. It
// examines 2^m - 1 subsets for m edges.
func FindEffectivelyCoupledSets(graphs []hypergraph.Snapshot, all hypergraph.Set) []hypergraph.Set {
	out, _ := findEffectivelyCoupledSets(context.Background(), graphs, all)
	return out
}

// FindMaximallyCoupledSets keeps the sets that are not a proper subset of
// another set in sets.
func FindMaximallyCoupledSets(sets []hypergraph.Set) []hypergraph.Set {
	return hypergraph.Maximal(sets)
}

// ctxCheckInterval is how many subsets are examined between context checks.
const ctxCheckInterval = 1 << 12

func findEffectivelyCoupledSets(ctx context.Context, graphs []hypergraph.Snapshot, all hypergraph.Set) ([]hypergraph.Set, error) {
	var out []hypergraph.Set
	n := 0
	for sub := range hypergraph.Subsets(all) {
		if n++; n%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if IsEffectivelyCoupled(sub, graphs) {
			out = append(out, sub)
		}
	}
	return out, nil
}
