package coupling

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/hypercouple/pkg/errors"
	"github.com/matzehuels/hypercouple/pkg/hypergraph"
)

// Unblocking is one ordered decomposition of a hypergraph's blocked nodes.
//
// Partitions[i] holds the nodes unblocked by the i-th frontier removal.
// Snapshots has one more entry than Partitions: the starting graph followed by
// the graph left after each removal.
type Unblocking struct {
	Partitions []hypergraph.Set
	Snapshots  []hypergraph.Snapshot
}

// ComputeAllUnblockings enumerates every unblocking of s by recursively
// removing each productive frontier. It applies no limits.
func ComputeAllUnblockings(s hypergraph.Snapshot) []Unblocking {
	out, _ := newRun(Limits{}).unblockings(context.Background(), s)
	return out
}

// DistinctUnblockings drops every unblocking that a finer one refines by
// splitting a single partition into two consecutive steps. Order is preserved.
func DistinctUnblockings(all []Unblocking) []Unblocking {
	var out []Unblocking
	for _, u := range all {
		if !slices.ContainsFunc(all, func(finer Unblocking) bool { return refines(finer, u) }) {
			out = append(out, u)
		}
	}
	return out
}

// refines reports whether fine has exactly one more partition than coarse and
// merging fine's partitions i and i+1 for some i reproduces coarse.
func refines(fine, coarse Unblocking) bool {
	f, c := fine.Partitions, coarse.Partitions
	if len(f) != len(c)+1 {
		return false
	}
	for i := range c {
		if f[i].Union(f[i+1]) == c[i] &&
			slices.Equal(f[:i], c[:i]) &&
			slices.Equal(f[i+2:], c[i+1:]) {
			return true
		}
	}
	return false
}

// ReachableGraphs collects the distinct snapshots visited by us, in first-seen
// order.
func ReachableGraphs(us []Unblocking) []hypergraph.Snapshot {
	seen := make(map[hypergraph.Snapshot]struct{})
	var out []hypergraph.Snapshot
	for _, u := range us {
		for _, s := range u.Snapshots {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}

// run holds the state of one coupling call: its limits, the number of results
// produced so far, and unblockings already computed for a snapshot.
type run struct {
	limits   Limits
	produced atomic.Int64

	mu   sync.Mutex
	memo map[hypergraph.Snapshot][]Unblocking
}

func newRun(limits Limits) *run {
	return &run{limits: limits, memo: make(map[hypergraph.Snapshot][]Unblocking)}
}

func (r *run) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeCanceled, err, "coupling canceled")
	}
	return nil
}

func (r *run) produce(n int) error {
	return r.limits.checkResults(int(r.produced.Add(int64(n))))
}

func (r *run) lookup(s hypergraph.Snapshot) ([]Unblocking, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	us, ok := r.memo[s]
	return us, ok
}

func (r *run) store(s hypergraph.Snapshot, us []Unblocking) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.memo[s] = us
}

func (r *run) unblockings(ctx context.Context, s hypergraph.Snapshot) ([]Unblocking, error) {
	return r.unblockingsParallel(ctx, s, 1)
}

// unblockingsParallel explores the productive frontiers of s with up to
// parallelism branches at once. Branch results are concatenated in frontier
// order.
func (r *run) unblockingsParallel(ctx context.Context, s hypergraph.Snapshot, parallelism int) ([]Unblocking, error) {
	if err := r.check(ctx); err != nil {
		return nil, err
	}
	if s.IsEmpty() || s.Blocked().IsEmpty() {
		return nil, nil
	}
	if us, ok := r.lookup(s); ok {
		return us, nil
	}

	frontiers := s.ProductiveFrontiers()
	branches := make([][]Unblocking, len(frontiers))

	if parallelism > 1 && len(frontiers) > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(parallelism)
		for i, f := range frontiers {
			g.Go(func() error {
				us, err := r.branch(gctx, s, f)
				branches[i] = us
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i, f := range frontiers {
			us, err := r.branch(ctx, s, f)
			if err != nil {
				return nil, err
			}
			branches[i] = us
		}
	}

	out := slices.Concat(branches...)
	r.store(s, out)
	return out, nil
}

func (r *run) branch(ctx context.Context, s hypergraph.Snapshot, frontier hypergraph.Set) ([]Unblocking, error) {
	unblocked := s.UnblockedNodes(frontier)
	if unblocked.IsEmpty() {
		return nil, nil
	}
	rest := s.Without(frontier)
	tail, err := r.unblockings(ctx, rest)
	if err != nil {
		return nil, err
	}

	var out []Unblocking
	if len(tail) == 0 {
		out = []Unblocking{{
			Partitions: []hypergraph.Set{unblocked},
			Snapshots:  []hypergraph.Snapshot{s, rest},
		}}
	} else {
		out = make([]Unblocking, 0, len(tail))
		for _, u := range tail {
			out = append(out, Unblocking{
				Partitions: append([]hypergraph.Set{unblocked}, u.Partitions...),
				Snapshots:  append([]hypergraph.Snapshot{s}, u.Snapshots...),
			})
		}
	}
	if err := r.produce(len(out)); err != nil {
		return nil, err
	}
	return out, nil
}
