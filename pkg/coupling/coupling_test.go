package coupling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/hypercouple/pkg/errors"
	"github.com/matzehuels/hypercouple/pkg/hypergraph"
)

func fixtureNodes() []hypergraph.Node {
	return []hypergraph.Node{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}, {ID: "e"}}
}

func fixtureEdges() []hypergraph.Edge {
	e := func(id, src, dst string) hypergraph.Edge {
		return hypergraph.Edge{ID: id, Sources: []string{src}, Targets: []string{dst}}
	}
	return []hypergraph.Edge{e("ac", "a", "c"), e("bc", "b", "c"), e("ad", "a", "d"), e("bd", "b", "d"), e("be", "b", "e")}
}

func fixture(t *testing.T) *hypergraph.Hypergraph {
	t.Helper()
	g, err := Build(fixtureNodes(), fixtureEdges())
	require.NoError(t, err)
	return g
}

func edgeIDs(g Group) []string {
	ids := make([]string, len(g.UnderlyingEdges))
	for i, e := range g.UnderlyingEdges {
		ids[i] = e.ID
	}
	return ids
}

func partitionIDs(g *hypergraph.Hypergraph, u Unblocking) [][]string {
	out := make([][]string, len(u.Partitions))
	for i, p := range u.Partitions {
		out[i] = g.IDs(p)
	}
	return out
}

func TestComputeAllUnblockings(t *testing.T) {
	g := fixture(t)
	all := ComputeAllUnblockings(g.Snapshot())
	require.Len(t, all, 5)

	want := [][][]string{
		{{"a"}, {"b"}},
		{{"a"}, {"b"}},
		{{"a", "b"}},
		{{"b"}},
		{{"a"}},
	}
	for i, u := range all {
		assert.Equal(t, want[i], partitionIDs(g, u), "unblocking %d", i)
		assert.Len(t, u.Snapshots, len(u.Partitions)+1)
		assert.Equal(t, g.Snapshot(), u.Snapshots[0])
	}

	// The two refined unblockings pass through different final graphs.
	assert.Equal(t, []string{"a", "b"}, g.IDs(all[0].Snapshots[2].Nodes()))
	assert.Equal(t, []string{"b"}, g.IDs(all[1].Snapshots[2].Nodes()))
}

func TestUnblockingPartitionsMatchSteps(t *testing.T) {
	g := fixture(t)
	for _, u := range ComputeAllUnblockings(g.Snapshot()) {
		for i, p := range u.Partitions {
			before, after := u.Snapshots[i], u.Snapshots[i+1]
			removed := before.Nodes().Minus(after.Nodes())
			assert.Equal(t, p, before.UnblockedNodes(removed))
			assert.True(t, before.IsFrontier(removed))
		}
	}
}

func TestComputeAllUnblockingsBaseCases(t *testing.T) {
	noEdges, err := Build([]hypergraph.Node{{ID: "a"}, {ID: "b"}}, nil)
	require.NoError(t, err)
	assert.Empty(t, ComputeAllUnblockings(noEdges.Snapshot()))

	// A source-less edge leaves nothing blocked.
	unblocked, err := Build(
		[]hypergraph.Node{{ID: "a"}},
		[]hypergraph.Edge{{ID: "x", Sources: []string{}, Targets: []string{"a"}}},
	)
	require.NoError(t, err)
	assert.Empty(t, ComputeAllUnblockings(unblocked.Snapshot()))
}

func TestDistinctUnblockings(t *testing.T) {
	g := fixture(t)
	distinct := DistinctUnblockings(ComputeAllUnblockings(g.Snapshot()))
	require.Len(t, distinct, 4)

	var got [][][]string
	for _, u := range distinct {
		got = append(got, partitionIDs(g, u))
	}
	assert.Equal(t, [][][]string{
		{{"a"}, {"b"}},
		{{"a"}, {"b"}},
		{{"b"}},
		{{"a"}},
	}, got)
}

func TestRefines(t *testing.T) {
	u := func(parts ...hypergraph.Set) Unblocking { return Unblocking{Partitions: parts} }
	a, b, c, d := hypergraph.SetOf(0), hypergraph.SetOf(1), hypergraph.SetOf(2), hypergraph.SetOf(3)

	tests := []struct {
		name         string
		fine, coarse Unblocking
		want         bool
	}{
		{"merge first pair", u(a, b, c), u(a.Union(b), c), true},
		{"merge last pair", u(a, b, c), u(a, b.Union(c)), true},
		{"merge order ignored", u(b, a), u(a.Union(b)), true},
		{"non-adjacent merge", u(a, b, c), u(a.Union(c), b), false},
		{"prefix differs", u(d, b, c), u(a, b.Union(c)), false},
		{"suffix differs", u(a, b, c), u(a.Union(b), d), false},
		{"two more partitions", u(a, b, c, d), u(a.Union(b).Union(c), d), false},
		{"same length", u(a, b), u(a, b), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, refines(tt.fine, tt.coarse))
		})
	}
}

func TestReachableGraphs(t *testing.T) {
	g := fixture(t)
	graphs := ReachableGraphs(DistinctUnblockings(ComputeAllUnblockings(g.Snapshot())))

	edgeSets := make(map[hypergraph.Set]bool)
	for _, s := range graphs {
		edgeSets[s.Edges()] = true
	}
	be, err := g.EdgeSet("be")
	require.NoError(t, err)
	assert.Equal(t, map[hypergraph.Set]bool{
		g.Snapshot().Edges(): true,
		be:                   true,
		0:                    true,
	}, edgeSets)

	seen := make(map[hypergraph.Snapshot]bool)
	for _, s := range graphs {
		assert.False(t, seen[s], "duplicate snapshot")
		seen[s] = true
	}
}

func TestIsEffectivelyCoupled(t *testing.T) {
	g := fixture(t)
	graphs := ReachableGraphs(DistinctUnblockings(ComputeAllUnblockings(g.Snapshot())))

	set := func(ids ...string) hypergraph.Set {
		s, err := g.EdgeSet(ids...)
		require.NoError(t, err)
		return s
	}
	assert.True(t, IsEffectivelyCoupled(set("ac", "bc", "ad", "bd"), graphs))
	assert.True(t, IsEffectivelyCoupled(set("be"), graphs))
	assert.False(t, IsEffectivelyCoupled(set("ac", "be"), graphs))
	assert.True(t, IsEffectivelyCoupled(set("ac", "be"), nil), "vacuously coupled")
}

func TestFindMaximallyCoupledSets(t *testing.T) {
	g := fixture(t)
	graphs := ReachableGraphs(DistinctUnblockings(ComputeAllUnblockings(g.Snapshot())))

	eff := FindEffectivelyCoupledSets(graphs, g.Snapshot().Edges())
	assert.Len(t, eff, 16, "15 subsets of the first four edges plus {be}")

	maximal := FindMaximallyCoupledSets(eff)
	require.Len(t, maximal, 2)
	assert.Equal(t, []string{"ac", "bc", "ad", "bd"}, g.EdgeIDs(maximal[0]))
	assert.Equal(t, []string{"be"}, g.EdgeIDs(maximal[1]))

	for i, m1 := range maximal {
		for j, m2 := range maximal {
			if i != j {
				assert.False(t, m1.ProperSubsetOf(m2))
			}
		}
	}
}

func TestApplyFrontierExpiries(t *testing.T) {
	groups, err := Apply("frontier-expiries", fixtureNodes(), fixtureEdges())
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, KindCoupled, groups[0].Kind)
	assert.Equal(t, []string{"ac", "bc", "ad", "bd"}, edgeIDs(groups[0]))
	assert.Equal(t, []string{"a", "b"}, groups[0].Sources)
	assert.Equal(t, []string{"c", "d"}, groups[0].Targets)
	assert.Nil(t, groups[0].Frontier)

	assert.Equal(t, []string{"be"}, edgeIDs(groups[1]))
	assert.Equal(t, []string{"b"}, groups[1].Sources)
	assert.Equal(t, []string{"e"}, groups[1].Targets)
}

func TestApplyProductiveExpiries(t *testing.T) {
	groups, err := Apply("productive-expiries", fixtureNodes(), fixtureEdges())
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, []string{"ac", "bc", "ad", "bd"}, edgeIDs(groups[0]))
	assert.Equal(t, []string{"c", "d"}, groups[0].Frontier)
	assert.Equal(t, []string{"be"}, edgeIDs(groups[1]))
	assert.Equal(t, []string{"e"}, groups[1].Frontier)
}

func TestApplyNone(t *testing.T) {
	edges := append(fixtureEdges(), hypergraph.Edge{Sources: []string{"x"}})
	groups, err := Apply("none", fixtureNodes(), edges)
	require.NoError(t, err)
	require.Len(t, groups, len(edges), "identity keeps incomplete edges")

	for i, g := range groups {
		assert.Equal(t, KindIdentity, g.Kind)
		require.Len(t, g.UnderlyingEdges, 1)
		assert.Equal(t, g.UnderlyingEdges[0].Sources, g.Sources)
		assert.Equal(t, g.UnderlyingEdges[0].Targets, g.Targets)
		assert.Equal(t, i, g.UnderlyingEdges[0].Index)
	}
	assert.Equal(t, "edge-5", groups[5].UnderlyingEdges[0].ID)
	assert.Equal(t, []string{}, groups[5].Targets)
}

func TestApplyEmptyInput(t *testing.T) {
	for _, alg := range Algorithms() {
		t.Run(alg.ID(), func(t *testing.T) {
			groups, err := Apply(alg.ID(), nil, nil)
			require.NoError(t, err)
			assert.NotNil(t, groups)
			assert.Empty(t, groups)
		})
	}
}

func TestApplyNodesWithoutEdges(t *testing.T) {
	groups, err := Apply("frontier-expiries", fixtureNodes(), nil)
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestApplyUnknownAlgorithm(t *testing.T) {
	_, err := Apply("magic", fixtureNodes(), fixtureEdges())
	require.Error(t, err)
	assert.Equal(t, "Unknown coupling algorithm: magic", err.Error())
	assert.True(t, errors.Is(err, errors.ErrCodeUnknownAlgorithm))
}

func TestGroupBoundaryInvariant(t *testing.T) {
	for _, alg := range Algorithms() {
		groups, err := Apply(alg.ID(), fixtureNodes(), fixtureEdges())
		require.NoError(t, err)
		for _, g := range groups {
			want := NewGroup(g.Kind, g.UnderlyingEdges)
			assert.Equal(t, want.Sources, g.Sources, "%s sources", alg)
			assert.Equal(t, want.Targets, g.Targets, "%s targets", alg)
		}
	}
}

func TestNewGroupHidesInternalNodes(t *testing.T) {
	g := NewGroup(KindCoupled, []hypergraph.Edge{
		{ID: "ab", Sources: []string{"a"}, Targets: []string{"b"}},
		{ID: "bc", Sources: []string{"b"}, Targets: []string{"c", "d"}},
		{ID: "ac", Sources: []string{"a"}, Targets: []string{"c"}},
	})
	assert.Equal(t, []string{"a"}, g.Sources)
	assert.Equal(t, []string{"c", "d"}, g.Targets)
}

func TestCyclesRejected(t *testing.T) {
	nodes := []hypergraph.Node{{ID: "x"}, {ID: "y"}}
	edges := []hypergraph.Edge{
		{ID: "xy", Sources: []string{"x"}, Targets: []string{"y"}},
		{ID: "yx", Sources: []string{"y"}, Targets: []string{"x"}},
	}

	for _, id := range []string{"productive-expiries", "frontier-expiries"} {
		_, err := Apply(id, nodes, edges)
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "%s: %v", id, err)
		assert.ErrorIs(t, err, hypergraph.ErrCycle)
	}

	groups, err := Apply("none", nodes, edges)
	require.NoError(t, err)
	assert.Len(t, groups, 2)
}

func TestLimits(t *testing.T) {
	tests := []struct {
		name   string
		limits Limits
		bound  string
	}{
		{"nodes", Limits{MaxNodes: 4}, "max_nodes"},
		{"edges", Limits{MaxEdges: 4}, "max_edges"},
		{"results", Limits{MaxResults: 3}, "max_results"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := NewEngine(Config{Limits: tt.limits})
			_, err := eng.Couple(context.Background(), FrontierExpiries, fixtureNodes(), fixtureEdges())
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeResourceExceeded))

			var re *errors.ResourceExceededError
			require.ErrorAs(t, err, &re)
			assert.Equal(t, tt.bound, re.Bound)
		})
	}
}

func TestArenaOverflowIsResourceExceeded(t *testing.T) {
	nodes := make([]hypergraph.Node, hypergraph.MaxSize+1)
	for i := range nodes {
		nodes[i] = hypergraph.Node{ID: string(rune('A' + i))}
	}
	_, err := NewEngine(Config{}).Couple(context.Background(), FrontierExpiries, nodes, nil)
	assert.True(t, errors.Is(err, errors.ErrCodeResourceExceeded))
}

func TestCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEngine(Config{}).Couple(ctx, FrontierExpiries, fixtureNodes(), fixtureEdges())
	assert.True(t, errors.Is(err, errors.ErrCodeCanceled))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParallelMatchesSequential(t *testing.T) {
	nodes := []hypergraph.Node{{ID: "app"}, {ID: "cli"}, {ID: "web"}, {ID: "core"}, {ID: "log"}, {ID: "db"}}
	edges := []hypergraph.Edge{
		{ID: "app-core", Sources: []string{"app"}, Targets: []string{"core", "log"}},
		{ID: "cli-core", Sources: []string{"cli"}, Targets: []string{"core"}},
		{ID: "web-db", Sources: []string{"web"}, Targets: []string{"db"}},
		{ID: "web-log", Sources: []string{"web"}, Targets: []string{"log"}},
		{ID: "core-db", Sources: []string{"core"}, Targets: []string{"db"}},
	}

	ctx := context.Background()
	seq, err := NewEngine(Config{}).Couple(ctx, FrontierExpiries, nodes, edges)
	require.NoError(t, err)
	par, err := NewEngine(Config{Parallelism: 4}).Couple(ctx, FrontierExpiries, nodes, edges)
	require.NoError(t, err)
	assert.Equal(t, seq, par)

	var covered []string
	for _, g := range seq {
		covered = append(covered, edgeIDs(g)...)
	}
	assert.ElementsMatch(t, []string{"app-core", "cli-core", "web-db", "web-log", "core-db"}, covered,
		"maximal coupled sets partition the edges")
}

type recordingHooks struct {
	started, completed int
	raw, distinct      int
	lastErr            error
}

func (h *recordingHooks) OnCoupleStart(context.Context, string, int, int) { h.started++ }
func (h *recordingHooks) OnCoupleComplete(_ context.Context, _ string, _ int, _ time.Duration, err error) {
	h.completed++
	h.lastErr = err
}
func (h *recordingHooks) OnUnblockings(_ context.Context, raw, distinct int) {
	h.raw, h.distinct = raw, distinct
}

func TestEngineHooks(t *testing.T) {
	hooks := &recordingHooks{}
	eng := NewEngine(Config{Hooks: hooks})

	_, err := eng.Couple(context.Background(), FrontierExpiries, fixtureNodes(), fixtureEdges())
	require.NoError(t, err)
	assert.Equal(t, 1, hooks.started)
	assert.Equal(t, 1, hooks.completed)
	assert.Equal(t, 5, hooks.raw)
	assert.Equal(t, 4, hooks.distinct)

	_, err = eng.Couple(context.Background(), Algorithm(99), nil, nil)
	require.Error(t, err)
	assert.Equal(t, err, hooks.lastErr)
}
