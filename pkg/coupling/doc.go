// Package coupling decides which hyperedges of a small dependency hypergraph
// must be drawn as one indivisible macro-edge.
//
// # Strategies
//
// The set of strategies is the closed [Algorithm] enumeration:
//
//   - [None] wraps every input edge in its own identity group. It performs no
//     graph construction or validation.
//   - [ProductiveExpiries] walks every minimal productive frontier. Each one
//     contributes a group of the edges its removal expires, and the strategy
//     recurses on the remaining graph. Overlapping groups are possible.
//   - [FrontierExpiries] is the default. It enumerates every unblocking,
//     drops unblockings that a finer one refines, collects every graph those
//     unblockings pass through, and returns the maximal edge sets that are
//     never partially present in any of them.
//
// # Groups
//
// A [Group] exposes only its boundary: sources that are never targets inside
// the group and targets that are never sources. The underlying edges are kept
// for provenance.
//
// # Limits
//
// Frontier enumeration is exponential in the node count and coupled-set search
// is exponential in the edge count. An [Engine] checks its [Limits] before the
// exponential steps start and fails with a RESOURCE_EXCEEDED error from
// [github.com/matzehuels/hypercouple/pkg/errors] instead of running unbounded.
//
// # Usage
//
//	groups, err := coupling.Apply("frontier-expiries", nodes, edges)
//
//	eng := coupling.NewEngine(coupling.Config{
//	    Limits:      coupling.DefaultLimits(),
//	    Parallelism: runtime.NumCPU(),
//	    Logger:      logger,
//	})
//	groups, err = eng.Couple(ctx, coupling.FrontierExpiries, nodes, edges)
package coupling
