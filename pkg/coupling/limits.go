package coupling

import (
	"github.com/matzehuels/hypercouple/pkg/errors"
)

// Default ceilings. Frontier enumeration visits 2^nodes candidate sets per
// recursion level and coupled-set search visits 2^edges.
const (
	DefaultMaxNodes   = 16
	DefaultMaxEdges   = 20
	DefaultMaxResults = 100_000
)

// Limits bounds the exponential work of one call. A zero field disables that
// bound; the hypergraph arena still caps both counts at 64.
type Limits struct {
	MaxNodes   int `toml:"max_nodes" json:"max_nodes"`
	MaxEdges   int `toml:"max_edges" json:"max_edges"`
	MaxResults int `toml:"max_results" json:"max_results"`
}

// DefaultLimits returns the default ceilings.
func DefaultLimits() Limits {
	return Limits{
		MaxNodes:   DefaultMaxNodes,
		MaxEdges:   DefaultMaxEdges,
		MaxResults: DefaultMaxResults,
	}
}

func (l Limits) checkSize(nodes, edges int) error {
	if l.MaxNodes > 0 && nodes > l.MaxNodes {
		return &errors.ResourceExceededError{Bound: "max_nodes", Limit: l.MaxNodes, Actual: nodes}
	}
	if l.MaxEdges > 0 && edges > l.MaxEdges {
		return &errors.ResourceExceededError{Bound: "max_edges", Limit: l.MaxEdges, Actual: edges}
	}
	return nil
}

func (l Limits) checkResults(n int) error {
	if l.MaxResults > 0 && n > l.MaxResults {
		return &errors.ResourceExceededError{Bound: "max_results", Limit: l.MaxResults, Actual: n}
	}
	return nil
}
