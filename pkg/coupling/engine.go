package coupling

import (
	"context"
	stderrors "errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hypercouple/pkg/errors"
	"github.com/matzehuels/hypercouple/pkg/hypergraph"
	"github.com/matzehuels/hypercouple/pkg/observability"
)

// Config configures an [Engine].
type Config struct {
	// Limits bounds the exponential work of each call. The zero value
	// disables every bound; use [DefaultLimits] for sensible ceilings.
	Limits Limits

	// Parallelism is the number of top-level unblocking branches explored
	// concurrently by [FrontierExpiries]. Values below 2 run sequentially.
	// Output never depends on it.
	Parallelism int

	// Logger receives debug output. Nil discards it.
	Logger *log.Logger

	// Hooks receives coupling events. Nil uses the globally registered
	// [observability.Coupling] hooks.
	Hooks observability.CouplingHooks
}

// Engine runs coupling strategies. It holds no per-call state and is safe for
// concurrent use.
type Engine struct {
	limits      Limits
	parallelism int
	logger      *log.Logger
	hooksOpt    observability.CouplingHooks
}

// NewEngine returns an engine configured by cfg.
func NewEngine(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Engine{
		limits:      cfg.Limits,
		parallelism: cfg.Parallelism,
		logger:      logger,
		hooksOpt:    cfg.Hooks,
	}
}

// Limits returns the engine's ceilings.
func (e *Engine) Limits() Limits { return e.limits }

func (e *Engine) hooks() observability.CouplingHooks {
	if e.hooksOpt != nil {
		return e.hooksOpt
	}
	return observability.Coupling()
}

var defaultEngine = NewEngine(Config{Limits: DefaultLimits()})

// Apply runs the algorithm registered under id with [DefaultLimits].
//
// Unknown ids fail with an [*errors.UnknownAlgorithmError]. Empty input
// yields an empty, non-nil slice.
func Apply(id string, nodes []hypergraph.Node, edges []hypergraph.Edge) ([]Group, error) {
	return defaultEngine.Apply(context.Background(), id, nodes, edges)
}

// Apply resolves id and runs [Engine.Couple].
func (e *Engine) Apply(ctx context.Context, id string, nodes []hypergraph.Node, edges []hypergraph.Edge) ([]Group, error) {
	alg, err := ParseAlgorithm(id)
	if err != nil {
		return nil, err
	}
	return e.Couple(ctx, alg, nodes, edges)
}

// Couple runs alg over the raw node and edge lists.
//
// Edges without Sources or Targets are dropped and missing edge ids are
// synthesized as "edge-<index>". The real strategies reject cyclic input and
// input beyond the engine's limits. Either the complete result is returned or
// an error is, never a partial result.
func (e *Engine) Couple(ctx context.Context, alg Algorithm, nodes []hypergraph.Node, edges []hypergraph.Edge) (groups []Group, err error) {
	start := time.Now()
	e.hooks().OnCoupleStart(ctx, alg.ID(), len(nodes), len(edges))
	defer func() {
		e.hooks().OnCoupleComplete(ctx, alg.ID(), len(groups), time.Since(start), err)
	}()

	switch alg {
	case None:
		groups = identity(edges)
	case ProductiveExpiries, FrontierExpiries:
		groups, err = e.couple(ctx, alg, nodes, edges)
	default:
		return nil, &errors.UnknownAlgorithmError{ID: alg.ID()}
	}
	if err != nil {
		return nil, err
	}
	if groups == nil {
		groups = []Group{}
	}
	e.logger.Debug("coupled", "algorithm", alg.ID(), "groups", len(groups), "elapsed", time.Since(start))
	return groups, nil
}

func identity(edges []hypergraph.Edge) []Group {
	out := make([]Group, len(edges))
	for i, raw := range edges {
		out[i] = identityGroup(hypergraph.NormalizeEdge(raw, i))
	}
	return out
}

func (e *Engine) couple(ctx context.Context, alg Algorithm, nodes []hypergraph.Node, edges []hypergraph.Edge) ([]Group, error) {
	g, err := Build(nodes, edges)
	if err != nil {
		return nil, err
	}
	if err := e.limits.checkSize(g.NodeCount(), g.EdgeCount()); err != nil {
		return nil, err
	}

	s := g.Snapshot()
	r := newRun(e.limits)
	e.logger.Debug("hypergraph", "nodes", g.NodeCount(), "edges", g.EdgeCount(), "algorithm", alg.ID())

	if alg == ProductiveExpiries {
		return r.productive(ctx, s)
	}
	return e.frontierExpiries(ctx, r, s)
}

// Build constructs and validates a hypergraph for the coupling strategies.
// Structural problems and cycles are reported as INVALID_INPUT; inputs beyond
// the arena size as RESOURCE_EXCEEDED.
func Build(nodes []hypergraph.Node, edges []hypergraph.Edge) (*hypergraph.Hypergraph, error) {
	g, err := hypergraph.New(nodes, edges)
	if err != nil {
		if stderrors.Is(err, hypergraph.ErrTooLarge) {
			return nil, errors.Wrap(errors.ErrCodeResourceExceeded, err, "build hypergraph")
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "build hypergraph")
	}
	if err := g.CheckAcyclic(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "validate hypergraph")
	}
	return g, nil
}
