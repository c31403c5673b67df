package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hypercouple/pkg/coupling"
	hio "github.com/matzehuels/hypercouple/pkg/io"
	"github.com/matzehuels/hypercouple/pkg/observability"
	"github.com/matzehuels/hypercouple/pkg/render/nodelink"
)

// Runner executes pipeline stages with a shared engine and logger.
//
// The Runner stores no pipeline results. Multiple goroutines can safely use
// the same Runner with different options.
type Runner struct {
	Engine *coupling.Engine
	Logger *log.Logger

	// DefaultAlgorithm is used when neither the options nor the document
	// name an algorithm.
	DefaultAlgorithm coupling.Algorithm
}

// NewRunner creates a runner around engine.
// If engine is nil, an engine with [coupling.DefaultLimits] is used.
// If logger is nil, the default logger is used.
func NewRunner(engine *coupling.Engine, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	if engine == nil {
		engine = coupling.NewEngine(coupling.Config{Limits: coupling.DefaultLimits(), Logger: logger})
	}
	return &Runner{
		Engine:           engine,
		Logger:           logger,
		DefaultAlgorithm: coupling.DefaultAlgorithm,
	}
}

// Load reads the document at path.
func (r *Runner) Load(ctx context.Context, path string) (*hio.Document, error) {
	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, path)

	doc, err := hio.Import(path)

	var nodes, edges int
	if doc != nil {
		nodes, edges = len(doc.Nodes), len(doc.Edges)
	}
	observability.Pipeline().OnLoadComplete(ctx, path, nodes, edges, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.Logger.Debug("loaded document", "path", path, "nodes", nodes, "edges", edges)
	return doc, nil
}

// ResolveAlgorithm picks the algorithm for doc, see the package
// documentation.
func (r *Runner) ResolveAlgorithm(doc *hio.Document, id string) (coupling.Algorithm, error) {
	if id == "" && doc != nil {
		id = doc.DefaultAlgorithm()
	}
	if id == "" {
		return r.DefaultAlgorithm, nil
	}
	return coupling.ParseAlgorithm(id)
}

// Couple runs the resolved algorithm over doc.
func (r *Runner) Couple(ctx context.Context, doc *hio.Document, opts Options) (coupling.Algorithm, []coupling.Group, error) {
	alg, err := r.ResolveAlgorithm(doc, opts.Algorithm)
	if err != nil {
		return 0, nil, err
	}
	groups, err := r.Engine.Couple(ctx, alg, doc.Nodes, doc.Edges)
	if err != nil {
		return alg, nil, err
	}
	return alg, groups, nil
}

// Render produces one artifact per requested format.
func (r *Runner) Render(ctx context.Context, doc *hio.Document, groups []coupling.Group, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var dot string
	for _, format := range opts.Formats {
		start := time.Now()
		observability.Pipeline().OnRenderStart(ctx, format)

		var data []byte
		var err error
		switch format {
		case FormatJSON:
			var buf bytes.Buffer
			err = hio.WriteGroups(groups, &buf)
			data = buf.Bytes()
		case FormatDOT, FormatSVG:
			if dot == "" {
				dot = nodelink.ToDOT(doc.Nodes, doc.Edges, groups, nodelink.Options{
					Detailed:     opts.Detailed,
					ShowOriginal: opts.ShowOriginal,
				})
			}
			if format == FormatDOT {
				data = []byte(dot)
			} else {
				data, err = nodelink.RenderSVG(ctx, dot)
			}
		}

		observability.Pipeline().OnRenderComplete(ctx, format, time.Since(start), err)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// Execute runs the couple → render stages over an already loaded document.
func (r *Runner) Execute(ctx context.Context, doc *hio.Document, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Document: doc,
		Stats: Stats{
			NodeCount: len(doc.Nodes),
			EdgeCount: len(doc.Edges),
		},
	}

	// Stage 2: Couple
	coupleStart := time.Now()
	alg, groups, err := r.Couple(ctx, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("couple: %w", err)
	}
	result.Algorithm = alg
	result.Groups = groups
	result.Stats.GroupCount = len(groups)
	result.Stats.CoupleTime = time.Since(coupleStart)

	r.Logger.Info("coupled edges",
		"algorithm", alg.ID(),
		"groups", len(groups),
		"duration", result.Stats.CoupleTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := r.Render(ctx, doc, groups, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ExecuteFile runs the complete load → couple → render pipeline.
func (r *Runner) ExecuteFile(ctx context.Context, path string, opts Options) (*Result, error) {
	loadStart := time.Now()
	doc, err := r.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	loadTime := time.Since(loadStart)

	result, err := r.Execute(ctx, doc, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = loadTime
	return result, nil
}
