// Package pipeline provides the load → couple → render pipeline for
// hypercouple.
//
// This package implements the complete pipeline used by the CLI and the HTTP
// API. By centralizing this logic, both entry points resolve algorithms,
// log, and render the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read a JSON or YAML hypergraph document
//  2. Couple: Run a coupling algorithm over the document's nodes and edges
//  3. Render: Generate output in various formats (SVG, DOT, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(engine, logger)
//	result, err := runner.ExecuteFile(ctx, "graph.yaml", pipeline.Options{
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// # Algorithm Resolution
//
// The algorithm is taken from [Options.Algorithm] when set, otherwise from the
// first entry of the document's couplingAlgorithms list, otherwise from
// [Runner.DefaultAlgorithm].
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hypercouple/pkg/coupling"
	hio "github.com/matzehuels/hypercouple/pkg/io"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatDOT:  true,
	FormatJSON: true,
}

// Options contains the configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Algorithm is a registry id. Empty means resolve from the document.
	Algorithm string `json:"algorithm,omitempty"`

	// Render options
	Formats      []string `json:"formats,omitempty"`
	Detailed     bool     `json:"detailed,omitempty"`
	ShowOriginal bool     `json:"show_original,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Document  *hio.Document
	Algorithm coupling.Algorithm
	Groups    []coupling.Group

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	GroupCount int
	LoadTime   time.Duration
	CoupleTime time.Duration
	RenderTime time.Duration
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, dot, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks the options and fills in defaults.
// Calling it more than once has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Algorithm != "" {
		if _, err := coupling.ParseAlgorithm(o.Algorithm); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}
