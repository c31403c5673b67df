package io

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"

	"github.com/matzehuels/hypercouple/pkg/coupling"
	"github.com/matzehuels/hypercouple/pkg/hypergraph"
)

type document struct {
	Nodes      []map[string]any `json:"nodes"`
	Edges      []map[string]any `json:"edges"`
	Height     string           `json:"height,omitempty"`
	Algorithms []string         `json:"couplingAlgorithms,omitempty"`
}

// Group is the JSON form of a [coupling.Group].
type Group struct {
	Type            string           `json:"type"`
	UnderlyingEdges []map[string]any `json:"underlyingEdges"`
	Sources         []string         `json:"sources"`
	Targets         []string         `json:"targets"`
	Frontier        []string         `json:"frontier,omitempty"`
}

// EncodeNode returns the document form of n: its metadata plus "id".
func EncodeNode(n hypergraph.Node) map[string]any {
	out := make(map[string]any, len(n.Meta)+1)
	maps.Copy(out, n.Meta)
	out[keyID] = n.ID
	return out
}

// EncodeEdge returns the document form of e. Missing endpoint lists stay
// missing.
func EncodeEdge(e hypergraph.Edge) map[string]any {
	out := make(map[string]any, len(e.Meta)+3)
	maps.Copy(out, e.Meta)
	if e.ID != "" {
		out[keyID] = e.ID
	}
	if e.Sources != nil {
		out[keySources] = e.Sources
	}
	if e.Targets != nil {
		out[keyTargets] = e.Targets
	}
	return out
}

// EncodeGroups converts coupling results to their JSON form. The result is
// never nil.
func EncodeGroups(groups []coupling.Group) []Group {
	out := make([]Group, len(groups))
	for i, g := range groups {
		edges := make([]map[string]any, len(g.UnderlyingEdges))
		for j, e := range g.UnderlyingEdges {
			edges[j] = EncodeEdge(e)
		}
		out[i] = Group{
			Type:            string(g.Kind),
			UnderlyingEdges: edges,
			Sources:         nonNil(g.Sources),
			Targets:         nonNil(g.Targets),
			Frontier:        g.Frontier,
		}
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// WriteJSON encodes a document as JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(doc *Document, w io.Writer) error {
	out := document{
		Nodes:      make([]map[string]any, len(doc.Nodes)),
		Edges:      make([]map[string]any, len(doc.Edges)),
		Algorithms: doc.Algorithms,
	}
	if doc.Height != DefaultHeight {
		out.Height = doc.Height
	}
	for i, n := range doc.Nodes {
		out.Nodes[i] = EncodeNode(n)
	}
	for i, e := range doc.Edges {
		out.Edges[i] = EncodeEdge(e)
	}
	return encode(w, out)
}

// WriteGroups encodes coupling results as a JSON array and writes it to w.
func WriteGroups(groups []coupling.Group, w io.Writer) error {
	return encode(w, EncodeGroups(groups))
}

// ExportJSON writes a document to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(doc *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(doc, f)
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
