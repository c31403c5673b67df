// Package io reads and writes hypergraph documents and coupling results.
//
// # Document Format
//
// A document has two top-level arrays and two optional display keys:
//
//	{
//	  "nodes": [
//	    {"id": "a", "label": "App"},
//	    {"id": "b"},
//	    {"id": "c"}
//	  ],
//	  "edges": [
//	    {"id": "ab", "sources": ["a"], "targets": ["b", "c"]},
//	    {"sources": ["b"], "targets": ["c"]}
//	  ],
//	  "height": "300px",
//	  "couplingAlgorithms": ["frontier-expiries", "none"]
//	}
//
// The same structure is accepted as YAML.
//
// # Node and Edge Fields
//
// Nodes require an "id". Edges accept an optional "id" and the "sources" and
// "targets" lists. Every other field (labels, positions, styling) is opaque
// and kept in the Meta map of the decoded node or edge, so it survives export.
//
// Edges are decoded leniently: an edge with a missing or null "sources" or
// "targets" is kept in [Document.Edges] with a nil slice, and dropped later
// when the hypergraph is built. Missing edge ids are synthesized at that point
// from the edge's position in the list.
//
// # Display Keys
//
//   - height: diagram height, defaults to [DefaultHeight]
//   - couplingAlgorithms: algorithm ids offered for the document; the first
//     one is the document's default
//
// # Import
//
// Use [Import] to read a file (format chosen by extension), [ReadJSON] or
// [ReadYAML] to read from any io.Reader:
//
//	doc, err := io.Import("graph.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Malformed input yields an INVALID_FORMAT error and structurally invalid
// fields an INVALID_INPUT error from the errors package.
//
// # Export
//
// [WriteJSON] writes a document back in the same format. [WriteGroups] writes
// coupling results as a JSON array of
// {type, underlyingEdges, sources, targets, frontier?} objects, with each
// underlying edge in document form.
package io
