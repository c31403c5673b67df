// Package pkg provides the libraries behind hypercouple.
//
// # Overview
//
// Hypercouple finds the hyperedges of a directed hypergraph that always
// expire together, so a dependency diagram can draw each such group as one
// macro-edge. The pkg directory is organized into three areas:
//
//  1. Model and algorithms: [hypergraph], [coupling]
//  2. Input and output: [io], [render/nodelink]
//  3. Orchestration and serving: [pipeline], [api], [observability]
//
// # Architecture
//
// The typical data flow:
//
//	JSON/YAML document
//	         ↓
//	    [io].Import  →  nodes, edges
//	         ↓
//	[coupling].Engine  →  []Group
//	         ↓
//	[render/nodelink]  →  DOT / SVG
//
// [pipeline] runs these stages for both the CLI and the HTTP API.
//
// [hypergraph]: github.com/matzehuels/hypercouple/pkg/hypergraph
// [coupling]: github.com/matzehuels/hypercouple/pkg/coupling
// [io]: github.com/matzehuels/hypercouple/pkg/io
// [render/nodelink]: github.com/matzehuels/hypercouple/pkg/render/nodelink
// [pipeline]: github.com/matzehuels/hypercouple/pkg/pipeline
// [api]: github.com/matzehuels/hypercouple/pkg/api
// [observability]: github.com/matzehuels/hypercouple/pkg/observability
package pkg
