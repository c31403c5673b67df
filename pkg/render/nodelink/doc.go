// Package nodelink renders hypergraphs and their coupled groups as node-link
// diagrams.
//
// # Overview
//
// This package produces directed graph visualizations using Graphviz, where
// nodes appear as boxes connected by arrows. A hyperedge with one source and
// one target is drawn as a plain arrow. Any other hyperedge is drawn through a
// small junction point: sources connect to the junction, and the junction
// fans out to the targets.
//
// Coupled groups are drawn as macro-edges between their boundary sources and
// targets, in a heavier accent style, with the ids of their underlying edges
// in the tooltip. Identity groups are drawn like plain hyperedges.
//
// # Usage
//
// Convert to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(nodes, edges, groups, nodelink.Options{ShowOriginal: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: node labels include all metadata
//   - ShowOriginal: draw the original hyperedges beneath coupled groups
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
