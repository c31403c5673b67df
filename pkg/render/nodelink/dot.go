package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/hypercouple/pkg/coupling"
	"github.com/matzehuels/hypercouple/pkg/hypergraph"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes node metadata in labels.
	// When false, only the node ID is shown.
	Detailed bool

	// ShowOriginal draws the input hyperedges in addition to coupled groups.
	// Identity groups always render as the original edges.
	ShowOriginal bool
}

const coupledColor = "#c0392b"

// ToDOT converts nodes, raw edges and coupling results to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
//
// Edges missing sources or targets are skipped. Coupled groups get the ids
// "coupled-<index>" in result order.
func ToDOT(nodes []hypergraph.Node, edges []hypergraph.Edge, groups []coupling.Group, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	seen := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		if seen[n.ID] {
			continue
		}
		seen[n.ID] = true
		fmt.Fprintf(&buf, "  %q [label=%q];\n", n.ID, fmtLabel(n, opts.Detailed))
	}

	coupled := slices.ContainsFunc(groups, func(g coupling.Group) bool { return g.Kind == coupling.KindCoupled })
	if opts.ShowOriginal || !coupled {
		buf.WriteString("\n")
		original := []string{"color=grey40"}
		if coupled {
			original = []string{"color=grey70", "style=dashed"}
		}
		for i, e := range edges {
			if !e.Complete() {
				continue
			}
			e = hypergraph.NormalizeEdge(e, i)
			writeHyperedge(&buf, e.ID, e.Sources, e.Targets, original)
		}
	}

	if coupled {
		buf.WriteString("\n")
		idx := 0
		for _, g := range groups {
			if g.Kind != coupling.KindCoupled {
				continue
			}
			attrs := []string{
				"color=\"" + coupledColor + "\"",
				"penwidth=3",
				fmt.Sprintf("tooltip=%q", strings.Join(underlyingIDs(g), ", ")),
			}
			writeHyperedge(&buf, "coupled-"+strconv.Itoa(idx), g.Sources, g.Targets, attrs)
			idx++
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// writeHyperedge draws a one-to-one hyperedge as a plain arrow and anything
// else through a junction point named after the edge.
func writeHyperedge(buf *bytes.Buffer, id string, sources, targets []string, attrs []string) {
	style := strings.Join(attrs, ", ")
	if len(sources) == 1 && len(targets) == 1 {
		fmt.Fprintf(buf, "  %q -> %q [%s, id=%q];\n", sources[0], targets[0], style, id)
		return
	}

	junction := "junction_" + id
	fmt.Fprintf(buf, "  %q [shape=point, width=0.08, label=\"\", id=%q];\n", junction, id)
	for _, s := range sources {
		fmt.Fprintf(buf, "  %q -> %q [%s, arrowhead=none];\n", s, junction, style)
	}
	for _, t := range targets {
		fmt.Fprintf(buf, "  %q -> %q [%s];\n", junction, t, style)
	}
}

func underlyingIDs(g coupling.Group) []string {
	ids := make([]string, len(g.UnderlyingEdges))
	for i, e := range g.UnderlyingEdges {
		ids[i] = e.ID
	}
	return ids
}

func fmtLabel(n hypergraph.Node, detailed bool) string {
	if label, ok := n.Meta["label"].(string); ok && label != "" && !detailed {
		return label
	}
	if !detailed {
		return n.ID
	}

	var parts []string
	for _, k := range slices.Sorted(maps.Keys(n.Meta)) {
		parts = append(parts, fmt.Sprintf("%s: %v", k, n.Meta[k]))
	}
	if len(parts) == 0 {
		return n.ID
	}
	return n.ID + "\n" + strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
