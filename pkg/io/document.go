package io

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/matzehuels/hypercouple/pkg/errors"
	"github.com/matzehuels/hypercouple/pkg/hypergraph"
)

// DefaultHeight is the diagram height used when a document sets none.
const DefaultHeight = "400px"

// Document is a decoded hypergraph document.
type Document struct {
	Nodes []hypergraph.Node
	Edges []hypergraph.Edge

	// Height is the display height, [DefaultHeight] when unset.
	Height string

	// Algorithms lists the coupling algorithm ids offered for the document.
	Algorithms []string
}

// DefaultAlgorithm returns the first listed algorithm id, or "" when the
// document lists none.
func (d *Document) DefaultAlgorithm() string {
	if len(d.Algorithms) == 0 {
		return ""
	}
	return d.Algorithms[0]
}

const (
	keyNodes      = "nodes"
	keyEdges      = "edges"
	keyHeight     = "height"
	keyAlgorithms = "couplingAlgorithms"
	keyID         = "id"
	keySources    = "sources"
	keyTargets    = "targets"
)

// fromMap converts a generically decoded document.
func fromMap(raw map[string]any) (*Document, error) {
	doc := &Document{Height: DefaultHeight}

	if h, ok := raw[keyHeight]; ok && h != nil {
		doc.Height = scalar(h)
	}
	if algs, ok := raw[keyAlgorithms]; ok && algs != nil {
		ids, err := stringList(algs)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", keyAlgorithms)
		}
		doc.Algorithms = ids
	}

	nodes, err := objectList(raw[keyNodes])
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", keyNodes)
	}
	for i, obj := range nodes {
		n, err := decodeNode(obj)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "node %d", i)
		}
		doc.Nodes = append(doc.Nodes, n)
	}

	edges, err := objectList(raw[keyEdges])
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s", keyEdges)
	}
	for i, obj := range edges {
		e, err := decodeEdge(obj)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "edge %d", i)
		}
		e.Index = i
		doc.Edges = append(doc.Edges, e)
	}
	return doc, nil
}

func decodeNode(obj map[string]any) (hypergraph.Node, error) {
	id, ok := obj[keyID]
	if !ok || id == nil {
		return hypergraph.Node{}, fmt.Errorf("missing %q", keyID)
	}
	return hypergraph.Node{ID: scalar(id), Meta: meta(obj, keyID)}, nil
}

func decodeEdge(obj map[string]any) (hypergraph.Edge, error) {
	var e hypergraph.Edge
	if id, ok := obj[keyID]; ok && id != nil {
		e.ID = scalar(id)
	}
	var err error
	if e.Sources, err = endpointList(obj[keySources]); err != nil {
		return e, fmt.Errorf("%s: %w", keySources, err)
	}
	if e.Targets, err = endpointList(obj[keyTargets]); err != nil {
		return e, fmt.Errorf("%s: %w", keyTargets, err)
	}
	e.Meta = meta(obj, keyID, keySources, keyTargets)
	return e, nil
}

// endpointList keeps the distinction between a missing list (nil) and an
// empty one.
func endpointList(v any) ([]string, error) {
	if v == nil {
		return nil, nil
	}
	ids, err := stringList(v)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func objectList(v any) ([]map[string]any, error) {
	if v == nil {
		return nil, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list, got %T", v)
	}
	out := make([]map[string]any, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("item %d: expected an object, got %T", i, item)
		}
		out[i] = obj
	}
	return out, nil
}

func stringList(v any) ([]string, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list, got %T", v)
	}
	var out []string
	for i, item := range items {
		switch item.(type) {
		case string, int, int64, float64, bool:
			out = append(out, scalar(item))
		default:
			return nil, fmt.Errorf("item %d: expected an id, got %T", i, item)
		}
	}
	return out, nil
}

// scalar renders YAML and JSON scalars as ids, so `id: 1` and "1" agree.
func scalar(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

func meta(obj map[string]any, skip ...string) hypergraph.Metadata {
	var m hypergraph.Metadata
	for k, v := range obj {
		if slices.Contains(skip, k) {
			continue
		}
		if m == nil {
			m = make(hypergraph.Metadata)
		}
		m[k] = v
	}
	return m
}
