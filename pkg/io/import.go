package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/hypercouple/pkg/errors"
)

// Format identifies a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension. Anything other than
// .yaml or .yml is read as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Read decodes a document from r in the given format.
func Read(r io.Reader, f Format) (*Document, error) {
	if f == FormatYAML {
		return ReadYAML(r)
	}
	return ReadJSON(r)
}

// ReadJSON decodes a JSON document from r.
//
// ReadJSON returns an INVALID_FORMAT error if the input is not a JSON object
// and an INVALID_INPUT error if a field has the wrong shape, for example a
// node without an id. Incomplete edges are not errors; see the package
// documentation. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Document, error) {
	var raw map[string]any
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
	}
	return fromMap(raw)
}

// ReadYAML decodes a YAML document from r. Errors follow [ReadJSON].
func ReadYAML(r io.Reader) (*Document, error) {
	var raw map[string]any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml")
	}
	return fromMap(raw)
}

// Import reads the document at path, choosing the format with
// [FormatFromPath].
func Import(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Read(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
