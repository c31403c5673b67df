package coupling

import (
	"fmt"

	"github.com/matzehuels/hypercouple/pkg/errors"
)

// Algorithm selects a coupling strategy. The set of strategies is closed.
type Algorithm int

const (
	// None maps every input edge to its own identity group.
	None Algorithm = iota
	// ProductiveExpiries recursively groups the edges expired by each
	// minimal productive frontier.
	ProductiveExpiries
	// FrontierExpiries groups edges that are all present or all absent in
	// every graph reachable through a distinct unblocking.
	FrontierExpiries
)

// DefaultAlgorithm is used when a caller does not name one.
const DefaultAlgorithm = FrontierExpiries

// Algorithms returns every strategy in registry order.
func Algorithms() []Algorithm {
	return []Algorithm{None, ProductiveExpiries, FrontierExpiries}
}

// ParseAlgorithm resolves a registry id such as "frontier-expiries".
// Unknown ids yield an [*errors.UnknownAlgorithmError].
func ParseAlgorithm(id string) (Algorithm, error) {
	for _, a := range Algorithms() {
		if a.ID() == id {
			return a, nil
		}
	}
	return 0, &errors.UnknownAlgorithmError{ID: id}
}

// ID returns the registry id.
func (a Algorithm) ID() string {
	switch a {
	case None:
		return "none"
	case ProductiveExpiries:
		return "productive-expiries"
	case FrontierExpiries:
		return "frontier-expiries"
	}
	return fmt.Sprintf("algorithm(%d)", int(a))
}

// Name returns the display name.
func (a Algorithm) Name() string {
	switch a {
	case None:
		return "None (Original)"
	case ProductiveExpiries:
		return "Productive Expiries"
	case FrontierExpiries:
		return "Frontier Expiries"
	}
	return a.ID()
}

// Description returns a one-line summary.
func (a Algorithm) Description() string {
	switch a {
	case None:
		return "Show original edges without coupling"
	case ProductiveExpiries:
		return "Maximal coupling based on minimal productive expiries"
	case FrontierExpiries:
		return "Maximal sets of edges that expire together across all distinct unblockings"
	}
	return ""
}

func (a Algorithm) String() string { return a.ID() }

// MarshalText implements encoding.TextMarshaler.
func (a Algorithm) MarshalText() ([]byte, error) { return []byte(a.ID()), nil }

// UnmarshalText implements encoding.TextUnmarshaler, so algorithms can be
// named in JSON, YAML and TOML by id.
func (a *Algorithm) UnmarshalText(text []byte) error {
	parsed, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
