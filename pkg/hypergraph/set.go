package hypergraph

import (
	"iter"
	"math/bits"
)

// MaxSize is the largest number of node ids, and separately of edges, an
// arena can index. A [Set] is a single machine word.
const MaxSize = 64

// Set is a bitset over arena indices. Bit i is set when the node (or edge)
// with index i is a member. The zero value is the empty set.
type Set uint64

// SetOf returns the set containing the given indices.
func SetOf(indices ...int) Set {
	var s Set
	for _, i := range indices {
		s = s.With(i)
	}
	return s
}

// Has reports whether index i is in the set.
func (s Set) Has(i int) bool { return s&(1<<uint(i)) != 0 }

// With returns s with index i added.
func (s Set) With(i int) Set { return s | 1<<uint(i) }

// Without returns s with index i removed.
func (s Set) Without(i int) Set { return s &^ (1 << uint(i)) }

// Len returns the number of members.
func (s Set) Len() int { return bits.OnesCount64(uint64(s)) }

// IsEmpty reports whether the set has no members.
func (s Set) IsEmpty() bool { return s == 0 }

// Union returns s ∪ o.
func (s Set) Union(o Set) Set { return s | o }

// Intersect returns s ∩ o.
func (s Set) Intersect(o Set) Set { return s & o }

// Minus returns s \ o.
func (s Set) Minus(o Set) Set { return s &^ o }

// Overlaps reports whether s and o share a member.
func (s Set) Overlaps(o Set) bool { return s&o != 0 }

// SubsetOf reports whether every member of s is in o.
func (s Set) SubsetOf(o Set) bool { return s&^o == 0 }

// ProperSubsetOf reports whether s ⊂ o and s != o.
func (s Set) ProperSubsetOf(o Set) bool { return s != o && s.SubsetOf(o) }

// All yields the member indices in ascending order.
func (s Set) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		for rest := uint64(s); rest != 0; rest &= rest - 1 {
			if !yield(bits.TrailingZeros64(rest)) {
				return
			}
		}
	}
}

// Indices returns the member indices in ascending order.
func (s Set) Indices() []int {
	out := make([]int, 0, s.Len())
	for i := range s.All() {
		out = append(out, i)
	}
	return out
}

// Subsets yields every non-empty subset of universe.
//
// The order is binary counting over the members of universe taken in
// ascending index order: the first member alone, then the second alone, then
// both, and so on. There are 2^|universe| - 1 subsets.
func Subsets(universe Set) iter.Seq[Set] {
	return func(yield func(Set) bool) {
		for sub := (0 - universe) & universe; sub != 0; sub = (sub - universe) & universe {
			if !yield(sub) {
				return
			}
		}
	}
}
