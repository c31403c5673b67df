package hypergraph

import (
	"slices"
	"testing"
)

func TestSetOps(t *testing.T) {
	s := SetOf(0, 2, 5)

	if !s.Has(2) || s.Has(1) {
		t.Errorf("Has: got %v for %b", []bool{s.Has(2), s.Has(1)}, s)
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	if got := s.Without(2).Indices(); !slices.Equal(got, []int{0, 5}) {
		t.Errorf("Without(2) = %v, want [0 5]", got)
	}
	if !SetOf(0, 5).ProperSubsetOf(s) {
		t.Error("{0,5} should be a proper subset")
	}
	if s.ProperSubsetOf(s) {
		t.Error("a set is not a proper subset of itself")
	}
	if !s.Overlaps(SetOf(5, 6)) || s.Overlaps(SetOf(1, 3)) {
		t.Error("Overlaps mismatch")
	}
	if got := s.Minus(SetOf(0)).Union(SetOf(1)).Indices(); !slices.Equal(got, []int{1, 2, 5}) {
		t.Errorf("Minus/Union = %v, want [1 2 5]", got)
	}
	if !Set(0).IsEmpty() {
		t.Error("zero Set should be empty")
	}
	if got := SetOf(MaxSize - 1).Indices(); !slices.Equal(got, []int{MaxSize - 1}) {
		t.Errorf("high bit = %v", got)
	}
}

func TestSubsets(t *testing.T) {
	tests := []struct {
		name     string
		universe Set
		want     []Set
	}{
		{
			name:     "empty",
			universe: 0,
			want:     nil,
		},
		{
			name:     "single",
			universe: SetOf(3),
			want:     []Set{SetOf(3)},
		},
		{
			name:     "sparse universe counts in member order",
			universe: SetOf(1, 4, 6),
			want: []Set{
				SetOf(1),
				SetOf(4),
				SetOf(1, 4),
				SetOf(6),
				SetOf(1, 6),
				SetOf(4, 6),
				SetOf(1, 4, 6),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Collect(Subsets(tt.universe))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Subsets() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSubsetsEarlyStop(t *testing.T) {
	n := 0
	for range Subsets(SetOf(0, 1, 2, 3)) {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("iterated %d subsets, want 2", n)
	}
}
