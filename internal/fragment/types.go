// Package fragment defines the building blocks aliases are assembled from:
// tagged fragments, the groups that hold them and the table of groups.
package fragment

import (
	"math"
	"math/bits"
	"slices"
)

// Fragment is one composable piece of a command line.
type Fragment struct {
	// Tag names the fragment in the alias and in rule lookups.
	Tag string `yaml:"tag"`

	// Expansion is the literal text contributed to the command line.
	Expansion string `yaml:"expansion"`

	// Requires lists tags of which at least one must appear earlier in the sequence.
	Requires TagSet `yaml:"requires,omitempty"`

	// Excludes lists tags none of which may appear earlier in the sequence.
	Excludes TagSet `yaml:"excludes,omitempty"`
}

// Group is an ordered slot in the alias template.
type Group struct {
	Name      string     `yaml:"name"`
	Fragments []Fragment `yaml:"fragments"`

	// Optional allows any subset (including none) instead of exactly one.
	Optional bool `yaml:"optional"`

	// Unordered expands a chosen subset into every ordering of it.
	Unordered bool `yaml:"unordered"`

	// Exclusive limits an optional group to at most one fragment.
	Exclusive bool `yaml:"exclusive"`
}

// Mandatory reports whether exactly one fragment must be picked.
func (g Group) Mandatory() bool {
	return !g.Optional
}

// Tags returns the group's fragment tags in authored order, without duplicates.
func (g Group) Tags() TagSet {
	tags := make([]string, 0, len(g.Fragments))
	for _, f := range g.Fragments {
		tags = append(tags, f.Tag)
	}
	return NewTagSet(tags...)
}

// SelectionCount returns how many selections the group's policy admits.
// ok is false when the count does not fit in an int.
//
// Mandatory groups admit one per fragment and exclusive groups one more for
// the empty pick. An optional group admits 2^n subsets; unordered, it admits
// every ordering of each, the sum of n!/(n-k)! over k.
func (g Group) SelectionCount() (n int, ok bool) {
	m := len(g.Fragments)
	switch {
	case g.Mandatory():
		return m, true
	case g.Exclusive:
		return m + 1, true
	case !g.Unordered:
		if m >= bits.UintSize-1 {
			return 0, false
		}
		return 1 << m, true
	}

	total, term := 1, 1
	for k := 1; k <= m; k++ {
		if term, ok = MulCount(term, m-k+1); !ok {
			return 0, false
		}
		if total > math.MaxInt-term {
			return 0, false
		}
		total += term
	}
	return total, true
}

// MulCount multiplies two non-negative counts. ok is false on overflow.
func MulCount(a, b int) (int, bool) {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	if hi != 0 || lo > math.MaxInt {
		return 0, false
	}
	return int(lo), true
}

// Table is the authored set of groups, in template order.
type Table struct {
	Groups []Group `yaml:"groups"`
}

// Sequence is an ordered list of fragments drawn from the groups in order.
type Sequence []Fragment

// Tags returns the tags of the sequence in order.
func (s Sequence) Tags() []string {
	tags := make([]string, len(s))
	for i, f := range s {
		tags[i] = f.Tag
	}
	return tags
}

// Clone returns a copy that does not share the backing array.
func (s Sequence) Clone() Sequence {
	return slices.Clone(s)
}
