// Package expand turns groups into selections and combines the selections of
// every group into candidate sequences.
package expand

import (
	"math"

	"github.com/rileyhilliard/kalias/internal/fragment"
	"gonum.org/v1/gonum/stat/combin"
)

// Selection is one admissible pick from a single group: a subset in a
// specific order. The empty selection picks nothing.
type Selection []fragment.Fragment

// Selections returns every selection the group's policy admits.
//
// A mandatory group yields one singleton per fragment. An optional group
// yields every subset by ascending size, in authored order, limited to size
// one when the group is exclusive; an unordered group additionally yields
// every ordering of each subset.
func Selections(g fragment.Group) []Selection {
	if g.Mandatory() {
		out := make([]Selection, 0, len(g.Fragments))
		for _, f := range g.Fragments {
			out = append(out, Selection{f})
		}
		return out
	}

	n := len(g.Fragments)
	maxSize := n
	if g.Exclusive && maxSize > 1 {
		maxSize = 1
	}

	out := []Selection{{}}
	for size := 1; size <= maxSize; size++ {
		orders := [][]int{nil}
		if g.Unordered {
			orders = combin.Permutations(size, size)
		}
		for _, subset := range combin.Combinations(n, size) {
			for _, order := range orders {
				sel := make(Selection, size)
				for i := range sel {
					j := i
					if order != nil {
						j = order[i]
					}
					sel[i] = g.Fragments[subset[j]]
				}
				out = append(out, sel)
			}
		}
	}
	return out
}

// Count returns len(Selections(g)) without building them, saturating at
// math.MaxInt.
func Count(g fragment.Group) int {
	n, ok := g.SelectionCount()
	if !ok {
		return math.MaxInt
	}
	return n
}
