package expand

import (
	"iter"
	"math"

	"github.com/rileyhilliard/kalias/internal/fragment"
)

// Assembler combines the selections of each group, in template order, into
// candidate sequences. It performs no validation.
type Assembler struct {
	sets   [][]Selection
	maxLen int
}

// NewAssembler expands every group and prepares their cross-product.
func NewAssembler(groups []fragment.Group) *Assembler {
	sets := make([][]Selection, len(groups))
	for i, g := range groups {
		sets[i] = Selections(g)
	}
	return FromSelections(sets)
}

// FromSelections builds an assembler over precomputed selection sets.
func FromSelections(sets [][]Selection) *Assembler {
	a := &Assembler{sets: sets}
	for _, set := range sets {
		longest := 0
		for _, s := range set {
			longest = max(longest, len(s))
		}
		a.maxLen += longest
	}
	return a
}

// Sets returns the selection set of each group.
func (a *Assembler) Sets() [][]Selection {
	return a.sets
}

// Count is the number of candidates All yields: the product of the
// selection-set sizes. It saturates at math.MaxInt; fragment.Compile rejects
// tables that get there.
func (a *Assembler) Count() int {
	n := 1
	for _, set := range a.sets {
		var ok bool
		if n, ok = fragment.MulCount(n, len(set)); !ok {
			return math.MaxInt
		}
	}
	return n
}

// All yields every candidate sequence. The first group varies fastest.
//
// The yielded sequence shares a buffer that is overwritten on the next
// iteration; Clone it to keep it.
func (a *Assembler) All() iter.Seq[fragment.Sequence] {
	return func(yield func(fragment.Sequence) bool) {
		for _, set := range a.sets {
			if len(set) == 0 {
				return
			}
		}

		pick := make([]int, len(a.sets))
		buf := make(fragment.Sequence, 0, a.maxLen)
		for {
			buf = buf[:0]
			for i, set := range a.sets {
				buf = append(buf, set[pick[i]]...)
			}
			if !yield(buf) {
				return
			}

			i := 0
			for ; i < len(pick); i++ {
				pick[i]++
				if pick[i] < len(a.sets[i]) {
					break
				}
				pick[i] = 0
			}
			if i == len(pick) {
				return
			}
		}
	}
}

// Collect returns independent copies of every candidate.
func (a *Assembler) Collect() []fragment.Sequence {
	var out []fragment.Sequence
	for seq := range a.All() {
		out = append(out, seq.Clone())
	}
	return out
}
