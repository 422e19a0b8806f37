// Package rules decides whether a candidate sequence is admissible by
// checking each fragment's requires and excludes sets against the
// fragments that precede it.
package rules

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/kalias/internal/fragment"
)

// Kind is the rule a fragment broke.
type Kind int

const (
	// MissingRequirement means no earlier fragment carried a required tag.
	MissingRequirement Kind = iota + 1
	// ExcludedPredecessor means an earlier fragment carried an excluded tag.
	ExcludedPredecessor
)

func (k Kind) String() string {
	switch k {
	case MissingRequirement:
		return "requires"
	case ExcludedPredecessor:
		return "excludes"
	default:
		return "unknown"
	}
}

// Violation describes the first rule a sequence breaks.
type Violation struct {
	Index    int
	Fragment fragment.Fragment
	Kind     Kind

	// Conflict is the earlier tag that triggered an exclusion.
	Conflict string
}

func (v *Violation) String() string {
	switch v.Kind {
	case MissingRequirement:
		return fmt.Sprintf("%q at position %d requires one of [%s] earlier",
			v.Fragment.Tag, v.Index, strings.Join(v.Fragment.Requires, " "))
	case ExcludedPredecessor:
		return fmt.Sprintf("%q at position %d excludes earlier %q",
			v.Fragment.Tag, v.Index, v.Conflict)
	default:
		return fmt.Sprintf("%q at position %d", v.Fragment.Tag, v.Index)
	}
}

// Check scans the sequence left to right and returns the first violation,
// or nil when the sequence is admissible. Only fragments strictly before a
// position are consulted for it.
func Check(seq fragment.Sequence) *Violation {
	for i, f := range seq {
		if !f.Requires.Empty() && !anyBefore(seq, i, f.Requires) {
			return &Violation{Index: i, Fragment: f, Kind: MissingRequirement}
		}
		if f.Excludes.Empty() {
			continue
		}
		for j := 0; j < i; j++ {
			if f.Excludes.Contains(seq[j].Tag) {
				return &Violation{Index: i, Fragment: f, Kind: ExcludedPredecessor, Conflict: seq[j].Tag}
			}
		}
	}
	return nil
}

// Accept reports whether the sequence breaks no rule.
func Accept(seq fragment.Sequence) bool {
	return Check(seq) == nil
}

func anyBefore(seq fragment.Sequence, i int, tags fragment.TagSet) bool {
	for j := 0; j < i; j++ {
		if tags.Contains(seq[j].Tag) {
			return true
		}
	}
	return false
}
