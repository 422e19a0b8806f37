package generator

import (
	"strings"

	"github.com/rileyhilliard/kalias/internal/fragment"
	"github.com/rileyhilliard/kalias/internal/rules"
)

// GroupStats summarizes one group of the table.
type GroupStats struct {
	Name       string
	Policy     string
	Fragments  int
	Selections int
}

// Stats summarizes a full generation run.
type Stats struct {
	Groups     []GroupStats
	Candidates int
	Accepted   int

	// Rejected counts rejections by the rule that fired first.
	Rejected map[rules.Kind]int

	// Collisions maps alias names rendered by more than one sequence to
	// the number of sequences rendering them.
	Collisions map[string]int
}

// RejectedTotal is the number of candidates that broke a rule.
func (s Stats) RejectedTotal() int {
	total := 0
	for _, n := range s.Rejected {
		total += n
	}
	return total
}

// Stats runs the whole pipeline and counts what happened.
func (g *Generator) Stats() Stats {
	s := Stats{
		Candidates: g.assembler.Count(),
		Rejected:   make(map[rules.Kind]int),
		Collisions: make(map[string]int),
	}
	for i, grp := range g.table.Groups {
		s.Groups = append(s.Groups, GroupStats{
			Name:       grp.Name,
			Policy:     Policy(grp),
			Fragments:  len(grp.Fragments),
			Selections: len(g.assembler.Sets()[i]),
		})
	}

	names := make(map[string]int)
	for seq := range g.assembler.All() {
		if v := rules.Check(seq); v != nil {
			s.Rejected[v.Kind]++
			continue
		}
		s.Accepted++
		names[g.renderer.Render(seq).Name]++
	}
	for name, n := range names {
		if n > 1 {
			s.Collisions[name] = n
		}
	}

	g.log.Debug("stats: %d candidates, %d accepted, %d collisions", s.Candidates, s.Accepted, len(s.Collisions))
	return s
}

// Policy describes a group's cardinality and ordering policy.
func Policy(g fragment.Group) string {
	switch {
	case g.Mandatory():
		return "exactly one"
	case g.Exclusive:
		return "at most one"
	}

	parts := []string{"any subset"}
	if g.Unordered {
		parts = append(parts, "permuted")
	}
	return strings.Join(parts, ", ")
}
