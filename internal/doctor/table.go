package doctor

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/rileyhilliard/kalias/internal/errors"
	"github.com/rileyhilliard/kalias/internal/fragment"
	"github.com/rileyhilliard/kalias/internal/util"
)

// TableCheck compiles the fragment table and keeps the result for the
// checks that follow it.
type TableCheck struct {
	Source  string
	Compile func() (*fragment.Compiled, error)

	table *fragment.Compiled
}

func (c *TableCheck) Name() string     { return "table_compile" }
func (c *TableCheck) Category() string { return "TABLE" }

// Table returns the compiled table, or nil if Run failed or hasn't run.
func (c *TableCheck) Table() *fragment.Compiled {
	return c.table
}

func (c *TableCheck) Run() CheckResult {
	table, err := c.Compile()
	if err != nil {
		result := CheckResult{
			Name:    c.Name(),
			Status:  StatusFail,
			Message: fmt.Sprintf("%s doesn't compile: %v", c.Source, err),
		}
		var e *errors.Error
		if stderrors.As(err, &e) {
			result.Message = fmt.Sprintf("%s doesn't compile: %s", c.Source, e.Message)
			if e.Cause != nil {
				result.Message += " (" + e.Cause.Error() + ")"
			}
			result.Suggestion = e.Suggestion
		}
		return result
	}
	c.table = table

	fragments := 0
	for _, g := range table.Groups {
		fragments += len(g.Fragments)
	}
	return CheckResult{
		Name:   c.Name(),
		Status: StatusPass,
		Message: fmt.Sprintf("%s: %d groups, %d fragments, %d candidates",
			c.Source, len(table.Groups), fragments, table.Candidates),
	}
}

// RequirementsCheck finds fragments whose requirements can never be met
// because no fragment carrying a required tag can come before them. Such
// fragments are silently absent from the output.
type RequirementsCheck struct {
	Table *TableCheck
}

func (c *RequirementsCheck) Name() string     { return "requirements" }
func (c *RequirementsCheck) Category() string { return "TABLE" }

func (c *RequirementsCheck) Run() CheckResult {
	table := c.Table.Table()
	if table == nil {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusSkip,
			Message: "Skipped, the table didn't compile",
		}
	}

	unreachable := Unreachable(table)
	if len(unreachable) == 0 {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: "Every requirement can be met",
		}
	}

	return CheckResult{
		Name:   c.Name(),
		Status: StatusWarn,
		Message: fmt.Sprintf("%d %s can never appear: %s",
			len(unreachable), util.Pluralize(len(unreachable), "fragment", "fragments"), strings.Join(unreachable, ", ")),
		Suggestion: "Required tags must belong to an earlier group, or to the same unordered group",
	}
}

// Unreachable lists "group/tag" for every fragment with a requires set that
// no possible predecessor satisfies.
func Unreachable(table *fragment.Compiled) []string {
	var out []string
	for gi, g := range table.Groups {
		for fi, f := range g.Fragments {
			if f.Requires.Empty() || canPrecede(table.Groups, gi, fi, f.Requires) {
				continue
			}
			out = append(out, g.Name+"/"+f.Tag)
		}
	}
	return out
}

// canPrecede reports whether some fragment carrying one of tags can appear
// before fragment fi of group gi in a candidate.
func canPrecede(groups []fragment.Group, gi, fi int, tags fragment.TagSet) bool {
	for i := 0; i < gi; i++ {
		for _, f := range groups[i].Fragments {
			if tags.Contains(f.Tag) {
				return true
			}
		}
	}

	// Within a group, only multi-fragment selections put one fragment
	// before another: any order when unordered, authoring order otherwise.
	g := groups[gi]
	if g.Mandatory() || g.Exclusive {
		return false
	}
	for j, f := range g.Fragments {
		if j == fi || (!g.Unordered && j > fi) {
			continue
		}
		if tags.Contains(f.Tag) {
			return true
		}
	}
	return false
}
