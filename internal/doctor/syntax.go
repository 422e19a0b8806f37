package doctor

import (
	"fmt"
	"strings"

	"github.com/rileyhilliard/kalias/internal/fragment"
	"github.com/rileyhilliard/kalias/internal/output"
	"github.com/rileyhilliard/kalias/internal/render"
	"github.com/rileyhilliard/kalias/internal/util"
	"mvdan.cc/sh/v3/syntax"
)

// SyntaxCheck parses one alias definition per fragment with a bash parser
// and reports tags that don't produce a plain literal alias name. Every
// generated name is a concatenation of tags, so checking tags is enough.
type SyntaxCheck struct {
	Table     *TableCheck
	Format    output.Format
	Separator string
}

func (c *SyntaxCheck) Name() string     { return "syntax" }
func (c *SyntaxCheck) Category() string { return "OUTPUT" }

func (c *SyntaxCheck) Run() CheckResult {
	table := c.Table.Table()
	if table == nil {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusSkip,
			Message: "Skipped, the table didn't compile",
		}
	}
	if c.Format == output.FormatFish {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusSkip,
			Message: "Fish syntax isn't checked",
		}
	}

	bad := InvalidTags(table, render.New(c.Separator), c.Format)
	if len(bad) > 0 {
		return CheckResult{
			Name:   c.Name(),
			Status: StatusFail,
			Message: fmt.Sprintf("%d %s can't form a literal alias name: %s",
				len(bad), util.Pluralize(len(bad), "tag", "tags"), strings.Join(bad, ", ")),
			Suggestion: "Tags may not contain whitespace, quotes, '$', '/', '=' or glob characters",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: "Alias definitions parse as " + string(c.Format),
	}
}

// InvalidTags returns "group/tag" for every fragment whose alias definition
// doesn't parse as `alias <literal name>=<quoted expansion>`.
func InvalidTags(table *fragment.Compiled, r render.Renderer, format output.Format) []string {
	parser := syntax.NewParser(syntax.Variant(syntax.LangBash))

	var out []string
	for _, g := range table.Groups {
		for _, f := range g.Fragments {
			a := r.Render(fragment.Sequence{f})
			if !literalDefinition(parser, format.Line(a), a.Name) {
				out = append(out, g.Name+"/"+f.Tag)
			}
		}
	}
	return out
}

func literalDefinition(parser *syntax.Parser, line, name string) bool {
	if name == "" || strings.ContainsAny(name, "/=*?[") {
		return false
	}

	file, err := parser.Parse(strings.NewReader(line), "")
	if err != nil || len(file.Stmts) != 1 {
		return false
	}
	call, ok := file.Stmts[0].Cmd.(*syntax.CallExpr)
	if !ok || len(call.Args) != 2 {
		return false
	}

	parts := call.Args[1].Parts
	if len(parts) < 2 {
		return false
	}
	lit, ok := parts[0].(*syntax.Lit)
	return ok && lit.Value == name+"="
}
