// Package generator runs the alias pipeline: it expands a compiled table
// into candidate sequences, keeps the admissible ones and renders them.
//
// The pipeline is synchronous and single-pass. Candidates are streamed, so
// memory stays bounded by the longest sequence even when the cross-product
// runs into millions.
package generator

import (
	"iter"

	"github.com/rileyhilliard/kalias/internal/expand"
	"github.com/rileyhilliard/kalias/internal/fragment"
	"github.com/rileyhilliard/kalias/internal/logger"
	"github.com/rileyhilliard/kalias/internal/render"
	"github.com/rileyhilliard/kalias/internal/rules"
)

// Generator produces aliases from a compiled table.
type Generator struct {
	table     *fragment.Compiled
	assembler *expand.Assembler
	renderer  render.Renderer
	log       logger.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeparator sets the separator trimmed from alias names.
func WithSeparator(sep string) Option {
	return func(g *Generator) {
		g.renderer = render.New(sep)
	}
}

// WithLogger sets the logger used for progress messages.
func WithLogger(l logger.Logger) Option {
	return func(g *Generator) {
		g.log = l
	}
}

// New prepares a generator. The table must come from fragment.Compile.
func New(table *fragment.Compiled, opts ...Option) *Generator {
	g := &Generator{
		table:    table,
		renderer: render.New(render.DefaultSeparator),
		log:      logger.Noop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.assembler = expand.NewAssembler(table.Groups)
	return g
}

// Table returns the compiled table the generator runs on.
func (g *Generator) Table() *fragment.Compiled {
	return g.table
}

// Aliases yields every accepted alias in generation order.
func (g *Generator) Aliases() iter.Seq[render.Alias] {
	return func(yield func(render.Alias) bool) {
		g.log.Debug("expanding %d groups into %d candidates", len(g.table.Groups), g.assembler.Count())

		accepted := 0
		for seq := range g.assembler.All() {
			if !rules.Accept(seq) {
				continue
			}
			accepted++
			if !yield(g.renderer.Render(seq)) {
				return
			}
		}

		g.log.Debug("accepted %d of %d candidates", accepted, g.assembler.Count())
	}
}

// Collect returns every accepted alias.
func (g *Generator) Collect() []render.Alias {
	var out []render.Alias
	for a := range g.Aliases() {
		out = append(out, a)
	}
	return out
}

// Explain returns every alias rendered under name, in generation order.
// More than one result means the name collides.
func (g *Generator) Explain(name string) []render.Alias {
	var out []render.Alias
	for a := range g.Aliases() {
		if a.Name == name {
			out = append(out, a)
		}
	}
	return out
}
