// Package render turns accepted sequences into alias name/expansion pairs.
package render

import (
	"strings"

	"github.com/rileyhilliard/kalias/internal/fragment"
)

// DefaultSeparator is the suffix every tag in the built-in table carries.
const DefaultSeparator = "."

// Alias is a rendered alias definition.
type Alias struct {
	Name      string
	Expansion string
}

// Renderer builds aliases from sequences.
type Renderer struct {
	// Separator is trimmed from both ends of the joined tags.
	Separator string
}

// New returns a renderer using the given separator.
func New(separator string) Renderer {
	return Renderer{Separator: separator}
}

// Render joins the tags into the name and the expansions, space separated,
// into the command line. It is a pure function of seq.
func (r Renderer) Render(seq fragment.Sequence) Alias {
	var name strings.Builder
	parts := make([]string, 0, len(seq))
	for _, f := range seq {
		name.WriteString(f.Tag)
		parts = append(parts, f.Expansion)
	}

	return Alias{
		Name:      r.trim(name.String()),
		Expansion: strings.Join(parts, " "),
	}
}

func (r Renderer) trim(s string) string {
	if r.Separator == "" {
		return s
	}
	for strings.HasPrefix(s, r.Separator) {
		s = strings.TrimPrefix(s, r.Separator)
	}
	for strings.HasSuffix(s, r.Separator) {
		s = strings.TrimSuffix(s, r.Separator)
	}
	return s
}
