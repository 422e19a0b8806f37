package fragment

import (
	"fmt"
	"testing"

	"github.com/rileyhilliard/kalias/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTable() Table {
	return Table{Groups: []Group{
		{Name: "cmd", Fragments: []Fragment{{Tag: "k.", Expansion: "kubectl"}}},
		{Name: "verb", Optional: true, Exclusive: true, Fragments: []Fragment{
			{Tag: "get.", Expansion: "get"},
			{Tag: "rm.", Expansion: "delete"},
		}},
		{Name: "resource", Optional: true, Exclusive: true, Fragments: []Fragment{
			{Tag: "po.", Expansion: "pods", Requires: TagSet{"get.", "rm."}},
			{Tag: "no.", Expansion: "nodes", Requires: TagSet{"get."}},
		}},
		{Name: "flag", Optional: true, Unordered: true, Fragments: []Fragment{
			{Tag: "w.", Expansion: "-o=wide", Requires: TagSet{"get."}, Excludes: TagSet{"@resource", "!po."}},
		}},
	}}
}

func TestCompile_ResolvesDerivedSets(t *testing.T) {
	c, err := Compile(testTable())
	require.NoError(t, err)

	assert.Equal(t, TagSet{"po.", "no."}, c.Derived["resource"])
	assert.Equal(t, TagSet{"k.", "get.", "rm.", "po.", "no.", "w."}, c.Tags)
	assert.Equal(t, DefaultMaxUnordered, c.MaxUnordered)
	assert.Equal(t, 1*3*3*2, c.Candidates)

	wide := c.Groups[3].Fragments[0]
	assert.Equal(t, TagSet{"no."}, wide.Excludes)
	assert.Equal(t, TagSet{"get."}, wide.Requires)
}

func TestCompile_DoesNotMutateInput(t *testing.T) {
	table := testTable()
	_, err := Compile(table)
	require.NoError(t, err)

	assert.Equal(t, TagSet{"@resource", "!po."}, table.Groups[3].Fragments[0].Excludes)
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Table)
		opts    []CompileOption
		wantErr error
	}{
		{
			name:    "no groups",
			mutate:  func(tb *Table) { tb.Groups = nil },
			wantErr: ErrNoGroups,
		},
		{
			name:    "mandatory group empty",
			mutate:  func(tb *Table) { tb.Groups[0].Fragments = nil },
			wantErr: ErrMandatoryEmpty,
		},
		{
			name: "truncated tag in excludes",
			mutate: func(tb *Table) {
				tb.Groups[2].Fragments[1].Excludes = TagSet{"sys"}
			},
			wantErr: ErrUnknownTag,
		},
		{
			name: "truncated tag in removal",
			mutate: func(tb *Table) {
				tb.Groups[3].Fragments[0].Excludes = TagSet{"@resource", "!po.", "!dep"}
			},
			wantErr: ErrUnknownTag,
		},
		{
			name: "unknown tag in requires",
			mutate: func(tb *Table) {
				tb.Groups[2].Fragments[0].Requires = TagSet{"desc."}
			},
			wantErr: ErrUnknownTag,
		},
		{
			name: "unknown group reference",
			mutate: func(tb *Table) {
				tb.Groups[3].Fragments[0].Excludes = TagSet{"@resources"}
			},
			wantErr: ErrUnknownGroup,
		},
		{
			name:    "mandatory and unordered",
			mutate:  func(tb *Table) { tb.Groups[0].Unordered = true },
			wantErr: ErrConflictingPolicy,
		},
		{
			name:    "exclusive and unordered",
			mutate:  func(tb *Table) { tb.Groups[1].Unordered = true },
			wantErr: ErrConflictingPolicy,
		},
		{
			name: "unordered group over the cap",
			mutate: func(tb *Table) {
				tb.Groups[3].Fragments = append(tb.Groups[3].Fragments, Fragment{Tag: "y.", Expansion: "-o=yaml"})
			},
			opts:    []CompileOption{WithMaxUnordered(1)},
			wantErr: ErrUnorderedTooLarge,
		},
		{
			name:    "candidates over the cap",
			mutate:  func(*Table) {},
			opts:    []CompileOption{WithMaxCandidates(17)},
			wantErr: ErrTooManyCandidates,
		},
		{
			name:    "duplicate group name",
			mutate:  func(tb *Table) { tb.Groups[2].Name = "verb" },
			wantErr: ErrDuplicateGroup,
		},
		{
			name:    "empty group name",
			mutate:  func(tb *Table) { tb.Groups[1].Name = " " },
			wantErr: ErrInvalidFragment,
		},
		{
			name:    "empty fragment tag",
			mutate:  func(tb *Table) { tb.Groups[1].Fragments[0].Tag = "" },
			wantErr: ErrInvalidFragment,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := testTable()
			tt.mutate(&table)

			c, err := Compile(table, tt.opts...)
			require.Error(t, err)
			assert.Nil(t, c)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, errors.IsCode(err, errors.ErrTable))
		})
	}
}

func TestCompile_OptionalEmptyGroupIsAllowed(t *testing.T) {
	table := testTable()
	table.Groups = append(table.Groups, Group{Name: "extra", Optional: true})

	_, err := Compile(table)
	assert.NoError(t, err)
}

func TestCompile_CapDisabled(t *testing.T) {
	table := testTable()
	for i := 0; i < 10; i++ {
		table.Groups[3].Fragments = append(table.Groups[3].Fragments,
			Fragment{Tag: string(rune('a'+i)) + ".", Expansion: "x"})
	}

	_, err := Compile(table)
	require.ErrorIs(t, err, ErrUnorderedTooLarge)

	_, err = Compile(table, WithMaxUnordered(0))
	assert.NoError(t, err)
}

// wideTable is one mandatory group followed by n optional groups of size
// fragments each.
func wideTable(n, size int, unordered bool) Table {
	table := Table{Groups: []Group{
		{Name: "cmd", Fragments: []Fragment{{Tag: "k.", Expansion: "kubectl"}}},
	}}
	for g := 0; g < n; g++ {
		grp := Group{Name: fmt.Sprintf("g%d", g), Optional: true, Unordered: unordered}
		for f := 0; f < size; f++ {
			tag := fmt.Sprintf("g%df%d.", g, f)
			grp.Fragments = append(grp.Fragments, Fragment{Tag: tag, Expansion: tag})
		}
		table.Groups = append(table.Groups, grp)
	}
	return table
}

func TestCompile_CandidateOverflow(t *testing.T) {
	tests := []struct {
		name      string
		n, size   int
		unordered bool
	}{
		// 256^8 wraps a 64-bit product to zero.
		{name: "eight ordered groups of eight", n: 8, size: 8},
		// 109601^4 wraps to a negative product.
		{name: "four unordered groups of eight", n: 4, size: 8, unordered: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := wideTable(tt.n, tt.size, tt.unordered)

			_, err := Compile(table, WithMaxCandidates(0))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrTooManyCandidates)
			assert.True(t, errors.IsCode(err, errors.ErrTable))
			assert.Contains(t, err.Error(), "overflows")
		})
	}
}

func TestCompile_CandidateCap(t *testing.T) {
	// 256^3 is under the default cap, 256^4 is over it.
	c, err := Compile(wideTable(3, 8, false))
	require.NoError(t, err)
	assert.Equal(t, 1<<24, c.Candidates)

	_, err = Compile(wideTable(4, 8, false))
	assert.ErrorIs(t, err, ErrTooManyCandidates)

	c, err = Compile(wideTable(4, 8, false), WithMaxCandidates(0))
	require.NoError(t, err)
	assert.Equal(t, 1<<32, c.Candidates)
}

func TestMustCompile_Panics(t *testing.T) {
	assert.Panics(t, func() { MustCompile(Table{}) })
}
