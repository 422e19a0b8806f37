package fragment

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/rileyhilliard/kalias/internal/errors"
)

// DefaultMaxUnordered caps the size of an unordered group. A group of n
// fragments expands into sum(n!/(n-k)!) selections, so this is where the
// permutation blow-up is bounded.
const DefaultMaxUnordered = 8

// DefaultMaxCandidates caps the cross-product of every group's selections,
// the number of sequences a generation run has to check.
const DefaultMaxCandidates = 1 << 30

// Configuration failures reported by Compile. They are wrapped in a
// structured error with code ErrTable, so match them with errors.Is.
var (
	ErrNoGroups          = stderrors.New("table has no groups")
	ErrMandatoryEmpty    = stderrors.New("mandatory group empty")
	ErrUnknownTag        = stderrors.New("unknown tag")
	ErrUnknownGroup      = stderrors.New("unknown group reference")
	ErrConflictingPolicy = stderrors.New("conflicting group policy")
	ErrUnorderedTooLarge = stderrors.New("unordered group too large")
	ErrDuplicateGroup    = stderrors.New("duplicate group name")
	ErrInvalidFragment   = stderrors.New("invalid fragment")
	ErrTooManyCandidates = stderrors.New("too many candidates")
)

// Compiled is a validated table whose rule sets are fully resolved.
type Compiled struct {
	// Groups holds the groups in template order with plain-tag rule sets.
	Groups []Group

	// Derived maps each group name to the tags of that group. Rule entries
	// of the form "@name" were resolved against it.
	Derived map[string]TagSet

	// Tags is every tag authored anywhere in the table.
	Tags TagSet

	// MaxUnordered is the unordered group cap the table was checked against.
	MaxUnordered int

	// Candidates is the number of sequences the groups expand into.
	Candidates int
}

// CompileOption controls compilation behavior.
type CompileOption func(*compileContext)

type compileContext struct {
	maxUnordered  int
	maxCandidates int
}

// WithMaxUnordered overrides DefaultMaxUnordered. Zero or less disables the cap.
func WithMaxUnordered(n int) CompileOption {
	return func(c *compileContext) {
		c.maxUnordered = n
	}
}

// WithMaxCandidates overrides DefaultMaxCandidates. Zero or less disables the
// cap, but a count that overflows an int is always rejected.
func WithMaxCandidates(n int) CompileOption {
	return func(c *compileContext) {
		c.maxCandidates = n
	}
}

// Compile validates the table and resolves group references in rule sets.
// Any failure is fatal: no partially compiled table is returned.
func Compile(t Table, opts ...CompileOption) (*Compiled, error) {
	ctx := &compileContext{maxUnordered: DefaultMaxUnordered, maxCandidates: DefaultMaxCandidates}
	for _, opt := range opts {
		opt(ctx)
	}

	if len(t.Groups) == 0 {
		return nil, tableError(ErrNoGroups, "Fragment table has no groups",
			"Add at least one mandatory group, like the base command.")
	}

	derived := make(map[string]TagSet, len(t.Groups))
	var all TagSet
	for _, g := range t.Groups {
		if err := validateGroup(g, ctx); err != nil {
			return nil, err
		}
		if _, dup := derived[g.Name]; dup {
			return nil, tableError(fmt.Errorf("%w: %q", ErrDuplicateGroup, g.Name),
				fmt.Sprintf("Group name '%s' is used twice", g.Name),
				"Give every group a unique name so '@name' references are unambiguous.")
		}
		derived[g.Name] = g.Tags()
		all = all.Union(derived[g.Name])
	}

	candidates, err := countCandidates(t.Groups, ctx)
	if err != nil {
		return nil, err
	}

	c := &Compiled{
		Groups:       make([]Group, len(t.Groups)),
		Derived:      derived,
		Tags:         all,
		MaxUnordered: ctx.maxUnordered,
		Candidates:   candidates,
	}
	for gi, g := range t.Groups {
		out := g
		out.Fragments = make([]Fragment, len(g.Fragments))
		for fi, f := range g.Fragments {
			requires, err := resolve(f.Requires, derived, all)
			if err != nil {
				return nil, ruleError(err, g.Name, f.Tag, "requires")
			}
			excludes, err := resolve(f.Excludes, derived, all)
			if err != nil {
				return nil, ruleError(err, g.Name, f.Tag, "excludes")
			}
			f.Requires = requires
			f.Excludes = excludes
			out.Fragments[fi] = f
		}
		c.Groups[gi] = out
	}

	return c, nil
}

// MustCompile is Compile for compiled-in tables, panicking on error.
func MustCompile(t Table, opts ...CompileOption) *Compiled {
	c, err := Compile(t, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

func validateGroup(g Group, ctx *compileContext) error {
	if strings.TrimSpace(g.Name) == "" {
		return tableError(fmt.Errorf("%w: group without a name", ErrInvalidFragment),
			"A group has no name",
			"Name every group, for example 'verb' or 'resource'.")
	}

	if g.Mandatory() && len(g.Fragments) == 0 {
		return tableError(fmt.Errorf("%w: %q", ErrMandatoryEmpty, g.Name),
			fmt.Sprintf("Group '%s' is mandatory but has no fragments", g.Name),
			"Add a fragment to the group or mark it optional.")
	}

	if g.Mandatory() && g.Unordered {
		return tableError(fmt.Errorf("%w: %q is mandatory and unordered", ErrConflictingPolicy, g.Name),
			fmt.Sprintf("Group '%s' picks exactly one fragment, so it can't be unordered", g.Name),
			"Drop 'unordered' or make the group optional.")
	}
	if g.Exclusive && g.Unordered {
		return tableError(fmt.Errorf("%w: %q is exclusive and unordered", ErrConflictingPolicy, g.Name),
			fmt.Sprintf("Group '%s' picks at most one fragment, so it can't be unordered", g.Name),
			"Drop either 'exclusive' or 'unordered'.")
	}

	if g.Unordered && ctx.maxUnordered > 0 && len(g.Fragments) > ctx.maxUnordered {
		return tableError(fmt.Errorf("%w: %q has %d fragments, limit is %d",
			ErrUnorderedTooLarge, g.Name, len(g.Fragments), ctx.maxUnordered),
			fmt.Sprintf("Unordered group '%s' is too large to permute", g.Name),
			"Split the group or raise max_unordered.")
	}

	for _, f := range g.Fragments {
		if f.Tag == "" {
			return tableError(fmt.Errorf("%w: empty tag in group %q", ErrInvalidFragment, g.Name),
				fmt.Sprintf("Group '%s' has a fragment without a tag", g.Name),
				"Every fragment needs a tag; it becomes part of the alias name.")
		}
	}
	return nil
}

// countCandidates multiplies the selection counts of every group, failing
// once the product leaves int range or passes the configured cap.
func countCandidates(groups []Group, ctx *compileContext) (int, error) {
	tooMany := func(detail string) error {
		return tableError(fmt.Errorf("%w: %s", ErrTooManyCandidates, detail),
			"Fragment table expands into too many candidates to check",
			"Make some groups exclusive, shrink the unordered groups or split the table.")
	}

	total := 1
	for _, g := range groups {
		n, ok := g.SelectionCount()
		if ok {
			total, ok = MulCount(total, n)
		}
		if !ok {
			return 0, tooMany(fmt.Sprintf("count overflows at group %q", g.Name))
		}
		if ctx.maxCandidates > 0 && total > ctx.maxCandidates {
			return 0, tooMany(fmt.Sprintf("more than %d at group %q", ctx.maxCandidates, g.Name))
		}
	}
	return total, nil
}

// resolve expands "@group" entries and applies "!tag" removals.
func resolve(entries TagSet, derived map[string]TagSet, all TagSet) (TagSet, error) {
	if entries.Empty() {
		return nil, nil
	}

	var set, removed TagSet
	for _, e := range entries {
		switch {
		case strings.HasPrefix(e, GroupRefPrefix):
			name := strings.TrimPrefix(e, GroupRefPrefix)
			tags, ok := derived[name]
			if !ok {
				return nil, fmt.Errorf("%w %q", ErrUnknownGroup, name)
			}
			set = set.Union(tags)
		case strings.HasPrefix(e, RemovePrefix):
			tag := strings.TrimPrefix(e, RemovePrefix)
			if !all.Contains(tag) {
				return nil, fmt.Errorf("%w %q", ErrUnknownTag, tag)
			}
			removed = removed.Union(TagSet{tag})
		default:
			if !all.Contains(e) {
				return nil, fmt.Errorf("%w %q", ErrUnknownTag, e)
			}
			set = set.Union(TagSet{e})
		}
	}
	return set.Without(removed), nil
}

func tableError(cause error, message, suggestion string) error {
	return errors.WrapWithCode(cause, errors.ErrTable, message, suggestion)
}

func ruleError(cause error, group, tag, rule string) error {
	return tableError(cause,
		fmt.Sprintf("Fragment '%s' in group '%s' has an invalid %s rule", tag, group, rule),
		"Rules may only name tags authored in the table, '@group' or '!tag'. Fix the typo instead of guessing.")
}
