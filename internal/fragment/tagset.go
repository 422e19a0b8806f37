package fragment

import "slices"

// Rule entry prefixes understood by Compile.
const (
	// GroupRefPrefix expands to every tag of the named group ("@resource").
	GroupRefPrefix = "@"
	// RemovePrefix removes a tag from the set after expansion ("!pods.").
	RemovePrefix = "!"
)

// TagSet is an ordered set of tags. A nil TagSet is empty.
type TagSet []string

// NewTagSet builds a set from tags, keeping first-seen order.
func NewTagSet(tags ...string) TagSet {
	if len(tags) == 0 {
		return nil
	}
	out := make(TagSet, 0, len(tags))
	for _, t := range tags {
		if !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}

// Contains reports whether tag is a member.
func (s TagSet) Contains(tag string) bool {
	return slices.Contains(s, tag)
}

// Empty reports whether the set has no members.
func (s TagSet) Empty() bool {
	return len(s) == 0
}

// Without returns the members not present in other.
func (s TagSet) Without(other TagSet) TagSet {
	var out TagSet
	for _, t := range s {
		if !other.Contains(t) {
			out = append(out, t)
		}
	}
	return out
}

// Union returns the members of s followed by the new members of other.
func (s TagSet) Union(other TagSet) TagSet {
	return NewTagSet(append(slices.Clone(s), other...)...)
}
