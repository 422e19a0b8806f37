// Package kubectl holds the built-in fragment table for kubectl aliases.
package kubectl

import "github.com/rileyhilliard/kalias/internal/fragment"

// Group names of the built-in table. Rules reference ResourceGroup as a
// derived set ("@resource").
const (
	CommandGroup    = "cmd"
	GlobalGroup     = "global"
	VerbGroup       = "verb"
	ResourceGroup   = "resource"
	FlagGroup       = "flag"
	PositionalGroup = "positional"
)

var (
	readVerbs    = fragment.TagSet{"get.", "desc.", "rm."}
	allResources = fragment.GroupRefPrefix + ResourceGroup
)

// Table returns the built-in, uncompiled table.
func Table() fragment.Table {
	return fragment.Table{Groups: []fragment.Group{
		{
			Name: CommandGroup,
			Fragments: []fragment.Fragment{
				{Tag: "k8s.", Expansion: "kubectl"},
			},
		},
		{
			Name:      GlobalGroup,
			Optional:  true,
			Unordered: true,
			Fragments: []fragment.Fragment{
				{Tag: "sys.", Expansion: "--namespace=kube-system", Excludes: fragment.TagSet{"sys."}},
			},
		},
		{
			Name:      VerbGroup,
			Optional:  true,
			Exclusive: true,
			Fragments: []fragment.Fragment{
				{Tag: "apply.", Expansion: "apply --recursive -f"},
				{Tag: "exec.", Expansion: "exec -i -t"},
				{Tag: "logs.", Expansion: "logs -f"},
				{Tag: "logs.previous.", Expansion: "logs -f -p"},
				{Tag: "proxy.", Expansion: "proxy", Excludes: fragment.TagSet{"sys."}},
				{Tag: "get.", Expansion: "get"},
				{Tag: "desc.", Expansion: "describe"},
				{Tag: "rm.", Expansion: "delete"},
				{Tag: "run.", Expansion: "run --rm --restart=Never --image-pull-policy=IfNotPresent -i -t"},
			},
		},
		{
			Name:      ResourceGroup,
			Optional:  true,
			Exclusive: true,
			Fragments: []fragment.Fragment{
				{Tag: "pods.", Expansion: "pods", Requires: readVerbs},
				{Tag: "deployment.", Expansion: "deployment", Requires: readVerbs},
				{Tag: "svc.", Expansion: "service", Requires: readVerbs},
				{Tag: "ingress.", Expansion: "ingress", Requires: readVerbs},
				{Tag: "confmap.", Expansion: "configmap", Requires: readVerbs},
				{Tag: "secret.", Expansion: "secret", Requires: readVerbs},
				// Deliberately no sys. exclusion. The old generator excluded
				// "sys", a tag nothing carries, so it never matched and
				// k8s.sys.get.nodes stays in the output.
				{Tag: "nodes.", Expansion: "nodes", Requires: fragment.TagSet{"get.", "desc."}},
				{Tag: "ns.", Expansion: "namespaces", Requires: readVerbs, Excludes: fragment.TagSet{"sys."}},
			},
		},
		{
			Name:      FlagGroup,
			Optional:  true,
			Unordered: true,
			Fragments: []fragment.Fragment{
				{Tag: "yaml.", Expansion: "-o=yaml", Requires: fragment.TagSet{"get."},
					Excludes: fragment.TagSet{"wide.", "json.", "showlabels."}},
				{Tag: "wide.", Expansion: "-o=wide", Requires: fragment.TagSet{"get."},
					Excludes: fragment.TagSet{"yaml.", "json."}},
				{Tag: "json.", Expansion: "-o=json", Requires: fragment.TagSet{"get."},
					Excludes: fragment.TagSet{"wide.", "yaml.", "showlabels."}},
				{Tag: "all.", Expansion: "--all-namespaces", Requires: fragment.TagSet{"get.", "desc."},
					Excludes: fragment.TagSet{"rm.", "file.", "nodes.", "sys."}},
				// Excludes every resource but pods. The old generator also
				// removed "dep", a tag nothing carries, so deployment. stays
				// excluded.
				{Tag: "showlabels.", Expansion: "--show-labels", Requires: fragment.TagSet{"get."},
					Excludes: fragment.TagSet{"yaml.", "json.", allResources, "!pods."}},
				// Reuses the "all." tag; rm.all and get.all render the same way.
				{Tag: "all.", Expansion: "--all", Requires: fragment.TagSet{"rm."}},
				{Tag: "watch.", Expansion: "--watch", Requires: fragment.TagSet{"get."},
					Excludes: fragment.TagSet{"yaml.", "json.", "wide."}},
			},
		},
		{
			// These take a value, so they go last and at most one is used.
			Name:      PositionalGroup,
			Optional:  true,
			Exclusive: true,
			Fragments: []fragment.Fragment{
				{Tag: "file.", Expansion: "--recursive -f", Requires: readVerbs,
					Excludes: fragment.TagSet{allResources, "all.", "label.", "sys."}},
				{Tag: "label.", Expansion: "-l", Requires: readVerbs,
					Excludes: fragment.TagSet{"file.", "all."}},
				{Tag: "namespace.", Expansion: "--namespace",
					Requires: fragment.TagSet{"get.", "desc.", "rm.", "logs.", "exec."},
					Excludes: fragment.TagSet{"ns.", "nodes.", "sys.", "all."}},
			},
		},
	}}
}

// Compiled returns the built-in table, validated and resolved.
func Compiled(opts ...fragment.CompileOption) (*fragment.Compiled, error) {
	return fragment.Compile(Table(), opts...)
}
