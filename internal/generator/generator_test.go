package generator

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rileyhilliard/kalias/internal/fragment"
	"github.com/rileyhilliard/kalias/internal/kubectl"
	"github.com/rileyhilliard/kalias/internal/logger"
	"github.com/rileyhilliard/kalias/internal/render"
	"github.com/rileyhilliard/kalias/internal/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallTable(t *testing.T) *fragment.Compiled {
	t.Helper()
	c, err := fragment.Compile(fragment.Table{Groups: []fragment.Group{
		{Name: "cmd", Fragments: []fragment.Fragment{{Tag: "k.", Expansion: "kubectl"}}},
		{Name: "verb", Optional: true, Exclusive: true, Fragments: []fragment.Fragment{
			{Tag: "get.", Expansion: "get"},
			{Tag: "rm.", Expansion: "delete"},
		}},
		{Name: "flag", Optional: true, Unordered: true, Fragments: []fragment.Fragment{
			{Tag: "w.", Expansion: "-o=wide", Requires: fragment.TagSet{"get."}},
			{Tag: "all.", Expansion: "--all-namespaces", Requires: fragment.TagSet{"get."}},
			{Tag: "all.", Expansion: "--all", Requires: fragment.TagSet{"rm."}},
		}},
	}})
	require.NoError(t, err)
	return c
}

func readGolden(t *testing.T) []string {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", "aliases.golden"))
	require.NoError(t, err)
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	require.NoError(t, sc.Err())
	return lines
}

func TestGenerator_SmallTable(t *testing.T) {
	g := New(smallTable(t))

	var got []string
	for _, a := range g.Collect() {
		got = append(got, a.Name+"="+a.Expansion)
	}

	assert.Equal(t, []string{
		"k=kubectl",
		"k.get=kubectl get",
		"k.rm=kubectl delete",
		"k.get.w=kubectl get -o=wide",
		"k.get.all=kubectl get --all-namespaces",
		"k.rm.all=kubectl delete --all",
		"k.get.w.all=kubectl get -o=wide --all-namespaces",
		"k.get.all.w=kubectl get --all-namespaces -o=wide",
	}, got)
}

func TestGenerator_Separator(t *testing.T) {
	g := New(smallTable(t), WithSeparator(""))

	aliases := g.Collect()
	require.NotEmpty(t, aliases)
	assert.Equal(t, "k.", aliases[0].Name)
}

func TestGenerator_StopsEarly(t *testing.T) {
	g := New(smallTable(t))

	n := 0
	for range g.Aliases() {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestGenerator_LogsProgress(t *testing.T) {
	buf := logger.NewBufferLogger()
	New(smallTable(t), WithLogger(buf)).Collect()

	require.Len(t, buf.Messages, 2)
	assert.Equal(t, "expanding 3 groups into 48 candidates", buf.Messages[0].Message)
	assert.Equal(t, "accepted 8 of 48 candidates", buf.Messages[1].Message)
}

func TestGenerator_Explain(t *testing.T) {
	g := New(smallTable(t))

	assert.Equal(t, []render.Alias{{Name: "k.rm.all", Expansion: "kubectl delete --all"}}, g.Explain("k.rm.all"))
	assert.Empty(t, g.Explain("k.rm.w"))
}

func TestGenerator_Stats(t *testing.T) {
	s := New(smallTable(t)).Stats()

	assert.Equal(t, 48, s.Candidates)
	assert.Equal(t, 8, s.Accepted)
	assert.Equal(t, 40, s.RejectedTotal())
	assert.Equal(t, s.Candidates, s.Accepted+s.RejectedTotal())
	assert.Positive(t, s.Rejected[rules.MissingRequirement])
	assert.Empty(t, s.Collisions)

	require.Len(t, s.Groups, 3)
	assert.Equal(t, GroupStats{Name: "cmd", Policy: "exactly one", Fragments: 1, Selections: 1}, s.Groups[0])
	assert.Equal(t, GroupStats{Name: "verb", Policy: "at most one", Fragments: 2, Selections: 3}, s.Groups[1])
	assert.Equal(t, GroupStats{Name: "flag", Policy: "any subset, permuted", Fragments: 3, Selections: 16}, s.Groups[2])
}

func TestGenerator_StatsCountsCollisions(t *testing.T) {
	c, err := fragment.Compile(fragment.Table{Groups: []fragment.Group{
		{Name: "cmd", Fragments: []fragment.Fragment{{Tag: "k.", Expansion: "kubectl"}}},
		{Name: "flag", Optional: true, Exclusive: true, Fragments: []fragment.Fragment{
			{Tag: "all.", Expansion: "--all-namespaces"},
			{Tag: "all.", Expansion: "--all"},
		}},
	}})
	require.NoError(t, err)
	g := New(c)

	assert.Equal(t, map[string]int{"k.all": 2}, g.Stats().Collisions)
	assert.Len(t, g.Explain("k.all"), 2)
}

func TestPolicy(t *testing.T) {
	assert.Equal(t, "any subset", Policy(fragment.Group{Optional: true}))
}

// The built-in table must reproduce the reference alias set line for line.
func TestGenerator_BuiltinMatchesGolden(t *testing.T) {
	if testing.Short() {
		t.Skip("expands the full built-in table")
	}

	table, err := kubectl.Compiled()
	require.NoError(t, err)

	var got []string
	for a := range New(table).Aliases() {
		got = append(got, fmt.Sprintf("alias %s='%s'", a.Name, a.Expansion))
	}

	want := readGolden(t)
	require.Len(t, got, len(want))
	for i := range want {
		if !assert.Equal(t, want[i], got[i], "line %d", i+1) {
			break
		}
	}
	assert.True(t, strings.HasPrefix(got[0], "alias k8s='kubectl'"))
}

func TestGenerator_BuiltinStats(t *testing.T) {
	if testing.Short() {
		t.Skip("expands the full built-in table")
	}

	table, err := kubectl.Compiled()
	require.NoError(t, err)

	s := New(table).Stats()
	assert.Equal(t, 1*2*10*9*13700*4, s.Candidates)
	assert.Equal(t, 738, s.Accepted)
	assert.Empty(t, s.Collisions)
}
