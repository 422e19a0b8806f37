package doctor

import (
	stderrors "errors"
	"os"
	"strings"
	"testing"

	"github.com/rileyhilliard/kalias/internal/config"
	"github.com/rileyhilliard/kalias/internal/fragment"
	"github.com/rileyhilliard/kalias/internal/kubectl"
)

func compiled(t *testing.T, groups ...fragment.Group) *fragment.Compiled {
	t.Helper()
	c, err := fragment.Compile(fragment.Table{Groups: groups})
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	return c
}

func TestTableCheck(t *testing.T) {
	check := &TableCheck{Source: "built-in", Compile: func() (*fragment.Compiled, error) {
		return kubectl.Compiled()
	}}

	result := check.Run()

	if result.Status != StatusPass {
		t.Fatalf("expected pass, got %v: %s", result.Status, result.Message)
	}
	if !strings.Contains(result.Message, "6 groups") || !strings.Contains(result.Message, "9864000 candidates") {
		t.Errorf("unexpected message %q", result.Message)
	}
	if check.Table() == nil {
		t.Error("expected the compiled table to be kept")
	}
}

func TestTableCheck_Failure(t *testing.T) {
	check := &TableCheck{Source: "t.yaml", Compile: func() (*fragment.Compiled, error) {
		return fragment.Compile(fragment.Table{Groups: []fragment.Group{
			{Name: "cmd", Fragments: []fragment.Fragment{{Tag: "k.", Requires: fragment.TagSet{"dep"}}}},
		}})
	}}

	result := check.Run()

	if result.Status != StatusFail {
		t.Fatalf("expected fail, got %v", result.Status)
	}
	if !strings.HasPrefix(result.Message, "t.yaml doesn't compile") || !strings.Contains(result.Message, "dep") {
		t.Errorf("unexpected message %q", result.Message)
	}
	if result.Suggestion == "" {
		t.Error("expected the structured error's suggestion")
	}
	if check.Table() != nil {
		t.Error("expected no table after a failed compile")
	}

	plain := &TableCheck{Source: "t.yaml", Compile: func() (*fragment.Compiled, error) {
		return nil, stderrors.New("boom")
	}}
	if got := plain.Run(); got.Message != "t.yaml doesn't compile: boom" {
		t.Errorf("unexpected message %q", got.Message)
	}
}

func TestTableCheck_TooManyCandidates(t *testing.T) {
	check := &TableCheck{Source: "t.yaml", Compile: func() (*fragment.Compiled, error) {
		return fragment.Compile(fragment.Table{Groups: []fragment.Group{
			{Name: "cmd", Fragments: []fragment.Fragment{{Tag: "k."}}},
			{Name: "flags", Optional: true, Fragments: []fragment.Fragment{{Tag: "a."}, {Tag: "b."}, {Tag: "c."}}},
		}}, fragment.WithMaxCandidates(4))
	}}

	result := check.Run()
	if result.Status != StatusFail || !strings.Contains(result.Message, "too many candidates") {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestRequirementsCheck_SkippedWithoutTable(t *testing.T) {
	result := (&RequirementsCheck{Table: &TableCheck{}}).Run()
	if result.Status != StatusSkip {
		t.Errorf("expected skip, got %v", result.Status)
	}
}

func TestRequirementsCheck_BuiltinTable(t *testing.T) {
	tc := &TableCheck{Source: "built-in", Compile: func() (*fragment.Compiled, error) {
		return kubectl.Compiled()
	}}
	results := RunAll([]Check{tc, &RequirementsCheck{Table: tc}})

	if results[1].Status != StatusPass {
		t.Errorf("expected every built-in requirement to be reachable: %s", results[1].Message)
	}
}

func TestUnreachable(t *testing.T) {
	table := compiled(t,
		fragment.Group{Name: "cmd", Fragments: []fragment.Fragment{{Tag: "k."}}},
		fragment.Group{Name: "verb", Optional: true, Exclusive: true, Fragments: []fragment.Fragment{
			{Tag: "get."},
			{Tag: "rm.", Requires: fragment.TagSet{"get."}},
		}},
		fragment.Group{Name: "ordered", Optional: true, Fragments: []fragment.Fragment{
			{Tag: "a.", Requires: fragment.TagSet{"b."}},
			{Tag: "b.", Requires: fragment.TagSet{"k."}},
			{Tag: "c.", Requires: fragment.TagSet{"a."}},
		}},
		fragment.Group{Name: "flag", Optional: true, Unordered: true, Fragments: []fragment.Fragment{
			{Tag: "x.", Requires: fragment.TagSet{"y."}},
			{Tag: "y."},
			{Tag: "z.", Requires: fragment.TagSet{"late."}},
		}},
		fragment.Group{Name: "last", Optional: true, Fragments: []fragment.Fragment{{Tag: "late."}}},
	)

	got := strings.Join(Unreachable(table), ",")
	if got != "verb/rm.,ordered/a.,flag/z." {
		t.Errorf("Unreachable() = %q", got)
	}

	result := (&RequirementsCheck{Table: &TableCheck{table: table}}).Run()
	if result.Status != StatusWarn || !strings.Contains(result.Message, "3 fragments can never appear") {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestConfigCheck(t *testing.T) {
	result := (&ConfigCheck{Config: config.DefaultConfig()}).Run()
	if result.Status != StatusPass || !strings.Contains(result.Message, "using defaults") {
		t.Errorf("unexpected result %+v", result)
	}
	if !strings.Contains(result.Message, `separator "."`) {
		t.Errorf("expected settings in %q", result.Message)
	}
}

func TestHeaderCheck(t *testing.T) {
	t.Run("built-in header", func(t *testing.T) {
		result := (&HeaderCheck{Config: config.DefaultConfig()}).Run()
		if result.Status != StatusPass {
			t.Errorf("expected pass, got %+v", result)
		}
	})

	t.Run("disabled", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.NoHeader = true
		if got := (&HeaderCheck{Config: cfg}).Run().Status; got != StatusSkip {
			t.Errorf("expected skip, got %v", got)
		}
	})

	t.Run("non-comment lines", func(t *testing.T) {
		for text, want := range map[string]string{
			"# ok\necho hi\n":  "has 1 non-comment line",
			"echo a\necho b\n": "has 2 non-comment lines",
		} {
			cfg := config.DefaultConfig()
			cfg.Header = t.TempDir() + "/header.txt"
			if err := os.WriteFile(cfg.Header, []byte(text), 0o644); err != nil {
				t.Fatal(err)
			}
			result := (&HeaderCheck{Config: cfg}).Run()
			if result.Status != StatusWarn || !strings.Contains(result.Message, want) {
				t.Errorf("expected warning containing %q, got %+v", want, result)
			}
		}
	})

	t.Run("missing file", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Header = t.TempDir() + "/missing.txt"
		if got := (&HeaderCheck{Config: cfg}).Run().Status; got != StatusFail {
			t.Errorf("expected fail, got %v", got)
		}
	})
}

func TestNonCommentLines(t *testing.T) {
	if n := nonCommentLines("# a\n\n  # b\n"); n != 0 {
		t.Errorf("expected 0, got %d", n)
	}
	if n := nonCommentLines("# a\nrm -rf /\nb\n"); n != 2 {
		t.Errorf("expected 2, got %d", n)
	}
}
