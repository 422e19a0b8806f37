package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/kalias/internal/config"
	"github.com/rileyhilliard/kalias/internal/doctor"
	"github.com/rileyhilliard/kalias/internal/errors"
	"github.com/rileyhilliard/kalias/internal/fragment"
	"github.com/rileyhilliard/kalias/internal/logger"
	"github.com/rileyhilliard/kalias/internal/output"
	"github.com/rileyhilliard/kalias/internal/rules"
	"github.com/rileyhilliard/kalias/internal/ui"
	"github.com/rileyhilliard/kalias/internal/util"
	"github.com/spf13/cobra"
)

// generateCmd writes every alias to stdout
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write all aliases to stdout",
	Long: `Generate every alias the fragment table allows and write them to stdout,
one definition per line.

When stdout is not a terminal, a license header comment is written first.
Use --header to replace it or --no-header to drop it.

Examples:
  kalias generate > ~/.kube_aliases
  kalias generate --format fish > ~/.config/fish/conf.d/kalias.fish
  kalias generate --table ./oc.yaml --separator -`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return generateCommand(cmd)
	},
}

// statsCmd summarizes a generation run
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how many aliases each part of the table produces",
	Long: `Run the full generation and report, per group, its selection policy and
how many selections it contributes, then the candidate, accepted and
rejected totals and any alias names generated more than once.

Examples:
  kalias stats
  kalias stats --table ./oc.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configFlag, cmd.Flags())
		if err != nil {
			return err
		}
		return runStats(cmd.OutOrStdout(), cfg)
	},
}

// explainCmd shows what alias names expand to
var explainCmd = &cobra.Command{
	Use:   "explain <alias>...",
	Short: "Show the command an alias expands to",
	Long: `Look up one or more alias names and print the command each expands to.
A name generated by more than one sequence is reported as a collision; the
shell keeps the last definition.

Examples:
  kalias explain k8s.get.pods.wide
  kalias explain k8s.desc.svc k8s.rm.po.all`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configFlag, cmd.Flags())
		if err != nil {
			return err
		}
		return runExplain(cmd.OutOrStdout(), cfg, args)
	},
}

// checkCmd validates the config and the table without generating
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the config and fragment table",
	Long: `Load the config, compile the fragment table and report configuration
errors such as unknown tags or groups in rules, empty mandatory groups,
conflicting group policies and unordered groups over the size limit.
Fragments whose requirements can never be met are reported as warnings.

Examples:
  kalias check
  kalias check --table ./oc.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configFlag, cmd.Flags())
		if err != nil {
			return err
		}
		return runCheck(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	addOutputFlags(generateCmd.Flags())
	registerFlagCompletions(generateCmd)

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(checkCmd)
}

func generateCommand(cmd *cobra.Command) error {
	cfg, err := loadConfig(configFlag, cmd.Flags())
	if err != nil {
		return err
	}
	return runGenerate(cmd.OutOrStdout(), cfg)
}

// runGenerate writes all aliases for cfg to w.
func runGenerate(w io.Writer, cfg *config.Config) error {
	gen, err := newGenerator(cfg)
	if err != nil {
		return err
	}
	out, err := newWriter(w, cfg)
	if err != nil {
		return err
	}

	n, err := out.WriteAll(gen.Aliases())
	if err != nil {
		return err
	}
	logger.Default().Debug("wrote %d %s", n, util.Pluralize(n, "alias", "aliases"))
	return nil
}

// runStats writes the stats report for cfg to w.
func runStats(w io.Writer, cfg *config.Config) error {
	gen, err := newGenerator(cfg)
	if err != nil {
		return err
	}

	s := gen.Stats()
	rows := make([]ui.GroupRow, len(s.Groups))
	for i, g := range s.Groups {
		rows[i] = ui.GroupRow{Name: g.Name, Policy: g.Policy, Fragments: g.Fragments, Selections: g.Selections}
	}

	_, err = fmt.Fprint(w, ui.RenderStats(rows, ui.StatsSummary{
		Candidates: s.Candidates,
		Accepted:   s.Accepted,
		Requires:   s.Rejected[rules.MissingRequirement],
		Excludes:   s.Rejected[rules.ExcludedPredecessor],
		Collisions: slices.Sorted(maps.Keys(s.Collisions)),
	}))
	return err
}

// runExplain writes the expansions of each name to w, in argument order.
// All names are resolved in a single generation pass.
func runExplain(w io.Writer, cfg *config.Config, names []string) error {
	gen, err := newGenerator(cfg)
	if err != nil {
		return err
	}

	found := make(map[string][]string, len(names))
	for _, n := range names {
		found[n] = nil
	}
	for a := range gen.Aliases() {
		if _, ok := found[a.Name]; ok {
			found[a.Name] = append(found[a.Name], a.Expansion)
		}
	}

	entries := make([]ui.ExplainEntry, len(names))
	for i, n := range names {
		entries[i] = ui.ExplainEntry{Name: n, Expansions: found[n]}
	}
	_, err = fmt.Fprint(w, ui.RenderExplain(entries))
	return err
}

// runCheck runs the diagnostic checks for cfg and writes the report to w.
// It fails when any check fails; warnings are reported only.
func runCheck(w io.Writer, cfg *config.Config) error {
	format, err := output.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	table := &doctor.TableCheck{
		Source:  tableSource(cfg),
		Compile: func() (*fragment.Compiled, error) { return compileTable(cfg) },
	}
	checks := []doctor.Check{
		&doctor.ConfigCheck{Config: cfg},
		&doctor.HeaderCheck{Config: cfg},
		table,
		&doctor.RequirementsCheck{Table: table},
		&doctor.SyntaxCheck{Table: table, Format: format, Separator: cfg.Separator},
	}

	results := doctor.RunAll(checks)
	if _, err := fmt.Fprint(w, renderCheckReport(checks, results)); err != nil {
		return err
	}

	if doctor.HasFailures(results) {
		return errors.New(errors.ErrTable,
			doctor.Summary(results),
			"Fix the failed checks above, then run 'kalias check' again.")
	}
	return nil
}

func renderCheckReport(checks []doctor.Check, results []doctor.CheckResult) string {
	successStyle := lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	errorStyle := lipgloss.NewStyle().Foreground(ui.ColorError)
	warnStyle := lipgloss.NewStyle().Foreground(ui.ColorWarning)
	mutedStyle := lipgloss.NewStyle().Foreground(ui.ColorMuted)
	headerStyle := lipgloss.NewStyle().Bold(true)

	var b strings.Builder
	grouped, order := doctor.GroupByCategory(checks)
	for _, category := range order {
		b.WriteString(headerStyle.Render(category) + "\n")

		for _, idx := range grouped[category] {
			result := results[idx]

			symbol, style := ui.SymbolSuccess, successStyle
			switch result.Status {
			case doctor.StatusWarn:
				symbol, style = ui.SymbolWarning, warnStyle
			case doctor.StatusFail:
				symbol, style = ui.SymbolFail, errorStyle
			case doctor.StatusSkip:
				symbol, style = ui.SymbolSkipped, mutedStyle
			}
			b.WriteString(fmt.Sprintf("  %s %s\n", style.Render(symbol), result.Message))

			if result.Suggestion != "" && (result.Status == doctor.StatusWarn || result.Status == doctor.StatusFail) {
				b.WriteString(fmt.Sprintf("    %s\n", mutedStyle.Render(result.Suggestion)))
			}
		}
		b.WriteString("\n")
	}

	if doctor.HasIssues(results) {
		b.WriteString(fmt.Sprintf("%s %s\n", warnStyle.Render(ui.SymbolWarning), doctor.Summary(results)))
	} else {
		b.WriteString(fmt.Sprintf("%s %s\n", successStyle.Render(ui.SymbolSuccess), doctor.Summary(results)))
	}
	return b.String()
}
