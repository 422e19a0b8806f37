package cli

import (
	"fmt"
	"os"

	"github.com/rileyhilliard/kalias/internal/logger"
	"github.com/rileyhilliard/kalias/internal/ui"
	"github.com/spf13/cobra"
)

// Global flags
var (
	configFlag  string
	verboseFlag bool
	noColorFlag bool
)

// rootCmd generates aliases when run without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "kalias",
	Short: "Generate shell aliases for kubectl",
	Long: `kalias combines kubectl fragments (command, flags, verbs, resources,
output options) into every legal sequence and prints one shell alias per
sequence. Alias names are the concatenated fragment tags:

  k8s.get.pods.wide.   ->   alias k8s.get.pods.wide='kubectl get pods -o=wide'

Source the output from your shell profile:

  kalias > ~/.kube_aliases && echo 'source ~/.kube_aliases' >> ~/.bashrc`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColorFlag {
			ui.DisableColors()
		}
		logger.SetDefault(logger.NewStderr("kalias", verboseFlag))
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return generateCommand(cmd)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFlag, "config", "", "config file (default: .kalias.yaml in the current directory or a parent)")
	pf.BoolVarP(&verboseFlag, "verbose", "v", false, "print debug logs to stderr")
	pf.BoolVar(&noColorFlag, "no-color", false, "disable colored output")
	addTableFlags(pf)
	_ = rootCmd.MarkPersistentFlagFilename(flagTable, "yaml", "yml")

	addOutputFlags(rootCmd.Flags())
	registerFlagCompletions(rootCmd)
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
