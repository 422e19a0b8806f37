package cli

import (
	"github.com/rileyhilliard/kalias/internal/config"
	"github.com/rileyhilliard/kalias/internal/fragment"
	"github.com/rileyhilliard/kalias/internal/output"
	"github.com/rileyhilliard/kalias/internal/render"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flag names shared by several commands.
const (
	flagSeparator    = "separator"
	flagTable        = "table"
	flagMaxUnordered = "max-unordered"
	flagFormat       = "format"
	flagHeader       = "header"
	flagNoHeader     = "no-header"
)

// addTableFlags adds the flags that pick and shape the fragment table.
func addTableFlags(fs *pflag.FlagSet) {
	fs.String(flagTable, "", "YAML fragment table to use instead of the built-in kubectl table")
	fs.String(flagSeparator, render.DefaultSeparator, "separator trimmed from both ends of alias names")
	fs.Int(flagMaxUnordered, fragment.DefaultMaxUnordered, "largest unordered group allowed (0 for no limit)")
}

// addOutputFlags adds the flags that control how aliases are written.
func addOutputFlags(fs *pflag.FlagSet) {
	fs.String(flagFormat, string(output.FormatBash), "alias syntax: bash (also zsh, sh) or fish")
	fs.String(flagHeader, "", "file whose contents replace the built-in license header")
	fs.Bool(flagNoHeader, false, "don't write the license header")
}

// registerFlagCompletions adds completions for the output flags of cmd.
func registerFlagCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc(flagFormat, func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, len(output.Formats))
		for i, f := range output.Formats {
			names[i] = string(f)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.MarkFlagFilename(flagHeader)
}

// applyFlags overrides cfg with every flag the user set explicitly.
// Flags not defined on fs are ignored.
func applyFlags(cfg *config.Config, fs *pflag.FlagSet) error {
	var err error

	if fs.Changed(flagTable) {
		if cfg.Table, err = fs.GetString(flagTable); err != nil {
			return err
		}
	}
	if fs.Changed(flagSeparator) {
		if cfg.Separator, err = fs.GetString(flagSeparator); err != nil {
			return err
		}
	}
	if fs.Changed(flagMaxUnordered) {
		if cfg.MaxUnordered, err = fs.GetInt(flagMaxUnordered); err != nil {
			return err
		}
	}
	if fs.Changed(flagFormat) {
		if cfg.Format, err = fs.GetString(flagFormat); err != nil {
			return err
		}
	}

	// A header flag overrides the opposite setting from the config file.
	if fs.Changed(flagHeader) {
		if cfg.Header, err = fs.GetString(flagHeader); err != nil {
			return err
		}
		if !fs.Changed(flagNoHeader) {
			cfg.NoHeader = false
		}
	}
	if fs.Changed(flagNoHeader) {
		if cfg.NoHeader, err = fs.GetBool(flagNoHeader); err != nil {
			return err
		}
		if cfg.NoHeader && !fs.Changed(flagHeader) {
			cfg.Header = ""
		}
	}
	return nil
}
