package cli

import (
	"io"

	"github.com/rileyhilliard/kalias/internal/config"
	"github.com/rileyhilliard/kalias/internal/fragment"
	"github.com/rileyhilliard/kalias/internal/generator"
	"github.com/rileyhilliard/kalias/internal/kubectl"
	"github.com/rileyhilliard/kalias/internal/logger"
	"github.com/rileyhilliard/kalias/internal/output"
	"github.com/spf13/pflag"
)

// builtinSource names the built-in table in reports.
const builtinSource = "built-in kubectl table"

// loadConfig finds the config file, overlays the flags in fs and validates
// the result.
func loadConfig(explicit string, fs *pflag.FlagSet) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(explicit)
	if err != nil {
		return nil, err
	}

	if p := cfg.Path(); p != "" {
		logger.Default().Debug("using config %s", p)
	}

	if err := applyFlags(cfg, fs); err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// tableSource describes where the fragment table comes from.
func tableSource(cfg *config.Config) string {
	if cfg.Table == "" {
		return builtinSource
	}
	return cfg.Table
}

// compileTable loads and validates the table cfg points at.
func compileTable(cfg *config.Config) (*fragment.Compiled, error) {
	opt := fragment.WithMaxUnordered(cfg.MaxUnordered)
	if cfg.Table == "" {
		return kubectl.Compiled(opt)
	}

	table, err := config.LoadTable(cfg.Table)
	if err != nil {
		return nil, err
	}
	return fragment.Compile(table, opt)
}

// newGenerator compiles the table and builds a generator for it.
func newGenerator(cfg *config.Config) (*generator.Generator, error) {
	table, err := compileTable(cfg)
	if err != nil {
		return nil, err
	}
	logger.Default().Debug("compiled %s: %d groups, %d tags", tableSource(cfg), len(table.Groups), len(table.Tags))

	return generator.New(table,
		generator.WithSeparator(cfg.Separator),
		generator.WithLogger(logger.Default()),
	), nil
}

// newWriter builds the alias writer for w from the output settings in cfg.
func newWriter(w io.Writer, cfg *config.Config) (*output.Writer, error) {
	format, err := output.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}

	opts := []output.Option{output.WithFormat(format)}
	switch {
	case cfg.NoHeader:
		opts = append(opts, output.WithHeaderMode(output.HeaderNever))
	case cfg.Header != "":
		text, err := output.LoadHeader(cfg.Header)
		if err != nil {
			return nil, err
		}
		opts = append(opts, output.WithHeader(text))
	}
	return output.NewWriter(w, opts...), nil
}
