package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rileyhilliard/kalias/internal/errors"
	"github.com/rileyhilliard/kalias/internal/output"
)

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but kalias only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade kalias or lower the version in your config.")
	}

	if err := validateSeparator(cfg.Separator); err != nil {
		return err
	}

	if _, err := output.ParseFormat(cfg.Format); err != nil {
		return err
	}

	if cfg.MaxUnordered < 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("max_unordered can't be negative (got %d)", cfg.MaxUnordered),
			"Use 0 to disable the cap, or a positive group size.")
	}

	if cfg.Header != "" && cfg.NoHeader {
		return errors.New(errors.ErrConfig,
			"'header' and 'no_header' can't be used together",
			"Pick one: a custom header file, or no header at all.")
	}

	for field, path := range map[string]string{"header": cfg.Header, "table": cfg.Table} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				fmt.Sprintf("The '%s' file can't be read: %s", field, path),
				"Paths are relative to the config file. Check the file exists.")
		}
	}

	return nil
}

// validateSeparator rejects separators that would break the alias line.
func validateSeparator(sep string) error {
	if strings.ContainsAny(sep, " \t\n'\"=") {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Separator %q can't contain whitespace, quotes or '='", sep),
			"Use something like '.' or '-'.")
	}
	return nil
}
