package doctor

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/rileyhilliard/kalias/internal/config"
	"github.com/rileyhilliard/kalias/internal/output"
	"github.com/rileyhilliard/kalias/internal/util"
)

// ConfigCheck reports which config is in effect.
type ConfigCheck struct {
	Config *config.Config
}

func (c *ConfigCheck) Name() string     { return "config_file" }
func (c *ConfigCheck) Category() string { return "CONFIG" }

func (c *ConfigCheck) Run() CheckResult {
	cfg := c.Config
	settings := fmt.Sprintf("format %s, separator %q", cfg.Format, cfg.Separator)

	if cfg.Path() == "" {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusPass,
			Message: "No config file, using defaults (" + settings + ")",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("Config file: %s (%s)", cfg.Path(), settings),
	}
}

// HeaderCheck verifies the license header is made of shell comments, since
// it is sourced along with the aliases.
type HeaderCheck struct {
	Config *config.Config
}

func (c *HeaderCheck) Name() string     { return "header" }
func (c *HeaderCheck) Category() string { return "CONFIG" }

func (c *HeaderCheck) Run() CheckResult {
	if c.Config.NoHeader {
		return CheckResult{
			Name:    c.Name(),
			Status:  StatusSkip,
			Message: "License header disabled",
		}
	}

	text, source := output.DefaultHeader(), "built-in"
	if c.Config.Header != "" {
		var err error
		if text, err = output.LoadHeader(c.Config.Header); err != nil {
			return CheckResult{
				Name:       c.Name(),
				Status:     StatusFail,
				Message:    fmt.Sprintf("Can't read license header: %s", c.Config.Header),
				Suggestion: "Check the header path, or set no_header: true",
			}
		}
		source = c.Config.Header
	}

	if n := nonCommentLines(text); n > 0 {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("License header (%s) has %d non-comment %s", source, n, util.Pluralize(n, "line", "lines")),
			Suggestion: "Start every header line with '#' so sourcing the aliases doesn't run it",
		}
	}

	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("License header: %s", source),
	}
}

func nonCommentLines(text string) int {
	n := 0
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			n++
		}
	}
	return n
}
