package config

import (
	"bytes"
	"io"
	"os"

	"github.com/rileyhilliard/kalias/internal/errors"
	"github.com/rileyhilliard/kalias/internal/fragment"
	"gopkg.in/yaml.v3"
)

// LoadTable reads a fragment table from a YAML file. The table is not
// compiled; pass it to fragment.Compile.
//
//	groups:
//	  - name: cmd
//	    fragments:
//	      - {tag: "k.", expansion: kubectl}
//	  - name: verb
//	    optional: true
//	    exclusive: true
//	    fragments:
//	      - {tag: "get.", expansion: get}
func LoadTable(path string) (fragment.Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return fragment.Table{}, errors.WrapWithCode(err, errors.ErrConfig,
			"Can't read fragment table: "+path,
			"Check the --table path or the 'table' key in your config.")
	}
	return ParseTable(b, path)
}

// ParseTable decodes a YAML fragment table. Unknown keys are rejected so
// typos like "exclude:" don't silently drop a rule.
func ParseTable(data []byte, source string) (fragment.Table, error) {
	var t fragment.Table
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil && err != io.EOF {
		return fragment.Table{}, errors.WrapWithCode(err, errors.ErrTable,
			"Invalid fragment table in "+source,
			"Check the YAML syntax and field names (tag, expansion, requires, excludes).")
	}
	return t, nil
}
