package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolve is a [kong.ConfigurationLoader] that reads flag defaults from a
// YAML configuration file.
//
// The file is a flat mapping from flag name to value:
//
//	log-level: debug
//	log-format: text
//	file: experiments/grid.yaml
//
// Flag names may be written with hyphens or underscores. Command-line flags
// override config file values. A malformed or non-mapping file resolves to
// an empty configuration rather than an error, so a broken config never
// blocks the CLI.
func resolve(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return config{}, nil //nolint:nilerr
	}

	var doc map[string]any

	err = yaml.Unmarshal(data, &doc)
	if err != nil {
		return config{}, nil //nolint:nilerr
	}

	flat := make(config, len(doc))
	for key, value := range doc {
		flat[key] = flagValue(value)
	}

	return flat, nil
}

// config implements [kong.Resolver] for YAML config files.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := r[flag.Name]; ok {
		return value, nil
	}

	// Accept underscore spellings of hyphenated flag names.
	if value, ok := r[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}

	return nil, nil
}

// flagValue renders a decoded YAML value in the form Kong's flag parsers
// expect: numbers as strings, everything else as decoded.
func flagValue(v any) any {
	switch num := v.(type) {
	case int64:
		return strconv.FormatInt(num, 10)
	case uint64:
		return strconv.FormatUint(num, 10)
	case float64:
		return strconv.FormatFloat(num, 'f', -1, 64)
	default:
		return v
	}
}
