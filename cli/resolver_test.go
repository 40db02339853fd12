package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func lookupFlag(t *testing.T, r kong.Resolver, name string) any {
	t.Helper()

	flag := &kong.Flag{Value: &kong.Value{Name: name}}

	v, err := r.Resolve(nil, nil, flag)
	if err != nil {
		t.Fatalf("resolve %q: %v", name, err)
	}

	return v
}

func TestResolveConfigFile(t *testing.T) {
	r, err := resolve(strings.NewReader(`
log-level: debug
log_format: json
file: experiments/grid.yaml
retries: 3
`))
	if err != nil {
		t.Fatalf("load error: %v", err)
	}

	if v := lookupFlag(t, r, "log-level"); v != "debug" {
		t.Errorf("log-level = %v, want debug", v)
	}

	// Underscore spellings resolve for hyphenated flags.
	if v := lookupFlag(t, r, "log-format"); v != "json" {
		t.Errorf("log-format = %v, want json", v)
	}

	if v := lookupFlag(t, r, "file"); v != "experiments/grid.yaml" {
		t.Errorf("file = %v", v)
	}

	// Numbers resolve as strings for Kong's flag parsers.
	if v := lookupFlag(t, r, "retries"); v != "3" {
		t.Errorf("retries = %v (%T), want \"3\"", v, v)
	}

	if v := lookupFlag(t, r, "absent"); v != nil {
		t.Errorf("absent flag resolved to %v", v)
	}
}

func TestResolveMalformedConfig(t *testing.T) {
	// A broken config file must not block the CLI.
	r, err := resolve(strings.NewReader("[not, a, mapping]"))
	if err != nil {
		t.Fatalf("malformed config returned error: %v", err)
	}

	if v := lookupFlag(t, r, "log-level"); v != nil {
		t.Errorf("malformed config resolved %v", v)
	}
}
