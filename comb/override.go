package comb

import (
	"log/slog"
	"regexp"
)

// overridePattern matches one override argument: an optional @ prefix, an
// identifier, and a value (possibly empty).
var overridePattern = regexp.MustCompile(`^@?(\w+)=(.*)$`)

// ParseOverrides builds the initial override environment from invocation
// arguments of the form name=value (or @name=value).
//
// Any argument not matching that form is rejected with [ErrUsage], and two
// overrides naming the same variable with different values are rejected
// with [ErrConflict]. Both are detected before any expansion begins.
// Values are parsed with the integer/float/bool/string fallback chain.
func ParseOverrides(args []string) (Env, error) {
	env := MakeEnv()

	for _, arg := range args {
		m := overridePattern.FindStringSubmatch(arg)
		if m == nil {
			return Env{}, ErrUsage.With(slog.String("argument", arg))
		}

		err := env.SetOverride(m[1], parseScalar(m[2]))
		if err != nil {
			return Env{}, err
		}
	}

	return env, nil
}
