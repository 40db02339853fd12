package comb

import (
	"log/slog"
	"maps"
	"slices"
)

// origin identifies which layer defined a variable.
type origin uint8

const (
	originDefault origin = iota
	originBinding
	originOverride
)

// entry is one variable slot: its effective value and the highest-precedence
// origin that produced it.
type entry struct {
	value  any
	origin origin
}

// Env is the variable environment threaded through an expansion.
//
// It resolves names through three layered origins (override > binding >
// default) and is forked at every selection branch point, so sibling
// branches never observe each other's bindings. The zero value is not
// usable; construct with [MakeEnv].
type Env struct {
	table map[string]entry
}

// MakeEnv creates an empty environment.
func MakeEnv() Env {
	return Env{table: make(map[string]entry)}
}

// SetOverride installs an externally-supplied value for name.
//
// Overrides take precedence over every in-tree binding. Installing a second
// override for the same name with a different value returns [ErrConflict];
// repeating the same value is a no-op.
func (e Env) SetOverride(name string, value any) error {
	if cur, ok := e.table[name]; ok && cur.origin == originOverride {
		if cur.value != value {
			return ErrConflict.With(
				slog.String("name", name),
				slog.Any("first", cur.value),
				slog.Any("second", value),
			)
		}

		return nil
	}

	e.table[name] = entry{value: value, origin: originOverride}

	return nil
}

// Bind records a branch-scoped explicit binding for name.
//
// An existing override silently shadows the binding; override always wins.
func (e Env) Bind(name string, value any) {
	if cur, ok := e.table[name]; ok && cur.origin == originOverride {
		return
	}

	e.table[name] = entry{value: value, origin: originBinding}
}

// SetDefault installs a default value for name only if no origin has
// defined it yet.
func (e Env) SetDefault(name string, value any) {
	if _, ok := e.table[name]; ok {
		return
	}

	e.table[name] = entry{value: value, origin: originDefault}
}

// Defined reports whether any origin has defined name.
func (e Env) Defined(name string) bool {
	_, ok := e.table[name]

	return ok
}

// Resolve returns the effective value of name by precedence order.
// It returns [ErrUndefinedVariable] if no origin has ever defined name.
func (e Env) Resolve(name string) (any, error) {
	cur, ok := e.table[name]
	if !ok {
		err := ErrUndefinedVariable.With(slog.String("name", name))
		if hint := suggest(name, e.Names()); hint != "" {
			err = err.With(slog.String("did_you_mean", hint))
		}

		return nil, err
	}

	return cur.value, nil
}

// Fork produces a child environment sharing everything established so far
// but free to add further bindings without affecting the parent.
func (e Env) Fork() Env {
	return Env{table: maps.Clone(e.table)}
}

// Len returns the number of defined variables.
func (e Env) Len() int { return len(e.table) }

// Names returns all defined variable names in sorted order.
func (e Env) Names() []string {
	return slices.Sorted(maps.Keys(e.table))
}
