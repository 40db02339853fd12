package comb

import (
	"strconv"
	"strings"

	"mvdan.cc/sh/v3/shell"
	"mvdan.cc/sh/v3/syntax"
)

// Command is one fully resolved invocation: the ordered argument tokens of
// a single branch and the closed environment that produced them.
type Command struct {
	Args []string
	Env  Env
}

// String renders the command as a single shell-quotable line.
func (c Command) String() string {
	quoted := make([]string, len(c.Args))

	for i, arg := range c.Args {
		q, err := syntax.Quote(arg, syntax.LangBash)
		if err != nil {
			// Arguments containing bytes the shell cannot represent
			// (e.g. NUL) fall back to Go quoting.
			q = strconv.Quote(arg)
		}

		quoted[i] = q
	}

	return strings.Join(quoted, " ")
}

// Split tokenizes a shell-style command prefix into literal nodes. It
// allows copying a command verbatim into a tree without spelling out each
// token:
//
//	nodes, err := comb.Split("ssh -t host 'nvidia-smi'")
func Split(s string) ([]*Node, error) {
	fields, err := shell.Fields(s, nil)
	if err != nil {
		return nil, ErrDecode.Wrap(err)
	}

	nodes := make([]*Node, len(fields))
	for i, f := range fields {
		nodes[i] = Lit(f)
	}

	return nodes, nil
}

// interpretArgs flattens a completed branch's items into final tokens.
//
// Argument occurrences with the same flag name interact: a plain occurrence
// replaces the values of an earlier one, an append occurrence extends them,
// and a delete occurrence removes the flag entirely. Each surviving flag is
// emitted once, at the position of its first occurrence. Pending templates
// are resolved here, against the environment snapshots captured during the
// walk.
func interpretArgs(items []item) ([]string, error) {
	// First pass: the effective values for each flag name.
	values := make(map[string][]string)

	for _, it := range items {
		if it.arg == nil {
			continue
		}

		a := it.arg

		switch {
		case a.delete:
			delete(values, a.name)

		case a.append:
			vals, err := resolveItems(a.values)
			if err != nil {
				return nil, err
			}

			values[a.name] = append(values[a.name], vals...)

		default:
			vals, err := resolveItems(a.values)
			if err != nil {
				return nil, err
			}

			values[a.name] = vals
		}
	}

	// Second pass: emit tokens in source order. Only the first surviving
	// occurrence of a flag emits; later ones were modifications.
	tokens := make([]string, 0, len(items))

	for _, it := range items {
		if it.arg != nil {
			vals, ok := values[it.arg.name]
			if !ok {
				continue
			}

			tokens = append(tokens, "--"+it.arg.name)
			tokens = append(tokens, vals...)
			delete(values, it.arg.name)

			continue
		}

		text, err := resolveItem(it)
		if err != nil {
			return nil, err
		}

		tokens = append(tokens, text)
	}

	return tokens, nil
}

// resolveItem returns the final token text for one item.
func resolveItem(it item) (string, error) {
	if it.tmpl != nil {
		return ResolveTemplate(it.tmpl.src, it.tmpl.env)
	}

	return it.text, nil
}

func resolveItems(items []item) ([]string, error) {
	out := make([]string, len(items))

	for i, it := range items {
		text, err := resolveItem(it)
		if err != nil {
			return nil, err
		}

		out[i] = text
	}

	return out, nil
}
