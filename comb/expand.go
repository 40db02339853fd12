package comb

import (
	"context"
	"log/slog"
	"slices"
	"strings"
)

// item is one emitted element of a branch: a resolved literal token, a
// pending template, or an argument occurrence.
type item struct {
	text string
	tmpl *pending
	arg  *argItem
}

// pending is a deferred template together with a snapshot of the
// environment at its position. Bindings introduced later in the branch are
// invisible to it.
type pending struct {
	src string
	env Env
}

// argItem is one occurrence of a flag argument awaiting interpretation.
type argItem struct {
	name   string
	values []item
	append bool
	delete bool
}

// state is one partial-evaluation entry on the expansion worklist: a cursor
// into the remaining node sequence, the tokens accumulated so far, and the
// branch's forked environment.
type state struct {
	rest  []*Node
	items []item
	env   Env
}

// Expand enumerates every branch of the expression tree formed by nodes
// (an implicit top-level sequence), evaluated against the given override
// environment.
//
// The walk is depth-first and left-to-right: the first-declared selection
// is the outermost, slowest-varying loop, and the enumeration order is
// stable across runs. Structural errors (empty selections, conflicting
// overrides, unknown choices, undefined template variables) abort the whole
// run with no output.
func Expand(ctx context.Context, env Env, nodes ...*Node) ([]Command, error) {
	err := Validate(nodes...)
	if err != nil {
		return nil, err
	}

	stack := []state{{rest: nodes, env: env.Fork()}}

	var cmds []Command

	for len(stack) > 0 {
		err := ctx.Err()
		if err != nil {
			return nil, err
		}

		st := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		forked, err := walk(&st, &stack)
		if err != nil {
			return nil, err
		}

		if forked {
			continue
		}

		// Branch complete: close its environment and resolve its tokens.
		tokens, err := interpretArgs(st.items)
		if err != nil {
			return nil, err
		}

		cmds = append(cmds, Command{Args: tokens, Env: st.env})
	}

	return cmds, nil
}

// walk consumes nodes from st until it either forks at a selection
// (pushing successor states and reporting true) or exhausts the sequence.
func walk(st *state, stack *[]state) (bool, error) {
	for len(st.rest) > 0 {
		n := st.rest[0]
		st.rest = st.rest[1:]

		switch n.Kind {
		case KindSeq:
			st.rest = prepend(n.Nodes, st.rest)

		case KindLit:
			st.items = append(st.items, item{text: formatToken(n.Value)})

		case KindTmpl:
			st.items = append(st.items, item{
				tmpl: &pending{src: n.Text, env: st.env.Fork()},
			})

		case KindArg:
			st.items = append(st.items, item{arg: makeArgItem(n, st.env)})

		case KindLet:
			err := applyLet(n, st.env)
			if err != nil {
				return false, err
			}

		case KindSel:
			return true, fork(st, n, stack)
		}
	}

	return false, nil
}

// makeArgItem captures an argument occurrence, snapshotting the environment
// for any template values.
func makeArgItem(n *Node, env Env) *argItem {
	a := &argItem{name: n.Name, append: n.Append, delete: n.Delete}

	for _, v := range n.Values {
		if v.Kind == KindTmpl {
			a.values = append(a.values, item{
				tmpl: &pending{src: v.Text, env: env.Fork()},
			})

			continue
		}

		a.values = append(a.values, item{text: formatToken(v.Value)})
	}

	return a
}

// applyLet mutates the branch environment in place. A template value is
// resolved at the Let's position.
func applyLet(n *Node, env Env) error {
	value := n.Value

	if t, ok := value.(*Node); ok {
		resolved, err := ResolveTemplate(t.Text, env)
		if err != nil {
			return err
		}

		value = resolved
	}

	if n.Default {
		env.SetDefault(n.Name, value)

		return nil
	}

	env.Bind(n.Name, value)

	return nil
}

// fork replaces the current state with one successor per selection
// alternative. Each successor forks the environment, applies the named
// binding if any, and continues with the alternative's subtree followed by
// the remaining sibling nodes.
func fork(st *state, n *Node, stack *[]state) error {
	choices := n.Choices
	bind := n.Name != ""

	// A defined selection variable collapses the choice point.
	if bind && st.env.Defined(n.Name) {
		value, err := st.env.Resolve(n.Name)
		if err != nil {
			return err
		}

		i, err := matchChoice(n, formatToken(value))
		if err != nil {
			return err
		}

		choices = choices[i : i+1]
		bind = false
	}

	// Push in reverse so the first-declared choice is expanded first.
	for i := len(choices) - 1; i >= 0; i-- {
		env := st.env.Fork()
		if bind && choices[i].Key != "" {
			env.Bind(n.Name, choices[i].Key)
		}

		*stack = append(*stack, state{
			rest:  prepend([]*Node{choices[i].Node}, st.rest),
			items: slices.Clone(st.items),
			env:   env,
		})
	}

	return nil
}

// matchChoice returns the index of the choice whose key equals want.
func matchChoice(n *Node, want string) (int, error) {
	keys := make([]string, len(n.Choices))
	for i, c := range n.Choices {
		keys[i] = c.Key
	}

	i := slices.Index(keys, want)
	if i >= 0 {
		return i, nil
	}

	err := ErrUnknownChoice.With(
		slog.String("name", n.Name),
		slog.String("value", want),
		slog.String("choices", strings.Join(keys, ", ")),
	)
	if hint := suggest(want, keys); hint != "" {
		err = err.With(slog.String("did_you_mean", hint))
	}

	return -1, err
}

// prepend returns head followed by tail in a fresh slice, so sibling
// states never share a backing array.
func prepend(head, tail []*Node) []*Node {
	out := make([]*Node, 0, len(head)+len(tail))

	return append(append(out, head...), tail...)
}
