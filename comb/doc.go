// Package comb evaluates declarative expression trees describing a space of
// command-line invocations.
//
// A tree is built from a small set of node kinds: literal tokens, flag
// arguments, branch-scoped variable bindings, deferred string templates, and
// selections. A selection is a choice point: expansion forks one branch per
// alternative, so the full enumeration is the cartesian product of every
// selection encountered along a path. One fully expanded path is a branch,
// and each branch yields a concrete argument sequence plus the environment
// that produced it.
//
// # Environment precedence
//
// Variables resolve through three origins, highest precedence first:
//
//  1. Override — supplied before evaluation (e.g. "mode=fast" on the
//     command line); conflicting overrides are rejected up front.
//  2. Binding — introduced by a named selection or [Let]; scoped to the
//     branch subtree that introduced it.
//  3. Default — introduced by [LetDefault]; applies only while no other
//     origin has defined the name.
//
// Variable names are bare identifiers. The "@" sigil is reference syntax
// inside templates (and an optional prefix on override arguments), not part
// of the stored name.
//
// # Named selections
//
// [SelVar] ties a selection to a variable. If the variable is already
// defined when the selection is reached, only the matching choice is taken;
// otherwise every choice is enumerated and the variable is bound to the
// chosen key for the remainder of that branch. Because an outer selection
// binds before an inner one is reached, two selections naming the same
// variable collapse the inner one to the outer's choice.
//
// # Example
//
//	cmds, err := comb.Expand(ctx, env,
//		comb.Lit("train"),
//		comb.Arg("eta", 0.1),
//		comb.SelArg("", "num-iters", 5, 10),
//		comb.Sel(comb.Seq(comb.Arg("greedy")), comb.Seq()),
//	)
//
// enumerates four branches in declaration order, the first selection
// varying slowest.
package comb
