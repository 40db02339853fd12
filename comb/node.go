package comb

import (
	"log/slog"
)

// Kind indicates the kind of node.
type Kind uint8

const (
	// KindLit represents a fixed literal token.
	KindLit Kind = iota

	// KindArg represents a flag argument: --name followed by its values.
	KindArg

	// KindSel represents a selection branch point.
	KindSel

	// KindLet represents a branch-scoped variable binding.
	KindLet

	// KindTmpl represents a deferred string template.
	KindTmpl

	// KindSeq represents an ordered group of child nodes.
	KindSeq
)

// String returns a string representation of the node kind.
func (k Kind) String() string {
	switch k {
	case KindLit:
		return "Lit"
	case KindArg:
		return "Arg"
	case KindSel:
		return "Sel"
	case KindLet:
		return "Let"
	case KindTmpl:
		return "Tmpl"
	case KindSeq:
		return "Seq"
	default:
		return "Unknown"
	}
}

// Choice pairs a selection key with its alternative subtree.
// An empty Key marks an anonymous alternative with no variable recorded.
type Choice struct {
	Key  string
	Node *Node
}

// Node is one vertex of an expression tree.
//
// Trees are pure data: they are constructed once, never mutated, and
// evaluating the same tree against the same override environment always
// produces the same enumeration in the same order. Exactly which fields are
// set depends on Kind.
type Node struct {
	Kind Kind

	Name    string   // Arg flag name; Sel or Let variable name
	Value   any      // Lit token; Let bound value (primitive or *Node template)
	Values  []*Node  // Arg values (literal or template nodes)
	Choices []Choice // Sel alternatives, in declaration order
	Nodes   []*Node  // Seq children
	Text    string   // Tmpl source
	Append  bool     // Arg: extend the previous occurrence's values
	Delete  bool     // Arg: remove the previous occurrence entirely
	Default bool     // Let: bind only if the name is still undefined
}

// Lit creates a literal token node. Non-string primitives are formatted
// when the token is emitted.
func Lit(v any) *Node {
	return &Node{Kind: KindLit, Value: v}
}

// Arg creates an argument node emitting --name followed by values.
// Values may be primitives or template nodes created with [Tmpl].
//
// A later Arg with the same name replaces this occurrence's values; the
// flag is still emitted at this occurrence's position.
func Arg(name string, values ...any) *Node {
	return &Node{Kind: KindArg, Name: name, Values: argValues(values)}
}

// ArgAppend creates an argument node extending the values of an earlier
// occurrence of --name instead of replacing them.
func ArgAppend(name string, values ...any) *Node {
	return &Node{
		Kind:   KindArg,
		Name:   name,
		Values: argValues(values),
		Append: true,
	}
}

// ArgDelete creates an argument node removing every earlier occurrence of
// --name from the branch.
func ArgDelete(name string) *Node {
	return &Node{Kind: KindArg, Name: name, Delete: true}
}

// Sel creates an anonymous selection over the given alternatives.
// Expansion forks one branch per alternative; no variable is recorded.
func Sel(alts ...*Node) *Node {
	choices := make([]Choice, len(alts))
	for i, alt := range alts {
		choices[i] = Choice{Node: alt}
	}

	return &Node{Kind: KindSel, Choices: choices}
}

// SelVar creates a named selection bound to the given variable.
//
// If the variable is defined when the selection is reached, only the choice
// whose key matches the variable's value is taken. Otherwise every choice
// is enumerated and the variable is bound to the chosen key for the
// remainder of that branch.
func SelVar(name string, choices ...Choice) *Node {
	return &Node{Kind: KindSel, Name: name, Choices: choices}
}

// Choose pairs a selection key with its subtree for use with [SelVar].
func Choose(key string, node *Node) Choice {
	return Choice{Key: key, Node: node}
}

// SelArg creates a selection-argument shortcut: it selects over the given
// literal values and emits --flag carrying the selected value. An empty
// varName makes the selection anonymous; otherwise the selected value is
// also bound to varName.
func SelArg(varName, flag string, values ...any) *Node {
	choices := make([]Choice, len(values))

	for i, v := range values {
		key := ""
		if varName != "" {
			key = formatToken(v)
		}

		choices[i] = Choice{Key: key, Node: Arg(flag, v)}
	}

	return &Node{Kind: KindSel, Name: varName, Choices: choices}
}

// Let creates an explicit binding of name to v for the remainder of the
// branch. No token is emitted. The value may be a template node, resolved
// at the Let's position.
func Let(name string, v any) *Node {
	return &Node{Kind: KindLet, Name: name, Value: v}
}

// LetDefault creates a default binding: name is bound to v only if no
// override or binding has defined it yet.
func LetDefault(name string, v any) *Node {
	return &Node{Kind: KindLet, Name: name, Value: v, Default: true}
}

// Tmpl creates a deferred template node. References of the form @name are
// substituted with the branch environment's value for name; @@ emits a
// literal @. Only bindings introduced before the template's position in the
// branch are visible to it.
func Tmpl(src string) *Node {
	return &Node{Kind: KindTmpl, Text: src}
}

// Seq creates an ordered group of child nodes, evaluated left to right.
func Seq(children ...*Node) *Node {
	return &Node{Kind: KindSeq, Nodes: children}
}

// argValues normalizes Arg values: template and literal nodes pass through,
// primitives are wrapped as literals.
func argValues(values []any) []*Node {
	nodes := make([]*Node, len(values))

	for i, v := range values {
		if n, ok := v.(*Node); ok {
			nodes[i] = n

			continue
		}

		nodes[i] = Lit(v)
	}

	return nodes
}

// Validate eagerly checks the structure of the given trees, so declaration
// errors surface before any expansion begins.
func Validate(nodes ...*Node) error {
	for _, n := range nodes {
		err := validateNode(n)
		if err != nil {
			return err
		}
	}

	return nil
}

func validateNode(n *Node) error {
	if n == nil {
		return ErrInvalidNode.With(slog.String("reason", "nil node"))
	}

	switch n.Kind {
	case KindLit, KindTmpl:
		return nil

	case KindArg:
		if n.Name == "" {
			return ErrInvalidNode.
				With(slog.String("reason", "argument with empty name"))
		}

		for _, v := range n.Values {
			if v == nil || (v.Kind != KindLit && v.Kind != KindTmpl) {
				return ErrInvalidNode.With(
					slog.String("reason", "argument value must be literal or template"),
					slog.String("name", n.Name),
				)
			}
		}

		return nil

	case KindSel:
		if len(n.Choices) == 0 {
			return ErrEmptySelection.With(slog.String("name", n.Name))
		}

		for _, c := range n.Choices {
			err := validateNode(c.Node)
			if err != nil {
				return err
			}
		}

		return nil

	case KindLet:
		if n.Name == "" {
			return ErrInvalidNode.
				With(slog.String("reason", "binding with empty name"))
		}

		if v, ok := n.Value.(*Node); ok && v.Kind != KindTmpl {
			return ErrInvalidNode.With(
				slog.String("reason", "bound node value must be a template"),
				slog.String("name", n.Name),
			)
		}

		return nil

	case KindSeq:
		return Validate(n.Nodes...)

	default:
		return ErrInvalidNode.With(slog.String("kind", n.Kind.String()))
	}
}
