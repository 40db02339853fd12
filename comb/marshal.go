package comb

import (
	"github.com/goccy/go-yaml"
)

// MarshalYAML renders a tree back into sweep document form.
//
// The output is canonical rather than source-identical: selection-argument
// shortcuts are emitted in their desugared sel/choices form, and a
// top-level sequence always appears under "run".
func MarshalYAML(root *Node) ([]byte, error) {
	doc := yaml.MapSlice{{Key: "run", Value: marshalRun(root)}}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, ErrDecode.Wrap(err)
	}

	return out, nil
}

// marshalRun flattens the root into the top-level sequence.
func marshalRun(root *Node) []any {
	if root != nil && root.Kind == KindSeq {
		out := make([]any, len(root.Nodes))
		for i, n := range root.Nodes {
			out[i] = marshalNode(n)
		}

		return out
	}

	return []any{marshalNode(root)}
}

func marshalNode(n *Node) any {
	if n == nil {
		return nil
	}

	switch n.Kind {
	case KindLit:
		return n.Value

	case KindArg:
		return marshalArg(n)

	case KindSel:
		return marshalSel(n)

	case KindLet:
		key := "value"
		if n.Default {
			key = "default"
		}

		return yaml.MapSlice{
			{Key: "let", Value: n.Name},
			{Key: key, Value: marshalValue(n.Value)},
		}

	case KindTmpl:
		return yaml.MapSlice{{Key: "fmt", Value: n.Text}}

	case KindSeq:
		out := make([]any, len(n.Nodes))
		for i, c := range n.Nodes {
			out[i] = marshalNode(c)
		}

		return out

	default:
		return nil
	}
}

func marshalArg(n *Node) any {
	ms := yaml.MapSlice{{Key: "arg", Value: n.Name}}

	if n.Delete {
		return append(ms, yaml.MapItem{Key: "delete", Value: true})
	}

	if len(n.Values) > 0 {
		values := make([]any, len(n.Values))

		for i, v := range n.Values {
			if v.Kind == KindTmpl {
				values[i] = yaml.MapSlice{{Key: "fmt", Value: v.Text}}

				continue
			}

			values[i] = v.Value
		}

		ms = append(ms, yaml.MapItem{Key: "values", Value: values})
	}

	if n.Append {
		ms = append(ms, yaml.MapItem{Key: "append", Value: true})
	}

	return ms
}

func marshalSel(n *Node) any {
	var name any
	if n.Name != "" {
		name = n.Name
	}

	// Anonymous alternatives marshal as a sequence, named ones as an
	// ordered mapping from key to subtree.
	if n.Name == "" {
		alts := make([]any, len(n.Choices))
		for i, c := range n.Choices {
			alts[i] = marshalNode(c.Node)
		}

		return yaml.MapSlice{
			{Key: "sel", Value: name},
			{Key: "choices", Value: alts},
		}
	}

	choices := make(yaml.MapSlice, len(n.Choices))
	for i, c := range n.Choices {
		choices[i] = yaml.MapItem{Key: c.Key, Value: marshalNode(c.Node)}
	}

	return yaml.MapSlice{
		{Key: "sel", Value: name},
		{Key: "choices", Value: choices},
	}
}

// marshalValue renders a Let's bound value, which may be a template node.
func marshalValue(v any) any {
	if t, ok := v.(*Node); ok && t.Kind == KindTmpl {
		return yaml.MapSlice{{Key: "fmt", Value: t.Text}}
	}

	return v
}
