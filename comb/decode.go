package comb

import (
	"log/slog"

	"github.com/goccy/go-yaml"
)

// DecodeYAML parses a sweep document into its expression tree.
//
// A document is a mapping with a single top-level "run" sequence. Each
// element of the sequence is one of:
//
//   - a scalar, emitted as a literal token
//   - a nested sequence, evaluated in order
//   - {cmd: "..."} — a shell-split literal prefix
//   - {arg: name, values: [...], append: true, delete: true}
//   - {sel: name-or-null, choices: {...} or [...]}
//   - {selarg: name-or-null, arg: flag, values: [...]}
//   - {let: name, value: v} or {let: name, default: v}
//   - {fmt: "text with @refs"} — a deferred template
//
// Mappings are decoded through ordered maps so choice declaration order is
// preserved in the enumeration.
func DecodeYAML(data []byte) (*Node, error) {
	var doc any

	err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap())
	if err != nil {
		return nil, ErrDecode.Wrap(err)
	}

	ms, ok := doc.(yaml.MapSlice)
	if !ok {
		return nil, ErrDecode.
			With(slog.String("reason", "document must be a mapping"))
	}

	run, ok := docKey(ms, "run")
	if !ok {
		return nil, ErrDecode.
			With(slog.String("reason", `missing top-level "run" sequence`))
	}

	return decodeNode(run)
}

// docKey looks up key in an ordered mapping.
func docKey(ms yaml.MapSlice, key string) (any, bool) {
	for _, it := range ms {
		if k, ok := it.Key.(string); ok && k == key {
			return it.Value, true
		}
	}

	return nil, false
}

func decodeNode(v any) (*Node, error) {
	switch t := v.(type) {
	case nil:
		return Seq(), nil

	case []any:
		children := make([]*Node, len(t))

		for i, c := range t {
			n, err := decodeNode(c)
			if err != nil {
				return nil, err
			}

			children[i] = n
		}

		return Seq(children...), nil

	case yaml.MapSlice:
		return decodeMapping(t)

	default:
		return Lit(normalizeScalar(t)), nil
	}
}

// decodeMapping dispatches on the mapping's distinguishing key.
func decodeMapping(ms yaml.MapSlice) (*Node, error) {
	if v, ok := docKey(ms, "arg"); ok {
		if _, isSel := docKey(ms, "selarg"); !isSel {
			return decodeArg(ms, v)
		}
	}

	if v, ok := docKey(ms, "selarg"); ok {
		return decodeSelArg(ms, v)
	}

	if v, ok := docKey(ms, "sel"); ok {
		return decodeSel(ms, v)
	}

	if v, ok := docKey(ms, "let"); ok {
		return decodeLet(ms, v)
	}

	if v, ok := docKey(ms, "fmt"); ok {
		src, ok := v.(string)
		if !ok {
			return nil, ErrDecode.
				With(slog.String("reason", "fmt requires a string"))
		}

		return Tmpl(src), nil
	}

	if v, ok := docKey(ms, "cmd"); ok {
		src, ok := v.(string)
		if !ok {
			return nil, ErrDecode.
				With(slog.String("reason", "cmd requires a string"))
		}

		nodes, err := Split(src)
		if err != nil {
			return nil, err
		}

		return Seq(nodes...), nil
	}

	return nil, ErrDecode.
		With(slog.String("reason", "unrecognized mapping element"))
}

func decodeArg(ms yaml.MapSlice, nameVal any) (*Node, error) {
	name, ok := nameVal.(string)
	if !ok || name == "" {
		return nil, ErrDecode.
			With(slog.String("reason", "arg requires a non-empty name"))
	}

	if del, ok := docKey(ms, "delete"); ok {
		if b, ok := del.(bool); ok && b {
			return ArgDelete(name), nil
		}
	}

	values, err := decodeArgValues(ms)
	if err != nil {
		return nil, err
	}

	if app, ok := docKey(ms, "append"); ok {
		if b, ok := app.(bool); ok && b {
			return ArgAppend(name, values...), nil
		}
	}

	return Arg(name, values...), nil
}

// decodeArgValues accepts "values" as a sequence or a single scalar, each
// entry being a primitive or a {fmt: ...} template.
func decodeArgValues(ms yaml.MapSlice) ([]any, error) {
	raw, ok := docKey(ms, "values")
	if !ok || raw == nil {
		return nil, nil
	}

	entries, ok := raw.([]any)
	if !ok {
		entries = []any{raw}
	}

	values := make([]any, len(entries))

	for i, e := range entries {
		if sub, ok := e.(yaml.MapSlice); ok {
			if src, ok := docKey(sub, "fmt"); ok {
				text, ok := src.(string)
				if !ok {
					return nil, ErrDecode.
						With(slog.String("reason", "fmt requires a string"))
				}

				values[i] = Tmpl(text)

				continue
			}

			return nil, ErrDecode.
				With(slog.String("reason", "argument value must be scalar or fmt"))
		}

		values[i] = normalizeScalar(e)
	}

	return values, nil
}

func decodeSel(ms yaml.MapSlice, nameVal any) (*Node, error) {
	name, err := optionalName(nameVal, "sel")
	if err != nil {
		return nil, err
	}

	raw, ok := docKey(ms, "choices")
	if !ok {
		return nil, ErrDecode.
			With(slog.String("reason", "sel requires choices"))
	}

	switch t := raw.(type) {
	case []any:
		// Anonymous alternatives (or positional ones for a named
		// selection, keyed by their formatted value).
		alts := make([]*Node, len(t))

		for i, c := range t {
			n, err := decodeNode(c)
			if err != nil {
				return nil, err
			}

			alts[i] = n
		}

		if name == "" {
			return Sel(alts...), nil
		}

		choices := make([]Choice, len(alts))
		for i, alt := range alts {
			choices[i] = Choose(formatToken(int64(i)), alt)
		}

		return SelVar(name, choices...), nil

	case yaml.MapSlice:
		choices := make([]Choice, len(t))

		for i, it := range t {
			n, err := decodeNode(it.Value)
			if err != nil {
				return nil, err
			}

			choices[i] = Choose(formatToken(normalizeScalar(it.Key)), n)
		}

		if name == "" {
			return nil, ErrDecode.
				With(slog.String("reason", "keyed choices require a sel variable"))
		}

		return SelVar(name, choices...), nil

	default:
		return nil, ErrDecode.
			With(slog.String("reason", "choices must be a sequence or mapping"))
	}
}

func decodeSelArg(ms yaml.MapSlice, nameVal any) (*Node, error) {
	name, err := optionalName(nameVal, "selarg")
	if err != nil {
		return nil, err
	}

	flagVal, ok := docKey(ms, "arg")
	if !ok {
		return nil, ErrDecode.
			With(slog.String("reason", "selarg requires an arg flag name"))
	}

	flag, ok := flagVal.(string)
	if !ok || flag == "" {
		return nil, ErrDecode.
			With(slog.String("reason", "selarg requires a non-empty arg name"))
	}

	raw, ok := docKey(ms, "values")
	if !ok {
		return nil, ErrDecode.
			With(slog.String("reason", "selarg requires values"))
	}

	entries, ok := raw.([]any)
	if !ok {
		entries = []any{raw}
	}

	values := make([]any, len(entries))
	for i, e := range entries {
		values[i] = normalizeScalar(e)
	}

	return SelArg(name, flag, values...), nil
}

func decodeLet(ms yaml.MapSlice, nameVal any) (*Node, error) {
	name, ok := nameVal.(string)
	if !ok || name == "" {
		return nil, ErrDecode.
			With(slog.String("reason", "let requires a non-empty name"))
	}

	value, err := decodeLetValue(ms, "value")
	if err != nil {
		return nil, err
	}

	if value != nil {
		return Let(name, value), nil
	}

	value, err = decodeLetValue(ms, "default")
	if err != nil {
		return nil, err
	}

	if value != nil {
		return LetDefault(name, value), nil
	}

	return nil, ErrDecode.
		With(slog.String("reason", "let requires a value or default"))
}

func decodeLetValue(ms yaml.MapSlice, key string) (any, error) {
	raw, ok := docKey(ms, key)
	if !ok || raw == nil {
		return nil, nil
	}

	if sub, ok := raw.(yaml.MapSlice); ok {
		src, ok := docKey(sub, "fmt")
		if !ok {
			return nil, ErrDecode.
				With(slog.String("reason", "bound value must be scalar or fmt"))
		}

		text, ok := src.(string)
		if !ok {
			return nil, ErrDecode.
				With(slog.String("reason", "fmt requires a string"))
		}

		return Tmpl(text), nil
	}

	return normalizeScalar(raw), nil
}

// optionalName accepts a selection variable given as a string, or absent
// (null) for an anonymous selection.
func optionalName(v any, kind string) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	default:
		return "", ErrDecode.
			With(slog.String("reason", kind+" variable must be a string or null"))
	}
}

// normalizeScalar maps YAML scalar decodings onto the engine's primitive
// set (bool, int64, float64, string).
func normalizeScalar(v any) any {
	switch t := v.(type) {
	case int:
		return int64(t)
	case uint64:
		if t <= 1<<62 {
			return int64(t)
		}

		return t
	default:
		return v
	}
}
