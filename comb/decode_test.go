package comb

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

const sweepDoc = `
run:
  - cmd: echo train
  - arg: eta
    values: [0.1]
  - let: mode
    default: slow
  - sel: mode
    choices:
      fast:
        - arg: num-iters
          values: [5]
        - arg: greedy
      slow:
        arg: num-iters
        values: [10]
  - arg: output
    values:
      - fmt: "@mode.out"
`

func TestDecodeYAML(t *testing.T) {
	root, err := DecodeYAML([]byte(sweepDoc))
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}

	got := expandLines(t, MakeEnv(), root)

	checkLines(t, got, []string{
		"echo train --eta 0.1 --num-iters 10 --output slow.out",
	})

	env, err := ParseOverrides([]string{"mode=fast"})
	if err != nil {
		t.Fatalf("parse overrides: %v", err)
	}

	got = expandLines(t, env, root)

	checkLines(t, got, []string{
		"echo train --eta 0.1 --num-iters 5 --greedy --output fast.out",
	})
}

func TestDecodeSelArg(t *testing.T) {
	root, err := DecodeYAML([]byte(`
run:
  - foo
  - selarg: ~
    arg: num-iters
    values: [5, 10]
`))
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}

	got := expandLines(t, MakeEnv(), root)

	checkLines(t, got, []string{
		"foo --num-iters 5",
		"foo --num-iters 10",
	})
}

func TestDecodeAnonymousSel(t *testing.T) {
	root, err := DecodeYAML([]byte(`
run:
  - run
  - sel: ~
    choices:
      - arg: greedy
      - []
`))
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}

	got := expandLines(t, MakeEnv(), root)

	checkLines(t, got, []string{"run --greedy", "run"})
}

func TestDecodeArgModifiers(t *testing.T) {
	root, err := DecodeYAML([]byte(`
run:
  - arg: bar
    values: [3]
  - arg: bar
    values: [5]
    append: true
  - arg: baz
    values: [1]
  - arg: baz
    delete: true
`))
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}

	got := expandLines(t, MakeEnv(), root)

	checkLines(t, got, []string{"--bar 3 5"})
}

func TestDecodeChoiceOrder(t *testing.T) {
	// Choice declaration order, not key order, drives the enumeration.
	root, err := DecodeYAML([]byte(`
run:
  - sel: m
    choices:
      zebra: [z]
      alpha: [a]
      mid: [m]
`))
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}

	got := expandLines(t, MakeEnv(), root)

	checkLines(t, got, []string{"z", "a", "m"})
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not mapping", `[1, 2]`},
		{"missing run", `other: []`},
		{"unknown element", "run:\n  - what: 1"},
		{"sel without choices", "run:\n  - sel: m"},
		{"keyed choices unnamed", "run:\n  - sel: ~\n    choices:\n      a: []"},
		{"let without value", "run:\n  - let: x"},
		{"bad yaml", "run: [unclosed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeYAML([]byte(tt.doc))
			if !errors.Is(err, ErrDecode) {
				t.Fatalf("expected ErrDecode, got %v", err)
			}
		})
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	root, err := DecodeYAML([]byte(sweepDoc))
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}

	out, err := MarshalYAML(root)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}

	again, err := DecodeYAML(out)
	if err != nil {
		t.Fatalf("re-decode error: %v\n%s", err, out)
	}

	first, err := Expand(context.Background(), MakeEnv(), root)
	if err != nil {
		t.Fatalf("expand error: %v", err)
	}

	second, err := Expand(context.Background(), MakeEnv(), again)
	if err != nil {
		t.Fatalf("re-expand error: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("branch count changed: %d != %d", len(first), len(second))
	}

	for i := range first {
		if !reflect.DeepEqual(first[i].Args, second[i].Args) {
			t.Errorf("branch %d changed: %q != %q",
				i, first[i].Args, second[i].Args)
		}
	}
}
