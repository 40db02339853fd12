package comb

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

// expandLines expands nodes and joins each branch's tokens with spaces.
func expandLines(t *testing.T, env Env, nodes ...*Node) []string {
	t.Helper()

	cmds, err := Expand(context.Background(), env, nodes...)
	if err != nil {
		t.Fatalf("expand error: %v", err)
	}

	lines := make([]string, len(cmds))
	for i, c := range cmds {
		lines[i] = strings.Join(c.Args, " ")
	}

	return lines
}

func checkLines(t *testing.T, got, want []string) {
	t.Helper()

	if !reflect.DeepEqual(got, want) {
		t.Errorf("branches mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestExpandGridSweep(t *testing.T) {
	got := expandLines(t, MakeEnv(),
		Lit("train"),
		Arg("eta", 0.1),
		SelArg("", "num-iters", 5, 10),
		Sel(Seq(Arg("greedy")), Seq()),
	)

	checkLines(t, got, []string{
		"train --eta 0.1 --num-iters 5 --greedy",
		"train --eta 0.1 --num-iters 5",
		"train --eta 0.1 --num-iters 10 --greedy",
		"train --eta 0.1 --num-iters 10",
	})
}

func TestExpandNamedSelectionDefault(t *testing.T) {
	tree := []*Node{
		LetDefault("mode", "slow"),
		SelVar("mode",
			Choose("fast", Seq(Arg("num-iters", 5), Arg("greedy"))),
			Choose("slow", Arg("num-iters", 10)),
		),
		Arg("output", Tmpl("@mode.out")),
	}

	got := expandLines(t, MakeEnv(), tree...)

	checkLines(t, got, []string{
		"--num-iters 10 --output slow.out",
	})
}

func TestExpandNamedSelectionOverride(t *testing.T) {
	env, err := ParseOverrides([]string{"mode=fast"})
	if err != nil {
		t.Fatalf("parse overrides: %v", err)
	}

	got := expandLines(t, env,
		LetDefault("mode", "slow"),
		SelVar("mode",
			Choose("fast", Seq(Arg("num-iters", 5), Arg("greedy"))),
			Choose("slow", Arg("num-iters", 10)),
		),
		Arg("output", Tmpl("@mode.out")),
	)

	checkLines(t, got, []string{
		"--num-iters 5 --greedy --output fast.out",
	})
}

func TestExpandNamedSelectionEnumerates(t *testing.T) {
	// An undefined selection variable enumerates every choice and binds the
	// chosen key for the remainder of each branch.
	got := expandLines(t, MakeEnv(),
		SelVar("mode",
			Choose("fast", Arg("num-iters", 5)),
			Choose("slow", Arg("num-iters", 10)),
		),
		Tmpl("out/@mode"),
	)

	checkLines(t, got, []string{
		"--num-iters 5 out/fast",
		"--num-iters 10 out/slow",
	})
}

func TestExpandUnknownChoice(t *testing.T) {
	env, err := ParseOverrides([]string{"mode=medium"})
	if err != nil {
		t.Fatalf("parse overrides: %v", err)
	}

	_, err = Expand(context.Background(), env,
		SelVar("mode",
			Choose("fast", Seq()),
			Choose("slow", Seq()),
		),
	)
	if !errors.Is(err, ErrUnknownChoice) {
		t.Fatalf("expected ErrUnknownChoice, got %v", err)
	}
}

func TestExpandUnusedOverride(t *testing.T) {
	env, err := ParseOverrides([]string{"nonexistent=1"})
	if err != nil {
		t.Fatalf("parse overrides: %v", err)
	}

	got := expandLines(t, env, Lit("echo"), Arg("eta", 0.1))

	checkLines(t, got, []string{"echo --eta 0.1"})
}

func TestExpandEmptySelection(t *testing.T) {
	_, err := Expand(context.Background(), MakeEnv(), Lit("run"), Sel())
	if !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection, got %v", err)
	}
}

func TestExpandCartesianProduct(t *testing.T) {
	got := expandLines(t, MakeEnv(),
		Sel(Lit("a"), Lit("b")),
		Sel(Lit("x"), Lit("y"), Lit("z")),
	)

	checkLines(t, got, []string{
		"a x", "a y", "a z",
		"b x", "b y", "b z",
	})
}

func TestExpandNoSelection(t *testing.T) {
	got := expandLines(t, MakeEnv(), Lit("echo"), Lit("hello"))

	checkLines(t, got, []string{"echo hello"})
}

func TestExpandArgReplace(t *testing.T) {
	got := expandLines(t, MakeEnv(),
		Lit("foo"),
		Arg("bar", 3),
		Arg("bar", 5),
	)

	// The later occurrence replaces the values, but the flag keeps the
	// position of its first occurrence.
	checkLines(t, got, []string{"foo --bar 5"})
}

func TestExpandArgAppend(t *testing.T) {
	got := expandLines(t, MakeEnv(),
		Arg("bar", 3),
		ArgAppend("bar", 5),
	)

	checkLines(t, got, []string{"--bar 3 5"})
}

func TestExpandArgDelete(t *testing.T) {
	got := expandLines(t, MakeEnv(),
		Lit("foo"),
		Arg("bar", 3),
		ArgDelete("bar"),
	)

	checkLines(t, got, []string{"foo"})
}

func TestExpandArgNoValues(t *testing.T) {
	got := expandLines(t, MakeEnv(), Lit("foo"), Arg("greedy"))

	checkLines(t, got, []string{"foo --greedy"})
}

func TestExpandLet(t *testing.T) {
	got := expandLines(t, MakeEnv(),
		Let("x", 3),
		Tmpl("iter=@x"),
	)

	checkLines(t, got, []string{"iter=3"})
}

func TestExpandLetRebind(t *testing.T) {
	got := expandLines(t, MakeEnv(),
		Let("x", 3),
		Let("x", 4),
		Tmpl("iter=@x"),
	)

	checkLines(t, got, []string{"iter=4"})
}

func TestExpandLetDefaultAfterBinding(t *testing.T) {
	got := expandLines(t, MakeEnv(),
		Let("x", 3),
		LetDefault("x", 4),
		Tmpl("iter=@x"),
	)

	checkLines(t, got, []string{"iter=3"})
}

func TestExpandLetTemplateValue(t *testing.T) {
	got := expandLines(t, MakeEnv(),
		Let("x", 3),
		Let("y", Tmpl("@x")),
		Tmpl("iter=@y"),
	)

	checkLines(t, got, []string{"iter=3"})
}

func TestExpandOverrideBeatsLet(t *testing.T) {
	env, err := ParseOverrides([]string{"x=9"})
	if err != nil {
		t.Fatalf("parse overrides: %v", err)
	}

	got := expandLines(t, env, Let("x", 3), Tmpl("@x"))

	checkLines(t, got, []string{"9"})
}

func TestExpandTemplateSnapshot(t *testing.T) {
	// An argument value template captures the environment at the argument's
	// position; a later rebinding is invisible to it.
	got := expandLines(t, MakeEnv(),
		Let("x", 1),
		Arg("o", Tmpl("@x")),
		Let("x", 2),
		Tmpl("@x"),
	)

	checkLines(t, got, []string{"--o 1 2"})
}

func TestExpandTemplateBeforeBinding(t *testing.T) {
	_, err := Expand(context.Background(), MakeEnv(),
		Tmpl("@x"),
		SelVar("x",
			Choose("1", Seq()),
			Choose("2", Seq()),
		),
	)
	if !errors.Is(err, ErrUndefinedVariable) {
		t.Fatalf("expected ErrUndefinedVariable, got %v", err)
	}
}

func TestExpandNestedSameVariable(t *testing.T) {
	// The outer selection binds the variable, so the inner one collapses to
	// the matching choice instead of forking again.
	inner := SelVar("m",
		Choose("a", Lit("inner-a")),
		Choose("b", Lit("inner-b")),
	)

	got := expandLines(t, MakeEnv(),
		SelVar("m",
			Choose("a", inner),
			Choose("b", Lit("outer-b")),
		),
	)

	checkLines(t, got, []string{"inner-a", "outer-b"})
}

func TestExpandDeterministic(t *testing.T) {
	tree := []*Node{
		SelVar("mode",
			Choose("fast", Arg("num-iters", 5)),
			Choose("slow", Arg("num-iters", 10)),
		),
		SelArg("", "seed", 1, 2, 3),
		Arg("output", Tmpl("@mode.out")),
	}

	first := expandLines(t, MakeEnv(), tree...)
	second := expandLines(t, MakeEnv(), tree...)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("enumeration order unstable:\n%q\n%q", first, second)
	}

	if len(first) != 6 {
		t.Errorf("expected 6 branches, got %d", len(first))
	}
}

func TestExpandCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Expand(ctx, MakeEnv(), Lit("echo"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
