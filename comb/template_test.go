package comb

import (
	"errors"
	"testing"
)

func TestResolveTemplate(t *testing.T) {
	env := MakeEnv()
	env.Bind("mode", "fast")
	env.Bind("eta", 0.1)
	env.Bind("n", int64(5))

	tests := []struct {
		name string
		src  string
		want string
	}{
		{"single", "@mode", "fast"},
		{"embedded", "out/@mode.log", "out/fast.log"},
		{"multiple", "@mode-@n", "fast-5"},
		{"float", "eta=@eta", "eta=0.1"},
		{"escaped", "user@@host", "user@host"},
		{"lone", "cmd @ arg", "cmd @ arg"},
		{"trailing", "end@", "end@"},
		{"empty", "", ""},
		{"plain", "no refs here", "no refs here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveTemplate(tt.src, env)
			if err != nil {
				t.Fatalf("resolve error: %v", err)
			}

			if got != tt.want {
				t.Errorf("ResolveTemplate(%q) = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestResolveTemplateUndefined(t *testing.T) {
	env := MakeEnv()
	env.Bind("mode", "fast")

	_, err := ResolveTemplate("@mod.out", env)
	if !errors.Is(err, ErrUndefinedVariable) {
		t.Fatalf("expected ErrUndefinedVariable, got %v", err)
	}
}

func TestResolveTemplateValueVerbatim(t *testing.T) {
	// Substituted values are inserted verbatim, never rescanned for further
	// references within the same pass.
	env := MakeEnv()
	env.Bind("addr", "user@@host")

	got, err := ResolveTemplate("@addr", env)
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}

	if got != "user@@host" {
		t.Errorf("resolved to %q, want user@@host", got)
	}
}

func TestScanIdent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"mode", "mode"},
		{"mode.out", "mode"},
		{"num_iters rest", "num_iters"},
		{"x1y2", "x1y2"},
		{".leading", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := scanIdent(tt.in); got != tt.want {
			t.Errorf("scanIdent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
