package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ardnew/sweep/comb"
)

func TestReadSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.yaml")

	err := os.WriteFile(path, []byte("run:\n  - echo\n"), 0o600)
	if err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	data, err := readSource(path)
	if err != nil {
		t.Fatalf("read error: %v", err)
	}

	if string(data) != "run:\n  - echo\n" {
		t.Errorf("unexpected contents: %q", data)
	}
}

func TestReadSourceMissing(t *testing.T) {
	_, err := readSource(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, ErrReadInput) {
		t.Fatalf("expected ErrReadInput, got %v", err)
	}

	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped os.ErrNotExist, got %v", err)
	}
}

func TestExecuteContinuesPastFailure(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "ran")

	cmds := []comb.Command{
		{Args: []string{"false"}},
		{Args: []string{"touch", marker}},
	}

	err := execute(context.Background(), cmds)
	if !errors.Is(err, ErrBranchRun) {
		t.Fatalf("expected ErrBranchRun, got %v", err)
	}

	// The branch after the failing one must still have run.
	if _, err := os.Stat(marker); err != nil {
		t.Errorf("later branch did not run: %v", err)
	}
}

func TestExecuteAllSucceed(t *testing.T) {
	cmds := []comb.Command{
		{Args: []string{"true"}},
		{Args: []string{"true"}},
	}

	if err := execute(context.Background(), cmds); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExecuteEmptyBranch(t *testing.T) {
	err := execute(context.Background(), []comb.Command{{}})
	if !errors.Is(err, ErrBranchRun) {
		t.Fatalf("expected ErrBranchRun for empty branch, got %v", err)
	}
}

func TestErrorSentinels(t *testing.T) {
	derived := ErrReadInput.Wrap(os.ErrPermission)

	if !errors.Is(derived, ErrReadInput) {
		t.Error("wrapped error does not match its sentinel")
	}

	if errors.Is(derived, ErrWriteOutput) {
		t.Error("wrapped error matches an unrelated sentinel")
	}

	if derived.Error() != "read input: permission denied" {
		t.Errorf("unexpected message: %q", derived.Error())
	}
}
