package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/ardnew/sweep/comb"
	"github.com/ardnew/sweep/log"
)

// Run expands a sweep file and executes every enumerated command line.
type Run struct {
	File   string `default:"sweep.yaml" help:"Sweep file to expand, or '-' for stdin." name:"file" short:"f"`
	DryRun bool   `help:"Print each command line instead of executing it." name:"dry-run" short:"n"`

	Overrides []string `arg:"" help:"Variable overrides (name=value)." optional:""`
}

// Run executes the run command.
func (r *Run) Run(ctx context.Context) error {
	env, err := comb.ParseOverrides(r.Overrides)
	if err != nil {
		if errors.Is(err, comb.ErrUsage) {
			if ktx := kongContextFrom(ctx); ktx != nil {
				_ = ktx.PrintUsage(false)
			}
		}

		return err
	}

	data, err := readSource(r.File)
	if err != nil {
		return err
	}

	root, err := comb.DecodeYAML(data)
	if err != nil {
		return err
	}

	cmds, err := comb.Expand(ctx, env, root)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "expansion complete",
		slog.String("file", r.File),
		slog.Int("branches", len(cmds)),
	)

	if r.DryRun {
		return printCommands(cmds)
	}

	return execute(ctx, cmds)
}

// printCommands writes one shell-quoted line per branch to stdout.
func printCommands(cmds []comb.Command) error {
	w := bufio.NewWriter(os.Stdout)

	for _, c := range cmds {
		_, err := fmt.Fprintln(w, c.String())
		if err != nil {
			return ErrWriteOutput.Wrap(err)
		}
	}

	err := w.Flush()
	if err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

// execute runs every branch in enumeration order with inherited standard
// streams. A failing branch is logged and counted, and the remaining
// branches still run; only cancellation stops the sweep early.
func execute(ctx context.Context, cmds []comb.Command) error {
	var failed int

	for i, c := range cmds {
		branch := log.With(
			slog.Int("branch", i),
			slog.String("command", c.String()),
		)

		if len(c.Args) == 0 {
			branch.Warn("branch expands to no command")

			failed++

			continue
		}

		branch.InfoContext(ctx, "running")

		proc := exec.CommandContext(ctx, c.Args[0], c.Args[1:]...)
		proc.Stdin = os.Stdin
		proc.Stdout = os.Stdout
		proc.Stderr = os.Stderr

		err := proc.Run()
		if err != nil {
			branch.ErrorContext(ctx, "branch failed", slog.Any("error", err))

			failed++

			if ctx.Err() != nil {
				return ctx.Err()
			}
		}
	}

	if failed > 0 {
		return ErrBranchRun.With(
			slog.Int("failed", failed),
			slog.Int("total", len(cmds)),
		)
	}

	return nil
}
