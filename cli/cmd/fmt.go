package cmd

import (
	"context"
	"os"

	"github.com/ardnew/sweep/comb"
)

// Fmt reparses a sweep file and prints it in canonical form.
//
// Selection-argument shortcuts are desugared, and the element order of the
// source document is preserved.
type Fmt struct {
	Source string `arg:"" default:"-" help:"Sweep file or '-' for stdin." name:"source"`
}

// Run executes the fmt command.
func (f *Fmt) Run(_ context.Context) error {
	data, err := readSource(f.Source)
	if err != nil {
		return err
	}

	root, err := comb.DecodeYAML(data)
	if err != nil {
		return err
	}

	out, err := comb.MarshalYAML(root)
	if err != nil {
		return err
	}

	_, err = os.Stdout.Write(out)
	if err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
