// Package cmd implements the subcommands of the sweep CLI.
//
// Run expands a sweep file into its full set of command lines and either
// prints them or executes them in order. Fmt reparses a sweep file and
// writes it back in canonical form.
package cmd
