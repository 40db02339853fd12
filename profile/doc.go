// Package profile provides optional runtime profiling for the sweep
// application.
//
// It integrates [github.com/pkg/profile] behind the "pprof" build tag.
// When built without the tag (the default), every operation is a no-op with
// zero runtime overhead, and the command-line flags that configure it are
// hidden.
//
// With the tag enabled, the following modes are supported: allocs, block,
// clock, cpu, goroutine, heap, mem, mutex, thread, and trace. Use [Modes]
// to retrieve the list programmatically. Profile files are written to the
// configured directory with names matching the mode (cpu.pprof, mem.pprof,
// and so on) for analysis with go tool pprof:
//
//	go tool pprof ./sweep /path/to/cpu.pprof
//
// Building with the tag also imports [net/http/pprof], registering its
// HTTP handlers for applications that serve them.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
