// Package profile provides optional runtime profiling for javpy.
//
// Profiling is built on [github.com/pkg/profile] and is compiled in only with
// the "pprof" build tag:
//
//	go build -tags pprof .
//	javpy --pprof-mode cpu --pprof-dir ./profiles run script.jvp
//
// Without the tag, [Modes] is empty and [Profiler.Start] returns a no-op.
//
// Profile files are named after the mode (cpu.pprof, mem.pprof, ...) and can
// be inspected with go tool pprof:
//
//	go tool pprof -http=: ./profiles/cpu.pprof
//
// With the tag, the package also imports [net/http/pprof], registering its
// handlers on [net/http.DefaultServeMux].
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
