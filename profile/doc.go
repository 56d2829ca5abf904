// Package profile starts and stops runtime profiling.
//
// Profiling is compiled in only with the "pprof" build tag, which links
// [github.com/pkg/profile] and registers the [net/http/pprof] handlers.
// Without the tag [Modes] is empty and [Profiler.Start] does nothing.
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/lambdex"}
//	defer p.Start().Stop()
//
// Profiles are written to Path under a file named after the mode (cpu.pprof,
// mem.pprof) and are read with go tool pprof:
//
//	go tool pprof -http=: /tmp/lambdex/cpu.pprof
package profile

// Tag is the build tag that enables profiling.
const Tag = `pprof`
