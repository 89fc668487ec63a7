// Package profile provides optional runtime profiling.
//
// Profiling uses [github.com/pkg/profile] and is compiled in only with the
// "pprof" build tag:
//
//	go build -tags pprof .
//
// Without the tag every [Config] starts a no-op profiler and [Modes] yields
// nothing.
//
// # Modes
//
//   - allocs:    memory allocation profiling
//   - block:     blocking profiling
//   - clock:     wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: goroutine profiling
//   - heap:      live heap profiling
//   - mem:       memory profiling
//   - mutex:     mutex contention profiling
//   - thread:    thread creation profiling
//   - trace:     execution tracing
//
// Rendering a long piece is dominated by synthesis, so "cpu" is usually the
// mode of interest:
//
//	musical --pprof-mode=cpu song.mus
//	go tool pprof -http=: ~/.cache/musical/pprof/cpu.pprof
//
// With the tag, [net/http/pprof] handlers are also registered on
// [net/http.DefaultServeMux].
package profile

// Tag is the build tag required to enable profiling.
const Tag = `pprof`
