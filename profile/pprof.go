//go:build pprof

package profile

import (
	"maps"
	"slices"

	"github.com/pkg/profile"

	_ "net/http/pprof" // register HTTP handlers
)

// Enabled reports whether profiling support is compiled in.
const Enabled = true

var mode = map[string]func(*profile.Profile){
	"allocs":    profile.MemProfileAllocs,
	"block":     profile.BlockProfile,
	"clock":     profile.ClockProfile,
	"cpu":       profile.CPUProfile,
	"goroutine": profile.GoroutineProfile,
	"heap":      profile.MemProfileHeap,
	"mem":       profile.MemProfile,
	"mutex":     profile.MutexProfile,
	"thread":    profile.ThreadcreationProfile,
	"trace":     profile.TraceProfile,
}

// Modes returns the supported profiling modes in sorted order.
func Modes() []string {
	return slices.Sorted(maps.Keys(mode))
}

// option accumulates pkg/profile options.
type option func([]func(*profile.Profile)) []func(*profile.Profile)

func start(p Profiler) Stopper {
	fn, ok := mode[p.Mode]
	if !ok {
		return ignore{}
	}

	opts := []func(*profile.Profile){fn, profile.NoShutdownHook}
	for _, o := range []option{withDir(p.Dir), withQuiet(p.Quiet)} {
		opts = o(opts)
	}

	return profile.Start(opts...)
}

func withDir(dir string) option {
	return func(opts []func(*profile.Profile)) []func(*profile.Profile) {
		if dir == "" {
			return opts
		}

		return append(opts, profile.ProfilePath(dir))
	}
}

func withQuiet(quiet bool) option {
	return func(opts []func(*profile.Profile)) []func(*profile.Profile) {
		if !quiet {
			return opts
		}

		return append(opts, profile.Quiet)
	}
}
