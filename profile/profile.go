package profile

// Profiler configures a profiling session.
type Profiler struct {
	// Mode selects what is profiled; see [Modes]. An empty or unknown mode
	// disables profiling.
	Mode string
	// Dir is the output directory. Empty selects a temporary directory.
	Dir string
	// Quiet suppresses the profiler's own log output.
	Quiet bool
}

// Stopper ends a profiling session and flushes its output.
type Stopper interface{ Stop() }

// Start begins profiling. Both Start and the returned Stopper are always
// safe to call, including when profiling is not compiled in.
func (p Profiler) Start() Stopper {
	if p.Mode == "" || !Enabled {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}
