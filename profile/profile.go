package profile

// Config returns the profiler settings.
type Config func() (mode, path string, quiet bool)

// Stopper stops a running profiler.
type Stopper interface{ Stop() }

// Start starts the profiler described by c. It returns a no-op [Stopper] when
// the mode is empty or unknown, or when built without the pprof tag.
func (c Config) Start() Stopper {
	mode, path, quiet := c()

	if mode == "" {
		return ignore{}
	}

	return start(mode, path, quiet)
}

// WithMode returns a functional option for setting a profiler's mode.
func WithMode(mode string) func(Config) Config {
	return func(c Config) Config {
		_, path, quiet := c()

		return func() (string, string, bool) { return mode, path, quiet }
	}
}

// WithPath returns a functional option for setting a profiler's output
// directory.
func WithPath(path string) func(Config) Config {
	return func(c Config) Config {
		mode, _, quiet := c()

		return func() (string, string, bool) { return mode, path, quiet }
	}
}

// WithQuiet returns a functional option for silencing the profiler.
func WithQuiet(quiet bool) func(Config) Config {
	return func(c Config) Config {
		mode, path, _ := c()

		return func() (string, string, bool) { return mode, path, quiet }
	}
}

// Make returns a Config with opts applied to an empty configuration.
func Make(opts ...func(Config) Config) Config {
	c := Config(func() (string, string, bool) { return "", "", false })
	for _, opt := range opts {
		c = opt(c)
	}

	return c
}

type ignore struct{}

func (ignore) Stop() {}
