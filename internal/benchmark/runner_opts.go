package benchmark

type RunnerOpts struct {
	RunsPerSample *int
	WarmupText    *string
}

type RunnerOpt func(opts *RunnerOpts)

func WithRunsPerSample(v int) RunnerOpt {
	return func(opts *RunnerOpts) { opts.RunsPerSample = &v }
}

func WithWarmupText(v string) RunnerOpt {
	return func(opts *RunnerOpts) { opts.WarmupText = &v }
}

func buildOpts(defaultOpts RunnerOpts, opts ...RunnerOpt) RunnerOpts {
	o := defaultOpts
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
