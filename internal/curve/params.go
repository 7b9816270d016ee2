package curve

// Options configures curve extraction.
type Options struct {
	// Tolerance is the per-channel slack allowed when matching pixels
	// against the target color.
	Tolerance int

	// ApplySmooth enables the secondary moving-average pass after the
	// baseline Savitzky-Golay filter. The baseline filter alone can
	// leave visible spikes on dense or volatile source lines.
	ApplySmooth bool
}

// DefaultOptions returns the default extraction options.
func DefaultOptions() Options {
	return Options{
		Tolerance: 15,
	}
}

// WithTolerance returns a copy of the options with a new tolerance.
func (o Options) WithTolerance(tolerance int) Options {
	o.Tolerance = tolerance
	return o
}

// WithSmoothing returns a copy of the options with the secondary
// smoothing pass toggled.
func (o Options) WithSmoothing(on bool) Options {
	o.ApplySmooth = on
	return o
}
