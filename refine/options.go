package refine

import "github.com/xtalmerge/snapmerge/numeric"

// Options configures SelectRefinable's acceptance threshold and PostRefine's
// solver and lost-reflection tolerance.
type Options struct {
	// LostFraction is the maximum fraction of previously scalable
	// reflections a crystal may lose predicted-partiality status over
	// during one post-refinement before it is flagged Lost (§4.8, an
	// open question in the distilled spec pinned here).
	LostFraction float64

	// MinRefinable is the minimum number of refinable reflections required
	// to attempt a solve; below this, PostRefine flags NoRefinement
	// without calling the solver. Matches the six free geometric
	// parameters PostRefine fits — a solve with fewer observations than
	// parameters is not meaningfully constrained.
	MinRefinable int

	// ReferenceProvided waives SelectRefinable's redundancy>=2 floor when an
	// external reference list drives scaling (§4.8).
	ReferenceProvided bool

	LM numeric.LMOptions
}

// DefaultOptions returns LostFraction=0.5, MinRefinable=6, and the numeric
// package's default Levenberg-Marquardt tuning.
func DefaultOptions() Options {
	return Options{
		LostFraction: 0.5,
		MinRefinable: 6,
		LM:           numeric.DefaultLMOptions(),
	}
}

// Option mutates an Options in place; used with NewOptions.
type Option func(*Options)

// WithLostFraction overrides the default lost-reflection tolerance.
func WithLostFraction(f float64) Option {
	return func(o *Options) { o.LostFraction = f }
}

// WithMinRefinable overrides the default minimum-refinable-reflections gate.
func WithMinRefinable(n int) Option {
	return func(o *Options) { o.MinRefinable = n }
}

// WithReferenceProvided sets ReferenceProvided.
func WithReferenceProvided(provided bool) Option {
	return func(o *Options) { o.ReferenceProvided = provided }
}

// WithLMOptions overrides the Levenberg-Marquardt tuning.
func WithLMOptions(lm numeric.LMOptions) Option {
	return func(o *Options) { o.LM = lm }
}

// NewOptions builds an Options from DefaultOptions with opts applied in
// order.
func NewOptions(opts ...Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
