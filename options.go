package jsonbind

// Option configures a parse or stringify call.
type Option interface {
	apply(*Options)
}

// Options represents resolved codec options.
type Options struct {
	// DirectAccess reads and writes fields directly instead of through getters and setters.
	DirectAccess bool
	// Pretty emits one member per line, indented with tabs.
	Pretty bool
	// Strict fails on unknown names and type mismatches.
	Strict bool
	// Nullable emits absent fields as null.
	Nullable bool
}

type optionFn func(*Options)

func (o optionFn) apply(opts *Options) { o(opts) }

// WithDirectAccess bypasses getters and setters.
func WithDirectAccess(flag bool) Option {
	return optionFn(func(o *Options) { o.DirectAccess = flag })
}

// WithPretty enables indented output.
func WithPretty(flag bool) Option {
	return optionFn(func(o *Options) { o.Pretty = flag })
}

// WithStrict enables strict binding.
func WithStrict(flag bool) Option {
	return optionFn(func(o *Options) { o.Strict = flag })
}

// WithNullable emits absent fields as null.
func WithNullable(flag bool) Option {
	return optionFn(func(o *Options) { o.Nullable = flag })
}

// WithOptions applies all values of a resolved Options.
func WithOptions(options Options) Option {
	return optionFn(func(o *Options) { *o = options })
}

// NewOptions resolves options.
func NewOptions(opts ...Option) Options {
	ret := Options{}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(&ret)
		}
	}
	return ret
}
