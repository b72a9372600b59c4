package autofixture

import (
	"log/slog"

	"github.com/pumped-fn/autofixture/pkg/config"
)

// Option configures a fixture
type Option func(*Fixture)

// WithRepeatCount sets how many elements collections get.
func WithRepeatCount(n int) Option {
	return func(f *Fixture) {
		if n >= 0 {
			f.repeatCount = n
		}
	}
}

// WithSeed makes generated numbers, booleans and times reproducible.
// Strings still carry random UUIDs.
func WithSeed(seed uint64) Option {
	return func(f *Fixture) {
		f.seed(seed)
	}
}

// WithOmitOnRecursion uses the zero value for a type requested while it is
// already being built, instead of failing.
func WithOmitOnRecursion() Option {
	return func(f *Fixture) {
		f.omitOnRecursion = true
	}
}

// WithMaxDepth limits how deeply requests may nest. Zero means no limit.
func WithMaxDepth(depth int) Option {
	return func(f *Fixture) {
		if depth >= 0 {
			f.maxDepth = depth
		}
	}
}

// WithLogger sets the logger used for debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fixture) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithExtension returns an option that registers an extension to a fixture
func WithExtension(ext Extension) Option {
	return func(f *Fixture) {
		if err := f.UseExtension(ext); err != nil {
			panic(err)
		}
	}
}

// WithBuilder adds a specimen builder.
func WithBuilder(b SpecimenBuilder) Option {
	return func(f *Fixture) {
		f.AddBuilder(b)
	}
}

// WithSubstitute adds a fallback builder for interface types.
func WithSubstitute(b SpecimenBuilder) Option {
	return func(f *Fixture) {
		f.AddSubstitute(b)
	}
}

// WithConfig applies settings loaded by the config package. A zero seed
// leaves the random seed in place.
func WithConfig(cfg config.Config) Option {
	return func(f *Fixture) {
		WithRepeatCount(cfg.RepeatCount)(f)
		WithMaxDepth(cfg.MaxDepth)(f)
		f.omitOnRecursion = cfg.OmitOnRecursion()
		if cfg.Seed != 0 {
			f.seed(cfg.Seed)
		}
	}
}
