package autofixture

import "fmt"

// NewDefault creates a fixture with the registered defaults applied: the
// built-in generators plus everything passed to Register.
func NewDefault(opts ...Option) (*Fixture, error) {
	f := New(opts...)
	if err := defaultRegistry.apply(f); err != nil {
		return nil, err
	}
	return f, nil
}

// NewWithSubstitutes is NewDefault with sub as the fallback for interface
// types that have no pin, relay or builder. sub is the seam for a mocking
// library.
func NewWithSubstitutes(sub SpecimenBuilder, opts ...Option) (*Fixture, error) {
	if sub == nil {
		return nil, fmt.Errorf("substitutes: %w", ErrNullArgument)
	}
	return NewDefault(append([]Option{WithSubstitute(sub)}, opts...)...)
}

// MustNewDefault is NewDefault that panics on error.
func MustNewDefault(opts ...Option) *Fixture {
	f, err := NewDefault(opts...)
	if err != nil {
		panic(err)
	}
	return f
}
