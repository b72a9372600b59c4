package autofixture

import (
	"fmt"
	"slices"
	"sync"
)

// defaultRegistry holds the process-wide defaults applied by NewDefault.
var defaultRegistry = newRegistry()

// Register adds process-wide defaults. Each entry must be a Customization or
// a SpecimenBuilder. Call it from init functions: the registry is published
// the first time NewDefault runs, and later calls fail with
// ErrRegistryPublished.
func Register(entries ...any) error {
	return defaultRegistry.register(entries...)
}

// MustRegister is Register that panics on error.
func MustRegister(entries ...any) {
	if err := Register(entries...); err != nil {
		panic(err)
	}
}

type defaultSet struct {
	customizations []Customization
	builders       []SpecimenBuilder
}

type registry struct {
	mu        sync.Mutex
	entries   []any
	published bool
	snapshot  func() (defaultSet, error)
}

func newRegistry() *registry {
	r := &registry{}
	r.snapshot = sync.OnceValues(r.publish)
	return r
}

func (r *registry) register(entries ...any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.published {
		return ErrRegistryPublished
	}
	for _, e := range entries {
		if e == nil {
			return fmt.Errorf("register default: %w", ErrNullArgument)
		}
	}
	r.entries = append(r.entries, entries...)
	return nil
}

// publish freezes the registry and sorts entries by kind. It runs once; every
// caller of snapshot sees the same result.
func (r *registry) publish() (defaultSet, error) {
	r.mu.Lock()
	r.published = true
	entries := slices.Clone(r.entries)
	r.mu.Unlock()

	var set defaultSet
	for _, e := range entries {
		switch v := e.(type) {
		case Customization:
			set.customizations = append(set.customizations, v)
		case SpecimenBuilder:
			set.builders = append(set.builders, v)
		default:
			return defaultSet{}, fmt.Errorf("%w: %T is neither a Customization nor a SpecimenBuilder",
				ErrUnsupportedCustomizationKind, e)
		}
	}
	return set, nil
}

// apply installs the published defaults on f.
func (r *registry) apply(f *Fixture) error {
	set, err := r.snapshot()
	if err != nil {
		return err
	}
	f.defaults = append(f.defaults, set.builders...)
	for _, c := range set.customizations {
		if err := f.Customize(c); err != nil {
			return fmt.Errorf("applying default %T: %w", c, err)
		}
	}
	return nil
}
