package autofixture

import (
	"fmt"
	"reflect"
)

// FreezeType creates one instance of target and pins it for target and every
// type related to it under mode. Existing pins are kept: a type pinned by an
// earlier freeze keeps its instance, and freezing an already pinned target
// returns the pinned instance without building a new one.
func FreezeType(f *Fixture, target reflect.Type, mode Matching) (reflect.Value, error) {
	if f == nil || target == nil {
		return reflect.Value{}, fmt.Errorf("freeze: %w", ErrNullArgument)
	}
	if !mode.Valid() {
		return reflect.Value{}, fmt.Errorf("freeze %s: %w: %d", target, ErrUnsupportedMatchingMode, int(mode))
	}

	instance, err := f.Resolve(target)
	if err != nil {
		return reflect.Value{}, err
	}
	if _, err := f.pin(target, instance, false); err != nil {
		return reflect.Value{}, err
	}

	if mode == ImplementedInterfaces || mode == MemberOfFamily {
		f.freezes = append(f.freezes, frozenInstance{target: target, instance: instance})
	}

	f.Learn(target)
	related, err := RelatedTypes(target, mode, f.KnownInterfaces())
	if err != nil {
		return reflect.Value{}, err
	}
	for _, t := range related.Sorted() {
		v, err := Project(instance, t)
		if err != nil {
			f.logger.Debug("skipped related type", "target", target.String(), "type", t.String(), "error", err)
			continue
		}
		if _, err := f.pin(t, v, false); err != nil {
			return reflect.Value{}, err
		}
	}

	f.logger.Debug("froze type",
		"type", target.String(),
		"matching", mode.String(),
		"related", related.Len(),
	)
	return instance, nil
}

// frozenInstance is an instance frozen for the interfaces its type implements.
type frozenInstance struct {
	target   reflect.Type
	instance reflect.Value
}

// pinFrozenInterface pins t to the first instance frozen for interfaces whose
// type implements t. It covers interfaces the fixture only meets after the
// freeze, such as those requested by a builder.
func (f *Fixture) pinFrozenInterface(t reflect.Type) (reflect.Value, bool, error) {
	if !isRelatableInterface(t) {
		return reflect.Value{}, false, nil
	}
	for _, fi := range f.freezes {
		if !fi.target.Implements(t) {
			continue
		}
		v, err := Project(fi.instance, t)
		if err != nil {
			continue
		}
		if _, err := f.pin(t, v, false); err != nil {
			return reflect.Value{}, false, err
		}
		f.logger.Debug("pinned frozen instance for interface", "type", t.String(), "frozen", fi.target.String())
		return v, true, nil
	}
	return reflect.Value{}, false, nil
}

// Freeze is FreezeType for T.
func Freeze[T any](f *Fixture, mode Matching) (T, error) {
	v, err := FreezeType(f, reflect.TypeFor[T](), mode)
	if err != nil {
		var zero T
		return zero, err
	}
	return valueAs[T](v)
}

// FreezeCustomization freezes target when applied.
func FreezeCustomization(target reflect.Type, mode Matching) Customization {
	return freezeOnMatch{target: target, mode: mode}
}

type freezeOnMatch struct {
	target reflect.Type
	mode   Matching
}

func (c freezeOnMatch) Customize(f *Fixture) error {
	_, err := FreezeType(f, c.target, c.mode)
	return err
}

// FrozenDeclaration freezes the parameter it is attached to.
type FrozenDeclaration struct {
	Matching Matching
	priority int
}

// Frozen declares that the parameter's type is frozen under mode, so the
// parameter and every related request share one instance.
func Frozen(mode Matching, opts ...DeclarationOption) FrozenDeclaration {
	o := declarationOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	return FrozenDeclaration{Matching: mode, priority: o.priority}
}

func (d FrozenDeclaration) Priority() int {
	return d.priority
}

func (d FrozenDeclaration) Customization(p Parameter) (Customization, error) {
	if p.Type == nil {
		return nil, fmt.Errorf("frozen %s: %w", p.Name, ErrNullArgument)
	}
	return FreezeCustomization(p.Type, d.Matching), nil
}
