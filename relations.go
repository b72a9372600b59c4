package autofixture

import (
	"fmt"
	"reflect"
)

// RelatedTypes returns the types that share a frozen instance of target under
// mode, not including target itself. Interfaces are only found among known,
// because Go types do not list the interfaces they satisfy.
func RelatedTypes(target reflect.Type, mode Matching, known []reflect.Type) (TypeSet, error) {
	if target == nil {
		return TypeSet{}, fmt.Errorf("related types: %w", ErrNullArgument)
	}

	switch mode {
	case ExactType:
		return NewTypeSet(), nil
	case ImplementedInterfaces:
		return implementedInterfaces(target, known), nil
	case DirectBaseType:
		res := NewTypeSet()
		if base, ok := baseOf(target); ok {
			res.Add(base.typ)
		}
		return res, nil
	case BaseType:
		return baseChain(target), nil
	case MemberOfFamily:
		return implementedInterfaces(target, known).Union(baseChain(target)), nil
	default:
		return TypeSet{}, fmt.Errorf("%w: %d", ErrUnsupportedMatchingMode, int(mode))
	}
}

func implementedInterfaces(target reflect.Type, known []reflect.Type) TypeSet {
	res := NewTypeSet()
	for _, i := range known {
		if i == nil || i == target || !isRelatableInterface(i) {
			continue
		}
		if target.Implements(i) {
			res.Add(i)
		}
	}
	return res
}

// isRelatableInterface excludes the empty interface, which every type satisfies.
func isRelatableInterface(t reflect.Type) bool {
	return t.Kind() == reflect.Interface && t.NumMethod() > 0
}

func baseChain(target reflect.Type) TypeSet {
	res := NewTypeSet()
	cur := target
	for {
		base, ok := baseOf(cur)
		if !ok || res.Has(base.typ) {
			return res
		}
		res.Add(base.typ)
		cur = base.typ
	}
}

type baseLink struct {
	typ   reflect.Type
	field int
}

// baseOf finds the first exported embedded struct (or pointer to struct) of t.
// For a pointer target the base is addressed through a pointer too, so the
// projected value shares memory with the frozen instance.
func baseOf(t reflect.Type) (baseLink, bool) {
	st := t
	isPtr := t.Kind() == reflect.Pointer
	if isPtr {
		st = t.Elem()
	}
	if st.Kind() != reflect.Struct {
		return baseLink{}, false
	}

	for i := range st.NumField() {
		f := st.Field(i)
		if !f.Anonymous || !f.IsExported() {
			continue
		}
		ft := f.Type
		switch {
		case ft.Kind() == reflect.Struct:
			if isPtr {
				return baseLink{typ: reflect.PointerTo(ft), field: i}, true
			}
			return baseLink{typ: ft, field: i}, true
		case ft.Kind() == reflect.Pointer && ft.Elem().Kind() == reflect.Struct:
			return baseLink{typ: ft, field: i}, true
		}
	}
	return baseLink{}, false
}

// Project converts a frozen instance into the value pinned for a related type.
// For interfaces that is the instance itself; for base types it is the embedded
// part of the instance.
func Project(v reflect.Value, to reflect.Type) (reflect.Value, error) {
	if to == nil || !v.IsValid() {
		return reflect.Value{}, fmt.Errorf("project: %w", ErrNullArgument)
	}
	if v.Type() == to {
		return v, nil
	}

	if to.Kind() == reflect.Interface {
		src := v
		if src.Kind() == reflect.Interface {
			src = src.Elem()
		}
		out := reflect.New(to).Elem()
		if !src.IsValid() {
			return out, nil
		}
		if !src.Type().AssignableTo(to) {
			return reflect.Value{}, fmt.Errorf("project %s to %s: not assignable", src.Type(), to)
		}
		out.Set(src)
		return out, nil
	}

	cur := v
	seen := map[reflect.Type]bool{}
	for !seen[cur.Type()] {
		seen[cur.Type()] = true
		link, ok := baseOf(cur.Type())
		if !ok {
			break
		}
		next, err := embedded(cur, link)
		if err != nil {
			return reflect.Value{}, err
		}
		if next.Type() == to {
			return next, nil
		}
		cur = next
	}
	return reflect.Value{}, fmt.Errorf("project %s to %s: not a base type", v.Type(), to)
}

func embedded(v reflect.Value, link baseLink) (reflect.Value, error) {
	if v.Kind() != reflect.Pointer {
		return v.Field(link.field), nil
	}
	if v.IsNil() {
		return reflect.Value{}, fmt.Errorf("project: nil %s", v.Type())
	}
	f := v.Elem().Field(link.field)
	if f.Kind() == reflect.Pointer {
		if f.IsNil() {
			return reflect.Value{}, fmt.Errorf("project: embedded %s is nil", f.Type())
		}
		return f, nil
	}
	return f.Addr(), nil
}
