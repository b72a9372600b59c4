package autodata

import (
	"fmt"
	"reflect"

	"github.com/pumped-fn/autofixture"
)

// Fill sets the fields of the struct ptr points to. The first fields take
// the inline values as given; the rest are generated by f after their
// declarations were applied. Declarations on inline fields are ignored.
func Fill(f *autofixture.Fixture, ptr any, inline ...any) error {
	if f == nil || ptr == nil {
		return fmt.Errorf("fill: %w", autofixture.ErrNullArgument)
	}
	rv := reflect.ValueOf(ptr)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("fill: %T is not a non-nil pointer", ptr)
	}
	target := rv.Elem()

	fields, err := structFields(target.Type())
	if err != nil {
		return err
	}
	if len(inline) > len(fields) {
		return fmt.Errorf("fill %s: %d inline values for %d fields", target.Type(), len(inline), len(fields))
	}

	for i, val := range inline {
		fd := fields[i]
		v, err := inlineValue(val, fd.param.Type)
		if err != nil {
			return fmt.Errorf("fill %s: inline value %d: %w", fd.param, i, err)
		}
		target.Field(fd.index).Set(v)
	}

	rest := fields[len(inline):]
	params := make([]autofixture.Parameter, len(rest))
	for i, fd := range rest {
		params[i] = fd.param
	}
	values, err := autofixture.Generate(f, params)
	if err != nil {
		return err
	}
	for i, v := range values {
		target.Field(rest[i].index).Set(v)
	}
	return nil
}

func inlineValue(val any, t reflect.Type) (reflect.Value, error) {
	if val == nil {
		switch t.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("nil is not a %s", t)
	}
	v := reflect.ValueOf(val)
	switch {
	case v.Type().AssignableTo(t):
		out := reflect.New(t).Elem()
		out.Set(v)
		return out, nil
	case v.Type().ConvertibleTo(t) && v.Kind() == t.Kind():
		return v.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("%s is not assignable to %s", v.Type(), t)
}
